// Package app wires the service together and owns its lifecycle.
package app

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Hammad1029/trend-finder/api"
	"github.com/Hammad1029/trend-finder/apify"
	"github.com/Hammad1029/trend-finder/cache"
	"github.com/Hammad1029/trend-finder/config"
	"github.com/Hammad1029/trend-finder/database"
	"github.com/Hammad1029/trend-finder/dataforseo"
	"github.com/Hammad1029/trend-finder/llm"
	"github.com/Hammad1029/trend-finder/pipeline"
	"github.com/Hammad1029/trend-finder/realtime"
)

// App represents the main application
type App struct {
	config *config.Config
	db     *database.Database
	redis  *cache.RedisClient
	repo   *database.Repository
	broker *realtime.Broker
	runner *pipeline.Runner
}

// New creates a new application instance
func New(cfg *config.Config) *App {
	return &App{
		config: cfg,
	}
}

// Start starts the application
func (a *App) Start() error {
	// 1. Database Connection
	fmt.Println("🗄️  Connecting to database...")

	db, err := database.Connect(
		a.config.DatabaseHost,
		a.config.DatabasePort,
		a.config.DatabaseName,
		a.config.DatabaseUser,
		a.config.DatabasePassword,
	)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	a.db = db

	a.repo = database.NewRepository(a.db)
	if err := a.repo.InitSchema(); err != nil {
		return fmt.Errorf("schema initialization failed: %w", err)
	}

	// 2. Redis Connection
	fmt.Println("🧠 Connecting to Redis...")
	redisClient := cache.NewRedisClient(
		a.config.RedisHost,
		a.config.RedisPort,
		a.config.RedisPassword,
	)
	if redisClient == nil {
		fmt.Println("⚠️  Redis connection failed. Trend caching disabled.")
	} else {
		a.redis = redisClient
	}

	var trendsCache *cache.TrendsCache
	if a.redis != nil {
		ttl := time.Duration(a.config.Pipeline.TrendCacheTTLHours) * time.Hour
		trendsCache = cache.NewTrendsCache(a.redis, ttl)
	}

	// 3. Realtime Broker
	a.broker = realtime.NewBroker()
	go a.broker.Run()

	// 4. External clients
	llmClient := llm.NewClient(a.config.LLM)
	log.Printf("✅ LLM client ready (chat: %s, embeddings: %s)", a.config.LLM.ChatModel, a.config.LLM.EmbeddingModel)

	searcher := apify.NewClient(a.config.Apify)
	trendsAPI := dataforseo.NewClient(a.config.DataForSEO)

	// 5. Pipeline Runner
	a.runner = pipeline.NewRunner(a.config, a.repo, a.broker, llmClient, searcher, trendsAPI, trendsCache)
	if a.config.Pipeline.DevMode {
		log.Println("⚠️  Dev mode: runs scrape a single keyword only")
	}

	// 6. API Server
	apiServer := api.NewServer(a.repo, a.runner, a.broker)
	go func() {
		if err := apiServer.Start(a.config.APIPort); err != nil {
			log.Printf("⚠️  API Server failed: %v", err)
		}
	}()

	return a.waitForShutdown()
}

// waitForShutdown blocks until an interrupt arrives, then closes the
// external connections
func (a *App) waitForShutdown() error {
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	<-interrupt
	fmt.Println("\n🛑 Shutdown signal received, closing connections...")

	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			log.Printf("⚠️  Redis close failed: %v", err)
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			log.Printf("⚠️  Database close failed: %v", err)
		}
	}

	fmt.Println("✅ Shutdown complete")
	return nil
}
