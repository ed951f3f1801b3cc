package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// HTTP API
	APIPort int

	// Database configuration
	DatabaseHost     string
	DatabasePort     string
	DatabaseName     string
	DatabaseUser     string
	DatabasePassword string

	// Redis configuration
	RedisHost     string
	RedisPassword string
	RedisPort     string

	// External services
	LLM        LLMConfig
	Apify      ApifyConfig
	DataForSEO DataForSEOConfig

	// Analysis tuning
	Scoring    ScoringConfig
	Clustering ClusteringConfig
	Keywords   KeywordConfig
	Trends     TrendConfig
	Pipeline   PipelineConfig
}

// LLMConfig holds the OpenAI-compatible endpoint configuration used for
// search-criteria extraction and description embeddings.
type LLMConfig struct {
	Endpoint       string
	APIKey         string
	ChatModel      string
	EmbeddingModel string
}

// ApifyConfig holds the Amazon search actor configuration
type ApifyConfig struct {
	Endpoint string
	Token    string
	ActorID  string
	MaxPages int
}

// DataForSEOConfig holds the trends API credentials
type DataForSEOConfig struct {
	Endpoint       string
	Login          string
	Password       string
	TimeoutSeconds int
}

// ScoringConfig holds the product opportunity score weights.
// DemandWeight + VelocityWeight + FrictionWeight must sum to 100 so the
// final score stays in [0, 100].
type ScoringConfig struct {
	DemandWeight   int
	VelocityWeight int
	FrictionWeight int

	DemandMaxLog        float64 // log10 of monthly sales treated as a perfect demand signal
	ReviewSmoother      int     // added to review count before dividing, keeps the denominator positive
	VelocityScaler      float64
	FrictionRankDivider float64
	FlawNotSponsored    int
	FlawShortDesc       int
	ShortDescLen        int
}

// ClusteringConfig holds the density clustering parameters
type ClusteringConfig struct {
	Eps        float64 // cosine distance neighborhood radius
	MinSamples int     // neighborhood size (self included) required for a core point
}

// KeywordConfig holds the cluster labeling parameters
type KeywordConfig struct {
	TopN           int // keywords returned per cluster
	MinClusterSize int // clusters below this size get no keywords
	TFIDFTopN      int
	NgramTopN      int
	TopSingleWords int
}

// TrendConfig holds the trend scoring thresholds
type TrendConfig struct {
	SearchWeight float64
	MarketWeight float64

	SaturationLimit    int     // avg review count treated as fully saturated
	MinSalesProof      int     // avg monthly sales proving real demand
	ViralityThreshold  float64 // volatility above this marks hype
	SalesPerfectLog    float64 // log10 of monthly sales mapping to a 100 sales score
	SaturationDiscount float64 // share of the sales score saturation can erase
}

// PipelineConfig holds run orchestration parameters
type PipelineConfig struct {
	ClusterWorkers     int // bounded fan-out for per-cluster analysis
	TrendKeywordsLimit int // keywords sent to the trends lookup per cluster
	TrendRateLimitMs   int
	TrendCacheTTLHours int
	DevMode            bool // scrape a single keyword only
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() *Config {
	// Load .env file if exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return &Config{
		APIPort: getEnvInt("API_PORT", 8080),

		// Database configuration
		DatabaseHost:     getEnvOrDefault("DB_HOST", "localhost"),
		DatabasePort:     getEnvOrDefault("DB_PORT", "5432"),
		DatabaseName:     getEnvOrDefault("DB_NAME", "trend_finder"),
		DatabaseUser:     getEnvOrDefault("DB_USER", "trend_finder"),
		DatabasePassword: getEnvOrDefault("DB_PASSWORD", ""),

		// Redis configuration
		RedisHost:     getEnvOrDefault("REDIS_HOST", "localhost"),
		RedisPort:     getEnvOrDefault("REDIS_PORT", "6379"),
		RedisPassword: getEnvOrDefault("REDIS_PASSWORD", ""),

		LLM: LLMConfig{
			Endpoint:       getEnvOrDefault("LLM_ENDPOINT", "https://api.openai.com/v1"),
			APIKey:         os.Getenv("LLM_API_KEY"),
			ChatModel:      getEnvOrDefault("LLM_CHAT_MODEL", "gpt-5-nano"),
			EmbeddingModel: getEnvOrDefault("LLM_EMBEDDING_MODEL", "text-embedding-3-small"),
		},

		Apify: ApifyConfig{
			Endpoint: getEnvOrDefault("APIFY_ENDPOINT", "https://api.apify.com/v2"),
			Token:    os.Getenv("APIFY_TOKEN"),
			ActorID:  getEnvOrDefault("APIFY_AMAZON_ACTOR", "9GmEDf8sr9Jyb6b3X"),
			MaxPages: getEnvInt("APIFY_MAX_PAGES", 1),
		},

		DataForSEO: DataForSEOConfig{
			Endpoint:       getEnvOrDefault("DATAFORSEO_ENDPOINT", "https://api.dataforseo.com"),
			Login:          os.Getenv("DATAFORSEO_USERNAME"),
			Password:       os.Getenv("DATAFORSEO_PASSWORD"),
			TimeoutSeconds: getEnvInt("DATAFORSEO_TIMEOUT_SECONDS", 30),
		},

		Scoring:    DefaultScoring(),
		Clustering: DefaultClustering(),
		Keywords:   DefaultKeywords(),
		Trends:     DefaultTrends(),

		Pipeline: PipelineConfig{
			ClusterWorkers:     getEnvInt("PIPELINE_CLUSTER_WORKERS", 4),
			TrendKeywordsLimit: getEnvInt("PIPELINE_TREND_KEYWORDS_LIMIT", 5),
			TrendRateLimitMs:   getEnvInt("PIPELINE_TREND_RATE_LIMIT_MS", 500),
			TrendCacheTTLHours: getEnvInt("PIPELINE_TREND_CACHE_TTL_HOURS", 24),
			DevMode:            getEnvOrDefault("ENV", "") == "development",
		},
	}
}

// DefaultScoring returns the product scorer weights
func DefaultScoring() ScoringConfig {
	return ScoringConfig{
		DemandWeight:   getEnvInt("SCORING_DEMAND_WEIGHT", 40),
		VelocityWeight: getEnvInt("SCORING_VELOCITY_WEIGHT", 30),
		FrictionWeight: getEnvInt("SCORING_FRICTION_WEIGHT", 30),

		DemandMaxLog:        getEnvFloat("SCORING_DEMAND_MAX_LOG", 5),
		ReviewSmoother:      getEnvInt("SCORING_REVIEW_SMOOTHER", 50),
		VelocityScaler:      getEnvFloat("SCORING_VELOCITY_SCALER", 2),
		FrictionRankDivider: getEnvFloat("SCORING_FRICTION_RANK_DIVIDER", 4),
		FlawNotSponsored:    getEnvInt("SCORING_FLAW_NOT_SPONSORED", 10),
		FlawShortDesc:       getEnvInt("SCORING_FLAW_SHORT_DESC", 5),
		ShortDescLen:        getEnvInt("SCORING_SHORT_DESC_LEN", 100),
	}
}

// DefaultClustering returns the DBSCAN parameters
func DefaultClustering() ClusteringConfig {
	return ClusteringConfig{
		Eps:        getEnvFloat("CLUSTERING_EPS", 0.3),
		MinSamples: getEnvInt("CLUSTERING_MIN_SAMPLES", 2),
	}
}

// DefaultKeywords returns the cluster labeling parameters
func DefaultKeywords() KeywordConfig {
	return KeywordConfig{
		TopN:           getEnvInt("KEYWORDS_TOP_N", 10),
		MinClusterSize: getEnvInt("KEYWORDS_MIN_CLUSTER_SIZE", 2),
		TFIDFTopN:      getEnvInt("KEYWORDS_TFIDF_TOP_N", 20),
		NgramTopN:      getEnvInt("KEYWORDS_NGRAM_TOP_N", 10),
		TopSingleWords: getEnvInt("KEYWORDS_TOP_SINGLE_WORDS", 15),
	}
}

// DefaultTrends returns the trend scorer thresholds
func DefaultTrends() TrendConfig {
	return TrendConfig{
		SearchWeight: getEnvFloat("TRENDS_SEARCH_WEIGHT", 0.60),
		MarketWeight: getEnvFloat("TRENDS_MARKET_WEIGHT", 0.40),

		SaturationLimit:    getEnvInt("TRENDS_SATURATION_LIMIT", 500),
		MinSalesProof:      getEnvInt("TRENDS_MIN_SALES_PROOF", 50),
		ViralityThreshold:  getEnvFloat("TRENDS_VIRALITY_THRESHOLD", 20.0),
		SalesPerfectLog:    getEnvFloat("TRENDS_SALES_PERFECT_LOG", 3.0),
		SaturationDiscount: getEnvFloat("TRENDS_SATURATION_DISCOUNT", 0.8),
	}
}

// getEnvInt gets environment variable as int or returns default value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var intValue int
	if _, err := fmt.Sscanf(value, "%d", &intValue); err != nil {
		return defaultValue
	}
	return intValue
}

// getEnvFloat gets environment variable as float64 or returns default value
func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var floatValue float64
	if _, err := fmt.Sscanf(value, "%f", &floatValue); err != nil {
		return defaultValue
	}
	return floatValue
}

// getEnvOrDefault gets environment variable or returns default value
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
