// Package api exposes the HTTP surface: run submission, run status and the
// SSE progress stream.
package api

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/Hammad1029/trend-finder/database"
	"github.com/Hammad1029/trend-finder/pipeline"
	"github.com/Hammad1029/trend-finder/realtime"
)

// Server handles HTTP API requests
type Server struct {
	repo   *database.Repository
	runner *pipeline.Runner
	broker *realtime.Broker
}

// NewServer creates a new API server instance
func NewServer(repo *database.Repository, runner *pipeline.Runner, broker *realtime.Broker) *Server {
	return &Server{
		repo:   repo,
		runner: runner,
		broker: broker,
	}
}

// Start starts the HTTP server on the specified port
func (s *Server) Start(port int) error {
	mux := http.NewServeMux()

	mux.Handle("GET /api/events", s.broker) // SSE endpoint
	mux.HandleFunc("POST /api/searches", s.handleCreateSearch)
	mux.HandleFunc("GET /api/searches", s.handleListSearches)
	mux.HandleFunc("GET /api/searches/{id}", s.handleGetSearch)
	mux.HandleFunc("GET /api/searches/{id}/products", s.handleGetSearchProducts)

	mux.HandleFunc("GET /health", s.handleHealth)

	handler := s.corsMiddleware(s.loggingMiddleware(mux))

	serverAddr := fmt.Sprintf("0.0.0.0:%d", port)
	log.Printf("🚀 API Server starting on %s", serverAddr)
	return http.ListenAndServe(serverAddr, handler)
}

// Middleware
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %v", r.Method, r.URL.Path, time.Since(start))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
