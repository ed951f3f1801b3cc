package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/Hammad1029/trend-finder/database"
)

const maxRequestLength = 255

type createSearchRequest struct {
	Request string `json:"request"`
}

// handleCreateSearch accepts a free-text research request and launches the
// analysis pipeline in the background. Responds immediately with the run's
// public id; progress arrives over /api/events.
func (s *Server) handleCreateSearch(w http.ResponseWriter, r *http.Request) {
	var body createSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid JSON body", err)
		return
	}

	userRequest := strings.TrimSpace(body.Request)
	if userRequest == "" {
		respondWithError(w, http.StatusBadRequest, "Field 'request' is required", nil)
		return
	}
	if len(userRequest) > maxRequestLength {
		respondWithError(w, http.StatusBadRequest, "Request text too long", nil)
		return
	}

	req := &database.Request{
		PublicID:    uuid.New().String(),
		UserRequest: userRequest,
		Status:      database.StatusPending,
	}
	if err := s.repo.CreateRequest(req); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to create run", err)
		return
	}

	// the run outlives the HTTP request
	go s.runner.Run(context.Background(), req)

	respondWithJSON(w, http.StatusAccepted, map[string]string{
		"request_id": req.PublicID,
		"status":     req.Status,
	})
}

// handleGetSearch returns a run with its criteria and clusters, best trend
// score first
func (s *Server) handleGetSearch(w http.ResponseWriter, r *http.Request) {
	publicID := r.PathValue("id")
	if _, err := uuid.Parse(publicID); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request id", err)
		return
	}

	req, err := s.repo.GetRequestByPublicID(publicID)
	if err != nil {
		if database.IsNotFound(err) {
			respondWithError(w, http.StatusNotFound, "Run not found", nil)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to load run", err)
		return
	}

	clusters, err := s.repo.GetClustersByRequest(req.ID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load clusters", err)
		return
	}
	req.Clusters = clusters

	respondWithJSON(w, http.StatusOK, req)
}

// handleGetSearchProducts returns every scraped listing of a run
func (s *Server) handleGetSearchProducts(w http.ResponseWriter, r *http.Request) {
	publicID := r.PathValue("id")
	if _, err := uuid.Parse(publicID); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request id", err)
		return
	}

	req, err := s.repo.GetRequestByPublicID(publicID)
	if err != nil {
		if database.IsNotFound(err) {
			respondWithError(w, http.StatusNotFound, "Run not found", nil)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to load run", err)
		return
	}

	products, err := s.repo.GetProductsByRequest(req.ID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load products", err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"request_id": req.PublicID,
		"count":      len(products),
		"products":   products,
	})
}

// handleListSearches returns recent runs, newest first
func (s *Server) handleListSearches(w http.ResponseWriter, r *http.Request) {
	minLimit, maxLimit := 1, 100
	limit := getIntParam(r, "limit", 20, &minLimit, &maxLimit)

	reqs, err := s.repo.GetRecentRequests(limit)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load runs", err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"count":    len(reqs),
		"requests": reqs,
	})
}
