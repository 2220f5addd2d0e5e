package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/tzlin/deckgen/internal/deck"
	"github.com/tzlin/deckgen/internal/pipeline"
)

func (s *Server) handleSubmitDeck(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var plan deck.Plan
	if err := json.NewDecoder(r.Body).Decode(&plan); err != nil {
		jsonError(w, "invalid plan: "+err.Error(), http.StatusBadRequest)
		return
	}
	if plan.Scripture == "" {
		jsonError(w, "scripture citation is required", http.StatusBadRequest)
		return
	}
	if plan.Message == "" {
		jsonError(w, "message title is required", http.StatusBadRequest)
		return
	}

	now := time.Now()
	job := &pipeline.Job{
		ID:        pipeline.NewJobID(),
		Status:    pipeline.StatusQueued,
		Phase:     "queued",
		Plan:      plan,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.orchestrator.Submit(job); err != nil {
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]any{
		"job_id":   job.ID,
		"status":   job.Status,
		"poll_url": fmt.Sprintf("/api/decks/%s", job.ID),
	})
}

func (s *Server) handleDeckStatus(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(job.Snapshot())
}
