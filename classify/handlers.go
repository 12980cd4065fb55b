package classify

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/google/uuid"
)

type ClassifyRequest struct {
	URL string `json:"url"`
}

// Handler exposes the orchestrator as the POST /classify endpoint.
type Handler struct {
	Orchestrator *Orchestrator
}

func (h *Handler) Classify(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req ClassifyRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	reqID := uuid.NewString()[:8]

	result, err := h.Orchestrator.Classify(r.Context(), req.URL)
	if err != nil {
		if errors.Is(err, ErrNoURL) {
			http.Error(w, "url required", http.StatusBadRequest)
			return
		}
		// Scorer failure is the one fatal category: there is no fallback
		// left, so no fabricated result.
		log.Printf("[CLASSIFY] %s request failed for %q: %v", reqID, req.URL, err)
		http.Error(w, "classification unavailable", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(result)

	log.Printf("[CLASSIFY] %s %q -> %s (%.2f) %v", reqID, req.URL, result.Classification, result.Confidence, result.Reasons)
}
