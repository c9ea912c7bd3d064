package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gradeport/gradeport/internal/models"
	"github.com/gradeport/gradeport/internal/store"
	"github.com/gradeport/gradeport/internal/submission"
)

func (h *Handler) HandleSubmissions(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var request struct {
		SessionID     string               `json:"sessionId"`
		SubmitterInfo models.SubmitterInfo `json:"submitterInfo"`
		Cards         []models.CardRecord  `json:"cards"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	// Cards come from the session unless the request carries its own edited
	// list.
	cards := request.Cards
	if len(cards) == 0 && request.SessionID != "" {
		session, ok := h.getSessionOrError(w, request.SessionID)
		if !ok {
			return
		}
		cards = session.Cards
	}

	sub, err := submission.Assemble(request.SubmitterInfo, cards, h.now())
	if err != nil {
		var verr *submission.ValidationError
		if errors.As(err, &verr) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			if encErr := json.NewEncoder(w).Encode(map[string]any{
				"error":  "Validation failed",
				"fields": verr.Fields,
			}); encErr != nil {
				h.writeError(w, "Internal server error", http.StatusInternalServerError)
			}
			return
		}
		h.writeError(w, "Failed to assemble submission: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if err := h.submissions.Put(r.Context(), sub); err != nil {
		h.writeError(w, "Failed to save submission: "+err.Error(), http.StatusInternalServerError)
		return
	}

	// The session has served its purpose once the submission is durable.
	if request.SessionID != "" {
		h.sessionStore.Delete(request.SessionID)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	h.writeJSON(w, sub)
}

func (h *Handler) HandleSubmissionDetail(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/api/submissions/")
	if id == "" {
		h.writeError(w, "Submission id is required", http.StatusBadRequest)
		return
	}

	sub, err := h.submissions.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.writeError(w, "Submission not found", http.StatusNotFound)
			return
		}
		h.writeError(w, "Failed to load submission: "+err.Error(), http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, sub)
}
