package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/gradeport/gradeport/internal/models"
	"github.com/gradeport/gradeport/internal/reconcile"
)

// handleAnalyze runs vision detection over a session's images and merges the
// resulting card records into the session.
func (h *Handler) handleAnalyze(w http.ResponseWriter, r *http.Request, sessionID string) {
	if r.Method != "POST" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if h.analyzer == nil {
		h.writeError(w, "Vision analysis is not configured", http.StatusServiceUnavailable)
		return
	}

	session, ok := h.getSessionOrError(w, sessionID)
	if !ok {
		return
	}

	// Optional body restricting analysis to a subset of images.
	var request struct {
		ImageIDs []string `json:"imageIds"`
	}
	if body, err := io.ReadAll(r.Body); err == nil && len(body) > 0 {
		if err := json.Unmarshal(body, &request); err != nil {
			h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
			return
		}
	}

	images := session.Images
	if len(request.ImageIDs) > 0 {
		images = images[:0:0]
		for _, id := range request.ImageIDs {
			img, ok := session.Image(id)
			if !ok {
				h.writeError(w, "Unknown image: "+id, http.StatusBadRequest)
				return
			}
			images = append(images, img)
		}
	}
	if len(images) == 0 {
		h.writeError(w, "Session has no images to analyze", http.StatusBadRequest)
		return
	}

	result := h.analyzer.AnalyzeBatch(r.Context(), images)

	// Merge under the store lock, dropping results for images that were
	// removed from the session while analysis ran.
	var updated *models.GradingSession
	ok = h.sessionStore.Update(sessionID, func(s *models.GradingSession) {
		live := result.Updates[:0:0]
		for _, update := range result.Updates {
			if s.HasImage(update.Ref) {
				live = append(live, update)
			} else {
				slog.Info("Dropping analysis result for removed image", "session_id", sessionID, "image", update.Ref)
			}
		}
		s.Cards = reconcile.Merge(s.Cards, live)
		updated = s
	})
	if !ok {
		h.writeError(w, "Session not found", http.StatusNotFound)
		return
	}

	response := map[string]any{
		"session":  updated,
		"analyzed": len(result.Updates),
	}
	if len(result.Failures) > 0 {
		response["warnings"] = result.Failures
	}
	h.writeJSON(w, response)
}
