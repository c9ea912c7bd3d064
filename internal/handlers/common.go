package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gradeport/gradeport/internal/models"
	"github.com/gradeport/gradeport/internal/reconcile"
	"github.com/gradeport/gradeport/internal/sessions"
	"github.com/gradeport/gradeport/internal/storage"
	"github.com/gradeport/gradeport/internal/store"
)

type Handler struct {
	sessionStore *sessions.Store
	images       storage.ImageStore
	analyzer     *reconcile.Analyzer
	submissions  store.SubmissionStore
	tiers        store.TierStore
	audit        store.AuditLog
	staticDir    string
	now          func() time.Time
}

// Options wires the handler's collaborators. StaticDir defaults to "static".
type Options struct {
	Sessions    *sessions.Store
	Images      storage.ImageStore
	Analyzer    *reconcile.Analyzer
	Submissions store.SubmissionStore
	Tiers       store.TierStore
	Audit       store.AuditLog
	StaticDir   string
}

func New(opts Options) *Handler {
	h := &Handler{
		sessionStore: opts.Sessions,
		images:       opts.Images,
		analyzer:     opts.Analyzer,
		submissions:  opts.Submissions,
		tiers:        opts.Tiers,
		audit:        opts.Audit,
		staticDir:    opts.StaticDir,
		now:          time.Now,
	}
	if h.sessionStore == nil {
		h.sessionStore = sessions.New()
	}
	if h.staticDir == "" {
		h.staticDir = "static"
	}
	return h
}

// RegisterRoutes attaches every handler to the mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/sessions", h.HandleSessions)
	mux.HandleFunc("/api/sessions/", h.HandleSessionDetail)
	mux.HandleFunc("/api/submissions", h.HandleSubmissions)
	mux.HandleFunc("/api/submissions/", h.HandleSubmissionDetail)
	mux.HandleFunc("/api/service-tiers", h.HandleServiceTiers)
	mux.HandleFunc("/api/admin/submissions", h.HandleAdminSubmissions)
	mux.HandleFunc("/api/admin/submissions/search", h.HandleAdminSearch)
	mux.HandleFunc("/api/admin/service-tiers", h.HandleAdminTiers)
	mux.HandleFunc("/healthcheck", h.HandleHealthcheck)
	mux.HandleFunc("/", h.HandleStatic)
}

// Response helpers
func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	slog.Error(message)
	http.Error(w, message, code)
}

// Session helpers
func (h *Handler) getSessionOrError(w http.ResponseWriter, sessionID string) (*models.GradingSession, bool) {
	session, exists := h.sessionStore.Get(sessionID)
	if !exists {
		h.writeError(w, "Session not found", http.StatusNotFound)
		return nil, false
	}
	return session, true
}
