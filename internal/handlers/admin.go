package handlers

import (
	"net/http"
	"strconv"

	"github.com/gradeport/gradeport/internal/auth"
)

// defaultListLimit bounds one page of the admin submission listing.
const defaultListLimit = 50

// requireAdmin resolves the trusted groups header and rejects callers with no
// admin scope.
func (h *Handler) requireAdmin(w http.ResponseWriter, r *http.Request) (auth.Context, bool) {
	groups := auth.ParseGroupsHeader(r.Header.Get(auth.GroupsHeader))
	authCtx := auth.FromGroups(groups)
	if !authCtx.IsAdmin() {
		h.writeError(w, "Forbidden", http.StatusForbidden)
		return auth.Context{}, false
	}
	return authCtx, true
}

func (h *Handler) HandleAdminSubmissions(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	authCtx, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}

	limit := defaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			h.writeError(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	page, err := h.submissions.List(r.Context(), authCtx.Companies(), limit, r.URL.Query().Get("cursor"))
	if err != nil {
		h.writeError(w, "Failed to list submissions: "+err.Error(), http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, page)
}

func (h *Handler) HandleAdminSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	authCtx, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}

	email := r.URL.Query().Get("email")
	if email == "" {
		h.writeError(w, "email query parameter is required", http.StatusBadRequest)
		return
	}

	subs, err := h.submissions.SearchByEmail(r.Context(), email, authCtx.Companies())
	if err != nil {
		h.writeError(w, "Failed to search submissions: "+err.Error(), http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, map[string]any{"submissions": subs})
}
