package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gradeport/gradeport/internal/auth"
	"github.com/gradeport/gradeport/internal/models"
	"github.com/gradeport/gradeport/internal/store"
	"github.com/gradeport/gradeport/internal/tiers"
)

// HandleServiceTiers serves the public tier catalog. When the store is
// unreachable it falls back to the built-in catalog so the submission form
// keeps working.
func (h *Handler) HandleServiceTiers(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	company := strings.ToLower(r.URL.Query().Get("company"))

	var (
		list []models.ServiceTier
		err  error
	)
	if h.tiers == nil {
		err = errors.New("tier store not configured")
	} else if company != "" {
		list, err = h.tiers.ListByCompany(r.Context(), company)
	} else {
		list, err = h.tiers.ListAll(r.Context())
	}
	if err != nil {
		slog.Warn("Tier store unavailable, serving built-in catalog", "err", err)
		if company != "" {
			list = tiers.DefaultCatalogFor(company)
		} else {
			list = tiers.DefaultCatalog()
		}
	}
	if list == nil {
		list = []models.ServiceTier{}
	}
	h.writeJSON(w, map[string]any{"tiers": list})
}

// HandleAdminTiers mutates the tier catalog. Admins may only touch companies
// their group scope covers; every mutation is written to the audit log.
func (h *Handler) HandleAdminTiers(w http.ResponseWriter, r *http.Request) {
	authCtx, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case "PUT":
		h.putTier(w, r, authCtx)
	case "DELETE":
		h.deleteTier(w, r, authCtx)
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) putTier(w http.ResponseWriter, r *http.Request, authCtx auth.Context) {
	var tier models.ServiceTier
	if err := json.NewDecoder(r.Body).Decode(&tier); err != nil {
		h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	tier.Company = strings.ToLower(strings.TrimSpace(tier.Company))
	tier.TierID = strings.ToLower(strings.TrimSpace(tier.TierID))
	if tier.Company == "" || tier.TierID == "" || tier.Name == "" {
		h.writeError(w, "company, tierId, and name are required", http.StatusBadRequest)
		return
	}
	if !authCtx.Allows(tier.Company) {
		h.writeError(w, "Forbidden for company "+tier.Company, http.StatusForbidden)
		return
	}

	oldValue := h.tierSnapshot(r.Context(), tier.Company, tier.TierID)

	tier.UpdatedAt = h.now()
	if err := h.tiers.Put(r.Context(), &tier); err != nil {
		h.writeError(w, "Failed to save tier: "+err.Error(), http.StatusInternalServerError)
		return
	}

	action := "update"
	if oldValue == "" {
		action = "create"
	}
	h.appendAudit(r, action, tier.Company, tier.TierID, oldValue, marshalTier(&tier))

	h.writeJSON(w, tier)
}

func (h *Handler) deleteTier(w http.ResponseWriter, r *http.Request, authCtx auth.Context) {
	company := strings.ToLower(r.URL.Query().Get("company"))
	tierID := strings.ToLower(r.URL.Query().Get("tierId"))
	if company == "" || tierID == "" {
		h.writeError(w, "company and tierId query parameters are required", http.StatusBadRequest)
		return
	}
	if !authCtx.Allows(company) {
		h.writeError(w, "Forbidden for company "+company, http.StatusForbidden)
		return
	}

	oldValue := h.tierSnapshot(r.Context(), company, tierID)

	if err := h.tiers.Delete(r.Context(), company, tierID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.writeError(w, "Tier not found", http.StatusNotFound)
			return
		}
		h.writeError(w, "Failed to delete tier: "+err.Error(), http.StatusInternalServerError)
		return
	}

	h.appendAudit(r, "delete", company, tierID, oldValue, "")

	w.WriteHeader(http.StatusNoContent)
}

// tierSnapshot returns the current JSON form of a tier for audit records,
// empty if it does not exist.
func (h *Handler) tierSnapshot(ctx context.Context, company, tierID string) string {
	list, err := h.tiers.ListByCompany(ctx, company)
	if err != nil {
		return ""
	}
	for i := range list {
		if strings.EqualFold(list[i].TierID, tierID) {
			return marshalTier(&list[i])
		}
	}
	return ""
}

func marshalTier(tier *models.ServiceTier) string {
	raw, err := json.Marshal(tier)
	if err != nil {
		return ""
	}
	return string(raw)
}

func (h *Handler) appendAudit(r *http.Request, action, company, tierID, oldValue, newValue string) {
	if h.audit == nil {
		return
	}
	rec := &models.TierAuditRecord{
		AuditID:     uuid.NewString(),
		Timestamp:   h.now(),
		Action:      action,
		Company:     company,
		TierID:      tierID,
		ActorEmail:  r.Header.Get(auth.EmailHeader),
		ActorGroups: r.Header.Get(auth.GroupsHeader),
		OldValue:    oldValue,
		NewValue:    newValue,
	}
	if err := h.audit.Append(r.Context(), rec); err != nil {
		slog.Error("Failed to write tier audit record", "err", err, "action", action, "company", company, "tier", tierID)
	}
}
