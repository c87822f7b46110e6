package handlers

import (
	"net/http"
	"strconv"

	"nextride/internal/models"
	"nextride/internal/services"
)

type SummaryHandler struct {
	Service *services.SummaryService
}

// GetUserSummary returns the caller's own dashboard counters; admins may
// pass any user id.
func (h *SummaryHandler) GetUserSummary(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	userID, err := strconv.Atoi(getParam(r, "user_id"))
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusBadRequest)
		return
	}
	if claims.Role != models.RoleAdmin && claims.UserID != userID {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	summary, err := h.Service.GetUserSummary(r.Context(), userID)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// RecomputeSummary rebuilds one owner's counters from the listing tables.
// Admin-only repair endpoint.
func (h *SummaryHandler) RecomputeSummary(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.Atoi(getParam(r, "user_id"))
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusBadRequest)
		return
	}

	summary, err := h.Service.Recompute(r.Context(), userID)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
