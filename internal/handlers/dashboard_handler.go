package handlers

import (
	"net/http"

	"nextride/internal/services"
)

type DashboardHandler struct {
	Service *services.DashboardService
}

func (h *DashboardHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.GetStats(r.Context())
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
