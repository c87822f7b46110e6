package handlers

import (
	"encoding/json"
	"net/http"

	"nextride/internal/services"
)

type FCMHandler struct {
	Service *services.NotifierService
}

func (h *FCMHandler) RegisterToken(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Token == "" {
		http.Error(w, "token is required", http.StatusBadRequest)
		return
	}

	if err := h.Service.RegisterToken(r.Context(), claims.UserID, req.Token); err != nil {
		serviceError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *FCMHandler) UnregisterToken(w http.ResponseWriter, r *http.Request) {
	token := getParam(r, "token")
	if token == "" {
		http.Error(w, "token is required", http.StatusBadRequest)
		return
	}

	if err := h.Service.UnregisterToken(r.Context(), token); err != nil {
		serviceError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
