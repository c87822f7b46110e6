package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"nextride/internal/models"
	"nextride/internal/services"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// serviceError maps the service-layer sentinels onto HTTP statuses. Anything
// unrecognized is a 500.
func serviceError(w http.ResponseWriter, err error) {
	var gatewayErr *services.GatewayError
	switch {
	case errors.Is(err, models.ErrVehicleNotFound),
		errors.Is(err, models.ErrRentVehicleNotFound),
		errors.Is(err, models.ErrUpdateRequestNotFound),
		errors.Is(err, models.ErrTransactionNotFound),
		errors.Is(err, models.ErrSummaryNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, models.ErrForbidden):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, models.ErrInvalidStatus),
		errors.Is(err, models.ErrUpdateRequestPending):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.As(err, &gatewayErr):
		http.Error(w, gatewayErr.Error(), http.StatusBadGateway)
	default:
		log.Printf("Internal error: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
