package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"nextride/internal/models"
	"nextride/internal/pagination"
	"nextride/internal/services"
)

type UpdateRequestHandler struct {
	Service *services.UpdateRequestService
}

// SubmitUpdateRequest lets the owner edit a published listing. The edit goes
// live immediately but pulls the listing back into pending review.
func (h *UpdateRequestHandler) SubmitUpdateRequest(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	vehicleID, err := strconv.Atoi(getParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid vehicle ID", http.StatusBadRequest)
		return
	}

	var edit models.VehicleEdit
	if err := json.NewDecoder(r.Body).Decode(&edit); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if edit.Price <= 0 {
		http.Error(w, "price must be positive", http.StatusBadRequest)
		return
	}

	request, err := h.Service.Submit(r.Context(), vehicleID, claims.UserID, edit)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, request)
}

// ResolveUpdateRequest is the admin review endpoint: action is approve or
// reject, with an optional note on rejection.
func (h *UpdateRequestHandler) ResolveUpdateRequest(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	requestID, err := strconv.Atoi(getParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid request ID", http.StatusBadRequest)
		return
	}

	var req struct {
		Action string `json:"action"`
		Note   string `json:"note"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	var request models.UpdateRequest
	switch req.Action {
	case "approve":
		request, err = h.Service.Approve(r.Context(), requestID, claims.UserID)
	case "reject":
		request, err = h.Service.Reject(r.Context(), requestID, claims.UserID, req.Note)
	default:
		http.Error(w, "action must be approve or reject", http.StatusBadRequest)
		return
	}
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, request)
}

func (h *UpdateRequestHandler) GetUpdateRequests(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, err := h.Service.List(r.Context(), q.Get("status"), q.Get("cursor"), pagination.ParseLimit(q.Get("limit")))
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}
