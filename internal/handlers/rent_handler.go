package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"nextride/internal/models"
	"nextride/internal/pagination"
	"nextride/internal/services"
)

type RentHandler struct {
	Service *services.RentService
	Files   FileSaver
}

func (h *RentHandler) CreateRentVehicle(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var rv models.RentVehicle
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		price, _ := strconv.ParseFloat(r.FormValue("price_per_day"), 64)
		rv = models.RentVehicle{
			VehicleModel:  r.FormValue("vehicle_model"),
			VehicleType:   r.FormValue("vehicle_type"),
			Address:       r.FormValue("address"),
			ContactNumber: r.FormValue("contact_number"),
			Email:         r.FormValue("email"),
			PricePerDay:   price,
			Description:   r.FormValue("description"),
		}
		if h.Files != nil && r.MultipartForm != nil {
			for _, header := range r.MultipartForm.File["images"] {
				file, err := header.Open()
				if err != nil {
					http.Error(w, "Failed to read upload", http.StatusBadRequest)
					return
				}
				data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
				file.Close()
				if err != nil {
					http.Error(w, "Failed to read upload", http.StatusBadRequest)
					return
				}
				url, err := h.Files.SaveFile(r.Context(), data, header.Filename, header.Header.Get("Content-Type"), "rent/images")
				if err != nil {
					serviceError(w, err)
					return
				}
				rv.Images = append(rv.Images, url)
			}
		}
	} else {
		if err := json.NewDecoder(r.Body).Decode(&rv); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
	}

	if rv.VehicleModel == "" || rv.PricePerDay <= 0 {
		http.Error(w, "vehicle_model and a positive price_per_day are required", http.StatusBadRequest)
		return
	}
	rv.OwnerID = claims.UserID

	created, err := h.Service.CreateRentVehicle(r.Context(), rv)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *RentHandler) GetRentVehicleByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(getParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid rent vehicle ID", http.StatusBadRequest)
		return
	}

	rv, err := h.Service.GetRentVehicle(r.Context(), id)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rv)
}

func (h *RentHandler) GetRentVehicles(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.RentFilterRequest{
		Status:       q.Get("status"),
		VehicleType:  q.Get("vehicle_type"),
		Availability: q.Get("availability"),
		Search:       q.Get("search"),
	}
	if filter.Status == "" {
		filter.Status = models.RentStatusApproved
	}

	page, err := h.Service.ListRentVehicles(r.Context(), filter, q.Get("cursor"), pagination.ParseLimit(q.Get("limit")))
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *RentHandler) GetOwnerRentVehicles(w http.ResponseWriter, r *http.Request) {
	ownerID, err := strconv.Atoi(getParam(r, "user_id"))
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusBadRequest)
		return
	}

	vehicles, err := h.Service.ListByOwner(r.Context(), ownerID)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicles)
}

// UpdateRentStatus is the admin review endpoint.
func (h *RentHandler) UpdateRentStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(getParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid rent vehicle ID", http.StatusBadRequest)
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	updated, err := h.Service.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// UpdateAvailability flips the owner-controlled availability flag.
func (h *RentHandler) UpdateAvailability(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := strconv.Atoi(getParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid rent vehicle ID", http.StatusBadRequest)
		return
	}

	var req struct {
		Availability string `json:"availability"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	updated, err := h.Service.UpdateAvailability(r.Context(), id, claims.UserID, req.Availability)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *RentHandler) DeleteRentVehicle(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := strconv.Atoi(getParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid rent vehicle ID", http.StatusBadRequest)
		return
	}

	if err := h.Service.DeleteRentVehicle(r.Context(), id, claims.UserID, claims.Role); err != nil {
		serviceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
