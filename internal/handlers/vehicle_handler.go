package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"nextride/internal/models"
	"nextride/internal/pagination"
	"nextride/internal/services"
)

const (
	maxUploadBytes   = 32 << 20
	maxListingImages = 5
)

type FileSaver interface {
	SaveFile(ctx context.Context, data []byte, originalName, contentType, folder string) (string, error)
}

type VehicleHandler struct {
	Service *services.VehicleService
	Files   FileSaver
}

// CreateVehicle accepts either a JSON body with media URLs or a multipart
// form with the media attached; attached files are uploaded before the
// listing row is written.
func (h *VehicleHandler) CreateVehicle(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var vehicle models.Vehicle
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		parsed, err := h.parseMultipartVehicle(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		vehicle = parsed
	} else {
		if err := json.NewDecoder(r.Body).Decode(&vehicle); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
	}

	if vehicle.VehicleType != models.VehicleTypeCar && vehicle.VehicleType != models.VehicleTypeBike {
		http.Error(w, "vehicle_type must be car or bike", http.StatusBadRequest)
		return
	}
	if vehicle.Price <= 0 {
		http.Error(w, "price must be positive", http.StatusBadRequest)
		return
	}
	vehicle.UserID = claims.UserID

	created, err := h.Service.CreateVehicle(r.Context(), vehicle)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *VehicleHandler) parseMultipartVehicle(r *http.Request) (models.Vehicle, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return models.Vehicle{}, err
	}

	year, _ := strconv.Atoi(r.FormValue("year"))
	price, _ := strconv.ParseFloat(r.FormValue("price"), 64)
	mileage, _ := strconv.Atoi(r.FormValue("mileage"))

	v := models.Vehicle{
		VehicleType: r.FormValue("vehicle_type"),
		Make:        r.FormValue("make"),
		ModelName:   r.FormValue("model_name"),
		Year:        year,
		Price:       price,
		Mileage:     mileage,
		FuelType:    r.FormValue("fuel_type"),
		Condition:   r.FormValue("condition"),
		Description: r.FormValue("description"),
		Location:    r.FormValue("location"),
		Phone:       r.FormValue("phone"),
	}

	if h.Files != nil && r.MultipartForm != nil {
		images := r.MultipartForm.File["images"]
		if len(images) > maxListingImages {
			return models.Vehicle{}, errors.New("a listing carries at most 5 images")
		}
		for _, header := range images {
			url, err := h.uploadFile(r.Context(), header, "vehicles/images")
			if err != nil {
				return models.Vehicle{}, err
			}
			v.Images = append(v.Images, url)
		}
		if videos := r.MultipartForm.File["video"]; len(videos) > 0 {
			url, err := h.uploadFile(r.Context(), videos[0], "vehicles/videos")
			if err != nil {
				return models.Vehicle{}, err
			}
			v.Video = url
		}
	}
	return v, nil
}

func (h *VehicleHandler) uploadFile(ctx context.Context, header *multipart.FileHeader, folder string) (string, error) {
	file, err := header.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		return "", err
	}
	return h.Files.SaveFile(ctx, data, header.Filename, header.Header.Get("Content-Type"), folder)
}

func (h *VehicleHandler) GetVehicleByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(getParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid vehicle ID", http.StatusBadRequest)
		return
	}

	vehicle, err := h.Service.GetVehicle(r.Context(), id)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicle)
}

// GetFilteredListings is the public browse endpoint: keyset-paged, filtered
// through query parameters.
func (h *VehicleHandler) GetFilteredListings(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	priceFrom, _ := strconv.ParseFloat(q.Get("price_from"), 64)
	priceTo, _ := strconv.ParseFloat(q.Get("price_to"), 64)

	filter := models.VehicleFilterRequest{
		VehicleType: q.Get("vehicle_type"),
		Status:      q.Get("status"),
		FuelType:    q.Get("fuel_type"),
		PriceFrom:   priceFrom,
		PriceTo:     priceTo,
		Search:      q.Get("search"),
	}
	if filter.Status == "" {
		filter.Status = models.VehicleStatusActive
	}

	page, err := h.Service.ListVehicles(r.Context(), filter, q.Get("cursor"), pagination.ParseLimit(q.Get("limit")))
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// GetAdminListings lists every listing regardless of status.
func (h *VehicleHandler) GetAdminListings(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	userID, _ := strconv.Atoi(q.Get("user_id"))

	filter := models.VehicleFilterRequest{
		VehicleType: q.Get("vehicle_type"),
		Status:      q.Get("status"),
		Search:      q.Get("search"),
		UserID:      userID,
	}

	page, err := h.Service.ListVehicles(r.Context(), filter, q.Get("cursor"), pagination.ParseLimit(q.Get("limit")))
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *VehicleHandler) GetSellerListings(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.Atoi(getParam(r, "user_id"))
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusBadRequest)
		return
	}

	q := r.URL.Query()
	page, err := h.Service.ListSellerListings(r.Context(), userID, q.Get("cursor"), pagination.ParseLimit(q.Get("limit")))
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// UpdateVehicleStatus is the admin moderation endpoint.
func (h *VehicleHandler) UpdateVehicleStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(getParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid vehicle ID", http.StatusBadRequest)
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
	log.Printf("Vehicle %d moderated to %s", id, req.Status)
	writeJSON(w, http.StatusOK, updated)
}

func (h *VehicleHandler) DeleteVehicle(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := strconv.Atoi(getParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid vehicle ID", http.StatusBadRequest)
		return
	}

	if err := h.Service.DeleteVehicle(r.Context(), id, claims.UserID, claims.Role); err != nil {
		serviceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
