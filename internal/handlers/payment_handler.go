package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"nextride/internal/models"
	"nextride/internal/pagination"
	"nextride/internal/services"
)

type PaymentHandler struct {
	Service *services.PaymentService

	// Frontend pages the customer lands on after the gateway redirects back.
	SuccessRedirect string
	FailRedirect    string
	CancelRedirect  string
}

func (h *PaymentHandler) InitiatePayment(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req struct {
		VehicleID int    `json:"vehicle_id"`
		CusName   string `json:"cus_name"`
		CusEmail  string `json:"cus_email"`
		CusPhone  string `json:"cus_phone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if req.VehicleID <= 0 {
		http.Error(w, "vehicle_id is required", http.StatusBadRequest)
		return
	}

	tx, err := h.Service.Initiate(r.Context(), services.InitiatePaymentRequest{
		VehicleID: req.VehicleID,
		UserID:    claims.UserID,
		CusName:   req.CusName,
		CusEmail:  req.CusEmail,
		CusPhone:  req.CusPhone,
	})
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, tx)
}

// callbackPayload extracts the transaction token and re-encodes the full
// form body as the snapshot stored on the transaction.
func callbackPayload(r *http.Request) (string, []byte, bool) {
	if err := r.ParseForm(); err != nil {
		return "", nil, false
	}
	tranID := r.PostFormValue("tran_id")
	if tranID == "" {
		tranID = r.FormValue("tran_id")
	}
	if tranID == "" {
		return "", nil, false
	}

	snapshot := make(map[string]string, len(r.PostForm))
	for key := range r.PostForm {
		snapshot[key] = r.PostFormValue(key)
	}
	raw, err := json.Marshal(snapshot)
	if err != nil {
		raw = nil
	}
	return tranID, raw, true
}

// PaymentSuccess receives the gateway's form-encoded success callback and
// sends the customer on to the frontend result page.
func (h *PaymentHandler) PaymentSuccess(w http.ResponseWriter, r *http.Request) {
	tranID, raw, ok := callbackPayload(r)
	if !ok {
		http.Error(w, "tran_id missing", http.StatusBadRequest)
		return
	}

	if err := h.Service.HandleSuccess(r.Context(), tranID, raw); err != nil {
		log.Printf("Success callback for %s failed: %v", tranID, err)
		serviceError(w, err)
		return
	}
	h.redirect(w, r, h.SuccessRedirect)
}

func (h *PaymentHandler) PaymentFail(w http.ResponseWriter, r *http.Request) {
	tranID, raw, ok := callbackPayload(r)
	if !ok {
		http.Error(w, "tran_id missing", http.StatusBadRequest)
		return
	}

	if err := h.Service.HandleFail(r.Context(), tranID, raw); err != nil {
		log.Printf("Fail callback for %s failed: %v", tranID, err)
		serviceError(w, err)
		return
	}
	h.redirect(w, r, h.FailRedirect)
}

func (h *PaymentHandler) PaymentCancel(w http.ResponseWriter, r *http.Request) {
	tranID, raw, ok := callbackPayload(r)
	if !ok {
		http.Error(w, "tran_id missing", http.StatusBadRequest)
		return
	}

	if err := h.Service.HandleCancel(r.Context(), tranID, raw); err != nil {
		log.Printf("Cancel callback for %s failed: %v", tranID, err)
		serviceError(w, err)
		return
	}
	h.redirect(w, r, h.CancelRedirect)
}

func (h *PaymentHandler) redirect(w http.ResponseWriter, r *http.Request, target string) {
	if target == "" {
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (h *PaymentHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	tranID := getParam(r, "tran_id")
	if tranID == "" {
		http.Error(w, "Missing transaction ID", http.StatusBadRequest)
		return
	}

	tx, err := h.Service.GetTransaction(r.Context(), tranID)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tx)
}

// GetTransactions is the admin payment log, filterable by status and date
// range.
func (h *PaymentHandler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.PaymentFilterRequest{
		Status: q.Get("status"),
		Search: q.Get("search"),
	}
	if raw := q.Get("start_date"); raw != "" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			filter.StartDate = &t
		}
	}
	if raw := q.Get("end_date"); raw != "" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			filter.EndDate = &t
		}
	}

	page, err := h.Service.ListTransactions(r.Context(), filter, q.Get("cursor"), pagination.ParseLimit(q.Get("limit")))
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}
