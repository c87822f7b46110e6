package models

import (
	"encoding/json"
	"time"
)

// Payment transaction statuses. A transaction is created in the initiated
// state and moves to exactly one terminal state, driven by the gateway
// callback.
const (
	TransactionInitiated = "initiated"
	TransactionSuccess   = "success"
	TransactionFailed    = "failed"
	TransactionCancelled = "cancelled"
)

type PaymentTransaction struct {
	ID              int             `json:"id"`
	TranID          string          `json:"tran_id"`
	VehicleID       int             `json:"vehicle_id"`
	UserID          int             `json:"user_id"`
	Amount          float64         `json:"amount"`
	Currency        string          `json:"currency"`
	Status          string          `json:"status"`
	ProductName     string          `json:"product_name,omitempty"`
	CusName         string          `json:"cus_name,omitempty"`
	CusEmail        string          `json:"cus_email,omitempty"`
	CusPhone        string          `json:"cus_phone,omitempty"`
	GatewayPageURL  string          `json:"gateway_page_url,omitempty"`
	SessionKey      string          `json:"sessionkey,omitempty"`
	GatewayResponse json.RawMessage `json:"gateway_response,omitempty"`
	InitiatedAt     time.Time       `json:"initiated_at"`
	CompletedAt     *time.Time      `json:"completed_at,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// IsTerminal reports whether the transaction has already been resolved.
// Gateway callbacks may be retried; a terminal transaction is never moved
// again.
func (t PaymentTransaction) IsTerminal() bool {
	switch t.Status {
	case TransactionSuccess, TransactionFailed, TransactionCancelled:
		return true
	}
	return false
}

type PaymentFilterRequest struct {
	Status    string     `json:"status"`
	Search    string     `json:"search"`
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
}
