package models

import (
	"time"
)

// Update request statuses. A request is created in review and resolved exactly
// once; terminal requests are never reopened.
const (
	UpdateRequestInReview = "in-review"
	UpdateRequestApproved = "approved"
	UpdateRequestRejected = "rejected"
)

type UpdateRequest struct {
	ID        int        `json:"id"`
	VehicleID int        `json:"vehicle_id"`
	UserID    int        `json:"user_id"`
	Status    string     `json:"status"`
	UpdatedBy int        `json:"updated_by,omitempty"`
	Note      string     `json:"note,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}
