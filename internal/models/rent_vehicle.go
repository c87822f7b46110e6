package models

import (
	"time"
)

// Rent listing moderation statuses.
const (
	RentStatusPending  = "pending"
	RentStatusApproved = "approved"
	RentStatusRejected = "rejected"
)

// Rent listing availability, toggled by the owner independently of moderation.
const (
	AvailabilityAvailable = "available"
	AvailabilityRented    = "rented"
)

type RentVehicle struct {
	ID            int        `json:"id"`
	OwnerID       int        `json:"owner_id"`
	VehicleModel  string     `json:"vehicle_model"`
	VehicleType   string     `json:"vehicle_type"`
	Address       string     `json:"address"`
	ContactNumber string     `json:"contact_number"`
	Email         string     `json:"email,omitempty"`
	PricePerDay   float64    `json:"price_per_day"`
	Description   string     `json:"description,omitempty"`
	Images        []string   `json:"images"`
	Status        string     `json:"status"`
	Availability  string     `json:"availability"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}

type RentFilterRequest struct {
	Status       string `json:"status"`
	VehicleType  string `json:"vehicle_type"`
	Availability string `json:"availability"`
	Search       string `json:"search"`
}
