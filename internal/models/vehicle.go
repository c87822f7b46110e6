package models

import (
	"time"
)

// Sale listing moderation statuses.
const (
	VehicleStatusPending  = "pending"
	VehicleStatusActive   = "active"
	VehicleStatusSold     = "sold"
	VehicleStatusRejected = "rejected"
)

// Platform fee payment statuses.
const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
)

const (
	VehicleTypeCar  = "car"
	VehicleTypeBike = "bike"
)

type Vehicle struct {
	ID            int        `json:"id"`
	UserID        int        `json:"user_id"`
	VehicleType   string     `json:"vehicle_type"`
	Make          string     `json:"make"`
	ModelName     string     `json:"model_name"`
	Year          int        `json:"year"`
	Price         float64    `json:"price"`
	Mileage       int        `json:"mileage"`
	FuelType      string     `json:"fuel_type"`
	Condition     string     `json:"condition"`
	Description   string     `json:"description"`
	Location      string     `json:"location,omitempty"`
	Phone         string     `json:"phone"`
	Images        []string   `json:"images"`
	Video         string     `json:"video,omitempty"`
	Status        string     `json:"status"`
	PaymentStatus string     `json:"payment_status"`
	PlatformFee   float64    `json:"platform_fee"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}

// VehicleEdit carries the owner-editable fields of a sale listing. An edit
// submitted through the update-request flow is applied to the live row.
type VehicleEdit struct {
	Make        string   `json:"make"`
	ModelName   string   `json:"model_name"`
	Year        int      `json:"year"`
	Price       float64  `json:"price"`
	Mileage     int      `json:"mileage"`
	FuelType    string   `json:"fuel_type"`
	Condition   string   `json:"condition"`
	Description string   `json:"description"`
	Location    string   `json:"location"`
	Phone       string   `json:"phone"`
	Images      []string `json:"images,omitempty"`
}

type VehicleFilterRequest struct {
	VehicleType string  `json:"vehicle_type"`
	Status      string  `json:"status"`
	FuelType    string  `json:"fuel_type"`
	PriceFrom   float64 `json:"price_from"`
	PriceTo     float64 `json:"price_to"`
	Search      string  `json:"search"`
	UserID      int     `json:"user_id,omitempty"`
}
