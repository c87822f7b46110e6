package models

// UserSummary holds the denormalized per-owner listing counters shown on the
// dashboard. The row is created lazily on the first listing write and is never
// deleted; counters are advisory and repairable via recompute.
type UserSummary struct {
	UserID           int `json:"user_id"`
	BikePostCount    int `json:"bike_post_count"`
	CarPostCount     int `json:"car_post_count"`
	PaidCount        int `json:"paid_count"`
	PendingCount     int `json:"pending_count"`
	ActiveCount      int `json:"active_count"`
	SoldCount        int `json:"sold_count"`
	RejectedCount    int `json:"rejected_count"`
	TotalListings    int `json:"total_listings"`
	RentVehicleCount int `json:"rent_vehicle_count"`
}
