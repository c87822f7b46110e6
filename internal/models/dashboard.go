package models

// DashboardStats is the admin overview: platform-wide listing counts by
// moderation status plus the collected fee total.
type DashboardStats struct {
	TotalListings   int     `json:"total_listings"`
	PendingCount    int     `json:"pending_count"`
	ActiveCount     int     `json:"active_count"`
	SoldCount       int     `json:"sold_count"`
	RejectedCount   int     `json:"rejected_count"`
	TotalFees       float64 `json:"total_fees"`
	SellerCount     int     `json:"seller_count"`
	SiteName        string  `json:"site_name"`
	MaintenanceMode bool    `json:"maintenance_mode"`
}
