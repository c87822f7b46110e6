package models

// SystemSetting is the single platform configuration row. The commission rate
// is read at listing creation time to derive the stored platform fee.
type SystemSetting struct {
	ID                 int     `json:"id"`
	SiteName           string  `json:"site_name"`
	AllowRegistration  bool    `json:"allow_registration"`
	CommissionRate     float64 `json:"commission_rate"`
	MaxListingsPerUser int     `json:"max_listings_per_user"`
	ContactEmail       string  `json:"contact_email"`
	MaintenanceMode    bool    `json:"maintenance_mode"`
	HomeBannerText     string  `json:"home_banner_text"`
}

// DefaultSystemSetting mirrors the values the settings row is seeded with.
func DefaultSystemSetting() SystemSetting {
	return SystemSetting{
		SiteName:           "NextRide",
		AllowRegistration:  true,
		CommissionRate:     0.05,
		MaxListingsPerUser: 10,
		ContactEmail:       "support@nextride.com",
	}
}
