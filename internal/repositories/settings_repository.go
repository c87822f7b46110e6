package repositories

import (
	"context"
	"database/sql"
	"errors"

	"nextride/internal/models"
)

type SettingsRepository struct {
	DB *sql.DB
}

// GetSettings returns the single settings row, seeding it with defaults on
// first read.
func (r *SettingsRepository) GetSettings(ctx context.Context) (models.SystemSetting, error) {
	query := `
    SELECT id, site_name, allow_registration, commission_rate, max_listings_per_user, contact_email, maintenance_mode, home_banner_text
    FROM system_settings ORDER BY id LIMIT 1
    `
	var s models.SystemSetting
	var bannerText sql.NullString
	err := r.DB.QueryRowContext(ctx, query).Scan(
		&s.ID, &s.SiteName, &s.AllowRegistration, &s.CommissionRate,
		&s.MaxListingsPerUser, &s.ContactEmail, &s.MaintenanceMode, &bannerText,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return r.seedDefaults(ctx)
	}
	if err != nil {
		return models.SystemSetting{}, err
	}
	if bannerText.Valid {
		s.HomeBannerText = bannerText.String
	}
	return s, nil
}

func (r *SettingsRepository) seedDefaults(ctx context.Context) (models.SystemSetting, error) {
	s := models.DefaultSystemSetting()
	result, err := r.DB.ExecContext(ctx,
		`INSERT INTO system_settings (site_name, allow_registration, commission_rate, max_listings_per_user, contact_email, maintenance_mode) VALUES (?, ?, ?, ?, ?, ?)`,
		s.SiteName, s.AllowRegistration, s.CommissionRate,
		s.MaxListingsPerUser, s.ContactEmail, s.MaintenanceMode,
	)
	if err != nil {
		return models.SystemSetting{}, err
	}
	lastID, err := result.LastInsertId()
	if err != nil {
		return models.SystemSetting{}, err
	}
	s.ID = int(lastID)
	return s, nil
}

func (r *SettingsRepository) UpdateSettings(ctx context.Context, s models.SystemSetting) error {
	result, err := r.DB.ExecContext(ctx,
		`UPDATE system_settings SET site_name = ?, allow_registration = ?, commission_rate = ?, max_listings_per_user = ?, contact_email = ?, maintenance_mode = ?, home_banner_text = ? WHERE id = ?`,
		s.SiteName, s.AllowRegistration, s.CommissionRate,
		s.MaxListingsPerUser, s.ContactEmail, s.MaintenanceMode,
		s.HomeBannerText, s.ID,
	)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}
