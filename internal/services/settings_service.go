package services

import (
	"context"

	"nextride/internal/models"
)

// SettingsService wraps the single platform configuration row.
type SettingsService struct {
	SettingsRepo SettingsStore
}

func (s *SettingsService) GetSettings(ctx context.Context) (models.SystemSetting, error) {
	return s.SettingsRepo.GetSettings(ctx)
}

func (s *SettingsService) UpdateSettings(ctx context.Context, settings models.SystemSetting) (models.SystemSetting, error) {
	if settings.CommissionRate < 0 || settings.CommissionRate >= 1 {
		return models.SystemSetting{}, models.ErrInvalidStatus
	}
	current, err := s.SettingsRepo.GetSettings(ctx)
	if err != nil {
		return models.SystemSetting{}, err
	}
	settings.ID = current.ID
	if err := s.SettingsRepo.UpdateSettings(ctx, settings); err != nil {
		return models.SystemSetting{}, err
	}
	return settings, nil
}

// CommissionRate reads the rate used for fee derivation at listing creation.
func (s *SettingsService) CommissionRate(ctx context.Context) (float64, error) {
	settings, err := s.SettingsRepo.GetSettings(ctx)
	if err != nil {
		return 0, err
	}
	return settings.CommissionRate, nil
}
