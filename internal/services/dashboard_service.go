package services

import (
	"context"

	"nextride/internal/models"
)

type DashboardVehicleStore interface {
	CountByStatus(ctx context.Context) (map[string]int, int, error)
	SumPlatformFees(ctx context.Context) (float64, error)
}

type SummaryCounter interface {
	CountSummaries(ctx context.Context) (int, error)
}

// DashboardService assembles the admin overview from live aggregates. Unlike
// the per-owner summaries this reads the listing tables directly, so it is
// always exact.
type DashboardService struct {
	VehicleRepo  DashboardVehicleStore
	SummaryRepo  SummaryCounter
	SettingsRepo SettingsStore
}

func (s *DashboardService) GetStats(ctx context.Context) (models.DashboardStats, error) {
	counts, total, err := s.VehicleRepo.CountByStatus(ctx)
	if err != nil {
		return models.DashboardStats{}, err
	}
	fees, err := s.VehicleRepo.SumPlatformFees(ctx)
	if err != nil {
		return models.DashboardStats{}, err
	}
	sellers, err := s.SummaryRepo.CountSummaries(ctx)
	if err != nil {
		return models.DashboardStats{}, err
	}
	settings, err := s.SettingsRepo.GetSettings(ctx)
	if err != nil {
		return models.DashboardStats{}, err
	}

	return models.DashboardStats{
		TotalListings:   total,
		PendingCount:    counts[models.VehicleStatusPending],
		ActiveCount:     counts[models.VehicleStatusActive],
		SoldCount:       counts[models.VehicleStatusSold],
		RejectedCount:   counts[models.VehicleStatusRejected],
		TotalFees:       fees,
		SellerCount:     sellers,
		SiteName:        settings.SiteName,
		MaintenanceMode: settings.MaintenanceMode,
	}, nil
}
