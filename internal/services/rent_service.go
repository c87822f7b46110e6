package services

import (
	"context"
	"log/slog"
	"time"

	"nextride/internal/ledger"
	"nextride/internal/lifecycle"
	"nextride/internal/models"
	"nextride/internal/pagination"
)

type RentVehicleStore interface {
	CreateRentVehicle(ctx context.Context, rv models.RentVehicle) (models.RentVehicle, error)
	GetRentVehicleByID(ctx context.Context, id int) (models.RentVehicle, error)
	UpdateRentStatus(ctx context.Context, id int, status string) error
	UpdateAvailability(ctx context.Context, id int, availability string) error
	DeleteRentVehicle(ctx context.Context, id int) error
	ListRentVehicles(ctx context.Context, filter models.RentFilterRequest, afterID, limit int) ([]models.RentVehicle, error)
	ListByOwner(ctx context.Context, ownerID int) ([]models.RentVehicle, error)
}

// RentService manages rent listings. Rent listings carry no platform fee and
// sit outside the sale status buckets; only the owner's rent counter moves.
type RentService struct {
	RentRepo RentVehicleStore
	Summary  SummaryApplier
	Files    FileRemover
	Notify   Notifier
	Logger   *slog.Logger
}

func (s *RentService) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

func (s *RentService) CreateRentVehicle(ctx context.Context, rv models.RentVehicle) (models.RentVehicle, error) {
	rv.Status = models.RentStatusPending
	rv.Availability = models.AvailabilityAvailable
	rv.CreatedAt = time.Now()

	created, err := s.RentRepo.CreateRentVehicle(ctx, rv)
	if err != nil {
		return models.RentVehicle{}, err
	}
	s.Summary.Apply(ctx, created.OwnerID, ledger.RentCreationDelta())
	return created, nil
}

func (s *RentService) GetRentVehicle(ctx context.Context, id int) (models.RentVehicle, error) {
	return s.RentRepo.GetRentVehicleByID(ctx, id)
}

func (s *RentService) ListRentVehicles(ctx context.Context, filter models.RentFilterRequest, cursor string, limit int) (pagination.Page[models.RentVehicle], error) {
	limit = pagination.ClampLimit(limit)
	afterID, _ := pagination.DecodeCursor(cursor)

	vehicles, err := s.RentRepo.ListRentVehicles(ctx, filter, afterID, limit+1)
	if err != nil {
		return pagination.Page[models.RentVehicle]{}, err
	}
	return pagination.BuildPage(vehicles, limit, func(rv models.RentVehicle) int { return rv.ID }), nil
}

func (s *RentService) ListByOwner(ctx context.Context, ownerID int) ([]models.RentVehicle, error) {
	return s.RentRepo.ListByOwner(ctx, ownerID)
}

// UpdateStatus performs the admin review step. Rent moderation is forward
// only: a resolved listing never moves again.
func (s *RentService) UpdateStatus(ctx context.Context, id int, target string) (models.RentVehicle, error) {
	if !lifecycle.KnownRentStatus(target) {
		return models.RentVehicle{}, models.ErrInvalidStatus
	}

	rv, err := s.RentRepo.GetRentVehicleByID(ctx, id)
	if err != nil {
		return models.RentVehicle{}, err
	}
	if !lifecycle.CanTransitionRent(rv.Status, target) {
		return models.RentVehicle{}, models.ErrInvalidStatus
	}
	if rv.Status == target {
		return rv, nil
	}

	if err := s.RentRepo.UpdateRentStatus(ctx, id, target); err != nil {
		return models.RentVehicle{}, err
	}
	if s.Notify != nil {
		s.Notify.Notify(ctx, rv.OwnerID, "Rent listing reviewed",
			"Your rent listing "+rv.VehicleModel+" was "+target+".")
	}

	rv.Status = target
	return rv, nil
}

// UpdateAvailability flips the owner-controlled availability flag,
// independent of moderation.
func (s *RentService) UpdateAvailability(ctx context.Context, id, actorID int, target string) (models.RentVehicle, error) {
	if !lifecycle.KnownAvailability(target) {
		return models.RentVehicle{}, models.ErrInvalidStatus
	}

	rv, err := s.RentRepo.GetRentVehicleByID(ctx, id)
	if err != nil {
		return models.RentVehicle{}, err
	}
	if rv.OwnerID != actorID {
		return models.RentVehicle{}, models.ErrForbidden
	}

	if err := s.RentRepo.UpdateAvailability(ctx, id, target); err != nil {
		return models.RentVehicle{}, err
	}
	rv.Availability = target
	return rv, nil
}

func (s *RentService) DeleteRentVehicle(ctx context.Context, id, actorID int, role string) error {
	rv, err := s.RentRepo.GetRentVehicleByID(ctx, id)
	if err != nil {
		return err
	}
	if role != models.RoleAdmin && rv.OwnerID != actorID {
		return models.ErrForbidden
	}

	s.Summary.Apply(ctx, rv.OwnerID, ledger.RentDeletionDelta())

	if s.Files != nil {
		for _, img := range rv.Images {
			if err := s.Files.DeleteFile(ctx, img); err != nil {
				s.logger().Warn("orphaned rent listing image", "rent_vehicle_id", id, "url", img, "error", err)
			}
		}
	}
	return s.RentRepo.DeleteRentVehicle(ctx, id)
}
