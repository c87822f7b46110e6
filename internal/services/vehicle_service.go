package services

import (
	"context"
	"log/slog"
	"math"
	"time"

	"nextride/internal/ledger"
	"nextride/internal/lifecycle"
	"nextride/internal/models"
	"nextride/internal/pagination"
)

type VehicleStore interface {
	CreateVehicle(ctx context.Context, v models.Vehicle) (models.Vehicle, error)
	GetVehicleByID(ctx context.Context, id int) (models.Vehicle, error)
	GetVehicleStatus(ctx context.Context, id int) (string, string, error)
	UpdateModeration(ctx context.Context, id int, status, paymentStatus string) error
	UpdatePaymentStatus(ctx context.Context, id int, paymentStatus string) error
	ApplyEdit(ctx context.Context, id int, edit models.VehicleEdit, platformFee float64) error
	DeleteVehicle(ctx context.Context, id int) error
	ListVehicles(ctx context.Context, filter models.VehicleFilterRequest, afterID, limit int) ([]models.Vehicle, error)
	ListActiveByUser(ctx context.Context, userID, afterID, limit int) ([]models.Vehicle, error)
}

type SettingsStore interface {
	GetSettings(ctx context.Context) (models.SystemSetting, error)
	UpdateSettings(ctx context.Context, s models.SystemSetting) error
}

type UpdateRequestStore interface {
	CreateUpdateRequest(ctx context.Context, ur models.UpdateRequest) (models.UpdateRequest, error)
	GetUpdateRequestByID(ctx context.Context, id int) (models.UpdateRequest, error)
	HasInReview(ctx context.Context, vehicleID int) (bool, error)
	Resolve(ctx context.Context, id int, status string, updatedBy int, note string) (bool, error)
	ListUpdateRequests(ctx context.Context, status string, afterID, limit int) ([]models.UpdateRequest, error)
	DeleteByVehicleID(ctx context.Context, vehicleID int) error
}

// SummaryApplier is the one-way door into the counter ledger. Apply never
// returns an error; failures are logged and repaired by recompute.
type SummaryApplier interface {
	Apply(ctx context.Context, userID int, d ledger.Delta)
}

type FileRemover interface {
	DeleteFile(ctx context.Context, fileURL string) error
}

type Notifier interface {
	Notify(ctx context.Context, userID int, title, body string)
}

type VehicleService struct {
	VehicleRepo       VehicleStore
	UpdateRequestRepo UpdateRequestStore
	SettingsRepo      SettingsStore
	Summary           SummaryApplier
	Files             FileRemover
	Notify            Notifier
	Logger            *slog.Logger
}

func (s *VehicleService) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// PlatformFee derives the commission owed for a listing price. The fee is
// computed once per price write and stored on the row; a later rate change
// does not touch existing listings.
func PlatformFee(price, rate float64) float64 {
	return math.Floor(price * rate)
}

// CreateVehicle stores a new sale listing in pending review and charges its
// platform fee against the current commission rate.
func (s *VehicleService) CreateVehicle(ctx context.Context, v models.Vehicle) (models.Vehicle, error) {
	settings, err := s.SettingsRepo.GetSettings(ctx)
	if err != nil {
		return models.Vehicle{}, err
	}

	v.Status = models.VehicleStatusPending
	v.PaymentStatus = models.PaymentStatusPending
	v.PlatformFee = PlatformFee(v.Price, settings.CommissionRate)
	v.CreatedAt = time.Now()

	created, err := s.VehicleRepo.CreateVehicle(ctx, v)
	if err != nil {
		return models.Vehicle{}, err
	}

	s.Summary.Apply(ctx, created.UserID, ledger.CreationDelta(created.VehicleType))
	return created, nil
}

func (s *VehicleService) GetVehicle(ctx context.Context, id int) (models.Vehicle, error) {
	return s.VehicleRepo.GetVehicleByID(ctx, id)
}

// ListVehicles returns one keyset page of listings matching the filter.
func (s *VehicleService) ListVehicles(ctx context.Context, filter models.VehicleFilterRequest, cursor string, limit int) (pagination.Page[models.Vehicle], error) {
	limit = pagination.ClampLimit(limit)
	afterID, _ := pagination.DecodeCursor(cursor)

	vehicles, err := s.VehicleRepo.ListVehicles(ctx, filter, afterID, limit+1)
	if err != nil {
		return pagination.Page[models.Vehicle]{}, err
	}
	return pagination.BuildPage(vehicles, limit, func(v models.Vehicle) int { return v.ID }), nil
}

// ListSellerListings returns the public page of one seller's active listings.
func (s *VehicleService) ListSellerListings(ctx context.Context, userID int, cursor string, limit int) (pagination.Page[models.Vehicle], error) {
	limit = pagination.ClampLimit(limit)
	afterID, _ := pagination.DecodeCursor(cursor)

	vehicles, err := s.VehicleRepo.ListActiveByUser(ctx, userID, afterID, limit+1)
	if err != nil {
		return pagination.Page[models.Vehicle]{}, err
	}
	return pagination.BuildPage(vehicles, limit, func(v models.Vehicle) int { return v.ID }), nil
}

// UpdateStatus performs one admin moderation write: the target status, its
// coupled payment status, and the counter delta derived from the statuses
// re-read immediately before the write.
func (s *VehicleService) UpdateStatus(ctx context.Context, id int, target string) (models.Vehicle, error) {
	if !lifecycle.KnownSaleStatus(target) {
		return models.Vehicle{}, models.ErrInvalidStatus
	}

	v, err := s.VehicleRepo.GetVehicleByID(ctx, id)
	if err != nil {
		return models.Vehicle{}, err
	}

	oldStatus, oldPayment, err := s.VehicleRepo.GetVehicleStatus(ctx, id)
	if err != nil {
		return models.Vehicle{}, err
	}
	newPayment := lifecycle.PaymentStatusFor(target, oldPayment)

	if err := s.VehicleRepo.UpdateModeration(ctx, id, target, newPayment); err != nil {
		return models.Vehicle{}, err
	}
	s.Summary.Apply(ctx, v.UserID, ledger.TransitionDelta(oldStatus, target, oldPayment, newPayment))

	if s.Notify != nil && oldStatus != target {
		s.Notify.Notify(ctx, v.UserID, "Listing status updated",
			"Your listing "+v.Make+" "+v.ModelName+" is now "+target+".")
	}

	v.Status = target
	v.PaymentStatus = newPayment
	return v, nil
}

// DeleteVehicle removes a listing and everything attached to it. The ledger
// is settled first, from the statuses read in the same pass; media and
// request-history cleanup failures are logged but do not block the row
// delete.
func (s *VehicleService) DeleteVehicle(ctx context.Context, id, actorID int, role string) error {
	v, err := s.VehicleRepo.GetVehicleByID(ctx, id)
	if err != nil {
		return err
	}
	if role != models.RoleAdmin && v.UserID != actorID {
		return models.ErrForbidden
	}

	s.Summary.Apply(ctx, v.UserID, ledger.DeletionDelta(v))

	if s.Files != nil {
		for _, img := range v.Images {
			if err := s.Files.DeleteFile(ctx, img); err != nil {
				s.logger().Warn("orphaned listing image", "vehicle_id", id, "url", img, "error", err)
			}
		}
		if v.Video != "" {
			if err := s.Files.DeleteFile(ctx, v.Video); err != nil {
				s.logger().Warn("orphaned listing video", "vehicle_id", id, "url", v.Video, "error", err)
			}
		}
	}

	if err := s.VehicleRepo.DeleteVehicle(ctx, id); err != nil {
		return err
	}

	if err := s.UpdateRequestRepo.DeleteByVehicleID(ctx, id); err != nil {
		s.logger().Warn("orphaned update requests", "vehicle_id", id, "error", err)
	}
	return nil
}
