package services

import (
	"context"
	"log/slog"
	"time"

	"nextride/internal/models"
	"nextride/internal/pagination"
)

// UpdateRequestService gates owner edits to a published listing behind admin
// review. An edit lands on the live row immediately and pulls the listing
// back to pending; resolution restores visibility. Neither direction touches
// the counter ledger, so a recompute run while a request is in review shows
// the listing under its pre-edit status bucket.
type UpdateRequestService struct {
	UpdateRequestRepo UpdateRequestStore
	VehicleRepo       VehicleStore
	SettingsRepo      SettingsStore
	Notify            Notifier
	Logger            *slog.Logger
}

func (s *UpdateRequestService) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// Submit applies the owner's edit to the listing, recomputes the platform fee
// from the edited price, forces the listing back to pending, and opens an
// in-review request. Only one request per listing may be outstanding.
func (s *UpdateRequestService) Submit(ctx context.Context, vehicleID, userID int, edit models.VehicleEdit) (models.UpdateRequest, error) {
	v, err := s.VehicleRepo.GetVehicleByID(ctx, vehicleID)
	if err != nil {
		return models.UpdateRequest{}, err
	}
	if v.UserID != userID {
		return models.UpdateRequest{}, models.ErrForbidden
	}

	pending, err := s.UpdateRequestRepo.HasInReview(ctx, vehicleID)
	if err != nil {
		return models.UpdateRequest{}, err
	}
	if pending {
		return models.UpdateRequest{}, models.ErrUpdateRequestPending
	}

	settings, err := s.SettingsRepo.GetSettings(ctx)
	if err != nil {
		return models.UpdateRequest{}, err
	}
	fee := PlatformFee(edit.Price, settings.CommissionRate)

	if err := s.VehicleRepo.ApplyEdit(ctx, vehicleID, edit, fee); err != nil {
		return models.UpdateRequest{}, err
	}

	request, err := s.UpdateRequestRepo.CreateUpdateRequest(ctx, models.UpdateRequest{
		VehicleID: vehicleID,
		UserID:    userID,
		Status:    models.UpdateRequestInReview,
		CreatedAt: time.Now(),
	})
	if err != nil {
		// The edit is already live and the listing already pending; without
		// the request row no admin will ever resolve it.
		s.logger().Error("listing frozen without review request", "vehicle_id", vehicleID, "error", err)
		return models.UpdateRequest{}, err
	}
	return request, nil
}

// Approve resolves an in-review request and restores the listing to active.
func (s *UpdateRequestService) Approve(ctx context.Context, requestID, adminID int) (models.UpdateRequest, error) {
	return s.resolve(ctx, requestID, adminID, models.UpdateRequestApproved, "")
}

// Reject resolves an in-review request with the admin's note. The edited
// field values stay on the listing; rejection only restores visibility.
func (s *UpdateRequestService) Reject(ctx context.Context, requestID, adminID int, note string) (models.UpdateRequest, error) {
	return s.resolve(ctx, requestID, adminID, models.UpdateRequestRejected, note)
}

func (s *UpdateRequestService) resolve(ctx context.Context, requestID, adminID int, status, note string) (models.UpdateRequest, error) {
	resolved, err := s.UpdateRequestRepo.Resolve(ctx, requestID, status, adminID, note)
	if err != nil {
		return models.UpdateRequest{}, err
	}
	if !resolved {
		// Either the request never existed or it is already terminal.
		if _, err := s.UpdateRequestRepo.GetUpdateRequestByID(ctx, requestID); err != nil {
			return models.UpdateRequest{}, err
		}
		return models.UpdateRequest{}, models.ErrInvalidStatus
	}

	request, err := s.UpdateRequestRepo.GetUpdateRequestByID(ctx, requestID)
	if err != nil {
		return models.UpdateRequest{}, err
	}

	// Both outcomes return the listing to public view with its fee settled.
	// This write bypasses the ledger on purpose; see the package doc above.
	if err := s.VehicleRepo.UpdateModeration(ctx, request.VehicleID,
		models.VehicleStatusActive, models.PaymentStatusPaid); err != nil {
		s.logger().Error("request resolved but listing still frozen",
			"request_id", requestID, "vehicle_id", request.VehicleID, "error", err)
		return models.UpdateRequest{}, err
	}

	if s.Notify != nil {
		title := "Update request approved"
		body := "Your listing changes were approved and the listing is live again."
		if status == models.UpdateRequestRejected {
			title = "Update request rejected"
			body = "Your listing is live again, but the changes were rejected: " + note
		}
		s.Notify.Notify(ctx, request.UserID, title, body)
	}
	return request, nil
}

// List returns one keyset page of requests, optionally filtered by status.
func (s *UpdateRequestService) List(ctx context.Context, status, cursor string, limit int) (pagination.Page[models.UpdateRequest], error) {
	limit = pagination.ClampLimit(limit)
	afterID, _ := pagination.DecodeCursor(cursor)

	requests, err := s.UpdateRequestRepo.ListUpdateRequests(ctx, status, afterID, limit+1)
	if err != nil {
		return pagination.Page[models.UpdateRequest]{}, err
	}
	return pagination.BuildPage(requests, limit, func(ur models.UpdateRequest) int { return ur.ID }), nil
}
