// Package lifecycle holds the pure status rules for listings: which status
// values exist, which transitions are open to which actor, and the payment
// side effect coupled to every sale moderation write.
package lifecycle

import (
	"nextride/internal/models"
)

// KnownSaleStatus reports whether s is a recognized sale moderation status.
// Admins may move a listing between any two recognized statuses; anything
// else is an invalid state.
func KnownSaleStatus(s string) bool {
	switch s {
	case models.VehicleStatusPending, models.VehicleStatusActive,
		models.VehicleStatusSold, models.VehicleStatusRejected:
		return true
	}
	return false
}

// PaymentStatusFor returns the payment status a sale listing must carry after
// a moderation write to target. Activation and sale force paid, rejection
// forces pending, and a move back to pending keeps whatever was there.
func PaymentStatusFor(target, current string) string {
	switch target {
	case models.VehicleStatusActive, models.VehicleStatusSold:
		return models.PaymentStatusPaid
	case models.VehicleStatusRejected:
		return models.PaymentStatusPending
	}
	return current
}

// KnownRentStatus reports whether s is a recognized rent moderation status.
func KnownRentStatus(s string) bool {
	switch s {
	case models.RentStatusPending, models.RentStatusApproved, models.RentStatusRejected:
		return true
	}
	return false
}

// CanTransitionRent limits rent moderation to the admin review step:
// pending may move to approved or rejected, and repeating the current status
// is tolerated as a no-op.
func CanTransitionRent(current, target string) bool {
	if current == target {
		return true
	}
	return current == models.RentStatusPending &&
		(target == models.RentStatusApproved || target == models.RentStatusRejected)
}

// KnownAvailability reports whether s is a recognized availability value.
// Availability flips freely between its two values, owner-only, independent
// of moderation.
func KnownAvailability(s string) bool {
	return s == models.AvailabilityAvailable || s == models.AvailabilityRented
}
