package models

import (
	"errors"
)

var (
	ErrVehicleNotFound       = errors.New("models: vehicle not found")
	ErrRentVehicleNotFound   = errors.New("models: rent vehicle not found")
	ErrUpdateRequestNotFound = errors.New("models: update request not found")
	ErrTransactionNotFound   = errors.New("models: payment transaction not found")
	ErrSummaryNotFound       = errors.New("models: user summary not found")

	ErrForbidden     = errors.New("models: actor lacks ownership or role")
	ErrInvalidStatus = errors.New("models: unrecognized or invalid status transition")

	// ErrUpdateRequestPending rejects a second edit submission while one is
	// still in review for the same listing.
	ErrUpdateRequestPending = errors.New("models: update request already in review")
)
