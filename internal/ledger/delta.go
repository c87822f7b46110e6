// Package ledger computes the counter deltas a listing mutation contributes
// to its owner's summary row. All lifecycle writes route their summary
// updates through these deltas so the arithmetic lives in one place.
package ledger

import (
	"nextride/internal/models"
)

// Delta is one atomic adjustment to an owner's summary counters. Fields map
// one-to-one onto the user_summaries columns.
type Delta struct {
	BikePosts    int
	CarPosts     int
	Paid         int
	Pending      int
	Active       int
	Sold         int
	Rejected     int
	Total        int
	RentVehicles int
}

func (d Delta) IsZero() bool {
	return d == Delta{}
}

func (d Delta) Add(o Delta) Delta {
	d.BikePosts += o.BikePosts
	d.CarPosts += o.CarPosts
	d.Paid += o.Paid
	d.Pending += o.Pending
	d.Active += o.Active
	d.Sold += o.Sold
	d.Rejected += o.Rejected
	d.Total += o.Total
	d.RentVehicles += o.RentVehicles
	return d
}

func statusDelta(status string, n int) Delta {
	switch status {
	case models.VehicleStatusPending:
		return Delta{Pending: n}
	case models.VehicleStatusActive:
		return Delta{Active: n}
	case models.VehicleStatusSold:
		return Delta{Sold: n}
	case models.VehicleStatusRejected:
		return Delta{Rejected: n}
	}
	return Delta{}
}

func categoryDelta(vehicleType string, n int) Delta {
	switch vehicleType {
	case models.VehicleTypeBike:
		return Delta{BikePosts: n}
	case models.VehicleTypeCar:
		return Delta{CarPosts: n}
	}
	return Delta{}
}

func paymentDelta(old, new string, n int) Delta {
	if old == new {
		return Delta{}
	}
	if new == models.PaymentStatusPaid {
		return Delta{Paid: n}
	}
	return Delta{Paid: -n}
}

// CreationDelta is applied exactly once when a sale listing is created: the
// category bucket, the initial pending bucket and the total.
func CreationDelta(vehicleType string) Delta {
	d := categoryDelta(vehicleType, 1)
	d.Pending++
	d.Total++
	return d
}

// TransitionDelta covers one moderation transition together with its coupled
// payment-status side effect. A no-op transition yields a zero delta and must
// not be applied.
func TransitionDelta(oldStatus, newStatus, oldPayment, newPayment string) Delta {
	var d Delta
	if oldStatus != newStatus {
		d = d.Add(statusDelta(oldStatus, -1))
		d = d.Add(statusDelta(newStatus, 1))
	}
	d = d.Add(paymentDelta(oldPayment, newPayment, 1))
	return d
}

// PaymentDelta covers a payment-status change arriving through a gateway
// callback, independent of moderation.
func PaymentDelta(oldPayment, newPayment string) Delta {
	return paymentDelta(oldPayment, newPayment, 1)
}

// DeletionDelta removes every contribution the listing currently makes:
// its category, its current status bucket, its paid flag and the total.
func DeletionDelta(v models.Vehicle) Delta {
	d := categoryDelta(v.VehicleType, -1)
	d = d.Add(statusDelta(v.Status, -1))
	if v.PaymentStatus == models.PaymentStatusPaid {
		d.Paid--
	}
	d.Total--
	return d
}

// RentCreationDelta and RentDeletionDelta track the rent listing count, which
// sits outside the sale status buckets.
func RentCreationDelta() Delta {
	return Delta{RentVehicles: 1}
}

func RentDeletionDelta() Delta {
	return Delta{RentVehicles: -1}
}
