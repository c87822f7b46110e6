package lifecycle

import (
	"testing"

	"nextride/internal/models"
)

func TestKnownSaleStatus(t *testing.T) {
	for _, s := range []string{"pending", "active", "sold", "rejected"} {
		if !KnownSaleStatus(s) {
			t.Errorf("%q should be a known sale status", s)
		}
	}
	for _, s := range []string{"", "archived", "approved", "PAID"} {
		if KnownSaleStatus(s) {
			t.Errorf("%q should not be a known sale status", s)
		}
	}
}

func TestPaymentStatusFor(t *testing.T) {
	cases := []struct {
		target, current, want string
	}{
		{models.VehicleStatusActive, models.PaymentStatusPending, models.PaymentStatusPaid},
		{models.VehicleStatusSold, models.PaymentStatusPending, models.PaymentStatusPaid},
		{models.VehicleStatusRejected, models.PaymentStatusPaid, models.PaymentStatusPending},
		{models.VehicleStatusPending, models.PaymentStatusPaid, models.PaymentStatusPaid},
		{models.VehicleStatusPending, models.PaymentStatusPending, models.PaymentStatusPending},
	}
	for _, c := range cases {
		if got := PaymentStatusFor(c.target, c.current); got != c.want {
			t.Errorf("PaymentStatusFor(%s, %s) = %s, want %s", c.target, c.current, got, c.want)
		}
	}
}

func TestCanTransitionRent(t *testing.T) {
	if !CanTransitionRent(models.RentStatusPending, models.RentStatusApproved) {
		t.Error("pending -> approved must be allowed")
	}
	if !CanTransitionRent(models.RentStatusPending, models.RentStatusRejected) {
		t.Error("pending -> rejected must be allowed")
	}
	if !CanTransitionRent(models.RentStatusApproved, models.RentStatusApproved) {
		t.Error("repeating the current status must be a tolerated no-op")
	}
	if CanTransitionRent(models.RentStatusApproved, models.RentStatusRejected) {
		t.Error("approved -> rejected must not be allowed")
	}
	if CanTransitionRent(models.RentStatusRejected, models.RentStatusApproved) {
		t.Error("rejected -> approved must not be allowed")
	}
}

func TestKnownAvailability(t *testing.T) {
	if !KnownAvailability(models.AvailabilityAvailable) || !KnownAvailability(models.AvailabilityRented) {
		t.Error("both availability values must be recognized")
	}
	if KnownAvailability("booked") {
		t.Error("unknown availability accepted")
	}
}
