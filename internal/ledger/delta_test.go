package ledger

import (
	"testing"

	"nextride/internal/models"
)

// statusSum mirrors the dashboard invariant: the status buckets must account
// for every listing exactly once.
func statusSum(d Delta) int {
	return d.Pending + d.Active + d.Sold + d.Rejected
}

func categorySum(d Delta) int {
	return d.BikePosts + d.CarPosts
}

func TestCreationDelta(t *testing.T) {
	d := CreationDelta(models.VehicleTypeCar)
	if d.CarPosts != 1 || d.BikePosts != 0 {
		t.Errorf("car creation category buckets wrong: %+v", d)
	}
	if d.Pending != 1 || d.Total != 1 {
		t.Errorf("creation must land in pending: %+v", d)
	}
	if statusSum(d) != d.Total || categorySum(d) != d.Total {
		t.Errorf("creation breaks counter invariant: %+v", d)
	}

	b := CreationDelta(models.VehicleTypeBike)
	if b.BikePosts != 1 || b.CarPosts != 0 {
		t.Errorf("bike creation category buckets wrong: %+v", b)
	}
}

func TestTransitionDeltaPendingToActive(t *testing.T) {
	d := TransitionDelta(
		models.VehicleStatusPending, models.VehicleStatusActive,
		models.PaymentStatusPending, models.PaymentStatusPaid,
	)
	if d.Pending != -1 || d.Active != 1 {
		t.Errorf("moderation buckets wrong: %+v", d)
	}
	if d.Paid != 1 {
		t.Errorf("activation must count as paid: %+v", d)
	}
	if d.Total != 0 || statusSum(d) != 0 {
		t.Errorf("transition must preserve the total: %+v", d)
	}
}

func TestTransitionDeltaActiveToRejected(t *testing.T) {
	d := TransitionDelta(
		models.VehicleStatusActive, models.VehicleStatusRejected,
		models.PaymentStatusPaid, models.PaymentStatusPending,
	)
	if d.Active != -1 || d.Rejected != 1 {
		t.Errorf("moderation buckets wrong: %+v", d)
	}
	if d.Paid != -1 {
		t.Errorf("rejection must release the paid bucket: %+v", d)
	}
}

func TestTransitionDeltaNoOp(t *testing.T) {
	d := TransitionDelta(
		models.VehicleStatusActive, models.VehicleStatusActive,
		models.PaymentStatusPaid, models.PaymentStatusPaid,
	)
	if !d.IsZero() {
		t.Errorf("no-op transition must be zero, got %+v", d)
	}
}

func TestPaymentDelta(t *testing.T) {
	if d := PaymentDelta(models.PaymentStatusPending, models.PaymentStatusPaid); d.Paid != 1 {
		t.Errorf("pending->paid: %+v", d)
	}
	if d := PaymentDelta(models.PaymentStatusPaid, models.PaymentStatusPending); d.Paid != -1 {
		t.Errorf("paid->pending: %+v", d)
	}
	if d := PaymentDelta(models.PaymentStatusPaid, models.PaymentStatusPaid); !d.IsZero() {
		t.Errorf("repeat callback must be zero: %+v", d)
	}
}

func TestDeletionDeltaRemovesEveryContribution(t *testing.T) {
	v := models.Vehicle{
		VehicleType:   models.VehicleTypeBike,
		Status:        models.VehicleStatusSold,
		PaymentStatus: models.PaymentStatusPaid,
	}
	d := DeletionDelta(v)
	want := Delta{BikePosts: -1, Sold: -1, Paid: -1, Total: -1}
	if d != want {
		t.Errorf("DeletionDelta = %+v, want %+v", d, want)
	}

	// Creation followed by deletion of an untouched listing must cancel out.
	fresh := models.Vehicle{
		VehicleType:   models.VehicleTypeCar,
		Status:        models.VehicleStatusPending,
		PaymentStatus: models.PaymentStatusPending,
	}
	net := CreationDelta(fresh.VehicleType).Add(DeletionDelta(fresh))
	if !net.IsZero() {
		t.Errorf("create+delete must cancel, got %+v", net)
	}
}

func TestRentDeltas(t *testing.T) {
	net := RentCreationDelta().Add(RentDeletionDelta())
	if !net.IsZero() {
		t.Errorf("rent create+delete must cancel, got %+v", net)
	}
	if d := RentCreationDelta(); d.RentVehicles != 1 || d.Total != 0 {
		t.Errorf("rent listings must not enter the sale total: %+v", d)
	}
}
