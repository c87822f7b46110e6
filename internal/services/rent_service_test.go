package services

import (
	"context"
	"errors"
	"sort"
	"testing"

	"nextride/internal/models"
)

type memRentStore struct {
	nextID   int
	vehicles map[int]models.RentVehicle
}

func newMemRentStore() *memRentStore {
	return &memRentStore{nextID: 1, vehicles: make(map[int]models.RentVehicle)}
}

func (m *memRentStore) CreateRentVehicle(_ context.Context, rv models.RentVehicle) (models.RentVehicle, error) {
	rv.ID = m.nextID
	m.nextID++
	m.vehicles[rv.ID] = rv
	return rv, nil
}

func (m *memRentStore) GetRentVehicleByID(_ context.Context, id int) (models.RentVehicle, error) {
	rv, ok := m.vehicles[id]
	if !ok {
		return models.RentVehicle{}, models.ErrRentVehicleNotFound
	}
	return rv, nil
}

func (m *memRentStore) UpdateRentStatus(_ context.Context, id int, status string) error {
	rv, ok := m.vehicles[id]
	if !ok {
		return models.ErrRentVehicleNotFound
	}
	rv.Status = status
	m.vehicles[id] = rv
	return nil
}

func (m *memRentStore) UpdateAvailability(_ context.Context, id int, availability string) error {
	rv, ok := m.vehicles[id]
	if !ok {
		return models.ErrRentVehicleNotFound
	}
	rv.Availability = availability
	m.vehicles[id] = rv
	return nil
}

func (m *memRentStore) DeleteRentVehicle(_ context.Context, id int) error {
	if _, ok := m.vehicles[id]; !ok {
		return models.ErrRentVehicleNotFound
	}
	delete(m.vehicles, id)
	return nil
}

func (m *memRentStore) ListRentVehicles(_ context.Context, filter models.RentFilterRequest, afterID, limit int) ([]models.RentVehicle, error) {
	var ids []int
	for id := range m.vehicles {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	var out []models.RentVehicle
	for _, id := range ids {
		rv := m.vehicles[id]
		if id <= afterID {
			continue
		}
		if filter.Status != "" && rv.Status != filter.Status {
			continue
		}
		out = append(out, rv)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *memRentStore) ListByOwner(_ context.Context, ownerID int) ([]models.RentVehicle, error) {
	var out []models.RentVehicle
	for _, rv := range m.vehicles {
		if rv.OwnerID == ownerID {
			out = append(out, rv)
		}
	}
	return out, nil
}

func newRentService() (*RentService, *memRentStore, *recordingSummary) {
	store := newMemRentStore()
	summary := newRecordingSummary()
	return &RentService{RentRepo: store, Summary: summary}, store, summary
}

func TestCreateRentVehicle(t *testing.T) {
	svc, _, summary := newRentService()

	created, err := svc.CreateRentVehicle(context.Background(), models.RentVehicle{
		OwnerID: 7, VehicleModel: "Yamaha FZ", VehicleType: models.VehicleTypeBike, PricePerDay: 300,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.Status != models.RentStatusPending {
		t.Errorf("new rent listing must start pending, got %q", created.Status)
	}
	if created.Availability != models.AvailabilityAvailable {
		t.Errorf("new rent listing must start available, got %q", created.Availability)
	}
	if summary.byUser[7].RentVehicles != 1 {
		t.Errorf("rent counter = %d, want 1", summary.byUser[7].RentVehicles)
	}
	if summary.byUser[7].Total != 0 {
		t.Errorf("rent listings must not enter the sale total: %+v", summary.byUser[7])
	}
}

func TestRentModerationIsForwardOnly(t *testing.T) {
	svc, _, _ := newRentService()
	created, _ := svc.CreateRentVehicle(context.Background(), models.RentVehicle{OwnerID: 7, VehicleModel: "CR-V"})

	approved, err := svc.UpdateStatus(context.Background(), created.ID, models.RentStatusApproved)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if approved.Status != models.RentStatusApproved {
		t.Errorf("status = %q, want approved", approved.Status)
	}

	_, err = svc.UpdateStatus(context.Background(), created.ID, models.RentStatusRejected)
	if !errors.Is(err, models.ErrInvalidStatus) {
		t.Fatalf("approved listing must not move to rejected, got %v", err)
	}

	// Repeating the current status is a tolerated no-op.
	if _, err := svc.UpdateStatus(context.Background(), created.ID, models.RentStatusApproved); err != nil {
		t.Fatalf("repeat approve: %v", err)
	}
}

func TestAvailabilityOwnerOnly(t *testing.T) {
	svc, store, _ := newRentService()
	created, _ := svc.CreateRentVehicle(context.Background(), models.RentVehicle{OwnerID: 7, VehicleModel: "Civic"})

	_, err := svc.UpdateAvailability(context.Background(), created.ID, 8, models.AvailabilityRented)
	if !errors.Is(err, models.ErrForbidden) {
		t.Fatalf("stranger availability flip must be forbidden, got %v", err)
	}

	updated, err := svc.UpdateAvailability(context.Background(), created.ID, 7, models.AvailabilityRented)
	if err != nil {
		t.Fatalf("owner flip: %v", err)
	}
	if updated.Availability != models.AvailabilityRented {
		t.Errorf("availability = %q, want rented", updated.Availability)
	}

	if _, err := svc.UpdateAvailability(context.Background(), created.ID, 7, "booked"); !errors.Is(err, models.ErrInvalidStatus) {
		t.Fatalf("unknown availability must be rejected, got %v", err)
	}
	if store.vehicles[created.ID].Availability != models.AvailabilityRented {
		t.Error("rejected flip must not change the stored value")
	}
}

func TestDeleteRentVehicleSettlesCounter(t *testing.T) {
	svc, store, summary := newRentService()
	created, _ := svc.CreateRentVehicle(context.Background(), models.RentVehicle{OwnerID: 7, VehicleModel: "Pulsar"})

	if err := svc.DeleteRentVehicle(context.Background(), created.ID, 7, models.RoleUser); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := store.vehicles[created.ID]; ok {
		t.Error("row must be gone after delete")
	}
	if !summary.byUser[7].IsZero() {
		t.Errorf("net delta after create+delete = %+v, want zero", summary.byUser[7])
	}
}
