package services

import (
	"context"
	"errors"
	"testing"

	"nextride/internal/ledger"
	"nextride/internal/models"
)

type memSummaryStore struct {
	summaries  map[int]models.UserSummary
	applyErr   error
	recomputed map[int]models.UserSummary
}

func newMemSummaryStore() *memSummaryStore {
	return &memSummaryStore{
		summaries:  make(map[int]models.UserSummary),
		recomputed: make(map[int]models.UserSummary),
	}
}

func (m *memSummaryStore) ApplyDelta(_ context.Context, userID int, d ledger.Delta) error {
	if m.applyErr != nil {
		return m.applyErr
	}
	s := m.summaries[userID]
	s.UserID = userID
	s.BikePostCount += d.BikePosts
	s.CarPostCount += d.CarPosts
	s.PaidCount += d.Paid
	s.PendingCount += d.Pending
	s.ActiveCount += d.Active
	s.SoldCount += d.Sold
	s.RejectedCount += d.Rejected
	s.TotalListings += d.Total
	s.RentVehicleCount += d.RentVehicles
	m.summaries[userID] = s
	return nil
}

func (m *memSummaryStore) GetByUserID(_ context.Context, userID int) (models.UserSummary, error) {
	s, ok := m.summaries[userID]
	if !ok {
		return models.UserSummary{}, models.ErrSummaryNotFound
	}
	return s, nil
}

func (m *memSummaryStore) UpdateRentCount(_ context.Context, userID, count int) error {
	s := m.summaries[userID]
	s.UserID = userID
	s.RentVehicleCount = count
	m.summaries[userID] = s
	return nil
}

func (m *memSummaryStore) Recompute(_ context.Context, userID int) (models.UserSummary, error) {
	s, ok := m.recomputed[userID]
	if !ok {
		s = models.UserSummary{UserID: userID}
	}
	m.summaries[userID] = s
	return s, nil
}

type stubRentCounter struct {
	counts map[int]int
}

func (s *stubRentCounter) CountByOwner(_ context.Context, ownerID int) (int, error) {
	return s.counts[ownerID], nil
}

func TestApplySkipsZeroDelta(t *testing.T) {
	store := newMemSummaryStore()
	store.applyErr = errors.New("store down")
	svc := &SummaryService{SummaryRepo: store, RentRepo: &stubRentCounter{counts: map[int]int{}}}

	// A zero delta must not even reach the store.
	svc.Apply(context.Background(), 7, ledger.Delta{})
}

func TestApplySwallowsStoreFailure(t *testing.T) {
	store := newMemSummaryStore()
	store.applyErr = errors.New("deadlock")
	svc := &SummaryService{SummaryRepo: store, RentRepo: &stubRentCounter{counts: map[int]int{}}}

	// The listing write already committed; the counter failure must not
	// propagate to the caller.
	svc.Apply(context.Background(), 7, ledger.CreationDelta(models.VehicleTypeCar))
}

func TestGetUserSummaryLazyRow(t *testing.T) {
	svc := &SummaryService{
		SummaryRepo: newMemSummaryStore(),
		RentRepo:    &stubRentCounter{counts: map[int]int{}},
	}

	summary, err := svc.GetUserSummary(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.UserID != 7 || summary.TotalListings != 0 {
		t.Errorf("missing row must read as zeroed counters, got %+v", summary)
	}
}

func TestGetUserSummaryReconcilesRentCount(t *testing.T) {
	store := newMemSummaryStore()
	store.summaries[7] = models.UserSummary{UserID: 7, RentVehicleCount: 1}
	svc := &SummaryService{
		SummaryRepo: store,
		RentRepo:    &stubRentCounter{counts: map[int]int{7: 3}},
	}

	summary, err := svc.GetUserSummary(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.RentVehicleCount != 3 {
		t.Errorf("rent count = %d, want reconciled 3", summary.RentVehicleCount)
	}
	if store.summaries[7].RentVehicleCount != 3 {
		t.Errorf("reconciled count must be written back, stored %d", store.summaries[7].RentVehicleCount)
	}
}

func TestRecomputeReplacesDriftedCounters(t *testing.T) {
	store := newMemSummaryStore()
	// Drifted counters from swallowed delta failures.
	store.summaries[7] = models.UserSummary{UserID: 7, ActiveCount: 5, TotalListings: 9}
	store.recomputed[7] = models.UserSummary{UserID: 7, ActiveCount: 2, CarPostCount: 2, PaidCount: 2, TotalListings: 2}

	svc := &SummaryService{SummaryRepo: store, RentRepo: &stubRentCounter{counts: map[int]int{}}}

	summary, err := svc.Recompute(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.ActiveCount != 2 || summary.TotalListings != 2 {
		t.Errorf("recompute must replace drifted counters, got %+v", summary)
	}
}
