package services

import (
	"context"
	"encoding/json"
	"sort"

	"nextride/internal/ledger"
	"nextride/internal/models"
)

// In-memory stores backing the service tests. They keep the same contracts
// as the SQL repositories: sentinel errors for missing rows, guarded
// one-shot resolves, and keyset list semantics.

type memVehicleStore struct {
	nextID   int
	vehicles map[int]models.Vehicle
}

func newMemVehicleStore() *memVehicleStore {
	return &memVehicleStore{nextID: 1, vehicles: make(map[int]models.Vehicle)}
}

func (m *memVehicleStore) CreateVehicle(_ context.Context, v models.Vehicle) (models.Vehicle, error) {
	v.ID = m.nextID
	m.nextID++
	m.vehicles[v.ID] = v
	return v, nil
}

func (m *memVehicleStore) GetVehicleByID(_ context.Context, id int) (models.Vehicle, error) {
	v, ok := m.vehicles[id]
	if !ok {
		return models.Vehicle{}, models.ErrVehicleNotFound
	}
	return v, nil
}

func (m *memVehicleStore) GetVehicleStatus(_ context.Context, id int) (string, string, error) {
	v, ok := m.vehicles[id]
	if !ok {
		return "", "", models.ErrVehicleNotFound
	}
	return v.Status, v.PaymentStatus, nil
}

func (m *memVehicleStore) UpdateModeration(_ context.Context, id int, status, paymentStatus string) error {
	v, ok := m.vehicles[id]
	if !ok {
		return models.ErrVehicleNotFound
	}
	v.Status = status
	v.PaymentStatus = paymentStatus
	m.vehicles[id] = v
	return nil
}

func (m *memVehicleStore) UpdatePaymentStatus(_ context.Context, id int, paymentStatus string) error {
	v, ok := m.vehicles[id]
	if !ok {
		return models.ErrVehicleNotFound
	}
	v.PaymentStatus = paymentStatus
	m.vehicles[id] = v
	return nil
}

func (m *memVehicleStore) ApplyEdit(_ context.Context, id int, edit models.VehicleEdit, platformFee float64) error {
	v, ok := m.vehicles[id]
	if !ok {
		return models.ErrVehicleNotFound
	}
	v.Make = edit.Make
	v.ModelName = edit.ModelName
	v.Year = edit.Year
	v.Price = edit.Price
	v.Mileage = edit.Mileage
	v.FuelType = edit.FuelType
	v.Condition = edit.Condition
	v.Description = edit.Description
	v.Location = edit.Location
	v.Phone = edit.Phone
	v.Images = edit.Images
	v.PlatformFee = platformFee
	v.Status = models.VehicleStatusPending
	m.vehicles[id] = v
	return nil
}

func (m *memVehicleStore) DeleteVehicle(_ context.Context, id int) error {
	if _, ok := m.vehicles[id]; !ok {
		return models.ErrVehicleNotFound
	}
	delete(m.vehicles, id)
	return nil
}

func (m *memVehicleStore) ListVehicles(_ context.Context, filter models.VehicleFilterRequest, afterID, limit int) ([]models.Vehicle, error) {
	var ids []int
	for id := range m.vehicles {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	var out []models.Vehicle
	for _, id := range ids {
		v := m.vehicles[id]
		if id <= afterID {
			continue
		}
		if filter.Status != "" && v.Status != filter.Status {
			continue
		}
		if filter.VehicleType != "" && v.VehicleType != filter.VehicleType {
			continue
		}
		if filter.UserID != 0 && v.UserID != filter.UserID {
			continue
		}
		out = append(out, v)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *memVehicleStore) ListActiveByUser(ctx context.Context, userID, afterID, limit int) ([]models.Vehicle, error) {
	return m.ListVehicles(ctx, models.VehicleFilterRequest{
		UserID: userID,
		Status: models.VehicleStatusActive,
	}, afterID, limit)
}

type memSettingsStore struct {
	settings models.SystemSetting
}

func (m *memSettingsStore) GetSettings(_ context.Context) (models.SystemSetting, error) {
	if m.settings == (models.SystemSetting{}) {
		m.settings = models.DefaultSystemSetting()
	}
	return m.settings, nil
}

func (m *memSettingsStore) UpdateSettings(_ context.Context, s models.SystemSetting) error {
	m.settings = s
	return nil
}

type memUpdateRequestStore struct {
	nextID   int
	requests map[int]models.UpdateRequest
}

func newMemUpdateRequestStore() *memUpdateRequestStore {
	return &memUpdateRequestStore{nextID: 1, requests: make(map[int]models.UpdateRequest)}
}

func (m *memUpdateRequestStore) CreateUpdateRequest(_ context.Context, ur models.UpdateRequest) (models.UpdateRequest, error) {
	ur.ID = m.nextID
	m.nextID++
	m.requests[ur.ID] = ur
	return ur, nil
}

func (m *memUpdateRequestStore) GetUpdateRequestByID(_ context.Context, id int) (models.UpdateRequest, error) {
	ur, ok := m.requests[id]
	if !ok {
		return models.UpdateRequest{}, models.ErrUpdateRequestNotFound
	}
	return ur, nil
}

func (m *memUpdateRequestStore) HasInReview(_ context.Context, vehicleID int) (bool, error) {
	for _, ur := range m.requests {
		if ur.VehicleID == vehicleID && ur.Status == models.UpdateRequestInReview {
			return true, nil
		}
	}
	return false, nil
}

func (m *memUpdateRequestStore) Resolve(_ context.Context, id int, status string, updatedBy int, note string) (bool, error) {
	ur, ok := m.requests[id]
	if !ok || ur.Status != models.UpdateRequestInReview {
		return false, nil
	}
	ur.Status = status
	ur.UpdatedBy = updatedBy
	ur.Note = note
	m.requests[id] = ur
	return true, nil
}

func (m *memUpdateRequestStore) ListUpdateRequests(_ context.Context, status string, afterID, limit int) ([]models.UpdateRequest, error) {
	var ids []int
	for id := range m.requests {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	var out []models.UpdateRequest
	for _, id := range ids {
		ur := m.requests[id]
		if id <= afterID {
			continue
		}
		if status != "" && ur.Status != status {
			continue
		}
		out = append(out, ur)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *memUpdateRequestStore) DeleteByVehicleID(_ context.Context, vehicleID int) error {
	for id, ur := range m.requests {
		if ur.VehicleID == vehicleID {
			delete(m.requests, id)
		}
	}
	return nil
}

// recordingSummary collects every applied delta so tests can assert against
// the running total.
type recordingSummary struct {
	deltas []ledger.Delta
	byUser map[int]ledger.Delta
}

func newRecordingSummary() *recordingSummary {
	return &recordingSummary{byUser: make(map[int]ledger.Delta)}
}

func (r *recordingSummary) Apply(_ context.Context, userID int, d ledger.Delta) {
	r.deltas = append(r.deltas, d)
	r.byUser[userID] = r.byUser[userID].Add(d)
}

type recordingFiles struct {
	deleted []string
}

func (r *recordingFiles) DeleteFile(_ context.Context, fileURL string) error {
	r.deleted = append(r.deleted, fileURL)
	return nil
}

type recordingNotifier struct {
	notices []string
}

func (r *recordingNotifier) Notify(_ context.Context, userID int, title, body string) {
	payload, _ := json.Marshal(map[string]any{"user_id": userID, "title": title, "body": body})
	r.notices = append(r.notices, string(payload))
}
