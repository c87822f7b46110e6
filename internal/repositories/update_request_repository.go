package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"nextride/internal/models"
)

type UpdateRequestRepository struct {
	DB *sql.DB
}

func scanUpdateRequest(row interface{ Scan(...any) error }) (models.UpdateRequest, error) {
	var ur models.UpdateRequest
	var updatedBy sql.NullInt64
	var note sql.NullString
	var updatedAt sql.NullTime

	err := row.Scan(
		&ur.ID, &ur.VehicleID, &ur.UserID, &ur.Status,
		&updatedBy, &note, &ur.CreatedAt, &updatedAt,
	)
	if err != nil {
		return models.UpdateRequest{}, err
	}
	if updatedBy.Valid {
		ur.UpdatedBy = int(updatedBy.Int64)
	}
	if note.Valid {
		ur.Note = note.String
	}
	if updatedAt.Valid {
		ur.UpdatedAt = &updatedAt.Time
	}
	return ur, nil
}

func (r *UpdateRequestRepository) CreateUpdateRequest(ctx context.Context, ur models.UpdateRequest) (models.UpdateRequest, error) {
	result, err := r.DB.ExecContext(ctx,
		`INSERT INTO update_requests (vehicle_id, user_id, status, created_at) VALUES (?, ?, ?, ?)`,
		ur.VehicleID, ur.UserID, ur.Status, ur.CreatedAt,
	)
	if err != nil {
		return models.UpdateRequest{}, err
	}
	lastID, err := result.LastInsertId()
	if err != nil {
		return models.UpdateRequest{}, err
	}
	ur.ID = int(lastID)
	return ur, nil
}

func (r *UpdateRequestRepository) GetUpdateRequestByID(ctx context.Context, id int) (models.UpdateRequest, error) {
	query := `SELECT id, vehicle_id, user_id, status, updated_by, note, created_at, updated_at FROM update_requests WHERE id = ?`
	ur, err := scanUpdateRequest(r.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.UpdateRequest{}, models.ErrUpdateRequestNotFound
	}
	if err != nil {
		return models.UpdateRequest{}, err
	}
	return ur, nil
}

// HasInReview reports whether the listing already has an unresolved request.
// At most one request per listing may be in review at a time.
func (r *UpdateRequestRepository) HasInReview(ctx context.Context, vehicleID int) (bool, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM update_requests WHERE vehicle_id = ? AND status = ?`,
		vehicleID, models.UpdateRequestInReview,
	).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Resolve moves an in-review request to its terminal status in one guarded
// statement. Zero affected rows means the request was already resolved or
// never existed; the caller disambiguates with a follow-up read.
func (r *UpdateRequestRepository) Resolve(ctx context.Context, id int, status string, updatedBy int, note string) (bool, error) {
	var noteVal interface{}
	if note != "" {
		noteVal = note
	}
	result, err := r.DB.ExecContext(ctx,
		`UPDATE update_requests SET status = ?, updated_by = ?, note = ?, updated_at = ? WHERE id = ? AND status = ?`,
		status, updatedBy, noteVal, time.Now(), id, models.UpdateRequestInReview,
	)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *UpdateRequestRepository) ListUpdateRequests(ctx context.Context, status string, afterID, limit int) ([]models.UpdateRequest, error) {
	query := `SELECT id, vehicle_id, user_id, status, updated_by, note, created_at, updated_at FROM update_requests`
	var args []any
	var where []string

	if status != "" {
		where = append(where, "status = ?")
		args = append(args, status)
	}
	if afterID > 0 {
		where = append(where, "id > ?")
		args = append(args, afterID)
	}
	if len(where) > 0 {
		query += " WHERE " + where[0]
		for _, w := range where[1:] {
			query += " AND " + w
		}
	}
	query += " ORDER BY id ASC LIMIT ?"
	args = append(args, limit)

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []models.UpdateRequest
	for rows.Next() {
		ur, err := scanUpdateRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, ur)
	}
	return requests, rows.Err()
}

// DeleteByVehicleID clears a listing's request history when the listing is
// removed.
func (r *UpdateRequestRepository) DeleteByVehicleID(ctx context.Context, vehicleID int) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM update_requests WHERE vehicle_id = ?`, vehicleID)
	return err
}
