package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"nextride/internal/models"
)

type RentVehicleRepository struct {
	DB *sql.DB
}

const rentColumns = `id, owner_id, vehicle_model, vehicle_type, address, contact_number, email, price_per_day, description, images, status, availability, created_at, updated_at`

func scanRentVehicle(row interface{ Scan(...any) error }) (models.RentVehicle, error) {
	var rv models.RentVehicle
	var imagesJSON []byte
	var email, description sql.NullString
	var updatedAt sql.NullTime

	err := row.Scan(
		&rv.ID, &rv.OwnerID, &rv.VehicleModel, &rv.VehicleType, &rv.Address,
		&rv.ContactNumber, &email, &rv.PricePerDay, &description, &imagesJSON,
		&rv.Status, &rv.Availability, &rv.CreatedAt, &updatedAt,
	)
	if err != nil {
		return models.RentVehicle{}, err
	}
	if len(imagesJSON) > 0 {
		if err := json.Unmarshal(imagesJSON, &rv.Images); err != nil {
			return models.RentVehicle{}, fmt.Errorf("failed to decode images json: %w", err)
		}
	}
	if email.Valid {
		rv.Email = email.String
	}
	if description.Valid {
		rv.Description = description.String
	}
	if updatedAt.Valid {
		rv.UpdatedAt = &updatedAt.Time
	}
	return rv, nil
}

func (r *RentVehicleRepository) CreateRentVehicle(ctx context.Context, rv models.RentVehicle) (models.RentVehicle, error) {
	query := `
    INSERT INTO rent_vehicles (owner_id, vehicle_model, vehicle_type, address, contact_number, email, price_per_day, description, images, status, availability, created_at)
    VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	imagesJSON, err := json.Marshal(rv.Images)
	if err != nil {
		return models.RentVehicle{}, err
	}

	var email, description interface{}
	if rv.Email != "" {
		email = rv.Email
	}
	if rv.Description != "" {
		description = rv.Description
	}

	result, err := r.DB.ExecContext(ctx, query,
		rv.OwnerID, rv.VehicleModel, rv.VehicleType, rv.Address,
		rv.ContactNumber, email, rv.PricePerDay, description,
		string(imagesJSON), rv.Status, rv.Availability, rv.CreatedAt,
	)
	if err != nil {
		return models.RentVehicle{}, err
	}
	lastID, err := result.LastInsertId()
	if err != nil {
		return models.RentVehicle{}, err
	}
	rv.ID = int(lastID)
	return rv, nil
}

func (r *RentVehicleRepository) GetRentVehicleByID(ctx context.Context, id int) (models.RentVehicle, error) {
	query := `SELECT ` + rentColumns + ` FROM rent_vehicles WHERE id = ?`
	rv, err := scanRentVehicle(r.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.RentVehicle{}, models.ErrRentVehicleNotFound
	}
	if err != nil {
		return models.RentVehicle{}, err
	}
	return rv, nil
}

func (r *RentVehicleRepository) UpdateRentStatus(ctx context.Context, id int, status string) error {
	result, err := r.DB.ExecContext(ctx,
		`UPDATE rent_vehicles SET status = ?, updated_at = ? WHERE id = ?`,
		status, time.Now(), id,
	)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.ErrRentVehicleNotFound
	}
	return nil
}

func (r *RentVehicleRepository) UpdateAvailability(ctx context.Context, id int, availability string) error {
	result, err := r.DB.ExecContext(ctx,
		`UPDATE rent_vehicles SET availability = ?, updated_at = ? WHERE id = ?`,
		availability, time.Now(), id,
	)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.ErrRentVehicleNotFound
	}
	return nil
}

func (r *RentVehicleRepository) DeleteRentVehicle(ctx context.Context, id int) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM rent_vehicles WHERE id = ?`, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.ErrRentVehicleNotFound
	}
	return nil
}

func (r *RentVehicleRepository) ListRentVehicles(ctx context.Context, filter models.RentFilterRequest, afterID, limit int) ([]models.RentVehicle, error) {
	var conditions []string
	var args []any

	if filter.Status != "" {
		conditions = append(conditions, "status = ?")
		args = append(args, filter.Status)
	}
	if filter.VehicleType != "" {
		conditions = append(conditions, "vehicle_type = ?")
		args = append(args, filter.VehicleType)
	}
	if filter.Availability != "" {
		conditions = append(conditions, "availability = ?")
		args = append(args, filter.Availability)
	}
	if filter.Search != "" {
		conditions = append(conditions, "(vehicle_model LIKE ? OR address LIKE ?)")
		pattern := "%" + filter.Search + "%"
		args = append(args, pattern, pattern)
	}
	if afterID > 0 {
		conditions = append(conditions, "id > ?")
		args = append(args, afterID)
	}

	query := `SELECT ` + rentColumns + ` FROM rent_vehicles`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY id ASC LIMIT ?"
	args = append(args, limit)

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vehicles []models.RentVehicle
	for rows.Next() {
		rv, err := scanRentVehicle(rows)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, rv)
	}
	return vehicles, rows.Err()
}

func (r *RentVehicleRepository) ListByOwner(ctx context.Context, ownerID int) ([]models.RentVehicle, error) {
	query := `SELECT ` + rentColumns + ` FROM rent_vehicles WHERE owner_id = ? ORDER BY id ASC`
	rows, err := r.DB.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vehicles []models.RentVehicle
	for rows.Next() {
		rv, err := scanRentVehicle(rows)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, rv)
	}
	return vehicles, rows.Err()
}

// CountByOwner backs the rent counter reconciliation on summary reads.
func (r *RentVehicleRepository) CountByOwner(ctx context.Context, ownerID int) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM rent_vehicles WHERE owner_id = ?`, ownerID,
	).Scan(&n)
	return n, err
}
