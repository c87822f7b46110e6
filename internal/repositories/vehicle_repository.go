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

type VehicleRepository struct {
	DB *sql.DB
}

const vehicleColumns = `id, user_id, vehicle_type, make, model_name, year, price, mileage, fuel_type, vehicle_condition, description, location, phone, images, video, status, payment_status, platform_fee, created_at, updated_at`

func scanVehicle(row interface{ Scan(...any) error }) (models.Vehicle, error) {
	var v models.Vehicle
	var imagesJSON []byte
	var location, video sql.NullString
	var updatedAt sql.NullTime

	err := row.Scan(
		&v.ID, &v.UserID, &v.VehicleType, &v.Make, &v.ModelName, &v.Year,
		&v.Price, &v.Mileage, &v.FuelType, &v.Condition, &v.Description,
		&location, &v.Phone, &imagesJSON, &video, &v.Status, &v.PaymentStatus,
		&v.PlatformFee, &v.CreatedAt, &updatedAt,
	)
	if err != nil {
		return models.Vehicle{}, err
	}
	if len(imagesJSON) > 0 {
		if err := json.Unmarshal(imagesJSON, &v.Images); err != nil {
			return models.Vehicle{}, fmt.Errorf("failed to decode images json: %w", err)
		}
	}
	if location.Valid {
		v.Location = location.String
	}
	if video.Valid {
		v.Video = video.String
	}
	if updatedAt.Valid {
		v.UpdatedAt = &updatedAt.Time
	}
	return v, nil
}

func (r *VehicleRepository) CreateVehicle(ctx context.Context, v models.Vehicle) (models.Vehicle, error) {
	query := `
    INSERT INTO vehicles (user_id, vehicle_type, make, model_name, year, price, mileage, fuel_type, vehicle_condition, description, location, phone, images, video, status, payment_status, platform_fee, created_at)
    VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	imagesJSON, err := json.Marshal(v.Images)
	if err != nil {
		return models.Vehicle{}, err
	}

	var location, video interface{}
	if v.Location != "" {
		location = v.Location
	}
	if v.Video != "" {
		video = v.Video
	}

	result, err := r.DB.ExecContext(ctx, query,
		v.UserID, v.VehicleType, v.Make, v.ModelName, v.Year, v.Price,
		v.Mileage, v.FuelType, v.Condition, v.Description, location, v.Phone,
		string(imagesJSON), video, v.Status, v.PaymentStatus, v.PlatformFee,
		v.CreatedAt,
	)
	if err != nil {
		return models.Vehicle{}, err
	}
	lastID, err := result.LastInsertId()
	if err != nil {
		return models.Vehicle{}, err
	}
	v.ID = int(lastID)
	return v, nil
}

func (r *VehicleRepository) GetVehicleByID(ctx context.Context, id int) (models.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = ?`
	v, err := scanVehicle(r.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Vehicle{}, models.ErrVehicleNotFound
	}
	if err != nil {
		return models.Vehicle{}, err
	}
	return v, nil
}

// GetVehicleStatus re-reads only the two status columns. Lifecycle writes
// call it immediately before computing a counter delta so a stale in-memory
// copy never feeds the ledger.
func (r *VehicleRepository) GetVehicleStatus(ctx context.Context, id int) (string, string, error) {
	var status, paymentStatus string
	err := r.DB.QueryRowContext(ctx,
		`SELECT status, payment_status FROM vehicles WHERE id = ?`, id,
	).Scan(&status, &paymentStatus)
	if errors.Is(err, sql.ErrNoRows) {
		return "", "", models.ErrVehicleNotFound
	}
	if err != nil {
		return "", "", err
	}
	return status, paymentStatus, nil
}

// UpdateModeration writes the moderation status together with its coupled
// payment status in a single statement. Last write wins on the status field.
func (r *VehicleRepository) UpdateModeration(ctx context.Context, id int, status, paymentStatus string) error {
	result, err := r.DB.ExecContext(ctx,
		`UPDATE vehicles SET status = ?, payment_status = ?, updated_at = ? WHERE id = ?`,
		status, paymentStatus, time.Now(), id,
	)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.ErrVehicleNotFound
	}
	return nil
}

func (r *VehicleRepository) UpdatePaymentStatus(ctx context.Context, id int, paymentStatus string) error {
	result, err := r.DB.ExecContext(ctx,
		`UPDATE vehicles SET payment_status = ?, updated_at = ? WHERE id = ?`,
		paymentStatus, time.Now(), id,
	)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.ErrVehicleNotFound
	}
	return nil
}

// ApplyEdit writes an owner edit onto the live row and forces the listing
// back into pending review. There is no staged copy: the previous field
// values are gone once this returns.
func (r *VehicleRepository) ApplyEdit(ctx context.Context, id int, edit models.VehicleEdit, platformFee float64) error {
	query := `
UPDATE vehicles
SET make = ?, model_name = ?, year = ?, price = ?, mileage = ?, fuel_type = ?, vehicle_condition = ?,
    description = ?, location = ?, phone = ?, images = ?, platform_fee = ?, status = ?, updated_at = ?
WHERE id = ?
`
	imagesJSON, err := json.Marshal(edit.Images)
	if err != nil {
		return fmt.Errorf("failed to marshal images: %w", err)
	}
	result, err := r.DB.ExecContext(ctx, query,
		edit.Make, edit.ModelName, edit.Year, edit.Price, edit.Mileage,
		edit.FuelType, edit.Condition, edit.Description, edit.Location,
		edit.Phone, string(imagesJSON), platformFee,
		models.VehicleStatusPending, time.Now(), id,
	)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.ErrVehicleNotFound
	}
	return nil
}

func (r *VehicleRepository) DeleteVehicle(ctx context.Context, id int) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM vehicles WHERE id = ?`, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.ErrVehicleNotFound
	}
	return nil
}

// ListVehicles performs a keyset scan ordered by id. Callers pass limit+1 and
// build the page from the surplus row.
func (r *VehicleRepository) ListVehicles(ctx context.Context, filter models.VehicleFilterRequest, afterID, limit int) ([]models.Vehicle, error) {
	var conditions []string
	var args []any

	if filter.VehicleType != "" {
		conditions = append(conditions, "vehicle_type = ?")
		args = append(args, filter.VehicleType)
	}
	if filter.Status != "" {
		conditions = append(conditions, "status = ?")
		args = append(args, filter.Status)
	}
	if filter.FuelType != "" {
		conditions = append(conditions, "fuel_type = ?")
		args = append(args, filter.FuelType)
	}
	if filter.PriceFrom > 0 {
		conditions = append(conditions, "price >= ?")
		args = append(args, filter.PriceFrom)
	}
	if filter.PriceTo > 0 {
		conditions = append(conditions, "price <= ?")
		args = append(args, filter.PriceTo)
	}
	if filter.UserID != 0 {
		conditions = append(conditions, "user_id = ?")
		args = append(args, filter.UserID)
	}
	if filter.Search != "" {
		conditions = append(conditions, "(make LIKE ? OR model_name LIKE ? OR description LIKE ?)")
		pattern := "%" + filter.Search + "%"
		args = append(args, pattern, pattern, pattern)
	}
	if afterID > 0 {
		conditions = append(conditions, "id > ?")
		args = append(args, afterID)
	}

	query := `SELECT ` + vehicleColumns + ` FROM vehicles`
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

	var vehicles []models.Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, rows.Err()
}

// ListActiveByUser returns the public listings of one seller, keyset-paged.
func (r *VehicleRepository) ListActiveByUser(ctx context.Context, userID, afterID, limit int) ([]models.Vehicle, error) {
	return r.ListVehicles(ctx, models.VehicleFilterRequest{
		UserID: userID,
		Status: models.VehicleStatusActive,
	}, afterID, limit)
}

// CountByStatus feeds the admin overview.
func (r *VehicleRepository) CountByStatus(ctx context.Context) (map[string]int, int, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT status, COUNT(*) FROM vehicles GROUP BY status`)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	total := 0
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, 0, err
		}
		counts[status] = n
		total += n
	}
	return counts, total, rows.Err()
}

func (r *VehicleRepository) SumPlatformFees(ctx context.Context) (float64, error) {
	var total sql.NullFloat64
	err := r.DB.QueryRowContext(ctx, `SELECT SUM(platform_fee) FROM vehicles`).Scan(&total)
	if err != nil {
		return 0, err
	}
	return total.Float64, nil
}
