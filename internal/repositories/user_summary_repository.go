package repositories

import (
	"context"
	"database/sql"
	"errors"

	"nextride/internal/ledger"
	"nextride/internal/models"
)

type UserSummaryRepository struct {
	DB *sql.DB
}

// ApplyDelta folds one counter delta into the owner's summary row. The upsert
// creates the row on first contact, so listing writes never have to check for
// its existence.
func (r *UserSummaryRepository) ApplyDelta(ctx context.Context, userID int, d ledger.Delta) error {
	query := `
    INSERT INTO user_summaries (user_id, bike_post_count, car_post_count, paid_count, pending_count, active_count, sold_count, rejected_count, total_listings, rent_vehicle_count)
    VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    ON DUPLICATE KEY UPDATE
        bike_post_count = bike_post_count + VALUES(bike_post_count),
        car_post_count = car_post_count + VALUES(car_post_count),
        paid_count = paid_count + VALUES(paid_count),
        pending_count = pending_count + VALUES(pending_count),
        active_count = active_count + VALUES(active_count),
        sold_count = sold_count + VALUES(sold_count),
        rejected_count = rejected_count + VALUES(rejected_count),
        total_listings = total_listings + VALUES(total_listings),
        rent_vehicle_count = rent_vehicle_count + VALUES(rent_vehicle_count)
    `
	_, err := r.DB.ExecContext(ctx, query,
		userID, d.BikePosts, d.CarPosts, d.Paid, d.Pending, d.Active,
		d.Sold, d.Rejected, d.Total, d.RentVehicles,
	)
	return err
}

func (r *UserSummaryRepository) GetByUserID(ctx context.Context, userID int) (models.UserSummary, error) {
	query := `
    SELECT user_id, bike_post_count, car_post_count, paid_count, pending_count, active_count, sold_count, rejected_count, total_listings, rent_vehicle_count
    FROM user_summaries WHERE user_id = ?
    `
	var s models.UserSummary
	err := r.DB.QueryRowContext(ctx, query, userID).Scan(
		&s.UserID, &s.BikePostCount, &s.CarPostCount, &s.PaidCount,
		&s.PendingCount, &s.ActiveCount, &s.SoldCount, &s.RejectedCount,
		&s.TotalListings, &s.RentVehicleCount,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.UserSummary{}, models.ErrSummaryNotFound
	}
	if err != nil {
		return models.UserSummary{}, err
	}
	return s, nil
}

// UpdateRentCount overwrites only the rent counter, used when a summary read
// finds it out of line with the rent listings table.
func (r *UserSummaryRepository) UpdateRentCount(ctx context.Context, userID, count int) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE user_summaries SET rent_vehicle_count = ? WHERE user_id = ?`,
		count, userID,
	)
	return err
}

// Recompute rebuilds one owner's summary row from the listing tables. It is
// the repair path for counter drift caused by swallowed delta failures.
func (r *UserSummaryRepository) Recompute(ctx context.Context, userID int) (models.UserSummary, error) {
	query := `
    SELECT
        COALESCE(SUM(vehicle_type = 'bike'), 0),
        COALESCE(SUM(vehicle_type = 'car'), 0),
        COALESCE(SUM(payment_status = 'paid'), 0),
        COALESCE(SUM(status = 'pending'), 0),
        COALESCE(SUM(status = 'active'), 0),
        COALESCE(SUM(status = 'sold'), 0),
        COALESCE(SUM(status = 'rejected'), 0),
        COUNT(*)
    FROM vehicles WHERE user_id = ?
    `
	s := models.UserSummary{UserID: userID}
	err := r.DB.QueryRowContext(ctx, query, userID).Scan(
		&s.BikePostCount, &s.CarPostCount, &s.PaidCount, &s.PendingCount,
		&s.ActiveCount, &s.SoldCount, &s.RejectedCount, &s.TotalListings,
	)
	if err != nil {
		return models.UserSummary{}, err
	}

	err = r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM rent_vehicles WHERE owner_id = ?`, userID,
	).Scan(&s.RentVehicleCount)
	if err != nil {
		return models.UserSummary{}, err
	}

	replace := `
    INSERT INTO user_summaries (user_id, bike_post_count, car_post_count, paid_count, pending_count, active_count, sold_count, rejected_count, total_listings, rent_vehicle_count)
    VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    ON DUPLICATE KEY UPDATE
        bike_post_count = VALUES(bike_post_count),
        car_post_count = VALUES(car_post_count),
        paid_count = VALUES(paid_count),
        pending_count = VALUES(pending_count),
        active_count = VALUES(active_count),
        sold_count = VALUES(sold_count),
        rejected_count = VALUES(rejected_count),
        total_listings = VALUES(total_listings),
        rent_vehicle_count = VALUES(rent_vehicle_count)
    `
	_, err = r.DB.ExecContext(ctx, replace,
		s.UserID, s.BikePostCount, s.CarPostCount, s.PaidCount, s.PendingCount,
		s.ActiveCount, s.SoldCount, s.RejectedCount, s.TotalListings,
		s.RentVehicleCount,
	)
	if err != nil {
		return models.UserSummary{}, err
	}
	return s, nil
}

func (r *UserSummaryRepository) CountSummaries(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM user_summaries`).Scan(&n)
	return n, err
}
