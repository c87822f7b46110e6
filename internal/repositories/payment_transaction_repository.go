package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"nextride/internal/models"
)

type PaymentTransactionRepository struct {
	DB *sql.DB
}

const transactionColumns = `id, tran_id, vehicle_id, user_id, amount, currency, status, product_name, cus_name, cus_email, cus_phone, gateway_page_url, session_key, gateway_response, initiated_at, completed_at, created_at`

func scanTransaction(row interface{ Scan(...any) error }) (models.PaymentTransaction, error) {
	var tx models.PaymentTransaction
	var productName, cusName, cusEmail, cusPhone, pageURL, sessionKey sql.NullString
	var gatewayResponse []byte
	var completedAt sql.NullTime

	err := row.Scan(
		&tx.ID, &tx.TranID, &tx.VehicleID, &tx.UserID, &tx.Amount, &tx.Currency,
		&tx.Status, &productName, &cusName, &cusEmail, &cusPhone, &pageURL,
		&sessionKey, &gatewayResponse, &tx.InitiatedAt, &completedAt, &tx.CreatedAt,
	)
	if err != nil {
		return models.PaymentTransaction{}, err
	}
	tx.ProductName = productName.String
	tx.CusName = cusName.String
	tx.CusEmail = cusEmail.String
	tx.CusPhone = cusPhone.String
	tx.GatewayPageURL = pageURL.String
	tx.SessionKey = sessionKey.String
	if len(gatewayResponse) > 0 {
		tx.GatewayResponse = json.RawMessage(gatewayResponse)
	}
	if completedAt.Valid {
		tx.CompletedAt = &completedAt.Time
	}
	return tx, nil
}

func (r *PaymentTransactionRepository) CreateTransaction(ctx context.Context, tx models.PaymentTransaction) (models.PaymentTransaction, error) {
	query := `
    INSERT INTO payment_transactions (tran_id, vehicle_id, user_id, amount, currency, status, product_name, cus_name, cus_email, cus_phone, initiated_at, created_at)
    VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	result, err := r.DB.ExecContext(ctx, query,
		tx.TranID, tx.VehicleID, tx.UserID, tx.Amount, tx.Currency, tx.Status,
		tx.ProductName, tx.CusName, tx.CusEmail, tx.CusPhone,
		tx.InitiatedAt, tx.CreatedAt,
	)
	if err != nil {
		return models.PaymentTransaction{}, err
	}
	lastID, err := result.LastInsertId()
	if err != nil {
		return models.PaymentTransaction{}, err
	}
	tx.ID = int(lastID)
	return tx, nil
}

func (r *PaymentTransactionRepository) GetTransactionByTranID(ctx context.Context, tranID string) (models.PaymentTransaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM payment_transactions WHERE tran_id = ?`
	tx, err := scanTransaction(r.DB.QueryRowContext(ctx, query, tranID))
	if errors.Is(err, sql.ErrNoRows) {
		return models.PaymentTransaction{}, models.ErrTransactionNotFound
	}
	if err != nil {
		return models.PaymentTransaction{}, err
	}
	return tx, nil
}

// AttachGatewaySession stores the redirect URL and session key returned by a
// successful gateway session open.
func (r *PaymentTransactionRepository) AttachGatewaySession(ctx context.Context, tranID, pageURL, sessionKey string) error {
	result, err := r.DB.ExecContext(ctx,
		`UPDATE payment_transactions SET gateway_page_url = ?, session_key = ? WHERE tran_id = ?`,
		pageURL, sessionKey, tranID,
	)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.ErrTransactionNotFound
	}
	return nil
}

// MarkStatus moves an initiated transaction to a terminal status, storing the
// raw callback payload alongside. The status guard makes the write a no-op on
// retried callbacks; the caller gets false and must not apply side effects
// twice.
func (r *PaymentTransactionRepository) MarkStatus(ctx context.Context, tranID, status string, gatewayResponse []byte) (bool, error) {
	var payload interface{}
	if len(gatewayResponse) > 0 {
		payload = string(gatewayResponse)
	}
	result, err := r.DB.ExecContext(ctx,
		`UPDATE payment_transactions SET status = ?, gateway_response = ?, completed_at = ? WHERE tran_id = ? AND status = ?`,
		status, payload, time.Now(), tranID, models.TransactionInitiated,
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

func (r *PaymentTransactionRepository) ListTransactions(ctx context.Context, filter models.PaymentFilterRequest, afterID, limit int) ([]models.PaymentTransaction, error) {
	var conditions []string
	var args []any

	if filter.Status != "" {
		conditions = append(conditions, "status = ?")
		args = append(args, filter.Status)
	}
	if filter.Search != "" {
		conditions = append(conditions, "(tran_id LIKE ? OR cus_name LIKE ? OR cus_email LIKE ?)")
		pattern := "%" + filter.Search + "%"
		args = append(args, pattern, pattern, pattern)
	}
	if filter.StartDate != nil {
		conditions = append(conditions, "initiated_at >= ?")
		args = append(args, *filter.StartDate)
	}
	if filter.EndDate != nil {
		conditions = append(conditions, "initiated_at <= ?")
		args = append(args, *filter.EndDate)
	}
	if afterID > 0 {
		conditions = append(conditions, "id > ?")
		args = append(args, afterID)
	}

	query := `SELECT ` + transactionColumns + ` FROM payment_transactions`
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

	var transactions []models.PaymentTransaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}
	return transactions, rows.Err()
}
