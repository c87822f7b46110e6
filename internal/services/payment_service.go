package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"nextride/internal/ledger"
	"nextride/internal/models"
	"nextride/internal/pagination"
)

const tranIDMarker = "TXN_"

// MintTranID derives the gateway transaction token for a listing. The marker
// never appears inside a numeric listing id, so the token parses back
// unambiguously.
func MintTranID(vehicleID int) string {
	return fmt.Sprintf("%d%s%d", vehicleID, tranIDMarker, time.Now().UnixMilli())
}

// ParseTranID recovers the listing id embedded in a transaction token. It is
// the legacy correlation path for tokens minted before the transaction table
// stored an explicit listing reference.
func ParseTranID(tranID string) (int, bool) {
	idx := strings.Index(tranID, tranIDMarker)
	if idx <= 0 {
		return 0, false
	}
	id, err := strconv.Atoi(tranID[:idx])
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

type TransactionStore interface {
	CreateTransaction(ctx context.Context, tx models.PaymentTransaction) (models.PaymentTransaction, error)
	GetTransactionByTranID(ctx context.Context, tranID string) (models.PaymentTransaction, error)
	AttachGatewaySession(ctx context.Context, tranID, pageURL, sessionKey string) error
	MarkStatus(ctx context.Context, tranID, status string, gatewayResponse []byte) (bool, error)
	ListTransactions(ctx context.Context, filter models.PaymentFilterRequest, afterID, limit int) ([]models.PaymentTransaction, error)
}

type GatewayClient interface {
	CreateSession(ctx context.Context, req GatewaySessionRequest) (GatewaySessionResponse, error)
}

// PaymentService correlates gateway traffic with listings. Outbound it opens
// checkout sessions for a listing's platform fee; inbound it resolves
// callbacks back to the transaction and listing they belong to.
type PaymentService struct {
	TransactionRepo TransactionStore
	VehicleRepo     VehicleStore
	Gateway         GatewayClient
	Summary         SummaryApplier
	Logger          *slog.Logger
}

func (s *PaymentService) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

type InitiatePaymentRequest struct {
	VehicleID int
	UserID    int
	CusName   string
	CusEmail  string
	CusPhone  string
}

// Initiate opens a gateway checkout session for the listing's platform fee.
// The transaction row is written before the gateway call; a gateway failure
// leaves it in initiated with no session attached, and the typed error tells
// handlers the fault is upstream.
func (s *PaymentService) Initiate(ctx context.Context, req InitiatePaymentRequest) (models.PaymentTransaction, error) {
	v, err := s.VehicleRepo.GetVehicleByID(ctx, req.VehicleID)
	if err != nil {
		return models.PaymentTransaction{}, err
	}
	if v.UserID != req.UserID {
		return models.PaymentTransaction{}, models.ErrForbidden
	}

	now := time.Now()
	tx := models.PaymentTransaction{
		TranID:      MintTranID(v.ID),
		VehicleID:   v.ID,
		UserID:      v.UserID,
		Amount:      v.PlatformFee,
		Currency:    "BDT",
		Status:      models.TransactionInitiated,
		ProductName: fmt.Sprintf("Listing fee: %s %s", v.Make, v.ModelName),
		CusName:     req.CusName,
		CusEmail:    req.CusEmail,
		CusPhone:    req.CusPhone,
		InitiatedAt: now,
		CreatedAt:   now,
	}
	tx, err = s.TransactionRepo.CreateTransaction(ctx, tx)
	if err != nil {
		return models.PaymentTransaction{}, err
	}

	session, err := s.Gateway.CreateSession(ctx, GatewaySessionRequest{
		TranID:      tx.TranID,
		Amount:      tx.Amount,
		Currency:    tx.Currency,
		ProductName: tx.ProductName,
		CusName:     tx.CusName,
		CusEmail:    tx.CusEmail,
		CusPhone:    tx.CusPhone,
	})
	if err != nil {
		s.logger().Error("gateway initiation failed", "tran_id", tx.TranID, "error", err)
		return models.PaymentTransaction{}, err
	}

	if err := s.TransactionRepo.AttachGatewaySession(ctx, tx.TranID, session.GatewayPageURL, session.SessionKey); err != nil {
		s.logger().Warn("gateway session not persisted", "tran_id", tx.TranID, "error", err)
	}
	tx.GatewayPageURL = session.GatewayPageURL
	tx.SessionKey = session.SessionKey
	return tx, nil
}

// HandleSuccess processes a success callback. The transition is one-shot: a
// retried callback finds the transaction terminal and applies no side
// effects. A token with no transaction row falls back to the id embedded in
// the token and still marks the listing paid.
func (s *PaymentService) HandleSuccess(ctx context.Context, tranID string, rawCallback []byte) error {
	tx, err := s.TransactionRepo.GetTransactionByTranID(ctx, tranID)
	if err == nil {
		if tx.IsTerminal() {
			s.logger().Info("duplicate success callback ignored", "tran_id", tranID, "status", tx.Status)
			return nil
		}
		moved, err := s.TransactionRepo.MarkStatus(ctx, tranID, models.TransactionSuccess, rawCallback)
		if err != nil {
			return err
		}
		if !moved {
			// Lost the race against a concurrent callback delivery.
			return nil
		}
		return s.markVehiclePaid(ctx, tx.VehicleID)
	}
	if err != models.ErrTransactionNotFound {
		return err
	}

	vehicleID, ok := ParseTranID(tranID)
	if !ok {
		return models.ErrTransactionNotFound
	}
	s.logger().Warn("success callback without transaction row, using token fallback",
		"tran_id", tranID, "vehicle_id", vehicleID)
	return s.markVehiclePaid(ctx, vehicleID)
}

func (s *PaymentService) markVehiclePaid(ctx context.Context, vehicleID int) error {
	v, err := s.VehicleRepo.GetVehicleByID(ctx, vehicleID)
	if err != nil {
		return err
	}
	if v.PaymentStatus == models.PaymentStatusPaid {
		return nil
	}
	if err := s.VehicleRepo.UpdatePaymentStatus(ctx, vehicleID, models.PaymentStatusPaid); err != nil {
		return err
	}
	s.Summary.Apply(ctx, v.UserID, ledger.PaymentDelta(v.PaymentStatus, models.PaymentStatusPaid))
	return nil
}

// HandleFail processes a failed checkout: the transaction terminates in
// failed and the listing's payment status returns to pending.
func (s *PaymentService) HandleFail(ctx context.Context, tranID string, rawCallback []byte) error {
	tx, err := s.TransactionRepo.GetTransactionByTranID(ctx, tranID)
	if err == nil {
		if tx.IsTerminal() {
			return nil
		}
		moved, err := s.TransactionRepo.MarkStatus(ctx, tranID, models.TransactionFailed, rawCallback)
		if err != nil {
			return err
		}
		if !moved {
			return nil
		}
		return s.markVehicleUnpaid(ctx, tx.VehicleID)
	}
	if err != models.ErrTransactionNotFound {
		return err
	}

	vehicleID, ok := ParseTranID(tranID)
	if !ok {
		return models.ErrTransactionNotFound
	}
	return s.markVehicleUnpaid(ctx, vehicleID)
}

func (s *PaymentService) markVehicleUnpaid(ctx context.Context, vehicleID int) error {
	v, err := s.VehicleRepo.GetVehicleByID(ctx, vehicleID)
	if err != nil {
		return err
	}
	if v.PaymentStatus == models.PaymentStatusPending {
		return nil
	}
	if err := s.VehicleRepo.UpdatePaymentStatus(ctx, vehicleID, models.PaymentStatusPending); err != nil {
		return err
	}
	s.Summary.Apply(ctx, v.UserID, ledger.PaymentDelta(v.PaymentStatus, models.PaymentStatusPending))
	return nil
}

// HandleCancel terminates the transaction in cancelled. The customer backed
// out before paying, so the listing is left exactly as it was.
func (s *PaymentService) HandleCancel(ctx context.Context, tranID string, rawCallback []byte) error {
	tx, err := s.TransactionRepo.GetTransactionByTranID(ctx, tranID)
	if err != nil {
		if err == models.ErrTransactionNotFound {
			s.logger().Info("cancel callback for unknown transaction ignored", "tran_id", tranID)
			return nil
		}
		return err
	}
	if tx.IsTerminal() {
		return nil
	}
	_, err = s.TransactionRepo.MarkStatus(ctx, tranID, models.TransactionCancelled, rawCallback)
	return err
}

func (s *PaymentService) GetTransaction(ctx context.Context, tranID string) (models.PaymentTransaction, error) {
	return s.TransactionRepo.GetTransactionByTranID(ctx, tranID)
}

// ListTransactions returns one keyset page of the payment log.
func (s *PaymentService) ListTransactions(ctx context.Context, filter models.PaymentFilterRequest, cursor string, limit int) (pagination.Page[models.PaymentTransaction], error) {
	limit = pagination.ClampLimit(limit)
	afterID, _ := pagination.DecodeCursor(cursor)

	transactions, err := s.TransactionRepo.ListTransactions(ctx, filter, afterID, limit+1)
	if err != nil {
		return pagination.Page[models.PaymentTransaction]{}, err
	}
	return pagination.BuildPage(transactions, limit, func(tx models.PaymentTransaction) int { return tx.ID }), nil
}
