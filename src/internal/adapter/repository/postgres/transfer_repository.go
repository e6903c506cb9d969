package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/global-remit/teller-desk/src/internal/commons"
	"github.com/global-remit/teller-desk/src/internal/domain"
	"github.com/global-remit/teller-desk/src/internal/logger"
)

type TransferRepository struct {
	db *sql.DB
}

func NewTransferRepository(db *sql.DB) *TransferRepository {
	return &TransferRepository{db: db}
}

const transferColumns = `id, reference, teller_id, sender_id, sender_name, receiver_id, receiver_name, receiver_country,
	source_currency, destination_currency, amount, exchange_rate, fee, recipient_amount, total_amount, limit_amount,
	extra_charges_percent, teller_discount_percent, fee_payer, promo_code, payment_method, source_of_funds,
	purpose_of_transfer, transfer_type, operator, customer_card_number_delivery, notes, high_risk, attempts, status,
	failure_reason, created_at, updated_at, completed_at`

func (r *TransferRepository) Create(ctx context.Context, transfer domain.Transfer) (domain.Transfer, error) {
	logger.Info("transfer repository create", logger.Fields{
		"reference":  transfer.Reference,
		"senderId":   transfer.SenderID,
		"receiverId": transfer.ReceiverID,
		"status":     transfer.Status,
	})

	const query = `
INSERT INTO transfers (
	reference,
	teller_id,
	sender_id,
	sender_name,
	receiver_id,
	receiver_name,
	receiver_country,
	source_currency,
	destination_currency,
	amount,
	exchange_rate,
	fee,
	recipient_amount,
	total_amount,
	limit_amount,
	extra_charges_percent,
	teller_discount_percent,
	fee_payer,
	promo_code,
	payment_method,
	source_of_funds,
	purpose_of_transfer,
	transfer_type,
	operator,
	customer_card_number_delivery,
	notes,
	high_risk,
	attempts,
	status
) VALUES (
	$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
	$16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29
)
RETURNING id, created_at, updated_at`

	if err := r.db.QueryRowContext(
		ctx,
		query,
		transfer.Reference,
		transfer.TellerID,
		transfer.SenderID,
		transfer.SenderName,
		transfer.ReceiverID,
		transfer.ReceiverName,
		transfer.ReceiverCountry,
		transfer.SourceCurrency,
		transfer.DestinationCurrency,
		transfer.Amount,
		transfer.ExchangeRate,
		transfer.Fee,
		transfer.RecipientAmount,
		transfer.TotalAmount,
		transfer.LimitAmount,
		transfer.ExtraChargesPercent,
		transfer.TellerDiscountPercent,
		transfer.FeePayer,
		transfer.PromoCode,
		transfer.PaymentMethod,
		transfer.SourceOfFunds,
		transfer.PurposeOfTransfer,
		transfer.TransferType,
		transfer.Operator,
		transfer.CustomerCardNumberDelivery,
		transfer.Notes,
		transfer.HighRisk,
		transfer.Attempts,
		transfer.Status,
	).Scan(&transfer.ID, &transfer.CreatedAt, &transfer.UpdatedAt); err != nil {
		logger.Error("transfer repository create failed", err, logger.Fields{
			"reference": transfer.Reference,
		})
		return domain.Transfer{}, fmt.Errorf("create transfer: %w", err)
	}

	logger.Info("transfer repository create success", logger.Fields{
		"transferId": transfer.ID,
		"reference":  transfer.Reference,
	})

	return transfer, nil
}

func (r *TransferRepository) UpdateStatus(ctx context.Context, reference string, status domain.TransferStatus, attempts int, failureReason string) (domain.Transfer, error) {
	logger.Info("transfer repository update status", logger.Fields{
		"reference": reference,
		"status":    status,
		"attempts":  attempts,
	})

	query := `
UPDATE transfers
SET status = $2,
    attempts = $3,
    failure_reason = $4,
    updated_at = NOW(),
    completed_at = CASE
        WHEN $2 = 'COMPLETED' THEN NOW()
        ELSE completed_at
    END
WHERE reference = $1
RETURNING ` + transferColumns

	transfer, err := scanTransfer(r.db.QueryRowContext(ctx, query, reference, status, attempts, failureReason))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logger.Info("transfer repository record not found", logger.Fields{
				"reference": reference,
			})
			return domain.Transfer{}, commons.ErrRecordNotFound
		}
		logger.Error("transfer repository update status failed", err, logger.Fields{
			"reference": reference,
		})
		return domain.Transfer{}, fmt.Errorf("update transfer status: %w", err)
	}

	return transfer, nil
}

func (r *TransferRepository) GetByReference(ctx context.Context, reference string) (domain.Transfer, error) {
	query := `SELECT ` + transferColumns + ` FROM transfers WHERE reference = $1`

	transfer, err := scanTransfer(r.db.QueryRowContext(ctx, query, reference))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Transfer{}, commons.ErrRecordNotFound
		}
		logger.Error("transfer repository get failed", err, logger.Fields{
			"reference": reference,
		})
		return domain.Transfer{}, fmt.Errorf("get transfer: %w", err)
	}

	return transfer, nil
}

func (r *TransferRepository) ListBySender(ctx context.Context, senderID string, limit int) ([]domain.Transfer, error) {
	return r.list(ctx, "sender_id", senderID, limit)
}

func (r *TransferRepository) ListByReceiver(ctx context.Context, receiverID string, limit int) ([]domain.Transfer, error) {
	return r.list(ctx, "receiver_id", receiverID, limit)
}

func (r *TransferRepository) list(ctx context.Context, column string, value string, limit int) ([]domain.Transfer, error) {
	if limit <= 0 {
		limit = 1000
	}

	query := `SELECT ` + transferColumns + `
FROM transfers
WHERE ` + column + ` = $1
ORDER BY created_at DESC
LIMIT $2`

	rows, err := r.db.QueryContext(ctx, query, value, limit)
	if err != nil {
		logger.Error("transfer repository list failed", err, logger.Fields{
			column: value,
		})
		return nil, fmt.Errorf("list transfers by %s: %w", column, err)
	}
	defer rows.Close()

	transfers := make([]domain.Transfer, 0)
	for rows.Next() {
		transfer, err := scanTransfer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transfer: %w", err)
		}
		transfers = append(transfers, transfer)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transfers: %w", err)
	}

	return transfers, nil
}

func (r *TransferRepository) SumSince(ctx context.Context, senderID string, since time.Time) (decimal.Decimal, error) {
	const query = `
SELECT COALESCE(SUM(limit_amount), 0)
FROM transfers
WHERE sender_id = $1
  AND status <> 'FAILED'
  AND created_at >= $2`

	var total decimal.Decimal
	if err := r.db.QueryRowContext(ctx, query, senderID, since).Scan(&total); err != nil {
		logger.Error("transfer repository sum since failed", err, logger.Fields{
			"senderId": senderID,
			"since":    since,
		})
		return decimal.Zero, fmt.Errorf("sum transfers since: %w", err)
	}

	return total, nil
}

func scanTransfer(row rowScanner) (domain.Transfer, error) {
	var (
		transfer    domain.Transfer
		completedAt sql.NullTime
	)

	if err := row.Scan(
		&transfer.ID,
		&transfer.Reference,
		&transfer.TellerID,
		&transfer.SenderID,
		&transfer.SenderName,
		&transfer.ReceiverID,
		&transfer.ReceiverName,
		&transfer.ReceiverCountry,
		&transfer.SourceCurrency,
		&transfer.DestinationCurrency,
		&transfer.Amount,
		&transfer.ExchangeRate,
		&transfer.Fee,
		&transfer.RecipientAmount,
		&transfer.TotalAmount,
		&transfer.LimitAmount,
		&transfer.ExtraChargesPercent,
		&transfer.TellerDiscountPercent,
		&transfer.FeePayer,
		&transfer.PromoCode,
		&transfer.PaymentMethod,
		&transfer.SourceOfFunds,
		&transfer.PurposeOfTransfer,
		&transfer.TransferType,
		&transfer.Operator,
		&transfer.CustomerCardNumberDelivery,
		&transfer.Notes,
		&transfer.HighRisk,
		&transfer.Attempts,
		&transfer.Status,
		&transfer.FailureReason,
		&transfer.CreatedAt,
		&transfer.UpdatedAt,
		&completedAt,
	); err != nil {
		return domain.Transfer{}, err
	}

	transfer.CompletedAt = nullTimePtr(completedAt)
	return transfer, nil
}
