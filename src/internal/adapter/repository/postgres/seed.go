package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/global-remit/teller-desk/src/internal/adapter/repository/seed"
	"github.com/global-remit/teller-desk/src/internal/commons"
	"github.com/global-remit/teller-desk/src/internal/domain"
	"github.com/global-remit/teller-desk/src/internal/logger"
)

// EnsureSeedData loads the demo desk into an empty database. Rows that
// already exist are left untouched.
func EnsureSeedData(ctx context.Context, db *sql.DB, tellerID string) error {
	logger.Info("postgres ensure seed data", logger.Fields{
		"tellerId": tellerID,
	})

	if err := NewRateRepository(db).EnsureRates(ctx, seed.Rates()); err != nil {
		return err
	}

	clients := NewClientRepository(db)
	for _, c := range seed.Clients() {
		_, err := clients.GetByID(ctx, c.ID)
		if err == nil {
			continue
		}
		if !errors.Is(err, commons.ErrRecordNotFound) {
			return err
		}
		if _, err := clients.Save(ctx, c); err != nil {
			return err
		}
	}

	for _, t := range seed.Transfers() {
		if err := insertHistoricTransfer(ctx, db, t); err != nil {
			return err
		}
	}

	const registerQuery = `
INSERT INTO cash_registers (teller_id, currency, opening_balance, current_balance, opened_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $5)
ON CONFLICT (teller_id, currency) DO NOTHING`
	for _, reg := range seed.Registers(tellerID, time.Now()) {
		if _, err := db.ExecContext(ctx, registerQuery, reg.TellerID, reg.Currency, reg.OpeningBalance, reg.CurrentBalance, reg.OpenedAt); err != nil {
			return fmt.Errorf("seed cash register %s: %w", reg.Currency, err)
		}
	}

	logger.Info("postgres ensure seed data success", nil)
	return nil
}

func insertHistoricTransfer(ctx context.Context, db *sql.DB, t domain.Transfer) error {
	const query = `
INSERT INTO transfers (
	reference, teller_id, sender_id, sender_name, receiver_id, receiver_name, receiver_country,
	source_currency, destination_currency, amount, exchange_rate, fee, recipient_amount, total_amount,
	limit_amount, fee_payer, payment_method, source_of_funds, purpose_of_transfer, transfer_type,
	operator, notes, attempts, status, created_at, updated_at, completed_at
) VALUES (
	$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
	$15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $25, $26
)
ON CONFLICT (reference) DO NOTHING`

	if _, err := db.ExecContext(
		ctx,
		query,
		t.Reference,
		t.TellerID,
		t.SenderID,
		t.SenderName,
		t.ReceiverID,
		t.ReceiverName,
		t.ReceiverCountry,
		t.SourceCurrency,
		t.DestinationCurrency,
		t.Amount,
		t.ExchangeRate,
		t.Fee,
		t.RecipientAmount,
		t.TotalAmount,
		t.LimitAmount,
		t.FeePayer,
		t.PaymentMethod,
		t.SourceOfFunds,
		t.PurposeOfTransfer,
		t.TransferType,
		t.Operator,
		t.Notes,
		t.Attempts,
		t.Status,
		t.CreatedAt,
		t.CompletedAt,
	); err != nil {
		return fmt.Errorf("seed transfer %s: %w", t.Reference, err)
	}

	return nil
}
