package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/global-remit/teller-desk/src/internal/commons"
	"github.com/global-remit/teller-desk/src/internal/domain"
	"github.com/global-remit/teller-desk/src/internal/logger"
)

type TillRepository struct {
	db *sql.DB
}

func NewTillRepository(db *sql.DB) *TillRepository {
	return &TillRepository{db: db}
}

const registerColumns = `teller_id, currency, opening_balance, current_balance, opened_at, updated_at`

func (r *TillRepository) GetRegister(ctx context.Context, tellerID string, currency string) (domain.CashRegister, error) {
	query := `SELECT ` + registerColumns + ` FROM cash_registers WHERE teller_id = $1 AND currency = $2`

	reg, err := scanRegister(r.db.QueryRowContext(ctx, query, tellerID, strings.ToUpper(currency)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.CashRegister{}, commons.ErrRecordNotFound
		}
		return domain.CashRegister{}, fmt.Errorf("get cash register: %w", err)
	}
	return reg, nil
}

func (r *TillRepository) ListRegisters(ctx context.Context, tellerID string) ([]domain.CashRegister, error) {
	query := `SELECT ` + registerColumns + ` FROM cash_registers WHERE teller_id = $1 ORDER BY currency ASC`

	rows, err := r.db.QueryContext(ctx, query, tellerID)
	if err != nil {
		logger.Error("till repository list registers failed", err, logger.Fields{
			"tellerId": tellerID,
		})
		return nil, fmt.Errorf("list cash registers: %w", err)
	}
	defer rows.Close()

	registers := make([]domain.CashRegister, 0)
	for rows.Next() {
		reg, err := scanRegister(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cash register: %w", err)
		}
		registers = append(registers, reg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cash registers: %w", err)
	}

	return registers, nil
}

func (r *TillRepository) OpenRegister(ctx context.Context, register domain.CashRegister) (domain.CashRegister, error) {
	logger.Info("till repository open register", logger.Fields{
		"tellerId": register.TellerID,
		"currency": register.Currency,
	})

	query := `
INSERT INTO cash_registers (teller_id, currency, opening_balance, current_balance)
VALUES ($1, $2, $3, $3)
RETURNING ` + registerColumns

	reg, err := scanRegister(r.db.QueryRowContext(ctx, query, register.TellerID, strings.ToUpper(register.Currency), register.OpeningBalance))
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return domain.CashRegister{}, commons.ErrAlreadyExists
		}
		logger.Error("till repository open register failed", err, logger.Fields{
			"tellerId": register.TellerID,
			"currency": register.Currency,
		})
		return domain.CashRegister{}, fmt.Errorf("open cash register: %w", err)
	}

	return reg, nil
}

func (r *TillRepository) ApplyMovement(ctx context.Context, movement domain.CashMovement) (reg domain.CashRegister, saved domain.CashMovement, err error) {
	logger.Info("till repository apply movement", logger.Fields{
		"tellerId": movement.TellerID,
		"currency": movement.Currency,
		"type":     movement.Type,
		"amount":   movement.Amount,
	})

	currency := strings.ToUpper(movement.Currency)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.CashRegister{}, domain.CashMovement{}, fmt.Errorf("begin till transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if movement.Type == domain.CashMovementAdd {
		const ensure = `
INSERT INTO cash_registers (teller_id, currency, opening_balance, current_balance)
VALUES ($1, $2, 0, 0)
ON CONFLICT (teller_id, currency) DO NOTHING`
		if _, err = tx.ExecContext(ctx, ensure, movement.TellerID, currency); err != nil {
			return domain.CashRegister{}, domain.CashMovement{}, fmt.Errorf("ensure cash register: %w", err)
		}
	}

	lockQuery := `SELECT ` + registerColumns + ` FROM cash_registers WHERE teller_id = $1 AND currency = $2 FOR UPDATE`
	reg, err = scanRegister(tx.QueryRowContext(ctx, lockQuery, movement.TellerID, currency))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = commons.ErrRecordNotFound
			return domain.CashRegister{}, domain.CashMovement{}, err
		}
		return domain.CashRegister{}, domain.CashMovement{}, fmt.Errorf("lock cash register: %w", err)
	}

	next := reg.CurrentBalance.Add(movement.Signed())
	if next.IsNegative() {
		err = commons.ErrInsufficientBalance
		return domain.CashRegister{}, domain.CashMovement{}, err
	}

	updateQuery := `
UPDATE cash_registers
SET current_balance = $3,
    updated_at = NOW()
WHERE teller_id = $1 AND currency = $2
RETURNING ` + registerColumns
	reg, err = scanRegister(tx.QueryRowContext(ctx, updateQuery, movement.TellerID, currency, next))
	if err != nil {
		return domain.CashRegister{}, domain.CashMovement{}, fmt.Errorf("update cash register: %w", err)
	}

	movement.Currency = currency
	saved, err = insertMovement(ctx, tx, movement)
	if err != nil {
		return domain.CashRegister{}, domain.CashMovement{}, err
	}

	if err = tx.Commit(); err != nil {
		return domain.CashRegister{}, domain.CashMovement{}, fmt.Errorf("commit till transaction: %w", err)
	}

	return reg, saved, nil
}

func (r *TillRepository) ResetRegister(ctx context.Context, tellerID string, currency string, amountToLeave decimal.Decimal, description string) (reg domain.CashRegister, result domain.ClearResult, err error) {
	logger.Info("till repository reset register", logger.Fields{
		"tellerId":      tellerID,
		"currency":      currency,
		"amountToLeave": amountToLeave,
	})

	currency = strings.ToUpper(currency)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.CashRegister{}, domain.ClearResult{}, fmt.Errorf("begin till transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	lockQuery := `SELECT ` + registerColumns + ` FROM cash_registers WHERE teller_id = $1 AND currency = $2 FOR UPDATE`
	reg, err = scanRegister(tx.QueryRowContext(ctx, lockQuery, tellerID, currency))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = commons.ErrRecordNotFound
			return domain.CashRegister{}, domain.ClearResult{}, err
		}
		return domain.CashRegister{}, domain.ClearResult{}, fmt.Errorf("lock cash register: %w", err)
	}

	if amountToLeave.IsNegative() || amountToLeave.GreaterThan(reg.CurrentBalance) {
		err = commons.ErrInsufficientBalance
		return domain.CashRegister{}, domain.ClearResult{}, err
	}

	totalToGive := reg.CurrentBalance.Sub(amountToLeave)
	if totalToGive.IsPositive() {
		if _, err = insertMovement(ctx, tx, domain.CashMovement{
			TellerID:    tellerID,
			Currency:    currency,
			Type:        domain.CashMovementRemove,
			Amount:      totalToGive,
			Description: description,
		}); err != nil {
			return domain.CashRegister{}, domain.ClearResult{}, err
		}
	}

	resetQuery := `
UPDATE cash_registers
SET opening_balance = $3,
    current_balance = $3,
    opened_at = NOW(),
    updated_at = NOW()
WHERE teller_id = $1 AND currency = $2
RETURNING ` + registerColumns
	reg, err = scanRegister(tx.QueryRowContext(ctx, resetQuery, tellerID, currency, amountToLeave))
	if err != nil {
		return domain.CashRegister{}, domain.ClearResult{}, fmt.Errorf("reset cash register: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return domain.CashRegister{}, domain.ClearResult{}, fmt.Errorf("commit till transaction: %w", err)
	}

	return reg, domain.ClearResult{
		Currency:    currency,
		AmountLeft:  amountToLeave,
		TotalToGive: totalToGive,
		ClearedAt:   reg.OpenedAt,
	}, nil
}

func (r *TillRepository) ListMovements(ctx context.Context, tellerID string, currency string, limit int) ([]domain.CashMovement, error) {
	if limit <= 0 {
		limit = 100
	}

	const query = `
SELECT id, teller_id, currency, movement_type, amount, description, reference, created_at
FROM cash_movements
WHERE teller_id = $1
  AND ($2 = '' OR currency = $2)
ORDER BY created_at DESC
LIMIT $3`

	rows, err := r.db.QueryContext(ctx, query, tellerID, strings.ToUpper(currency), limit)
	if err != nil {
		logger.Error("till repository list movements failed", err, logger.Fields{
			"tellerId": tellerID,
		})
		return nil, fmt.Errorf("list cash movements: %w", err)
	}
	defer rows.Close()

	movements := make([]domain.CashMovement, 0)
	for rows.Next() {
		var m domain.CashMovement
		if err := rows.Scan(&m.ID, &m.TellerID, &m.Currency, &m.Type, &m.Amount, &m.Description, &m.Reference, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan cash movement: %w", err)
		}
		movements = append(movements, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cash movements: %w", err)
	}

	return movements, nil
}

func insertMovement(ctx context.Context, tx *sql.Tx, movement domain.CashMovement) (domain.CashMovement, error) {
	const query = `
INSERT INTO cash_movements (teller_id, currency, movement_type, amount, description, reference)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, created_at`

	if err := tx.QueryRowContext(
		ctx,
		query,
		movement.TellerID,
		movement.Currency,
		movement.Type,
		movement.Amount,
		movement.Description,
		movement.Reference,
	).Scan(&movement.ID, &movement.CreatedAt); err != nil {
		return domain.CashMovement{}, fmt.Errorf("insert cash movement: %w", err)
	}

	return movement, nil
}

func scanRegister(row rowScanner) (domain.CashRegister, error) {
	var reg domain.CashRegister
	if err := row.Scan(
		&reg.TellerID,
		&reg.Currency,
		&reg.OpeningBalance,
		&reg.CurrentBalance,
		&reg.OpenedAt,
		&reg.UpdatedAt,
	); err != nil {
		return domain.CashRegister{}, err
	}
	return reg, nil
}
