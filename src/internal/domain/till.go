package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type CashMovementType string

const (
	CashMovementAdd    CashMovementType = "add"
	CashMovementRemove CashMovementType = "remove"
)

func (t CashMovementType) Valid() bool {
	return t == CashMovementAdd || t == CashMovementRemove
}

// CashRegister is one currency drawer of a teller's till.
type CashRegister struct {
	TellerID       string
	Currency       string
	OpeningBalance decimal.Decimal
	CurrentBalance decimal.Decimal
	OpenedAt       time.Time
	UpdatedAt      time.Time
}

func (r CashRegister) NetPayments() decimal.Decimal {
	return r.CurrentBalance.Sub(r.OpeningBalance)
}

type CashMovement struct {
	ID          string
	TellerID    string
	Currency    string
	Type        CashMovementType
	Amount      decimal.Decimal
	Description string
	Reference   string
	CreatedAt   time.Time
}

// Signed returns the balance delta of the movement.
func (m CashMovement) Signed() decimal.Decimal {
	if m.Type == CashMovementRemove {
		return m.Amount.Neg()
	}
	return m.Amount
}

type ClearPreview struct {
	Currency       string
	CurrentBalance decimal.Decimal
	AmountToLeave  decimal.Decimal
	TotalToGive    decimal.Decimal
	ClearDisabled  bool
}

// PreviewClear mirrors the closing screen: total to give is floored at zero
// and the action is disabled for a negative leave or one above the balance.
func (r CashRegister) PreviewClear(amountToLeave decimal.Decimal) ClearPreview {
	total := r.CurrentBalance.Sub(amountToLeave)
	disabled := amountToLeave.IsNegative() || amountToLeave.GreaterThan(r.CurrentBalance) || total.IsNegative()
	return ClearPreview{
		Currency:       r.Currency,
		CurrentBalance: r.CurrentBalance,
		AmountToLeave:  amountToLeave,
		TotalToGive:    decimal.Max(decimal.Zero, total),
		ClearDisabled:  disabled,
	}
}

type ClearResult struct {
	Currency    string
	AmountLeft  decimal.Decimal
	TotalToGive decimal.Decimal
	ClearedAt   time.Time
}
