package repo_interfaces

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/global-remit/teller-desk/src/internal/domain"
)

type TillRepository interface {
	GetRegister(ctx context.Context, tellerID string, currency string) (domain.CashRegister, error)
	ListRegisters(ctx context.Context, tellerID string) ([]domain.CashRegister, error)
	OpenRegister(ctx context.Context, register domain.CashRegister) (domain.CashRegister, error)
	// ApplyMovement records the movement and moves the register balance in one
	// step. A remove that would take the balance below zero fails with
	// commons.ErrInsufficientBalance; an add on a missing register opens it at zero.
	ApplyMovement(ctx context.Context, movement domain.CashMovement) (domain.CashRegister, domain.CashMovement, error)
	// ResetRegister removes everything above amountToLeave and reopens the
	// register with that amount as its opening balance.
	ResetRegister(ctx context.Context, tellerID string, currency string, amountToLeave decimal.Decimal, description string) (domain.CashRegister, domain.ClearResult, error)
	ListMovements(ctx context.Context, tellerID string, currency string, limit int) ([]domain.CashMovement, error)
}
