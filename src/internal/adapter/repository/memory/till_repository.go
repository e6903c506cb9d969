package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/global-remit/teller-desk/src/internal/commons"
	"github.com/global-remit/teller-desk/src/internal/domain"
)

type TillRepository struct {
	mu        sync.Mutex
	registers map[string]domain.CashRegister
	movements []domain.CashMovement
}

func NewTillRepository(seedRegisters []domain.CashRegister) *TillRepository {
	r := &TillRepository{registers: make(map[string]domain.CashRegister, len(seedRegisters))}
	for _, reg := range seedRegisters {
		r.registers[registerKey(reg.TellerID, reg.Currency)] = reg
	}
	return r
}

func registerKey(tellerID, currency string) string {
	return tellerID + "/" + strings.ToUpper(currency)
}

func (r *TillRepository) GetRegister(_ context.Context, tellerID string, currency string) (domain.CashRegister, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	reg, ok := r.registers[registerKey(tellerID, currency)]
	if !ok {
		return domain.CashRegister{}, commons.ErrRecordNotFound
	}
	return reg, nil
}

func (r *TillRepository) ListRegisters(_ context.Context, tellerID string) ([]domain.CashRegister, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.CashRegister, 0)
	for _, reg := range r.registers {
		if reg.TellerID == tellerID {
			out = append(out, reg)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Currency < out[j].Currency })
	return out, nil
}

func (r *TillRepository) OpenRegister(_ context.Context, register domain.CashRegister) (domain.CashRegister, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := registerKey(register.TellerID, register.Currency)
	if _, exists := r.registers[key]; exists {
		return domain.CashRegister{}, commons.ErrAlreadyExists
	}

	now := time.Now().UTC()
	register.Currency = strings.ToUpper(register.Currency)
	register.CurrentBalance = register.OpeningBalance
	register.OpenedAt = now
	register.UpdatedAt = now
	r.registers[key] = register

	return register, nil
}

func (r *TillRepository) ApplyMovement(_ context.Context, movement domain.CashMovement) (domain.CashRegister, domain.CashMovement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	key := registerKey(movement.TellerID, movement.Currency)
	reg, ok := r.registers[key]
	if !ok {
		if movement.Type == domain.CashMovementRemove {
			return domain.CashRegister{}, domain.CashMovement{}, commons.ErrRecordNotFound
		}
		reg = domain.CashRegister{
			TellerID:       movement.TellerID,
			Currency:       strings.ToUpper(movement.Currency),
			OpeningBalance: decimal.Zero,
			CurrentBalance: decimal.Zero,
			OpenedAt:       now,
		}
	}

	next := reg.CurrentBalance.Add(movement.Signed())
	if next.IsNegative() {
		return domain.CashRegister{}, domain.CashMovement{}, commons.ErrInsufficientBalance
	}

	reg.CurrentBalance = next
	reg.UpdatedAt = now
	r.registers[key] = reg

	movement.ID = uuid.NewString()
	movement.Currency = reg.Currency
	movement.CreatedAt = now
	r.movements = append(r.movements, movement)

	return reg, movement, nil
}

func (r *TillRepository) ResetRegister(_ context.Context, tellerID string, currency string, amountToLeave decimal.Decimal, description string) (domain.CashRegister, domain.ClearResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := registerKey(tellerID, currency)
	reg, ok := r.registers[key]
	if !ok {
		return domain.CashRegister{}, domain.ClearResult{}, commons.ErrRecordNotFound
	}
	if amountToLeave.IsNegative() || amountToLeave.GreaterThan(reg.CurrentBalance) {
		return domain.CashRegister{}, domain.ClearResult{}, commons.ErrInsufficientBalance
	}

	now := time.Now().UTC()
	totalToGive := reg.CurrentBalance.Sub(amountToLeave)
	if totalToGive.IsPositive() {
		r.movements = append(r.movements, domain.CashMovement{
			ID:          uuid.NewString(),
			TellerID:    tellerID,
			Currency:    reg.Currency,
			Type:        domain.CashMovementRemove,
			Amount:      totalToGive,
			Description: description,
			CreatedAt:   now,
		})
	}

	reg.OpeningBalance = amountToLeave
	reg.CurrentBalance = amountToLeave
	reg.OpenedAt = now
	reg.UpdatedAt = now
	r.registers[key] = reg

	return reg, domain.ClearResult{
		Currency:    reg.Currency,
		AmountLeft:  amountToLeave,
		TotalToGive: totalToGive,
		ClearedAt:   now,
	}, nil
}

func (r *TillRepository) ListMovements(_ context.Context, tellerID string, currency string, limit int) ([]domain.CashMovement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.CashMovement, 0)
	for i := len(r.movements) - 1; i >= 0; i-- {
		m := r.movements[i]
		if m.TellerID != tellerID {
			continue
		}
		if currency != "" && !strings.EqualFold(m.Currency, currency) {
			continue
		}
		out = append(out, m)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}
