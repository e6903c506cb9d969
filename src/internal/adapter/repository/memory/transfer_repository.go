package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/global-remit/teller-desk/src/internal/commons"
	"github.com/global-remit/teller-desk/src/internal/domain"
	"github.com/global-remit/teller-desk/src/internal/logger"
)

type TransferRepository struct {
	mu          sync.RWMutex
	byReference map[string]domain.Transfer
}

func NewTransferRepository(seedTransfers []domain.Transfer) *TransferRepository {
	r := &TransferRepository{byReference: make(map[string]domain.Transfer, len(seedTransfers))}
	for _, t := range seedTransfers {
		r.byReference[t.Reference] = t
	}
	return r
}

func (r *TransferRepository) Create(_ context.Context, transfer domain.Transfer) (domain.Transfer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byReference[transfer.Reference]; exists {
		return domain.Transfer{}, commons.ErrAlreadyExists
	}

	now := time.Now().UTC()
	transfer.ID = uuid.NewString()
	transfer.CreatedAt = now
	transfer.UpdatedAt = now
	r.byReference[transfer.Reference] = transfer

	logger.Debug("transfer repository create success", logger.Fields{
		"transferId": transfer.ID,
		"reference":  transfer.Reference,
	})

	return transfer, nil
}

func (r *TransferRepository) UpdateStatus(_ context.Context, reference string, status domain.TransferStatus, attempts int, failureReason string) (domain.Transfer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	transfer, ok := r.byReference[reference]
	if !ok {
		return domain.Transfer{}, commons.ErrRecordNotFound
	}

	now := time.Now().UTC()
	transfer.Status = status
	transfer.Attempts = attempts
	transfer.FailureReason = failureReason
	transfer.UpdatedAt = now
	if status == domain.TransferStatusCompleted {
		transfer.CompletedAt = &now
	}
	r.byReference[reference] = transfer

	return transfer, nil
}

func (r *TransferRepository) GetByReference(_ context.Context, reference string) (domain.Transfer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	transfer, ok := r.byReference[reference]
	if !ok {
		return domain.Transfer{}, commons.ErrRecordNotFound
	}
	return transfer, nil
}

func (r *TransferRepository) ListBySender(_ context.Context, senderID string, limit int) ([]domain.Transfer, error) {
	return r.list(func(t domain.Transfer) bool { return t.SenderID == senderID }, limit), nil
}

func (r *TransferRepository) ListByReceiver(_ context.Context, receiverID string, limit int) ([]domain.Transfer, error) {
	return r.list(func(t domain.Transfer) bool { return t.ReceiverID == receiverID }, limit), nil
}

func (r *TransferRepository) SumSince(_ context.Context, senderID string, since time.Time) (decimal.Decimal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total := decimal.Zero
	for _, t := range r.byReference {
		if t.SenderID != senderID || t.Status == domain.TransferStatusFailed || t.CreatedAt.Before(since) {
			continue
		}
		total = total.Add(t.LimitAmount)
	}
	return total, nil
}

func (r *TransferRepository) list(match func(domain.Transfer) bool, limit int) []domain.Transfer {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Transfer, 0)
	for _, t := range r.byReference {
		if match(t) {
			out = append(out, t)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
