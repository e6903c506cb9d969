package repo_interfaces

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/global-remit/teller-desk/src/internal/domain"
)

type TransferRepository interface {
	Create(ctx context.Context, transfer domain.Transfer) (domain.Transfer, error)
	UpdateStatus(ctx context.Context, reference string, status domain.TransferStatus, attempts int, failureReason string) (domain.Transfer, error)
	GetByReference(ctx context.Context, reference string) (domain.Transfer, error)
	ListBySender(ctx context.Context, senderID string, limit int) ([]domain.Transfer, error)
	ListByReceiver(ctx context.Context, receiverID string, limit int) ([]domain.Transfer, error)
	// SumSince totals LimitAmount of the sender's non-failed transfers created
	// at or after since.
	SumSince(ctx context.Context, senderID string, since time.Time) (decimal.Decimal, error)
}
