package service_interfaces

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/global-remit/teller-desk/src/internal/adapter/http/models"
	"github.com/global-remit/teller-desk/src/internal/commons"
	"github.com/global-remit/teller-desk/src/internal/domain"
)

// TransferDispatcher hands a persisted transfer to the payout channel.
type TransferDispatcher interface {
	Dispatch(ctx context.Context, msg domain.TransferDispatchMessage) error
}

// ReceiptRenderer turns a transfer into a printable document.
type ReceiptRenderer interface {
	TransferReceipt(t domain.Transfer) ([]byte, error)
}

type TransferService interface {
	Limits(ctx context.Context, senderID string) (domain.TransferLimits, error)
	ToLimitsCurrency(ctx context.Context, amount decimal.Decimal, currency string) (decimal.Decimal, error)
	ValidateAmount(limits domain.TransferLimits, limitAmount decimal.Decimal) []domain.TransferError
	IsHighRisk(sender, receiver domain.Client, limitAmount decimal.Decimal, sourceOfFunds string) bool
	Execute(ctx context.Context, transfer domain.Transfer, onRetry func(attempt int)) (domain.Transfer, error)

	GetTransfer(ctx context.Context, reference string) (commons.Response[models.TransferResponse], error)
	GetReceipt(ctx context.Context, reference string) (commons.Response[models.ReceiptResponse], error)
	RemainingLimits(ctx context.Context, senderID string) (commons.Response[models.LimitsResponse], error)
	FindTransfer(ctx context.Context, reference string) (domain.Transfer, error)
}
