package service_interfaces

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/global-remit/teller-desk/src/internal/adapter/http/models"
	"github.com/global-remit/teller-desk/src/internal/commons"
)

type TillService interface {
	GetTill(ctx context.Context, tellerID string) (commons.Response[models.TillResponse], error)
	OpenRegister(ctx context.Context, tellerID string, req models.OpenRegisterRequest) (commons.Response[models.RegisterResponse], error)
	RecordMovement(ctx context.Context, tellerID string, req models.CashMovementRequest) (commons.Response[models.RecordMovementResponse], error)
	ListMovements(ctx context.Context, tellerID string, currency string, limit int) (commons.Response[[]models.CashMovementResponse], error)
	PreviewClear(ctx context.Context, tellerID string, req models.ClearPreviewRequest) (commons.Response[[]models.ClearPreviewResponse], error)
	ClearRegister(ctx context.Context, tellerID string, req models.ClearRegisterRequest) (commons.Response[models.ClearRegisterResponse], error)

	RecordCashIn(ctx context.Context, tellerID string, currency string, amount decimal.Decimal, reference string) error
}
