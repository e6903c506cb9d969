package service_interfaces

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/global-remit/teller-desk/src/internal/adapter/http/models"
	"github.com/global-remit/teller-desk/src/internal/commons"
	"github.com/global-remit/teller-desk/src/internal/domain"
)

type RateService interface {
	GetRates(ctx context.Context) (commons.Response[[]models.RateResponse], error)
	GetRate(ctx context.Context, req models.GetRateRequest) (commons.Response[models.RateResponse], error)
	ResolveRate(ctx context.Context, fromCcy string, toCcy string) (domain.Rate, error)
	ConvertRate(ctx context.Context, amount decimal.Decimal, fromCcy string, toCcy string) (decimal.Decimal, decimal.Decimal, string, error)
	Convert(ctx context.Context, req models.ConvertRequest) (commons.Response[models.ConvertResponse], error)
}
