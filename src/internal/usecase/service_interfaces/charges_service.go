package service_interfaces

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/global-remit/teller-desk/src/internal/adapter/http/models"
	"github.com/global-remit/teller-desk/src/internal/commons"
	"github.com/global-remit/teller-desk/src/internal/domain"
)

type ChargesService interface {
	CalculateFee(amount, extraChargesPercent, tellerDiscountPercent decimal.Decimal, promoCode string) decimal.Decimal
	CalculateRecipientAmount(amount, exchangeRate, fee decimal.Decimal, payer domain.FeePayer) decimal.Decimal
	CalculateTotalAmount(amount, fee decimal.Decimal, payer domain.FeePayer) decimal.Decimal
	Quote(input domain.QuoteInput) domain.Quote
	GetQuote(ctx context.Context, req models.QuoteRequest) (commons.Response[models.QuoteResponse], error)
}
