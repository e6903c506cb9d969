package services

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/global-remit/teller-desk/src/internal/adapter/http/models"
	"github.com/global-remit/teller-desk/src/internal/commons"
	"github.com/global-remit/teller-desk/src/internal/domain"
	"github.com/global-remit/teller-desk/src/internal/logger"
	"github.com/global-remit/teller-desk/src/internal/usecase/service_interfaces"
)

var _ service_interfaces.ChargesService = (*ChargesService)(nil)

var hundred = decimal.NewFromInt(100)

type ChargesService struct {
	policy      domain.FeePolicy
	rateService service_interfaces.RateService
}

func NewChargesService(policy domain.FeePolicy, rateService service_interfaces.RateService) *ChargesService {
	return &ChargesService{
		policy:      policy,
		rateService: rateService,
	}
}

// CalculateFee applies the base percentage clamped to [min, max], then extra
// charges on the amount, then the teller discount on the fee, then the promo.
func (s *ChargesService) CalculateFee(amount, extraChargesPercent, tellerDiscountPercent decimal.Decimal, promoCode string) decimal.Decimal {
	return s.fee(amount, extraChargesPercent, tellerDiscountPercent, promoCode).Round(2)
}

func (s *ChargesService) fee(amount, extraChargesPercent, tellerDiscountPercent decimal.Decimal, promoCode string) decimal.Decimal {
	if amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	fee := amount.Mul(s.policy.BasePercent).Div(hundred)
	fee = decimal.Max(s.policy.MinFee, fee)
	fee = decimal.Min(fee, s.policy.MaxFee)

	if extraChargesPercent.GreaterThan(decimal.Zero) {
		fee = fee.Add(amount.Mul(extraChargesPercent).Div(hundred))
	}
	if tellerDiscountPercent.GreaterThan(decimal.Zero) {
		fee = fee.Sub(fee.Mul(tellerDiscountPercent).Div(hundred))
	}

	if kind, ok := s.policy.Promo(promoCode); ok {
		switch kind {
		case domain.PromoWaiveFee:
			fee = decimal.Zero
		case domain.PromoHalveFee:
			if fee.GreaterThan(decimal.Zero) {
				fee = fee.Div(decimal.NewFromInt(2))
			}
		}
	}

	return decimal.Max(decimal.Zero, fee)
}

func (s *ChargesService) CalculateRecipientAmount(amount, exchangeRate, fee decimal.Decimal, payer domain.FeePayer) decimal.Decimal {
	return recipientAmount(amount, exchangeRate, fee, payer).Round(2)
}

func recipientAmount(amount, exchangeRate, fee decimal.Decimal, payer domain.FeePayer) decimal.Decimal {
	if amount.LessThanOrEqual(decimal.Zero) || exchangeRate.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	recipient := amount.Mul(exchangeRate)
	switch payer {
	case domain.FeePayerBeneficiary:
		recipient = recipient.Sub(fee.Mul(exchangeRate))
	case domain.FeePayerBoth:
		recipient = recipient.Sub(fee.Div(decimal.NewFromInt(2)).Mul(exchangeRate))
	}

	return decimal.Max(decimal.Zero, recipient)
}

func (s *ChargesService) CalculateTotalAmount(amount, fee decimal.Decimal, payer domain.FeePayer) decimal.Decimal {
	return totalAmount(amount, fee, payer).Round(2)
}

func totalAmount(amount, fee decimal.Decimal, payer domain.FeePayer) decimal.Decimal {
	if amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	total := amount
	switch payer {
	case domain.FeePayerSender:
		total = amount.Add(fee)
	case domain.FeePayerBoth:
		total = amount.Add(fee.Div(decimal.NewFromInt(2)))
	}

	return decimal.Max(decimal.Zero, total)
}

// Quote derives recipient and total from the unrounded fee and rounds all
// three to 2 places at the end.
func (s *ChargesService) Quote(input domain.QuoteInput) domain.Quote {
	payer := input.FeePayer
	if !payer.Valid() {
		payer = domain.FeePayerSender
	}

	fee := s.fee(input.Amount, input.ExtraChargesPercent, input.TellerDiscountPercent, input.PromoCode)
	_, promoApplied := s.policy.Promo(input.PromoCode)

	return domain.Quote{
		SourceCurrency:      input.SourceCurrency,
		DestinationCurrency: input.DestinationCurrency,
		Amount:              input.Amount,
		ExchangeRate:        input.ExchangeRate,
		Fee:                 fee.Round(2),
		RecipientAmount:     recipientAmount(input.Amount, input.ExchangeRate, fee, payer).Round(2),
		TotalAmount:         totalAmount(input.Amount, fee, payer).Round(2),
		FeePayer:            payer,
		PromoApplied:        promoApplied,
	}
}

func (s *ChargesService) GetQuote(ctx context.Context, req models.QuoteRequest) (commons.Response[models.QuoteResponse], error) {
	logger.Info("charges service get quote request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("charges service get quote validation failed", err, nil)
		return commons.ErrorResponse[models.QuoteResponse]("validation failed", err.Error()), err
	}

	sourceCurrency := models.NormalizeCurrency(req.SourceCurrency)
	destinationCurrency := models.NormalizeCurrency(req.DestinationCurrency)

	exchangeRate := models.ParseDecimal(req.ExchangeRate)
	if strings.TrimSpace(req.ExchangeRate) == "" {
		rate, err := s.rateService.ResolveRate(ctx, sourceCurrency, destinationCurrency)
		if err != nil {
			logger.Error("charges service get quote rate lookup failed", err, logger.Fields{
				"sourceCurrency":      sourceCurrency,
				"destinationCurrency": destinationCurrency,
			})
			if errors.Is(err, commons.ErrRecordNotFound) {
				return commons.ErrorResponse[models.QuoteResponse]("Rate not found for currency pair", "Rate not found for currency pair"), err
			}
			return commons.ErrorResponse[models.QuoteResponse]("failed to get quote", "Unable to fetch quote right now"), err
		}
		exchangeRate = rate.Rate
	}

	payer := domain.FeePayer(strings.TrimSpace(req.FeePayer))
	quote := s.Quote(domain.QuoteInput{
		SourceCurrency:        sourceCurrency,
		DestinationCurrency:   destinationCurrency,
		Amount:                models.ParseDecimal(req.Amount),
		ExchangeRate:          exchangeRate,
		ExtraChargesPercent:   models.ParseDecimal(req.ExtraChargesPercent),
		TellerDiscountPercent: models.ParseDecimal(req.TellerDiscountPercent),
		FeePayer:              payer,
		PromoCode:             req.PromoCode,
	})

	response := models.QuoteResponse{
		SourceCurrency:      quote.SourceCurrency,
		DestinationCurrency: quote.DestinationCurrency,
		Amount:              quote.Amount.StringFixed(2),
		ExchangeRate:        quote.ExchangeRate.String(),
		Fee:                 quote.Fee.StringFixed(2),
		RecipientAmount:     quote.RecipientAmount.StringFixed(2),
		TotalAmount:         quote.TotalAmount.StringFixed(2),
		FeePayer:            string(quote.FeePayer),
		PromoApplied:        quote.PromoApplied,
	}

	logger.Info("charges service get quote success", logger.Fields{
		"amount":          response.Amount,
		"fee":             response.Fee,
		"recipientAmount": response.RecipientAmount,
		"totalAmount":     response.TotalAmount,
	})

	return commons.SuccessResponse("quote calculated successfully", response), nil
}
