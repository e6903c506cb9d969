package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/global-remit/teller-desk/src/internal/adapter/http/models"
	"github.com/global-remit/teller-desk/src/internal/adapter/repository/repo_interfaces"
	"github.com/global-remit/teller-desk/src/internal/commons"
	"github.com/global-remit/teller-desk/src/internal/domain"
	"github.com/global-remit/teller-desk/src/internal/logger"
	"github.com/global-remit/teller-desk/src/internal/usecase/service_interfaces"
)

// Verify that RateService implements the service_interfaces.RateService interface
var _ service_interfaces.RateService = (*RateService)(nil)

const crossCurrency = "USD"

type RateService struct {
	rateRepo repo_interfaces.RateRepository
}

func NewRateService(rateRepo repo_interfaces.RateRepository) *RateService {
	return &RateService{rateRepo: rateRepo}
}

func (s *RateService) GetRates(ctx context.Context) (commons.Response[[]models.RateResponse], error) {
	logger.Info("rate service get rates request", nil)

	rates, err := s.rateRepo.GetRates(ctx)
	if err != nil {
		logger.Error("rate service get rates failed", err, nil)
		return commons.ErrorResponse[[]models.RateResponse]("failed to get rates", "Unable to fetch rates right now"), err
	}

	resp := make([]models.RateResponse, 0, len(rates))
	for _, rate := range rates {
		resp = append(resp, mapRateToResponse(rate))
	}

	logger.Info("rate service get rates success", logger.Fields{
		"count": len(resp),
	})

	return commons.SuccessResponse("rates fetched successfully", resp), nil
}

func (s *RateService) GetRate(ctx context.Context, req models.GetRateRequest) (commons.Response[models.RateResponse], error) {
	logger.Info("rate service get rate request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("rate service get rate validation failed", err, nil)
		return commons.ErrorResponse[models.RateResponse]("validation failed", err.Error()), err
	}

	rate, err := s.ResolveRate(ctx, req.FromCurrency, req.ToCurrency)
	if err != nil {
		logger.Error("rate service get rate failed", err, logger.Fields{
			"fromCurrency": req.FromCurrency,
			"toCurrency":   req.ToCurrency,
		})
		if errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrorResponse[models.RateResponse]("Rate not found"), err
		}
		return commons.ErrorResponse[models.RateResponse]("failed to get rate", "Unable to fetch rate right now"), err
	}

	logger.Info("rate service get rate success", logger.Fields{
		"rateId":       rate.ID,
		"fromCurrency": rate.FromCurrency,
		"toCurrency":   rate.ToCurrency,
		"rate":         rate.Rate.String(),
	})

	return commons.SuccessResponse("rate fetched successfully", mapRateToResponse(rate)), nil
}

// ResolveRate returns 1 for the same currency, then the direct pair, then a
// cross through USD. A cross rate carries ID 0 and the older of the two dates.
func (s *RateService) ResolveRate(ctx context.Context, fromCcy string, toCcy string) (domain.Rate, error) {
	fromCurrency := models.NormalizeCurrency(fromCcy)
	toCurrency := models.NormalizeCurrency(toCcy)

	if fromCurrency == toCurrency {
		now := time.Now().UTC()
		return domain.Rate{
			FromCurrency: fromCurrency,
			ToCurrency:   toCurrency,
			Rate:         decimal.NewFromInt(1),
			RateDate:     now,
			CreatedAt:    now,
		}, nil
	}

	rate, err := s.rateRepo.GetRate(ctx, fromCurrency, toCurrency)
	if err == nil {
		return rate, nil
	}
	if !errors.Is(err, commons.ErrRecordNotFound) || fromCurrency == crossCurrency || toCurrency == crossCurrency {
		return domain.Rate{}, err
	}

	leg1, err := s.rateRepo.GetRate(ctx, fromCurrency, crossCurrency)
	if err != nil {
		return domain.Rate{}, err
	}
	leg2, err := s.rateRepo.GetRate(ctx, crossCurrency, toCurrency)
	if err != nil {
		return domain.Rate{}, err
	}

	logger.Debug("rate service resolved cross rate", logger.Fields{
		"fromCurrency": fromCurrency,
		"toCurrency":   toCurrency,
		"via":          crossCurrency,
	})

	rateDate := leg1.RateDate
	if leg2.RateDate.Before(rateDate) {
		rateDate = leg2.RateDate
	}
	return domain.Rate{
		FromCurrency: fromCurrency,
		ToCurrency:   toCurrency,
		Rate:         leg1.Rate.Mul(leg2.Rate).Round(6),
		RateDate:     rateDate,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

func (s *RateService) ConvertRate(ctx context.Context, amount decimal.Decimal, fromCcy string, toCcy string) (decimal.Decimal, decimal.Decimal, string, error) {
	fromCurrency := models.NormalizeCurrency(fromCcy)
	toCurrency := models.NormalizeCurrency(toCcy)

	if fromCurrency == "" {
		return decimal.Decimal{}, decimal.Decimal{}, "", fmt.Errorf("fromCcy is required")
	}
	if toCurrency == "" {
		return decimal.Decimal{}, decimal.Decimal{}, "", fmt.Errorf("toCcy is required")
	}
	if len(fromCurrency) != 3 || len(toCurrency) != 3 {
		return decimal.Decimal{}, decimal.Decimal{}, "", fmt.Errorf("fromCcy and toCcy must be 3 characters")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Decimal{}, decimal.Decimal{}, "", fmt.Errorf("amount must be greater than zero")
	}

	rate, err := s.ResolveRate(ctx, fromCurrency, toCurrency)
	if err != nil {
		return decimal.Decimal{}, decimal.Decimal{}, "", err
	}
	if rate.Rate.LessThanOrEqual(decimal.Zero) {
		return decimal.Decimal{}, decimal.Decimal{}, "", fmt.Errorf("rate must be greater than zero")
	}

	return amount.Mul(rate.Rate), rate.Rate, rate.RateDate.Format("2006-01-02"), nil
}

func (s *RateService) Convert(ctx context.Context, req models.ConvertRequest) (commons.Response[models.ConvertResponse], error) {
	logger.Info("rate service convert amount request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("rate service convert amount validation failed", err, nil)
		return commons.ErrorResponse[models.ConvertResponse]("validation failed", err.Error()), err
	}

	amount := models.ParseDecimal(req.Amount)
	convertedAmount, rateUsed, rateDate, err := s.ConvertRate(ctx, amount, req.FromCcy, req.ToCcy)
	if err != nil {
		logger.Error("rate service convert amount failed", err, logger.Fields{
			"fromCcy": req.FromCcy,
			"toCcy":   req.ToCcy,
		})
		if errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrorResponse[models.ConvertResponse]("Rate not found for currency pair", "Rate not found for currency pair"), err
		}
		return commons.ErrorResponse[models.ConvertResponse]("failed to convert amount", "Unable to convert amount right now"), err
	}

	response := models.ConvertResponse{
		Amount:          amount.StringFixed(2),
		FromCcy:         models.NormalizeCurrency(req.FromCcy),
		ToCcy:           models.NormalizeCurrency(req.ToCcy),
		ConvertedAmount: convertedAmount.StringFixed(2),
		RateUsed:        rateUsed.String(),
		RateDate:        rateDate,
	}

	logger.Info("rate service convert amount success", logger.Fields{
		"fromCcy":         response.FromCcy,
		"toCcy":           response.ToCcy,
		"convertedAmount": response.ConvertedAmount,
		"rateDate":        response.RateDate,
	})

	return commons.SuccessResponse("amount converted successfully", response), nil
}

func mapRateToResponse(rate domain.Rate) models.RateResponse {
	return models.RateResponse{
		ID:           rate.ID,
		FromCurrency: rate.FromCurrency,
		ToCurrency:   rate.ToCurrency,
		Rate:         rate.Rate.String(),
		RateDate:     rate.RateDate.Format("2006-01-02"),
		CreatedAt:    rate.CreatedAt.Format(time.RFC3339),
	}
}
