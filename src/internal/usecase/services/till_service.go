package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/global-remit/teller-desk/src/internal/adapter/http/models"
	"github.com/global-remit/teller-desk/src/internal/adapter/repository/repo_interfaces"
	"github.com/global-remit/teller-desk/src/internal/commons"
	"github.com/global-remit/teller-desk/src/internal/domain"
	"github.com/global-remit/teller-desk/src/internal/logger"
	"github.com/global-remit/teller-desk/src/internal/metrics"
	"github.com/global-remit/teller-desk/src/internal/usecase/service_interfaces"
)

var _ service_interfaces.TillService = (*TillService)(nil)

const clearDescription = "Register cleared"

type TillService struct {
	tillRepo repo_interfaces.TillRepository
	metrics  *metrics.Metrics
}

func NewTillService(tillRepo repo_interfaces.TillRepository, m *metrics.Metrics) *TillService {
	return &TillService{tillRepo: tillRepo, metrics: m}
}

func (s *TillService) GetTill(ctx context.Context, tellerID string) (commons.Response[models.TillResponse], error) {
	logger.Info("till service get till request", logger.Fields{
		"tellerId": tellerID,
	})

	registers, err := s.tillRepo.ListRegisters(ctx, tellerID)
	if err != nil {
		logger.Error("till service get till failed", err, logger.Fields{
			"tellerId": tellerID,
		})
		return commons.ErrorResponse[models.TillResponse]("failed to get till", "Unable to fetch till right now"), err
	}

	resp := models.TillResponse{
		TellerID:  tellerID,
		Registers: make([]models.RegisterResponse, 0, len(registers)),
	}
	for _, reg := range registers {
		resp.Registers = append(resp.Registers, models.NewRegisterResponse(reg))
	}

	logger.Info("till service get till success", logger.Fields{
		"tellerId":  tellerID,
		"registers": len(resp.Registers),
	})

	return commons.SuccessResponse("till fetched successfully", resp), nil
}

func (s *TillService) OpenRegister(ctx context.Context, tellerID string, req models.OpenRegisterRequest) (commons.Response[models.RegisterResponse], error) {
	logger.Info("till service open register request", logger.Fields{
		"tellerId": tellerID,
		"payload":  logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("till service open register validation failed", err, nil)
		return commons.ErrorResponse[models.RegisterResponse]("validation failed", err.Error()), err
	}

	reg, err := s.tillRepo.OpenRegister(ctx, domain.CashRegister{
		TellerID:       tellerID,
		Currency:       models.NormalizeCurrency(req.Currency),
		OpeningBalance: models.ParseDecimal(req.OpeningBalance),
	})
	if err != nil {
		logger.Error("till service open register failed", err, logger.Fields{
			"tellerId": tellerID,
			"currency": req.Currency,
		})
		if errors.Is(err, commons.ErrAlreadyExists) {
			return commons.ErrorResponse[models.RegisterResponse]("Register already open"), err
		}
		return commons.ErrorResponse[models.RegisterResponse]("failed to open register", "Unable to open register right now"), err
	}

	logger.Info("till service open register success", logger.Fields{
		"tellerId": tellerID,
		"currency": reg.Currency,
	})

	return commons.SuccessResponse("register opened successfully", models.NewRegisterResponse(reg)), nil
}

func (s *TillService) RecordMovement(ctx context.Context, tellerID string, req models.CashMovementRequest) (commons.Response[models.RecordMovementResponse], error) {
	logger.Info("till service record movement request", logger.Fields{
		"tellerId": tellerID,
		"payload":  logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("till service record movement validation failed", err, nil)
		return commons.ErrorResponse[models.RecordMovementResponse]("validation failed", err.Error()), err
	}

	reg, movement, err := s.apply(ctx, domain.CashMovement{
		TellerID:    tellerID,
		Currency:    models.NormalizeCurrency(req.Currency),
		Type:        domain.CashMovementType(strings.ToLower(strings.TrimSpace(req.Type))),
		Amount:      models.ParseDecimal(req.Amount),
		Description: strings.TrimSpace(req.Description),
	})
	if err != nil {
		return tillErrorResponse[models.RecordMovementResponse](err), err
	}

	return commons.SuccessResponse("cash movement recorded successfully", models.RecordMovementResponse{
		Register: models.NewRegisterResponse(reg),
		Movement: models.NewCashMovementResponse(movement),
	}), nil
}

// RecordCashIn adds the cash taken for a transfer to the teller's drawer.
func (s *TillService) RecordCashIn(ctx context.Context, tellerID string, currency string, amount decimal.Decimal, reference string) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil
	}
	_, _, err := s.apply(ctx, domain.CashMovement{
		TellerID:    tellerID,
		Currency:    models.NormalizeCurrency(currency),
		Type:        domain.CashMovementAdd,
		Amount:      amount,
		Description: "Cash received for transfer " + reference,
		Reference:   reference,
	})
	return err
}

func (s *TillService) apply(ctx context.Context, movement domain.CashMovement) (domain.CashRegister, domain.CashMovement, error) {
	reg, saved, err := s.tillRepo.ApplyMovement(ctx, movement)
	if err != nil {
		logger.Error("till service apply movement failed", err, logger.Fields{
			"tellerId": movement.TellerID,
			"currency": movement.Currency,
			"type":     movement.Type,
		})
		return domain.CashRegister{}, domain.CashMovement{}, err
	}

	s.metrics.TillMovement(string(saved.Type), saved.Currency)

	logger.Info("till service apply movement success", logger.Fields{
		"tellerId":       movement.TellerID,
		"currency":       reg.Currency,
		"type":           saved.Type,
		"amount":         saved.Amount.StringFixed(2),
		"currentBalance": reg.CurrentBalance.StringFixed(2),
	})
	return reg, saved, nil
}

func (s *TillService) ListMovements(ctx context.Context, tellerID string, currency string, limit int) (commons.Response[[]models.CashMovementResponse], error) {
	logger.Info("till service list movements request", logger.Fields{
		"tellerId": tellerID,
		"currency": currency,
		"limit":    limit,
	})

	currency = models.NormalizeCurrency(currency)
	if currency != "" && len(currency) != 3 {
		err := newValidationError("currency must be 3 characters")
		return commons.ErrorResponse[[]models.CashMovementResponse]("validation failed", err.Error()), err
	}

	movements, err := s.tillRepo.ListMovements(ctx, tellerID, currency, limit)
	if err != nil {
		logger.Error("till service list movements failed", err, logger.Fields{
			"tellerId": tellerID,
		})
		return commons.ErrorResponse[[]models.CashMovementResponse]("failed to list movements", "Unable to fetch movements right now"), err
	}

	resp := make([]models.CashMovementResponse, 0, len(movements))
	for _, m := range movements {
		resp = append(resp, models.NewCashMovementResponse(m))
	}

	return commons.SuccessResponse("cash movements fetched successfully", resp), nil
}

// PreviewClear computes the closing figures for every open register of the
// teller without changing anything.
func (s *TillService) PreviewClear(ctx context.Context, tellerID string, req models.ClearPreviewRequest) (commons.Response[[]models.ClearPreviewResponse], error) {
	logger.Info("till service preview clear request", logger.Fields{
		"tellerId": tellerID,
		"payload":  logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("till service preview clear validation failed", err, nil)
		return commons.ErrorResponse[[]models.ClearPreviewResponse]("validation failed", err.Error()), err
	}

	leave := make(map[string]decimal.Decimal, len(req.AmountsToLeave))
	for ccy, amount := range req.AmountsToLeave {
		leave[models.NormalizeCurrency(ccy)] = models.ParseDecimal(amount)
	}

	registers, err := s.tillRepo.ListRegisters(ctx, tellerID)
	if err != nil {
		logger.Error("till service preview clear failed", err, logger.Fields{
			"tellerId": tellerID,
		})
		return commons.ErrorResponse[[]models.ClearPreviewResponse]("failed to preview clear", "Unable to preview clear right now"), err
	}

	sort.Slice(registers, func(i, j int) bool { return registers[i].Currency < registers[j].Currency })

	resp := make([]models.ClearPreviewResponse, 0, len(registers))
	for _, reg := range registers {
		resp = append(resp, models.NewClearPreviewResponse(reg.PreviewClear(leave[reg.Currency])))
	}

	return commons.SuccessResponse("clear preview calculated successfully", resp), nil
}

func (s *TillService) ClearRegister(ctx context.Context, tellerID string, req models.ClearRegisterRequest) (commons.Response[models.ClearRegisterResponse], error) {
	logger.Info("till service clear register request", logger.Fields{
		"tellerId": tellerID,
		"payload":  logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("till service clear register validation failed", err, nil)
		return commons.ErrorResponse[models.ClearRegisterResponse]("validation failed", err.Error()), err
	}

	currency := models.NormalizeCurrency(req.Currency)
	reg, result, err := s.tillRepo.ResetRegister(ctx, tellerID, currency, models.ParseDecimal(req.AmountToLeave), clearDescription)
	if err != nil {
		logger.Error("till service clear register failed", err, logger.Fields{
			"tellerId": tellerID,
			"currency": currency,
		})
		if errors.Is(err, commons.ErrInsufficientBalance) {
			err = fmt.Errorf("amount to leave exceeds current balance: %w", err)
		}
		return tillErrorResponse[models.ClearRegisterResponse](err), err
	}

	if result.TotalToGive.IsPositive() {
		s.metrics.TillMovement(string(domain.CashMovementRemove), currency)
	}

	logger.Info("till service clear register success", logger.Fields{
		"tellerId":    tellerID,
		"currency":    currency,
		"amountLeft":  result.AmountLeft.StringFixed(2),
		"totalToGive": result.TotalToGive.StringFixed(2),
	})

	return commons.SuccessResponse("register cleared successfully", models.ClearRegisterResponse{
		Register:    models.NewRegisterResponse(reg),
		AmountLeft:  result.AmountLeft.StringFixed(2),
		TotalToGive: result.TotalToGive.StringFixed(2),
		ClearedAt:   result.ClearedAt.UTC().Format(time.RFC3339),
	}), nil
}

func tillErrorResponse[T any](err error) commons.Response[T] {
	switch {
	case errors.Is(err, commons.ErrRecordNotFound):
		return commons.ErrorResponse[T]("Register not found")
	case errors.Is(err, commons.ErrInsufficientBalance):
		return commons.ErrorResponse[T]("Insufficient balance", err.Error())
	default:
		return commons.ErrorResponse[T]("failed to update till", "Unable to update till right now")
	}
}
