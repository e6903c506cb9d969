package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/global-remit/teller-desk/src/internal/adapter/http/models"
	"github.com/global-remit/teller-desk/src/internal/adapter/repository/repo_interfaces"
	"github.com/global-remit/teller-desk/src/internal/commons"
	"github.com/global-remit/teller-desk/src/internal/domain"
	"github.com/global-remit/teller-desk/src/internal/logger"
	"github.com/global-remit/teller-desk/src/internal/metrics"
	"github.com/global-remit/teller-desk/src/internal/usecase/service_interfaces"
)

var _ service_interfaces.TransferService = (*TransferService)(nil)

const referenceAttempts = 5

// settleTimeout bounds the writes that close out a dispatched transfer.
// They run detached from the caller's cancellation.
const settleTimeout = 10 * time.Second

type TransferPolicy struct {
	Limits      domain.TransferLimits
	Risk        domain.RiskPolicy
	MaxAttempts int
	Backoff     time.Duration
}

type TransferService struct {
	transferRepo repo_interfaces.TransferRepository
	rateService  service_interfaces.RateService
	tillService  service_interfaces.TillService
	dispatcher   service_interfaces.TransferDispatcher
	receipts     service_interfaces.ReceiptRenderer
	metrics      *metrics.Metrics
	policy       TransferPolicy
	now          func() time.Time
	sleep        func(ctx context.Context, d time.Duration) error
}

func NewTransferService(
	transferRepo repo_interfaces.TransferRepository,
	rateService service_interfaces.RateService,
	tillService service_interfaces.TillService,
	dispatcher service_interfaces.TransferDispatcher,
	receipts service_interfaces.ReceiptRenderer,
	m *metrics.Metrics,
	policy TransferPolicy,
) *TransferService {
	if policy.MaxAttempts < 1 {
		policy.MaxAttempts = 1
	}
	return &TransferService{
		transferRepo: transferRepo,
		rateService:  rateService,
		tillService:  tillService,
		dispatcher:   dispatcher,
		receipts:     receipts,
		metrics:      m,
		policy:       policy,
		now:          time.Now,
		sleep:        sleepContext,
	}
}

// WithSleeper replaces the backoff wait, mainly for tests.
func (s *TransferService) WithSleeper(sleep func(ctx context.Context, d time.Duration) error) *TransferService {
	s.sleep = sleep
	return s
}

var transferRefCounter uint32

// Limits returns the configured limits reduced by the sender's non-failed
// transfers in the current UTC day and month.
func (s *TransferService) Limits(ctx context.Context, senderID string) (domain.TransferLimits, error) {
	now := s.now().UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	usedToday, err := s.transferRepo.SumSince(ctx, senderID, dayStart)
	if err != nil {
		return domain.TransferLimits{}, err
	}
	usedThisMonth, err := s.transferRepo.SumSince(ctx, senderID, monthStart)
	if err != nil {
		return domain.TransferLimits{}, err
	}

	return s.policy.Limits.WithUsage(usedToday, usedThisMonth), nil
}

func (s *TransferService) ToLimitsCurrency(ctx context.Context, amount decimal.Decimal, currency string) (decimal.Decimal, error) {
	if amount.LessThanOrEqual(decimal.Zero) || strings.EqualFold(currency, s.policy.Limits.Currency) {
		return amount, nil
	}

	converted, _, _, err := s.rateService.ConvertRate(ctx, amount, currency, s.policy.Limits.Currency)
	if err != nil {
		return decimal.Zero, fmt.Errorf("convert to limits currency: %w", err)
	}
	return converted.Round(2), nil
}

// ValidateAmount returns every limit the amount breaks. The amount must
// already be in the limits currency.
func (s *TransferService) ValidateAmount(limits domain.TransferLimits, limitAmount decimal.Decimal) []domain.TransferError {
	errs := make([]domain.TransferError, 0)

	if limitAmount.LessThanOrEqual(decimal.Zero) {
		errs = append(errs, amountError(domain.ErrCodeInvalidAmount, "Amount must be greater than zero"))
	}
	if limitAmount.GreaterThan(limits.PerTransaction) {
		errs = append(errs, amountError(domain.ErrCodeExceedsTransactionLimit,
			"Amount exceeds maximum transaction limit of "+limits.PerTransaction.String()))
	}
	if limitAmount.GreaterThan(limits.RemainingDaily) {
		errs = append(errs, amountError(domain.ErrCodeExceedsDailyLimit,
			"Amount exceeds remaining daily limit of "+limits.RemainingDaily.String()))
	}
	if limitAmount.GreaterThan(limits.RemainingMonthly) {
		errs = append(errs, amountError(domain.ErrCodeExceedsMonthlyLimit,
			"Amount exceeds remaining monthly limit of "+limits.RemainingMonthly.String()))
	}

	return errs
}

func amountError(code, message string) domain.TransferError {
	return domain.TransferError{Code: code, Message: message, Field: "amount", Retryable: false}
}

func (s *TransferService) IsHighRisk(sender, receiver domain.Client, limitAmount decimal.Decimal, sourceOfFunds string) bool {
	return limitAmount.GreaterThan(s.policy.Risk.HighRiskThreshold) ||
		!domain.SameCountry(sender.Country, receiver.Country) ||
		sourceOfFunds == s.policy.Risk.RiskySourceOfFund
}

// Execute persists the transfer as PENDING under a fresh reference, then
// dispatches it with linear backoff. onRetry is called after every failed
// attempt with the number of attempts made so far. When every attempt fails
// the transfer is marked FAILED and a retryable TRANSFER_FAILED error is
// returned along with it.
func (s *TransferService) Execute(ctx context.Context, transfer domain.Transfer, onRetry func(attempt int)) (domain.Transfer, error) {
	logger.Info("transfer service execute request", logger.Fields{
		"senderId":   transfer.SenderID,
		"receiverId": transfer.ReceiverID,
		"amount":     transfer.Amount.StringFixed(2),
		"currency":   transfer.SourceCurrency,
	})

	transfer.Status = domain.TransferStatusPending
	transfer.Attempts = 0

	created, err := s.persist(ctx, transfer)
	if err != nil {
		logger.Error("transfer service persist failed", err, logger.Fields{
			"senderId": transfer.SenderID,
		})
		return domain.Transfer{}, err
	}

	attempts, dispatchErr := s.dispatch(ctx, created, onRetry)

	settleCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), settleTimeout)
	defer cancel()

	if dispatchErr != nil {
		failed, err := s.transferRepo.UpdateStatus(settleCtx, created.Reference, domain.TransferStatusFailed, attempts, dispatchErr.Error())
		if err != nil {
			logger.Error("transfer service mark failed failed", err, logger.Fields{
				"reference": created.Reference,
			})
			return created, err
		}
		s.metrics.TransferFinished(string(domain.TransferStatusFailed))

		logger.Warn("transfer service dispatch exhausted", logger.Fields{
			"reference": created.Reference,
			"attempts":  attempts,
		})
		return failed, domain.TransferError{
			Code:      domain.ErrCodeTransferFailed,
			Message:   "Transfer failed after multiple attempts. Please try again later.",
			Retryable: true,
		}
	}

	completed, err := s.transferRepo.UpdateStatus(settleCtx, created.Reference, domain.TransferStatusCompleted, attempts, "")
	if err != nil {
		logger.Error("transfer service mark completed failed", err, logger.Fields{
			"reference": created.Reference,
		})
		return created, err
	}
	s.metrics.TransferFinished(string(domain.TransferStatusCompleted))

	if completed.PaymentMethod == domain.PaymentMethodCash && s.tillService != nil {
		if err := s.tillService.RecordCashIn(settleCtx, completed.TellerID, completed.SourceCurrency, completed.TotalAmount, completed.Reference); err != nil {
			logger.Error("transfer service till cash-in failed", err, logger.Fields{
				"reference": completed.Reference,
				"tellerId":  completed.TellerID,
			})
		}
	}

	logger.Info("transfer service execute success", logger.Fields{
		"reference": completed.Reference,
		"attempts":  attempts,
		"status":    completed.Status,
	})

	return completed, nil
}

func (s *TransferService) persist(ctx context.Context, transfer domain.Transfer) (domain.Transfer, error) {
	var (
		created domain.Transfer
		err     error
	)
	for attempt := 0; attempt < referenceAttempts; attempt++ {
		transfer.Reference = generateThirtyDigitTransferReference()
		created, err = s.transferRepo.Create(ctx, transfer)
		if err == nil {
			return created, nil
		}
		if !isUniqueViolation(err) {
			return domain.Transfer{}, err
		}
		logger.Warn("transfer service reference collision", logger.Fields{
			"reference": transfer.Reference,
			"attempt":   attempt + 1,
		})
	}
	return domain.Transfer{}, err
}

func (s *TransferService) dispatch(ctx context.Context, transfer domain.Transfer, onRetry func(attempt int)) (int, error) {
	var lastErr error
	for attempt := 1; attempt <= s.policy.MaxAttempts; attempt++ {
		lastErr = s.dispatcher.Dispatch(ctx, domain.NewTransferDispatchMessage(transfer, attempt))
		s.metrics.DispatchAttempt(lastErr == nil)
		if lastErr == nil {
			return attempt, nil
		}

		logger.Warn("transfer service dispatch attempt failed", logger.Fields{
			"reference": transfer.Reference,
			"attempt":   attempt,
			"error":     lastErr.Error(),
		})
		if onRetry != nil {
			onRetry(attempt)
		}

		if attempt == s.policy.MaxAttempts {
			return attempt, lastErr
		}
		if err := s.sleep(ctx, time.Duration(attempt)*s.policy.Backoff); err != nil {
			return attempt, err
		}
	}
	return s.policy.MaxAttempts, lastErr
}

func (s *TransferService) FindTransfer(ctx context.Context, reference string) (domain.Transfer, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return domain.Transfer{}, newValidationError("reference is required")
	}
	return s.transferRepo.GetByReference(ctx, reference)
}

func (s *TransferService) GetTransfer(ctx context.Context, reference string) (commons.Response[models.TransferResponse], error) {
	logger.Info("transfer service get transfer request", logger.Fields{
		"reference": reference,
	})

	transfer, err := s.FindTransfer(ctx, reference)
	if err != nil {
		logger.Error("transfer service get transfer failed", err, logger.Fields{
			"reference": reference,
		})
		return transferErrorResponse[models.TransferResponse](err, "failed to get transfer", "Unable to fetch transfer right now"), err
	}

	return commons.SuccessResponse("transfer fetched successfully", models.NewTransferResponse(transfer)), nil
}

func (s *TransferService) GetReceipt(ctx context.Context, reference string) (commons.Response[models.ReceiptResponse], error) {
	logger.Info("transfer service get receipt request", logger.Fields{
		"reference": reference,
	})

	transfer, err := s.FindTransfer(ctx, reference)
	if err != nil {
		logger.Error("transfer service get receipt lookup failed", err, logger.Fields{
			"reference": reference,
		})
		return transferErrorResponse[models.ReceiptResponse](err, "failed to get receipt", "Unable to fetch receipt right now"), err
	}

	if transfer.Status != domain.TransferStatusCompleted {
		err := newValidationError("receipt is only available for completed transfers")
		return commons.ErrorResponse[models.ReceiptResponse]("validation failed", err.Error()), err
	}

	content, err := s.receipts.TransferReceipt(transfer)
	if err != nil {
		logger.Error("transfer service render receipt failed", err, logger.Fields{
			"reference": transfer.Reference,
		})
		return commons.ErrorResponse[models.ReceiptResponse]("failed to get receipt", "Unable to render receipt right now"), err
	}

	logger.Info("transfer service get receipt success", logger.Fields{
		"reference": transfer.Reference,
		"bytes":     len(content),
	})

	return commons.SuccessResponse("receipt generated successfully", models.ReceiptResponse{
		Reference:   transfer.Reference,
		FileName:    "receipt-" + transfer.Reference + ".pdf",
		ContentType: "application/pdf",
		Content:     content,
	}), nil
}

func (s *TransferService) RemainingLimits(ctx context.Context, senderID string) (commons.Response[models.LimitsResponse], error) {
	logger.Info("transfer service remaining limits request", logger.Fields{
		"senderId": senderID,
	})

	senderID = strings.TrimSpace(senderID)
	if senderID == "" {
		err := newValidationError("senderId is required")
		return commons.ErrorResponse[models.LimitsResponse]("validation failed", err.Error()), err
	}

	limits, err := s.Limits(ctx, senderID)
	if err != nil {
		logger.Error("transfer service remaining limits failed", err, logger.Fields{
			"senderId": senderID,
		})
		return commons.ErrorResponse[models.LimitsResponse]("failed to get limits", "Unable to fetch limits right now"), err
	}

	return commons.SuccessResponse("limits fetched successfully", models.NewLimitsResponse(limits)), nil
}

func transferErrorResponse[T any](err error, message string, detail string) commons.Response[T] {
	if errors.Is(err, commons.ErrRecordNotFound) {
		return commons.ErrorResponse[T]("Transfer not found")
	}
	if isValidationError(err) {
		return commons.ErrorResponse[T]("validation failed", err.Error())
	}
	return commons.ErrorResponse[T](message, detail)
}

func generateThirtyDigitTransferReference() string {
	now := time.Now().UTC()
	base := now.Format("20060102150405") + fmt.Sprintf("%09d", now.Nanosecond())
	counter := atomic.AddUint32(&transferRefCounter, 1) % 10000000
	suffix := fmt.Sprintf("%07d", counter)
	return base + suffix
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, commons.ErrAlreadyExists) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == "23505"
	}
	return false
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
