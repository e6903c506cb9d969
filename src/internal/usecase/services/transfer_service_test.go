package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/global-remit/teller-desk/src/internal/adapter/repository/memory"
	"github.com/global-remit/teller-desk/src/internal/adapter/repository/seed"
	"github.com/global-remit/teller-desk/src/internal/domain"
	"github.com/global-remit/teller-desk/src/internal/usecase/services"
)

func cashTransfer(amount string) domain.Transfer {
	a := dec(amount)
	return domain.Transfer{
		TellerID:            tellerID,
		SenderID:            "CUST1001",
		SenderName:          "John Smith",
		ReceiverID:          "REC003",
		ReceiverCountry:     "Spain",
		SourceCurrency:      "USD",
		DestinationCurrency: "EUR",
		Amount:              a,
		ExchangeRate:        dec("0.92"),
		Fee:                 dec("2"),
		TotalAmount:         a.Add(dec("2")),
		LimitAmount:         a,
		FeePayer:            domain.FeePayerSender,
		PaymentMethod:       domain.PaymentMethodCash,
	}
}

func TestTransferServiceExecuteRetriesThenCompletes(t *testing.T) {
	ctx := context.Background()
	dispatcher := failFirst(1)
	d := newDesk(t, dispatcher)

	var retries []int
	done, err := d.transferService.Execute(ctx, cashTransfer("100"), func(attempt int) {
		retries = append(retries, attempt)
	})
	require.NoError(t, err)

	assert.Equal(t, domain.TransferStatusCompleted, done.Status)
	assert.Equal(t, 2, done.Attempts)
	assert.Len(t, done.Reference, 30)
	assert.Equal(t, []int{1}, retries)
	assert.Equal(t, []time.Duration{time.Second}, d.sleeps)
	require.Len(t, dispatcher.messages, 2)
	assert.Equal(t, done.Reference, dispatcher.messages[1].Reference)

	reg, err := d.till.GetRegister(ctx, tellerID, "USD")
	require.NoError(t, err)
	assert.True(t, reg.CurrentBalance.Equal(dec("3302")), "cash-in adds the total amount, got %s", reg.CurrentBalance)

	movements, err := d.till.ListMovements(ctx, tellerID, "USD", 1)
	require.NoError(t, err)
	require.Len(t, movements, 1)
	assert.Equal(t, done.Reference, movements[0].Reference)
}

func TestTransferServiceExecuteFailsAfterMaxAttempts(t *testing.T) {
	ctx := context.Background()
	d := newDesk(t, failFirst(10))

	var retries []int
	failed, err := d.transferService.Execute(ctx, cashTransfer("100"), func(attempt int) {
		retries = append(retries, attempt)
	})
	require.Error(t, err)

	var transferErr domain.TransferError
	require.True(t, errors.As(err, &transferErr))
	assert.Equal(t, domain.ErrCodeTransferFailed, transferErr.Code)
	assert.True(t, transferErr.Retryable)

	assert.Equal(t, domain.TransferStatusFailed, failed.Status)
	assert.Equal(t, 3, failed.Attempts)
	assert.Equal(t, []int{1, 2, 3}, retries)
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, d.sleeps)

	reg, err := d.till.GetRegister(ctx, tellerID, "USD")
	require.NoError(t, err)
	assert.True(t, reg.CurrentBalance.Equal(dec("3200")), "failed transfers do not touch the till")

	limits, err := d.transferService.Limits(ctx, "CUST1001")
	require.NoError(t, err)
	assert.True(t, limits.RemainingDaily.Equal(dec("10000")), "failed transfers do not consume limits")
}

func TestTransferServiceValidateAmount(t *testing.T) {
	ctx := context.Background()
	d := newDesk(t, &dispatcherStub{})

	_, err := d.transferService.Execute(ctx, cashTransfer("4000"), nil)
	require.NoError(t, err)
	_, err = d.transferService.Execute(ctx, cashTransfer("4000"), nil)
	require.NoError(t, err)

	limits, err := d.transferService.Limits(ctx, "CUST1001")
	require.NoError(t, err)
	assert.True(t, limits.RemainingDaily.Equal(dec("2000")))
	assert.True(t, limits.RemainingMonthly.Equal(dec("42000")))

	assert.Empty(t, d.transferService.ValidateAmount(limits, dec("1500")))

	errs := d.transferService.ValidateAmount(limits, dec("6000"))
	require.Len(t, errs, 2)
	assert.Equal(t, domain.ErrCodeExceedsTransactionLimit, errs[0].Code)
	assert.Equal(t, "Amount exceeds maximum transaction limit of 5000", errs[0].Message)
	assert.Equal(t, domain.ErrCodeExceedsDailyLimit, errs[1].Code)
	assert.Equal(t, "amount", errs[1].Field)
	assert.False(t, errs[1].Retryable)

	errs = d.transferService.ValidateAmount(limits, dec("0"))
	require.Len(t, errs, 1)
	assert.Equal(t, domain.ErrCodeInvalidAmount, errs[0].Code)
}

func TestTransferServiceToLimitsCurrency(t *testing.T) {
	d := newDesk(t, &dispatcherStub{})

	converted, err := d.transferService.ToLimitsCurrency(context.Background(), dec("100"), "EUR")
	require.NoError(t, err)
	assert.True(t, converted.Equal(dec("108")), "got %s", converted)

	same, err := d.transferService.ToLimitsCurrency(context.Background(), dec("100"), "usd")
	require.NoError(t, err)
	assert.True(t, same.Equal(dec("100")))
}

func TestTransferServiceIsHighRisk(t *testing.T) {
	d := newDesk(t, &dispatcherStub{})
	usa := domain.Client{Country: "USA"}
	canada := domain.Client{Country: "Canada"}

	assert.False(t, d.transferService.IsHighRisk(usa, domain.Client{Country: "usa"}, dec("1000"), "salary"))
	assert.True(t, d.transferService.IsHighRisk(usa, usa, dec("1000.01"), "salary"))
	assert.True(t, d.transferService.IsHighRisk(usa, canada, dec("10"), "salary"))
	assert.True(t, d.transferService.IsHighRisk(usa, usa, dec("10"), "other"))
}

func TestTransferServiceGetReceipt(t *testing.T) {
	ctx := context.Background()
	d := newDesk(t, failFirst(10))

	failed, _ := d.transferService.Execute(ctx, cashTransfer("50"), nil)
	resp, err := d.transferService.GetReceipt(ctx, failed.Reference)
	require.Error(t, err)
	assert.Equal(t, "validation failed", resp.Message)

	resp, err = d.transferService.GetReceipt(ctx, "TXN789012")
	require.NoError(t, err)
	require.NotNil(t, resp.Data)
	assert.Equal(t, "receipt-TXN789012.pdf", resp.Data.FileName)
	assert.True(t, strings.HasPrefix(string(resp.Data.Content), "%PDF"))

	resp, err = d.transferService.GetReceipt(ctx, "NOPE")
	require.Error(t, err)
	assert.Equal(t, "Transfer not found", resp.Message)
}

// ctxTransferRepo fails status updates on a done context, like a database
// driver would.
type ctxTransferRepo struct {
	*memory.TransferRepository
}

func (r ctxTransferRepo) UpdateStatus(ctx context.Context, reference string, status domain.TransferStatus, attempts int, failureReason string) (domain.Transfer, error) {
	if err := ctx.Err(); err != nil {
		return domain.Transfer{}, err
	}
	return r.TransferRepository.UpdateStatus(ctx, reference, status, attempts, failureReason)
}

func TestTransferServiceSettlesAfterCallerCancels(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	transfers := ctxTransferRepo{memory.NewTransferRepository(seed.Transfers())}
	dispatcher := &dispatcherStub{dispatchFn: func(context.Context, domain.TransferDispatchMessage) error {
		cancel()
		return errPayoutDown
	}}
	svc := services.NewTransferService(
		transfers,
		services.NewRateService(memory.NewRateRepository(seed.Rates())),
		nil,
		dispatcher,
		receiptStub{},
		nil,
		services.TransferPolicy{
			Limits:      domain.DefaultTransferLimits("USD"),
			Risk:        domain.DefaultRiskPolicy(),
			MaxAttempts: 3,
			Backoff:     time.Second,
		},
	).WithSleeper(func(ctx context.Context, _ time.Duration) error {
		return ctx.Err()
	})

	failed, err := svc.Execute(ctx, cashTransfer("100"), nil)
	var transferErr domain.TransferError
	require.ErrorAs(t, err, &transferErr)
	assert.Equal(t, domain.ErrCodeTransferFailed, transferErr.Code)
	assert.Equal(t, domain.TransferStatusFailed, failed.Status)
	assert.Equal(t, 1, failed.Attempts)

	stored, err := transfers.GetByReference(context.Background(), failed.Reference)
	require.NoError(t, err)
	assert.Equal(t, domain.TransferStatusFailed, stored.Status)

	limits, err := svc.Limits(context.Background(), "CUST1001")
	require.NoError(t, err)
	assert.True(t, limits.RemainingDaily.Equal(dec("10000")), "got %s", limits.RemainingDaily)
}
