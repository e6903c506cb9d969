package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/global-remit/teller-desk/src/internal/adapter/http/models"
	"github.com/global-remit/teller-desk/src/internal/domain"
	"github.com/global-remit/teller-desk/src/internal/usecase/services"
)

func strPtr(v string) *string { return &v }

func boolPtr(v bool) *bool { return &v }

// wizard drives one send money session for the demo teller.
type wizard struct {
	t   *testing.T
	ctx context.Context
	d   *desk
	id  string
}

func startWizard(t *testing.T, d *desk) *wizard {
	t.Helper()
	resp, err := d.sendMoney.StartSession(context.Background(), tellerID)
	require.NoError(t, err)
	require.NotNil(t, resp.Data)
	return &wizard{t: t, ctx: context.Background(), d: d, id: resp.Data.SessionID}
}

func (w *wizard) next() (models.SessionResponse, error) {
	w.t.Helper()
	resp, err := w.d.sendMoney.Navigate(w.ctx, tellerID, models.NavigateRequest{SessionID: w.id, Direction: "next"})
	require.NotNil(w.t, resp.Data)
	return *resp.Data, err
}

func (w *wizard) mustNext() models.SessionResponse {
	w.t.Helper()
	session, err := w.next()
	require.NoError(w.t, err)
	return session
}

func (w *wizard) update(req models.UpdateFormRequest) models.SessionResponse {
	w.t.Helper()
	req.SessionID = w.id
	resp, err := w.d.sendMoney.UpdateForm(w.ctx, tellerID, req)
	require.NoError(w.t, err)
	return *resp.Data
}

// toConfirm walks a session from the sender step to the confirm step.
func (w *wizard) toConfirm(senderID string, receiver models.SelectPartyRequest, amount string) models.SessionResponse {
	w.t.Helper()

	_, err := w.d.sendMoney.SelectSender(w.ctx, tellerID, models.SelectPartyRequest{SessionID: w.id, ClientID: senderID})
	require.NoError(w.t, err)
	assert.Equal(w.t, 2, w.mustNext().ActiveStep)

	receiver.SessionID = w.id
	_, err = w.d.sendMoney.SelectReceiver(w.ctx, tellerID, receiver)
	require.NoError(w.t, err)
	assert.Equal(w.t, 3, w.mustNext().ActiveStep)

	w.update(models.UpdateFormRequest{SourceOfFunds: strPtr("salary"), PurposeOfTransfer: strPtr("family_support")})
	assert.Equal(w.t, 4, w.mustNext().ActiveStep)

	w.update(models.UpdateFormRequest{Amount: strPtr(amount)})
	return w.mustNext()
}

func (w *wizard) submit() (*models.SessionResponse, string, error) {
	w.t.Helper()
	resp, err := w.d.sendMoney.Submit(w.ctx, tellerID, models.SessionRequest{SessionID: w.id})
	return resp.Data, resp.Message, err
}

func TestSendMoneyHappyPathSameAsSender(t *testing.T) {
	d := newDesk(t, &dispatcherStub{})
	w := startWizard(t, d)

	_, err := d.sendMoney.SelectSender(w.ctx, tellerID, models.SelectPartyRequest{SessionID: w.id, ClientID: "CUST1001"})
	require.NoError(t, err)

	session := w.mustNext()
	assert.Equal(t, 2, session.ActiveStep)
	require.Len(t, session.RecentReceivers, 1)
	assert.Equal(t, "REC001", session.RecentReceivers[0].ID)

	resp, err := d.sendMoney.SelectReceiver(w.ctx, tellerID, models.SelectPartyRequest{SessionID: w.id, SameAsSender: true})
	require.NoError(t, err)
	require.NotNil(t, resp.Data.Receiver)
	assert.Contains(t, resp.Data.Receiver.ID, "RCVR_FROM_CUST1001_")

	w.mustNext()
	w.update(models.UpdateFormRequest{SourceOfFunds: strPtr("salary"), PurposeOfTransfer: strPtr("family_support")})
	w.mustNext()

	session = w.update(models.UpdateFormRequest{Amount: strPtr("100"), AmountTendered: strPtr("110")})
	assert.Equal(t, "0.92", session.Form.ExchangeRate)
	assert.Equal(t, "2.00", session.Form.Fee)
	assert.Equal(t, "102.00", session.Form.TotalAmount)
	assert.Equal(t, "92.00", session.Form.RecipientAmount)
	assert.Equal(t, "8.00", session.Form.ChangeToReturn)

	session = w.mustNext()
	assert.Equal(t, 5, session.ActiveStep)
	assert.False(t, session.CanProceed)

	_, err = w.next()
	require.Error(t, err)

	session = w.update(models.UpdateFormRequest{AgreeToTerms: boolPtr(true)})
	assert.Empty(t, session.Errors)

	done, msg, err := w.submit()
	require.NoError(t, err, msg)
	assert.True(t, done.Complete)
	assert.False(t, done.HighRisk)
	assert.Len(t, done.TransferReference, 30)

	reg, err := d.till.GetRegister(w.ctx, tellerID, "USD")
	require.NoError(t, err)
	assert.True(t, reg.CurrentBalance.Equal(dec("3302")), "got %s", reg.CurrentBalance)

	_, msg, err = w.submit()
	require.Error(t, err)
	assert.Equal(t, "validation failed", msg)
}

func TestSendMoneyHighRiskRequiresTwoFactor(t *testing.T) {
	d := newDesk(t, &dispatcherStub{})
	w := startWizard(t, d)

	w.toConfirm("CUST1001", models.SelectPartyRequest{ClientID: "REC001"}, "100")
	w.update(models.UpdateFormRequest{AgreeToTerms: boolPtr(true)})

	session, msg, err := w.submit()
	require.Error(t, err)
	assert.Equal(t, services.MsgTwoFactorRequired, msg)
	assert.True(t, session.HighRisk)
	assert.True(t, session.Requires2FA)
	require.Len(t, session.TransferErrors, 1)
	assert.Equal(t, domain.ErrCodeTwoFactorRequired, session.TransferErrors[0].Code)

	challenge, err := d.sendMoney.RequestTwoFactor(w.ctx, tellerID, models.SessionRequest{SessionID: w.id})
	require.NoError(t, err)
	assert.Equal(t, "123456", challenge.Data.Code)

	failed, err := d.sendMoney.VerifyTwoFactor(w.ctx, tellerID, models.TwoFactorVerifyRequest{SessionID: w.id, Code: "000000"})
	require.Error(t, err)
	assert.Equal(t, services.MsgTwoFactorFailed, failed.Message)
	assert.False(t, failed.Data.TwoFactorVerified)
	require.NotEmpty(t, failed.Data.TransferErrors)
	assert.Equal(t, domain.ErrCodeTwoFactorFailed, failed.Data.TransferErrors[len(failed.Data.TransferErrors)-1].Code)

	verified, err := d.sendMoney.VerifyTwoFactor(w.ctx, tellerID, models.TwoFactorVerifyRequest{SessionID: w.id, Code: "123456"})
	require.NoError(t, err)
	assert.True(t, verified.Data.TwoFactorVerified)
	assert.Empty(t, verified.Data.TransferErrors)

	done, msg, err := w.submit()
	require.NoError(t, err, msg)
	assert.True(t, done.Complete)
	assert.True(t, done.HighRisk)
}

func TestSendMoneyAmountChangeDropsVerification(t *testing.T) {
	d := newDesk(t, &dispatcherStub{})
	w := startWizard(t, d)

	w.toConfirm("CUST1001", models.SelectPartyRequest{ClientID: "REC001"}, "100")
	_, err := d.sendMoney.RequestTwoFactor(w.ctx, tellerID, models.SessionRequest{SessionID: w.id})
	require.NoError(t, err)
	_, err = d.sendMoney.VerifyTwoFactor(w.ctx, tellerID, models.TwoFactorVerifyRequest{SessionID: w.id, Code: "123456"})
	require.NoError(t, err)

	session := w.update(models.UpdateFormRequest{Amount: strPtr("120")})
	assert.False(t, session.TwoFactorVerified)

	failed, err := d.sendMoney.VerifyTwoFactor(w.ctx, tellerID, models.TwoFactorVerifyRequest{SessionID: w.id, Code: "123456"})
	require.Error(t, err)
	assert.Equal(t, services.MsgTwoFactorFailed, failed.Message)
	assert.Contains(t, failed.Errors, "no verification code was requested")
}

func TestSendMoneyRejectsAmountOverLimit(t *testing.T) {
	d := newDesk(t, &dispatcherStub{})
	w := startWizard(t, d)

	w.toConfirm("CUST1001", models.SelectPartyRequest{SameAsSender: true}, "6000")
	w.update(models.UpdateFormRequest{AgreeToTerms: boolPtr(true)})

	session, msg, err := w.submit()
	require.Error(t, err)
	assert.Equal(t, services.MsgTransferRejected, msg)

	var transferErr domain.TransferError
	require.True(t, errors.As(err, &transferErr))
	assert.Equal(t, domain.ErrCodeExceedsTransactionLimit, transferErr.Code)
	assert.Equal(t, "Amount exceeds maximum transaction limit of 5000", session.Errors["amount"])
	assert.False(t, session.Complete)

	history, err := d.transfers.ListBySender(w.ctx, "CUST1001", 0)
	require.NoError(t, err)
	assert.Len(t, history, 1, "rejected transfers are never persisted")
}

func TestSendMoneyDispatchFailure(t *testing.T) {
	dispatcher := failFirst(10)
	d := newDesk(t, dispatcher)
	w := startWizard(t, d)

	w.toConfirm("CUST1001", models.SelectPartyRequest{SameAsSender: true}, "50")
	w.update(models.UpdateFormRequest{AgreeToTerms: boolPtr(true)})

	session, msg, err := w.submit()
	require.Error(t, err)
	assert.Equal(t, services.MsgTransferFailed, msg)
	assert.Equal(t, 3, session.RetryCount)
	assert.False(t, session.Complete)
	require.Len(t, session.TransferErrors, 1)
	assert.Equal(t, domain.ErrCodeTransferFailed, session.TransferErrors[0].Code)
	assert.True(t, session.TransferErrors[0].Retryable)
	assert.Len(t, dispatcher.messages, 3)
}

func TestSendMoneyStepValidation(t *testing.T) {
	d := newDesk(t, &dispatcherStub{})
	w := startWizard(t, d)

	session, err := w.next()
	require.Error(t, err)
	assert.Equal(t, 1, session.ActiveStep)
	assert.Equal(t, "Please select a sender", session.Errors["sender"])

	resp, err := d.sendMoney.SelectReceiver(w.ctx, tellerID, models.SelectPartyRequest{SessionID: w.id, SameAsSender: true})
	require.Error(t, err)
	assert.Equal(t, "validation failed", resp.Message)
	assert.Equal(t, "No sender selected. Please select a sender first.", resp.Data.Errors["receiver"])

	back, err := d.sendMoney.Navigate(w.ctx, tellerID, models.NavigateRequest{SessionID: w.id, Direction: "back"})
	require.NoError(t, err)
	assert.Equal(t, 1, back.Data.ActiveStep)
	assert.Empty(t, back.Data.Errors)

	_, msg, err := w.submit()
	require.Error(t, err)
	assert.Equal(t, services.MsgStepIncomplete, msg)
}

func TestSendMoneySessionOwnership(t *testing.T) {
	d := newDesk(t, &dispatcherStub{})
	w := startWizard(t, d)

	resp, err := d.sendMoney.GetSession(w.ctx, "TELLER999", w.id)
	require.Error(t, err)
	assert.Equal(t, services.MsgSessionNotFound, resp.Message)

	resp, err = d.sendMoney.GetSession(w.ctx, tellerID, "missing")
	require.Error(t, err)
	assert.Equal(t, services.MsgSessionNotFound, resp.Message)

	resp, err = d.sendMoney.GetSession(w.ctx, tellerID, w.id)
	require.NoError(t, err)
	assert.Equal(t, tellerID, resp.Data.TellerID)
	assert.Len(t, resp.Data.Steps, 5)
}

func TestSendMoneyUseTransactionFromHistory(t *testing.T) {
	d := newDesk(t, &dispatcherStub{})
	w := startWizard(t, d)

	_, err := d.sendMoney.SelectSender(w.ctx, tellerID, models.SelectPartyRequest{SessionID: w.id, ClientID: "CUST1001"})
	require.NoError(t, err)

	resp, err := d.sendMoney.UseTransactionFromHistory(w.ctx, tellerID, models.ReuseTransactionRequest{SessionID: w.id, Reference: "TXN789012"})
	require.NoError(t, err)

	session := resp.Data
	assert.Equal(t, 4, session.ActiveStep)
	require.NotNil(t, session.Receiver)
	assert.Equal(t, "REC001", session.Receiver.ID)
	assert.Equal(t, "150", session.Form.Amount)
	assert.Equal(t, "USD", session.Form.Currency)
	assert.Equal(t, "CAD", session.Form.DestinationCurrency)
	assert.Equal(t, "1.36", session.Form.ExchangeRate)
	assert.Equal(t, "", session.Form.SourceOfFunds)

	resp, err = d.sendMoney.UseTransactionFromHistory(w.ctx, tellerID, models.ReuseTransactionRequest{SessionID: w.id, Reference: "NOPE"})
	require.Error(t, err)
	assert.Equal(t, "Transfer not found", resp.Message)
}

func TestSendMoneyResetKeepsIdentity(t *testing.T) {
	d := newDesk(t, &dispatcherStub{})
	w := startWizard(t, d)

	w.toConfirm("CUST1001", models.SelectPartyRequest{SameAsSender: true}, "100")

	resp, err := d.sendMoney.Reset(w.ctx, tellerID, models.SessionRequest{SessionID: w.id})
	require.NoError(t, err)
	assert.Equal(t, w.id, resp.Data.SessionID)
	assert.Equal(t, 1, resp.Data.ActiveStep)
	assert.Nil(t, resp.Data.Sender)
	assert.Nil(t, resp.Data.Receiver)
	assert.Equal(t, "", resp.Data.Form.Amount)
	assert.Equal(t, "0.92", resp.Data.Form.ExchangeRate)
}

// submitTogether fires Submit on every session at once and returns the
// errors in session order.
func submitTogether(d *desk, ids ...string) []error {
	errs := make([]error, len(ids))
	var wg sync.WaitGroup
	for i, id := range ids {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			_, errs[i] = d.sendMoney.Submit(context.Background(), tellerID, models.SessionRequest{SessionID: id})
		}(i, id)
	}
	wg.Wait()
	return errs
}

func countNil(errs []error) int {
	n := 0
	for _, err := range errs {
		if err == nil {
			n++
		}
	}
	return n
}

func slowDispatcher(delay time.Duration) *dispatcherStub {
	return &dispatcherStub{dispatchFn: func(ctx context.Context, _ domain.TransferDispatchMessage) error {
		select {
		case <-time.After(delay):
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}}
}

func TestSendMoneyDoubleSubmitSendsOneTransfer(t *testing.T) {
	dispatcher := slowDispatcher(50 * time.Millisecond)
	d := newDesk(t, dispatcher)
	w := startWizard(t, d)

	before, err := d.transfers.ListBySender(w.ctx, "CUST1001", 0)
	require.NoError(t, err)

	w.toConfirm("CUST1001", models.SelectPartyRequest{SameAsSender: true}, "100")
	w.update(models.UpdateFormRequest{AgreeToTerms: boolPtr(true)})

	errs := submitTogether(d, w.id, w.id)
	assert.Equal(t, 1, countNil(errs), "errors: %v", errs)

	dispatcher.mu.Lock()
	dispatched := len(dispatcher.messages)
	dispatcher.mu.Unlock()
	assert.Equal(t, 1, dispatched)

	after, err := d.transfers.ListBySender(w.ctx, "CUST1001", 0)
	require.NoError(t, err)
	assert.Len(t, after, len(before)+1)

	reg, err := d.till.GetRegister(w.ctx, tellerID, "USD")
	require.NoError(t, err)
	assert.True(t, reg.CurrentBalance.Equal(dec("3302")), "got %s", reg.CurrentBalance)

	resp, err := d.sendMoney.GetSession(w.ctx, tellerID, w.id)
	require.NoError(t, err)
	assert.True(t, resp.Data.Complete)
	assert.False(t, resp.Data.Submitting)
}

func TestSendMoneySenderLimitHoldsAcrossSessions(t *testing.T) {
	d := newDesk(t, slowDispatcher(50*time.Millisecond))
	ctx := context.Background()

	_, err := d.transferService.Execute(ctx, cashTransfer("4000"), nil)
	require.NoError(t, err)

	ids := make([]string, 0, 2)
	for i := 0; i < 2; i++ {
		w := startWizard(t, d)
		w.toConfirm("CUST1001", models.SelectPartyRequest{ClientID: "REC001"}, "4000")
		_, err := d.sendMoney.RequestTwoFactor(ctx, tellerID, models.SessionRequest{SessionID: w.id})
		require.NoError(t, err)
		_, err = d.sendMoney.VerifyTwoFactor(ctx, tellerID, models.TwoFactorVerifyRequest{SessionID: w.id, Code: "123456"})
		require.NoError(t, err)
		w.update(models.UpdateFormRequest{AgreeToTerms: boolPtr(true)})
		ids = append(ids, w.id)
	}

	errs := submitTogether(d, ids...)
	require.Equal(t, 1, countNil(errs), "errors: %v", errs)

	var rejected error
	for _, err := range errs {
		if err != nil {
			rejected = err
		}
	}
	var transferErr domain.TransferError
	require.ErrorAs(t, rejected, &transferErr)
	assert.Equal(t, domain.ErrCodeExceedsDailyLimit, transferErr.Code)

	limits, err := d.transferService.Limits(ctx, "CUST1001")
	require.NoError(t, err)
	assert.True(t, limits.RemainingDaily.Equal(dec("2000")), "got %s", limits.RemainingDaily)
}
