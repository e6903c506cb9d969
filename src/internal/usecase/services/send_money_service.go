package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/global-remit/teller-desk/src/internal/adapter/http/models"
	"github.com/global-remit/teller-desk/src/internal/adapter/repository/repo_interfaces"
	"github.com/global-remit/teller-desk/src/internal/commons"
	"github.com/global-remit/teller-desk/src/internal/domain"
	"github.com/global-remit/teller-desk/src/internal/logger"
	"github.com/global-remit/teller-desk/src/internal/metrics"
	"github.com/global-remit/teller-desk/src/internal/usecase/service_interfaces"
)

var _ service_interfaces.SendMoneyService = (*SendMoneyService)(nil)

// Response messages the controllers map to status codes.
const (
	MsgSessionNotFound   = "Session not found"
	MsgStepIncomplete    = "step incomplete"
	MsgTransferRejected  = "transfer rejected"
	MsgTwoFactorRequired = "2FA required"
	MsgTwoFactorFailed   = "2FA verification failed"
	MsgTransferFailed    = "transfer failed"
	MsgUnexpectedError   = "unexpected error"
)

const (
	noSenderMessage          = "No sender selected. Please select a sender first."
	twoFactorRequiredMessage = "Please complete 2FA verification before proceeding"
	twoFactorFailedMessage   = "Failed to verify 2FA code. Please try again."
	unexpectedErrorMessage   = "An unexpected error occurred. Please try again later."
)

var (
	errStepIncomplete    = errors.New("current step is incomplete")
	errTwoFactorRequired = errors.New("2FA verification required")
)

type SendMoneyOptions struct {
	Defaults             domain.FormDefaults
	TwoFactorTTL         time.Duration
	TwoFactorMaxAttempts int
	// EchoTwoFactorCode returns the generated code in the challenge response.
	// Only for environments without an SMS gateway.
	EchoTwoFactorCode bool
}

type SendMoneyService struct {
	sessions        repo_interfaces.SessionStore
	clientService   service_interfaces.ClientService
	rateService     service_interfaces.RateService
	chargesService  service_interfaces.ChargesService
	transferService service_interfaces.TransferService
	metrics         *metrics.Metrics
	options         SendMoneyOptions
	now             func() time.Time
	newCode         func() (string, error)

	// sessionLocks serialise every load-modify-save of one session.
	// senderLocks cover the limit check and execution of one sender's
	// transfers across sessions.
	sessionLocks *keyedLock
	senderLocks  *keyedLock
}

func NewSendMoneyService(
	sessions repo_interfaces.SessionStore,
	clientService service_interfaces.ClientService,
	rateService service_interfaces.RateService,
	chargesService service_interfaces.ChargesService,
	transferService service_interfaces.TransferService,
	m *metrics.Metrics,
	options SendMoneyOptions,
) *SendMoneyService {
	if options.TwoFactorTTL <= 0 {
		options.TwoFactorTTL = 5 * time.Minute
	}
	if options.TwoFactorMaxAttempts <= 0 {
		options.TwoFactorMaxAttempts = 5
	}
	return &SendMoneyService{
		sessions:        sessions,
		clientService:   clientService,
		rateService:     rateService,
		chargesService:  chargesService,
		transferService: transferService,
		metrics:         m,
		options:         options,
		now:             time.Now,
		newCode:         generateTwoFactorCode,
		sessionLocks:    newKeyedLock(),
		senderLocks:     newKeyedLock(),
	}
}

// WithCodeGenerator replaces the 2FA code source, mainly for tests.
func (s *SendMoneyService) WithCodeGenerator(gen func() (string, error)) *SendMoneyService {
	s.newCode = gen
	return s
}

func (s *SendMoneyService) StartSession(ctx context.Context, tellerID string) (commons.Response[models.SessionResponse], error) {
	logger.Info("send money service start session request", logger.Fields{
		"tellerId": tellerID,
	})

	if strings.TrimSpace(tellerID) == "" {
		err := newValidationError("tellerId is required")
		return commons.ErrorResponse[models.SessionResponse]("validation failed", err.Error()), err
	}

	session := domain.NewSendMoneySession(uuid.NewString(), tellerID, s.options.Defaults, s.now())
	s.applyRate(ctx, &session.Form)
	s.recalculate(&session.Form)

	if err := s.save(ctx, &session); err != nil {
		return sessionErrorResponse[models.SessionResponse](err), err
	}
	s.metrics.SessionStarted()

	logger.Info("send money service start session success", logger.Fields{
		"tellerId":  tellerID,
		"sessionId": session.ID,
	})

	return commons.SuccessResponse("session started successfully", models.NewSessionResponse(session)), nil
}

func (s *SendMoneyService) GetSession(ctx context.Context, tellerID string, sessionID string) (commons.Response[models.SessionResponse], error) {
	logger.Info("send money service get session request", logger.Fields{
		"tellerId":  tellerID,
		"sessionId": sessionID,
	})

	session, err := s.load(ctx, tellerID, sessionID)
	if err != nil {
		return sessionErrorResponse[models.SessionResponse](err), err
	}

	return commons.SuccessResponse("session fetched successfully", models.NewSessionResponse(session)), nil
}

func (s *SendMoneyService) SelectSender(ctx context.Context, tellerID string, req models.SelectPartyRequest) (commons.Response[models.SessionResponse], error) {
	logger.Info("send money service select sender request", logger.Fields{
		"tellerId": tellerID,
		"payload":  logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("send money service select sender validation failed", err, nil)
		return commons.ErrorResponse[models.SessionResponse]("validation failed", err.Error()), err
	}
	if req.SameAsSender {
		err := newValidationError("sameAsSender only applies to the receiver")
		return commons.ErrorResponse[models.SessionResponse]("validation failed", err.Error()), err
	}

	unlock := s.sessionLocks.lock(strings.TrimSpace(req.SessionID))
	defer unlock()

	session, err := s.load(ctx, tellerID, req.SessionID)
	if err != nil {
		return sessionErrorResponse[models.SessionResponse](err), err
	}

	sender, err := s.resolveParty(ctx, req, domain.ClientRoleSender)
	if err != nil {
		logger.Error("send money service select sender failed", err, logger.Fields{
			"sessionId": session.ID,
		})
		return sessionErrorResponse[models.SessionResponse](err), err
	}

	session.Sender = &sender
	delete(session.Errors, "sender")
	s.resetVerification(&session)

	if err := s.save(ctx, &session); err != nil {
		return sessionErrorResponse[models.SessionResponse](err), err
	}

	logger.Info("send money service select sender success", logger.Fields{
		"sessionId": session.ID,
		"senderId":  sender.ID,
	})

	return commons.SuccessResponse("sender selected successfully", models.NewSessionResponse(session)), nil
}

func (s *SendMoneyService) SelectReceiver(ctx context.Context, tellerID string, req models.SelectPartyRequest) (commons.Response[models.SessionResponse], error) {
	logger.Info("send money service select receiver request", logger.Fields{
		"tellerId": tellerID,
		"payload":  logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("send money service select receiver validation failed", err, nil)
		return commons.ErrorResponse[models.SessionResponse]("validation failed", err.Error()), err
	}

	unlock := s.sessionLocks.lock(strings.TrimSpace(req.SessionID))
	defer unlock()

	session, err := s.load(ctx, tellerID, req.SessionID)
	if err != nil {
		return sessionErrorResponse[models.SessionResponse](err), err
	}

	var receiver domain.Client
	if req.SameAsSender {
		if session.Sender == nil {
			session.Errors["receiver"] = noSenderMessage
			if saveErr := s.save(ctx, &session); saveErr != nil {
				return sessionErrorResponse[models.SessionResponse](saveErr), saveErr
			}
			err := newValidationError(noSenderMessage)
			return commons.ErrorResponseWithData("validation failed", models.NewSessionResponse(session), err.Error()), err
		}
		receiver, err = s.clientService.UpsertClient(ctx, s.receiverFromSender(*session.Sender), domain.ClientRoleReceiver)
	} else {
		receiver, err = s.resolveParty(ctx, req, domain.ClientRoleReceiver)
	}
	if err != nil {
		logger.Error("send money service select receiver failed", err, logger.Fields{
			"sessionId": session.ID,
		})
		return sessionErrorResponse[models.SessionResponse](err), err
	}

	session.Receiver = &receiver
	delete(session.Errors, "receiver")
	s.resetVerification(&session)

	if err := s.save(ctx, &session); err != nil {
		return sessionErrorResponse[models.SessionResponse](err), err
	}

	logger.Info("send money service select receiver success", logger.Fields{
		"sessionId":    session.ID,
		"receiverId":   receiver.ID,
		"sameAsSender": req.SameAsSender,
	})

	return commons.SuccessResponse("receiver selected successfully", models.NewSessionResponse(session)), nil
}

// receiverFromSender copies the sender as a beneficiary of their own
// transfer. Documents and the beneficiary relationship do not carry over.
func (s *SendMoneyService) receiverFromSender(sender domain.Client) domain.Client {
	receiver := sender
	receiver.ID = fmt.Sprintf("RCVR_FROM_%s_%d", sender.ID, s.now().UnixMilli())
	receiver.RelationshipToSender = "Self"
	receiver.RelationshipToBeneficiary = ""
	receiver.Documents = nil
	receiver.AccountBalances = append([]domain.AccountBalance(nil), sender.AccountBalances...)
	receiver.RiskRating = ""
	return receiver
}

func (s *SendMoneyService) resolveParty(ctx context.Context, req models.SelectPartyRequest, role domain.ClientRole) (domain.Client, error) {
	if id := strings.TrimSpace(req.ClientID); id != "" {
		return s.clientService.FindClient(ctx, id)
	}

	clientReq := *req.Client
	clientReq.Role = string(role)
	if err := clientReq.Validate(); err != nil {
		return domain.Client{}, newValidationError(err.Error())
	}
	return s.clientService.UpsertClient(ctx, clientReq.ToDomain(), role)
}

func (s *SendMoneyService) UpdateForm(ctx context.Context, tellerID string, req models.UpdateFormRequest) (commons.Response[models.SessionResponse], error) {
	logger.Info("send money service update form request", logger.Fields{
		"tellerId": tellerID,
		"payload":  logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("send money service update form validation failed", err, nil)
		return commons.ErrorResponse[models.SessionResponse]("validation failed", err.Error()), err
	}

	unlock := s.sessionLocks.lock(strings.TrimSpace(req.SessionID))
	defer unlock()

	session, err := s.load(ctx, tellerID, req.SessionID)
	if err != nil {
		return sessionErrorResponse[models.SessionResponse](err), err
	}

	changed := applyFormChanges(&session.Form, req)
	for _, field := range changed {
		delete(session.Errors, field)
		if field == "agreeToTerms" {
			delete(session.Errors, "terms")
		}
	}

	pairChanged := slices.Contains(changed, "currency") || slices.Contains(changed, "destinationCurrency")
	if pairChanged && !slices.Contains(changed, "exchangeRate") {
		s.applyRate(ctx, &session.Form)
	}
	s.recalculate(&session.Form)

	if slices.Contains(changed, "amount") || pairChanged || slices.Contains(changed, "sourceOfFunds") {
		s.resetVerification(&session)
		session.TransferErrors = nil
	}

	if err := s.save(ctx, &session); err != nil {
		return sessionErrorResponse[models.SessionResponse](err), err
	}

	logger.Info("send money service update form success", logger.Fields{
		"sessionId": session.ID,
		"changed":   changed,
		"fee":       session.Form.Fee.StringFixed(2),
		"total":     session.Form.TotalAmount.StringFixed(2),
	})

	return commons.SuccessResponse("form updated successfully", models.NewSessionResponse(session)), nil
}

// applyFormChanges writes every provided field into the form and returns the
// names of the fields whose value actually changed. Later writes win.
func applyFormChanges(form *domain.SendMoneyForm, req models.UpdateFormRequest) []string {
	var changed []string

	setString := func(field string, dst *string, src *string, normalize func(string) string) {
		if src == nil {
			return
		}
		value := normalize(*src)
		if *dst != value {
			*dst = value
			changed = append(changed, field)
		}
	}
	setDecimal := func(field string, dst *decimal.Decimal, src *string) {
		if src == nil {
			return
		}
		value := models.ParseDecimal(*src)
		if !dst.Equal(value) {
			*dst = value
			changed = append(changed, field)
		}
	}
	setNullDecimal := func(field string, dst *decimal.NullDecimal, src *string) {
		if src == nil {
			return
		}
		var value decimal.NullDecimal
		if trimmed := strings.TrimSpace(*src); trimmed != "" {
			value = decimal.NewNullDecimal(models.ParseDecimal(trimmed))
		}
		if dst.Valid != value.Valid || !dst.Decimal.Equal(value.Decimal) {
			*dst = value
			changed = append(changed, field)
		}
	}

	setString("currency", &form.Currency, req.Currency, models.NormalizeCurrency)
	setString("destinationCurrency", &form.DestinationCurrency, req.DestinationCurrency, models.NormalizeCurrency)
	setNullDecimal("amount", &form.Amount, req.Amount)
	if req.ExchangeRate != nil && strings.TrimSpace(*req.ExchangeRate) != "" {
		setDecimal("exchangeRate", &form.ExchangeRate, req.ExchangeRate)
	}
	setDecimal("extraChargesPercent", &form.ExtraChargesPercent, req.ExtraChargesPercent)
	setDecimal("tellerDiscountPercent", &form.TellerDiscountPercent, req.TellerDiscountPercent)

	if req.FeePayer != nil {
		payer := domain.FeePayer(strings.TrimSpace(*req.FeePayer))
		if form.FeePayer != payer {
			form.FeePayer = payer
			changed = append(changed, "feePayer")
		}
	}
	setString("promoCode", &form.PromoCode, req.PromoCode, strings.TrimSpace)
	if req.PaymentMethod != nil {
		method := domain.PaymentMethod(strings.TrimSpace(*req.PaymentMethod))
		if form.PaymentMethod != method {
			form.PaymentMethod = method
			changed = append(changed, "paymentMethod")
		}
	}
	setNullDecimal("amountTendered", &form.AmountTendered, req.AmountTendered)
	setString("sourceOfFunds", &form.SourceOfFunds, req.SourceOfFunds, strings.TrimSpace)
	setString("purposeOfTransfer", &form.PurposeOfTransfer, req.PurposeOfTransfer, strings.TrimSpace)
	setString("transferType", &form.TransferType, req.TransferType, strings.TrimSpace)
	setString("operator", &form.Operator, req.Operator, strings.TrimSpace)
	setString("customerCardNumberDelivery", &form.CustomerCardNumberDelivery, req.CustomerCardNumberDelivery, strings.TrimSpace)
	setString("notes", &form.Notes, req.Notes, func(v string) string { return v })
	if req.AgreeToTerms != nil && form.AgreeToTerms != *req.AgreeToTerms {
		form.AgreeToTerms = *req.AgreeToTerms
		changed = append(changed, "agreeToTerms")
	}

	return changed
}

func (s *SendMoneyService) Navigate(ctx context.Context, tellerID string, req models.NavigateRequest) (commons.Response[models.SessionResponse], error) {
	logger.Info("send money service navigate request", logger.Fields{
		"tellerId": tellerID,
		"payload":  logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("send money service navigate validation failed", err, nil)
		return commons.ErrorResponse[models.SessionResponse]("validation failed", err.Error()), err
	}

	unlock := s.sessionLocks.lock(strings.TrimSpace(req.SessionID))
	defer unlock()

	session, err := s.load(ctx, tellerID, req.SessionID)
	if err != nil {
		return sessionErrorResponse[models.SessionResponse](err), err
	}

	if strings.EqualFold(strings.TrimSpace(req.Direction), models.DirectionBack) {
		if session.ActiveStep > domain.StepSender {
			session.ActiveStep--
		}
		session.Direction = domain.NavigationBackward
		session.Errors = map[string]string{}

		if err := s.save(ctx, &session); err != nil {
			return sessionErrorResponse[models.SessionResponse](err), err
		}
		return commons.SuccessResponse("moved to previous step", models.NewSessionResponse(session)), nil
	}

	if errs := session.ValidateCurrentStep(); len(errs) > 0 {
		return s.rejectStep(ctx, session, errs)
	}

	if session.ActiveStep == domain.LastStep {
		return s.submit(ctx, session)
	}

	from := session.ActiveStep
	session.ActiveStep++
	session.Direction = domain.NavigationForward
	session.Errors = map[string]string{}

	if err := s.save(ctx, &session); err != nil {
		return sessionErrorResponse[models.SessionResponse](err), err
	}

	resp := models.NewSessionResponse(session)
	if from == domain.StepSender && session.Sender != nil {
		resp.RecentReceivers = s.recentReceivers(ctx, session.Sender.ID)
	}

	logger.Info("send money service navigate success", logger.Fields{
		"sessionId": session.ID,
		"step":      session.ActiveStep,
	})

	return commons.SuccessResponse("moved to next step", resp), nil
}

func (s *SendMoneyService) recentReceivers(ctx context.Context, senderID string) []models.ClientResponse {
	receivers, err := s.clientService.RecentReceiverClients(ctx, senderID)
	if err != nil {
		logger.Warn("send money service recent receivers unavailable", logger.Fields{
			"senderId": senderID,
			"error":    err.Error(),
		})
		return []models.ClientResponse{}
	}

	out := make([]models.ClientResponse, 0, len(receivers))
	for _, r := range receivers {
		out = append(out, models.NewClientResponse(r))
	}
	return out
}

func (s *SendMoneyService) Submit(ctx context.Context, tellerID string, req models.SessionRequest) (commons.Response[models.SessionResponse], error) {
	logger.Info("send money service submit request", logger.Fields{
		"tellerId":  tellerID,
		"sessionId": req.SessionID,
	})

	if err := req.Validate(); err != nil {
		logger.Error("send money service submit validation failed", err, nil)
		return commons.ErrorResponse[models.SessionResponse]("validation failed", err.Error()), err
	}

	unlock := s.sessionLocks.lock(strings.TrimSpace(req.SessionID))
	defer unlock()

	session, err := s.load(ctx, tellerID, req.SessionID)
	if err != nil {
		return sessionErrorResponse[models.SessionResponse](err), err
	}

	return s.submit(ctx, session)
}

// submit runs the step, limit and risk gates in order and then executes the
// transfer. Every exit saves the session so the caller sees the same errors
// on the next read.
func (s *SendMoneyService) submit(ctx context.Context, session domain.SendMoneySession) (commons.Response[models.SessionResponse], error) {
	if session.Complete {
		err := newValidationError("transfer already submitted; start a new transfer")
		return commons.ErrorResponseWithData("validation failed", models.NewSessionResponse(session), err.Error()), err
	}
	if session.Submitting {
		err := newValidationError("transfer is already being submitted")
		return commons.ErrorResponseWithData("validation failed", models.NewSessionResponse(session), err.Error()), err
	}

	for step := domain.StepSender; step <= domain.LastStep; step++ {
		probe := session
		probe.ActiveStep = step
		if errs := probe.ValidateCurrentStep(); len(errs) > 0 {
			session.ActiveStep = step
			return s.rejectStep(ctx, session, errs)
		}
	}

	s.recalculate(&session.Form)
	sender, receiver := *session.Sender, *session.Receiver
	session.TransferErrors = nil

	unlockSender := s.senderLocks.lock(sender.ID)
	defer unlockSender()

	limitAmount, err := s.transferService.ToLimitsCurrency(ctx, session.Form.AmountValue(), session.Form.Currency)
	if err != nil {
		return s.failUnexpected(ctx, session, err)
	}
	limits, err := s.transferService.Limits(ctx, sender.ID)
	if err != nil {
		return s.failUnexpected(ctx, session, err)
	}

	if transferErrs := s.transferService.ValidateAmount(limits, limitAmount); len(transferErrs) > 0 {
		session.TransferErrors = transferErrs
		session.Errors["amount"] = transferErrs[0].Message
		if err := s.save(ctx, &session); err != nil {
			return sessionErrorResponse[models.SessionResponse](err), err
		}

		logger.Warn("send money service amount rejected", logger.Fields{
			"sessionId":   session.ID,
			"senderId":    sender.ID,
			"limitAmount": limitAmount.StringFixed(2),
			"errors":      len(transferErrs),
		})
		return commons.ErrorResponseWithData(MsgTransferRejected, models.NewSessionResponse(session), transferErrorMessages(transferErrs)...), transferErrs[0]
	}

	session.HighRisk = s.transferService.IsHighRisk(sender, receiver, limitAmount, session.Form.SourceOfFunds)
	if session.HighRisk && !session.TwoFactorVerified {
		session.Requires2FA = true
		session.TransferErrors = []domain.TransferError{{
			Code:      domain.ErrCodeTwoFactorRequired,
			Message:   twoFactorRequiredMessage,
			Retryable: false,
		}}
		if err := s.save(ctx, &session); err != nil {
			return sessionErrorResponse[models.SessionResponse](err), err
		}

		logger.Info("send money service 2FA required", logger.Fields{
			"sessionId": session.ID,
			"senderId":  sender.ID,
		})
		return commons.ErrorResponseWithData(MsgTwoFactorRequired, models.NewSessionResponse(session), twoFactorRequiredMessage), errTwoFactorRequired
	}

	session.Submitting = true
	session.RetryCount = 0
	if err := s.save(ctx, &session); err != nil {
		return sessionErrorResponse[models.SessionResponse](err), err
	}
	transfer := buildTransfer(session, limitAmount)

	executed, err := s.transferService.Execute(ctx, transfer, func(attempt int) {
		session.RetryCount = attempt
		_ = s.save(ctx, &session)
	})
	session.Submitting = false
	if err != nil {
		var transferErr domain.TransferError
		if errors.As(err, &transferErr) && transferErr.Code == domain.ErrCodeTransferFailed {
			session.TransferErrors = []domain.TransferError{transferErr}
			if saveErr := s.save(ctx, &session); saveErr != nil {
				return sessionErrorResponse[models.SessionResponse](saveErr), saveErr
			}

			logger.Error("send money service transfer failed", err, logger.Fields{
				"sessionId": session.ID,
				"reference": executed.Reference,
				"attempts":  session.RetryCount,
			})
			return commons.ErrorResponseWithData(MsgTransferFailed, models.NewSessionResponse(session), transferErr.Message), err
		}
		return s.failUnexpected(ctx, session, err)
	}

	session.Complete = true
	session.TransferReference = executed.Reference
	session.Requires2FA = false
	session.TransferErrors = nil
	session.Errors = map[string]string{}
	if err := s.save(ctx, &session); err != nil {
		return sessionErrorResponse[models.SessionResponse](err), err
	}

	logger.Info("send money service submit success", logger.Fields{
		"sessionId": session.ID,
		"reference": executed.Reference,
		"attempts":  executed.Attempts,
	})

	return commons.SuccessResponse("transfer completed successfully", models.NewSessionResponse(session)), nil
}

func buildTransfer(session domain.SendMoneySession, limitAmount decimal.Decimal) domain.Transfer {
	form := session.Form
	return domain.Transfer{
		TellerID:                   session.TellerID,
		SenderID:                   session.Sender.ID,
		SenderName:                 session.Sender.Name(),
		ReceiverID:                 session.Receiver.ID,
		ReceiverName:               session.Receiver.Name(),
		ReceiverCountry:            session.Receiver.Country,
		SourceCurrency:             form.Currency,
		DestinationCurrency:        form.DestinationCurrency,
		Amount:                     form.AmountValue(),
		ExchangeRate:               form.ExchangeRate,
		Fee:                        form.Fee,
		RecipientAmount:            form.RecipientAmount,
		TotalAmount:                form.TotalAmount,
		LimitAmount:                limitAmount,
		ExtraChargesPercent:        form.ExtraChargesPercent,
		TellerDiscountPercent:      form.TellerDiscountPercent,
		FeePayer:                   form.FeePayer,
		PromoCode:                  form.PromoCode,
		PaymentMethod:              form.PaymentMethod,
		SourceOfFunds:              form.SourceOfFunds,
		PurposeOfTransfer:          form.PurposeOfTransfer,
		TransferType:               form.TransferType,
		Operator:                   form.Operator,
		CustomerCardNumberDelivery: form.CustomerCardNumberDelivery,
		Notes:                      form.Notes,
		HighRisk:                   session.HighRisk,
	}
}

func (s *SendMoneyService) rejectStep(ctx context.Context, session domain.SendMoneySession, errs map[string]string) (commons.Response[models.SessionResponse], error) {
	session.Errors = errs
	if err := s.save(ctx, &session); err != nil {
		return sessionErrorResponse[models.SessionResponse](err), err
	}

	messages := make([]string, 0, len(errs))
	for _, msg := range errs {
		messages = append(messages, msg)
	}
	sort.Strings(messages)

	logger.Info("send money service step incomplete", logger.Fields{
		"sessionId": session.ID,
		"step":      session.ActiveStep,
		"errors":    errs,
	})

	return commons.ErrorResponseWithData(MsgStepIncomplete, models.NewSessionResponse(session), messages...), errStepIncomplete
}

func (s *SendMoneyService) failUnexpected(ctx context.Context, session domain.SendMoneySession, cause error) (commons.Response[models.SessionResponse], error) {
	logger.Error("send money service unexpected error", cause, logger.Fields{
		"sessionId": session.ID,
	})

	session.Submitting = false
	session.TransferErrors = []domain.TransferError{{
		Code:      domain.ErrCodeUnexpected,
		Message:   unexpectedErrorMessage,
		Retryable: true,
	}}
	if err := s.save(ctx, &session); err != nil {
		return sessionErrorResponse[models.SessionResponse](err), err
	}
	return commons.ErrorResponseWithData(MsgUnexpectedError, models.NewSessionResponse(session), unexpectedErrorMessage), cause
}

func (s *SendMoneyService) RequestTwoFactor(ctx context.Context, tellerID string, req models.SessionRequest) (commons.Response[models.TwoFactorChallengeResponse], error) {
	logger.Info("send money service request 2FA", logger.Fields{
		"tellerId":  tellerID,
		"sessionId": req.SessionID,
	})

	if err := req.Validate(); err != nil {
		logger.Error("send money service request 2FA validation failed", err, nil)
		return commons.ErrorResponse[models.TwoFactorChallengeResponse]("validation failed", err.Error()), err
	}

	unlock := s.sessionLocks.lock(strings.TrimSpace(req.SessionID))
	defer unlock()

	session, err := s.load(ctx, tellerID, req.SessionID)
	if err != nil {
		return sessionErrorResponse[models.TwoFactorChallengeResponse](err), err
	}
	if session.Sender == nil {
		err := newValidationError(noSenderMessage)
		return commons.ErrorResponse[models.TwoFactorChallengeResponse]("validation failed", err.Error()), err
	}

	code, err := s.newCode()
	if err != nil {
		logger.Error("send money service generate 2FA code failed", err, nil)
		return commons.ErrorResponse[models.TwoFactorChallengeResponse]("failed to request 2FA", "Unable to issue a verification code right now"), err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		wrappedErr := fmt.Errorf("hash 2FA code: %w", err)
		logger.Error("send money service hash 2FA code failed", wrappedErr, nil)
		return commons.ErrorResponse[models.TwoFactorChallengeResponse]("failed to request 2FA", "Unable to issue a verification code right now"), wrappedErr
	}

	expiresAt := s.now().Add(s.options.TwoFactorTTL)
	session.TwoFactor = &domain.TwoFactorChallenge{
		CodeHash:  string(hash),
		ExpiresAt: expiresAt,
	}
	session.Requires2FA = true
	session.TwoFactorVerified = false
	if err := s.save(ctx, &session); err != nil {
		return sessionErrorResponse[models.TwoFactorChallengeResponse](err), err
	}

	resp := models.TwoFactorChallengeResponse{
		SessionID: session.ID,
		ExpiresAt: expiresAt.UTC().Format(time.RFC3339),
	}
	if s.options.EchoTwoFactorCode {
		resp.Code = code
	}

	logger.Info("send money service request 2FA success", logger.Fields{
		"sessionId": session.ID,
		"senderId":  session.Sender.ID,
		"expiresAt": resp.ExpiresAt,
	})

	return commons.SuccessResponse("verification code sent", resp), nil
}

func (s *SendMoneyService) VerifyTwoFactor(ctx context.Context, tellerID string, req models.TwoFactorVerifyRequest) (commons.Response[models.SessionResponse], error) {
	logger.Info("send money service verify 2FA request", logger.Fields{
		"tellerId": tellerID,
		"payload":  logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("send money service verify 2FA validation failed", err, nil)
		return commons.ErrorResponse[models.SessionResponse]("validation failed", err.Error()), err
	}

	unlock := s.sessionLocks.lock(strings.TrimSpace(req.SessionID))
	defer unlock()

	session, err := s.load(ctx, tellerID, req.SessionID)
	if err != nil {
		return sessionErrorResponse[models.SessionResponse](err), err
	}

	challenge := session.TwoFactor
	switch {
	case challenge == nil:
		return s.failTwoFactor(ctx, session, "no verification code was requested")
	case s.now().After(challenge.ExpiresAt):
		session.TwoFactor = nil
		return s.failTwoFactor(ctx, session, "verification code expired")
	case challenge.Attempts >= s.options.TwoFactorMaxAttempts:
		session.TwoFactor = nil
		return s.failTwoFactor(ctx, session, "too many verification attempts")
	}

	challenge.Attempts++
	if err := bcrypt.CompareHashAndPassword([]byte(challenge.CodeHash), []byte(strings.TrimSpace(req.Code))); err != nil {
		if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return s.failUnexpected(ctx, session, fmt.Errorf("verify 2FA code: %w", err))
		}
		if challenge.Attempts >= s.options.TwoFactorMaxAttempts {
			session.TwoFactor = nil
		}
		return s.failTwoFactor(ctx, session, "verification code does not match")
	}

	session.TwoFactor = nil
	session.TwoFactorVerified = true
	session.Requires2FA = false
	session.TransferErrors = withoutTwoFactorErrors(session.TransferErrors)
	if err := s.save(ctx, &session); err != nil {
		return sessionErrorResponse[models.SessionResponse](err), err
	}

	logger.Info("send money service verify 2FA success", logger.Fields{
		"sessionId": session.ID,
	})

	return commons.SuccessResponse("2FA verified successfully", models.NewSessionResponse(session)), nil
}

func (s *SendMoneyService) failTwoFactor(ctx context.Context, session domain.SendMoneySession, reason string) (commons.Response[models.SessionResponse], error) {
	session.TwoFactorVerified = false
	session.TransferErrors = append(withoutTwoFactorErrors(session.TransferErrors), domain.TransferError{
		Code:      domain.ErrCodeTwoFactorFailed,
		Message:   twoFactorFailedMessage,
		Retryable: true,
	})
	if err := s.save(ctx, &session); err != nil {
		return sessionErrorResponse[models.SessionResponse](err), err
	}

	logger.Warn("send money service verify 2FA failed", logger.Fields{
		"sessionId": session.ID,
		"reason":    reason,
	})

	err := errors.New(reason)
	return commons.ErrorResponseWithData(MsgTwoFactorFailed, models.NewSessionResponse(session), twoFactorFailedMessage, reason), err
}

func withoutTwoFactorErrors(in []domain.TransferError) []domain.TransferError {
	out := make([]domain.TransferError, 0, len(in))
	for _, e := range in {
		if e.Code == domain.ErrCodeTwoFactorRequired || e.Code == domain.ErrCodeTwoFactorFailed {
			continue
		}
		out = append(out, e)
	}
	return out
}

// UseTransactionFromHistory prefills a new transfer from a past one: same
// receiver, amount and currency pair on an otherwise default form.
func (s *SendMoneyService) UseTransactionFromHistory(ctx context.Context, tellerID string, req models.ReuseTransactionRequest) (commons.Response[models.SessionResponse], error) {
	logger.Info("send money service reuse transaction request", logger.Fields{
		"tellerId": tellerID,
		"payload":  logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("send money service reuse transaction validation failed", err, nil)
		return commons.ErrorResponse[models.SessionResponse]("validation failed", err.Error()), err
	}

	unlock := s.sessionLocks.lock(strings.TrimSpace(req.SessionID))
	defer unlock()

	session, err := s.load(ctx, tellerID, req.SessionID)
	if err != nil {
		return sessionErrorResponse[models.SessionResponse](err), err
	}

	transfer, err := s.transferService.FindTransfer(ctx, req.Reference)
	if err != nil {
		logger.Error("send money service reuse transaction lookup failed", err, logger.Fields{
			"reference": req.Reference,
		})
		if errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrorResponse[models.SessionResponse]("Transfer not found"), err
		}
		return sessionErrorResponse[models.SessionResponse](err), err
	}

	receiver, err := s.clientService.FindClient(ctx, transfer.ReceiverID)
	if err != nil {
		logger.Error("send money service reuse transaction receiver lookup failed", err, logger.Fields{
			"receiverId": transfer.ReceiverID,
		})
		return sessionErrorResponse[models.SessionResponse](err), err
	}

	form := domain.NewSendMoneyForm(s.options.Defaults)
	form.Amount = decimal.NewNullDecimal(transfer.Amount)
	form.Currency = transfer.SourceCurrency
	form.DestinationCurrency = transfer.DestinationCurrency
	s.applyRate(ctx, &form)
	s.recalculate(&form)

	session.Receiver = &receiver
	session.Form = form
	session.Errors = map[string]string{}
	session.TransferErrors = nil
	session.HighRisk = false
	session.Complete = false
	session.TransferReference = ""
	session.RetryCount = 0
	s.resetVerification(&session)
	session.Direction = domain.NavigationForward
	session.ActiveStep = domain.StepSender
	if session.Sender != nil {
		session.ActiveStep = domain.StepAmount
	}

	if err := s.save(ctx, &session); err != nil {
		return sessionErrorResponse[models.SessionResponse](err), err
	}

	logger.Info("send money service reuse transaction success", logger.Fields{
		"sessionId": session.ID,
		"reference": transfer.Reference,
		"step":      session.ActiveStep,
	})

	return commons.SuccessResponse("transaction loaded from history", models.NewSessionResponse(session)), nil
}

func (s *SendMoneyService) Reset(ctx context.Context, tellerID string, req models.SessionRequest) (commons.Response[models.SessionResponse], error) {
	logger.Info("send money service reset request", logger.Fields{
		"tellerId":  tellerID,
		"sessionId": req.SessionID,
	})

	if err := req.Validate(); err != nil {
		logger.Error("send money service reset validation failed", err, nil)
		return commons.ErrorResponse[models.SessionResponse]("validation failed", err.Error()), err
	}

	unlock := s.sessionLocks.lock(strings.TrimSpace(req.SessionID))
	defer unlock()

	session, err := s.load(ctx, tellerID, req.SessionID)
	if err != nil {
		return sessionErrorResponse[models.SessionResponse](err), err
	}

	session.Reset(s.options.Defaults, s.now())
	s.applyRate(ctx, &session.Form)
	s.recalculate(&session.Form)

	if err := s.save(ctx, &session); err != nil {
		return sessionErrorResponse[models.SessionResponse](err), err
	}

	return commons.SuccessResponse("session reset successfully", models.NewSessionResponse(session)), nil
}

// load returns the session only to the teller that started it; anyone else
// gets ErrSessionNotFound.
func (s *SendMoneyService) load(ctx context.Context, tellerID string, sessionID string) (domain.SendMoneySession, error) {
	session, err := s.sessions.Get(ctx, strings.TrimSpace(sessionID))
	if err != nil {
		return domain.SendMoneySession{}, err
	}
	if session.TellerID != tellerID {
		logger.Warn("send money service session owner mismatch", logger.Fields{
			"sessionId": sessionID,
			"tellerId":  tellerID,
		})
		return domain.SendMoneySession{}, commons.ErrSessionNotFound
	}
	if session.Errors == nil {
		session.Errors = map[string]string{}
	}
	return session, nil
}

func (s *SendMoneyService) save(ctx context.Context, session *domain.SendMoneySession) error {
	session.UpdatedAt = s.now()
	if err := s.sessions.Save(ctx, *session); err != nil {
		logger.Error("send money service save session failed", err, logger.Fields{
			"sessionId": session.ID,
		})
		return err
	}
	return nil
}

// applyRate refreshes the exchange rate for the form's currency pair. A
// missing rate leaves the form at zero and is only logged.
func (s *SendMoneyService) applyRate(ctx context.Context, form *domain.SendMoneyForm) {
	rate, err := s.rateService.ResolveRate(ctx, form.Currency, form.DestinationCurrency)
	if err != nil {
		logger.Warn("send money service rate unavailable", logger.Fields{
			"from":  form.Currency,
			"to":    form.DestinationCurrency,
			"error": err.Error(),
		})
		form.ExchangeRate = decimal.Zero
		return
	}
	form.ExchangeRate = rate.Rate
}

func (s *SendMoneyService) recalculate(form *domain.SendMoneyForm) {
	quote := s.chargesService.Quote(domain.QuoteInput{
		SourceCurrency:        form.Currency,
		DestinationCurrency:   form.DestinationCurrency,
		Amount:                form.AmountValue(),
		ExchangeRate:          form.ExchangeRate,
		ExtraChargesPercent:   form.ExtraChargesPercent,
		TellerDiscountPercent: form.TellerDiscountPercent,
		FeePayer:              form.FeePayer,
		PromoCode:             form.PromoCode,
	})
	form.Fee = quote.Fee
	form.RecipientAmount = quote.RecipientAmount
	form.TotalAmount = quote.TotalAmount

	form.ChangeToReturn = decimal.Zero
	if form.PaymentMethod == domain.PaymentMethodCash && form.AmountTendered.Valid {
		form.ChangeToReturn = decimal.Max(decimal.Zero, form.AmountTendered.Decimal.Sub(form.TotalAmount)).Round(2)
	}
}

// resetVerification drops a completed 2FA once the parties or the amount it
// covered change.
func (s *SendMoneyService) resetVerification(session *domain.SendMoneySession) {
	session.TwoFactorVerified = false
	session.TwoFactor = nil
	session.Requires2FA = false
}

func sessionErrorResponse[T any](err error) commons.Response[T] {
	switch {
	case errors.Is(err, commons.ErrSessionNotFound):
		return commons.ErrorResponse[T](MsgSessionNotFound)
	case errors.Is(err, commons.ErrRecordNotFound):
		return commons.ErrorResponse[T]("Client not found")
	case isValidationError(err):
		return commons.ErrorResponse[T]("validation failed", err.Error())
	default:
		return commons.ErrorResponse[T]("failed to update session", "Unable to update session right now")
	}
}

func transferErrorMessages(errs []domain.TransferError) []string {
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Message)
	}
	return out
}

func generateTwoFactorCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", fmt.Errorf("generate 2FA code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
