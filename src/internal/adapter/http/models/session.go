package models

import (
	"strings"
	"time"

	"github.com/global-remit/teller-desk/src/internal/domain"
)

type SessionRequest struct {
	SessionID string `json:"sessionId"`
}

func (r SessionRequest) Validate() error {
	var errs validationErrors
	if strings.TrimSpace(r.SessionID) == "" {
		errs.add("sessionId is required")
	}
	return errs.err()
}

// SelectPartyRequest picks an existing client by id, saves and picks a new one
// from Client, or (receiver only) copies the selected sender.
type SelectPartyRequest struct {
	SessionID    string         `json:"sessionId"`
	ClientID     string         `json:"clientId,omitempty"`
	Client       *ClientRequest `json:"client,omitempty"`
	SameAsSender bool           `json:"sameAsSender,omitempty"`
}

func (r SelectPartyRequest) Validate() error {
	var errs validationErrors
	if strings.TrimSpace(r.SessionID) == "" {
		errs.add("sessionId is required")
	}

	chosen := 0
	if strings.TrimSpace(r.ClientID) != "" {
		chosen++
	}
	if r.Client != nil {
		chosen++
	}
	if r.SameAsSender {
		chosen++
	}
	if chosen != 1 {
		errs.add("exactly one of clientId, client, sameAsSender is required")
	}

	return errs.err()
}

// UpdateFormRequest carries a partial form. Nil fields are left unchanged.
type UpdateFormRequest struct {
	SessionID                  string  `json:"sessionId"`
	Currency                   *string `json:"currency,omitempty"`
	DestinationCurrency        *string `json:"destinationCurrency,omitempty"`
	Amount                     *string `json:"amount,omitempty"`
	ExchangeRate               *string `json:"exchangeRate,omitempty"`
	ExtraChargesPercent        *string `json:"extraChargesPercent,omitempty"`
	TellerDiscountPercent      *string `json:"tellerDiscountPercent,omitempty"`
	FeePayer                   *string `json:"feePayer,omitempty"`
	PromoCode                  *string `json:"promoCode,omitempty"`
	PaymentMethod              *string `json:"paymentMethod,omitempty"`
	AmountTendered             *string `json:"amountTendered,omitempty"`
	SourceOfFunds              *string `json:"sourceOfFunds,omitempty"`
	PurposeOfTransfer          *string `json:"purposeOfTransfer,omitempty"`
	TransferType               *string `json:"transferType,omitempty"`
	Operator                   *string `json:"operator,omitempty"`
	CustomerCardNumberDelivery *string `json:"customerCardNumberDelivery,omitempty"`
	Notes                      *string `json:"notes,omitempty"`
	AgreeToTerms               *bool   `json:"agreeToTerms,omitempty"`
}

// Validate checks value formats only. An empty amount clears the field and is
// allowed here; step validation reports it.
func (r UpdateFormRequest) Validate() error {
	var errs validationErrors

	if strings.TrimSpace(r.SessionID) == "" {
		errs.add("sessionId is required")
	}
	if r.Currency != nil {
		errs.checkCurrency("currency", *r.Currency, true)
	}
	if r.DestinationCurrency != nil {
		errs.checkCurrency("destinationCurrency", *r.DestinationCurrency, true)
	}
	if r.Amount != nil {
		errs.checkOptionalDecimal("amount", *r.Amount, true)
	}
	if r.ExchangeRate != nil && strings.TrimSpace(*r.ExchangeRate) != "" {
		errs.checkAmount("exchangeRate", *r.ExchangeRate)
	}
	if r.ExtraChargesPercent != nil {
		errs.checkOptionalDecimal("extraChargesPercent", *r.ExtraChargesPercent, false)
	}
	if r.TellerDiscountPercent != nil {
		errs.checkOptionalDecimal("tellerDiscountPercent", *r.TellerDiscountPercent, false)
	}
	if r.AmountTendered != nil {
		errs.checkOptionalDecimal("amountTendered", *r.AmountTendered, false)
	}
	if r.FeePayer != nil && !domain.FeePayer(strings.TrimSpace(*r.FeePayer)).Valid() {
		errs.add("feePayer must be one of sender, beneficiary, both")
	}
	if r.PaymentMethod != nil && !domain.PaymentMethod(strings.TrimSpace(*r.PaymentMethod)).Valid() {
		errs.add("paymentMethod is not supported")
	}

	return errs.err()
}

type NavigateRequest struct {
	SessionID string `json:"sessionId"`
	Direction string `json:"direction"`
}

const (
	DirectionNext = "next"
	DirectionBack = "back"
)

func (r NavigateRequest) Validate() error {
	var errs validationErrors
	if strings.TrimSpace(r.SessionID) == "" {
		errs.add("sessionId is required")
	}
	switch strings.ToLower(strings.TrimSpace(r.Direction)) {
	case DirectionNext, DirectionBack:
	default:
		errs.add("direction must be one of next, back")
	}
	return errs.err()
}

type TwoFactorVerifyRequest struct {
	SessionID string `json:"sessionId"`
	Code      string `json:"code"`
}

func (r TwoFactorVerifyRequest) Validate() error {
	var errs validationErrors
	if strings.TrimSpace(r.SessionID) == "" {
		errs.add("sessionId is required")
	}
	code := strings.TrimSpace(r.Code)
	if len(code) != 6 || !digitsOnly(code) {
		errs.add("code must be exactly 6 digits")
	}
	return errs.err()
}

type TwoFactorChallengeResponse struct {
	SessionID string `json:"sessionId"`
	ExpiresAt string `json:"expiresAt"`
	Code      string `json:"code,omitempty"`
}

type ReuseTransactionRequest struct {
	SessionID string `json:"sessionId"`
	Reference string `json:"reference"`
}

func (r ReuseTransactionRequest) Validate() error {
	var errs validationErrors
	if strings.TrimSpace(r.SessionID) == "" {
		errs.add("sessionId is required")
	}
	if strings.TrimSpace(r.Reference) == "" {
		errs.add("reference is required")
	}
	return errs.err()
}

type StepResponse struct {
	Step        int    `json:"step"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type FormResponse struct {
	Currency                   string `json:"currency"`
	DestinationCurrency        string `json:"destinationCurrency"`
	Amount                     string `json:"amount"`
	ExchangeRate               string `json:"exchangeRate"`
	ExtraChargesPercent        string `json:"extraChargesPercent"`
	TellerDiscountPercent      string `json:"tellerDiscountPercent"`
	FeePayer                   string `json:"feePayer"`
	PromoCode                  string `json:"promoCode,omitempty"`
	PaymentMethod              string `json:"paymentMethod"`
	AmountTendered             string `json:"amountTendered,omitempty"`
	SourceOfFunds              string `json:"sourceOfFunds"`
	PurposeOfTransfer          string `json:"purposeOfTransfer"`
	TransferType               string `json:"transferType,omitempty"`
	Operator                   string `json:"operator,omitempty"`
	CustomerCardNumberDelivery string `json:"customerCardNumberDelivery,omitempty"`
	Notes                      string `json:"notes,omitempty"`
	AgreeToTerms               bool   `json:"agreeToTerms"`
	Fee                        string `json:"fee"`
	RecipientAmount            string `json:"recipientAmount"`
	TotalAmount                string `json:"totalAmount"`
	ChangeToReturn             string `json:"changeToReturn"`
}

type SessionResponse struct {
	SessionID         string                 `json:"sessionId"`
	TellerID          string                 `json:"tellerId"`
	ActiveStep        int                    `json:"activeStep"`
	Step              StepResponse           `json:"step"`
	Steps             []StepResponse         `json:"steps"`
	Direction         string                 `json:"direction"`
	CanProceed        bool                   `json:"canProceed"`
	Sender            *ClientResponse        `json:"sender,omitempty"`
	Receiver          *ClientResponse        `json:"receiver,omitempty"`
	Form              FormResponse           `json:"form"`
	Errors            map[string]string      `json:"errors"`
	TransferErrors    []domain.TransferError `json:"transferErrors"`
	HighRisk          bool                   `json:"highRisk"`
	Requires2FA       bool                   `json:"requires2FA"`
	TwoFactorVerified bool                   `json:"twoFactorVerified"`
	RetryCount        int                    `json:"retryCount"`
	Submitting        bool                   `json:"submitting"`
	Complete          bool                   `json:"complete"`
	TransferReference string                 `json:"transferReference,omitempty"`
	RecentReceivers   []ClientResponse       `json:"recentReceivers,omitempty"`
	UpdatedAt         string                 `json:"updatedAt"`
}

func NewSessionResponse(s domain.SendMoneySession) SessionResponse {
	steps := make([]StepResponse, 0, len(domain.WizardSteps))
	for _, info := range domain.WizardSteps {
		steps = append(steps, newStepResponse(info))
	}

	errs := make(map[string]string, len(s.Errors))
	for k, v := range s.Errors {
		errs[k] = v
	}
	transferErrors := append([]domain.TransferError{}, s.TransferErrors...)

	resp := SessionResponse{
		SessionID:         s.ID,
		TellerID:          s.TellerID,
		ActiveStep:        int(s.ActiveStep),
		Step:              newStepResponse(s.StepInfo()),
		Steps:             steps,
		Direction:         string(s.Direction),
		CanProceed:        s.CanProceed(),
		Form:              newFormResponse(s.Form),
		Errors:            errs,
		TransferErrors:    transferErrors,
		HighRisk:          s.HighRisk,
		Requires2FA:       s.Requires2FA,
		TwoFactorVerified: s.TwoFactorVerified,
		RetryCount:        s.RetryCount,
		Submitting:        s.Submitting,
		Complete:          s.Complete,
		TransferReference: s.TransferReference,
		UpdatedAt:         s.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if s.Sender != nil {
		sender := NewClientResponse(*s.Sender)
		resp.Sender = &sender
	}
	if s.Receiver != nil {
		receiver := NewClientResponse(*s.Receiver)
		resp.Receiver = &receiver
	}
	return resp
}

func newStepResponse(info domain.StepInfo) StepResponse {
	return StepResponse{Step: int(info.Step), Title: info.Title, Description: info.Description}
}

func newFormResponse(f domain.SendMoneyForm) FormResponse {
	resp := FormResponse{
		Currency:                   f.Currency,
		DestinationCurrency:        f.DestinationCurrency,
		ExchangeRate:               f.ExchangeRate.String(),
		ExtraChargesPercent:        f.ExtraChargesPercent.String(),
		TellerDiscountPercent:      f.TellerDiscountPercent.String(),
		FeePayer:                   string(f.FeePayer),
		PromoCode:                  f.PromoCode,
		PaymentMethod:              string(f.PaymentMethod),
		SourceOfFunds:              f.SourceOfFunds,
		PurposeOfTransfer:          f.PurposeOfTransfer,
		TransferType:               f.TransferType,
		Operator:                   f.Operator,
		CustomerCardNumberDelivery: f.CustomerCardNumberDelivery,
		Notes:                      f.Notes,
		AgreeToTerms:               f.AgreeToTerms,
		Fee:                        f.Fee.StringFixed(2),
		RecipientAmount:            f.RecipientAmount.StringFixed(2),
		TotalAmount:                f.TotalAmount.StringFixed(2),
		ChangeToReturn:             f.ChangeToReturn.StringFixed(2),
	}
	if f.Amount.Valid {
		resp.Amount = f.Amount.Decimal.String()
	}
	if f.AmountTendered.Valid {
		resp.AmountTendered = f.AmountTendered.Decimal.StringFixed(2)
	}
	return resp
}

func digitsOnly(value string) bool {
	for _, ch := range value {
		if ch < '0' || ch > '9' {
			return false
		}
	}
	return true
}
