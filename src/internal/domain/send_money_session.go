package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type WizardStep int

const (
	StepSender WizardStep = iota + 1
	StepReceiver
	StepDetails
	StepAmount
	StepConfirm
)

type StepInfo struct {
	Step        WizardStep
	Title       string
	Description string
}

var WizardSteps = []StepInfo{
	{Step: StepSender, Title: "Sender", Description: "Select who is sending the money"},
	{Step: StepReceiver, Title: "Receiver", Description: "Select who will receive the money"},
	{Step: StepDetails, Title: "Details", Description: "Specify transfer details"},
	{Step: StepAmount, Title: "Amount", Description: "Enter amount and review fees"},
	{Step: StepConfirm, Title: "Confirm", Description: "Review and confirm transfer"},
}

const LastStep = StepConfirm

type NavigationDirection string

const (
	NavigationForward  NavigationDirection = "forward"
	NavigationBackward NavigationDirection = "backward"
)

type FormDefaults struct {
	SourceCurrency      string
	DestinationCurrency string
	FeePayer            FeePayer
	PaymentMethod       PaymentMethod
}

func DefaultFormDefaults() FormDefaults {
	return FormDefaults{
		SourceCurrency:      "USD",
		DestinationCurrency: "EUR",
		FeePayer:            FeePayerSender,
		PaymentMethod:       PaymentMethodCash,
	}
}

// SendMoneyForm is the in-progress transfer request. Fee, RecipientAmount,
// TotalAmount and ChangeToReturn are derived and overwritten on every change.
type SendMoneyForm struct {
	Currency                   string
	DestinationCurrency        string
	Amount                     decimal.NullDecimal
	ExchangeRate               decimal.Decimal
	ExtraChargesPercent        decimal.Decimal
	TellerDiscountPercent      decimal.Decimal
	FeePayer                   FeePayer
	PromoCode                  string
	PaymentMethod              PaymentMethod
	AmountTendered             decimal.NullDecimal
	SourceOfFunds              string
	PurposeOfTransfer          string
	TransferType               string
	Operator                   string
	CustomerCardNumberDelivery string
	Notes                      string
	AgreeToTerms               bool

	Fee             decimal.Decimal
	RecipientAmount decimal.Decimal
	TotalAmount     decimal.Decimal
	ChangeToReturn  decimal.Decimal
}

func NewSendMoneyForm(defaults FormDefaults) SendMoneyForm {
	return SendMoneyForm{
		Currency:            defaults.SourceCurrency,
		DestinationCurrency: defaults.DestinationCurrency,
		FeePayer:            defaults.FeePayer,
		PaymentMethod:       defaults.PaymentMethod,
	}
}

func (f SendMoneyForm) AmountValue() decimal.Decimal {
	if !f.Amount.Valid {
		return decimal.Zero
	}
	return f.Amount.Decimal
}

type TwoFactorChallenge struct {
	CodeHash  string
	ExpiresAt time.Time
	Attempts  int
}

type SendMoneySession struct {
	ID                string
	TellerID          string
	ActiveStep        WizardStep
	Direction         NavigationDirection
	Sender            *Client
	Receiver          *Client
	Form              SendMoneyForm
	Errors            map[string]string
	TransferErrors    []TransferError
	HighRisk          bool
	Requires2FA       bool
	TwoFactorVerified bool
	TwoFactor         *TwoFactorChallenge
	RetryCount        int
	Submitting        bool
	Complete          bool
	TransferReference string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func NewSendMoneySession(id, tellerID string, defaults FormDefaults, now time.Time) SendMoneySession {
	return SendMoneySession{
		ID:         id,
		TellerID:   tellerID,
		ActiveStep: StepSender,
		Direction:  NavigationForward,
		Form:       NewSendMoneyForm(defaults),
		Errors:     map[string]string{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Reset returns the session to its first step with a fresh form, keeping its
// identity and owner.
func (s *SendMoneySession) Reset(defaults FormDefaults, now time.Time) {
	*s = SendMoneySession{
		ID:         s.ID,
		TellerID:   s.TellerID,
		ActiveStep: StepSender,
		Direction:  NavigationForward,
		Form:       NewSendMoneyForm(defaults),
		Errors:     map[string]string{},
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  now,
	}
}

func (s SendMoneySession) CanProceed() bool {
	switch s.ActiveStep {
	case StepSender:
		return s.Sender != nil
	case StepReceiver:
		return s.Receiver != nil
	case StepDetails:
		return s.Form.SourceOfFunds != "" && s.Form.PurposeOfTransfer != ""
	case StepAmount:
		return s.Form.Amount.Valid && s.Form.Amount.Decimal.GreaterThan(decimal.Zero)
	case StepConfirm:
		return s.Form.AgreeToTerms
	default:
		return false
	}
}

// ValidateCurrentStep returns the field errors that block the active step.
// An empty map means the step is complete.
func (s SendMoneySession) ValidateCurrentStep() map[string]string {
	errs := map[string]string{}

	switch s.ActiveStep {
	case StepSender:
		if s.Sender == nil {
			errs["sender"] = "Please select a sender"
		}
	case StepReceiver:
		if s.Receiver == nil {
			errs["receiver"] = "Please select a receiver"
		}
	case StepDetails:
		if s.Form.SourceOfFunds == "" {
			errs["sourceOfFunds"] = "Please select a source of funds"
		}
		if s.Form.PurposeOfTransfer == "" {
			errs["purposeOfTransfer"] = "Please select a purpose of transfer"
		}
	case StepAmount:
		if !s.Form.Amount.Valid {
			errs["amount"] = "Please enter an amount"
		} else if s.Form.Amount.Decimal.LessThanOrEqual(decimal.Zero) {
			errs["amount"] = "Amount must be greater than zero"
		}
		if s.Form.PaymentMethod == PaymentMethodCash && s.Form.AmountTendered.Valid &&
			s.Form.AmountTendered.Decimal.LessThan(s.Form.TotalAmount) {
			errs["amountTendered"] = "Cash tendered is less than the total amount"
		}
	case StepConfirm:
		if !s.Form.AgreeToTerms {
			errs["terms"] = "You must agree to the terms and conditions"
		}
	}

	return errs
}

func (s SendMoneySession) StepInfo() StepInfo {
	for _, info := range WizardSteps {
		if info.Step == s.ActiveStep {
			return info
		}
	}
	return StepInfo{}
}

// Clone returns a copy that shares no maps, slices or pointers with s.
func (s SendMoneySession) Clone() SendMoneySession {
	out := s
	out.Errors = make(map[string]string, len(s.Errors))
	for k, v := range s.Errors {
		out.Errors[k] = v
	}
	if s.TransferErrors != nil {
		out.TransferErrors = append([]TransferError(nil), s.TransferErrors...)
	}
	if s.Sender != nil {
		sender := *s.Sender
		out.Sender = &sender
	}
	if s.Receiver != nil {
		receiver := *s.Receiver
		out.Receiver = &receiver
	}
	if s.TwoFactor != nil {
		challenge := *s.TwoFactor
		out.TwoFactor = &challenge
	}
	return out
}
