package models

import (
	"strings"

	"github.com/global-remit/teller-desk/src/internal/domain"
)

type RegisterResponse struct {
	Currency       string `json:"currency"`
	OpeningBalance string `json:"openingBalance"`
	CurrentBalance string `json:"currentBalance"`
	NetPayments    string `json:"netPayments"`
	OpenedAt       string `json:"openedAt"`
}

func NewRegisterResponse(r domain.CashRegister) RegisterResponse {
	return RegisterResponse{
		Currency:       r.Currency,
		OpeningBalance: r.OpeningBalance.StringFixed(2),
		CurrentBalance: r.CurrentBalance.StringFixed(2),
		NetPayments:    r.NetPayments().StringFixed(2),
		OpenedAt:       formatTime(r.OpenedAt),
	}
}

type TillResponse struct {
	TellerID  string             `json:"tellerId"`
	Registers []RegisterResponse `json:"registers"`
}

type OpenRegisterRequest struct {
	Currency       string `json:"currency"`
	OpeningBalance string `json:"openingBalance"`
}

func (r OpenRegisterRequest) Validate() error {
	var errs validationErrors
	errs.checkCurrency("currency", r.Currency, true)
	if strings.TrimSpace(r.OpeningBalance) == "" {
		errs.add("openingBalance is required")
	} else {
		errs.checkOptionalDecimal("openingBalance", r.OpeningBalance, false)
	}
	return errs.err()
}

type CashMovementRequest struct {
	Currency    string `json:"currency"`
	Type        string `json:"type"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
}

func (r CashMovementRequest) Validate() error {
	var errs validationErrors
	errs.checkCurrency("currency", r.Currency, true)
	if !domain.CashMovementType(strings.ToLower(strings.TrimSpace(r.Type))).Valid() {
		errs.add("type must be one of add, remove")
	}
	errs.checkAmount("amount", r.Amount)
	if strings.TrimSpace(r.Description) == "" {
		errs.add("description is required")
	}
	return errs.err()
}

type CashMovementResponse struct {
	ID          string `json:"id"`
	Currency    string `json:"currency"`
	Type        string `json:"type"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
	Reference   string `json:"reference,omitempty"`
	CreatedAt   string `json:"createdAt"`
}

func NewCashMovementResponse(m domain.CashMovement) CashMovementResponse {
	return CashMovementResponse{
		ID:          m.ID,
		Currency:    m.Currency,
		Type:        string(m.Type),
		Amount:      m.Amount.StringFixed(2),
		Description: m.Description,
		Reference:   m.Reference,
		CreatedAt:   formatTime(m.CreatedAt),
	}
}

type RecordMovementResponse struct {
	Register RegisterResponse     `json:"register"`
	Movement CashMovementResponse `json:"movement"`
}

// ClearPreviewRequest maps currency to the amount to leave in that drawer.
// Registers not listed preview with zero left.
type ClearPreviewRequest struct {
	AmountsToLeave map[string]string `json:"amountsToLeave"`
}

func (r ClearPreviewRequest) Validate() error {
	var errs validationErrors
	for ccy, amount := range r.AmountsToLeave {
		errs.checkCurrency("amountsToLeave key", ccy, true)
		if _, err := parseBounded(amount); err != nil {
			errs.add("amountsToLeave." + ccy + " " + err.Error())
		}
	}
	return errs.err()
}

type ClearPreviewResponse struct {
	Currency       string `json:"currency"`
	CurrentBalance string `json:"currentBalance"`
	AmountToLeave  string `json:"amountToLeave"`
	TotalToGive    string `json:"totalToGive"`
	ClearDisabled  bool   `json:"clearDisabled"`
}

func NewClearPreviewResponse(p domain.ClearPreview) ClearPreviewResponse {
	return ClearPreviewResponse{
		Currency:       p.Currency,
		CurrentBalance: p.CurrentBalance.StringFixed(2),
		AmountToLeave:  p.AmountToLeave.StringFixed(2),
		TotalToGive:    p.TotalToGive.StringFixed(2),
		ClearDisabled:  p.ClearDisabled,
	}
}

type ClearRegisterRequest struct {
	Currency      string `json:"currency"`
	AmountToLeave string `json:"amountToLeave"`
}

func (r ClearRegisterRequest) Validate() error {
	var errs validationErrors
	errs.checkCurrency("currency", r.Currency, true)
	if strings.TrimSpace(r.AmountToLeave) == "" {
		errs.add("amountToLeave is required")
	} else {
		errs.checkOptionalDecimal("amountToLeave", r.AmountToLeave, false)
	}
	return errs.err()
}

type ClearRegisterResponse struct {
	Register    RegisterResponse `json:"register"`
	AmountLeft  string           `json:"amountLeft"`
	TotalToGive string           `json:"totalToGive"`
	ClearedAt   string           `json:"clearedAt"`
}
