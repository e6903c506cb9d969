package models

import (
	"strings"

	"github.com/global-remit/teller-desk/src/internal/domain"
)

type QuoteRequest struct {
	SourceCurrency        string `json:"sourceCurrency"`
	DestinationCurrency   string `json:"destinationCurrency"`
	Amount                string `json:"amount"`
	ExchangeRate          string `json:"exchangeRate,omitempty"`
	ExtraChargesPercent   string `json:"extraChargesPercent,omitempty"`
	TellerDiscountPercent string `json:"tellerDiscountPercent,omitempty"`
	FeePayer              string `json:"feePayer,omitempty"`
	PromoCode             string `json:"promoCode,omitempty"`
}

func (r QuoteRequest) Validate() error {
	var errs validationErrors

	errs.checkCurrency("sourceCurrency", r.SourceCurrency, true)
	errs.checkCurrency("destinationCurrency", r.DestinationCurrency, true)
	errs.checkAmount("amount", r.Amount)
	if strings.TrimSpace(r.ExchangeRate) != "" {
		errs.checkAmount("exchangeRate", r.ExchangeRate)
	}
	errs.checkOptionalDecimal("extraChargesPercent", r.ExtraChargesPercent, false)
	errs.checkOptionalDecimal("tellerDiscountPercent", r.TellerDiscountPercent, false)

	if payer := strings.TrimSpace(r.FeePayer); payer != "" && !domain.FeePayer(payer).Valid() {
		errs.add("feePayer must be one of sender, beneficiary, both")
	}

	return errs.err()
}

type QuoteResponse struct {
	SourceCurrency      string `json:"sourceCurrency"`
	DestinationCurrency string `json:"destinationCurrency"`
	Amount              string `json:"amount"`
	ExchangeRate        string `json:"exchangeRate"`
	Fee                 string `json:"fee"`
	RecipientAmount     string `json:"recipientAmount"`
	TotalAmount         string `json:"totalAmount"`
	FeePayer            string `json:"feePayer"`
	PromoApplied        bool   `json:"promoApplied"`
}
