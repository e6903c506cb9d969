package models

import (
	"github.com/global-remit/teller-desk/src/internal/domain"
)

type TransferResponse struct {
	Reference                  string `json:"reference"`
	TellerID                   string `json:"tellerId"`
	SenderID                   string `json:"senderId"`
	SenderName                 string `json:"senderName"`
	ReceiverID                 string `json:"receiverId"`
	ReceiverName               string `json:"receiverName"`
	ReceiverCountry            string `json:"receiverCountry"`
	SourceCurrency             string `json:"sourceCurrency"`
	DestinationCurrency        string `json:"destinationCurrency"`
	Amount                     string `json:"amount"`
	ExchangeRate               string `json:"exchangeRate"`
	Fee                        string `json:"fee"`
	RecipientAmount            string `json:"recipientAmount"`
	TotalAmount                string `json:"totalAmount"`
	FeePayer                   string `json:"feePayer"`
	PromoCode                  string `json:"promoCode,omitempty"`
	PaymentMethod              string `json:"paymentMethod"`
	SourceOfFunds              string `json:"sourceOfFunds"`
	PurposeOfTransfer          string `json:"purposeOfTransfer"`
	TransferType               string `json:"transferType,omitempty"`
	Operator                   string `json:"operator,omitempty"`
	CustomerCardNumberDelivery string `json:"customerCardNumberDelivery,omitempty"`
	Notes                      string `json:"notes,omitempty"`
	HighRisk                   bool   `json:"highRisk"`
	Attempts                   int    `json:"attempts"`
	Status                     string `json:"status"`
	FailureReason              string `json:"failureReason,omitempty"`
	CreatedAt                  string `json:"createdAt"`
	CompletedAt                string `json:"completedAt,omitempty"`
}

func NewTransferResponse(t domain.Transfer) TransferResponse {
	resp := TransferResponse{
		Reference:                  t.Reference,
		TellerID:                   t.TellerID,
		SenderID:                   t.SenderID,
		SenderName:                 t.SenderName,
		ReceiverID:                 t.ReceiverID,
		ReceiverName:               t.ReceiverName,
		ReceiverCountry:            t.ReceiverCountry,
		SourceCurrency:             t.SourceCurrency,
		DestinationCurrency:        t.DestinationCurrency,
		Amount:                     t.Amount.StringFixed(2),
		ExchangeRate:               t.ExchangeRate.String(),
		Fee:                        t.Fee.StringFixed(2),
		RecipientAmount:            t.RecipientAmount.StringFixed(2),
		TotalAmount:                t.TotalAmount.StringFixed(2),
		FeePayer:                   string(t.FeePayer),
		PromoCode:                  t.PromoCode,
		PaymentMethod:              string(t.PaymentMethod),
		SourceOfFunds:              t.SourceOfFunds,
		PurposeOfTransfer:          t.PurposeOfTransfer,
		TransferType:               t.TransferType,
		Operator:                   t.Operator,
		CustomerCardNumberDelivery: t.CustomerCardNumberDelivery,
		Notes:                      t.Notes,
		HighRisk:                   t.HighRisk,
		Attempts:                   t.Attempts,
		Status:                     string(t.Status),
		FailureReason:              t.FailureReason,
		CreatedAt:                  formatTime(t.CreatedAt),
	}
	if t.CompletedAt != nil {
		resp.CompletedAt = formatTime(*t.CompletedAt)
	}
	return resp
}

func NewTransferResponses(transfers []domain.Transfer) []TransferResponse {
	out := make([]TransferResponse, 0, len(transfers))
	for _, t := range transfers {
		out = append(out, NewTransferResponse(t))
	}
	return out
}

type LimitsResponse struct {
	Currency         string `json:"currency"`
	Daily            string `json:"daily"`
	Monthly          string `json:"monthly"`
	PerTransaction   string `json:"perTransaction"`
	RemainingDaily   string `json:"remainingDaily"`
	RemainingMonthly string `json:"remainingMonthly"`
}

func NewLimitsResponse(l domain.TransferLimits) LimitsResponse {
	return LimitsResponse{
		Currency:         l.Currency,
		Daily:            l.Daily.StringFixed(2),
		Monthly:          l.Monthly.StringFixed(2),
		PerTransaction:   l.PerTransaction.StringFixed(2),
		RemainingDaily:   l.RemainingDaily.StringFixed(2),
		RemainingMonthly: l.RemainingMonthly.StringFixed(2),
	}
}

type ReceiptResponse struct {
	Reference   string `json:"reference"`
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
	Content     []byte `json:"-"`
}
