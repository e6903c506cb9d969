package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransferStatus string

const (
	TransferStatusPending   TransferStatus = "PENDING"
	TransferStatusCompleted TransferStatus = "COMPLETED"
	TransferStatusFailed    TransferStatus = "FAILED"
)

type PaymentMethod string

const (
	PaymentMethodCash           PaymentMethod = "cash"
	PaymentMethodUPay           PaymentMethod = "upay"
	PaymentMethodClientAccount  PaymentMethod = "clientAccount"
	PaymentMethodCashPayLater   PaymentMethod = "cashPayLater"
	PaymentMethodBankPayLater   PaymentMethod = "bankPayLater"
	PaymentMethodCashHomePickup PaymentMethod = "cashHomePickup"
)

var PaymentMethods = []PaymentMethod{
	PaymentMethodCash,
	PaymentMethodUPay,
	PaymentMethodClientAccount,
	PaymentMethodCashPayLater,
	PaymentMethodBankPayLater,
	PaymentMethodCashHomePickup,
}

func (m PaymentMethod) Valid() bool {
	for _, known := range PaymentMethods {
		if m == known {
			return true
		}
	}
	return false
}

type Transfer struct {
	ID                         string
	Reference                  string
	TellerID                   string
	SenderID                   string
	SenderName                 string
	ReceiverID                 string
	ReceiverName               string
	ReceiverCountry            string
	SourceCurrency             string
	DestinationCurrency        string
	Amount                     decimal.Decimal
	ExchangeRate               decimal.Decimal
	Fee                        decimal.Decimal
	RecipientAmount            decimal.Decimal
	TotalAmount                decimal.Decimal
	LimitAmount                decimal.Decimal
	ExtraChargesPercent        decimal.Decimal
	TellerDiscountPercent      decimal.Decimal
	FeePayer                   FeePayer
	PromoCode                  string
	PaymentMethod              PaymentMethod
	SourceOfFunds              string
	PurposeOfTransfer          string
	TransferType               string
	Operator                   string
	CustomerCardNumberDelivery string
	Notes                      string
	HighRisk                   bool
	Attempts                   int
	Status                     TransferStatus
	FailureReason              string
	CreatedAt                  time.Time
	UpdatedAt                  time.Time
	CompletedAt                *time.Time
}

// TransferDispatchMessage is what goes to the payout channel once a transfer
// is persisted.
type TransferDispatchMessage struct {
	Reference           string          `json:"reference"`
	TellerID            string          `json:"tellerId"`
	SenderID            string          `json:"senderId"`
	ReceiverID          string          `json:"receiverId"`
	ReceiverCountry     string          `json:"receiverCountry"`
	SourceCurrency      string          `json:"sourceCurrency"`
	DestinationCurrency string          `json:"destinationCurrency"`
	Amount              decimal.Decimal `json:"amount"`
	RecipientAmount     decimal.Decimal `json:"recipientAmount"`
	Operator            string          `json:"operator,omitempty"`
	TransferType        string          `json:"transferType,omitempty"`
	Attempt             int             `json:"attempt"`
	Timestamp           time.Time       `json:"timestamp"`
}

func NewTransferDispatchMessage(t Transfer, attempt int) TransferDispatchMessage {
	return TransferDispatchMessage{
		Reference:           t.Reference,
		TellerID:            t.TellerID,
		SenderID:            t.SenderID,
		ReceiverID:          t.ReceiverID,
		ReceiverCountry:     t.ReceiverCountry,
		SourceCurrency:      t.SourceCurrency,
		DestinationCurrency: t.DestinationCurrency,
		Amount:              t.Amount,
		RecipientAmount:     t.RecipientAmount,
		Operator:            t.Operator,
		TransferType:        t.TransferType,
		Attempt:             attempt,
		Timestamp:           time.Now().UTC(),
	}
}
