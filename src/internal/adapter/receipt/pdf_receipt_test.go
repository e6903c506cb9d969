package receipt

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/global-remit/teller-desk/src/internal/domain"
)

func TestTransferReceiptRendersPDF(t *testing.T) {
	completed := time.Date(2024, 3, 10, 14, 30, 0, 0, time.UTC)
	g := NewPDFGenerator("Teller Desk")

	out, err := g.TransferReceipt(domain.Transfer{
		Reference:           "202403101430000000000000000001",
		Status:              domain.TransferStatusCompleted,
		SenderID:            "CUST1001",
		SenderName:          "John Smith",
		ReceiverID:          "REC003",
		ReceiverName:        "Elena Sofía Rodríguez",
		ReceiverCountry:     "Spain",
		SourceCurrency:      "USD",
		DestinationCurrency: "EUR",
		Amount:              decimal.NewFromInt(100),
		ExchangeRate:        decimal.RequireFromString("0.92"),
		Fee:                 decimal.NewFromInt(2),
		TotalAmount:         decimal.NewFromInt(102),
		RecipientAmount:     decimal.NewFromInt(92),
		FeePayer:            domain.FeePayerSender,
		PaymentMethod:       domain.PaymentMethodCash,
		SourceOfFunds:       "salary",
		PurposeOfTransfer:   "family_support",
		Notes:               "Birthday gift",
		CreatedAt:           completed,
		CompletedAt:         &completed,
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
	assert.Greater(t, len(out), 500)
}
