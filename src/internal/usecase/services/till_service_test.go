package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/global-remit/teller-desk/src/internal/adapter/http/models"
	"github.com/global-remit/teller-desk/src/internal/commons"
)

func TestTillServiceGetTill(t *testing.T) {
	d := newDesk(t, &dispatcherStub{})

	resp, err := d.tillService.GetTill(context.Background(), tellerID)
	require.NoError(t, err)
	require.NotNil(t, resp.Data)
	assert.Equal(t, tellerID, resp.Data.TellerID)
	require.Len(t, resp.Data.Registers, 3)

	byCurrency := map[string]models.RegisterResponse{}
	for _, reg := range resp.Data.Registers {
		byCurrency[reg.Currency] = reg
	}
	assert.Equal(t, "3200.00", byCurrency["USD"].CurrentBalance)
	assert.Equal(t, "200.00", byCurrency["USD"].NetPayments)
	assert.Equal(t, "300.50", byCurrency["EUR"].NetPayments)
}

func TestTillServiceOpenRegister(t *testing.T) {
	ctx := context.Background()
	d := newDesk(t, &dispatcherStub{})

	resp, err := d.tillService.OpenRegister(ctx, tellerID, models.OpenRegisterRequest{Currency: "usd", OpeningBalance: "10"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, commons.ErrAlreadyExists))
	assert.Equal(t, "Register already open", resp.Message)

	resp, err = d.tillService.OpenRegister(ctx, tellerID, models.OpenRegisterRequest{Currency: "gbp", OpeningBalance: "250"})
	require.NoError(t, err)
	require.NotNil(t, resp.Data)
	assert.Equal(t, "GBP", resp.Data.Currency)
	assert.Equal(t, "250.00", resp.Data.CurrentBalance)
	assert.Equal(t, "0.00", resp.Data.NetPayments)

	resp, err = d.tillService.OpenRegister(ctx, tellerID, models.OpenRegisterRequest{Currency: "GBPX", OpeningBalance: "-1"})
	require.Error(t, err)
	assert.Equal(t, "validation failed", resp.Message)
}

func TestTillServiceRecordMovement(t *testing.T) {
	ctx := context.Background()
	d := newDesk(t, &dispatcherStub{})

	resp, err := d.tillService.RecordMovement(ctx, tellerID, models.CashMovementRequest{
		Currency:    "EUR",
		Type:        "Remove",
		Amount:      "800.50",
		Description: "Vault drop",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Data)
	assert.Equal(t, "1000.00", resp.Data.Register.CurrentBalance)
	assert.Equal(t, "remove", resp.Data.Movement.Type)

	resp, err = d.tillService.RecordMovement(ctx, tellerID, models.CashMovementRequest{
		Currency:    "EUR",
		Type:        "remove",
		Amount:      "1000.01",
		Description: "Too much",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, commons.ErrInsufficientBalance))
	assert.Equal(t, "Insufficient balance", resp.Message)

	resp, err = d.tillService.RecordMovement(ctx, tellerID, models.CashMovementRequest{
		Currency:    "CHF",
		Type:        "remove",
		Amount:      "1",
		Description: "No register",
	})
	require.Error(t, err)
	assert.Equal(t, "Register not found", resp.Message)

	resp, err = d.tillService.RecordMovement(ctx, tellerID, models.CashMovementRequest{
		Currency: "EUR",
		Type:     "swap",
		Amount:   "0",
	})
	require.Error(t, err)
	assert.Equal(t, "validation failed", resp.Message)

	list, err := d.tillService.ListMovements(ctx, tellerID, "eur", 10)
	require.NoError(t, err)
	require.NotNil(t, list.Data)
	require.Len(t, *list.Data, 1)
	assert.Equal(t, "Vault drop", (*list.Data)[0].Description)
}

func TestTillServiceRecordCashInIgnoresNonPositive(t *testing.T) {
	ctx := context.Background()
	d := newDesk(t, &dispatcherStub{})

	require.NoError(t, d.tillService.RecordCashIn(ctx, tellerID, "USD", dec("0"), "REF"))
	require.NoError(t, d.tillService.RecordCashIn(ctx, tellerID, "NGN", dec("5000"), "REF"))

	reg, err := d.till.GetRegister(ctx, tellerID, "NGN")
	require.NoError(t, err)
	assert.True(t, reg.CurrentBalance.Equal(dec("5000")))

	movements, err := d.till.ListMovements(ctx, tellerID, "", 0)
	require.NoError(t, err)
	require.Len(t, movements, 1)
	assert.Equal(t, "Cash received for transfer REF", movements[0].Description)
}

func TestTillServicePreviewClear(t *testing.T) {
	d := newDesk(t, &dispatcherStub{})

	resp, err := d.tillService.PreviewClear(context.Background(), tellerID, models.ClearPreviewRequest{
		AmountsToLeave: map[string]string{"usd": "200", "EUR": "2000"},
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Data)

	previews := *resp.Data
	require.Len(t, previews, 3)
	assert.Equal(t, []string{"EUR", "ILS", "USD"}, []string{previews[0].Currency, previews[1].Currency, previews[2].Currency})

	assert.Equal(t, "0.00", previews[0].TotalToGive)
	assert.True(t, previews[0].ClearDisabled)

	assert.Equal(t, "9500.00", previews[1].TotalToGive)
	assert.Equal(t, "0.00", previews[1].AmountToLeave)
	assert.False(t, previews[1].ClearDisabled)

	assert.Equal(t, "3000.00", previews[2].TotalToGive)
	assert.False(t, previews[2].ClearDisabled)
}

func TestTillServiceClearRegister(t *testing.T) {
	ctx := context.Background()
	d := newDesk(t, &dispatcherStub{})

	resp, err := d.tillService.ClearRegister(ctx, tellerID, models.ClearRegisterRequest{Currency: "usd", AmountToLeave: "500"})
	require.NoError(t, err)
	require.NotNil(t, resp.Data)
	assert.Equal(t, "500.00", resp.Data.AmountLeft)
	assert.Equal(t, "2700.00", resp.Data.TotalToGive)
	assert.Equal(t, "500.00", resp.Data.Register.OpeningBalance)
	assert.Equal(t, "500.00", resp.Data.Register.CurrentBalance)
	assert.NotEmpty(t, resp.Data.ClearedAt)

	resp, err = d.tillService.ClearRegister(ctx, tellerID, models.ClearRegisterRequest{Currency: "USD", AmountToLeave: "501"})
	require.Error(t, err)
	assert.Equal(t, "Insufficient balance", resp.Message)

	resp, err = d.tillService.ClearRegister(ctx, tellerID, models.ClearRegisterRequest{Currency: "CHF", AmountToLeave: "0"})
	require.Error(t, err)
	assert.Equal(t, "Register not found", resp.Message)
}
