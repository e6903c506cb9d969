package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuoteRequestValidate(t *testing.T) {
	err := QuoteRequest{SourceCurrency: "US", Amount: "abc", FeePayer: "nobody"}.Validate()
	require.Error(t, err)
	assert.Equal(t,
		"sourceCurrency must be 3 characters; destinationCurrency is required; amount must be numeric; feePayer must be one of sender, beneficiary, both",
		err.Error())

	assert.NoError(t, QuoteRequest{SourceCurrency: "USD", DestinationCurrency: "EUR", Amount: "100"}.Validate())
}

func TestClientRequestValidateDependsOnRole(t *testing.T) {
	sender := ClientRequest{FirstName: "Ana", LastName: "Lopez"}
	err := sender.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "phone is required")
	assert.Contains(t, err.Error(), "idNumber is required")

	receiver := ClientRequest{Role: "receiver", FirstName: "Ana", LastName: "Lopez"}
	assert.NoError(t, receiver.Validate())
}

func TestSelectPartyRequestNeedsExactlyOneChoice(t *testing.T) {
	assert.Error(t, SelectPartyRequest{SessionID: "s"}.Validate())
	assert.Error(t, SelectPartyRequest{SessionID: "s", ClientID: "CUST1001", SameAsSender: true}.Validate())
	assert.NoError(t, SelectPartyRequest{SessionID: "s", ClientID: "CUST1001"}.Validate())
}

func TestTwoFactorVerifyRequestValidate(t *testing.T) {
	assert.Error(t, TwoFactorVerifyRequest{SessionID: "s", Code: "12a456"}.Validate())
	assert.Error(t, TwoFactorVerifyRequest{SessionID: "s", Code: "12345"}.Validate())
	assert.NoError(t, TwoFactorVerifyRequest{SessionID: "s", Code: "123456"}.Validate())
}

func TestUpdateFormRequestAllowsClearingAmount(t *testing.T) {
	empty := ""
	assert.NoError(t, UpdateFormRequest{SessionID: "s", Amount: &empty}.Validate())

	bad := "ten"
	assert.Error(t, UpdateFormRequest{SessionID: "s", Amount: &bad}.Validate())
}

func TestDecimalInputsAreBounded(t *testing.T) {
	huge := "1e5000000"
	long := "1" + strings.Repeat("0", 40)

	err := UpdateFormRequest{SessionID: "s", Amount: &huge}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "amount is out of range")

	err = QuoteRequest{SourceCurrency: "USD", DestinationCurrency: "EUR", Amount: "100", ExchangeRate: "1e-5000000"}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")

	err = QuoteRequest{SourceCurrency: "USD", DestinationCurrency: "EUR", Amount: long}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "amount is out of range")

	err = QuoteRequest{SourceCurrency: "USD", DestinationCurrency: "EUR", Amount: "1000000000001"}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "amount is out of range")

	assert.NoError(t, QuoteRequest{SourceCurrency: "USD", DestinationCurrency: "EUR", Amount: "999999999999.99"}.Validate())
	assert.True(t, ParseDecimal(huge).IsZero())
}

func TestKYCVerificationRequestValidate(t *testing.T) {
	err := KYCVerificationRequest{IssueDate: "15/01/2020"}.Validate()
	require.Error(t, err)
	assert.Equal(t,
		"clientId is required; documentType is required; documentNumber is required; issueDate must be in YYYY-MM-DD format",
		err.Error())

	err = KYCVerificationRequest{ClientID: "C1", DocumentType: "passport", DocumentNumber: "P1", IssueDate: "2020-01-15", ExpiryDate: "2020-01-15"}.Validate()
	require.Error(t, err)
	assert.Equal(t, "expiryDate must be after issueDate", err.Error())

	req := KYCVerificationRequest{ClientID: " C1 ", DocumentType: "passport", DocumentNumber: "P1", IssueDate: "2020-01-15", ExpiryDate: "2030-01-15"}
	require.NoError(t, req.Validate())
	v := req.ToDomain()
	assert.Equal(t, "C1", v.ClientID)
	assert.Equal(t, "pending", string(v.Status))
	require.NotNil(t, v.ExpiryDate)
	assert.Equal(t, 2030, v.ExpiryDate.Year())
}
