package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/global-remit/teller-desk/src/internal/adapter/repository/memory"
	"github.com/global-remit/teller-desk/src/internal/adapter/repository/seed"
	"github.com/global-remit/teller-desk/src/internal/domain"
	"github.com/global-remit/teller-desk/src/internal/usecase/services"
)

func TestGetReferenceDataFromSeed(t *testing.T) {
	svc := services.NewReferenceService(memory.NewOperatorRepository(), memory.NewRateRepository(seed.Rates()))

	resp, err := svc.GetReferenceData(context.Background())
	require.NoError(t, err)
	require.True(t, resp.Success)
	require.NotNil(t, resp.Data)

	data := resp.Data
	assert.Equal(t, []string{"CAD", "CNY", "EUR", "GBP", "ILS", "JPY", "NGN", "USD"}, data.Currencies)
	assert.Len(t, data.Operators, len(seed.Operators()))
	assert.Equal(t, "Contact", data.Operators[0].Name)
	assert.Contains(t, data.SourcesOfFunds, "other")
	assert.Contains(t, data.PurposesOfTransfer, "family_support")
	assert.Len(t, data.PaymentMethods, len(domain.PaymentMethods))
	assert.Equal(t, []string{"sender", "beneficiary", "both"}, data.FeePayers)
}

func TestGetReferenceDataRateFailure(t *testing.T) {
	rates := &rateRepoStub{getRatesFn: func(context.Context) ([]domain.Rate, error) {
		return nil, errors.New("db down")
	}}
	svc := services.NewReferenceService(memory.NewOperatorRepository(), rates)

	resp, err := svc.GetReferenceData(context.Background())
	require.Error(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, "failed to fetch reference data", resp.Message)
}
