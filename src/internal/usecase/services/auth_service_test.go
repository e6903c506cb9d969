package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/global-remit/teller-desk/src/internal/adapter/http/models"
	"github.com/global-remit/teller-desk/src/internal/domain"
	"github.com/global-remit/teller-desk/src/internal/usecase/services"
)

func TestAuthServiceIssueAndParse(t *testing.T) {
	auth := services.NewAuthService("desk-secret", time.Hour)

	resp, err := auth.IssueToken(context.Background(), models.TokenRequest{TellerID: " TELLER001 "})
	require.NoError(t, err)
	require.NotNil(t, resp.Data)
	assert.Equal(t, "Bearer", resp.Data.TokenType)
	assert.Equal(t, "TELLER001", resp.Data.TellerID)
	assert.Equal(t, models.RoleTeller, resp.Data.Role)

	teller, err := auth.ParseToken(resp.Data.Token)
	require.NoError(t, err)
	assert.Equal(t, domain.Teller{ID: "TELLER001", Role: domain.TellerRoleTeller}, teller)

	resp, err = auth.IssueToken(context.Background(), models.TokenRequest{TellerID: "SUPER", Role: "Admin"})
	require.NoError(t, err)
	teller, err = auth.ParseToken(resp.Data.Token)
	require.NoError(t, err)
	assert.True(t, teller.IsAdmin())
}

func TestAuthServiceRejectsBadTokens(t *testing.T) {
	auth := services.NewAuthService("desk-secret", time.Hour)
	other := services.NewAuthService("other-secret", time.Hour)
	expired := services.NewAuthService("desk-secret", -time.Minute)

	resp, err := other.IssueToken(context.Background(), models.TokenRequest{TellerID: "TELLER001"})
	require.NoError(t, err)
	_, err = auth.ParseToken(resp.Data.Token)
	assert.True(t, errors.Is(err, services.ErrInvalidToken))

	resp, err = expired.IssueToken(context.Background(), models.TokenRequest{TellerID: "TELLER001"})
	require.NoError(t, err)
	_, err = auth.ParseToken(resp.Data.Token)
	assert.True(t, errors.Is(err, services.ErrInvalidToken))

	_, err = auth.ParseToken("not-a-token")
	assert.True(t, errors.Is(err, services.ErrInvalidToken))
}

func TestAuthServiceIssueTokenValidation(t *testing.T) {
	auth := services.NewAuthService("desk-secret", time.Hour)

	resp, err := auth.IssueToken(context.Background(), models.TokenRequest{Role: "root"})
	require.Error(t, err)
	assert.Equal(t, "validation failed", resp.Message)
	assert.Equal(t, []string{"tellerId is required; role must be one of teller, admin"}, resp.Errors)
}
