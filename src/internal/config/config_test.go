package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/global-remit/teller-desk/src/internal/domain"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "memory", cfg.DataBackend)
	assert.Equal(t, "TellerDesk", cfg.ChannelID)
	assert.Equal(t, "log", cfg.DispatchBackend)
	assert.Equal(t, 3, cfg.DispatchMaxAttempts)
	assert.Equal(t, time.Second, cfg.DispatchBackoff)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, "USD", cfg.LimitsCurrency)
	assert.False(t, cfg.TwoFactorEchoCode)
	assert.Nil(t, cfg.FeeSchedule)
	assert.Contains(t, cfg.DatabaseDSN, "dbname=teller_desk_db")
	require.NoError(t, cfg.Validate())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "9090")
	t.Setenv("DATA_BACKEND", "Postgres")
	t.Setenv("DISPATCH_MAX_ATTEMPTS", "5")
	t.Setenv("DISPATCH_BACKOFF", "250ms")
	t.Setenv("TWO_FACTOR_ECHO_CODE", "true")
	t.Setenv("LIMITS_CURRENCY", "eur")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "postgres", cfg.DataBackend)
	assert.Equal(t, 5, cfg.DispatchMaxAttempts)
	assert.Equal(t, 250*time.Millisecond, cfg.DispatchBackoff)
	assert.True(t, cfg.TwoFactorEchoCode)
	assert.Equal(t, "EUR", cfg.LimitsCurrency)
}

func TestValidateCollectsEveryProblem(t *testing.T) {
	cfg := Config{
		Port:                "99999",
		DataBackend:         "sqlite",
		DispatchBackend:     "amqp",
		AMQPURL:             "http://broker",
		ChannelID:           "x",
		ChannelKey:          "y",
		JWTSecret:           "short",
		JWTTTL:              time.Hour,
		DispatchMaxAttempts: 0,
		SessionTTL:          time.Hour,
		SessionCapacity:     10,
		LimitsCurrency:      "USD",
	}

	err := cfg.Validate()
	require.Error(t, err)

	msg := err.Error()
	for _, want := range []string{
		"invalid port 99999",
		"invalid data backend 'sqlite'",
		"invalid AMQP URL scheme 'http'",
		"AMQP exchange name cannot be empty",
		"JWT secret must be at least 16 characters",
		"invalid dispatch max attempts 0",
	} {
		assert.True(t, strings.Contains(msg, want), "missing %q in %s", want, msg)
	}
}

func TestNormalizeConnectionString(t *testing.T) {
	got := normalizeConnectionString("Host=db;Port=5433;Database=tellers;Username=app;Password=pw;CommandTimeout=15")
	assert.Equal(t, "host=db port=5433 dbname=tellers user=app password=pw statement_timeout=15s sslmode=disable", got)

	url := "postgres://app:pw@db:5432/tellers?sslmode=require"
	assert.Equal(t, url, normalizeConnectionString(url))
}

func TestFeeScheduleOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fees.yaml")
	content := `
fees:
  base_percent: "1.5"
  min_fee: "3"
  promo_codes:
    staff: waive_fee
limits:
  daily: "20000"
risk:
  high_risk_threshold: "2500"
defaults:
  destination_currency: gbp
  fee_payer: both
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Chdir(dir)
	t.Setenv("FEE_SCHEDULE_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)
	require.NotNil(t, cfg.FeeSchedule)

	policy := cfg.FeePolicy()
	assert.True(t, policy.BasePercent.Equal(decimal.RequireFromString("1.5")))
	assert.True(t, policy.MinFee.Equal(decimal.NewFromInt(3)))
	assert.True(t, policy.MaxFee.Equal(decimal.NewFromInt(50)))
	kind, ok := policy.Promo("Staff")
	assert.True(t, ok)
	assert.Equal(t, domain.PromoWaiveFee, kind)
	_, ok = policy.Promo("NOFEE")
	assert.False(t, ok)

	limits := cfg.TransferLimits()
	assert.True(t, limits.Daily.Equal(decimal.NewFromInt(20000)))
	assert.True(t, limits.RemainingDaily.Equal(decimal.NewFromInt(20000)))
	assert.True(t, limits.PerTransaction.Equal(decimal.NewFromInt(5000)))

	assert.True(t, cfg.RiskPolicy().HighRiskThreshold.Equal(decimal.NewFromInt(2500)))

	defaults := cfg.FormDefaults()
	assert.Equal(t, "USD", defaults.SourceCurrency)
	assert.Equal(t, "GBP", defaults.DestinationCurrency)
	assert.Equal(t, domain.FeePayerBoth, defaults.FeePayer)
}

func TestFeeScheduleRejectsBadValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fees.yaml")
	require.NoError(t, os.WriteFile(path, []byte("fees:\n  max_fee: \"-1\"\n  promo_codes:\n    X: triple\n"), 0o600))

	_, err := LoadFeeSchedule(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fees.max_fee must not be negative")
	assert.Contains(t, err.Error(), "unknown kind")
}
