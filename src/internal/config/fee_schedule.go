package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/global-remit/teller-desk/src/internal/domain"
)

// FeeSchedule is the YAML override for pricing, limits and form defaults.
// Amounts are strings so they reach decimal without passing through float64.
type FeeSchedule struct {
	Fees struct {
		BasePercent string            `yaml:"base_percent"`
		MinFee      string            `yaml:"min_fee"`
		MaxFee      string            `yaml:"max_fee"`
		PromoCodes  map[string]string `yaml:"promo_codes"`
	} `yaml:"fees"`
	Limits struct {
		PerTransaction string `yaml:"per_transaction"`
		Daily          string `yaml:"daily"`
		Monthly        string `yaml:"monthly"`
	} `yaml:"limits"`
	Risk struct {
		HighRiskThreshold string `yaml:"high_risk_threshold"`
		RiskySourceOfFund string `yaml:"risky_source_of_funds"`
	} `yaml:"risk"`
	Defaults struct {
		SourceCurrency      string `yaml:"source_currency"`
		DestinationCurrency string `yaml:"destination_currency"`
		FeePayer            string `yaml:"fee_payer"`
		PaymentMethod       string `yaml:"payment_method"`
	} `yaml:"defaults"`
}

func LoadFeeSchedule(path string) (*FeeSchedule, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open fee schedule %q: %w", path, err)
	}
	defer f.Close()

	var schedule FeeSchedule
	if err := yaml.NewDecoder(f).Decode(&schedule); err != nil {
		return nil, fmt.Errorf("parse fee schedule %q: %w", path, err)
	}

	if err := schedule.validate(); err != nil {
		return nil, fmt.Errorf("validate fee schedule %q: %w", path, err)
	}

	return &schedule, nil
}

func (s *FeeSchedule) validate() error {
	var errs []error

	for name, raw := range map[string]string{
		"fees.base_percent":        s.Fees.BasePercent,
		"fees.min_fee":             s.Fees.MinFee,
		"fees.max_fee":             s.Fees.MaxFee,
		"limits.per_transaction":   s.Limits.PerTransaction,
		"limits.daily":             s.Limits.Daily,
		"limits.monthly":           s.Limits.Monthly,
		"risk.high_risk_threshold": s.Risk.HighRiskThreshold,
	} {
		if raw == "" {
			continue
		}
		v, err := decimal.NewFromString(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			continue
		}
		if v.IsNegative() {
			errs = append(errs, fmt.Errorf("%s must not be negative", name))
		}
	}

	for code, kind := range s.Fees.PromoCodes {
		if !domain.PromoKind(strings.ToUpper(kind)).Valid() {
			errs = append(errs, fmt.Errorf("fees.promo_codes.%s: unknown kind %q", code, kind))
		}
	}

	if s.Defaults.FeePayer != "" && !domain.FeePayer(s.Defaults.FeePayer).Valid() {
		errs = append(errs, fmt.Errorf("defaults.fee_payer: unknown payer %q", s.Defaults.FeePayer))
	}
	if s.Defaults.PaymentMethod != "" && !domain.PaymentMethod(s.Defaults.PaymentMethod).Valid() {
		errs = append(errs, fmt.Errorf("defaults.payment_method: unknown method %q", s.Defaults.PaymentMethod))
	}

	return errors.Join(errs...)
}

// FeePolicy returns the fee policy with schedule overrides applied.
func (c Config) FeePolicy() domain.FeePolicy {
	policy := domain.DefaultFeePolicy()
	if c.FeeSchedule == nil {
		return policy
	}

	fees := c.FeeSchedule.Fees
	policy.BasePercent = decimalOr(fees.BasePercent, policy.BasePercent)
	policy.MinFee = decimalOr(fees.MinFee, policy.MinFee)
	policy.MaxFee = decimalOr(fees.MaxFee, policy.MaxFee)

	if len(fees.PromoCodes) > 0 {
		policy.PromoCodes = make(map[string]domain.PromoKind, len(fees.PromoCodes))
		for code, kind := range fees.PromoCodes {
			policy.PromoCodes[strings.ToUpper(strings.TrimSpace(code))] = domain.PromoKind(strings.ToUpper(kind))
		}
	}

	return policy
}

func (c Config) TransferLimits() domain.TransferLimits {
	limits := domain.DefaultTransferLimits(c.LimitsCurrency)
	if c.FeeSchedule == nil {
		return limits
	}

	l := c.FeeSchedule.Limits
	limits.PerTransaction = decimalOr(l.PerTransaction, limits.PerTransaction)
	limits.Daily = decimalOr(l.Daily, limits.Daily)
	limits.Monthly = decimalOr(l.Monthly, limits.Monthly)
	limits.RemainingDaily = limits.Daily
	limits.RemainingMonthly = limits.Monthly
	return limits
}

func (c Config) RiskPolicy() domain.RiskPolicy {
	policy := domain.DefaultRiskPolicy()
	if c.FeeSchedule == nil {
		return policy
	}

	policy.HighRiskThreshold = decimalOr(c.FeeSchedule.Risk.HighRiskThreshold, policy.HighRiskThreshold)
	if v := strings.TrimSpace(c.FeeSchedule.Risk.RiskySourceOfFund); v != "" {
		policy.RiskySourceOfFund = v
	}
	return policy
}

func (c Config) FormDefaults() domain.FormDefaults {
	defaults := domain.DefaultFormDefaults()
	if c.FeeSchedule == nil {
		return defaults
	}

	d := c.FeeSchedule.Defaults
	if d.SourceCurrency != "" {
		defaults.SourceCurrency = strings.ToUpper(d.SourceCurrency)
	}
	if d.DestinationCurrency != "" {
		defaults.DestinationCurrency = strings.ToUpper(d.DestinationCurrency)
	}
	if d.FeePayer != "" {
		defaults.FeePayer = domain.FeePayer(d.FeePayer)
	}
	if d.PaymentMethod != "" {
		defaults.PaymentMethod = domain.PaymentMethod(d.PaymentMethod)
	}
	return defaults
}

func decimalOr(raw string, fallback decimal.Decimal) decimal.Decimal {
	if raw == "" {
		return fallback
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return fallback
	}
	return v
}
