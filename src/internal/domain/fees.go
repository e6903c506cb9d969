package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

type FeePayer string

const (
	FeePayerSender      FeePayer = "sender"
	FeePayerBeneficiary FeePayer = "beneficiary"
	FeePayerBoth        FeePayer = "both"
)

func (p FeePayer) Valid() bool {
	switch p {
	case FeePayerSender, FeePayerBeneficiary, FeePayerBoth:
		return true
	}
	return false
}

type PromoKind string

const (
	PromoWaiveFee PromoKind = "WAIVE_FEE"
	PromoHalveFee PromoKind = "HALVE_FEE"
)

func (k PromoKind) Valid() bool {
	return k == PromoWaiveFee || k == PromoHalveFee
}

// FeePolicy holds the base fee schedule. Percentages are expressed in whole
// percent (1 means 1%).
type FeePolicy struct {
	BasePercent decimal.Decimal
	MinFee      decimal.Decimal
	MaxFee      decimal.Decimal
	PromoCodes  map[string]PromoKind
}

func DefaultFeePolicy() FeePolicy {
	return FeePolicy{
		BasePercent: decimal.NewFromInt(1),
		MinFee:      decimal.NewFromInt(2),
		MaxFee:      decimal.NewFromInt(50),
		PromoCodes: map[string]PromoKind{
			"NOFEE":  PromoWaiveFee,
			"HALFEE": PromoHalveFee,
		},
	}
}

func (p FeePolicy) Promo(code string) (PromoKind, bool) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if normalized == "" {
		return "", false
	}
	kind, ok := p.PromoCodes[normalized]
	return kind, ok
}

type QuoteInput struct {
	SourceCurrency        string
	DestinationCurrency   string
	Amount                decimal.Decimal
	ExchangeRate          decimal.Decimal
	ExtraChargesPercent   decimal.Decimal
	TellerDiscountPercent decimal.Decimal
	FeePayer              FeePayer
	PromoCode             string
}

type Quote struct {
	SourceCurrency      string
	DestinationCurrency string
	Amount              decimal.Decimal
	ExchangeRate        decimal.Decimal
	Fee                 decimal.Decimal
	RecipientAmount     decimal.Decimal
	TotalAmount         decimal.Decimal
	FeePayer            FeePayer
	PromoApplied        bool
}
