package domain

import "github.com/shopspring/decimal"

type TransferLimits struct {
	Currency         string
	Daily            decimal.Decimal
	Monthly          decimal.Decimal
	PerTransaction   decimal.Decimal
	RemainingDaily   decimal.Decimal
	RemainingMonthly decimal.Decimal
}

func DefaultTransferLimits(currency string) TransferLimits {
	daily := decimal.NewFromInt(10000)
	monthly := decimal.NewFromInt(50000)
	return TransferLimits{
		Currency:         currency,
		Daily:            daily,
		Monthly:          monthly,
		PerTransaction:   decimal.NewFromInt(5000),
		RemainingDaily:   daily,
		RemainingMonthly: monthly,
	}
}

// WithUsage returns the limits with remaining amounts reduced by what the
// sender already moved. Remaining never goes below zero.
func (l TransferLimits) WithUsage(usedToday, usedThisMonth decimal.Decimal) TransferLimits {
	l.RemainingDaily = decimal.Max(decimal.Zero, l.Daily.Sub(usedToday))
	l.RemainingMonthly = decimal.Max(decimal.Zero, l.Monthly.Sub(usedThisMonth))
	return l
}

type RiskPolicy struct {
	HighRiskThreshold decimal.Decimal
	RiskySourceOfFund string
}

func DefaultRiskPolicy() RiskPolicy {
	return RiskPolicy{
		HighRiskThreshold: decimal.NewFromInt(1000),
		RiskySourceOfFund: "other",
	}
}
