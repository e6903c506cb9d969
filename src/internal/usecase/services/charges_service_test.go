package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/global-remit/teller-desk/src/internal/adapter/http/models"
	"github.com/global-remit/teller-desk/src/internal/domain"
	"github.com/global-remit/teller-desk/src/internal/usecase/services"
)

func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func TestChargesServiceCalculateFee(t *testing.T) {
	svc := services.NewChargesService(domain.DefaultFeePolicy(), nil)

	cases := []struct {
		name     string
		amount   string
		extra    string
		discount string
		promo    string
		want     string
	}{
		{name: "minimum fee", amount: "100", want: "2"},
		{name: "base percent", amount: "1000", want: "10"},
		{name: "capped at maximum", amount: "10000", want: "50"},
		{name: "extra charges on amount", amount: "100", extra: "2", want: "4"},
		{name: "teller discount on fee", amount: "1000", discount: "50", want: "5"},
		{name: "waive promo", amount: "1000", promo: "nofee", want: "0"},
		{name: "halve promo", amount: "1000", promo: "HALFEE", want: "5"},
		{name: "unknown promo ignored", amount: "1000", promo: "BOGUS", want: "10"},
		{name: "zero amount", amount: "0", want: "0"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fee := svc.CalculateFee(dec(tc.amount), decimal.RequireFromString(orZero(tc.extra)), decimal.RequireFromString(orZero(tc.discount)), tc.promo)
			if !fee.Equal(dec(tc.want)) {
				t.Fatalf("expected fee %s, got %s", tc.want, fee.String())
			}
		})
	}
}

func orZero(v string) string {
	if v == "" {
		return "0"
	}
	return v
}

func TestChargesServiceRecipientAndTotalByPayer(t *testing.T) {
	svc := services.NewChargesService(domain.DefaultFeePolicy(), nil)
	amount, rate, fee := dec("100"), dec("0.92"), dec("2")

	cases := []struct {
		payer     domain.FeePayer
		recipient string
		total     string
	}{
		{payer: domain.FeePayerSender, recipient: "92", total: "102"},
		{payer: domain.FeePayerBeneficiary, recipient: "90.16", total: "100"},
		{payer: domain.FeePayerBoth, recipient: "91.08", total: "101"},
	}

	for _, tc := range cases {
		recipient := svc.CalculateRecipientAmount(amount, rate, fee, tc.payer)
		if !recipient.Equal(dec(tc.recipient)) {
			t.Fatalf("%s: expected recipient %s, got %s", tc.payer, tc.recipient, recipient.String())
		}
		total := svc.CalculateTotalAmount(amount, fee, tc.payer)
		if !total.Equal(dec(tc.total)) {
			t.Fatalf("%s: expected total %s, got %s", tc.payer, tc.total, total.String())
		}
	}
}

func TestChargesServiceQuoteDefaultsPayer(t *testing.T) {
	svc := services.NewChargesService(domain.DefaultFeePolicy(), nil)

	quote := svc.Quote(domain.QuoteInput{
		Amount:       dec("100"),
		ExchangeRate: dec("1.36"),
		FeePayer:     "nobody",
		PromoCode:    "HALFEE",
	})
	if quote.FeePayer != domain.FeePayerSender {
		t.Fatalf("expected sender payer, got %s", quote.FeePayer)
	}
	if !quote.PromoApplied || !quote.Fee.Equal(dec("1")) {
		t.Fatalf("expected halved fee 1 with promo applied, got %s", quote.Fee.String())
	}
	if !quote.TotalAmount.Equal(dec("101")) {
		t.Fatalf("expected total 101, got %s", quote.TotalAmount.String())
	}
}

func TestChargesServiceGetQuoteResolvesRate(t *testing.T) {
	rates := services.NewRateService(pairRepo(map[string]string{"USDEUR": "0.92"}))
	svc := services.NewChargesService(domain.DefaultFeePolicy(), rates)

	resp, err := svc.GetQuote(context.Background(), models.QuoteRequest{
		SourceCurrency:      "USD",
		DestinationCurrency: "EUR",
		Amount:              "100",
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if resp.Data == nil {
		t.Fatal("expected quote data")
	}
	if resp.Data.Fee != "2.00" || resp.Data.TotalAmount != "102.00" || resp.Data.RecipientAmount != "92.00" {
		t.Fatalf("unexpected quote %+v", *resp.Data)
	}
}

func TestChargesServiceGetQuoteValidationError(t *testing.T) {
	svc := services.NewChargesService(domain.DefaultFeePolicy(), nil)

	resp, err := svc.GetQuote(context.Background(), models.QuoteRequest{Amount: "-1"})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if resp.Message != "validation failed" {
		t.Fatalf("expected validation failed message, got %q", resp.Message)
	}
}

func TestChargesServiceQuoteRoundsOnlyAtTheEnd(t *testing.T) {
	svc := services.NewChargesService(domain.DefaultFeePolicy(), nil)

	cases := []struct {
		payer     domain.FeePayer
		fee       string
		recipient string
		total     string
	}{
		{payer: domain.FeePayerSender, fee: "3.33", recipient: "499995", total: "336.66"},
		{payer: domain.FeePayerBeneficiary, fee: "3.33", recipient: "494995.05", total: "333.33"},
		{payer: domain.FeePayerBoth, fee: "3.33", recipient: "497495.03", total: "335"},
	}

	for _, tc := range cases {
		quote := svc.Quote(domain.QuoteInput{
			Amount:       dec("333.33"),
			ExchangeRate: dec("1500"),
			FeePayer:     tc.payer,
		})
		if !quote.Fee.Equal(dec(tc.fee)) {
			t.Fatalf("%s: expected fee %s, got %s", tc.payer, tc.fee, quote.Fee.String())
		}
		if !quote.RecipientAmount.Equal(dec(tc.recipient)) {
			t.Fatalf("%s: expected recipient %s, got %s", tc.payer, tc.recipient, quote.RecipientAmount.String())
		}
		if !quote.TotalAmount.Equal(dec(tc.total)) {
			t.Fatalf("%s: expected total %s, got %s", tc.payer, tc.total, quote.TotalAmount.String())
		}
	}
}
