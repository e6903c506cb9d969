// Package seed holds the demo desk data both storage backends start from.
package seed

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/global-remit/teller-desk/src/internal/domain"
)

func date(value string) *time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil
	}
	return &t
}

func amount(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func Clients() []domain.Client {
	created := time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)

	return []domain.Client{
		{
			ID:                "CUST1001",
			FirstName:         "John",
			LastName:          "Smith",
			DateOfBirth:       date("1980-01-15"),
			Gender:            "male",
			Nationality:       "American",
			Phone:             "+1 555-1234",
			Email:             "john.smith@example.com",
			Country:           "USA",
			StreetAddress:     "123 Main St",
			City:              "New York",
			PostalCode:        "10001",
			IDType:            "Passport",
			IDNumber:          "P12345678",
			IDIssuanceCountry: "USA",
			IDIssueDate:       date("2022-01-01"),
			IDExpiryDate:      date("2030-01-01"),
			BankAccount:       "****1234",
			BankCode:          "021000021",
			BranchCode:        "800",
			AccountBalances: []domain.AccountBalance{
				{Currency: "USD", Balance: amount("10500.75"), Type: "Checking"},
				{Currency: "EUR", Balance: amount("5200.00"), Type: "Savings"},
			},
			Employer: "Global Corp",
			Division: "Technology",
			Products: domain.ClientProducts{
				PrepaidCards: []domain.PrepaidCard{{ID: "pc1", Last4: "5678", Status: "Active"}},
				SimCards:     []domain.SimCard{{ID: "sc1", Number: "+15551234567", Status: "Active"}},
			},
			QRCodeData:  "johnsmith_qr_123",
			Status:      domain.ClientStatusActive,
			KYCVerified: true,
			RiskRating:  domain.RiskRatingLow,
			Currency:    "USD",
			Documents: []domain.Document{
				{DocumentType: "Passport Scan", FileName: "passport_john_smith.pdf"},
				{DocumentType: "Proof of Address", FileName: "utility_bill_js.pdf"},
			},
			RelationshipToBeneficiary: "Spouse",
			CreatedAt:                 created,
			UpdatedAt:                 created,
		},
		{
			ID:                "CUST1002",
			FirstName:         "Maria",
			LastName:          "Garcia",
			DateOfBirth:       date("1992-07-20"),
			Gender:            "female",
			Nationality:       "Spanish",
			Phone:             "+1 555-5678",
			Email:             "maria.garcia@example.com",
			Country:           "USA",
			StreetAddress:     "456 Oak St",
			City:              "Miami",
			PostalCode:        "33101",
			IDType:            "Driver License",
			IDNumber:          "DL87654321",
			IDIssuanceCountry: "USA",
			IDIssueDate:       date("2021-05-10"),
			IDExpiryDate:      date("2028-05-10"),
			BankAccount:       "****5678",
			BankCode:          "061092387",
			BranchCode:        "101",
			AccountBalances: []domain.AccountBalance{
				{Currency: "USD", Balance: amount("7800.20"), Type: "Checking"},
			},
			Employer: "Local Services Inc.",
			Division: "Customer Support",
			Products: domain.ClientProducts{
				PrepaidCards: []domain.PrepaidCard{{ID: "pc2", Last4: "1234", Status: "Active"}},
			},
			QRCodeData:                "mariagarcia_qr_456",
			Status:                    domain.ClientStatusActive,
			KYCVerified:               true,
			RiskRating:                domain.RiskRatingLow,
			Currency:                  "EUR",
			RelationshipToBeneficiary: "Friend",
			CreatedAt:                 created,
			UpdatedAt:                 created,
		},
		{
			ID:                "CUST1003",
			FirstName:         "David",
			LastName:          "Johnson",
			DateOfBirth:       date("1975-03-10"),
			Gender:            "male",
			Nationality:       "British",
			Phone:             "+1 555-9012",
			Email:             "david.johnson@example.com",
			Country:           "USA",
			StreetAddress:     "789 Pine St",
			City:              "Chicago",
			PostalCode:        "60601",
			IDType:            "Passport",
			IDNumber:          "P98765432",
			IDIssuanceCountry: "USA",
			IDIssueDate:       date("2020-12-25"),
			IDExpiryDate:      date("2032-12-25"),
			BankAccount:       "****9012",
			BankCode:          "071000013",
			BranchCode:        "202",
			AccountBalances: []domain.AccountBalance{
				{Currency: "GBP", Balance: amount("15000.00"), Type: "Primary"},
			},
			QRCodeData:  "davidjohnson_qr_789",
			Status:      domain.ClientStatusActive,
			KYCVerified: true,
			RiskRating:  domain.RiskRatingLow,
			Currency:    "GBP",
			CreatedAt:   created,
			UpdatedAt:   created,
		},
		{
			ID:                "CUST1004",
			FirstName:         "Sarah",
			LastName:          "Williams",
			DateOfBirth:       date("1988-11-05"),
			Gender:            "female",
			Nationality:       "Canadian",
			Phone:             "+1 555-3456",
			Email:             "sarah.williams@example.com",
			Country:           "USA",
			StreetAddress:     "321 Elm St",
			City:              "Los Angeles",
			PostalCode:        "90001",
			IDType:            "Driver License",
			IDNumber:          "DL12345678",
			IDIssuanceCountry: "USA",
			IDIssueDate:       date("2019-08-15"),
			IDExpiryDate:      date("2029-08-15"),
			BankAccount:       "****3456",
			BankCode:          "121000358",
			BranchCode:        "303",
			AccountBalances: []domain.AccountBalance{
				{Currency: "JPY", Balance: amount("2500000"), Type: "Trading"},
			},
			QRCodeData:  "sarahwilliams_qr_012",
			Status:      domain.ClientStatusActive,
			KYCVerified: true,
			RiskRating:  domain.RiskRatingLow,
			Currency:    "JPY",
			CreatedAt:   created,
			UpdatedAt:   created,
		},
		{
			ID:                   "REC001",
			FirstName:            "Alice",
			MiddleName:           "Mary",
			LastName:             "Johnson",
			DateOfBirth:          date("1990-05-15"),
			Gender:               "female",
			Phone:                "+1-416-555-0101",
			Email:                "alice.johnson@example.com",
			Country:              "Canada",
			StreetAddress:        "123 Maple Street",
			City:                 "Toronto",
			PostalCode:           "M5H 2N2",
			BankAccount:          "**** **** **** 1234",
			BankName:             "TD Canada Trust",
			BankSwiftCode:        "TDOMCATTTOR",
			BankBranch:           "Branch A",
			Status:               domain.ClientStatusActive,
			RiskRating:           domain.RiskRatingLow,
			Currency:             "CAD",
			RelationshipToSender: "Friend",
			CreatedAt:            created,
			UpdatedAt:            created,
		},
		{
			ID:                   "REC002",
			FirstName:            "Bob",
			LastName:             "Williams",
			DateOfBirth:          date("1985-11-20"),
			Gender:               "male",
			Phone:                "+44-20-7946-0102",
			Email:                "bob.williams@example.com",
			Country:              "UK",
			StreetAddress:        "456 Oak Avenue",
			City:                 "London",
			PostalCode:           "SW1A 1AA",
			BankAccount:          "**** **** **** 5678",
			BankName:             "HSBC UK",
			BankSwiftCode:        "MIDLGB22",
			BankBranch:           "Branch B",
			Status:               domain.ClientStatusActive,
			RiskRating:           domain.RiskRatingLow,
			Currency:             "GBP",
			RelationshipToSender: "Family",
			CreatedAt:            created,
			UpdatedAt:            created,
		},
		{
			ID:                   "REC003",
			FirstName:            "Elena",
			MiddleName:           "Sofia",
			LastName:             "Rodriguez",
			DateOfBirth:          date("1992-03-10"),
			Gender:               "female",
			Phone:                "+34-91-555-0103",
			Email:                "elena.rodriguez@example.com",
			Country:              "Spain",
			StreetAddress:        "789 Pine Road",
			City:                 "Madrid",
			PostalCode:           "28001",
			Status:               domain.ClientStatusActive,
			RiskRating:           domain.RiskRatingLow,
			Currency:             "EUR",
			RelationshipToSender: "Colleague",
			CreatedAt:            created,
			UpdatedAt:            created,
		},
	}
}

// Transfers are completed history records. They sit outside the current
// limit windows so they never consume a sender's allowance.
func Transfers() []domain.Transfer {
	first := time.Date(2024, 3, 10, 14, 30, 0, 0, time.UTC)
	second := time.Date(2024, 2, 20, 11, 15, 0, 0, time.UTC)

	return []domain.Transfer{
		{
			ID:                  "7a0d7e43-5d0f-4c4e-9f1c-0b9f4a3e1001",
			Reference:           "TXN789012",
			TellerID:            "TELLER001",
			SenderID:            "CUST1001",
			SenderName:          "John Smith",
			ReceiverID:          "REC001",
			ReceiverName:        "Alice Mary Johnson",
			ReceiverCountry:     "Canada",
			SourceCurrency:      "USD",
			DestinationCurrency: "CAD",
			Amount:              amount("150.00"),
			ExchangeRate:        amount("1.30"),
			Fee:                 amount("2.00"),
			RecipientAmount:     amount("195.00"),
			TotalAmount:         amount("152.00"),
			LimitAmount:         amount("150.00"),
			FeePayer:            domain.FeePayerSender,
			PaymentMethod:       domain.PaymentMethodCash,
			SourceOfFunds:       "salary",
			PurposeOfTransfer:   "purchase",
			TransferType:        "E-transfer",
			Operator:            "Interac",
			Notes:               "Payment for services",
			Attempts:            1,
			Status:              domain.TransferStatusCompleted,
			CreatedAt:           first,
			UpdatedAt:           first,
			CompletedAt:         &first,
		},
		{
			ID:                  "7a0d7e43-5d0f-4c4e-9f1c-0b9f4a3e1002",
			Reference:           "TXN890123",
			TellerID:            "TELLER001",
			SenderID:            "CUST1003",
			SenderName:          "David Johnson",
			ReceiverID:          "REC002",
			ReceiverName:        "Bob Williams",
			ReceiverCountry:     "UK",
			SourceCurrency:      "GBP",
			DestinationCurrency: "EUR",
			Amount:              amount("200.00"),
			ExchangeRate:        amount("1.15"),
			Fee:                 amount("2.00"),
			RecipientAmount:     amount("230.00"),
			TotalAmount:         amount("202.00"),
			LimitAmount:         amount("252.00"),
			FeePayer:            domain.FeePayerSender,
			PaymentMethod:       domain.PaymentMethodClientAccount,
			SourceOfFunds:       "savings",
			PurposeOfTransfer:   "family_support",
			TransferType:        "Bank Deposit",
			Operator:            "SWIFT",
			Notes:               "Account: ****5678",
			Attempts:            1,
			Status:              domain.TransferStatusCompleted,
			CreatedAt:           second,
			UpdatedAt:           second,
			CompletedAt:         &second,
		},
	}
}

func Rates() []domain.Rate {
	rateDate := time.Now().UTC().Truncate(24 * time.Hour)

	pairs := []struct {
		from, to, rate string
	}{
		{"USD", "EUR", "0.92"},
		{"USD", "GBP", "0.79"},
		{"USD", "CNY", "7.25"},
		{"USD", "CAD", "1.36"},
		{"USD", "JPY", "155.40"},
		{"USD", "ILS", "3.70"},
		{"USD", "NGN", "1338.38005900"},
		{"EUR", "USD", "1.08"},
		{"EUR", "GBP", "0.85"},
		{"EUR", "CAD", "1.47"},
		{"EUR", "NGN", "1580.48135373"},
		{"EUR", "ILS", "4.01"},
		{"GBP", "USD", "1.26"},
		{"GBP", "EUR", "1.17"},
		{"GBP", "CAD", "1.71"},
		{"GBP", "NGN", "1810.06486117"},
		{"CNY", "USD", "0.14"},
		{"CAD", "USD", "0.74"},
		{"JPY", "USD", "0.0064"},
		{"ILS", "USD", "0.27"},
		{"ILS", "EUR", "0.25"},
		{"NGN", "USD", "0.00074717"},
		{"NGN", "EUR", "0.00063272"},
		{"NGN", "GBP", "0.00055247"},
	}

	rates := make([]domain.Rate, 0, len(pairs))
	for i, p := range pairs {
		rates = append(rates, domain.Rate{
			ID:           int64(i + 1),
			FromCurrency: p.from,
			ToCurrency:   p.to,
			Rate:         amount(p.rate),
			RateDate:     rateDate,
			CreatedAt:    rateDate,
		})
	}
	return rates
}

func Operators() []domain.Operator {
	return []domain.Operator{
		{Name: "Contact", Code: "contact", TransferTypes: []string{"contact", "cash_to_credit"}, Countries: []string{"Russia", "Ukraine", "Georgia"}},
		{Name: "Lightnet", Code: "lightnet", TransferTypes: []string{"lightnet"}, Countries: []string{"Philippines", "Thailand", "Vietnam"}},
		{Name: "TerraPay", Code: "terrapay", TransferTypes: []string{"terrapay"}, Countries: []string{"Nigeria", "Kenya", "India"}},
		{Name: "Thunes", Code: "thunes", TransferTypes: []string{"thunes"}, Countries: []string{"Canada", "UK", "Spain", "China"}},
		{Name: "Interac", Code: "interac", TransferTypes: []string{"E-transfer"}, Countries: []string{"Canada"}},
		{Name: "SWIFT", Code: "swift", TransferTypes: []string{"Bank Deposit"}, Countries: []string{"UK", "Spain", "USA"}},
	}
}

func SourcesOfFunds() []string {
	return []string{"salary", "savings", "gift", "business_income", "other"}
}

func PurposesOfTransfer() []string {
	return []string{"family_support", "education", "medical", "investment", "purchase", "other"}
}

// Registers are the opening drawers of the demo teller.
func Registers(tellerID string, now time.Time) []domain.CashRegister {
	opened := now.UTC().Truncate(24 * time.Hour).Add(8 * time.Hour)

	return []domain.CashRegister{
		{TellerID: tellerID, Currency: "USD", OpeningBalance: amount("3000"), CurrentBalance: amount("3200"), OpenedAt: opened, UpdatedAt: opened},
		{TellerID: tellerID, Currency: "EUR", OpeningBalance: amount("1500"), CurrentBalance: amount("1800.50"), OpenedAt: opened, UpdatedAt: opened},
		{TellerID: tellerID, Currency: "ILS", OpeningBalance: amount("9000"), CurrentBalance: amount("9500"), OpenedAt: opened, UpdatedAt: opened},
	}
}

const DemoTellerID = "TELLER001"
