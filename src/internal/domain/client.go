package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type ClientStatus string

const (
	ClientStatusActive   ClientStatus = "Active"
	ClientStatusInactive ClientStatus = "Inactive"
	ClientStatusBlocked  ClientStatus = "Blocked"
)

type RiskRating string

const (
	RiskRatingLow    RiskRating = "Low"
	RiskRatingMedium RiskRating = "Medium"
	RiskRatingHigh   RiskRating = "High"
)

type ClientRole string

const (
	ClientRoleSender   ClientRole = "sender"
	ClientRoleReceiver ClientRole = "receiver"
)

type AccountBalance struct {
	Currency string          `json:"currency"`
	Balance  decimal.Decimal `json:"balance"`
	Type     string          `json:"type,omitempty"`
}

type PrepaidCard struct {
	ID     string `json:"id"`
	Last4  string `json:"last4"`
	Status string `json:"status"`
}

type SimCard struct {
	ID     string `json:"id"`
	Number string `json:"number"`
	Status string `json:"status"`
}

type ClientProducts struct {
	PrepaidCards []PrepaidCard `json:"prepaidCards,omitempty"`
	SimCards     []SimCard     `json:"simCards,omitempty"`
}

type Document struct {
	DocumentType string `json:"documentType"`
	FileName     string `json:"fileName"`
	URL          string `json:"url,omitempty"`
}

// Client is a person on either side of a transfer. The same record serves as
// sender or receiver.
type Client struct {
	ID                        string
	FirstName                 string
	MiddleName                string
	LastName                  string
	DateOfBirth               *time.Time
	Gender                    string
	Nationality               string
	Phone                     string
	Email                     string
	CustomerCardNumber        string
	Country                   string
	StreetAddress             string
	City                      string
	PostalCode                string
	IDType                    string
	IDNumber                  string
	IDIssuanceCountry         string
	IDIssueDate               *time.Time
	IDExpiryDate              *time.Time
	BankAccount               string
	BankCode                  string
	BranchCode                string
	BankName                  string
	BankSwiftCode             string
	BankBranch                string
	AccountBalances           []AccountBalance
	Employer                  string
	Division                  string
	Products                  ClientProducts
	QRCodeData                string
	Status                    ClientStatus
	KYCVerified               bool
	RiskRating                RiskRating
	Currency                  string
	Documents                 []Document
	RelationshipToSender      string
	RelationshipToBeneficiary string
	CreatedAt                 time.Time
	UpdatedAt                 time.Time
}

func (c Client) Name() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{c.FirstName, c.MiddleName, c.LastName} {
		if v := strings.TrimSpace(p); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, " ")
}

// Matches reports whether the lower-cased query is a substring of any of the
// searchable fields.
func (c Client) Matches(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}

	for _, field := range []string{c.Name(), c.Phone, c.ID, c.BankAccount, c.QRCodeData} {
		if field != "" && strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

func SameCountry(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
