package models

import (
	"strings"
	"time"

	"github.com/global-remit/teller-desk/src/internal/domain"
)

type ClientRequest struct {
	ID                        string                  `json:"id,omitempty"`
	Role                      string                  `json:"role"`
	FirstName                 string                  `json:"firstName"`
	MiddleName                string                  `json:"middleName,omitempty"`
	LastName                  string                  `json:"lastName"`
	DateOfBirth               string                  `json:"dateOfBirth,omitempty"`
	Gender                    string                  `json:"gender,omitempty"`
	Nationality               string                  `json:"nationality,omitempty"`
	Phone                     string                  `json:"phone,omitempty"`
	Email                     string                  `json:"email,omitempty"`
	CustomerCardNumber        string                  `json:"customerCardNumber,omitempty"`
	Country                   string                  `json:"country,omitempty"`
	StreetAddress             string                  `json:"streetAddress,omitempty"`
	City                      string                  `json:"city,omitempty"`
	PostalCode                string                  `json:"postalCode,omitempty"`
	IDType                    string                  `json:"idType,omitempty"`
	IDNumber                  string                  `json:"idNumber,omitempty"`
	IDIssuanceCountry         string                  `json:"idIssuanceCountry,omitempty"`
	IDIssueDate               string                  `json:"idIssueDate,omitempty"`
	IDExpiryDate              string                  `json:"idExpiryDate,omitempty"`
	BankAccount               string                  `json:"bankAccount,omitempty"`
	BankCode                  string                  `json:"bankCode,omitempty"`
	BranchCode                string                  `json:"branchCode,omitempty"`
	BankName                  string                  `json:"bankName,omitempty"`
	BankSwiftCode             string                  `json:"bankSwiftCode,omitempty"`
	BankBranch                string                  `json:"bankBranch,omitempty"`
	AccountBalances           []domain.AccountBalance `json:"accountBalances,omitempty"`
	Employer                  string                  `json:"employer,omitempty"`
	Division                  string                  `json:"division,omitempty"`
	Products                  domain.ClientProducts   `json:"products"`
	QRCodeData                string                  `json:"qrCodeData,omitempty"`
	Status                    string                  `json:"status,omitempty"`
	KYCVerified               bool                    `json:"kycVerified"`
	RiskRating                string                  `json:"riskRating,omitempty"`
	Currency                  string                  `json:"currency,omitempty"`
	Documents                 []domain.Document       `json:"documents,omitempty"`
	RelationshipToSender      string                  `json:"relationshipToSender,omitempty"`
	RelationshipToBeneficiary string                  `json:"relationshipToBeneficiary,omitempty"`
}

func (r ClientRequest) ClientRole() domain.ClientRole {
	if strings.EqualFold(strings.TrimSpace(r.Role), string(domain.ClientRoleReceiver)) {
		return domain.ClientRoleReceiver
	}
	return domain.ClientRoleSender
}

// Validate applies the sender rules unless Role is receiver; receivers only
// need a name.
func (r ClientRequest) Validate() error {
	var errs validationErrors

	if role := strings.TrimSpace(r.Role); role != "" && !strings.EqualFold(role, string(domain.ClientRoleSender)) &&
		!strings.EqualFold(role, string(domain.ClientRoleReceiver)) {
		errs.add("role must be one of sender, receiver")
	}
	if strings.TrimSpace(r.FirstName) == "" {
		errs.add("firstName is required")
	}
	if strings.TrimSpace(r.LastName) == "" {
		errs.add("lastName is required")
	}

	if r.ClientRole() == domain.ClientRoleSender {
		if strings.TrimSpace(r.Phone) == "" {
			errs.add("phone is required")
		}
		if strings.TrimSpace(r.Country) == "" {
			errs.add("country is required")
		}
		if strings.TrimSpace(r.IDType) == "" {
			errs.add("idType is required")
		}
		if strings.TrimSpace(r.IDNumber) == "" {
			errs.add("idNumber is required")
		}
	}

	for _, date := range []struct{ field, value string }{
		{"dateOfBirth", r.DateOfBirth},
		{"idIssueDate", r.IDIssueDate},
		{"idExpiryDate", r.IDExpiryDate},
	} {
		if v := strings.TrimSpace(date.value); v != "" {
			if _, err := time.Parse(dateLayout, v); err != nil {
				errs.add(date.field + " must be in YYYY-MM-DD format")
			}
		}
	}

	switch domain.ClientStatus(strings.TrimSpace(r.Status)) {
	case "", domain.ClientStatusActive, domain.ClientStatusInactive, domain.ClientStatusBlocked:
	default:
		errs.add("status must be one of Active, Inactive, Blocked")
	}
	switch domain.RiskRating(strings.TrimSpace(r.RiskRating)) {
	case "", domain.RiskRatingLow, domain.RiskRatingMedium, domain.RiskRatingHigh:
	default:
		errs.add("riskRating must be one of Low, Medium, High")
	}
	errs.checkCurrency("currency", r.Currency, false)

	return errs.err()
}

// ToDomain copies the request onto a client. Defaults and id generation are
// left to the caller.
func (r ClientRequest) ToDomain() domain.Client {
	return domain.Client{
		ID:                        strings.TrimSpace(r.ID),
		FirstName:                 strings.TrimSpace(r.FirstName),
		MiddleName:                strings.TrimSpace(r.MiddleName),
		LastName:                  strings.TrimSpace(r.LastName),
		DateOfBirth:               parseDatePtr(r.DateOfBirth),
		Gender:                    strings.TrimSpace(r.Gender),
		Nationality:               strings.TrimSpace(r.Nationality),
		Phone:                     strings.TrimSpace(r.Phone),
		Email:                     strings.TrimSpace(r.Email),
		CustomerCardNumber:        strings.TrimSpace(r.CustomerCardNumber),
		Country:                   strings.TrimSpace(r.Country),
		StreetAddress:             strings.TrimSpace(r.StreetAddress),
		City:                      strings.TrimSpace(r.City),
		PostalCode:                strings.TrimSpace(r.PostalCode),
		IDType:                    strings.TrimSpace(r.IDType),
		IDNumber:                  strings.TrimSpace(r.IDNumber),
		IDIssuanceCountry:         strings.TrimSpace(r.IDIssuanceCountry),
		IDIssueDate:               parseDatePtr(r.IDIssueDate),
		IDExpiryDate:              parseDatePtr(r.IDExpiryDate),
		BankAccount:               strings.TrimSpace(r.BankAccount),
		BankCode:                  strings.TrimSpace(r.BankCode),
		BranchCode:                strings.TrimSpace(r.BranchCode),
		BankName:                  strings.TrimSpace(r.BankName),
		BankSwiftCode:             strings.TrimSpace(r.BankSwiftCode),
		BankBranch:                strings.TrimSpace(r.BankBranch),
		AccountBalances:           r.AccountBalances,
		Employer:                  strings.TrimSpace(r.Employer),
		Division:                  strings.TrimSpace(r.Division),
		Products:                  r.Products,
		QRCodeData:                strings.TrimSpace(r.QRCodeData),
		Status:                    domain.ClientStatus(strings.TrimSpace(r.Status)),
		KYCVerified:               r.KYCVerified,
		RiskRating:                domain.RiskRating(strings.TrimSpace(r.RiskRating)),
		Currency:                  NormalizeCurrency(r.Currency),
		Documents:                 r.Documents,
		RelationshipToSender:      strings.TrimSpace(r.RelationshipToSender),
		RelationshipToBeneficiary: strings.TrimSpace(r.RelationshipToBeneficiary),
	}
}

type ClientResponse struct {
	ID                        string                  `json:"id"`
	Name                      string                  `json:"name"`
	FirstName                 string                  `json:"firstName"`
	MiddleName                string                  `json:"middleName,omitempty"`
	LastName                  string                  `json:"lastName"`
	DateOfBirth               string                  `json:"dateOfBirth,omitempty"`
	Gender                    string                  `json:"gender,omitempty"`
	Nationality               string                  `json:"nationality,omitempty"`
	Phone                     string                  `json:"phone,omitempty"`
	Email                     string                  `json:"email,omitempty"`
	CustomerCardNumber        string                  `json:"customerCardNumber,omitempty"`
	Country                   string                  `json:"country"`
	StreetAddress             string                  `json:"streetAddress,omitempty"`
	City                      string                  `json:"city,omitempty"`
	PostalCode                string                  `json:"postalCode,omitempty"`
	IDType                    string                  `json:"idType,omitempty"`
	IDNumber                  string                  `json:"idNumber,omitempty"`
	IDIssuanceCountry         string                  `json:"idIssuanceCountry,omitempty"`
	IDIssueDate               string                  `json:"idIssueDate,omitempty"`
	IDExpiryDate              string                  `json:"idExpiryDate,omitempty"`
	BankAccount               string                  `json:"bankAccount,omitempty"`
	BankCode                  string                  `json:"bankCode,omitempty"`
	BranchCode                string                  `json:"branchCode,omitempty"`
	BankName                  string                  `json:"bankName,omitempty"`
	BankSwiftCode             string                  `json:"bankSwiftCode,omitempty"`
	BankBranch                string                  `json:"bankBranch,omitempty"`
	AccountBalances           []domain.AccountBalance `json:"accountBalances,omitempty"`
	Employer                  string                  `json:"employer,omitempty"`
	Division                  string                  `json:"division,omitempty"`
	Products                  domain.ClientProducts   `json:"products"`
	QRCodeData                string                  `json:"qrCodeData,omitempty"`
	Status                    string                  `json:"status"`
	KYCVerified               bool                    `json:"kycVerified"`
	RiskRating                string                  `json:"riskRating"`
	Currency                  string                  `json:"currency"`
	Documents                 []domain.Document       `json:"documents,omitempty"`
	RelationshipToSender      string                  `json:"relationshipToSender,omitempty"`
	RelationshipToBeneficiary string                  `json:"relationshipToBeneficiary,omitempty"`
	CreatedAt                 string                  `json:"createdAt,omitempty"`
	UpdatedAt                 string                  `json:"updatedAt,omitempty"`
}

func NewClientResponse(c domain.Client) ClientResponse {
	return ClientResponse{
		ID:                        c.ID,
		Name:                      c.Name(),
		FirstName:                 c.FirstName,
		MiddleName:                c.MiddleName,
		LastName:                  c.LastName,
		DateOfBirth:               formatDatePtr(c.DateOfBirth),
		Gender:                    c.Gender,
		Nationality:               c.Nationality,
		Phone:                     c.Phone,
		Email:                     c.Email,
		CustomerCardNumber:        c.CustomerCardNumber,
		Country:                   c.Country,
		StreetAddress:             c.StreetAddress,
		City:                      c.City,
		PostalCode:                c.PostalCode,
		IDType:                    c.IDType,
		IDNumber:                  c.IDNumber,
		IDIssuanceCountry:         c.IDIssuanceCountry,
		IDIssueDate:               formatDatePtr(c.IDIssueDate),
		IDExpiryDate:              formatDatePtr(c.IDExpiryDate),
		BankAccount:               c.BankAccount,
		BankCode:                  c.BankCode,
		BranchCode:                c.BranchCode,
		BankName:                  c.BankName,
		BankSwiftCode:             c.BankSwiftCode,
		BankBranch:                c.BankBranch,
		AccountBalances:           c.AccountBalances,
		Employer:                  c.Employer,
		Division:                  c.Division,
		Products:                  c.Products,
		QRCodeData:                c.QRCodeData,
		Status:                    string(c.Status),
		KYCVerified:               c.KYCVerified,
		RiskRating:                string(c.RiskRating),
		Currency:                  c.Currency,
		Documents:                 c.Documents,
		RelationshipToSender:      c.RelationshipToSender,
		RelationshipToBeneficiary: c.RelationshipToBeneficiary,
		CreatedAt:                 formatTime(c.CreatedAt),
		UpdatedAt:                 formatTime(c.UpdatedAt),
	}
}

type SenderProfileResponse struct {
	Client          ClientResponse     `json:"client"`
	RecentTransfers []TransferResponse `json:"recentTransfers"`
	RecentReceivers []ClientResponse   `json:"recentReceivers"`
	Limits          LimitsResponse     `json:"limits"`
}

func parseDatePtr(value string) *time.Time {
	v := strings.TrimSpace(value)
	if v == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return nil
	}
	return &t
}

func formatDatePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
