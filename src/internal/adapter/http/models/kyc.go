package models

import (
	"strings"
	"time"

	"github.com/global-remit/teller-desk/src/internal/domain"
)

type KYCVerificationRequest struct {
	ClientID       string `json:"clientId"`
	DocumentType   string `json:"documentType"`
	DocumentNumber string `json:"documentNumber"`
	IssueDate      string `json:"issueDate"`
	ExpiryDate     string `json:"expiryDate,omitempty"`
}

func (r KYCVerificationRequest) Validate() error {
	var errs validationErrors

	if strings.TrimSpace(r.ClientID) == "" {
		errs.add("clientId is required")
	}
	if strings.TrimSpace(r.DocumentType) == "" {
		errs.add("documentType is required")
	}
	if strings.TrimSpace(r.DocumentNumber) == "" {
		errs.add("documentNumber is required")
	}

	issue, issueErr := time.Parse(dateLayout, strings.TrimSpace(r.IssueDate))
	if strings.TrimSpace(r.IssueDate) == "" {
		errs.add("issueDate is required")
	} else if issueErr != nil {
		errs.add("issueDate must be in YYYY-MM-DD format")
	}

	if v := strings.TrimSpace(r.ExpiryDate); v != "" {
		expiry, err := time.Parse(dateLayout, v)
		switch {
		case err != nil:
			errs.add("expiryDate must be in YYYY-MM-DD format")
		case issueErr == nil && !expiry.After(issue):
			errs.add("expiryDate must be after issueDate")
		}
	}

	return errs.err()
}

func (r KYCVerificationRequest) ToDomain() domain.KYCVerification {
	issue, _ := time.Parse(dateLayout, strings.TrimSpace(r.IssueDate))
	return domain.KYCVerification{
		ClientID:       strings.TrimSpace(r.ClientID),
		DocumentType:   strings.TrimSpace(r.DocumentType),
		DocumentNumber: strings.TrimSpace(r.DocumentNumber),
		IssueDate:      issue,
		ExpiryDate:     parseDatePtr(r.ExpiryDate),
		Status:         domain.KYCStatusPending,
	}
}

type KYCVerificationResponse struct {
	ID             string `json:"id"`
	ClientID       string `json:"clientId"`
	DocumentType   string `json:"documentType"`
	DocumentNumber string `json:"documentNumber"`
	IssueDate      string `json:"issueDate"`
	ExpiryDate     string `json:"expiryDate,omitempty"`
	Status         string `json:"status"`
	Expired        bool   `json:"expired"`
	CreatedBy      string `json:"createdBy,omitempty"`
	CreatedAt      string `json:"createdAt"`
}

func NewKYCVerificationResponse(v domain.KYCVerification, now time.Time) KYCVerificationResponse {
	return KYCVerificationResponse{
		ID:             v.ID,
		ClientID:       v.ClientID,
		DocumentType:   v.DocumentType,
		DocumentNumber: v.DocumentNumber,
		IssueDate:      v.IssueDate.Format(dateLayout),
		ExpiryDate:     formatDatePtr(v.ExpiryDate),
		Status:         string(v.Status),
		Expired:        v.Expired(now),
		CreatedBy:      v.CreatedBy,
		CreatedAt:      formatTime(v.CreatedAt),
	}
}
