package domain

import "time"

type KYCStatus string

const (
	KYCStatusPending  KYCStatus = "pending"
	KYCStatusVerified KYCStatus = "verified"
	KYCStatusRejected KYCStatus = "rejected"
)

// KYCVerification is one identity document a teller captured for a client.
// New records start pending.
type KYCVerification struct {
	ID             string
	ClientID       string
	DocumentType   string
	DocumentNumber string
	IssueDate      time.Time
	ExpiryDate     *time.Time
	Status         KYCStatus
	CreatedBy      string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Expired reports whether the document's expiry date is before the day of now.
func (k KYCVerification) Expired(now time.Time) bool {
	if k.ExpiryDate == nil {
		return false
	}
	y, m, d := now.UTC().Date()
	return k.ExpiryDate.Before(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}
