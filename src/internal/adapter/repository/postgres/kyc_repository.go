package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/global-remit/teller-desk/src/internal/domain"
	"github.com/global-remit/teller-desk/src/internal/logger"
)

type KYCRepository struct {
	db *sql.DB
}

func NewKYCRepository(db *sql.DB) *KYCRepository {
	return &KYCRepository{db: db}
}

const kycColumns = `id, client_id, document_type, document_number, issue_date, expiry_date, status, created_by, created_at, updated_at`

func (r *KYCRepository) Create(ctx context.Context, verification domain.KYCVerification) (domain.KYCVerification, error) {
	logger.Info("kyc repository create", logger.Fields{
		"clientId": verification.ClientID,
	})

	const query = `
INSERT INTO kyc_verifications (client_id, document_type, document_number, issue_date, expiry_date, status, created_by)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING ` + kycColumns

	row := r.db.QueryRowContext(ctx, query,
		verification.ClientID,
		verification.DocumentType,
		verification.DocumentNumber,
		verification.IssueDate,
		verification.ExpiryDate,
		string(verification.Status),
		verification.CreatedBy,
	)

	created, err := scanKYCVerification(row)
	if err != nil {
		logger.Error("kyc repository create failed", err, logger.Fields{
			"clientId": verification.ClientID,
		})
		return domain.KYCVerification{}, fmt.Errorf("insert kyc verification: %w", err)
	}
	return created, nil
}

func (r *KYCRepository) List(ctx context.Context, clientID string) ([]domain.KYCVerification, error) {
	const query = `
SELECT ` + kycColumns + `
FROM kyc_verifications
WHERE ($1 = '' OR client_id = $1)
ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, strings.TrimSpace(clientID))
	if err != nil {
		logger.Error("kyc repository list failed", err, logger.Fields{
			"clientId": clientID,
		})
		return nil, fmt.Errorf("list kyc verifications: %w", err)
	}
	defer rows.Close()

	verifications := make([]domain.KYCVerification, 0)
	for rows.Next() {
		v, err := scanKYCVerification(rows)
		if err != nil {
			return nil, fmt.Errorf("scan kyc verification: %w", err)
		}
		verifications = append(verifications, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate kyc verifications: %w", err)
	}

	return verifications, nil
}

func scanKYCVerification(row rowScanner) (domain.KYCVerification, error) {
	var (
		v      domain.KYCVerification
		expiry sql.NullTime
		status string
	)
	if err := row.Scan(&v.ID, &v.ClientID, &v.DocumentType, &v.DocumentNumber, &v.IssueDate, &expiry, &status,
		&v.CreatedBy, &v.CreatedAt, &v.UpdatedAt); err != nil {
		return domain.KYCVerification{}, err
	}
	v.Status = domain.KYCStatus(status)
	v.ExpiryDate = nullTimePtr(expiry)
	return v, nil
}
