package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/global-remit/teller-desk/src/internal/commons"
	"github.com/global-remit/teller-desk/src/internal/domain"
	"github.com/global-remit/teller-desk/src/internal/logger"
)

type ClientRepository struct {
	db *sql.DB
}

func NewClientRepository(db *sql.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

const clientColumns = `id, first_name, middle_name, last_name, date_of_birth, gender, nationality, phone, email,
	customer_card_number, country, street_address, city, postal_code, id_type, id_number, id_issuance_country,
	id_issue_date, id_expiry_date, bank_account, bank_code, branch_code, bank_name, bank_swift_code, bank_branch,
	account_balances, employer, division, products, qr_code_data, status, kyc_verified, risk_rating, currency,
	documents, relationship_to_sender, relationship_to_beneficiary, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *ClientRepository) Save(ctx context.Context, client domain.Client) (domain.Client, error) {
	logger.Info("client repository save", logger.Fields{
		"clientId": client.ID,
	})

	balances, err := json.Marshal(nonNilBalances(client.AccountBalances))
	if err != nil {
		return domain.Client{}, fmt.Errorf("marshal account balances: %w", err)
	}
	products, err := json.Marshal(client.Products)
	if err != nil {
		return domain.Client{}, fmt.Errorf("marshal products: %w", err)
	}
	documents, err := json.Marshal(nonNilDocuments(client.Documents))
	if err != nil {
		return domain.Client{}, fmt.Errorf("marshal documents: %w", err)
	}

	const query = `
INSERT INTO clients (
	id, first_name, middle_name, last_name, date_of_birth, gender, nationality, phone, email,
	customer_card_number, country, street_address, city, postal_code, id_type, id_number, id_issuance_country,
	id_issue_date, id_expiry_date, bank_account, bank_code, branch_code, bank_name, bank_swift_code, bank_branch,
	account_balances, employer, division, products, qr_code_data, status, kyc_verified, risk_rating, currency,
	documents, relationship_to_sender, relationship_to_beneficiary
) VALUES (
	$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19,
	$20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30, $31, $32, $33, $34, $35, $36, $37
)
ON CONFLICT (id) DO UPDATE SET
	first_name = EXCLUDED.first_name,
	middle_name = EXCLUDED.middle_name,
	last_name = EXCLUDED.last_name,
	date_of_birth = EXCLUDED.date_of_birth,
	gender = EXCLUDED.gender,
	nationality = EXCLUDED.nationality,
	phone = EXCLUDED.phone,
	email = EXCLUDED.email,
	customer_card_number = EXCLUDED.customer_card_number,
	country = EXCLUDED.country,
	street_address = EXCLUDED.street_address,
	city = EXCLUDED.city,
	postal_code = EXCLUDED.postal_code,
	id_type = EXCLUDED.id_type,
	id_number = EXCLUDED.id_number,
	id_issuance_country = EXCLUDED.id_issuance_country,
	id_issue_date = EXCLUDED.id_issue_date,
	id_expiry_date = EXCLUDED.id_expiry_date,
	bank_account = EXCLUDED.bank_account,
	bank_code = EXCLUDED.bank_code,
	branch_code = EXCLUDED.branch_code,
	bank_name = EXCLUDED.bank_name,
	bank_swift_code = EXCLUDED.bank_swift_code,
	bank_branch = EXCLUDED.bank_branch,
	account_balances = EXCLUDED.account_balances,
	employer = EXCLUDED.employer,
	division = EXCLUDED.division,
	products = EXCLUDED.products,
	qr_code_data = EXCLUDED.qr_code_data,
	status = EXCLUDED.status,
	kyc_verified = EXCLUDED.kyc_verified,
	risk_rating = EXCLUDED.risk_rating,
	currency = EXCLUDED.currency,
	documents = EXCLUDED.documents,
	relationship_to_sender = EXCLUDED.relationship_to_sender,
	relationship_to_beneficiary = EXCLUDED.relationship_to_beneficiary,
	updated_at = NOW()
RETURNING created_at, updated_at`

	if err := r.db.QueryRowContext(
		ctx,
		query,
		client.ID,
		client.FirstName,
		client.MiddleName,
		client.LastName,
		client.DateOfBirth,
		client.Gender,
		client.Nationality,
		client.Phone,
		client.Email,
		client.CustomerCardNumber,
		client.Country,
		client.StreetAddress,
		client.City,
		client.PostalCode,
		client.IDType,
		client.IDNumber,
		client.IDIssuanceCountry,
		client.IDIssueDate,
		client.IDExpiryDate,
		client.BankAccount,
		client.BankCode,
		client.BranchCode,
		client.BankName,
		client.BankSwiftCode,
		client.BankBranch,
		string(balances),
		client.Employer,
		client.Division,
		string(products),
		client.QRCodeData,
		client.Status,
		client.KYCVerified,
		client.RiskRating,
		client.Currency,
		string(documents),
		client.RelationshipToSender,
		client.RelationshipToBeneficiary,
	).Scan(&client.CreatedAt, &client.UpdatedAt); err != nil {
		logger.Error("client repository save failed", err, logger.Fields{
			"clientId": client.ID,
		})
		return domain.Client{}, fmt.Errorf("save client: %w", err)
	}

	logger.Info("client repository save success", logger.Fields{
		"clientId": client.ID,
	})

	return client, nil
}

func (r *ClientRepository) GetByID(ctx context.Context, id string) (domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1`

	client, err := scanClient(r.db.QueryRowContext(ctx, query, strings.TrimSpace(id)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logger.Info("client repository record not found", logger.Fields{
				"clientId": id,
			})
			return domain.Client{}, commons.ErrRecordNotFound
		}
		logger.Error("client repository get failed", err, logger.Fields{
			"clientId": id,
		})
		return domain.Client{}, fmt.Errorf("get client: %w", err)
	}

	return client, nil
}

func (r *ClientRepository) Search(ctx context.Context, query string) ([]domain.Client, error) {
	q := strings.ToLower(strings.TrimSpace(query))

	stmt := `SELECT ` + clientColumns + `
FROM clients
WHERE $1 = ''
   OR strpos(lower(concat_ws(' ', first_name, NULLIF(middle_name, ''), last_name)), $1) > 0
   OR strpos(lower(phone), $1) > 0
   OR strpos(lower(id), $1) > 0
   OR strpos(lower(bank_account), $1) > 0
   OR strpos(lower(qr_code_data), $1) > 0
ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, stmt, q)
	if err != nil {
		logger.Error("client repository search failed", err, logger.Fields{
			"query": query,
		})
		return nil, fmt.Errorf("search clients: %w", err)
	}
	defer rows.Close()

	clients := make([]domain.Client, 0)
	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		clients = append(clients, client)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate clients: %w", err)
	}

	return clients, nil
}

func scanClient(row rowScanner) (domain.Client, error) {
	var (
		client                        domain.Client
		dob, issueDate, expiryDate    sql.NullTime
		balances, products, documents []byte
	)

	if err := row.Scan(
		&client.ID,
		&client.FirstName,
		&client.MiddleName,
		&client.LastName,
		&dob,
		&client.Gender,
		&client.Nationality,
		&client.Phone,
		&client.Email,
		&client.CustomerCardNumber,
		&client.Country,
		&client.StreetAddress,
		&client.City,
		&client.PostalCode,
		&client.IDType,
		&client.IDNumber,
		&client.IDIssuanceCountry,
		&issueDate,
		&expiryDate,
		&client.BankAccount,
		&client.BankCode,
		&client.BranchCode,
		&client.BankName,
		&client.BankSwiftCode,
		&client.BankBranch,
		&balances,
		&client.Employer,
		&client.Division,
		&products,
		&client.QRCodeData,
		&client.Status,
		&client.KYCVerified,
		&client.RiskRating,
		&client.Currency,
		&documents,
		&client.RelationshipToSender,
		&client.RelationshipToBeneficiary,
		&client.CreatedAt,
		&client.UpdatedAt,
	); err != nil {
		return domain.Client{}, err
	}

	client.DateOfBirth = nullTimePtr(dob)
	client.IDIssueDate = nullTimePtr(issueDate)
	client.IDExpiryDate = nullTimePtr(expiryDate)

	if err := json.Unmarshal(balances, &client.AccountBalances); err != nil {
		return domain.Client{}, fmt.Errorf("decode account balances: %w", err)
	}
	if err := json.Unmarshal(products, &client.Products); err != nil {
		return domain.Client{}, fmt.Errorf("decode products: %w", err)
	}
	if err := json.Unmarshal(documents, &client.Documents); err != nil {
		return domain.Client{}, fmt.Errorf("decode documents: %w", err)
	}

	return client, nil
}

func nullTimePtr(value sql.NullTime) *time.Time {
	if !value.Valid {
		return nil
	}
	t := value.Time
	return &t
}

func nonNilBalances(in []domain.AccountBalance) []domain.AccountBalance {
	if in == nil {
		return []domain.AccountBalance{}
	}
	return in
}

func nonNilDocuments(in []domain.Document) []domain.Document {
	if in == nil {
		return []domain.Document{}
	}
	return in
}
