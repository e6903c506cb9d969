package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/global-remit/teller-desk/src/internal/commons"
	"github.com/global-remit/teller-desk/src/internal/domain"
	"github.com/global-remit/teller-desk/src/internal/logger"
)

type RateRepository struct {
	db *sql.DB
}

func NewRateRepository(db *sql.DB) *RateRepository {
	return &RateRepository{db: db}
}

// EnsureRates inserts today's rates for every pair that has none yet.
func (r *RateRepository) EnsureRates(ctx context.Context, rates []domain.Rate) error {
	logger.Info("rate repository ensure rates", logger.Fields{
		"count": len(rates),
	})
	if len(rates) == 0 {
		return nil
	}

	values := make([]string, 0, len(rates))
	args := make([]any, 0, len(rates)*3)
	for i, rate := range rates {
		n := i * 3
		values = append(values, fmt.Sprintf("($%d, $%d, $%d, CURRENT_DATE)", n+1, n+2, n+3))
		args = append(args, rate.FromCurrency, rate.ToCurrency, rate.Rate)
	}

	query := `
INSERT INTO rates (
	from_currency,
	to_currency,
	rate,
	rate_date
) VALUES ` + strings.Join(values, ",\n\t") + `
ON CONFLICT (from_currency, to_currency, rate_date) DO NOTHING`

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		logger.Error("rate repository ensure rates failed", err, nil)
		return fmt.Errorf("ensure rates: %w", err)
	}

	logger.Info("rate repository ensure rates success", nil)
	return nil
}

func (r *RateRepository) GetRates(ctx context.Context) ([]domain.Rate, error) {
	const query = `
SELECT DISTINCT ON (from_currency, to_currency) id, from_currency, to_currency, rate, rate_date, created_at
FROM rates
ORDER BY from_currency ASC, to_currency ASC, rate_date DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.Error("rate repository get rates failed", err, nil)
		return nil, fmt.Errorf("get rates: %w", err)
	}
	defer rows.Close()

	rates := make([]domain.Rate, 0)
	for rows.Next() {
		var rate domain.Rate
		if err := rows.Scan(
			&rate.ID,
			&rate.FromCurrency,
			&rate.ToCurrency,
			&rate.Rate,
			&rate.RateDate,
			&rate.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan rate: %w", err)
		}

		rates = append(rates, rate)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rates: %w", err)
	}

	return rates, nil
}

func (r *RateRepository) GetRate(ctx context.Context, fromCurrency string, toCurrency string) (domain.Rate, error) {
	const query = `
SELECT id, from_currency, to_currency, rate, rate_date, created_at
FROM rates
WHERE from_currency = $1
  AND to_currency = $2
ORDER BY rate_date DESC
LIMIT 1`

	var rate domain.Rate
	if err := r.db.QueryRowContext(ctx, query, fromCurrency, toCurrency).Scan(
		&rate.ID,
		&rate.FromCurrency,
		&rate.ToCurrency,
		&rate.Rate,
		&rate.RateDate,
		&rate.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logger.Info("rate repository record not found", logger.Fields{
				"fromCurrency": fromCurrency,
				"toCurrency":   toCurrency,
			})
			return domain.Rate{}, commons.ErrRecordNotFound
		}
		logger.Error("rate repository get rate failed", err, logger.Fields{
			"fromCurrency": fromCurrency,
			"toCurrency":   toCurrency,
		})
		return domain.Rate{}, fmt.Errorf("get rate: %w", err)
	}

	return rate, nil
}
