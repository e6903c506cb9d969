package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/global-remit/teller-desk/src/internal/commons"
	"github.com/global-remit/teller-desk/src/internal/domain"
)

type RateRepository struct {
	mu    sync.RWMutex
	rates map[string]domain.Rate
}

func NewRateRepository(seedRates []domain.Rate) *RateRepository {
	r := &RateRepository{rates: make(map[string]domain.Rate, len(seedRates))}
	for _, rate := range seedRates {
		r.rates[rateKey(rate.FromCurrency, rate.ToCurrency)] = rate
	}
	return r
}

func rateKey(from, to string) string {
	return strings.ToUpper(from) + "/" + strings.ToUpper(to)
}

func (r *RateRepository) GetRates(_ context.Context) ([]domain.Rate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Rate, 0, len(r.rates))
	for _, rate := range r.rates {
		out = append(out, rate)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].FromCurrency != out[j].FromCurrency {
			return out[i].FromCurrency < out[j].FromCurrency
		}
		return out[i].ToCurrency < out[j].ToCurrency
	})
	return out, nil
}

func (r *RateRepository) GetRate(_ context.Context, fromCurrency string, toCurrency string) (domain.Rate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rate, ok := r.rates[rateKey(fromCurrency, toCurrency)]
	if !ok {
		return domain.Rate{}, commons.ErrRecordNotFound
	}
	return rate, nil
}
