package memory

import (
	"context"

	"github.com/global-remit/teller-desk/src/internal/adapter/repository/seed"
	"github.com/global-remit/teller-desk/src/internal/domain"
)

type OperatorRepository struct {
	operators []domain.Operator
}

func NewOperatorRepository() *OperatorRepository {
	return &OperatorRepository{operators: seed.Operators()}
}

func (r *OperatorRepository) GetAll(_ context.Context) ([]domain.Operator, error) {
	out := make([]domain.Operator, len(r.operators))
	copy(out, r.operators)
	return out, nil
}
