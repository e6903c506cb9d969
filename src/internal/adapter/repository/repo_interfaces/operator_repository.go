package repo_interfaces

import (
	"context"

	"github.com/global-remit/teller-desk/src/internal/domain"
)

type OperatorRepository interface {
	GetAll(ctx context.Context) ([]domain.Operator, error)
}
