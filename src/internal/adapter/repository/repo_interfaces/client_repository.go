package repo_interfaces

import (
	"context"

	"github.com/global-remit/teller-desk/src/internal/domain"
)

type ClientRepository interface {
	Save(ctx context.Context, client domain.Client) (domain.Client, error)
	GetByID(ctx context.Context, id string) (domain.Client, error)
	Search(ctx context.Context, query string) ([]domain.Client, error)
}
