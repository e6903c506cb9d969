package repo_interfaces

import (
	"context"

	"github.com/global-remit/teller-desk/src/internal/domain"
)

type SessionStore interface {
	Get(ctx context.Context, id string) (domain.SendMoneySession, error)
	Save(ctx context.Context, session domain.SendMoneySession) error
	Delete(ctx context.Context, id string) error
}
