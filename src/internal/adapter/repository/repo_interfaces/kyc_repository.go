package repo_interfaces

import (
	"context"

	"github.com/global-remit/teller-desk/src/internal/domain"
)

type KYCRepository interface {
	Create(ctx context.Context, verification domain.KYCVerification) (domain.KYCVerification, error)
	// List returns newest first. An empty clientID lists every client.
	List(ctx context.Context, clientID string) ([]domain.KYCVerification, error)
}
