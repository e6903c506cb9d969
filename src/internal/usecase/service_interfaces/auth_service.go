package service_interfaces

import (
	"context"

	"github.com/global-remit/teller-desk/src/internal/adapter/http/models"
	"github.com/global-remit/teller-desk/src/internal/commons"
	"github.com/global-remit/teller-desk/src/internal/domain"
)

type AuthService interface {
	IssueToken(ctx context.Context, req models.TokenRequest) (commons.Response[models.TokenResponse], error)
	ParseToken(token string) (domain.Teller, error)
}
