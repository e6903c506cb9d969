package service_interfaces

import (
	"context"

	"github.com/global-remit/teller-desk/src/internal/adapter/http/models"
	"github.com/global-remit/teller-desk/src/internal/commons"
)

type SendMoneyService interface {
	StartSession(ctx context.Context, tellerID string) (commons.Response[models.SessionResponse], error)
	GetSession(ctx context.Context, tellerID string, sessionID string) (commons.Response[models.SessionResponse], error)
	SelectSender(ctx context.Context, tellerID string, req models.SelectPartyRequest) (commons.Response[models.SessionResponse], error)
	SelectReceiver(ctx context.Context, tellerID string, req models.SelectPartyRequest) (commons.Response[models.SessionResponse], error)
	UpdateForm(ctx context.Context, tellerID string, req models.UpdateFormRequest) (commons.Response[models.SessionResponse], error)
	Navigate(ctx context.Context, tellerID string, req models.NavigateRequest) (commons.Response[models.SessionResponse], error)
	Submit(ctx context.Context, tellerID string, req models.SessionRequest) (commons.Response[models.SessionResponse], error)
	RequestTwoFactor(ctx context.Context, tellerID string, req models.SessionRequest) (commons.Response[models.TwoFactorChallengeResponse], error)
	VerifyTwoFactor(ctx context.Context, tellerID string, req models.TwoFactorVerifyRequest) (commons.Response[models.SessionResponse], error)
	UseTransactionFromHistory(ctx context.Context, tellerID string, req models.ReuseTransactionRequest) (commons.Response[models.SessionResponse], error)
	Reset(ctx context.Context, tellerID string, req models.SessionRequest) (commons.Response[models.SessionResponse], error)
}
