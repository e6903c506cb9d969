package service_interfaces

import (
	"context"

	"github.com/global-remit/teller-desk/src/internal/adapter/http/models"
	"github.com/global-remit/teller-desk/src/internal/commons"
	"github.com/global-remit/teller-desk/src/internal/domain"
)

type ClientService interface {
	SaveClient(ctx context.Context, req models.ClientRequest) (commons.Response[models.ClientResponse], error)
	GetClient(ctx context.Context, id string) (commons.Response[models.ClientResponse], error)
	SearchClients(ctx context.Context, query string) (commons.Response[[]models.ClientResponse], error)
	GetSenderProfile(ctx context.Context, id string) (commons.Response[models.SenderProfileResponse], error)
	GetHistory(ctx context.Context, id string, role domain.ClientRole) (commons.Response[[]models.TransferResponse], error)
	RecentReceivers(ctx context.Context, senderID string) (commons.Response[[]models.ClientResponse], error)
	CreateKYCVerification(ctx context.Context, tellerID string, req models.KYCVerificationRequest) (commons.Response[models.KYCVerificationResponse], error)
	ListKYCVerifications(ctx context.Context, clientID string) (commons.Response[[]models.KYCVerificationResponse], error)

	FindClient(ctx context.Context, id string) (domain.Client, error)
	UpsertClient(ctx context.Context, client domain.Client, role domain.ClientRole) (domain.Client, error)
	RecentReceiverClients(ctx context.Context, senderID string) ([]domain.Client, error)
}
