package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/global-remit/teller-desk/src/internal/adapter/http/models"
	"github.com/global-remit/teller-desk/src/internal/adapter/repository/repo_interfaces"
	"github.com/global-remit/teller-desk/src/internal/commons"
	"github.com/global-remit/teller-desk/src/internal/domain"
	"github.com/global-remit/teller-desk/src/internal/logger"
	"github.com/global-remit/teller-desk/src/internal/usecase/service_interfaces"
)

var _ service_interfaces.ClientService = (*ClientService)(nil)

const (
	recentReceiversLimit = 10
	profileTransfersSize = 10
)

type ClientService struct {
	clientRepo      repo_interfaces.ClientRepository
	kycRepo         repo_interfaces.KYCRepository
	transferRepo    repo_interfaces.TransferRepository
	transferService service_interfaces.TransferService
	defaultCurrency string
	now             func() time.Time
}

func NewClientService(
	clientRepo repo_interfaces.ClientRepository,
	kycRepo repo_interfaces.KYCRepository,
	transferRepo repo_interfaces.TransferRepository,
	transferService service_interfaces.TransferService,
	defaultCurrency string,
) *ClientService {
	return &ClientService{
		clientRepo:      clientRepo,
		kycRepo:         kycRepo,
		transferRepo:    transferRepo,
		transferService: transferService,
		defaultCurrency: models.NormalizeCurrency(defaultCurrency),
		now:             time.Now,
	}
}

func (s *ClientService) SaveClient(ctx context.Context, req models.ClientRequest) (commons.Response[models.ClientResponse], error) {
	logger.Info("client service save client request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("client service save client validation failed", err, nil)
		return commons.ErrorResponse[models.ClientResponse]("validation failed", err.Error()), err
	}

	saved, err := s.UpsertClient(ctx, req.ToDomain(), req.ClientRole())
	if err != nil {
		return commons.ErrorResponse[models.ClientResponse]("failed to save client", "Unable to save client right now"), err
	}

	logger.Info("client service save client success", logger.Fields{
		"clientId": saved.ID,
		"role":     req.ClientRole(),
	})

	return commons.SuccessResponse("client saved successfully", models.NewClientResponse(saved)), nil
}

// UpsertClient fills the role defaults, generates an id when none is given and
// replaces any existing record with the same id.
func (s *ClientService) UpsertClient(ctx context.Context, client domain.Client, role domain.ClientRole) (domain.Client, error) {
	if client.ID == "" {
		id, err := s.generateClientID(ctx, role)
		if err != nil {
			logger.Error("client service generate id failed", err, nil)
			return domain.Client{}, err
		}
		client.ID = id
	}

	if client.Status == "" {
		client.Status = domain.ClientStatusActive
	}
	if client.RiskRating == "" {
		client.RiskRating = domain.RiskRatingMedium
		if role == domain.ClientRoleReceiver {
			client.RiskRating = domain.RiskRatingLow
		}
	}
	if client.Currency == "" {
		client.Currency = s.defaultCurrency
	}

	saved, err := s.clientRepo.Save(ctx, client)
	if err != nil {
		logger.Error("client service upsert failed", err, logger.Fields{
			"clientId": client.ID,
		})
		return domain.Client{}, err
	}
	return saved, nil
}

func (s *ClientService) generateClientID(ctx context.Context, role domain.ClientRole) (string, error) {
	prefix := "CUST"
	if role == domain.ClientRoleReceiver {
		prefix = "RCVR"
	}

	stamp := s.now().UnixMilli()
	for attempt := 0; attempt < 5; attempt++ {
		id := fmt.Sprintf("%s%d", prefix, stamp+int64(attempt))
		_, err := s.clientRepo.GetByID(ctx, id)
		if errors.Is(err, commons.ErrRecordNotFound) {
			return id, nil
		}
		if err != nil {
			return "", err
		}
	}
	return "", fmt.Errorf("generate client id: %w", commons.ErrAlreadyExists)
}

func (s *ClientService) GetClient(ctx context.Context, id string) (commons.Response[models.ClientResponse], error) {
	logger.Info("client service get client request", logger.Fields{
		"clientId": id,
	})

	client, err := s.FindClient(ctx, id)
	if err != nil {
		return clientErrorResponse[models.ClientResponse](err, "failed to get client", "Unable to fetch client right now"), err
	}

	return commons.SuccessResponse("client fetched successfully", models.NewClientResponse(client)), nil
}

func (s *ClientService) FindClient(ctx context.Context, id string) (domain.Client, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.Client{}, newValidationError("id is required")
	}

	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		logger.Error("client service find client failed", err, logger.Fields{
			"clientId": id,
		})
		return domain.Client{}, err
	}
	return client, nil
}

func (s *ClientService) SearchClients(ctx context.Context, query string) (commons.Response[[]models.ClientResponse], error) {
	logger.Info("client service search clients request", logger.Fields{
		"query": query,
	})

	clients, err := s.clientRepo.Search(ctx, query)
	if err != nil {
		logger.Error("client service search clients failed", err, nil)
		return commons.ErrorResponse[[]models.ClientResponse]("failed to search clients", "Unable to search clients right now"), err
	}

	resp := make([]models.ClientResponse, 0, len(clients))
	for _, c := range clients {
		resp = append(resp, models.NewClientResponse(c))
	}

	logger.Info("client service search clients success", logger.Fields{
		"count": len(resp),
	})

	return commons.SuccessResponse("clients fetched successfully", resp), nil
}

// GetSenderProfile loads the client, recent transfers, recent receivers and
// remaining limits concurrently.
func (s *ClientService) GetSenderProfile(ctx context.Context, id string) (commons.Response[models.SenderProfileResponse], error) {
	logger.Info("client service get sender profile request", logger.Fields{
		"clientId": id,
	})

	var (
		client    domain.Client
		transfers []domain.Transfer
		receivers []domain.Client
		limits    domain.TransferLimits
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		client, err = s.FindClient(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		transfers, err = s.transferRepo.ListBySender(gctx, strings.TrimSpace(id), profileTransfersSize)
		return err
	})
	g.Go(func() error {
		var err error
		receivers, err = s.RecentReceiverClients(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		limits, err = s.transferService.Limits(gctx, strings.TrimSpace(id))
		return err
	})

	if err := g.Wait(); err != nil {
		logger.Error("client service get sender profile failed", err, logger.Fields{
			"clientId": id,
		})
		return clientErrorResponse[models.SenderProfileResponse](err, "failed to get sender profile", "Unable to fetch sender profile right now"), err
	}

	receiverResp := make([]models.ClientResponse, 0, len(receivers))
	for _, r := range receivers {
		receiverResp = append(receiverResp, models.NewClientResponse(r))
	}

	response := models.SenderProfileResponse{
		Client:          models.NewClientResponse(client),
		RecentTransfers: models.NewTransferResponses(transfers),
		RecentReceivers: receiverResp,
		Limits:          models.NewLimitsResponse(limits),
	}

	logger.Info("client service get sender profile success", logger.Fields{
		"clientId":        client.ID,
		"recentTransfers": len(response.RecentTransfers),
		"recentReceivers": len(response.RecentReceivers),
	})

	return commons.SuccessResponse("sender profile fetched successfully", response), nil
}

func (s *ClientService) GetHistory(ctx context.Context, id string, role domain.ClientRole) (commons.Response[[]models.TransferResponse], error) {
	logger.Info("client service get history request", logger.Fields{
		"clientId": id,
		"role":     role,
	})

	id = strings.TrimSpace(id)
	if id == "" {
		err := newValidationError("id is required")
		return commons.ErrorResponse[[]models.TransferResponse]("validation failed", err.Error()), err
	}

	var (
		transfers []domain.Transfer
		err       error
	)
	switch role {
	case domain.ClientRoleReceiver:
		transfers, err = s.transferRepo.ListByReceiver(ctx, id, 0)
	case domain.ClientRoleSender, "":
		transfers, err = s.transferRepo.ListBySender(ctx, id, 0)
	default:
		err = newValidationError("role must be one of sender, receiver")
		return commons.ErrorResponse[[]models.TransferResponse]("validation failed", err.Error()), err
	}
	if err != nil {
		logger.Error("client service get history failed", err, logger.Fields{
			"clientId": id,
		})
		return commons.ErrorResponse[[]models.TransferResponse]("failed to get history", "Unable to fetch history right now"), err
	}

	logger.Info("client service get history success", logger.Fields{
		"clientId": id,
		"count":    len(transfers),
	})

	return commons.SuccessResponse("history fetched successfully", models.NewTransferResponses(transfers)), nil
}

func (s *ClientService) RecentReceivers(ctx context.Context, senderID string) (commons.Response[[]models.ClientResponse], error) {
	logger.Info("client service recent receivers request", logger.Fields{
		"senderId": senderID,
	})

	receivers, err := s.RecentReceiverClients(ctx, senderID)
	if err != nil {
		return clientErrorResponse[[]models.ClientResponse](err, "failed to get recent receivers", "Unable to fetch recent receivers right now"), err
	}

	resp := make([]models.ClientResponse, 0, len(receivers))
	for _, r := range receivers {
		resp = append(resp, models.NewClientResponse(r))
	}

	return commons.SuccessResponse("recent receivers fetched successfully", resp), nil
}

// RecentReceiverClients returns the distinct receivers of the sender's
// transfers, newest first. Receivers whose record is gone are skipped.
func (s *ClientService) RecentReceiverClients(ctx context.Context, senderID string) ([]domain.Client, error) {
	senderID = strings.TrimSpace(senderID)
	if senderID == "" {
		return nil, newValidationError("senderId is required")
	}

	transfers, err := s.transferRepo.ListBySender(ctx, senderID, 0)
	if err != nil {
		logger.Error("client service list sender transfers failed", err, logger.Fields{
			"senderId": senderID,
		})
		return nil, err
	}

	seen := make(map[string]struct{}, len(transfers))
	receivers := make([]domain.Client, 0, recentReceiversLimit)
	for _, t := range transfers {
		if len(receivers) == recentReceiversLimit {
			break
		}
		if _, ok := seen[t.ReceiverID]; ok {
			continue
		}
		seen[t.ReceiverID] = struct{}{}

		receiver, err := s.clientRepo.GetByID(ctx, t.ReceiverID)
		if err != nil {
			if errors.Is(err, commons.ErrRecordNotFound) {
				logger.Warn("client service recent receiver missing", logger.Fields{
					"receiverId": t.ReceiverID,
					"reference":  t.Reference,
				})
				continue
			}
			return nil, err
		}
		receivers = append(receivers, receiver)
	}

	return receivers, nil
}

// CreateKYCVerification records a pending identity check for an existing
// client. Documents already past their expiry date are refused.
func (s *ClientService) CreateKYCVerification(ctx context.Context, tellerID string, req models.KYCVerificationRequest) (commons.Response[models.KYCVerificationResponse], error) {
	logger.Info("client service create kyc verification request", logger.Fields{
		"tellerId": tellerID,
		"clientId": req.ClientID,
	})

	if err := req.Validate(); err != nil {
		logger.Error("client service create kyc verification validation failed", err, nil)
		return commons.ErrorResponse[models.KYCVerificationResponse]("validation failed", err.Error()), err
	}

	client, err := s.FindClient(ctx, req.ClientID)
	if err != nil {
		return clientErrorResponse[models.KYCVerificationResponse](err, "failed to create kyc verification", "Unable to record verification right now"), err
	}

	verification := req.ToDomain()
	now := s.now()
	if verification.Expired(now) {
		err := newValidationError("document has expired")
		return commons.ErrorResponse[models.KYCVerificationResponse]("validation failed", err.Error()), err
	}
	verification.ClientID = client.ID
	verification.CreatedBy = tellerID

	created, err := s.kycRepo.Create(ctx, verification)
	if err != nil {
		logger.Error("client service create kyc verification failed", err, logger.Fields{
			"clientId": client.ID,
		})
		return commons.ErrorResponse[models.KYCVerificationResponse]("failed to create kyc verification", "Unable to record verification right now"), err
	}

	logger.Info("client service create kyc verification success", logger.Fields{
		"verificationId": created.ID,
		"clientId":       created.ClientID,
		"documentType":   created.DocumentType,
	})

	return commons.SuccessResponse("kyc verification created successfully", models.NewKYCVerificationResponse(created, now)), nil
}

// ListKYCVerifications returns a client's verifications, newest first, or
// every verification when clientID is empty.
func (s *ClientService) ListKYCVerifications(ctx context.Context, clientID string) (commons.Response[[]models.KYCVerificationResponse], error) {
	logger.Info("client service list kyc verifications request", logger.Fields{
		"clientId": clientID,
	})

	clientID = strings.TrimSpace(clientID)
	if clientID != "" {
		if _, err := s.FindClient(ctx, clientID); err != nil {
			return clientErrorResponse[[]models.KYCVerificationResponse](err, "failed to get kyc verifications", "Unable to fetch verifications right now"), err
		}
	}

	verifications, err := s.kycRepo.List(ctx, clientID)
	if err != nil {
		logger.Error("client service list kyc verifications failed", err, logger.Fields{
			"clientId": clientID,
		})
		return commons.ErrorResponse[[]models.KYCVerificationResponse]("failed to get kyc verifications", "Unable to fetch verifications right now"), err
	}

	now := s.now()
	resp := make([]models.KYCVerificationResponse, 0, len(verifications))
	for _, v := range verifications {
		resp = append(resp, models.NewKYCVerificationResponse(v, now))
	}

	return commons.SuccessResponse("kyc verifications fetched successfully", resp), nil
}

func clientErrorResponse[T any](err error, message string, detail string) commons.Response[T] {
	if errors.Is(err, commons.ErrRecordNotFound) {
		return commons.ErrorResponse[T]("Client not found")
	}
	if isValidationError(err) {
		return commons.ErrorResponse[T]("validation failed", err.Error())
	}
	return commons.ErrorResponse[T](message, detail)
}
