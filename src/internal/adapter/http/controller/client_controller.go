package controller

import (
	"context"
	"net/http"
	"strings"
	"time"

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
}

type ClientController struct {
	service ClientService
}

func NewClientController(service ClientService) *ClientController {
	return &ClientController{service: service}
}

func (c *ClientController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	mux.Handle("/clients", protect(c.clients, authMiddleware))
	mux.Handle("/clients/search", protect(c.search, authMiddleware))
	mux.Handle("/clients/profile", protect(c.profile, authMiddleware))
	mux.Handle("/clients/history", protect(c.history, authMiddleware))
	mux.Handle("/clients/recent-receivers", protect(c.recentReceivers, authMiddleware))
	mux.Handle("/clients/kyc", protect(c.kyc, authMiddleware))
}

// clients serves GET ?id= for a single client and POST to create or update.
func (c *ClientController) clients(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	switch r.Method {
	case http.MethodGet:
		response, err := c.service.GetClient(r.Context(), queryParam(r, "id"))
		respond(w, r, http.StatusOK, response, err, start)
	case http.MethodPost:
		var req models.ClientRequest
		if !decodeBody[models.ClientResponse](w, r, &req, start) {
			return
		}
		response, err := c.service.SaveClient(r.Context(), req)
		respond(w, r, http.StatusCreated, response, err, start)
	default:
		allowMethod[models.ClientResponse](w, r, http.MethodPost, start)
	}
}

func (c *ClientController) search(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	if !allowMethod[[]models.ClientResponse](w, r, http.MethodGet, start) {
		return
	}

	response, err := c.service.SearchClients(r.Context(), queryParam(r, "q"))
	respond(w, r, http.StatusOK, response, err, start)
}

func (c *ClientController) profile(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	if !allowMethod[models.SenderProfileResponse](w, r, http.MethodGet, start) {
		return
	}

	response, err := c.service.GetSenderProfile(r.Context(), queryParam(r, "id"))
	respond(w, r, http.StatusOK, response, err, start)
}

func (c *ClientController) history(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	if !allowMethod[[]models.TransferResponse](w, r, http.MethodGet, start) {
		return
	}

	role := domain.ClientRole(strings.ToLower(queryParam(r, "role")))
	response, err := c.service.GetHistory(r.Context(), queryParam(r, "id"), role)
	respond(w, r, http.StatusOK, response, err, start)
}

func (c *ClientController) recentReceivers(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	if !allowMethod[[]models.ClientResponse](w, r, http.MethodGet, start) {
		return
	}

	response, err := c.service.RecentReceivers(r.Context(), queryParam(r, "senderId"))
	respond(w, r, http.StatusOK, response, err, start)
}

// kyc serves GET ?clientId= to list verifications and POST to record one.
func (c *ClientController) kyc(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	switch r.Method {
	case http.MethodGet:
		response, err := c.service.ListKYCVerifications(r.Context(), queryParam(r, "clientId"))
		respond(w, r, http.StatusOK, response, err, start)
	case http.MethodPost:
		tellerID, ok := requireTeller[models.KYCVerificationResponse](w, r, start)
		if !ok {
			return
		}
		var req models.KYCVerificationRequest
		if !decodeBody[models.KYCVerificationResponse](w, r, &req, start) {
			return
		}
		response, err := c.service.CreateKYCVerification(r.Context(), tellerID, req)
		respond(w, r, http.StatusCreated, response, err, start)
	default:
		allowMethod[models.KYCVerificationResponse](w, r, http.MethodPost, start)
	}
}
