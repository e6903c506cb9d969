package controller

import (
	"context"
	"net/http"
	"time"

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

type SendMoneyController struct {
	service SendMoneyService
}

func NewSendMoneyController(service SendMoneyService) *SendMoneyController {
	return &SendMoneyController{service: service}
}

func (c *SendMoneyController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	mux.Handle("/send-money/sessions", protect(c.sessions, authMiddleware))
	mux.Handle("/send-money/sender", protect(tellerAction(c.service.SelectSender, http.StatusOK), authMiddleware))
	mux.Handle("/send-money/receiver", protect(tellerAction(c.service.SelectReceiver, http.StatusOK), authMiddleware))
	mux.Handle("/send-money/form", protect(tellerAction(c.service.UpdateForm, http.StatusOK), authMiddleware))
	mux.Handle("/send-money/navigate", protect(tellerAction(c.service.Navigate, http.StatusOK), authMiddleware))
	mux.Handle("/send-money/submit", protect(tellerAction(c.service.Submit, http.StatusOK), authMiddleware))
	mux.Handle("/send-money/2fa/request", protect(tellerAction(c.service.RequestTwoFactor, http.StatusOK), authMiddleware))
	mux.Handle("/send-money/2fa/verify", protect(tellerAction(c.service.VerifyTwoFactor, http.StatusOK), authMiddleware))
	mux.Handle("/send-money/reuse", protect(tellerAction(c.service.UseTransactionFromHistory, http.StatusOK), authMiddleware))
	mux.Handle("/send-money/reset", protect(tellerAction(c.service.Reset, http.StatusOK), authMiddleware))
}

// sessions serves POST to start a session and GET ?id= to read one.
func (c *SendMoneyController) sessions(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	tellerID, ok := requireTeller[models.SessionResponse](w, r, start)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodPost:
		response, err := c.service.StartSession(r.Context(), tellerID)
		respond(w, r, http.StatusCreated, response, err, start)
	case http.MethodGet:
		response, err := c.service.GetSession(r.Context(), tellerID, queryParam(r, "id"))
		respond(w, r, http.StatusOK, response, err, start)
	default:
		allowMethod[models.SessionResponse](w, r, http.MethodPost, start)
	}
}
