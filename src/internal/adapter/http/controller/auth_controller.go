package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/global-remit/teller-desk/src/internal/adapter/http/models"
	"github.com/global-remit/teller-desk/src/internal/commons"
)

type AuthService interface {
	IssueToken(ctx context.Context, req models.TokenRequest) (commons.Response[models.TokenResponse], error)
}

type AuthController struct {
	service AuthService
}

func NewAuthController(service AuthService) *AuthController {
	return &AuthController{service: service}
}

// RegisterRoutes mounts the token endpoint behind channel auth.
func (c *AuthController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	mux.Handle("/auth/token", protect(c.issueToken, authMiddleware))
}

func (c *AuthController) issueToken(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	if !allowMethod[models.TokenResponse](w, r, http.MethodPost, start) {
		return
	}

	var req models.TokenRequest
	if !decodeBody[models.TokenResponse](w, r, &req, start) {
		return
	}

	response, err := c.service.IssueToken(r.Context(), req)
	respond(w, r, http.StatusCreated, response, err, start)
}
