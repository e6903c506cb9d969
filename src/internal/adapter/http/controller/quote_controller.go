package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/global-remit/teller-desk/src/internal/adapter/http/models"
	"github.com/global-remit/teller-desk/src/internal/commons"
)

type QuoteService interface {
	GetQuote(ctx context.Context, req models.QuoteRequest) (commons.Response[models.QuoteResponse], error)
}

type QuoteController struct {
	service QuoteService
}

func NewQuoteController(service QuoteService) *QuoteController {
	return &QuoteController{service: service}
}

func (c *QuoteController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	mux.Handle("/quotes", protect(c.getQuote, authMiddleware))
}

func (c *QuoteController) getQuote(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	if !allowMethod[models.QuoteResponse](w, r, http.MethodPost, start) {
		return
	}

	var req models.QuoteRequest
	if !decodeBody[models.QuoteResponse](w, r, &req, start) {
		return
	}

	response, err := c.service.GetQuote(r.Context(), req)
	respond(w, r, http.StatusOK, response, err, start)
}
