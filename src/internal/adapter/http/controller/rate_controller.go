package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/global-remit/teller-desk/src/internal/adapter/http/models"
	"github.com/global-remit/teller-desk/src/internal/commons"
)

type RateService interface {
	GetRates(ctx context.Context) (commons.Response[[]models.RateResponse], error)
	GetRate(ctx context.Context, req models.GetRateRequest) (commons.Response[models.RateResponse], error)
	Convert(ctx context.Context, req models.ConvertRequest) (commons.Response[models.ConvertResponse], error)
}

type RateController struct {
	service RateService
}

func NewRateController(service RateService) *RateController {
	return &RateController{service: service}
}

func (c *RateController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	mux.Handle("/rates", protect(c.getRates, authMiddleware))
	mux.Handle("/rate", protect(c.getRate, authMiddleware))
	mux.Handle("/convert", protect(c.convert, authMiddleware))
}

func (c *RateController) getRates(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	if !allowMethod[[]models.RateResponse](w, r, http.MethodGet, start) {
		return
	}

	response, err := c.service.GetRates(r.Context())
	respond(w, r, http.StatusOK, response, err, start)
}

// getRate reads the pair from ?from=&to=.
func (c *RateController) getRate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	if !allowMethod[models.RateResponse](w, r, http.MethodGet, start) {
		return
	}

	req := models.GetRateRequest{
		FromCurrency: queryParam(r, "from"),
		ToCurrency:   queryParam(r, "to"),
	}
	response, err := c.service.GetRate(r.Context(), req)
	respond(w, r, http.StatusOK, response, err, start)
}

func (c *RateController) convert(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	if !allowMethod[models.ConvertResponse](w, r, http.MethodPost, start) {
		return
	}

	var req models.ConvertRequest
	if !decodeBody[models.ConvertResponse](w, r, &req, start) {
		return
	}

	response, err := c.service.Convert(r.Context(), req)
	respond(w, r, http.StatusOK, response, err, start)
}
