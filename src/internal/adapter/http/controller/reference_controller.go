package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/global-remit/teller-desk/src/internal/adapter/http/models"
	"github.com/global-remit/teller-desk/src/internal/commons"
)

type ReferenceService interface {
	GetReferenceData(ctx context.Context) (commons.Response[models.ReferenceDataResponse], error)
}

type ReferenceController struct {
	service ReferenceService
}

func NewReferenceController(service ReferenceService) *ReferenceController {
	return &ReferenceController{service: service}
}

func (c *ReferenceController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	mux.Handle("/reference-data", protect(c.getReferenceData, authMiddleware))
}

func (c *ReferenceController) getReferenceData(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	if !allowMethod[models.ReferenceDataResponse](w, r, http.MethodGet, start) {
		return
	}

	response, err := c.service.GetReferenceData(r.Context())
	respond(w, r, http.StatusOK, response, err, start)
}
