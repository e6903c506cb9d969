package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/global-remit/teller-desk/src/internal/adapter/http/middleware"
	"github.com/global-remit/teller-desk/src/internal/adapter/http/models"
	"github.com/global-remit/teller-desk/src/internal/commons"
)

type TillService interface {
	GetTill(ctx context.Context, tellerID string) (commons.Response[models.TillResponse], error)
	OpenRegister(ctx context.Context, tellerID string, req models.OpenRegisterRequest) (commons.Response[models.RegisterResponse], error)
	RecordMovement(ctx context.Context, tellerID string, req models.CashMovementRequest) (commons.Response[models.RecordMovementResponse], error)
	ListMovements(ctx context.Context, tellerID string, currency string, limit int) (commons.Response[[]models.CashMovementResponse], error)
	PreviewClear(ctx context.Context, tellerID string, req models.ClearPreviewRequest) (commons.Response[[]models.ClearPreviewResponse], error)
	ClearRegister(ctx context.Context, tellerID string, req models.ClearRegisterRequest) (commons.Response[models.ClearRegisterResponse], error)
}

type TillController struct {
	service TillService
}

func NewTillController(service TillService) *TillController {
	return &TillController{service: service}
}

func (c *TillController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	mux.Handle("/till", protect(c.getTill, authMiddleware))
	mux.Handle("/till/open", protect(tellerAction(c.service.OpenRegister, http.StatusCreated), authMiddleware))
	mux.Handle("/till/movements", protect(c.movements, authMiddleware))
	mux.Handle("/till/clear-preview", protect(tellerAction(c.service.PreviewClear, http.StatusOK), authMiddleware))
	mux.Handle("/till/clear", protect(tellerAction(c.service.ClearRegister, http.StatusOK), authMiddleware))
}

func (c *TillController) getTill(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	if !allowMethod[models.TillResponse](w, r, http.MethodGet, start) {
		return
	}
	tellerID, ok := requireTeller[models.TillResponse](w, r, start)
	if !ok {
		return
	}

	// Admins may look at another teller's till.
	if other := queryParam(r, "tellerId"); other != "" && other != tellerID {
		teller, _ := middleware.TellerFromContext(r.Context())
		if !teller.IsAdmin() {
			response := commons.ErrorResponse[models.TillResponse]("forbidden", "admin role required to view another till")
			writeJSON(w, http.StatusForbidden, response)
			logResponse(r, http.StatusForbidden, response, start)
			return
		}
		tellerID = other
	}

	response, err := c.service.GetTill(r.Context(), tellerID)
	respond(w, r, http.StatusOK, response, err, start)
}

// movements serves GET ?currency=&limit= for the ledger and POST to record
// a manual add or remove.
func (c *TillController) movements(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	tellerID, ok := requireTeller[models.RecordMovementResponse](w, r, start)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		response, err := c.service.ListMovements(r.Context(), tellerID, queryParam(r, "currency"), queryInt(r, "limit", 100))
		respond(w, r, http.StatusOK, response, err, start)
	case http.MethodPost:
		var req models.CashMovementRequest
		if !decodeBody[models.RecordMovementResponse](w, r, &req, start) {
			return
		}
		response, err := c.service.RecordMovement(r.Context(), tellerID, req)
		respond(w, r, http.StatusCreated, response, err, start)
	default:
		allowMethod[models.RecordMovementResponse](w, r, http.MethodPost, start)
	}
}
