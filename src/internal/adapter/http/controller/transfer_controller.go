package controller

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/global-remit/teller-desk/src/internal/adapter/http/models"
	"github.com/global-remit/teller-desk/src/internal/commons"
	"github.com/global-remit/teller-desk/src/internal/logger"
)

type TransferService interface {
	GetTransfer(ctx context.Context, reference string) (commons.Response[models.TransferResponse], error)
	GetReceipt(ctx context.Context, reference string) (commons.Response[models.ReceiptResponse], error)
	RemainingLimits(ctx context.Context, senderID string) (commons.Response[models.LimitsResponse], error)
}

type TransferController struct {
	service TransferService
}

func NewTransferController(service TransferService) *TransferController {
	return &TransferController{service: service}
}

func (c *TransferController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	mux.Handle("/transfers", protect(c.getTransfer, authMiddleware))
	mux.Handle("/transfers/receipt", protect(c.getReceipt, authMiddleware))
	mux.Handle("/transfers/limits", protect(c.getLimits, authMiddleware))
}

func (c *TransferController) getTransfer(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	if !allowMethod[models.TransferResponse](w, r, http.MethodGet, start) {
		return
	}

	response, err := c.service.GetTransfer(r.Context(), queryParam(r, "reference"))
	respond(w, r, http.StatusOK, response, err, start)
}

// getReceipt streams the PDF receipt of a completed transfer. Failures are
// answered in JSON like every other endpoint.
func (c *TransferController) getReceipt(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	if !allowMethod[models.ReceiptResponse](w, r, http.MethodGet, start) {
		return
	}

	response, err := c.service.GetReceipt(r.Context(), queryParam(r, "reference"))
	if err != nil || response.Data == nil {
		respond(w, r, http.StatusOK, response, err, start)
		return
	}

	receipt := response.Data
	w.Header().Set("Content-Type", receipt.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+receipt.FileName+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(receipt.Content)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(receipt.Content); err != nil {
		logError(r, err, logger.Fields{"reference": receipt.Reference})
	}
	logResponse(r, http.StatusOK, logger.Fields{
		"reference": receipt.Reference,
		"fileName":  receipt.FileName,
		"bytes":     len(receipt.Content),
	}, start)
}

func (c *TransferController) getLimits(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	if !allowMethod[models.LimitsResponse](w, r, http.MethodGet, start) {
		return
	}

	response, err := c.service.RemainingLimits(r.Context(), queryParam(r, "senderId"))
	respond(w, r, http.StatusOK, response, err, start)
}
