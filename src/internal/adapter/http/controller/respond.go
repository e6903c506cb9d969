package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/global-remit/teller-desk/src/internal/adapter/http/middleware"
	"github.com/global-remit/teller-desk/src/internal/commons"
	"github.com/global-remit/teller-desk/src/internal/logger"
	"github.com/global-remit/teller-desk/src/internal/usecase/services"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// statusFor maps a failed service response message to its HTTP status.
func statusFor(message string) int {
	switch message {
	case "validation failed", "invalid request body":
		return http.StatusBadRequest
	case "unauthorized":
		return http.StatusUnauthorized
	case "forbidden":
		return http.StatusForbidden
	case "Client not found", "Transfer not found", "Rate not found", "Rate not found for currency pair",
		"Register not found", services.MsgSessionNotFound:
		return http.StatusNotFound
	case "Register already open":
		return http.StatusConflict
	case "Insufficient balance", services.MsgStepIncomplete, services.MsgTransferRejected,
		services.MsgTwoFactorRequired, services.MsgTwoFactorFailed:
		return http.StatusUnprocessableEntity
	case services.MsgTransferFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// allowMethod writes 405 and returns false when r does not use method.
func allowMethod[T any](w http.ResponseWriter, r *http.Request, method string, start time.Time) bool {
	if r.Method == method {
		return true
	}
	response := commons.ErrorResponse[T]("method not allowed")
	writeJSON(w, http.StatusMethodNotAllowed, response)
	logResponse(r, http.StatusMethodNotAllowed, response, start)
	return false
}

// decodeBody reads a JSON body into req. On failure it writes 400 and
// returns false.
func decodeBody[T any](w http.ResponseWriter, r *http.Request, req any, start time.Time) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[T]("invalid request body", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return false
	}
	logRequest(r, req)
	return true
}

// requireTeller returns the authenticated teller id. A request that reached
// a teller route without one is answered with 401.
func requireTeller[T any](w http.ResponseWriter, r *http.Request, start time.Time) (string, bool) {
	teller, ok := middleware.TellerFromContext(r.Context())
	if !ok {
		response := commons.ErrorResponse[T]("unauthorized", "bearer token required")
		writeJSON(w, http.StatusUnauthorized, response)
		logResponse(r, http.StatusUnauthorized, response, start)
		return "", false
	}
	return teller.ID, true
}

func respond[T any](w http.ResponseWriter, r *http.Request, okStatus int, response commons.Response[T], err error, start time.Time) {
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message})
		status := statusFor(response.Message)
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	writeJSON(w, okStatus, response)
	logResponse(r, okStatus, response, start)
}

// tellerAction adapts a teller scoped operation taking a JSON body to a POST
// handler.
func tellerAction[Req any, Resp any](call func(ctx context.Context, tellerID string, req Req) (commons.Response[Resp], error), okStatus int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		logRequest(r, nil)

		if !allowMethod[Resp](w, r, http.MethodPost, start) {
			return
		}
		tellerID, ok := requireTeller[Resp](w, r, start)
		if !ok {
			return
		}

		var req Req
		if !decodeBody[Resp](w, r, &req, start) {
			return
		}

		response, err := call(r.Context(), tellerID, req)
		respond(w, r, okStatus, response, err, start)
	}
}

func protect(handler http.HandlerFunc, authMiddleware func(http.Handler) http.Handler) http.Handler {
	if authMiddleware != nil {
		handler = authMiddleware(handler).ServeHTTP
	}
	return http.HandlerFunc(handler)
}

func queryParam(r *http.Request, name string) string {
	return strings.TrimSpace(r.URL.Query().Get(name))
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := queryParam(r, name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}
