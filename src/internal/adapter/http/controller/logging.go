package controller

import (
	"net/http"
	"time"

	"github.com/global-remit/teller-desk/src/internal/adapter/http/middleware"
	"github.com/global-remit/teller-desk/src/internal/logger"
)

func logRequest(r *http.Request, payload any) {
	logger.Info("http request", withTeller(r, logger.Fields{
		"method":  r.Method,
		"path":    r.URL.Path,
		"query":   r.URL.RawQuery,
		"payload": logger.SanitizePayload(payload),
	}))
}

func logResponse(r *http.Request, status int, payload any, start time.Time) {
	logger.Info("http response", withTeller(r, logger.Fields{
		"method":     r.Method,
		"path":       r.URL.Path,
		"status":     status,
		"durationMs": time.Since(start).Milliseconds(),
		"response":   logger.SanitizePayload(payload),
	}))
}

func logError(r *http.Request, err error, extra logger.Fields) {
	fields := logger.Fields{
		"method": r.Method,
		"path":   r.URL.Path,
		"query":  r.URL.RawQuery,
	}
	for k, v := range extra {
		fields[k] = v
	}
	logger.Error("http handler error", err, withTeller(r, fields))
}

func withTeller(r *http.Request, fields logger.Fields) logger.Fields {
	if teller, ok := middleware.TellerFromContext(r.Context()); ok {
		fields["tellerId"] = teller.ID
	}
	return fields
}
