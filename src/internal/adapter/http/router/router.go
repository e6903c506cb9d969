package router

import (
	"encoding/json"
	"net/http"

	"github.com/global-remit/teller-desk/src/internal/adapter/http/middleware"
	"github.com/global-remit/teller-desk/src/internal/metrics"
)

type RouteRegistrar interface {
	RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler)
}

// New mounts channel controllers behind channelAuth and teller controllers
// behind tellerAuth. Health, metrics and docs stay open.
func New(
	channelControllers []RouteRegistrar,
	tellerControllers []RouteRegistrar,
	channelAuth func(http.Handler) http.Handler,
	tellerAuth func(http.Handler) http.Handler,
	m *metrics.Metrics,
) http.Handler {
	mux := http.NewServeMux()
	registerSwaggerRoutes(mux)

	mux.HandleFunc("/healthz", healthz)
	mux.Handle("/metrics", m.Handler())

	for _, c := range channelControllers {
		if c != nil {
			c.RegisterRoutes(mux, channelAuth)
		}
	}
	for _, c := range tellerControllers {
		if c != nil {
			c.RegisterRoutes(mux, tellerAuth)
		}
	}

	return middleware.Metrics(m)(mux)
}

func healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
