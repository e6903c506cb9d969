package router

import (
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/global-remit/teller-desk/src/internal/adapter/http/middleware"
	"github.com/global-remit/teller-desk/src/internal/domain"
	"github.com/global-remit/teller-desk/src/internal/metrics"
)

type registrarStub struct {
	path string
}

func (s registrarStub) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	handler := http.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	if authMiddleware != nil {
		handler = authMiddleware(handler)
	}
	mux.Handle(s.path, handler)
}

type parserStub struct{}

func (parserStub) ParseToken(token string) (domain.Teller, error) {
	if token == "valid" {
		return domain.Teller{ID: "TELLER001", Role: domain.TellerRoleTeller}, nil
	}
	return domain.Teller{}, errors.New("invalid token")
}

func newTestRouter(m *metrics.Metrics) http.Handler {
	return New(
		[]RouteRegistrar{registrarStub{path: "/rates"}},
		[]RouteRegistrar{registrarStub{path: "/till"}},
		middleware.BasicAuth("TellerDesk", "TellerDeskKey001"),
		middleware.TellerAuth(parserStub{}),
		m,
	)
}

func serve(h http.Handler, path string, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestRouterAuthChains(t *testing.T) {
	h := newTestRouter(nil)
	basic := "Basic " + base64.StdEncoding.EncodeToString([]byte("TellerDesk:TellerDeskKey001"))

	assert.Equal(t, http.StatusOK, serve(h, "/healthz", "").Code)
	assert.Equal(t, http.StatusOK, serve(h, "/swagger/openapi.json", "").Code)

	assert.Equal(t, http.StatusUnauthorized, serve(h, "/rates", "").Code)
	assert.Equal(t, http.StatusNoContent, serve(h, "/rates", basic).Code)

	assert.Equal(t, http.StatusUnauthorized, serve(h, "/till", basic).Code)
	assert.Equal(t, http.StatusUnauthorized, serve(h, "/till", "Bearer forged").Code)
	assert.Equal(t, http.StatusNoContent, serve(h, "/till", "Bearer valid").Code)
}

func TestRouterExposesMetrics(t *testing.T) {
	h := newTestRouter(metrics.New())

	serve(h, "/healthz", "")
	serve(h, "/till", "")

	rr := serve(h, "/metrics", "")
	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.True(t, strings.Contains(body, `path="/healthz"`), body)
	assert.True(t, strings.Contains(body, `status="401"`), body)
}
