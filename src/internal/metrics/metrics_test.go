package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsCountersIncrement(t *testing.T) {
	m := New()

	m.TransferFinished("COMPLETED")
	m.TransferFinished("COMPLETED")
	m.TransferFinished("FAILED")
	m.DispatchAttempt(false)
	m.SessionStarted()

	assert.Equal(t, float64(2), testutil.ToFloat64(m.transfers.WithLabelValues("COMPLETED")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.transfers.WithLabelValues("FAILED")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.dispatches.WithLabelValues("failure")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.sessionsStarted))
}

func TestMetricsHandlerExposesHTTPCounters(t *testing.T) {
	m := New()
	m.ObserveHTTP(http.MethodGet, "/rates", http.StatusOK, 15*time.Millisecond)

	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, strings.Contains(rr.Body.String(), `teller_desk_http_requests_total{method="GET",path="/rates",status="200"} 1`))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.TransferFinished("COMPLETED")
	m.DispatchAttempt(true)
	m.SessionStarted()
	m.TillMovement("add", "USD")
	m.ObserveHTTP(http.MethodGet, "/", http.StatusOK, time.Millisecond)
}
