package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestPrometheusGatewayCounters(t *testing.T) {
	p := NewPrometheus(prometheus.NewRegistry())

	p.ObserveGateway("transactions", "query", 3*time.Millisecond, nil)
	p.ObserveGateway("transactions", "query", time.Millisecond, nil)
	p.ObserveGateway("transactions", "insert", time.Millisecond, errors.New("boom"))

	assert.Equal(t, 2.0, testutil.ToFloat64(p.gatewayOps.WithLabelValues("transactions", "query", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.gatewayOps.WithLabelValues("transactions", "insert", "error")))
}

func TestPrometheusPurgedCounter(t *testing.T) {
	p := NewPrometheus(prometheus.NewRegistry())

	p.RecommendationsPurged(3)
	p.RecommendationsPurged(2)

	assert.Equal(t, 5.0, testutil.ToFloat64(p.purged))
}

func TestMiddlewareUsesRoutePattern(t *testing.T) {
	p := NewPrometheus(prometheus.NewRegistry())

	r := chi.NewRouter()
	r.Use(Middleware(p))
	r.Get("/api/goals/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/goals/123", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, 1.0, testutil.ToFloat64(p.httpRequests.WithLabelValues("GET", "/api/goals/{id}", "418")))
}

func TestHandlerServesRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := NewPrometheus(reg)
	p.RecommendationsPurged(1)

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "fintrack_recommendations_purged_total 1")
}
