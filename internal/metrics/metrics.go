// Package metrics exposes Prometheus instrumentation for HTTP traffic, gateway
// operations and background jobs.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder receives operational measurements.
type Recorder interface {
	ObserveGateway(entity, op string, duration time.Duration, err error)
	ObserveHTTP(method, route string, status int, duration time.Duration)
	ObserveJob(job string, duration time.Duration, err error)
	RecommendationsPurged(n int64)
}

type Prometheus struct {
	gatewayOps      *prometheus.CounterVec
	gatewayDuration *prometheus.HistogramVec
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
	jobRuns         *prometheus.CounterVec
	jobDuration     *prometheus.HistogramVec
	purged          prometheus.Counter
}

// NewPrometheus registers the collectors with reg.
func NewPrometheus(reg prometheus.Registerer) *Prometheus {
	f := promauto.With(reg)
	return &Prometheus{
		gatewayOps: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fintrack_gateway_operations_total",
				Help: "Total number of data gateway operations",
			},
			[]string{"entity", "op", "status"},
		),
		gatewayDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fintrack_gateway_operation_duration_milliseconds",
				Help:    "Data gateway operation duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
			[]string{"op"},
		),
		httpRequests: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fintrack_http_requests_total",
				Help: "Total number of HTTP requests served",
			},
			[]string{"method", "route", "status"},
		),
		httpDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fintrack_http_request_duration_milliseconds",
				Help:    "HTTP request duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 14),
			},
			[]string{"method", "route"},
		),
		jobRuns: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fintrack_job_runs_total",
				Help: "Total number of scheduled job runs",
			},
			[]string{"job", "status"},
		),
		jobDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fintrack_job_duration_milliseconds",
				Help:    "Scheduled job duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(10, 2, 12),
			},
			[]string{"job"},
		),
		purged: f.NewCounter(
			prometheus.CounterOpts{
				Name: "fintrack_recommendations_purged_total",
				Help: "Total number of expired savings recommendations removed",
			},
		),
	}
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

func ms(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

func (p *Prometheus) ObserveGateway(entity, op string, duration time.Duration, err error) {
	p.gatewayOps.WithLabelValues(entity, op, status(err)).Inc()
	p.gatewayDuration.WithLabelValues(op).Observe(ms(duration))
}

func (p *Prometheus) ObserveHTTP(method, route string, code int, duration time.Duration) {
	p.httpRequests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	p.httpDuration.WithLabelValues(method, route).Observe(ms(duration))
}

func (p *Prometheus) ObserveJob(job string, duration time.Duration, err error) {
	p.jobRuns.WithLabelValues(job, status(err)).Inc()
	p.jobDuration.WithLabelValues(job).Observe(ms(duration))
}

func (p *Prometheus) RecommendationsPurged(n int64) {
	p.purged.Add(float64(n))
}

// Nop discards every measurement.
type Nop struct{}

func (Nop) ObserveGateway(string, string, time.Duration, error) {}
func (Nop) ObserveHTTP(string, string, int, time.Duration)      {}
func (Nop) ObserveJob(string, time.Duration, error)             {}
func (Nop) RecommendationsPurged(int64)                         {}

// Middleware records one observation per request, labelled by the matched
// chi route pattern so ids in paths do not explode label cardinality.
func Middleware(rec Recorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}
			code := ww.Status()
			if code == 0 {
				code = http.StatusOK
			}
			rec.ObserveHTTP(r.Method, route, code, time.Since(start))
		})
	}
}

// Handler serves g in the Prometheus exposition format.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
