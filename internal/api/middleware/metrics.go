package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

// unmatchedRoute labels requests that matched no route so raw paths never
// become label values.
const unmatchedRoute = "unmatched"

// Metrics records HTTP request durations in a Prometheus histogram labelled
// by method, route pattern and status code.
type Metrics struct {
	duration *prometheus.HistogramVec
}

// NewMetrics creates the request duration histogram and registers it on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: []float64{0.1, 0.5, 1, 1.5, 2, 5},
	}, []string{"method", "route", "status_code"})

	if err := reg.Register(duration); err != nil {
		return nil, err
	}
	return &Metrics{duration: duration}, nil
}

// Handler observes every request. The route label is read after routing,
// so it must be installed with Use on the chi router.
func (m *Metrics) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.duration.WithLabelValues(r.Method, routeLabel(r), strconv.Itoa(status)).
			Observe(time.Since(start).Seconds())
	})
}

// routeLabel returns the matched chi route pattern, or unmatchedRoute.
func routeLabel(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return unmatchedRoute
}

// RegisterUserCountGauge registers a users_total gauge that calls count at
// scrape time. A failing count is reported as -1.
func RegisterUserCountGauge(reg prometheus.Registerer, count func(ctx context.Context) (int, error)) error {
	gauge := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "users_total",
		Help: "Number of users in the store",
	}, func() float64 {
		n, err := count(context.Background())
		if err != nil {
			return -1
		}
		return float64(n)
	})
	return reg.Register(gauge)
}
