package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sampleCounts gathers reg and returns histogram sample counts keyed by
// "method route status_code".
func sampleCounts(t *testing.T, reg *prometheus.Registry) map[string]uint64 {
	t.Helper()

	families, err := reg.Gather()
	require.NoError(t, err)

	counts := map[string]uint64{}
	for _, family := range families {
		if family.GetName() != "http_request_duration_seconds" {
			continue
		}
		for _, metric := range family.GetMetric() {
			labels := labelMap(metric)
			key := labels["method"] + " " + labels["route"] + " " + labels["status_code"]
			counts[key] = metric.GetHistogram().GetSampleCount()
		}
	}
	return counts
}

func labelMap(metric *dto.Metric) map[string]string {
	labels := make(map[string]string, len(metric.GetLabel()))
	for _, lp := range metric.GetLabel() {
		labels[lp.GetName()] = lp.GetValue()
	}
	return labels
}

func TestMetricsHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewMetrics(reg)
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Use(m.Handler)
	r.Get("/users", func(w http.ResponseWriter, r *http.Request) {})
	r.Post("/users", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	})

	for _, req := range []*http.Request{
		httptest.NewRequest(http.MethodGet, "/users", nil),
		httptest.NewRequest(http.MethodGet, "/users", nil),
		httptest.NewRequest(http.MethodPost, "/users", nil),
		httptest.NewRequest(http.MethodGet, "/nope/123", nil),
	} {
		r.ServeHTTP(httptest.NewRecorder(), req)
	}

	counts := sampleCounts(t, reg)
	assert.Len(t, counts, 3)
	assert.Equal(t, uint64(2), counts["GET /users 200"])
	assert.Equal(t, uint64(1), counts["POST /users 422"])
	assert.Equal(t, uint64(1), counts["GET unmatched 404"])
}

func TestMetricsHandler_RecordsRecoveredPanic(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewMetrics(reg)
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Use(m.Handler)
	r.Use(chimw.Recoverer)
	r.Post("/users", func(w http.ResponseWriter, r *http.Request) {
		panic("store exploded")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/users", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, uint64(1), sampleCounts(t, reg)["POST /users 500"])
}

func TestNewMetrics_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewMetrics(reg)
	require.NoError(t, err)

	_, err = NewMetrics(reg)
	assert.Error(t, err)
}

func TestRegisterUserCountGauge(t *testing.T) {
	tests := []struct {
		name     string
		count    func(ctx context.Context) (int, error)
		expected float64
	}{
		{
			name:     "reports count",
			count:    func(ctx context.Context) (int, error) { return 7, nil },
			expected: 7,
		},
		{
			name:     "reports -1 on error",
			count:    func(ctx context.Context) (int, error) { return 0, errors.New("db down") },
			expected: -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := prometheus.NewRegistry()
			require.NoError(t, RegisterUserCountGauge(reg, tt.count))

			families, err := reg.Gather()
			require.NoError(t, err)
			require.Len(t, families, 1)
			assert.Equal(t, "users_total", families[0].GetName())
			assert.Equal(t, tt.expected, families[0].GetMetric()[0].GetGauge().GetValue())
		})
	}
}
