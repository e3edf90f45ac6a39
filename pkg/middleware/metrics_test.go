package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsLabelsUseRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Metrics())
	r.Get("/api/bookings/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// Two requests with different IDs must land on one label pair.
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/bookings/"+uuid.New().String(), nil)
		r.ServeHTTP(httptest.NewRecorder(), req)
	}

	patterned := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/api/bookings/{id}", "200"))
	assert.GreaterOrEqual(t, patterned, 2.0)
}
