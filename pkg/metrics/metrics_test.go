package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	m := New()
	m.CycleDone(2 * time.Second)
	m.CycleDone(time.Second)
	m.Fetched("ml", 3)
	m.Fetched("ml", 0)
	m.Decision("published", "autonomous")
	m.Decision("queued", "manual_mode")
	m.Decision("queued", "manual_mode")
	m.Failure(FailureSource)
	m.SetAutonomous(true)
	m.SetPendingReviews(4)
	m.SetSeenItems(120)

	assert.InDelta(t, 2, testutil.ToFloat64(m.cycles), 0.001)
	assert.InDelta(t, 3, testutil.ToFloat64(m.fetched.WithLabelValues("ml")), 0.001)
	assert.InDelta(t, 2, testutil.ToFloat64(m.outcomes.WithLabelValues("queued", "manual_mode")), 0.001)
	assert.InDelta(t, 1, testutil.ToFloat64(m.failures.WithLabelValues(FailureSource)), 0.001)
	assert.InDelta(t, 1, testutil.ToFloat64(m.autonomous), 0.001)
	assert.InDelta(t, 4, testutil.ToFloat64(m.pendingReviews), 0.001)
	assert.InDelta(t, 120, testutil.ToFloat64(m.seenItems), 0.001)

	m.SetAutonomous(false)
	assert.InDelta(t, 0, testutil.ToFloat64(m.autonomous), 0.001)
}

func TestMetrics_HandlerAndMiddleware(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(WithNamespace("test"), WithRegistry(reg))
	assert.Equal(t, reg, m.Registry())

	h := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))
	for _, p := range []string{"/a", "/missing", "/b"} {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, p, http.NoBody))
	}
	assert.InDelta(t, 2, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "200")), 0.001)
	assert.InDelta(t, 1, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "404")), 0.001)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))
	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "test_http_requests_total")
	assert.NotContains(t, string(body), "go_goroutines", "no default collectors")
}

func TestMetrics_Nil(t *testing.T) {
	var m *Metrics
	m.CycleDone(time.Second)
	m.Fetched("x", 1)
	m.Decision("a", "b")
	m.Failure(FailureMint)
	m.SetAutonomous(true)
	m.SetPendingReviews(1)
	m.SetSeenItems(1)
	assert.Nil(t, m.Registry())

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusTeapot) })
	rec := httptest.NewRecorder()
	m.Middleware(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", http.NoBody))
	assert.Equal(t, http.StatusTeapot, rec.Code)

	rec = httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
