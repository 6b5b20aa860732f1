package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_Counters_Histograms_InflightAndPathFallback(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(Metrics())

	// Route with body → positive size (observed)
	r.GET("/books", func(c *gin.Context) {
		c.String(http.StatusOK, `[{"title":"Dune"}]`) // writes body (size >= 0)
	})

	// Route with status only → size stays -1 (skipped in size histogram)
	r.DELETE("/books/:id", func(c *gin.Context) {
		c.Status(http.StatusNoContent) // 204, no body => size -1
	})

	// Baselines before we hit the routes (to avoid interference from other tests)
	baseOK := testutil.ToFloat64(httpReqs.WithLabelValues("GET", "/books", "200"))
	base404 := testutil.ToFloat64(httpReqs.WithLabelValues("GET", "/does-not-exist", "404"))

	// 1) Hit /books (matches route → path label is "/books")
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/books", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /books -> %d", w.Code)
	}

	// 2) Hit a missing route (no match → fallback to raw URL path label)
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/does-not-exist", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("GET /does-not-exist -> %d", w.Code)
	}

	// 3) Delete route (size -1 path executed; path label is the route pattern)
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodDelete, "/books/7", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent {
		t.Fatalf("DELETE /books/7 -> %d", w.Code)
	}

	// --- Assertions ---

	// Counters for specific label sets should have incremented by 1
	gotOK := testutil.ToFloat64(httpReqs.WithLabelValues("GET", "/books", "200"))
	if gotOK != baseOK+1 {
		t.Fatalf("counter /books 200 = %v; want %v", gotOK, baseOK+1)
	}

	// 404 path uses raw URL (fallback)
	got404 := testutil.ToFloat64(httpReqs.WithLabelValues("GET", "/does-not-exist", "404"))
	if got404 != base404+1 {
		t.Fatalf("counter 404 fallback = %v; want %v", got404, base404+1)
	}

	// Delete uses the registered route pattern, not the raw URL
	if got := testutil.ToFloat64(httpReqs.WithLabelValues("DELETE", "/books/:id", "204")); got < 1 {
		t.Fatalf("counter DELETE /books/:id 204 = %v; want >= 1", got)
	}

	// In-flight gauge should be 0 after requests complete
	if inFlight := testutil.ToFloat64(httpInflight); inFlight != 0 {
		t.Fatalf("httpInflight = %v; want 0", inFlight)
	}

	// We don't assert exact histogram bucket counts (they’re timing-dependent),
	// but by executing the code paths above we hit both:
	// - httpLat.WithLabelValues(method, path).Observe(...)
	// - httpRespSize.WithLabelValues(method, path).Observe(...) when size>=0
	// and skip when size<0.
}

func TestMetrics_NamespacedSeriesExposed(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(Metrics())
	r.GET("/clubs", func(c *gin.Context) { c.String(http.StatusOK, "[]") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/clubs", nil))

	// The registered collectors carry the service namespace.
	mfs, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	seen := make(map[string]bool, len(mfs))
	for _, mf := range mfs {
		seen[mf.GetName()] = true
	}
	for _, n := range []string{
		metricsNamespace + "_http_requests_total",
		metricsNamespace + "_http_request_duration_seconds",
		metricsNamespace + "_http_requests_inflight",
		metricsNamespace + "_http_response_size_bytes",
	} {
		if !seen[n] {
			t.Fatalf("metric %q not registered", n)
		}
	}
	if got := testutil.ToFloat64(httpReqs.WithLabelValues("GET", "/clubs", "200")); got < 1 {
		t.Fatalf("counter GET /clubs 200 = %v; want >= 1", got)
	}
}
