package observability

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-chi-calculator/internal/testutil"
)

func TestPrometheusHandlerServesRegistry(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := testutil.ExecuteRequest(r, PrometheusHandler())

	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	if body := w.Body.String(); !strings.Contains(body, "go_goroutines") {
		t.Fatalf("expected go runtime metrics in scrape output")
	}
}
