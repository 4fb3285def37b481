package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsInstrument(t *testing.T) {
	m := NewMetrics("portal_test")

	r := gin.New()
	r.Use(m.Instrument())
	r.GET("/metrics", m.Handler())
	r.GET("/payments/detail/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	for _, id := range []string{"1", "2"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/payments/detail/"+id, nil))
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, `portal_test_http_requests_total{method="GET",route="/payments/detail/:id",status="404"} 2`)
	assert.Contains(t, body, "portal_test_http_inflight_requests 0")
	assert.NotContains(t, body, `route="/metrics"`)
}
