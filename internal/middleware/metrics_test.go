package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"student-lens/internal/metrics"
)

func TestMetricsMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("records HTTP request metrics", func(t *testing.T) {
		router := gin.New()
		router.Use(Metrics())
		router.GET("/test", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		initialTotal := testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues("GET", "/test", "200"))
		initialInFlight := testutil.ToFloat64(metrics.HTTPRequestsInFlight)

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		newTotal := testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues("GET", "/test", "200"))
		assert.Equal(t, initialTotal+1, newTotal, "Request counter should increment")

		afterInFlight := testutil.ToFloat64(metrics.HTTPRequestsInFlight)
		assert.Equal(t, initialInFlight, afterInFlight, "In-flight should return to initial after request")
	})

	t.Run("records error status codes", func(t *testing.T) {
		router := gin.New()
		router.Use(Metrics())
		router.GET("/forbidden", func(c *gin.Context) {
			c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		})

		initialTotal := testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues("GET", "/forbidden", "403"))

		req := httptest.NewRequest(http.MethodGet, "/forbidden", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)

		newTotal := testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues("GET", "/forbidden", "403"))
		assert.Equal(t, initialTotal+1, newTotal, "403 counter should increment")
	})

	t.Run("skips metrics endpoint", func(t *testing.T) {
		router := gin.New()
		router.Use(Metrics())
		router.GET("/metrics", func(c *gin.Context) {
			c.String(http.StatusOK, "metrics data")
		})

		req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
