package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/kiarash-moradi/mlm-dashboard/internal/infrastructure/adapter/metrics"
)

func TestMetricsMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := metrics.Registry("middlewaretest")

	router := gin.New()
	router.Use(Metrics(m))
	router.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	t.Run("counts requests per route and status", func(t *testing.T) {
		before := testutil.ToFloat64(m.HTTPRequests.WithLabelValues("/ok", http.MethodGet, "200"))

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, before+1, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("/ok", http.MethodGet, "200")))
	})

	t.Run("server errors feed the error counter", func(t *testing.T) {
		before := testutil.ToFloat64(m.Errors.WithLabelValues("http"))

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, before+1, testutil.ToFloat64(m.Errors.WithLabelValues("http")))
	})

	t.Run("successful requests leave the error counter alone", func(t *testing.T) {
		before := testutil.ToFloat64(m.Errors.WithLabelValues("http"))

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))

		assert.Equal(t, before, testutil.ToFloat64(m.Errors.WithLabelValues("http")))
	})
}
