package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/techtrends/techtrends/pkg/logger"
)

func init() {
	logger.InitForTests()
}

func newTestRouter(t *testing.T) (*gin.Engine, *sdkmetric.ManualReader) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	router := gin.New()
	router.Use(HTTPMetrics(provider.Meter("test")))
	router.GET("/:id", func(c *gin.Context) {
		c.String(http.StatusOK, c.Param("id"))
	})
	return router, reader
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	out := make(map[string]metricdata.Metrics)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m
		}
	}
	return out
}

func TestHTTPMetrics(t *testing.T) {
	t.Run("Should record requests labelled by route pattern", func(t *testing.T) {
		router, reader := newTestRouter(t)

		for _, path := range []string{"/1", "/2", "/3"} {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, http.NoBody))
			assert.Equal(t, http.StatusOK, w.Code)
		}

		metrics := collect(t, reader)
		total, ok := metrics["techtrends_http_requests_total"]
		require.True(t, ok)
		sum, ok := total.Data.(metricdata.Sum[int64])
		require.True(t, ok)
		require.Len(t, sum.DataPoints, 1)
		dp := sum.DataPoints[0]
		assert.Equal(t, int64(3), dp.Value)
		attrs := dp.Attributes.ToSlice()
		assert.Contains(t, attrs, attribute.String("path", "/:id"))
		assert.Contains(t, attrs, attribute.String("method", "GET"))
		assert.Contains(t, attrs, attribute.String("status_code", "200"))

		assert.Contains(t, metrics, "techtrends_http_request_duration_seconds")
		assert.Contains(t, metrics, "techtrends_http_requests_in_flight")
	})

	t.Run("Should label unknown routes as unmatched", func(t *testing.T) {
		router, reader := newTestRouter(t)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/a/b/c", http.NoBody))
		assert.Equal(t, http.StatusNotFound, w.Code)

		sum, ok := collect(t, reader)["techtrends_http_requests_total"].Data.(metricdata.Sum[int64])
		require.True(t, ok)
		require.Len(t, sum.DataPoints, 1)
		assert.Contains(t, sum.DataPoints[0].Attributes.ToSlice(), attribute.String("path", unmatchedRoute))
	})

	t.Run("Should pass requests through when meter is nil", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		router := gin.New()
		router.Use(HTTPMetrics(nil))
		router.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", http.NoBody))
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
