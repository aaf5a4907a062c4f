package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/techtrends/techtrends/engine/infra/server/router"
	"github.com/techtrends/techtrends/pkg/logger"
)

// HealthResponse is the body of a successful liveness probe.
type HealthResponse struct {
	Result string `json:"result"`
}

// MetricsData carries the application counters reported by /metrics.
type MetricsData struct {
	DBConnectionCount int64 `json:"db_connection_count"`
	PostCount         int   `json:"post_count"`
}

// MetricsResponse is the body of /metrics.
type MetricsResponse struct {
	Status string      `json:"status"`
	Code   int         `json:"code"`
	Data   MetricsData `json:"data"`
}

// healthzHandler performs a storage round trip and reports liveness.
func healthzHandler(c *gin.Context) {
	appState := router.GetAppState(c)
	if appState == nil {
		return
	}
	log := logger.FromContext(c.Request.Context())
	if _, err := appState.Posts.List(c.Request.Context()); err != nil {
		log.Error("Status request failed", "error", err)
		router.RespondWithError(c, router.FromDomain(err))
		return
	}
	log.Info("Status request successful")
	c.JSON(http.StatusOK, HealthResponse{Result: "OK - healthy"})
}

// metricsHandler reports the post count and the connection counter. The counter is
// read after this request's own storage open, so it includes it.
func metricsHandler(c *gin.Context) {
	appState := router.GetAppState(c)
	if appState == nil {
		return
	}
	posts, err := appState.Posts.List(c.Request.Context())
	if err != nil {
		logger.FromContext(c.Request.Context()).Error("Metrics request failed", "error", err)
		router.RespondWithError(c, router.FromDomain(err))
		return
	}
	c.JSON(http.StatusOK, MetricsResponse{
		Status: "success",
		Code:   0,
		Data: MetricsData{
			DBConnectionCount: appState.ConnectionCount(),
			PostCount:         len(posts),
		},
	})
}
