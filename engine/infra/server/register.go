package server

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/techtrends/techtrends/engine/infra/server/router"
	"github.com/techtrends/techtrends/engine/infra/server/routes"
	postrouter "github.com/techtrends/techtrends/engine/post/router"
	"github.com/techtrends/techtrends/pkg/logger"
)

func RegisterRoutes(ctx context.Context, r *gin.Engine) {
	r.GET(routes.Healthz(), healthzHandler)
	r.GET(routes.Metrics(), metricsHandler)
	postrouter.Register(r)
	r.NoRoute(router.RenderNotFound)
	logger.FromContext(ctx).Debug("Completed route registration", "routes", len(r.Routes()))
}
