package server

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/techtrends/techtrends/engine/infra/monitoring"
	"github.com/techtrends/techtrends/engine/infra/server/appstate"
	"github.com/techtrends/techtrends/engine/infra/server/views"
	"github.com/techtrends/techtrends/pkg/logger"
)

// NewRouter assembles the gin engine serving the blog. mon may be nil.
func NewRouter(ctx context.Context, state *appstate.State, mon *monitoring.Service) (*gin.Engine, error) {
	tmpl, err := views.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load views: %w", err)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.SetHTMLTemplate(tmpl)
	if mon != nil && mon.IsInitialized() {
		r.Use(mon.GinMiddleware())
	}
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(logger.FromContext(ctx)))
	r.Use(appstate.StateMiddleware(state))
	if mon != nil && mon.IsInitialized() {
		r.GET(mon.Path(), gin.WrapH(mon.ExporterHandler()))
	}
	RegisterRoutes(ctx, r)
	return r, nil
}
