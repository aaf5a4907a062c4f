package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/techtrends/techtrends/engine/infra/server/views"
	"github.com/techtrends/techtrends/pkg/logger"
)

// RenderPage renders a named page template with the request path filled in.
func RenderPage(c *gin.Context, status int, page string, data *views.PageData) {
	if data == nil {
		data = &views.PageData{}
	}
	data.Path = c.Request.URL.Path
	c.HTML(status, page, data)
}

// RenderNotFound renders the 404 page.
func RenderNotFound(c *gin.Context) {
	RenderPage(c, http.StatusNotFound, views.PageNotFound, &views.PageData{Title: "Not Found"})
	c.Abort()
}

// RenderServerError logs err and renders the generic error page with a 500.
func RenderServerError(c *gin.Context, err error) {
	logger.FromContext(c.Request.Context()).Error("Request failed",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"error", err,
	)
	_ = c.Error(err)
	RenderPage(c, http.StatusInternalServerError, views.PageError, &views.PageData{Title: "Error"})
	c.Abort()
}
