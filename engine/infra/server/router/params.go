package router

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/techtrends/techtrends/engine/infra/server/routes"
)

// GetPostID parses the post identifier path parameter. Anything other than a
// non-negative integer renders the 404 page without touching storage.
func GetPostID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(routes.PostParam), 10, 64)
	if err != nil || id < 0 {
		RenderNotFound(c)
		return 0, false
	}
	return id, true
}
