package postrouter

import (
	"github.com/gin-gonic/gin"
	"github.com/techtrends/techtrends/engine/infra/server/routes"
)

func Register(r gin.IRoutes) {
	// GET /
	// List all posts
	r.GET(routes.Index(), listPosts)
	// GET /about
	r.GET(routes.About(), aboutPage)
	// GET /create
	// Show the creation form
	r.GET(routes.Create(), createForm)
	// POST /create
	// Persist a post and redirect to the listing
	r.POST(routes.Create(), createPost)
	// GET /:id
	// Show a single post or the 404 page
	r.GET(routes.PostPattern(), getPost)
}
