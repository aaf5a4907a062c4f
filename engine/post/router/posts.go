package postrouter

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/techtrends/techtrends/engine/infra/server/router"
	"github.com/techtrends/techtrends/engine/infra/server/views"
	"github.com/techtrends/techtrends/engine/post"
	"github.com/techtrends/techtrends/pkg/logger"
)

func listPosts(c *gin.Context) {
	appState := router.GetAppState(c)
	if appState == nil {
		return
	}
	posts, err := appState.Posts.List(c.Request.Context())
	if err != nil {
		router.RenderServerError(c, err)
		return
	}
	router.RenderPage(c, http.StatusOK, views.PageIndex, &views.PageData{Posts: posts})
}

func getPost(c *gin.Context) {
	id, ok := router.GetPostID(c)
	if !ok {
		return
	}
	appState := router.GetAppState(c)
	if appState == nil {
		return
	}
	log := logger.FromContext(c.Request.Context())
	p, err := appState.Posts.Get(c.Request.Context(), id)
	switch {
	case errors.Is(err, post.ErrNotFound):
		log.Info("The article requested does not exist", "id", id)
		router.RenderNotFound(c)
		return
	case err != nil:
		router.RenderServerError(c, err)
		return
	}
	log.Info("Article retrieved", "id", p.ID, "title", p.Title)
	router.RenderPage(c, http.StatusOK, views.PagePost, &views.PageData{Title: p.Title, Post: p})
}

func aboutPage(c *gin.Context) {
	logger.FromContext(c.Request.Context()).Info(`The "About Us" page is retrieved`)
	router.RenderPage(c, http.StatusOK, views.PageAbout, &views.PageData{Title: "About"})
}
