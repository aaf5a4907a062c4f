package postrouter

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/techtrends/techtrends/engine/infra/server/router"
	"github.com/techtrends/techtrends/engine/infra/server/routes"
	"github.com/techtrends/techtrends/engine/infra/server/views"
	"github.com/techtrends/techtrends/engine/post"
	"github.com/techtrends/techtrends/pkg/logger"
)

// CreateForm is the urlencoded body of POST /create. An absent content field is stored as NULL.
type CreateForm struct {
	Title   string  `form:"title"`
	Content *string `form:"content"`
}

func (f *CreateForm) toInput() *post.CreateInput {
	return &post.CreateInput{Title: f.Title, Content: f.Content}
}

func (f *CreateForm) formData() map[string]string {
	data := map[string]string{"title": f.Title}
	if f.Content != nil {
		data["content"] = *f.Content
	}
	return data
}

func createForm(c *gin.Context) {
	router.RenderPage(c, http.StatusOK, views.PageCreate, &views.PageData{Title: "Create"})
}

func createPost(c *gin.Context) {
	var form CreateForm
	if err := c.ShouldBind(&form); err != nil {
		router.RenderPage(c, http.StatusOK, views.PageCreate, &views.PageData{
			Title:   "Create",
			Flashes: []string{"Invalid form submission"},
		})
		return
	}
	appState := router.GetAppState(c)
	if appState == nil {
		return
	}
	log := logger.FromContext(c.Request.Context())
	created, err := appState.Posts.Create(c.Request.Context(), form.toInput())
	if verr, ok := post.IsValidation(err); ok {
		log.Warn("Article rejected", "reason", verr.Messages)
		router.RenderPage(c, http.StatusOK, views.PageCreate, &views.PageData{
			Title:    "Create",
			Flashes:  verr.Messages,
			FormData: form.formData(),
		})
		return
	}
	if err != nil {
		router.RenderServerError(c, err)
		return
	}
	log.Info("Article created", "id", created.ID, "title", created.Title)
	c.Redirect(http.StatusFound, routes.Index())
}
