package views

import (
	"embed"
	"fmt"
	"html/template"
	"unicode/utf8"

	"github.com/Masterminds/sprig/v3"
	"github.com/techtrends/techtrends/engine/infra/server/routes"
	"github.com/techtrends/techtrends/engine/post"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page template names.
const (
	PageIndex    = "index.html"
	PagePost     = "post.html"
	PageAbout    = "about.html"
	PageCreate   = "create.html"
	PageNotFound = "404.html"
	PageError    = "error.html"
)

// PageData is the root value handed to every page template.
type PageData struct {
	Title    string
	Path     string
	Flashes  []string
	FormData map[string]string
	Post     *post.Post
	Posts    []*post.Post
}

// FuncMap returns sprig's HTML-safe helpers plus the blog's own.
func FuncMap() template.FuncMap {
	fm := sprig.HtmlFuncMap()
	fm["postURL"] = routes.Post
	fm["excerpt"] = Excerpt
	return fm
}

// Excerpt shortens s to at most n runes. Unlike sprig's trunc it never splits a
// multi-byte character.
func Excerpt(n int, s string) string {
	if n < 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

// Load parses the embedded page templates and partials into one set, keyed by file name.
func Load() (*template.Template, error) {
	tmpl, err := template.New("").Funcs(FuncMap()).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return tmpl, nil
}
