package routertest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/techtrends/techtrends/engine/infra/server/appstate"
	"github.com/techtrends/techtrends/engine/infra/server/views"
	"github.com/techtrends/techtrends/engine/infra/sqlite"
	"github.com/techtrends/techtrends/engine/post"
)

// StubPostRepo is an in-memory post repository with error injection. Every call
// counts as one storage open on the shared counter, like the SQLite repository.
type StubPostRepo struct {
	mu      sync.Mutex
	posts   []*post.Post
	err     error
	counter *sqlite.ConnCounter
}

// NewStubPostRepo creates a stub repository ready for handler tests.
func NewStubPostRepo(counter *sqlite.ConnCounter) *StubPostRepo {
	if counter == nil {
		counter = sqlite.NewConnCounter()
	}
	return &StubPostRepo{counter: counter}
}

// SetError makes every subsequent storage call fail with err.
func (s *StubPostRepo) SetError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// Len returns the number of stored posts.
func (s *StubPostRepo) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.posts)
}

func (s *StubPostRepo) List(_ context.Context) ([]*post.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	s.counter.Inc()
	out := make([]*post.Post, len(s.posts))
	copy(out, s.posts)
	return out, nil
}

func (s *StubPostRepo) Get(_ context.Context, id int64) (*post.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	s.counter.Inc()
	for _, p := range s.posts {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, post.ErrNotFound
}

func (s *StubPostRepo) Create(_ context.Context, in *post.CreateInput) (*post.Post, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	s.counter.Inc()
	p := &post.Post{ID: int64(len(s.posts) + 1), Title: in.Title, Content: in.Content}
	s.posts = append(s.posts, p)
	return p, nil
}

// NewTestAppState builds an app state around repo and its counter.
func NewTestAppState(t *testing.T, repo *StubPostRepo) *appstate.State {
	t.Helper()
	state, err := appstate.NewState(appstate.NewBaseDeps(repo, repo.counter))
	require.NoError(t, err)
	return state
}

// NewEngine returns a gin engine with the page templates and state middleware installed.
func NewEngine(t *testing.T, state *appstate.State) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	tmpl, err := views.Load()
	require.NoError(t, err)
	r.SetHTMLTemplate(tmpl)
	if state != nil {
		r.Use(appstate.StateMiddleware(state))
	}
	return r
}

// Do performs a request against h and returns the recorded response.
func Do(h http.Handler, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(method, target, http.NoBody))
	return w
}

// PostForm submits an urlencoded form to h.
func PostForm(h http.Handler, target string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}
