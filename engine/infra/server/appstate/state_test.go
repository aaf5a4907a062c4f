package appstate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/techtrends/techtrends/engine/infra/sqlite"
	"github.com/techtrends/techtrends/engine/post"
)

type nopRepo struct{}

func (nopRepo) List(context.Context) ([]*post.Post, error) { return nil, nil }
func (nopRepo) Get(context.Context, int64) (*post.Post, error) { return nil, post.ErrNotFound }
func (nopRepo) Create(context.Context, *post.CreateInput) (*post.Post, error) { return nil, nil }

func TestNewState(t *testing.T) {
	t.Run("Should require a post repository", func(t *testing.T) {
		_, err := NewState(NewBaseDeps(nil, sqlite.NewConnCounter()))
		assert.ErrorContains(t, err, "post repository")
	})

	t.Run("Should require a connection counter", func(t *testing.T) {
		_, err := NewState(NewBaseDeps(nopRepo{}, nil))
		assert.ErrorContains(t, err, "connection counter")
	})

	t.Run("Should expose the shared connection count", func(t *testing.T) {
		counter := sqlite.NewConnCounter()
		state, err := NewState(NewBaseDeps(nopRepo{}, counter))
		require.NoError(t, err)

		counter.Inc()
		counter.Inc()
		assert.Equal(t, int64(2), state.ConnectionCount())
		assert.False(t, state.StartedAt.IsZero())
	})
}

func TestStateMiddleware(t *testing.T) {
	t.Run("Should attach the state to the request context", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		state, err := NewState(NewBaseDeps(nopRepo{}, sqlite.NewConnCounter()))
		require.NoError(t, err)

		var got *State
		r := gin.New()
		r.Use(StateMiddleware(state))
		r.GET("/", func(c *gin.Context) {
			got, err = GetState(c.Request.Context())
			c.Status(http.StatusNoContent)
		})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", http.NoBody))

		require.NoError(t, err)
		assert.Same(t, state, got)
	})

	t.Run("Should fail when no state is attached", func(t *testing.T) {
		_, err := GetState(t.Context())
		assert.Error(t, err)
	})
}
