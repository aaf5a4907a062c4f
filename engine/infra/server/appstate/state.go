package appstate

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/techtrends/techtrends/engine/infra/sqlite"
	"github.com/techtrends/techtrends/engine/post"
)

type contextKey string

const (
	stateKey contextKey = "app_state"
)

type BaseDeps struct {
	Posts   post.Repository
	Counter *sqlite.ConnCounter
}

func NewBaseDeps(posts post.Repository, counter *sqlite.ConnCounter) BaseDeps {
	return BaseDeps{
		Posts:   posts,
		Counter: counter,
	}
}

type State struct {
	BaseDeps
	StartedAt time.Time
}

func NewState(deps BaseDeps) (*State, error) {
	if deps.Posts == nil {
		return nil, fmt.Errorf("post repository is required")
	}
	if deps.Counter == nil {
		return nil, fmt.Errorf("connection counter is required")
	}
	return &State{
		BaseDeps:  deps,
		StartedAt: time.Now(),
	}, nil
}

// ConnectionCount returns the cumulative number of storage connections opened by the process.
func (s *State) ConnectionCount() int64 {
	return s.Counter.Load()
}

func WithState(ctx context.Context, state *State) context.Context {
	return context.WithValue(ctx, stateKey, state)
}

func GetState(ctx context.Context) (*State, error) {
	state, ok := ctx.Value(stateKey).(*State)
	if !ok {
		return nil, fmt.Errorf("app state not found in context")
	}
	return state, nil
}

func StateMiddleware(state *State) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := WithState(c.Request.Context(), state)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
