package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techtrends/techtrends/pkg/logger"
)

func testCtx(t *testing.T) context.Context {
	t.Helper()
	return logger.ContextWithLogger(t.Context(), logger.NewForTests())
}

func setupAccessor(t *testing.T) *Accessor {
	t.Helper()
	a := NewAccessor(&Config{Path: filepath.Join(t.TempDir(), "posts.db")}, NewConnCounter())
	require.NoError(t, EnsureSchema(testCtx(t), a))
	return a
}

func TestBuildDSN(t *testing.T) {
	t.Run("Should build DSN for file path with pragmas", func(t *testing.T) {
		d := buildDSN(&Config{Path: "/tmp/test.db"})
		assert.Contains(t, d, "file:/tmp/test.db?")
		assert.Contains(t, d, "_pragma=journal_mode(WAL)")
		assert.Contains(t, d, "_pragma=foreign_keys(ON)")
		assert.Contains(t, d, "_pragma=busy_timeout(5000)")
	})
	t.Run("Should honor a configured busy timeout", func(t *testing.T) {
		d := buildDSN(&Config{Path: "file:/tmp/test.db", BusyTimeout: 250 * time.Millisecond})
		assert.Contains(t, d, "file:/tmp/test.db?")
		assert.NotContains(t, d, "file:file:")
		assert.Contains(t, d, "_pragma=busy_timeout(250)")
	})
}

func TestAccessor(t *testing.T) {
	t.Run("Should count one open per connection", func(t *testing.T) {
		a := setupAccessor(t)
		ctx := testCtx(t)
		before := a.Counter().Load()

		for range 3 {
			conn, err := a.Open(ctx)
			require.NoError(t, err)
			require.NoError(t, conn.Close())
		}

		assert.Equal(t, before+3, a.Counter().Load())
	})

	t.Run("Should close the connection when the callback fails", func(t *testing.T) {
		a := setupAccessor(t)
		ctx := testCtx(t)
		boom := errors.New("boom")
		var seen *Conn

		err := a.WithConn(ctx, func(c *Conn) error {
			seen = c
			return boom
		})

		require.ErrorIs(t, err, boom)
		require.NotNil(t, seen)
		assert.Error(t, seen.PingContext(ctx), "connection must be released after WithConn returns")
	})

	t.Run("Should close the connection when the callback panics", func(t *testing.T) {
		a := setupAccessor(t)
		ctx := testCtx(t)
		var seen *Conn

		assert.Panics(t, func() {
			_ = a.WithConn(ctx, func(c *Conn) error {
				seen = c
				panic("boom")
			})
		})
		require.NotNil(t, seen)
		assert.Error(t, seen.PingContext(ctx))
	})

	t.Run("Should not count a failed open", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "missing", "nested")
		a := NewAccessor(&Config{Path: filepath.Join(dir, "posts.db")}, nil)

		_, err := a.Open(testCtx(t))

		require.Error(t, err)
		assert.Equal(t, int64(0), a.Counter().Load())
	})

	t.Run("Should require a path", func(t *testing.T) {
		_, err := NewAccessor(nil, nil).Open(testCtx(t))
		assert.Error(t, err)
	})
}

func TestConnCounter(t *testing.T) {
	t.Run("Should be safe for concurrent increments", func(t *testing.T) {
		c := NewConnCounter()
		done := make(chan struct{})
		for range 50 {
			go func() {
				defer func() { done <- struct{}{} }()
				for range 100 {
					c.Inc()
				}
			}()
		}
		for range 50 {
			<-done
		}
		assert.Equal(t, int64(5000), c.Load())
	})
}
