package sqlite

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techtrends/techtrends/engine/post"
)

func strptr(s string) *string { return &s }

func TestPostRepo(t *testing.T) {
	t.Run("Should return an empty list for an empty table", func(t *testing.T) {
		repo := NewPostRepo(setupAccessor(t))

		posts, err := repo.List(testCtx(t))

		require.NoError(t, err)
		assert.NotNil(t, posts)
		assert.Empty(t, posts)
	})

	t.Run("Should create and fetch a post", func(t *testing.T) {
		repo := NewPostRepo(setupAccessor(t))
		ctx := testCtx(t)

		created, err := repo.Create(ctx, &post.CreateInput{Title: "Hello", Content: strptr("World")})
		require.NoError(t, err)
		assert.Equal(t, int64(1), created.ID)

		got, err := repo.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Hello", got.Title)
		assert.Equal(t, "World", got.Body())
	})

	t.Run("Should keep NULL content as nil", func(t *testing.T) {
		repo := NewPostRepo(setupAccessor(t))
		ctx := testCtx(t)

		created, err := repo.Create(ctx, &post.CreateInput{Title: "No body"})
		require.NoError(t, err)

		got, err := repo.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Nil(t, got.Content)
	})

	t.Run("Should list posts ordered by id", func(t *testing.T) {
		repo := NewPostRepo(setupAccessor(t))
		ctx := testCtx(t)
		for _, title := range []string{"first", "second", "third"} {
			_, err := repo.Create(ctx, &post.CreateInput{Title: title})
			require.NoError(t, err)
		}

		posts, err := repo.List(ctx)

		require.NoError(t, err)
		require.Len(t, posts, 3)
		assert.Equal(t, []string{"first", "second", "third"}, []string{posts[0].Title, posts[1].Title, posts[2].Title})
		assert.Less(t, posts[0].ID, posts[1].ID)
		assert.Less(t, posts[1].ID, posts[2].ID)
	})

	t.Run("Should return ErrNotFound for a missing id", func(t *testing.T) {
		repo := NewPostRepo(setupAccessor(t))

		got, err := repo.Get(testCtx(t), 999)

		assert.Nil(t, got)
		assert.True(t, errors.Is(err, post.ErrNotFound))
	})

	t.Run("Should reject an empty title without writing or opening storage", func(t *testing.T) {
		a := setupAccessor(t)
		repo := NewPostRepo(a)
		ctx := testCtx(t)
		before := a.Counter().Load()

		_, err := repo.Create(ctx, &post.CreateInput{Title: "", Content: strptr("orphan")})

		_, isValidation := post.IsValidation(err)
		assert.True(t, isValidation)
		assert.Equal(t, before, a.Counter().Load())
		posts, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, posts)
	})

	t.Run("Should open exactly one connection per operation", func(t *testing.T) {
		a := setupAccessor(t)
		repo := NewPostRepo(a)
		ctx := testCtx(t)
		before := a.Counter().Load()

		created, err := repo.Create(ctx, &post.CreateInput{Title: "t"})
		require.NoError(t, err)
		_, err = repo.Get(ctx, created.ID)
		require.NoError(t, err)
		_, err = repo.Get(ctx, 42)
		require.ErrorIs(t, err, post.ErrNotFound)
		_, err = repo.List(ctx)
		require.NoError(t, err)

		assert.Equal(t, before+4, a.Counter().Load())
	})

	t.Run("Should surface a storage error when the table is missing", func(t *testing.T) {
		a := NewAccessor(&Config{Path: t.TempDir() + "/empty.db"}, nil)
		repo := NewPostRepo(a)

		_, err := repo.List(testCtx(t))

		require.Error(t, err)
		assert.False(t, errors.Is(err, post.ErrNotFound))
	})
}

func TestSeedPosts(t *testing.T) {
	t.Run("Should seed an empty table once", func(t *testing.T) {
		a := setupAccessor(t)
		ctx := testCtx(t)

		n, err := SeedPosts(ctx, a, DefaultSeeds())
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		n, err = SeedPosts(ctx, a, DefaultSeeds())
		require.NoError(t, err)
		assert.Equal(t, 0, n)

		posts, err := NewPostRepo(a).List(ctx)
		require.NoError(t, err)
		assert.Len(t, posts, 2)
	})

	t.Run("Should keep EnsureSchema idempotent", func(t *testing.T) {
		a := setupAccessor(t)
		assert.NoError(t, EnsureSchema(testCtx(t), a))
	})
}
