package sqlite

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/techtrends/techtrends/engine/post"
	"github.com/techtrends/techtrends/pkg/logger"
)

//go:embed schema/posts.sql
var postsSchema string

// EnsureSchema creates the posts table when it does not exist. It never alters an
// existing table.
func EnsureSchema(ctx context.Context, a *Accessor) error {
	return a.WithConn(ctx, func(c *Conn) error {
		if _, err := c.ExecContext(ctx, postsSchema); err != nil {
			return fmt.Errorf("sqlite: create posts table: %w", err)
		}
		return nil
	})
}

// SeedPosts inserts seeds when the posts table is empty and reports how many rows it wrote.
func SeedPosts(ctx context.Context, a *Accessor, seeds []post.CreateInput) (int, error) {
	log := logger.FromContext(ctx)
	var count int
	countSQL, countArgs, err := squirrel.Select("COUNT(*)").From("posts").ToSql()
	if err != nil {
		return 0, fmt.Errorf("sqlite: build count query: %w", err)
	}
	if err := a.WithConn(ctx, func(c *Conn) error {
		return c.QueryRowContext(ctx, countSQL, countArgs...).Scan(&count)
	}); err != nil {
		return 0, fmt.Errorf("sqlite: count posts: %w", err)
	}
	if count > 0 {
		log.Debug("Posts table already populated, skipping seed", "count", count)
		return 0, nil
	}
	repo := NewPostRepo(a)
	for i := range seeds {
		if _, err := repo.Create(ctx, &seeds[i]); err != nil {
			return i, err
		}
	}
	return len(seeds), nil
}

// DefaultSeeds are the starter articles written by init-db.
func DefaultSeeds() []post.CreateInput {
	first := "An overview of the year in cloud native projects, adoption and community growth."
	second := "Highlights from the community conference: keynotes, project updates and new tools."
	return []post.CreateInput{
		{Title: "2020 CNCF Annual Report", Content: &first},
		{Title: "KubeCon + CloudNativeCon 2021", Content: &second},
	}
}
