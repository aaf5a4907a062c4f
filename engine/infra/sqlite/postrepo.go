package sqlite

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/sqlscan"
	"github.com/techtrends/techtrends/engine/post"
)

var postColumns = []string{"id", "title", "content"}

func selectPostsBuilder() squirrel.SelectBuilder {
	return squirrel.
		Select(postColumns...).
		From("posts")
}

// PostRepo implements post.Repository; each call uses its own connection.
type PostRepo struct {
	accessor *Accessor
}

var _ post.Repository = (*PostRepo)(nil)

// NewPostRepo creates a repository on top of the accessor.
func NewPostRepo(a *Accessor) *PostRepo {
	return &PostRepo{accessor: a}
}

func (r *PostRepo) List(ctx context.Context) ([]*post.Post, error) {
	query, args, err := selectPostsBuilder().OrderBy("id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("sqlite: build list posts query: %w", err)
	}
	posts := make([]*post.Post, 0)
	if err := r.accessor.WithConn(ctx, func(c *Conn) error {
		return sqlscan.Select(ctx, c, &posts, query, args...)
	}); err != nil {
		return nil, fmt.Errorf("sqlite: list posts: %w", err)
	}
	return posts, nil
}

func (r *PostRepo) Get(ctx context.Context, id int64) (*post.Post, error) {
	query, args, err := selectPostsBuilder().Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("sqlite: build get post query: %w", err)
	}
	var p post.Post
	if err := r.accessor.WithConn(ctx, func(c *Conn) error {
		return sqlscan.Get(ctx, c, &p, query, args...)
	}); err != nil {
		if sqlscan.NotFound(err) {
			return nil, post.ErrNotFound
		}
		return nil, fmt.Errorf("sqlite: get post %d: %w", id, err)
	}
	return &p, nil
}

func (r *PostRepo) Create(ctx context.Context, in *post.CreateInput) (*post.Post, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var content any
	if in.Content != nil {
		content = *in.Content
	}
	query, args, err := squirrel.
		Insert("posts").
		Columns("title", "content").
		Values(in.Title, content).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("sqlite: build insert post query: %w", err)
	}
	var id int64
	if err := r.accessor.WithConn(ctx, func(c *Conn) error {
		res, err := c.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}
		id, err = res.LastInsertId()
		return err
	}); err != nil {
		return nil, fmt.Errorf("sqlite: insert post: %w", err)
	}
	return &post.Post{ID: id, Title: in.Title, Content: in.Content}, nil
}
