package post

import "context"

// Repository defines data access for posts
type Repository interface {
	// List returns every post ordered by id ascending.
	List(ctx context.Context) ([]*Post, error)
	// Get returns ErrNotFound when no row matches id.
	Get(ctx context.Context, id int64) (*Post, error)
	// Create validates and inserts a post, returning it with its assigned id.
	Create(ctx context.Context, in *CreateInput) (*Post, error)
}
