package app

import "context"

// PostService deletes posts on a social backend.
type PostService interface {
	// DeletePost removes a post by ID. A post that no longer exists is
	// reported as domain.ErrAlreadyGone.
	DeletePost(ctx context.Context, id string) error
}
