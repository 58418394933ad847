package app

import (
	"context"

	"github.com/CrestNiraj12/curatetl/domain"
)

// LikeService lists and removes the account's likes.
type LikeService interface {
	// ListLikes returns the most recent page of likes.
	ListLikes(ctx context.Context, user string) ([]domain.Like, error)

	// Unlike removes a like by liked-post ID. A like that no longer exists
	// is reported as domain.ErrAlreadyGone.
	Unlike(ctx context.Context, id string) error
}
