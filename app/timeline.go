package app

import (
	"context"

	"github.com/CrestNiraj12/curatetl/domain"
)

// TimelineService pages through an account's own posts.
type TimelineService interface {
	// ListTimeline returns one page of the user's posts, newest first.
	// beforeID bounds the page to posts at or older than that id; an empty
	// beforeID starts from the newest post.
	ListTimeline(ctx context.Context, user, beforeID string) ([]domain.Post, error)
}
