package mastodon

import (
	"context"
	"fmt"
	"net/url"

	"github.com/CrestNiraj12/curatetl/domain"
)

// postService implements app.PostService using the Mastodon API.
type postService struct {
	client *Client
}

// NewPostService creates a PostService backed by Mastodon.
func NewPostService(client *Client) *postService {
	return &postService{client: client}
}

func (s *postService) DeletePost(ctx context.Context, id string) error {
	path := fmt.Sprintf("/api/v1/statuses/%s", url.PathEscape(id))
	_, err := s.client.Delete(ctx, path)
	if isNotFound(err) {
		return fmt.Errorf("deleting %s: %w", id, domain.ErrAlreadyGone)
	}
	if err != nil {
		return fmt.Errorf("deleting status: %w", err)
	}
	return nil
}
