package mastodon

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/CrestNiraj12/curatetl/domain"
)

// favouritesPageLimit is the largest page Mastodon serves for favourites.
const favouritesPageLimit = 40

// likeService implements app.LikeService using Mastodon favourites.
type likeService struct {
	client *Client
}

// NewLikeService creates a LikeService backed by Mastodon.
func NewLikeService(client *Client) *likeService {
	return &likeService{client: client}
}

// ListLikes returns the most recent favourites of the authenticated
// account. Mastodon only exposes the caller's own favourites, so user is
// not part of the request.
func (s *likeService) ListLikes(ctx context.Context, _ string) ([]domain.Like, error) {
	path := fmt.Sprintf("/api/v1/favourites?limit=%d", favouritesPageLimit)
	data, err := s.client.Get(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("fetching favourites: %w", err)
	}

	var statuses []mastodonStatus
	if err := json.Unmarshal(data, &statuses); err != nil {
		return nil, fmt.Errorf("parsing favourites: %w", err)
	}

	likes := make([]domain.Like, 0, len(statuses))
	for _, st := range statuses {
		likes = append(likes, domain.Like{
			ID:        st.ID,
			Text:      stripHTML(st.Content),
			CreatedAt: parseCreatedAt(st),
		})
	}
	return likes, nil
}

func (s *likeService) Unlike(ctx context.Context, id string) error {
	path := fmt.Sprintf("/api/v1/statuses/%s/unfavourite", url.PathEscape(id))
	_, err := s.client.Post(ctx, path, nil)
	if isNotFound(err) {
		return fmt.Errorf("unliking %s: %w", id, domain.ErrAlreadyGone)
	}
	if err != nil {
		return fmt.Errorf("unliking status: %w", err)
	}
	return nil
}
