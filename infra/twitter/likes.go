package twitter

import (
	"context"
	"fmt"

	gotwitter "github.com/dghubble/go-twitter/twitter"

	"github.com/CrestNiraj12/curatetl/domain"
)

// ListLikes returns the newest page of tweets user has liked.
func (c *Client) ListLikes(ctx context.Context, user string) ([]domain.Like, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tweets, _, err := c.api.Favorites.List(&gotwitter.FavoriteListParams{
		ScreenName: user,
		Count:      pageLimit,
		TweetMode:  "extended",
	})
	if err != nil {
		return nil, fmt.Errorf("fetching likes: %w", mapError(err))
	}

	likes := make([]domain.Like, 0, len(tweets))
	for _, t := range tweets {
		likes = append(likes, domain.Like{ID: t.IDStr, Text: tweetText(t), CreatedAt: createdAtTime(t)})
	}
	return likes, nil
}

func (c *Client) Unlike(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	n, err := parseID(id)
	if err != nil {
		return err
	}
	if _, _, err := c.api.Favorites.Destroy(&gotwitter.FavoriteDestroyParams{ID: n}); err != nil {
		return fmt.Errorf("unliking %s: %w", id, mapError(err))
	}
	return nil
}
