package twitter

import (
	"context"
	"fmt"

	gotwitter "github.com/dghubble/go-twitter/twitter"

	"github.com/CrestNiraj12/curatetl/domain"
)

// ListTimeline returns up to 200 tweets of user at or below beforeID.
// max_id is inclusive, so the page boundary repeats and paging settles
// on the oldest tweet.
func (c *Client) ListTimeline(ctx context.Context, user, beforeID string) ([]domain.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	params := &gotwitter.UserTimelineParams{
		ScreenName:      user,
		Count:           pageLimit,
		IncludeRetweets: gotwitter.Bool(true),
		TweetMode:       "extended",
	}
	if beforeID != "" {
		maxID, err := parseID(beforeID)
		if err != nil {
			return nil, err
		}
		params.MaxID = maxID
	}

	tweets, _, err := c.api.Timelines.UserTimeline(params)
	if err != nil {
		return nil, fmt.Errorf("fetching timeline: %w", mapError(err))
	}

	posts := make([]domain.Post, 0, len(tweets))
	for _, t := range tweets {
		posts = append(posts, mapTweet(t))
	}
	return posts, nil
}

func mapTweet(t gotwitter.Tweet) domain.Post {
	createdAt := createdAtTime(t)
	p := domain.Post{
		ID:              t.IDStr,
		Text:            tweetText(t),
		CreatedAt:       createdAt,
		InReplyToID:     t.InReplyToStatusIDStr,
		InReplyToAuthor: t.InReplyToScreenName,
	}
	if t.User != nil {
		p.Author = t.User.ScreenName
	}
	if t.Entities != nil {
		for _, h := range t.Entities.Hashtags {
			p.Hashtags = append(p.Hashtags, h.Text)
		}
	}
	return p
}
