package twitter

import (
	"context"
	"fmt"

	gotwitter "github.com/dghubble/go-twitter/twitter"
)

func (c *Client) DeletePost(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	n, err := parseID(id)
	if err != nil {
		return err
	}
	if _, _, err := c.api.Statuses.Destroy(n, &gotwitter.StatusDestroyParams{}); err != nil {
		return fmt.Errorf("deleting %s: %w", id, mapError(err))
	}
	return nil
}
