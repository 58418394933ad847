package twitter

import (
	"context"
	"fmt"

	gotwitter "github.com/dghubble/go-twitter/twitter"

	"github.com/CrestNiraj12/curatetl/app"
)

func (c *Client) CurrentProfile(ctx context.Context) (app.Profile, error) {
	if err := ctx.Err(); err != nil {
		return app.Profile{}, err
	}
	user, _, err := c.api.Accounts.VerifyCredentials(&gotwitter.AccountVerifyParams{
		SkipStatus: gotwitter.Bool(true),
	})
	if err != nil {
		return app.Profile{}, fmt.Errorf("fetching account: %w", mapError(err))
	}
	return app.Profile{ID: user.IDStr, Username: user.ScreenName, DisplayName: user.Name}, nil
}
