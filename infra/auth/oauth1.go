package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/dghubble/oauth1"

	"github.com/CrestNiraj12/curatetl/domain"
)

// OAuth1Credentials are the four user-context keys the Twitter v1.1 API
// signs requests with.
type OAuth1Credentials struct {
	ConsumerKey    string
	ConsumerSecret string
	AccessToken    string
	AccessSecret   string
}

// Validate reports which keys are missing.
func (c OAuth1Credentials) Validate() error {
	var missing []string
	for _, f := range []struct{ name, val string }{
		{"TWITTER_CONSUMER_KEY", c.ConsumerKey},
		{"TWITTER_CONSUMER_SECRET", c.ConsumerSecret},
		{"TWITTER_ACCESS_TOKEN", c.AccessToken},
		{"TWITTER_ACCESS_TOKEN_SECRET", c.AccessSecret},
	} {
		if strings.TrimSpace(f.val) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", domain.ErrUnauthorized, strings.Join(missing, ", "))
	}
	return nil
}

// HTTPClient returns a client that signs every request.
func (c OAuth1Credentials) HTTPClient(ctx context.Context) (*http.Client, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	config := oauth1.NewConfig(c.ConsumerKey, c.ConsumerSecret)
	token := oauth1.NewToken(c.AccessToken, c.AccessSecret)
	return config.Client(ctx, token), nil
}
