package twitter

import (
	"errors"
	"fmt"
	"html"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	gotwitter "github.com/dghubble/go-twitter/twitter"

	"github.com/CrestNiraj12/curatetl/domain"
)

// pageLimit is the largest page the v1.1 timeline and favorites
// endpoints serve.
const pageLimit = 200

// Error codes the v1.1 API uses for ids that no longer exist, and for
// rejected credentials.
const (
	codePageNotFound   = 34
	codeStatusNotFound = 144
	codeBadAuth        = 32
	codeInvalidToken   = 89
)

// Client implements the timeline, post, like and account services over
// the Twitter v1.1 API.
type Client struct {
	api *gotwitter.Client
}

// NewClient wraps an HTTP client that already signs requests (see
// auth.OAuth1Credentials). An "errors" payload in a 2xx body fails the
// call like a non-2xx status does.
func NewClient(httpClient *http.Client) *Client {
	return &Client{api: gotwitter.NewClient(withEmbeddedErrors(httpClient))}
}

func parseID(id string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(id), 10, 64)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid tweet id %q", id)
	}
	return n, nil
}

// mapError translates go-twitter errors into domain errors.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	var apiErr gotwitter.APIError
	if !errors.As(err, &apiErr) || len(apiErr.Errors) == 0 {
		return err
	}
	detail := apiErr.Errors[0]
	switch detail.Code {
	case codePageNotFound, codeStatusNotFound:
		return fmt.Errorf("%w: %s", domain.ErrAlreadyGone, detail.Message)
	case codeBadAuth, codeInvalidToken:
		return fmt.Errorf("%w: %s", domain.ErrUnauthorized, detail.Message)
	}
	return &domain.APIError{Code: detail.Code, Message: detail.Message}
}

// createdAtTime returns the zero time for a malformed timestamp, which
// the age rule treats as brand new.
func createdAtTime(t gotwitter.Tweet) time.Time {
	ts, err := t.CreatedAtTime()
	if err != nil {
		slog.Debug("unparseable created_at", "id", t.IDStr, "created_at", t.CreatedAt)
	}
	return ts
}

func tweetText(t gotwitter.Tweet) string {
	text := t.FullText
	if text == "" {
		text = t.Text
	}
	return html.UnescapeString(text)
}
