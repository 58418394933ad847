package twitter

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	gotwitter "github.com/dghubble/go-twitter/twitter"
)

// embeddedErrorTransport fails 2xx responses whose body carries an
// "errors" payload. go-twitter only decodes errors on non-2xx statuses.
type embeddedErrorTransport struct {
	base http.RoundTripper
}

func (t embeddedErrorTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	resp, err := base.RoundTrip(req)
	if err != nil || resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp, err
	}

	data, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, err
	}
	if apiErr, ok := embeddedError(data); ok {
		return nil, apiErr
	}
	resp.Body = io.NopCloser(bytes.NewReader(data))
	resp.ContentLength = int64(len(data))
	return resp, nil
}

// embeddedError extracts a non-empty "errors" array of a JSON object body.
func embeddedError(data []byte) (gotwitter.APIError, bool) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return gotwitter.APIError{}, false
	}
	var body gotwitter.APIError
	if err := json.Unmarshal(trimmed, &body); err != nil || len(body.Errors) == 0 {
		return gotwitter.APIError{}, false
	}
	return body, true
}

// withEmbeddedErrors returns a copy of c whose transport checks 2xx bodies.
func withEmbeddedErrors(c *http.Client) *http.Client {
	if c == nil {
		c = &http.Client{}
	}
	wrapped := *c
	wrapped.Transport = embeddedErrorTransport{base: c.Transport}
	return &wrapped
}
