package mastodon

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/CrestNiraj12/curatetl/domain"
	"github.com/CrestNiraj12/curatetl/infra/auth"
)

// Client is a thin HTTP wrapper for the Mastodon API.
// It handles base URL construction and bearer token injection.
type Client struct {
	baseURL       string
	tokenProvider auth.TokenProvider
	http          *http.Client
}

// NewClient creates a Mastodon API client.
func NewClient(baseURL string, tp auth.TokenProvider) *Client {
	return &Client{
		baseURL:       strings.TrimRight(baseURL, "/"),
		tokenProvider: tp,
		http:          &http.Client{},
	}
}

// StatusError is a non-2xx response.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API %s %s returned %d: %s", e.Method, e.Path, e.StatusCode, e.Message)
}

// apiErrorBody is the error envelope Mastodon uses, on failures and
// occasionally on otherwise successful responses.
type apiErrorBody struct {
	Error string `json:"error"`
}

// Get performs an authenticated GET request.
func (c *Client) Get(ctx context.Context, path string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

// Post performs an authenticated POST request.
func (c *Client) Post(ctx context.Context, path string, body io.Reader) ([]byte, error) {
	return c.do(ctx, http.MethodPost, path, body)
}

// Delete performs an authenticated DELETE request.
func (c *Client) Delete(ctx context.Context, path string) ([]byte, error) {
	return c.do(ctx, http.MethodDelete, path, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader) ([]byte, error) {
	token, err := c.tokenProvider.AccessToken()
	if err != nil {
		return nil, fmt.Errorf("auth: %w", err)
	}

	url := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := strings.TrimSpace(string(data))
		if e := embeddedError(data); e != "" {
			msg = e
		}
		serr := &StatusError{Method: method, Path: path, StatusCode: resp.StatusCode, Message: msg}
		if resp.StatusCode == http.StatusUnauthorized {
			return nil, fmt.Errorf("%w: %w", domain.ErrUnauthorized, serr)
		}
		return nil, serr
	}

	if e := embeddedError(data); e != "" {
		return nil, &domain.APIError{Message: e}
	}

	return data, nil
}

// embeddedError extracts the "error" field of a JSON object body.
func embeddedError(data []byte) string {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return ""
	}
	var body apiErrorBody
	if err := json.Unmarshal(trimmed, &body); err != nil {
		return ""
	}
	return body.Error
}

// isNotFound reports a 404 response, which Mastodon returns for statuses
// that were already deleted.
func isNotFound(err error) bool {
	var serr *StatusError
	return errors.As(err, &serr) && serr.StatusCode == http.StatusNotFound
}
