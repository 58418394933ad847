package mastodon

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/CrestNiraj12/curatetl/app"
)

// accountService implements app.AccountService and resolves account
// handles to ids.
type accountService struct {
	client *Client
	ids    map[string]string // acct -> id
}

// NewAccountService creates an AccountService backed by Mastodon.
func NewAccountService(client *Client) *accountService {
	return &accountService{client: client, ids: make(map[string]string)}
}

type mastodonAccount struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Acct        string `json:"acct"`
}

func (s *accountService) CurrentProfile(ctx context.Context) (app.Profile, error) {
	data, err := s.client.Get(ctx, "/api/v1/accounts/verify_credentials")
	if err != nil {
		return app.Profile{}, fmt.Errorf("fetching account: %w", err)
	}

	var acct mastodonAccount
	if err := json.Unmarshal(data, &acct); err != nil {
		return app.Profile{}, fmt.Errorf("parsing account: %w", err)
	}

	s.ids[strings.ToLower(acct.Acct)] = acct.ID
	return app.Profile{
		ID:          acct.ID,
		Username:    sanitizeForTerminal(acct.Acct),
		DisplayName: sanitizeForTerminal(acct.DisplayName),
	}, nil
}

// AccountID resolves a handle such as "alice" or "alice@example.social".
func (s *accountService) AccountID(ctx context.Context, acct string) (string, error) {
	acct = strings.TrimPrefix(strings.TrimSpace(acct), "@")
	if acct == "" {
		return "", fmt.Errorf("invalid account handle")
	}
	if id, ok := s.ids[strings.ToLower(acct)]; ok {
		return id, nil
	}

	data, err := s.client.Get(ctx, "/api/v1/accounts/lookup?acct="+url.QueryEscape(acct))
	if err != nil {
		return "", fmt.Errorf("looking up account %s: %w", acct, err)
	}
	var found mastodonAccount
	if err := json.Unmarshal(data, &found); err != nil {
		return "", fmt.Errorf("parsing account lookup: %w", err)
	}
	if found.ID == "" {
		return "", fmt.Errorf("account %s has no id", acct)
	}

	s.ids[strings.ToLower(acct)] = found.ID
	return found.ID, nil
}
