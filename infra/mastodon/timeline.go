package mastodon

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"log/slog"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"

	"github.com/CrestNiraj12/curatetl/domain"
)

// statusPageLimit is the largest page Mastodon serves for account statuses.
const statusPageLimit = 40

// timelineService implements app.TimelineService using the Mastodon API.
type timelineService struct {
	client   *Client
	accounts *accountService
}

// NewTimelineService creates a TimelineService backed by Mastodon.
func NewTimelineService(client *Client, accounts *accountService) *timelineService {
	return &timelineService{client: client, accounts: accounts}
}

// mastodonStatus is the subset of Mastodon's Status entity we care about.
type mastodonStatus struct {
	ID                 string            `json:"id"`
	Content            string            `json:"content"` // HTML
	CreatedAt          string            `json:"created_at"`
	InReplyToID        *string           `json:"in_reply_to_id"`
	InReplyToAccountID *string           `json:"in_reply_to_account_id"`
	Account            mastodonAccount   `json:"account"`
	Reblog             *mastodonStatus   `json:"reblog"`
	Tags               []mastodonTag     `json:"tags"`
	Mentions           []mastodonMention `json:"mentions"`
}

type mastodonTag struct {
	Name string `json:"name"`
}

type mastodonMention struct {
	ID   string `json:"id"`
	Acct string `json:"acct"`
}

// ListTimeline returns up to 40 statuses of user older than beforeID.
// Mastodon's max_id is exclusive, so the last page comes back empty.
func (s *timelineService) ListTimeline(ctx context.Context, user, beforeID string) ([]domain.Post, error) {
	accountID, err := s.accounts.AccountID(ctx, user)
	if err != nil {
		return nil, err
	}

	path := fmt.Sprintf("/api/v1/accounts/%s/statuses?limit=%d", url.PathEscape(accountID), statusPageLimit)
	if beforeID != "" {
		path += "&max_id=" + url.QueryEscape(beforeID)
	}

	data, err := s.client.Get(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("fetching timeline: %w", err)
	}

	var statuses []mastodonStatus
	if err := json.Unmarshal(data, &statuses); err != nil {
		return nil, fmt.Errorf("parsing timeline: %w", err)
	}
	return mapStatuses(statuses), nil
}

func mapStatuses(statuses []mastodonStatus) []domain.Post {
	posts := make([]domain.Post, 0, len(statuses))
	for _, st := range statuses {
		posts = append(posts, mapStatus(st))
	}
	return posts
}

func mapStatus(st mastodonStatus) domain.Post {
	createdAt := parseCreatedAt(st)

	text := stripHTML(st.Content)
	if st.Reblog != nil {
		// Reblogs carry no content of their own; render them with the
		// literal marker the retention rules recognize.
		text = "RT @" + sanitizeForTerminal(st.Reblog.Account.Acct) + ": " + stripHTML(st.Reblog.Content)
	}

	tags := make([]string, 0, len(st.Tags))
	for _, t := range st.Tags {
		tags = append(tags, t.Name)
	}

	p := domain.Post{
		ID:        st.ID,
		Author:    sanitizeForTerminal(st.Account.Acct),
		Text:      text,
		CreatedAt: createdAt,
		Hashtags:  tags,
	}
	if st.InReplyToID != nil {
		p.InReplyToID = *st.InReplyToID
		p.InReplyToAuthor = replyAuthor(st)
	}
	return p
}

// parseCreatedAt returns the zero time for a missing or malformed
// timestamp, which the age rule treats as brand new.
func parseCreatedAt(st mastodonStatus) time.Time {
	t, err := time.Parse(time.RFC3339, st.CreatedAt)
	if err != nil {
		slog.Debug("unparseable created_at", "id", st.ID, "created_at", st.CreatedAt)
	}
	return t
}

// replyAuthor names the account a status replies to. Mastodon only gives
// the account id, so the handle comes from the mentions or, for a
// self-reply, from the status author.
func replyAuthor(st mastodonStatus) string {
	if st.InReplyToAccountID == nil {
		return ""
	}
	id := *st.InReplyToAccountID
	if id == st.Account.ID {
		return sanitizeForTerminal(st.Account.Acct)
	}
	for _, m := range st.Mentions {
		if m.ID == id {
			return sanitizeForTerminal(m.Acct)
		}
	}
	return ""
}

var (
	htmlTagRe   = regexp.MustCompile(`<[^>]*>`)
	lineBreakRe = regexp.MustCompile(`(?i)</p>|<br\s*/?>`)
)

// stripHTML removes HTML tags and decodes entities.
func stripHTML(s string) string {
	s = lineBreakRe.ReplaceAllString(s, "\n")
	s = htmlTagRe.ReplaceAllString(s, "")
	return strings.TrimSpace(sanitizeForTerminal(html.UnescapeString(s)))
}

// sanitizeForTerminal drops escape sequences and control characters other
// than newlines and tabs.
func sanitizeForTerminal(s string) string {
	s = ansi.Strip(s)
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, s)
}
