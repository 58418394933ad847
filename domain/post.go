package domain

import (
	"sort"
	"strings"
	"time"
)

// retweetMarker is the literal text prefix that identifies a repost.
const retweetMarker = "RT"

// Post is a single status from the account's timeline.
type Post struct {
	ID              string    `json:"id"`
	Author          string    `json:"author"`
	Text            string    `json:"text"`
	CreatedAt       time.Time `json:"created_at"`
	InReplyToID     string    `json:"in_reply_to_id,omitempty"`
	InReplyToAuthor string    `json:"in_reply_to_author,omitempty"`
	Hashtags        []string  `json:"hashtags,omitempty"`
}

// IsRetweet reports whether the post is a repost, recognized purely by its
// text starting with "RT".
func (p Post) IsRetweet() bool {
	return strings.HasPrefix(p.Text, retweetMarker)
}

// IsMention reports whether the post's text opens with an @-reference.
func (p Post) IsMention() bool {
	return strings.HasPrefix(p.Text, "@") || strings.HasPrefix(p.Text, ".@")
}

// IsReply reports whether the post answers another post.
func (p Post) IsReply() bool {
	return p.InReplyToAuthor != ""
}

// DaysOld returns the number of whole days elapsed between creation and now.
func (p Post) DaysOld(now time.Time) int {
	return daysBetween(p.CreatedAt, now)
}

// PostSet holds every post known for the current run, keyed by ID.
// It doubles as the reply graph: a reply's parent is "visible" when its ID
// is a key of the set.
type PostSet map[string]Post

// Add inserts or replaces a post. Content is immutable, so a later copy of
// the same ID is interchangeable with an earlier one.
func (s PostSet) Add(p Post) {
	s[p.ID] = p
}

// Has reports whether id is present.
func (s PostSet) Has(id string) bool {
	if id == "" {
		return false
	}
	_, ok := s[id]
	return ok
}

// Sorted returns the posts newest first.
func (s PostSet) Sorted() []Post {
	out := make([]Post, 0, len(s))
	for _, p := range s {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		return CompareIDs(out[i].ID, out[j].ID) > 0
	})
	return out
}

// Like is a post the account has liked. CreatedAt is the creation time of
// the liked post; the like action itself carries no timestamp.
type Like struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// DaysOld returns the age of the liked post in whole days.
func (l Like) DaysOld(now time.Time) int {
	return daysBetween(l.CreatedAt, now)
}

func daysBetween(from, to time.Time) int {
	if from.IsZero() || to.Before(from) {
		return 0
	}
	return int(to.Sub(from) / (24 * time.Hour))
}
