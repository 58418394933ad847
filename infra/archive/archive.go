// Package archive reads the offline data export of an account.
//
// Each export file is a JavaScript assignment, "window.YTD.<kind>.part0 = "
// followed by a JSON array. The prefix must match exactly.
package archive

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/CrestNiraj12/curatetl/domain"
)

// Kind names an export file.
type Kind string

const (
	KindTweet Kind = "tweet"
	KindLike  Kind = "like"
)

// Prefix returns the exact framing that opens an export of kind k.
func (k Kind) Prefix() string {
	return "window.YTD." + string(k) + ".part0 = "
}

// createdAtLayout is the timestamp layout used by exported tweets.
const createdAtLayout = time.RubyDate

type tweetRecord struct {
	Tweet struct {
		ID                  string `json:"id_str"`
		Text                string `json:"text"`
		FullText            string `json:"full_text"`
		CreatedAt           string `json:"created_at"`
		InReplyToStatusID   string `json:"in_reply_to_status_id_str"`
		InReplyToScreenName string `json:"in_reply_to_screen_name"`
		Entities            struct {
			Hashtags []struct {
				Text string `json:"text"`
			} `json:"hashtags"`
		} `json:"entities"`
	} `json:"tweet"`
}

type likeRecord struct {
	Like struct {
		TweetID  string `json:"tweetId"`
		FullText string `json:"fullText"`
	} `json:"like"`
}

// LoadTweets parses a tweet export into a post set.
func LoadTweets(path string) (domain.PostSet, error) {
	var records []tweetRecord
	if err := decodeFile(path, KindTweet, &records); err != nil {
		return nil, err
	}

	set := make(domain.PostSet, len(records))
	for _, r := range records {
		t := r.Tweet
		if t.ID == "" {
			continue
		}
		text := t.Text
		if text == "" {
			text = t.FullText
		}
		createdAt, err := time.Parse(createdAtLayout, t.CreatedAt)
		if err != nil {
			slog.Debug("unparseable created_at in export", "id", t.ID, "created_at", t.CreatedAt)
		}

		var tags []string
		for _, h := range t.Entities.Hashtags {
			tags = append(tags, h.Text)
		}

		set.Add(domain.Post{
			ID:              t.ID,
			Text:            text,
			CreatedAt:       createdAt,
			InReplyToID:     t.InReplyToStatusID,
			InReplyToAuthor: t.InReplyToScreenName,
			Hashtags:        tags,
		})
	}
	return set, nil
}

// LoadLikes parses a like export. Exported likes carry no timestamp, so
// CreatedAt is recovered from the liked post's snowflake id.
func LoadLikes(path string) ([]domain.Like, error) {
	var records []likeRecord
	if err := decodeFile(path, KindLike, &records); err != nil {
		return nil, err
	}

	likes := make([]domain.Like, 0, len(records))
	for _, r := range records {
		if r.Like.TweetID == "" {
			continue
		}
		likes = append(likes, domain.Like{
			ID:        r.Like.TweetID,
			Text:      r.Like.FullText,
			CreatedAt: domain.SnowflakeTime(r.Like.TweetID),
		})
	}
	return likes, nil
}

func decodeFile(path string, kind Kind, v any) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s export: %w", kind, err)
	}
	defer f.Close()

	if err := Decode(f, kind, v); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// Decode strips the framing for kind from r and decodes the JSON array into v.
func Decode(r io.Reader, kind Kind, v any) error {
	br := bufio.NewReader(r)
	prefix := kind.Prefix()

	head, err := br.Peek(len(prefix))
	if err != nil && err != io.EOF {
		return fmt.Errorf("reading %s export: %w", kind, err)
	}
	if string(head) != prefix {
		return fmt.Errorf("%w: expected %q at start of %s export", domain.ErrFormat, prefix, kind)
	}
	if _, err := br.Discard(len(prefix)); err != nil {
		return fmt.Errorf("reading %s export: %w", kind, err)
	}

	if err := json.NewDecoder(br).Decode(v); err != nil {
		return fmt.Errorf("parsing %s export: %w", kind, err)
	}
	return nil
}
