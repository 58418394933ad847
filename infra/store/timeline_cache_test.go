package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/CrestNiraj12/curatetl/domain"
)

func TestTimelineCache_RoundTrip(t *testing.T) {
	cache := NewTimelineCache(filepath.Join(t.TempDir(), "tweets.json"))

	created := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
	set := domain.PostSet{}
	set.Add(domain.Post{ID: "1", Author: "me", Text: "hi", CreatedAt: created, Hashtags: []string{"go"}})
	set.Add(domain.Post{ID: "2", Text: "reply", InReplyToID: "1", InReplyToAuthor: "me"})

	if err := cache.Save(set); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	got, err := cache.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 posts, got %d", len(got))
	}
	if p := got["1"]; !p.CreatedAt.Equal(created) || p.Hashtags[0] != "go" {
		t.Fatalf("unexpected post: %#v", p)
	}
	if got["2"].InReplyToID != "1" {
		t.Fatalf("reply link lost: %#v", got["2"])
	}
}

func TestTimelineCache_MissingIsNotFound(t *testing.T) {
	cache := NewTimelineCache(filepath.Join(t.TempDir(), "tweets.json"))
	_, err := cache.Load()
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTimelineCache_FillsMissingIDsFromKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tweets.json")
	if err := os.WriteFile(path, []byte(`{"77":{"text":"x"}}`), 0o600); err != nil {
		t.Fatalf("seed: %v", err)
	}
	got, err := NewTimelineCache(path).Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got["77"].ID != "77" {
		t.Fatalf("expected id from key, got %#v", got["77"])
	}
}

func TestTimelineCache_RawTweetSnapshotFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tweets.json")
	raw := `{"1001":{"id_str":"1001","full_text":"old","created_at":"Wed Oct 10 20:19:24 +0000 2018"}}`
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := NewTimelineCache(path).Load(); err == nil || errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("foreign cache schema must be a parse error, got %v", err)
	}
}
