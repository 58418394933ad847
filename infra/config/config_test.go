package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestLoad_DefaultsToTwitter(t *testing.T) {
	t.Setenv("CURATETL_BACKEND", "")
	t.Setenv("CURATETL_STATE_DIR", "")
	t.Setenv("TWITTER_CONSUMER_KEY", "ck")
	t.Setenv("TWITTER_ACCESS_TOKEN_SECRET", "as")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Backend != BackendTwitter || cfg.StateDir != "." {
		t.Fatalf("unexpected defaults: %#v", cfg)
	}
	if cfg.Twitter.ConsumerKey != "ck" || cfg.Twitter.AccessSecret != "as" {
		t.Fatalf("unexpected credentials: %#v", cfg.Twitter)
	}
	if cfg.DeletedLedgerPath() != DeletedLedgerFile {
		t.Fatalf("unexpected ledger path: %q", cfg.DeletedLedgerPath())
	}
}

func TestLoad_ParsesMastodonEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CURATETL_BACKEND", "Mastodon")
	t.Setenv("CURATETL_INSTANCE", "https://example.social/")
	t.Setenv("CURATETL_TOKEN", filepath.Join(dir, "token"))
	t.Setenv("CURATETL_STATE_DIR", dir)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.InstanceURL != "https://example.social" {
		t.Fatalf("instance must be normalized: %q", cfg.InstanceURL)
	}
	if cfg.TokenPath != filepath.Join(dir, "token") {
		t.Fatalf("unexpected token path: %q", cfg.TokenPath)
	}
	paths := []string{cfg.TimelineCachePath(), cfg.DeletedLedgerPath(), cfg.UnlikedLedgerPath()}
	want := []string{
		filepath.Join(dir, "tweets.json"),
		filepath.Join(dir, "deleted_ids.json"),
		filepath.Join(dir, "unliked_ids.json"),
	}
	if !reflect.DeepEqual(paths, want) {
		t.Fatalf("unexpected state paths: %v", paths)
	}
}

func TestLoad_Rejects(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "non-https instance", env: map[string]string{"CURATETL_BACKEND": "mastodon", "CURATETL_INSTANCE": "http://insecure.local"}},
		{name: "relative instance", env: map[string]string{"CURATETL_BACKEND": "mastodon", "CURATETL_INSTANCE": "example.social"}},
		{name: "unknown backend", env: map[string]string{"CURATETL_BACKEND": "myspace"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func writeConf(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "conf.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write conf failed: %v", err)
	}
	return path
}

func TestLoadRetention_ParsesFile(t *testing.T) {
	path := writeConf(t, `
username: "@owner"
safe_hashtags: ["#keep", "pinned"]
safe_text: ["remember"]
safe_ids:
  - 1212092628029698048
  - "42"
safe_prefix: ["[archive]"]
`)
	f, err := LoadRetention(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	days := 30
	cfg := f.Retention(&days, false, true)
	if cfg.Owner != "owner" {
		t.Fatalf("owner must drop the @: %q", cfg.Owner)
	}
	if !reflect.DeepEqual(cfg.SafeHashtags, []string{"keep", "pinned"}) {
		t.Fatalf("unexpected hashtags: %v", cfg.SafeHashtags)
	}
	if !reflect.DeepEqual(cfg.SafeIDs, []string{"1212092628029698048", "42"}) {
		t.Fatalf("ids must keep their literal text: %v", cfg.SafeIDs)
	}
	if cfg.SafeText[0] != "remember" || cfg.SafePrefixes[0] != "[archive]" {
		t.Fatalf("unexpected config: %#v", cfg)
	}
	if *cfg.OlderThanDays != 30 || cfg.OnlyRetweets || !cfg.OnlyMentions {
		t.Fatalf("flags not carried: %#v", cfg)
	}
}

func TestLoadRetention_Errors(t *testing.T) {
	if _, err := LoadRetention(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected missing-file error")
	}

	_, err := LoadRetention(writeConf(t, "safe_text: [a]\n"))
	if err == nil || !strings.Contains(err.Error(), "username") {
		t.Fatalf("expected username error, got: %v", err)
	}

	if _, err := LoadRetention(writeConf(t, "username: me\nsafe_ids: 5\n")); err == nil {
		t.Fatalf("expected error for scalar safe_ids")
	}
}

func TestLoadRetention_AcceptsSymbolKeys(t *testing.T) {
	path := writeConf(t, `
:username: owner
:safe_hashtags:
  - keep
:safe_text: []
:safe_ids:
  - 1212092628029698048
:safe_prefix: ["[pin]"]
`)
	f, err := LoadRetention(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	cfg := f.Retention(nil, false, false)
	if cfg.Owner != "owner" || cfg.SafeHashtags[0] != "keep" || cfg.SafePrefixes[0] != "[pin]" {
		t.Fatalf("symbol keys not mapped: %#v", cfg)
	}
	if !reflect.DeepEqual(cfg.SafeIDs, []string{"1212092628029698048"}) {
		t.Fatalf("unexpected ids: %v", cfg.SafeIDs)
	}
}
