package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/CrestNiraj12/curatetl/infra/auth"
)

// Backend names the API a run talks to.
type Backend string

const (
	BackendTwitter  Backend = "twitter"
	BackendMastodon Backend = "mastodon"
)

// State file names inside the state directory.
const (
	TimelineCacheFile = "tweets.json"
	DeletedLedgerFile = "deleted_ids.json"
	UnlikedLedgerFile = "unliked_ids.json"
)

// Config holds application-level configuration.
type Config struct {
	Backend     Backend
	StateDir    string // Directory holding the cache and ledgers
	InstanceURL string // Mastodon only, e.g. "https://mastodon.social"
	TokenPath   string // Mastodon only: file containing the access token
	Twitter     auth.OAuth1Credentials
}

// Load reads configuration from environment variables.
//
//	CURATETL_BACKEND     twitter (default) or mastodon
//	CURATETL_STATE_DIR   Directory for the cache and ledgers (default: ".")
//	CURATETL_INSTANCE    Mastodon instance URL (default: https://mastodon.social)
//	CURATETL_TOKEN       Path to token file (default: ~/.config/curatetl/token)
//	TWITTER_CONSUMER_KEY, TWITTER_CONSUMER_SECRET,
//	TWITTER_ACCESS_TOKEN, TWITTER_ACCESS_TOKEN_SECRET
func Load() (Config, error) {
	cfg := Config{
		Backend:  Backend(strings.ToLower(strings.TrimSpace(os.Getenv("CURATETL_BACKEND")))),
		StateDir: os.Getenv("CURATETL_STATE_DIR"),
	}
	if cfg.Backend == "" {
		cfg.Backend = BackendTwitter
	}
	if cfg.StateDir == "" {
		cfg.StateDir = "."
	}

	switch cfg.Backend {
	case BackendTwitter:
		cfg.Twitter = auth.OAuth1Credentials{
			ConsumerKey:    os.Getenv("TWITTER_CONSUMER_KEY"),
			ConsumerSecret: os.Getenv("TWITTER_CONSUMER_SECRET"),
			AccessToken:    os.Getenv("TWITTER_ACCESS_TOKEN"),
			AccessSecret:   os.Getenv("TWITTER_ACCESS_TOKEN_SECRET"),
		}
	case BackendMastodon:
		instance, err := instanceURL(os.Getenv("CURATETL_INSTANCE"))
		if err != nil {
			return Config{}, err
		}
		cfg.InstanceURL = instance

		cfg.TokenPath = os.Getenv("CURATETL_TOKEN")
		if cfg.TokenPath == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return Config{}, fmt.Errorf("cannot determine home directory: %w", err)
			}
			cfg.TokenPath = filepath.Join(home, ".config", "curatetl", "token")
		}
	default:
		return Config{}, fmt.Errorf("invalid CURATETL_BACKEND %q: want twitter or mastodon", cfg.Backend)
	}

	return cfg, nil
}

func instanceURL(raw string) (string, error) {
	if raw == "" {
		raw = "https://mastodon.social"
	}
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", fmt.Errorf("invalid CURATETL_INSTANCE: must be an absolute URL")
	}
	if parsed.Scheme != "https" {
		return "", fmt.Errorf("invalid CURATETL_INSTANCE: only https is allowed")
	}
	return strings.TrimRight(parsed.String(), "/"), nil
}

// TimelineCachePath is the timeline snapshot used by --resume.
func (c Config) TimelineCachePath() string {
	return filepath.Join(c.StateDir, TimelineCacheFile)
}

// DeletedLedgerPath is the ledger of deleted post ids.
func (c Config) DeletedLedgerPath() string {
	return filepath.Join(c.StateDir, DeletedLedgerFile)
}

// UnlikedLedgerPath is the ledger of unliked post ids.
func (c Config) UnlikedLedgerPath() string {
	return filepath.Join(c.StateDir, UnlikedLedgerFile)
}
