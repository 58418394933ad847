// Package source supplies the posts and likes a run works on: fetched live,
// restored from the local cache, or read from an offline export.
package source

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/dustin/go-humanize"

	"github.com/CrestNiraj12/curatetl/app"
	"github.com/CrestNiraj12/curatetl/domain"
	"github.com/CrestNiraj12/curatetl/infra/archive"
)

// Cache persists the last fetched timeline for resume.
type Cache interface {
	Save(set domain.PostSet) error
	Load() (domain.PostSet, error)
}

// Source loads records from the live API, the cache, or an export.
type Source struct {
	Timeline app.TimelineService
	Likes    app.LikeService
	Cache    Cache
	Logger   *slog.Logger
}

// Options selects where the timeline comes from.
type Options struct {
	Resume      bool   // Load the cached snapshot instead of fetching
	ArchivePath string // Read an export; wins over Resume
}

// LoadTimeline picks the timeline origin from opts.
func (s *Source) LoadTimeline(ctx context.Context, user string, opts Options) (domain.PostSet, error) {
	switch {
	case opts.ArchivePath != "":
		s.logger().Info("loading posts from archive", "path", opts.ArchivePath)
		return LoadFromExport(opts.ArchivePath)
	case opts.Resume:
		s.logger().Info("loading posts from cache")
		return s.LoadCachedTimeline()
	default:
		return s.FetchTimeline(ctx, user)
	}
}

// FetchTimeline pages the user's timeline from newest to oldest until a
// page makes no progress: it is empty, or its oldest post is the same as
// the previous page's. All pages are merged and the result is cached.
func (s *Source) FetchTimeline(ctx context.Context, user string) (domain.PostSet, error) {
	if s.Timeline == nil {
		return nil, fmt.Errorf("fetching timeline: no timeline service configured")
	}

	set := domain.PostSet{}
	prevOldest := ""
	for page := 1; ; page++ {
		posts, err := s.Timeline.ListTimeline(ctx, user, prevOldest)
		if err != nil {
			return nil, fmt.Errorf("fetching timeline page %d: %w", page, err)
		}

		ids := make([]string, 0, len(posts))
		for _, p := range posts {
			set.Add(p)
			ids = append(ids, p.ID)
		}
		oldest := domain.OldestID(ids)
		s.logger().Info("fetched timeline page",
			"page", page,
			"posts", len(posts),
			"total", humanize.Comma(int64(len(set))),
			"oldest", oldest,
		)

		if len(posts) == 0 || oldest == prevOldest {
			break
		}
		prevOldest = oldest
	}

	if s.Cache != nil {
		if err := s.Cache.Save(set); err != nil {
			return nil, err
		}
	}
	return set, nil
}

// LoadCachedTimeline restores the last fetched snapshot. It fails with
// domain.ErrNotFound when nothing was cached.
func (s *Source) LoadCachedTimeline() (domain.PostSet, error) {
	if s.Cache == nil {
		return nil, fmt.Errorf("loading timeline cache: %w", domain.ErrNotFound)
	}
	return s.Cache.Load()
}

// LoadFromExport reads a tweet export.
func LoadFromExport(path string) (domain.PostSet, error) {
	return archive.LoadTweets(path)
}

// FetchLikes returns the most recent page of the user's likes.
func (s *Source) FetchLikes(ctx context.Context, user string) ([]domain.Like, error) {
	if s.Likes == nil {
		return nil, fmt.Errorf("fetching likes: no like service configured")
	}
	likes, err := s.Likes.ListLikes(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("fetching likes: %w", err)
	}
	return likes, nil
}

// LoadLikesFromExport reads a like export.
func LoadLikesFromExport(path string) ([]domain.Like, error) {
	return archive.LoadLikes(path)
}

// LiveLikes returns the newest page of likes on every call. Unliking a
// page exposes the next one, so callers repeat until it comes back empty.
type LiveLikes struct {
	Source *Source
	User   string
}

func (l LiveLikes) Likes(ctx context.Context) ([]domain.Like, error) {
	return l.Source.FetchLikes(ctx, l.User)
}

// ExportLikes returns the whole export as a single batch.
type ExportLikes struct {
	Path string
}

func (e ExportLikes) Likes(context.Context) ([]domain.Like, error) {
	return LoadLikesFromExport(e.Path)
}

func (s *Source) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
