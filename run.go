package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/CrestNiraj12/curatetl/app"
	"github.com/CrestNiraj12/curatetl/app/pipeline"
	"github.com/CrestNiraj12/curatetl/app/policy"
	"github.com/CrestNiraj12/curatetl/app/source"
	"github.com/CrestNiraj12/curatetl/domain"
	"github.com/CrestNiraj12/curatetl/infra/auth"
	"github.com/CrestNiraj12/curatetl/infra/config"
	"github.com/CrestNiraj12/curatetl/infra/mastodon"
	"github.com/CrestNiraj12/curatetl/infra/store"
	"github.com/CrestNiraj12/curatetl/infra/twitter"
	"github.com/CrestNiraj12/curatetl/tui/common"
	"github.com/CrestNiraj12/curatetl/tui/progress"
)

// backend groups the live API services of one account.
type backend struct {
	Account  app.AccountService
	Timeline app.TimelineService
	Posts    app.PostService
	Likes    app.LikeService
}

func newBackend(ctx context.Context, cfg config.Config) (backend, error) {
	switch cfg.Backend {
	case config.BackendMastodon:
		client := mastodon.NewClient(cfg.InstanceURL, auth.NewFileTokenProvider(cfg.TokenPath))
		accounts := mastodon.NewAccountService(client)
		return backend{
			Account:  accounts,
			Timeline: mastodon.NewTimelineService(client, accounts),
			Posts:    mastodon.NewPostService(client),
			Likes:    mastodon.NewLikeService(client),
		}, nil
	default:
		httpClient, err := cfg.Twitter.HTTPClient(ctx)
		if err != nil {
			return backend{}, err
		}
		client := twitter.NewClient(httpClient)
		return backend{Account: client, Timeline: client, Posts: client, Likes: client}, nil
	}
}

// runner is one curation run: likes first, then posts.
type runner struct {
	opts      options
	cfg       config.Config
	retention domain.RetentionConfig
	api       backend
	confirm   app.Confirmer
	reporter  app.Reporter
	out       io.Writer
	logger    *slog.Logger
	now       func() time.Time
}

func (r *runner) run(ctx context.Context) error {
	if err := r.checkAccount(ctx); err != nil {
		return err
	}
	if !r.opts.skipLikes {
		if err := r.cleanLikes(ctx); err != nil {
			return err
		}
	}
	return r.deletePosts(ctx)
}

// checkAccount verifies the credentials before anything is deleted and
// warns when they belong to a different account than the rules file.
func (r *runner) checkAccount(ctx context.Context) error {
	if r.opts.dryRun || r.api.Account == nil {
		return nil
	}
	me, err := r.api.Account.CurrentProfile(ctx)
	if err != nil {
		return fmt.Errorf("verifying credentials: %w", err)
	}
	if !strings.EqualFold(me.Username, r.retention.Owner) {
		r.logger.Warn("credentials belong to another account", "authenticated", me.Username, "configured", r.retention.Owner)
	}
	return nil
}

func (r *runner) limiter() pipeline.Limiter {
	if r.opts.rate <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Limit(r.opts.rate), 1)
}

func (r *runner) cleanLikes(ctx context.Context) error {
	if !r.opts.dryRun {
		ok, err := r.confirm.Confirm(ctx, "Delete likes")
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}

	fmt.Fprintln(r.out, common.AppTitleStyle.Render("Removing likes"))

	restore := r.opts.resume || r.opts.likesArchive != ""
	ledger, err := store.OpenLedger(r.cfg.UnlikedLedgerPath(), restore)
	if err != nil {
		return err
	}

	var likes pipeline.LikeSource = source.LiveLikes{
		Source: &source.Source{Likes: r.api.Likes, Logger: r.logger},
		User:   r.retention.Owner,
	}
	if r.opts.likesArchive != "" {
		likes = source.ExportLikes{Path: r.opts.likesArchive}
	}

	loop := &pipeline.LikesLoop{
		Source:        likes,
		Unlike:        r.api.Likes.Unlike,
		Ledger:        ledger,
		ChunkSize:     r.opts.chunkSize,
		OlderThanDays: r.retention.OlderThanDays,
		Repeat:        r.opts.likesArchive == "",
		Confirm:       r.confirm,
		Reporter:      r.reporter,
		Limiter:       r.limiter(),
		Logger:        r.logger,
		Now:           r.now,
	}
	if r.opts.dryRun {
		loop.Confirm = declineAll{out: r.out}
	}

	sum, err := loop.Run(ctx)
	fmt.Fprintln(r.out, progress.Summary("Unliked", sum.Unliked+sum.AlreadyGone, "tweets"))
	if sum.TooRecent > 0 {
		r.logger.Info("likes kept by age", "count", sum.TooRecent)
	}
	r.logger.Info("unliked ledger", "path", ledger.Path(), "ids", ledger.Len())
	return err
}

func (r *runner) deletePosts(ctx context.Context) error {
	fmt.Fprintln(r.out, common.AppTitleStyle.Render("Fetching tweets to delete"))

	restore := r.opts.resume || r.opts.archive != ""
	ledger, err := store.OpenLedger(r.cfg.DeletedLedgerPath(), restore)
	if err != nil {
		return err
	}

	src := &source.Source{
		Timeline: r.api.Timeline,
		Cache:    store.NewTimelineCache(r.cfg.TimelineCachePath()),
		Logger:   r.logger,
	}
	set, err := src.LoadTimeline(ctx, r.retention.Owner, source.Options{
		Resume:      r.opts.resume,
		ArchivePath: r.opts.archive,
	})
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("nothing to resume: %w", err)
	}
	if err != nil {
		return err
	}

	now := r.now()
	candidates := policy.Plan(set, ledger, r.retention, now)
	fmt.Fprintf(r.out, "%d of %d tweets to delete\n", len(candidates), len(set))

	if r.opts.dryRun {
		ctxPolicy := policy.Context{Posts: set, Now: now}
		for _, p := range candidates {
			v := policy.Explain(p, ctxPolicy, r.retention)
			r.logger.Debug("delete candidate", "id", p.ID, "rule", v.Reason)
		}
		r.reporter.List(pipeline.PostItems(candidates))
		return nil
	}

	p := &pipeline.Pipeline{
		Ledger:    ledger,
		ChunkSize: r.opts.chunkSize,
		Delete:    r.api.Posts.DeletePost,
		Confirm:   r.confirm,
		Reporter:  r.reporter,
		Limiter:   r.limiter(),
		Logger:    r.logger,
	}
	sum, err := p.Run(ctx, pipeline.PostItems(candidates))
	fmt.Fprintln(r.out, progress.Summary("Deleted", sum.Deleted+sum.AlreadyGone, "tweets"))
	if sum.SkippedChunks > 0 {
		r.logger.Info("declined chunks", "chunks", sum.SkippedChunks, "items", sum.Skipped)
	}
	r.logger.Info("deleted ledger", "path", ledger.Path(), "ids", ledger.Len())
	return err
}

// declineAll answers no to every question so a run only lists.
type declineAll struct {
	out io.Writer
}

func (d declineAll) Confirm(_ context.Context, question string) (bool, error) {
	fmt.Fprintf(d.out, "%s? [dry run, skipped]\n", question)
	return false, nil
}
