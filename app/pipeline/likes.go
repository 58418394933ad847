package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/CrestNiraj12/curatetl/app"
	"github.com/CrestNiraj12/curatetl/domain"
)

// LikeSource yields a batch of likes.
type LikeSource interface {
	Likes(ctx context.Context) ([]domain.Like, error)
}

// LikesSummary counts what a likes cleanup did.
type LikesSummary struct {
	Rounds      int
	Unliked     int
	AlreadyGone int
	TooRecent   int  // Likes kept by the age filter in the last round
	Declined    bool // The user declined a batch, which ends the loop
}

// LikesLoop unlikes batches until the source runs dry.
type LikesLoop struct {
	Source LikeSource
	Unlike Action
	Ledger Ledger

	// ChunkSize is the ledger checkpoint interval within a batch.
	ChunkSize int

	// OlderThanDays keeps likes of posts at most this many days old.
	OlderThanDays *int

	// Repeat fetches again after each batch. A live source exposes the next
	// page once the current one is unliked; an export is a single fixed
	// batch and must not repeat.
	Repeat bool

	Confirm  app.Confirmer
	Reporter app.Reporter
	Limiter  Limiter
	Logger   *slog.Logger
	Now      func() time.Time
}

// Run fetches, filters, confirms and unlikes batches. It stops when a batch
// is empty after filtering, when the user declines, after one batch if
// Repeat is false, or on the first failure other than domain.ErrAlreadyGone.
func (l *LikesLoop) Run(ctx context.Context) (LikesSummary, error) {
	var sum LikesSummary
	if err := l.validate(); err != nil {
		return sum, err
	}

	for {
		if err := ctx.Err(); err != nil {
			return sum, err
		}

		likes, err := l.Source.Likes(ctx)
		if err != nil {
			return sum, err
		}
		batch, tooRecent := l.filter(likes)
		sum.TooRecent = tooRecent
		l.logger().Info("fetched likes",
			"fetched", len(likes),
			"pending", len(batch),
			"too_recent", tooRecent,
		)
		if len(batch) == 0 {
			return sum, nil
		}
		sum.Rounds++

		items := LikeItems(batch)
		l.Reporter.List(items)
		ok, err := l.Confirm.Confirm(ctx, fmt.Sprintf("unlike these %s posts", humanize.Comma(int64(len(items)))))
		if err != nil {
			return sum, fmt.Errorf("confirming likes: %w", err)
		}
		if !ok {
			sum.Declined = true
			return sum, nil
		}

		if err := l.unlikeBatch(ctx, items, &sum); err != nil {
			return sum, err
		}
		if !l.Repeat {
			return sum, nil
		}
	}
}

func (l *LikesLoop) unlikeBatch(ctx context.Context, items []app.Item, sum *LikesSummary) error {
	sinceSave := 0
	for i, item := range items {
		if err := ctx.Err(); err != nil {
			return l.stop(err)
		}
		if l.Ledger.Contains(item.ID) {
			continue
		}

		l.Reporter.Progress(item, i, len(items))

		if l.Limiter != nil {
			if err := l.Limiter.Wait(ctx); err != nil {
				return l.stop(err)
			}
		}

		gone, err := apply(ctx, l.Unlike, item.ID)
		if err != nil {
			return l.stop(fmt.Errorf("unliking %s: %w", item.ID, err))
		}
		if gone {
			sum.AlreadyGone++
		} else {
			sum.Unliked++
		}
		l.Ledger.Add(item.ID)

		sinceSave++
		if sinceSave >= l.chunkSize() {
			if err := l.Ledger.Save(); err != nil {
				return err
			}
			sinceSave = 0
		}
	}
	l.Reporter.Finish(len(items))

	return l.Ledger.Save()
}

// filter drops likes already in the ledger and likes too recent to remove.
func (l *LikesLoop) filter(likes []domain.Like) (batch []domain.Like, tooRecent int) {
	now := l.now()
	for _, like := range likes {
		if l.Ledger.Contains(like.ID) {
			continue
		}
		if l.OlderThanDays != nil && like.DaysOld(now) <= *l.OlderThanDays {
			tooRecent++
			continue
		}
		batch = append(batch, like)
	}
	return batch, tooRecent
}

func (l *LikesLoop) stop(cause error) error {
	if err := l.Ledger.Save(); err != nil {
		return errors.Join(cause, err)
	}
	return cause
}

func (l *LikesLoop) validate() error {
	switch {
	case l.Source == nil:
		return errors.New("likes loop: source is required")
	case l.Ledger == nil:
		return errors.New("likes loop: ledger is required")
	case l.Unlike == nil:
		return errors.New("likes loop: unlike action is required")
	case l.Confirm == nil:
		return errors.New("likes loop: confirmer is required")
	case l.Reporter == nil:
		return errors.New("likes loop: reporter is required")
	}
	return nil
}

func (l *LikesLoop) chunkSize() int {
	if l.ChunkSize <= 0 {
		return DefaultChunkSize
	}
	return l.ChunkSize
}

func (l *LikesLoop) now() time.Time {
	if l.Now != nil {
		return l.Now()
	}
	return time.Now()
}

func (l *LikesLoop) logger() *slog.Logger {
	return loggerOrDiscard(l.Logger)
}
