// Package pipeline performs confirmed, resumable deletions.
//
// Deletions are recorded in a ledger only after the remote action
// succeeded, and the ledger is flushed at checkpoints and chunk boundaries,
// so an interrupted run resumes without re-submitting finished work.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/dustin/go-humanize"

	"github.com/CrestNiraj12/curatetl/app"
	"github.com/CrestNiraj12/curatetl/domain"
)

// DefaultChunkSize is the number of items offered per confirmation.
const DefaultChunkSize = 100

// Ledger records processed ids across runs.
type Ledger interface {
	Contains(id string) bool
	Add(id string)
	Save() error
}

// Action removes one remote item.
type Action func(ctx context.Context, id string) error

// Limiter paces remote calls. *rate.Limiter satisfies it.
type Limiter interface {
	Wait(ctx context.Context) error
}

// Summary counts what a run did.
type Summary struct {
	Deleted       int // Items removed by this run
	AlreadyGone   int // Items the backend reported as already removed
	Skipped       int // Items in declined chunks
	SkippedChunks int
	Chunks        int // Chunks offered
}

// Pipeline deletes candidates chunk by chunk behind a confirmation gate.
type Pipeline struct {
	Ledger    Ledger
	ChunkSize int
	Delete    Action
	Confirm   app.Confirmer
	Reporter  app.Reporter

	// CheckpointEvery saves the ledger after this many deletions inside a
	// chunk. Zero means after every item.
	CheckpointEvery int

	Limiter Limiter
	Logger  *slog.Logger
}

// Run filters out candidates the ledger already holds, splits the rest into
// chunks in order, and deletes each confirmed chunk. A declined chunk is
// skipped and the next one is offered. The first failure other than
// domain.ErrAlreadyGone stops the run after flushing the ledger.
func (p *Pipeline) Run(ctx context.Context, candidates []app.Item) (Summary, error) {
	var sum Summary
	if err := p.validate(); err != nil {
		return sum, err
	}

	pending := make([]app.Item, 0, len(candidates))
	for _, c := range candidates {
		if !p.Ledger.Contains(c.ID) {
			pending = append(pending, c)
		}
	}
	if skipped := len(candidates) - len(pending); skipped > 0 {
		p.logger().Info("skipping already processed items", "count", skipped)
	}

	chunks := Chunk(pending, p.chunkSize())
	for i, chunk := range chunks {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		sum.Chunks++

		p.Reporter.List(chunk)
		question := fmt.Sprintf("delete these %s items (chunk %d/%d)", humanize.Comma(int64(len(chunk))), i+1, len(chunks))
		ok, err := p.Confirm.Confirm(ctx, question)
		if err != nil {
			return sum, fmt.Errorf("confirming chunk %d: %w", i+1, err)
		}
		if !ok {
			p.logger().Info("chunk declined", "chunk", i+1, "items", len(chunk))
			sum.Skipped += len(chunk)
			sum.SkippedChunks++
			continue
		}

		if err := p.runChunk(ctx, chunk, &sum); err != nil {
			return sum, err
		}
	}
	return sum, nil
}

func (p *Pipeline) runChunk(ctx context.Context, chunk []app.Item, sum *Summary) error {
	sinceSave := 0
	for i, item := range chunk {
		if err := ctx.Err(); err != nil {
			return p.stop(err)
		}

		p.Reporter.Progress(item, i, len(chunk))

		if p.Limiter != nil {
			if err := p.Limiter.Wait(ctx); err != nil {
				return p.stop(err)
			}
		}

		gone, err := apply(ctx, p.Delete, item.ID)
		if err != nil {
			return p.stop(fmt.Errorf("deleting %s: %w", item.ID, err))
		}
		if gone {
			sum.AlreadyGone++
		} else {
			sum.Deleted++
		}
		p.Ledger.Add(item.ID)

		sinceSave++
		if sinceSave >= p.checkpointEvery() && i < len(chunk)-1 {
			if err := p.Ledger.Save(); err != nil {
				return err
			}
			sinceSave = 0
		}
	}
	p.Reporter.Finish(len(chunk))

	if err := p.Ledger.Save(); err != nil {
		return err
	}
	p.logger().Debug("chunk complete", "items", len(chunk))
	return nil
}

// stop flushes what was recorded so far and returns cause.
func (p *Pipeline) stop(cause error) error {
	if err := p.Ledger.Save(); err != nil {
		return errors.Join(cause, err)
	}
	return cause
}

func (p *Pipeline) validate() error {
	switch {
	case p.Ledger == nil:
		return errors.New("pipeline: ledger is required")
	case p.Delete == nil:
		return errors.New("pipeline: delete action is required")
	case p.Confirm == nil:
		return errors.New("pipeline: confirmer is required")
	case p.Reporter == nil:
		return errors.New("pipeline: reporter is required")
	}
	return nil
}

func (p *Pipeline) chunkSize() int {
	if p.ChunkSize <= 0 {
		return DefaultChunkSize
	}
	return p.ChunkSize
}

func (p *Pipeline) checkpointEvery() int {
	if p.CheckpointEvery <= 0 {
		return 1
	}
	return p.CheckpointEvery
}

func (p *Pipeline) logger() *slog.Logger {
	return loggerOrDiscard(p.Logger)
}

// Chunk splits items into consecutive slices of at most size elements,
// preserving order.
func Chunk[T any](items []T, size int) [][]T {
	if size <= 0 {
		size = DefaultChunkSize
	}
	var out [][]T
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		out = append(out, items[start:end])
	}
	return out
}

// apply runs action and folds domain.ErrAlreadyGone into success.
func apply(ctx context.Context, action Action, id string) (gone bool, err error) {
	err = action(ctx, id)
	if errors.Is(err, domain.ErrAlreadyGone) {
		return true, nil
	}
	return false, err
}

// PostItems converts posts to pipeline items.
func PostItems(posts []domain.Post) []app.Item {
	out := make([]app.Item, 0, len(posts))
	for _, p := range posts {
		out = append(out, app.Item{ID: p.ID, Text: p.Text, CreatedAt: p.CreatedAt})
	}
	return out
}

// LikeItems converts likes to pipeline items.
func LikeItems(likes []domain.Like) []app.Item {
	out := make([]app.Item, 0, len(likes))
	for _, l := range likes {
		out = append(out, app.Item{ID: l.ID, Text: l.Text, CreatedAt: l.CreatedAt})
	}
	return out
}

func loggerOrDiscard(l *slog.Logger) *slog.Logger {
	if l != nil {
		return l
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
