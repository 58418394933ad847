package app

import (
	"context"
	"time"
)

// Item is one entry offered for deletion: a post or a like.
type Item struct {
	ID        string
	Text      string
	CreatedAt time.Time
}

// Confirmer blocks until the user answers a yes/no question.
// Anything but the exact affirmative answer is a no.
type Confirmer interface {
	Confirm(ctx context.Context, question string) (bool, error)
}

// Reporter renders listings and per-item progress.
type Reporter interface {
	// List shows the items about to be offered for confirmation.
	List(items []Item)

	// Progress is called before acting on items[done].
	Progress(item Item, done, total int)

	// Finish closes a progress run of total items.
	Finish(total int)
}
