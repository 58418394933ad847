package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
)

// Ledger is the set of ids already deleted or unliked. It only grows;
// an id present here is never submitted again.
type Ledger struct {
	path string
	ids  map[string]struct{}
}

// OpenLedger creates a ledger backed by path. The file is read only when
// restore is true; otherwise the ledger starts empty and the next Save
// overwrites whatever was on disk. A missing file is an empty ledger.
func OpenLedger(path string, restore bool) (*Ledger, error) {
	l := &Ledger{path: path, ids: make(map[string]struct{})}
	if !restore {
		return l, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return l, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading ledger: %w", err)
	}

	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, fmt.Errorf("parsing ledger %s: %w", path, err)
	}
	for _, id := range ids {
		l.ids[id] = struct{}{}
	}
	return l, nil
}

// Contains reports whether id was already processed.
func (l *Ledger) Contains(id string) bool {
	_, ok := l.ids[id]
	return ok
}

// Add records id in memory. It is not durable until Save.
func (l *Ledger) Add(id string) {
	l.ids[id] = struct{}{}
}

// Len returns the number of recorded ids.
func (l *Ledger) Len() int {
	return len(l.ids)
}

// Path returns the backing file.
func (l *Ledger) Path() string {
	return l.path
}

// Save writes the full set to disk, replacing the previous contents.
func (l *Ledger) Save() error {
	ids := make([]string, 0, len(l.ids))
	for id := range l.ids {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	if err := writeJSON(l.path, ids); err != nil {
		return fmt.Errorf("saving ledger: %w", err)
	}
	return nil
}
