package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/CrestNiraj12/curatetl/domain"
)

// TimelineCache is the on-disk snapshot of the last fully fetched timeline.
type TimelineCache struct {
	path string
}

// NewTimelineCache returns a cache stored at path.
func NewTimelineCache(path string) *TimelineCache {
	return &TimelineCache{path: path}
}

// Save writes the whole set as a JSON object keyed by post id.
func (c *TimelineCache) Save(set domain.PostSet) error {
	if set == nil {
		set = domain.PostSet{}
	}
	if err := writeJSON(c.path, set); err != nil {
		return fmt.Errorf("saving timeline cache: %w", err)
	}
	return nil
}

// Load reads the snapshot. It returns domain.ErrNotFound when no timeline
// was cached yet.
func (c *TimelineCache) Load() (domain.PostSet, error) {
	data, err := os.ReadFile(c.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("timeline cache %s: %w (fetch once without --resume first)", c.path, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("reading timeline cache: %w", err)
	}

	set := domain.PostSet{}
	if err := json.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("parsing timeline cache %s: %w", c.path, err)
	}
	// Keys are authoritative.
	for id, p := range set {
		if p.ID == "" {
			p.ID = id
			set[id] = p
		}
	}
	return set, nil
}
