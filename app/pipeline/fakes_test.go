package pipeline

import (
	"context"
	"fmt"
	"sort"

	"github.com/CrestNiraj12/curatetl/app"
)

type memLedger struct {
	ids   map[string]bool
	saves [][]string
}

func newMemLedger(ids ...string) *memLedger {
	l := &memLedger{ids: map[string]bool{}}
	for _, id := range ids {
		l.ids[id] = true
	}
	return l
}

func (l *memLedger) Contains(id string) bool { return l.ids[id] }
func (l *memLedger) Add(id string)           { l.ids[id] = true }

func (l *memLedger) Save() error {
	snap := make([]string, 0, len(l.ids))
	for id := range l.ids {
		snap = append(snap, id)
	}
	sort.Strings(snap)
	l.saves = append(l.saves, snap)
	return nil
}

func (l *memLedger) lastSave() []string {
	if len(l.saves) == 0 {
		return nil
	}
	return l.saves[len(l.saves)-1]
}

// scriptedConfirm answers from a fixed script; missing answers are "no".
type scriptedConfirm struct {
	answers   []bool
	questions []string
}

func (c *scriptedConfirm) Confirm(_ context.Context, q string) (bool, error) {
	c.questions = append(c.questions, q)
	i := len(c.questions) - 1
	if i >= len(c.answers) {
		return false, nil
	}
	return c.answers[i], nil
}

type recordingReporter struct {
	listed   [][]string
	progress []string
	finished []int
}

func (r *recordingReporter) List(items []app.Item) {
	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	r.listed = append(r.listed, ids)
}

func (r *recordingReporter) Progress(item app.Item, done, total int) {
	r.progress = append(r.progress, fmt.Sprintf("%s:%d/%d", item.ID, done, total))
}

func (r *recordingReporter) Finish(total int) { r.finished = append(r.finished, total) }

type recordingAction struct {
	calls  []string
	errFor map[string]error
}

func (a *recordingAction) do(_ context.Context, id string) error {
	a.calls = append(a.calls, id)
	return a.errFor[id]
}

type countingLimiter struct{ waits int }

func (c *countingLimiter) Wait(context.Context) error {
	c.waits++
	return nil
}

func items(ids ...string) []app.Item {
	out := make([]app.Item, 0, len(ids))
	for _, id := range ids {
		out = append(out, app.Item{ID: id, Text: "text " + id})
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
