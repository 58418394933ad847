package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/CrestNiraj12/curatetl/domain"
)

func newPipeline(l *memLedger, c *scriptedConfirm, a *recordingAction, size int) (*Pipeline, *recordingReporter) {
	rep := &recordingReporter{}
	return &Pipeline{
		Ledger:    l,
		ChunkSize: size,
		Delete:    a.do,
		Confirm:   c,
		Reporter:  rep,
	}, rep
}

func TestPipeline_DeclinedChunkIsIsolated(t *testing.T) {
	l := newMemLedger()
	c := &scriptedConfirm{answers: []bool{true, false, true}}
	a := &recordingAction{}
	p, rep := newPipeline(l, c, a, 2)

	sum, err := p.Run(context.Background(), items("1", "2", "3", "4", "5"))
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !equalStrings(a.calls, []string{"1", "2", "5"}) {
		t.Fatalf("unexpected deletions: %v", a.calls)
	}
	if len(c.questions) != 3 || len(rep.listed) != 3 {
		t.Fatalf("every chunk must be offered: questions=%d listed=%d", len(c.questions), len(rep.listed))
	}
	if !strings.Contains(c.questions[2], "chunk 3/3") {
		t.Fatalf("unexpected prompt: %q", c.questions[2])
	}
	if sum.Deleted != 3 || sum.Skipped != 2 || sum.SkippedChunks != 1 || sum.Chunks != 3 {
		t.Fatalf("unexpected summary: %+v", sum)
	}
	if !equalStrings(l.lastSave(), []string{"1", "2", "5"}) {
		t.Fatalf("unexpected persisted ledger: %v", l.lastSave())
	}
}

func TestPipeline_SkipsLedgerEntriesBeforeChunking(t *testing.T) {
	l := newMemLedger("1", "3")
	c := &scriptedConfirm{answers: []bool{true, true}}
	a := &recordingAction{}
	p, rep := newPipeline(l, c, a, 2)

	if _, err := p.Run(context.Background(), items("1", "2", "3", "4", "5")); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !equalStrings(a.calls, []string{"2", "4", "5"}) {
		t.Fatalf("ledger ids must never be resubmitted: %v", a.calls)
	}
	if len(rep.listed) != 2 || !equalStrings(rep.listed[0], []string{"2", "4"}) {
		t.Fatalf("chunks must be formed after filtering: %v", rep.listed)
	}
}

func TestPipeline_NothingPendingAsksNothing(t *testing.T) {
	l := newMemLedger("1")
	c := &scriptedConfirm{}
	a := &recordingAction{}
	p, _ := newPipeline(l, c, a, 10)

	sum, err := p.Run(context.Background(), items("1"))
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(c.questions) != 0 || sum.Chunks != 0 {
		t.Fatalf("empty work must not prompt")
	}
}

func TestPipeline_AlreadyGoneIsSuccess(t *testing.T) {
	l := newMemLedger()
	c := &scriptedConfirm{answers: []bool{true}}
	a := &recordingAction{errFor: map[string]error{"2": domain.ErrAlreadyGone}}
	p, _ := newPipeline(l, c, a, 5)

	sum, err := p.Run(context.Background(), items("1", "2", "3"))
	if err != nil {
		t.Fatalf("already-gone must not fail the run: %v", err)
	}
	if sum.Deleted != 2 || sum.AlreadyGone != 1 {
		t.Fatalf("unexpected summary: %+v", sum)
	}
	if !l.Contains("2") {
		t.Fatalf("already-gone item must advance the ledger")
	}
}

func TestPipeline_FailureStopsAndKeepsProgress(t *testing.T) {
	l := newMemLedger()
	c := &scriptedConfirm{answers: []bool{true, true}}
	boom := &domain.APIError{Code: 88, Message: "rate limit"}
	a := &recordingAction{errFor: map[string]error{"3": boom}}
	p, _ := newPipeline(l, c, a, 4)

	_, err := p.Run(context.Background(), items("1", "2", "3", "4", "5"))
	var apiErr *domain.APIError
	if !errors.As(err, &apiErr) || apiErr.Code != 88 {
		t.Fatalf("expected wrapped api error, got %v", err)
	}
	if !equalStrings(a.calls, []string{"1", "2", "3"}) {
		t.Fatalf("run must stop at the failing item: %v", a.calls)
	}
	if l.Contains("3") {
		t.Fatalf("failed item must not be recorded")
	}
	if !equalStrings(l.lastSave(), []string{"1", "2"}) {
		t.Fatalf("progress before failure must be persisted: %v", l.lastSave())
	}
	if len(c.questions) != 1 {
		t.Fatalf("no further chunks may be offered after a failure")
	}
}

func TestPipeline_CheckpointsEveryItemAndAtChunkEnd(t *testing.T) {
	l := newMemLedger()
	c := &scriptedConfirm{answers: []bool{true}}
	a := &recordingAction{}
	p, rep := newPipeline(l, c, a, 3)

	if _, err := p.Run(context.Background(), items("1", "2", "3")); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	want := [][]string{{"1"}, {"1", "2"}, {"1", "2", "3"}}
	if len(l.saves) != len(want) {
		t.Fatalf("unexpected save count: %v", l.saves)
	}
	for i := range want {
		if !equalStrings(l.saves[i], want[i]) {
			t.Fatalf("save %d: got %v want %v", i, l.saves[i], want[i])
		}
	}
	if !equalStrings(rep.progress, []string{"1:0/3", "2:1/3", "3:2/3"}) || len(rep.finished) != 1 {
		t.Fatalf("unexpected progress: %v %v", rep.progress, rep.finished)
	}
}

func TestPipeline_CheckpointInterval(t *testing.T) {
	l := newMemLedger()
	c := &scriptedConfirm{answers: []bool{true}}
	a := &recordingAction{}
	p, _ := newPipeline(l, c, a, 5)
	p.CheckpointEvery = 2

	if _, err := p.Run(context.Background(), items("1", "2", "3", "4", "5")); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(l.saves) != 3 {
		t.Fatalf("expected saves after 2, 4 and at chunk end, got %d", len(l.saves))
	}
}

func TestPipeline_CancelBetweenItems(t *testing.T) {
	l := newMemLedger()
	c := &scriptedConfirm{answers: []bool{true}}
	ctx, cancel := context.WithCancel(context.Background())
	a := &recordingAction{}
	p, _ := newPipeline(l, c, a, 5)
	p.Delete = func(ctx context.Context, id string) error {
		a.calls = append(a.calls, id)
		if id == "2" {
			cancel()
		}
		return nil
	}

	_, err := p.Run(ctx, items("1", "2", "3"))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation, got %v", err)
	}
	if !equalStrings(a.calls, []string{"1", "2"}) {
		t.Fatalf("in-flight item must finish and nothing after: %v", a.calls)
	}
	if !equalStrings(l.lastSave(), []string{"1", "2"}) {
		t.Fatalf("finished items must be persisted: %v", l.lastSave())
	}
}

func TestPipeline_UsesLimiterPerItem(t *testing.T) {
	l := newMemLedger()
	c := &scriptedConfirm{answers: []bool{true}}
	a := &recordingAction{}
	lim := &countingLimiter{}
	p, _ := newPipeline(l, c, a, 5)
	p.Limiter = lim

	if _, err := p.Run(context.Background(), items("1", "2", "3")); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if lim.waits != 3 {
		t.Fatalf("expected a wait per item, got %d", lim.waits)
	}
}

func TestPipeline_RequiresCollaborators(t *testing.T) {
	if _, err := (&Pipeline{}).Run(context.Background(), nil); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestChunk(t *testing.T) {
	tests := []struct {
		n, size int
		want    []int
	}{
		{n: 0, size: 3, want: nil},
		{n: 5, size: 2, want: []int{2, 2, 1}},
		{n: 4, size: 2, want: []int{2, 2}},
		{n: 3, size: 10, want: []int{3}},
		{n: 250, size: 0, want: []int{100, 100, 50}},
	}
	for _, tc := range tests {
		in := make([]int, tc.n)
		for i := range in {
			in[i] = i
		}
		got := Chunk(in, tc.size)
		if len(got) != len(tc.want) {
			t.Fatalf("Chunk(%d, %d): got %d chunks want %d", tc.n, tc.size, len(got), len(tc.want))
		}
		next := 0
		for i, c := range got {
			if len(c) != tc.want[i] {
				t.Fatalf("Chunk(%d, %d): chunk %d has %d items, want %d", tc.n, tc.size, i, len(c), tc.want[i])
			}
			for _, v := range c {
				if v != next {
					t.Fatalf("order not preserved: got %d want %d", v, next)
				}
				next++
			}
		}
	}
}
