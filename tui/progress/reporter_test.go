package progress

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"

	"github.com/CrestNiraj12/curatetl/app"
)

func sampleItems() []app.Item {
	return []app.Item{
		{ID: "101", Text: "first line\nsecond line", CreatedAt: time.Date(2020, 5, 1, 10, 0, 0, 0, time.UTC)},
		{ID: "102", Text: strings.Repeat("long ", 50)},
	}
}

func TestReporter_ListRows(t *testing.T) {
	var out bytes.Buffer
	r := New(&out, WithWidth(40))
	r.List(sampleItems())

	lines := strings.Split(strings.TrimSpace(ansi.Strip(out.String())), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected two rows and a count, got %q", lines)
	}
	if lines[0] != "2020-05-01  101  first line second line" {
		t.Fatalf("unexpected first row: %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "----------  102  long") {
		t.Fatalf("undated row must use a placeholder: %q", lines[1])
	}
	if w := ansi.StringWidth(lines[1]); w != 40 {
		t.Fatalf("row must be clipped to width 40, got %d", w)
	}
	if !strings.Contains(lines[2], "2 items") {
		t.Fatalf("missing count: %q", lines[2])
	}
}

func TestReporter_PlainProgressPrintsLines(t *testing.T) {
	var out bytes.Buffer
	r := New(&out)
	items := sampleItems()
	for i, it := range items {
		r.Progress(it, i, len(items))
	}
	r.Finish(len(items))

	got := ansi.Strip(out.String())
	if strings.Contains(out.String(), ansi.EraseEntireLine) {
		t.Fatalf("plain output must not redraw")
	}
	for _, want := range []string{"0/2  101", "1/2  102", "2/2", "100%"} {
		if !strings.Contains(got, want) {
			t.Fatalf("missing %q in %q", want, got)
		}
	}
	if n := strings.Count(got, "\n"); n != 3 {
		t.Fatalf("expected one line per update, got %d", n)
	}
}

func TestReporter_InlineRedrawsInPlace(t *testing.T) {
	var out bytes.Buffer
	r := New(&out, Inline())
	items := sampleItems()
	r.Progress(items[0], 0, 2)
	r.Progress(items[1], 1, 2)
	r.Finish(2)

	raw := out.String()
	if n := strings.Count(raw, "\r"+ansi.EraseEntireLine); n != 2 {
		t.Fatalf("expected two redraws, got %d", n)
	}
	if !strings.HasSuffix(raw, "\n") || strings.Count(raw, "\n") != 1 {
		t.Fatalf("inline progress must end with a single newline: %q", raw)
	}
}

func TestReporter_ListClearsPendingProgress(t *testing.T) {
	var out bytes.Buffer
	r := New(&out, Inline())
	r.Progress(sampleItems()[0], 0, 2)
	r.List(sampleItems()[:1])
	if !strings.Contains(out.String(), "\r"+ansi.EraseEntireLine) {
		t.Fatalf("listing must erase the progress line first")
	}
}

func TestSummary(t *testing.T) {
	if got := ansi.Strip(Summary("Deleted", 1204, "tweets")); got != "Deleted 1,204 tweets" {
		t.Fatalf("unexpected summary: %q", got)
	}
	if got := ansi.Strip(Summary("Unliked", 1, "tweets")); got != "Unliked 1 tweet" {
		t.Fatalf("unexpected singular: %q", got)
	}
}
