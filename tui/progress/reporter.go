// Package progress renders deletion listings and an in-place progress bar.
package progress

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"

	"github.com/CrestNiraj12/curatetl/app"
	"github.com/CrestNiraj12/curatetl/tui/common"
)

const (
	defaultWidth = 100
	barWidth     = 40
	dateLayout   = "2006-01-02"
)

// Reporter implements app.Reporter on a writer.
type Reporter struct {
	out    io.Writer
	width  int
	inline bool
	bar    progress.Model
	drawn  bool
}

// Option configures a Reporter.
type Option func(*Reporter)

// WithWidth sets the row width listings are clipped to.
func WithWidth(w int) Option {
	return func(r *Reporter) {
		if w > 0 {
			r.width = w
		}
	}
}

// Inline redraws the progress line in place. Use it only when out is a
// terminal.
func Inline() Option {
	return func(r *Reporter) { r.inline = true }
}

// New creates a Reporter writing to out.
func New(out io.Writer, opts ...Option) *Reporter {
	r := &Reporter{
		out:   out,
		width: defaultWidth,
		bar:   progress.New(progress.WithDefaultGradient(), progress.WithWidth(barWidth)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// List prints one row per item: date, id, clipped text.
func (r *Reporter) List(items []app.Item) {
	r.clearLine()
	fmt.Fprintln(r.out)
	for _, it := range items {
		fmt.Fprintln(r.out, r.row(it))
	}
	fmt.Fprintln(r.out, common.TaglineStyle.Render(humanize.Comma(int64(len(items)))+" items"))
}

func (r *Reporter) row(it app.Item) string {
	date := "----------"
	if !it.CreatedAt.IsZero() {
		date = it.CreatedAt.Format(dateLayout)
	}
	prefix := date + "  " + it.ID + "  "
	text := common.Clip(common.SingleLine(it.Text), r.width-ansi.StringWidth(prefix))
	return common.TimestampStyle.Render(date) + "  " +
		common.IDStyle.Render(it.ID) + "  " +
		common.ContentStyle.Render(text)
}

// Progress draws the bar before items[done] is acted on.
func (r *Reporter) Progress(item app.Item, done, total int) {
	r.draw(done, total, item.ID)
}

// Finish draws the full bar and ends the line.
func (r *Reporter) Finish(total int) {
	r.draw(total, total, "")
	if r.inline {
		fmt.Fprintln(r.out)
	}
	r.drawn = false
}

func (r *Reporter) draw(done, total int, id string) {
	pct := 1.0
	if total > 0 {
		pct = float64(done) / float64(total)
	}
	line := r.bar.ViewAs(pct) + "  " + humanize.Comma(int64(done)) + "/" + humanize.Comma(int64(total))
	if id != "" {
		line += "  " + common.IDStyle.Render(id)
	}

	if !r.inline {
		fmt.Fprintln(r.out, line)
		return
	}
	r.clearLine()
	fmt.Fprint(r.out, line)
	r.drawn = true
}

// clearLine erases a progress line still on screen.
func (r *Reporter) clearLine() {
	if r.inline && r.drawn {
		fmt.Fprint(r.out, "\r"+ansi.EraseEntireLine)
		r.drawn = false
	}
}

// Summary renders a result line such as "Deleted 1,204 tweets".
func Summary(verb string, n int, noun string) string {
	return common.SuccessStyle.Render(fmt.Sprintf("%s %s %s", verb, humanize.Comma(int64(n)), plural(n, noun)))
}

func plural(n int, noun string) string {
	if n == 1 {
		return strings.TrimSuffix(noun, "s")
	}
	return noun
}
