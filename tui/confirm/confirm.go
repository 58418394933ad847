// Package confirm implements the blocking yes/no gate shown before each
// batch of deletions.
package confirm

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/CrestNiraj12/curatetl/app"
)

// ErrAborted is returned when the user stops the run from the prompt.
var ErrAborted = errors.New("aborted at prompt")

// New returns an interactive prompt when in is a terminal and a line
// reader otherwise.
func New(in *os.File, out io.Writer) app.Confirmer {
	if term.IsTerminal(int(in.Fd())) {
		return &Program{In: in, Out: out}
	}
	return NewLineConfirmer(in, out)
}

// Program runs a Bubble Tea prompt per question.
type Program struct {
	In  io.Reader
	Out io.Writer
}

func (p *Program) Confirm(ctx context.Context, question string) (bool, error) {
	prog := tea.NewProgram(NewModel(question),
		tea.WithContext(ctx),
		tea.WithInput(p.In),
		tea.WithOutput(p.Out),
	)
	final, err := prog.Run()
	if err != nil {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		return false, fmt.Errorf("running prompt: %w", err)
	}
	m, ok := final.(Model)
	if !ok {
		return false, fmt.Errorf("unexpected prompt model %T", final)
	}
	if m.Aborted() {
		return false, ErrAborted
	}
	return m.Confirmed(), nil
}

// LineConfirmer reads answers line by line, for piped input.
type LineConfirmer struct {
	in  *bufio.Reader
	out io.Writer
}

// NewLineConfirmer creates a LineConfirmer.
func NewLineConfirmer(in io.Reader, out io.Writer) *LineConfirmer {
	return &LineConfirmer{in: bufio.NewReader(in), out: out}
}

// Confirm prints the question and reads one line. End of input is a no.
func (c *LineConfirmer) Confirm(ctx context.Context, question string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, strings.Repeat("-", 60))
	fmt.Fprintf(c.out, "%s? [y/N] ", question)

	answer, err := c.in.ReadString('\n')
	fmt.Fprintln(c.out)
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("reading answer: %w", err)
	}
	return IsAffirmative(answer), nil
}
