package confirm

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/curatetl/tui/common"
)

// Affirmative is the only answer that counts as yes.
const Affirmative = "y"

// IsAffirmative reports whether answer, once trimmed, is exactly "y".
func IsAffirmative(answer string) bool {
	return strings.TrimSpace(answer) == Affirmative
}

// Model asks one yes/no question.
type Model struct {
	question string
	keys     common.KeyMap
	input    textinput.Model
	answered bool
	aborted  bool
}

// NewModel creates a prompt for question.
func NewModel(question string) Model {
	ti := textinput.New()
	ti.Placeholder = "y/N"
	ti.CharLimit = 8
	ti.Prompt = "› "
	ti.Focus()

	return Model{
		question: question,
		keys:     common.DefaultKeyMap(),
		input:    ti,
	}
}

// Init starts the cursor blinking.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Abort):
			m.aborted = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Cancel):
			m.input.SetValue("")
			m.answered = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Submit):
			m.answered = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.answered || m.aborted {
		return ""
	}
	var b strings.Builder
	b.WriteString(common.RuleStyle.Render(strings.Repeat("─", 60)))
	b.WriteString("\n")
	b.WriteString(common.ConfirmStyle.Render(m.question + "? [y/N]"))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(common.HintStyle.Render(common.HelpLine(m.keys.Submit, m.keys.Cancel, m.keys.Abort)))
	b.WriteString("\n")
	return b.String()
}

// Confirmed reports whether the prompt ended with a yes.
func (m Model) Confirmed() bool {
	return m.answered && IsAffirmative(m.input.Value())
}

// Aborted reports whether the user asked to stop the run.
func (m Model) Aborted() bool {
	return m.aborted
}
