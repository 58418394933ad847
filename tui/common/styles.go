package common

import "github.com/charmbracelet/lipgloss"

var (
	// AppTitleStyle styles section headers such as "Deleting tweets".
	AppTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6600"))

	// TaglineStyle styles secondary header text (counts, owner).
	TaglineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#555555")). // Dimmed grey
			Italic(true).
			MarginLeft(1)

	// IDStyle styles item ids in listings.
	IDStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#7DC4E4"))

	// TimestampStyle styles timestamps.
	TimestampStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6E738D"))

	// ContentStyle styles item text.
	ContentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#CAD3F5"))

	// RuleStyle styles the separator drawn above a prompt.
	RuleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#45475A"))

	// ConfirmStyle styles the confirmation question.
	ConfirmStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ED8796")).
			Bold(true)

	// HintStyle styles key hints under the prompt.
	HintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6E738D"))

	// ErrorStyle styles error messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ED8796")).
			Bold(true)

	// SuccessStyle styles success messages.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A6DA95")).
			Bold(true)
)
