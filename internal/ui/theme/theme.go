// Package theme is the presenter's palette and shared styles.
package theme

import "charm.land/lipgloss/v2"

// Brand red on near-black, like a boardroom projector.
var (
	Primary = lipgloss.Color("#CB202D")
	Accent  = lipgloss.Color("#FACC15")
	Error   = lipgloss.Color("#F43F5E")
	Text    = lipgloss.Color("#FAFAFA")
	TextDim = lipgloss.Color("#A1A1AA")
	BgCard  = lipgloss.Color("#18181B")
	Border  = lipgloss.Color("#3F3F46")
)

var (
	Title    = lipgloss.NewStyle().Bold(true).Foreground(Text)
	Kicker   = lipgloss.NewStyle().Bold(true).Foreground(Primary)
	Subtitle = lipgloss.NewStyle().Foreground(TextDim)
	Body     = lipgloss.NewStyle().Foreground(Text)
	Emphasis = lipgloss.NewStyle().Bold(true).Foreground(Primary)
	Hint     = lipgloss.NewStyle().Italic(true).Foreground(TextDim)
)

// Card frames a stat or bullet; Panel frames the assistant.
var (
	Card  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(Border).Padding(0, 1)
	Panel = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(Primary).Padding(0, 1)
)

var (
	Selected   = lipgloss.NewStyle().Bold(true).Foreground(Primary)
	Unselected = lipgloss.NewStyle().Foreground(Text)
	Disabled   = lipgloss.NewStyle().Foreground(Border)
	Negative   = lipgloss.NewStyle().Foreground(Error)
)

var (
	ProgressFilled = lipgloss.NewStyle().Background(Primary)
	ProgressEmpty  = lipgloss.NewStyle().Background(Border)

	ButtonActive   = lipgloss.NewStyle().Bold(true).Foreground(Text).Background(Primary).Padding(0, 1)
	ButtonInactive = lipgloss.NewStyle().Foreground(TextDim).Padding(0, 1)
)
