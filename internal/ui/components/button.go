package components

import "github.com/abhisek/pitchdeck/internal/ui/theme"

// Button is a label drawn as a pill when enabled and dimmed when not. The
// control bar uses it to show which directions the deck can still move.
type Button struct {
	Label   string
	Enabled bool
}

func NewButton(label string, enabled bool) Button {
	return Button{Label: label, Enabled: enabled}
}

func (b Button) View() string {
	if b.Enabled {
		return theme.ButtonActive.Render(b.Label)
	}
	return theme.ButtonInactive.Render(b.Label)
}
