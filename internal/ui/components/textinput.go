package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/pitchdeck/internal/ui/theme"
)

// TextInput wraps bubbles/textinput with deck styling. A disabled input
// keeps its text but ignores key presses.
type TextInput struct {
	Model    textinput.Model
	disabled bool
}

// NewTextInput creates a new styled, focused text input.
func NewTextInput(placeholder string, charLimit, width int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "› "
	if charLimit > 0 {
		ti.CharLimit = charLimit
	}
	if width > 0 {
		ti.SetWidth(width)
	}

	styles := ti.Styles()
	styles.Focused.Prompt = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	styles.Focused.Placeholder = lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true)
	styles.Blurred.Prompt = lipgloss.NewStyle().Foreground(theme.Border)
	styles.Blurred.Placeholder = lipgloss.NewStyle().Foreground(theme.Border).Italic(true)
	ti.SetStyles(styles)
	ti.Focus()

	return TextInput{Model: ti}
}

// Init returns the initial command.
func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

// Update handles messages.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if _, ok := msg.(tea.KeyPressMsg); ok && t.disabled {
		return t, nil
	}

	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the text input.
func (t TextInput) View() string {
	return t.Model.View()
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// SetValue replaces the input value.
func (t *TextInput) SetValue(v string) {
	t.Model.SetValue(v)
}

// SetWidth sets the visible width.
func (t *TextInput) SetWidth(w int) {
	t.Model.SetWidth(w)
}

// SetDisabled toggles whether key presses are accepted.
func (t *TextInput) SetDisabled(disabled bool) {
	t.disabled = disabled
}

// Disabled reports whether the input ignores key presses.
func (t TextInput) Disabled() bool {
	return t.disabled
}

// Focus focuses the input.
func (t *TextInput) Focus() tea.Cmd {
	return t.Model.Focus()
}

// Blur removes focus.
func (t *TextInput) Blur() {
	t.Model.Blur()
}

// Focused reports whether the input has focus.
func (t TextInput) Focused() bool {
	return t.Model.Focused()
}
