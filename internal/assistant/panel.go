package assistant

import (
	"strings"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/pitchdeck/internal/ui/components"
	"github.com/abhisek/pitchdeck/internal/ui/layout"
	"github.com/abhisek/pitchdeck/internal/ui/render"
	"github.com/abhisek/pitchdeck/internal/ui/theme"
)

const (
	panelTitle   = "✦ Strategy AI Assistant"
	placeholder  = "Ex: Is the Gold model sustainable?"
	loadingText  = "Analyzing market data..."
	maxQueryLen  = 500
	maxPanelW    = 64
	answerHeight = 8
)

// Panel is the floating assistant widget: an answer area above a one-line
// query input. The Lifecycle holds the state; Panel draws it.
type Panel struct {
	life     *Lifecycle
	hint     string
	input    components.TextInput
	spinner  spinner.Model
	answer   viewport.Model
	width    int
	rendered string
}

// NewPanel creates a panel over life. hint is shown before the first answer.
func NewPanel(life *Lifecycle, hint string) Panel {
	sp := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Primary)),
	)
	return Panel{
		life:    life,
		hint:    hint,
		input:   components.NewTextInput(placeholder, maxQueryLen, 0),
		spinner: sp,
		answer:  viewport.New(viewport.WithHeight(answerHeight)),
	}
}

// Lifecycle returns the underlying state.
func (p Panel) Lifecycle() *Lifecycle { return p.life }

// Open reports whether the panel is showing.
func (p Panel) Open() bool { return p.life.PanelOpen }

// Toggle opens or closes the panel, focusing the input when it opens.
func (p Panel) Toggle() (Panel, tea.Cmd) {
	p.life.Toggle()
	if p.life.PanelOpen {
		return p, p.input.Focus()
	}
	p.input.Blur()
	return p, nil
}

// Update handles key presses while open, answers and spinner frames.
// Answers and frames are applied whether or not the panel is open.
func (p Panel) Update(msg tea.Msg) (Panel, tea.Cmd) {
	switch msg := msg.(type) {
	case AnswerMsg:
		if p.life.Resolve(msg) {
			p.setAnswer(msg.Text)
		}
		return p, nil

	case spinner.TickMsg:
		if !p.life.Loading {
			return p, nil
		}
		var cmd tea.Cmd
		p.spinner, cmd = p.spinner.Update(msg)
		return p, cmd

	case tea.KeyPressMsg:
		if !p.life.PanelOpen {
			return p, nil
		}
		switch msg.String() {
		case "esc":
			return p.Toggle()
		case "enter":
			return p.submit()
		case "up":
			p.answer.ScrollUp(1)
			return p, nil
		case "down":
			p.answer.ScrollDown(1)
			return p, nil
		}
	}

	if !p.life.PanelOpen {
		return p, nil
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

func (p Panel) submit() (Panel, tea.Cmd) {
	ask, err := p.life.Submit(p.input.Value())
	if err != nil {
		// Blank, in-flight and closed submits leave the panel as it is.
		return p, nil
	}
	p.rendered = ""
	p.answer.SetContent("")
	return p, tea.Batch(ask, p.spinner.Tick)
}

func (p *Panel) setAnswer(text string) {
	p.rendered = text
	p.answer.SetContent(render.Markdown(text, p.innerWidth()))
	p.answer.GotoTop()
}

// SetWidth sizes the panel for a terminal of the given width.
func (p *Panel) SetWidth(termWidth int) {
	p.width = min(maxPanelW, max(termWidth-4, 24))
	inner := p.innerWidth()
	p.input.SetWidth(inner - 3)
	p.answer.SetWidth(inner)
	if p.rendered != "" {
		p.answer.SetContent(render.Markdown(p.rendered, inner))
	}
}

func (p Panel) innerWidth() int {
	w := p.width
	if w == 0 {
		w = maxPanelW
	}
	return w - 4 // border and padding
}

// View renders the panel box.
func (p Panel) View() string {
	inner := p.innerWidth()

	var body string
	switch {
	case p.life.Loading:
		body = p.spinner.View() + " " + theme.Subtitle.Render(loadingText)
	case p.life.HasResponse:
		body = p.answer.View()
	default:
		body = theme.Hint.Render(render.Wrap(p.hint, inner))
	}

	sections := []string{
		lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(panelTitle),
		"",
		lipgloss.NewStyle().Width(inner).Height(answerHeight).MaxHeight(answerHeight).Render(body),
		"",
		p.input.View(),
		layout.RenderHints([]layout.KeyHint{
			{Key: "Enter", Description: "Ask"},
			{Key: "↑↓", Description: "Scroll"},
			{Key: "Esc", Description: "Close"},
		}),
	}

	width := p.width
	if width == 0 {
		width = maxPanelW
	}
	return theme.Panel.Width(width).Render(strings.Join(sections, "\n"))
}
