package presenter

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/pitchdeck/internal/ui/components"
	"github.com/abhisek/pitchdeck/internal/ui/render"
	"github.com/abhisek/pitchdeck/internal/ui/theme"
)

func (s *PresenterScreen) View(width, height int) string {
	bar := s.controlBar(width)
	slideH := max(height-lipgloss.Height(bar), 1)

	var body string
	if s.trans != nil && !s.trans.Done() {
		out := render.Slide(s.deck.Slide(s.trans.From), width, slideH, s.showNotes)
		in := render.Slide(s.deck.Slide(s.trans.To), width, slideH, s.showNotes)
		body = render.Fit(s.trans.View(out, in), width, slideH)
	} else {
		body = render.Slide(s.deck.Slide(s.nav.Index()), width, slideH, s.showNotes)
	}

	if s.panel.Open() {
		body = overlay(body, s.panel.View(), width, slideH)
	}
	return body + "\n" + bar
}

// overlay floats panel in the bottom-right corner of base.
func overlay(base, panel string, width, height int) string {
	pw, ph := lipgloss.Width(panel), lipgloss.Height(panel)
	x := max(width-pw-1, 0)
	y := max(height-ph, 0)

	canvas := lipgloss.NewCanvas(
		lipgloss.NewLayer(base),
		lipgloss.NewLayer(panel).X(x).Y(y).Z(1),
	)
	return render.Fit(canvas.Render(), width, height)
}

// controlBar is the one-line strip under the slide: previous and next
// buttons, the slide counter with a progress bar, then the fullscreen and
// assistant indicators.
func (s *PresenterScreen) controlBar(width int) string {
	st := s.nav.State()

	prev := components.NewButton("‹ Prev", !s.nav.AtStart()).View()
	next := components.NewButton("Next ›", !s.nav.AtEnd()).View()
	left := prev + " " + next

	counter := theme.Subtitle.Render(s.Status())
	progress := components.SlideProgress(st.Index, s.nav.Count(), max(width/5, 8)).View()
	center := counter + "  " + progress

	full := "⛶ f"
	if st.Fullscreen {
		full = "▣ f"
	}
	ask := "✦ a"
	switch life := s.panel.Lifecycle(); {
	case life.Loading:
		ask = "✦ …"
	case life.HasResponse && !life.PanelOpen:
		ask = "✦ ●"
	}
	right := theme.Hint.Render(full) + "  " + theme.Kicker.Render(ask)

	gap := width - lipgloss.Width(left) - lipgloss.Width(center) - lipgloss.Width(right)
	if gap < 2 {
		return render.Fit(left+" "+center, width, 1)
	}
	lgap := gap / 2
	line := left + strings.Repeat(" ", lgap) + center + strings.Repeat(" ", gap-lgap) + right
	return render.Fit(line, width, 1)
}
