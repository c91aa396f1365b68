package render

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/abhisek/pitchdeck/internal/deck"
	"github.com/abhisek/pitchdeck/internal/ui/theme"
)

const (
	// twoColumnWidth is the width from which chart slides put the chart
	// beside the text instead of under it.
	twoColumnWidth = 100
	minCardWidth   = 16
	margin         = 2
)

// Slide renders s into exactly height rows of exactly width columns, so
// two slides can be composed side by side during a transition.
func Slide(s deck.Slide, width, height int, showNotes bool) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	inner := max(width-2*margin, 1)

	var body string
	switch s.Kind {
	case deck.KindTitle:
		body = lipgloss.Place(inner, height, lipgloss.Center, lipgloss.Center, titleSlide(s, inner))
	case deck.KindChartBar, deck.KindChartLine:
		body = chartSlide(s, inner)
	case deck.KindComparison:
		body = comparisonSlide(s, inner)
	case deck.KindFuture:
		body = lipgloss.Place(inner, height, lipgloss.Center, lipgloss.Center, futureSlide(s, inner))
	default:
		body = listSlide(s, inner)
	}

	if showNotes && s.Notes != "" {
		body = withNotes(body, s.Notes, inner, height)
	}
	return Fit(indent(body, margin), width, height)
}

// Fit pads or truncates every line to width and the block to height rows.
func Fit(content string, width, height int) string {
	lines := strings.Split(content, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	for i, l := range lines {
		if ansi.StringWidth(l) > width {
			l = ansi.Truncate(l, width, "")
		}
		lines[i] = padRight(l, width)
	}
	return strings.Join(lines, "\n")
}

func indent(s string, n int) string {
	pad := strings.Repeat(" ", n)
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = pad + lines[i]
	}
	return strings.Join(lines, "\n")
}

func heading(s deck.Slide, width int) []string {
	var out []string
	if s.Kicker != "" {
		out = append(out, theme.Kicker.Render(strings.ToUpper(s.Kicker)))
	}
	out = append(out, theme.Title.Render(Wrap(s.Title, width)))
	if s.Subtitle != "" {
		out = append(out, theme.Subtitle.Render(Wrap(s.Subtitle, width)))
	}
	return out
}

func titleSlide(s deck.Slide, width int) string {
	var parts []string
	if s.Kicker != "" {
		parts = append(parts, theme.Kicker.Render(strings.ToUpper(s.Kicker)))
	}
	parts = append(parts,
		lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(strings.ToUpper(s.Title)))
	if s.Subtitle != "" {
		parts = append(parts, theme.Subtitle.Render(s.Subtitle))
	}
	if s.Body != "" {
		parts = append(parts, "", Markdown(s.Body, width))
	}
	return lipgloss.JoinVertical(lipgloss.Center, parts...)
}

func chartSlide(s deck.Slide, width int) string {
	chart := func(w int) string {
		if s.Kind == deck.KindChartLine {
			return Line(s.Chart, w)
		}
		return Bars(s.Chart, w)
	}

	column := func(w int) []string {
		text := heading(s, w)
		if s.Body != "" {
			text = append(text, "", Markdown(s.Body, w))
		}
		if len(s.Bullets) > 0 {
			text = append(text, "")
			text = append(text, bullets(s.Bullets, w)...)
		}
		if len(s.Stats) > 0 {
			text = append(text, "", stats(s.Stats, w))
		}
		return text
	}

	if width >= twoColumnWidth && s.Chart != nil {
		left := (width - 4) / 2
		right := width - left - 4
		col := lipgloss.JoinVertical(lipgloss.Left, column(left)...)
		return lipgloss.JoinHorizontal(lipgloss.Top,
			lipgloss.NewStyle().Width(left).Render(col),
			"    ",
			theme.Card.Render(chart(right-4)),
		)
	}

	text := column(width)
	if s.Chart != nil {
		text = append(text, "", chart(width))
	}
	return strings.Join(text, "\n")
}

func listSlide(s deck.Slide, width int) string {
	parts := heading(s, width)
	if len(s.Stats) > 0 {
		parts = append(parts, "", stats(s.Stats, width))
	}
	if s.Body != "" {
		parts = append(parts, "", Markdown(s.Body, width))
	}
	if len(s.Bullets) > 0 {
		parts = append(parts, "")
		parts = append(parts, bullets(s.Bullets, width)...)
	}
	return strings.Join(parts, "\n")
}

func comparisonSlide(s deck.Slide, width int) string {
	parts := heading(s, width)
	if len(s.Stats) > 0 {
		parts = append(parts, "", stats(s.Stats, width))
	}
	if s.Chart != nil {
		parts = append(parts, "", Bars(s.Chart, width))
	}
	if s.Body != "" {
		parts = append(parts, "", Markdown(s.Body, width))
	}
	return strings.Join(parts, "\n")
}

func futureSlide(s deck.Slide, width int) string {
	parts := []string{
		lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(s.Title),
		"",
	}
	cards := make([]deck.Stat, 0, len(s.Bullets))
	for _, b := range s.Bullets {
		cards = append(cards, deck.Stat{Value: b.Title, Label: b.Text})
	}
	parts = append(parts, stats(cards, width))
	if s.Body != "" {
		parts = append(parts, "", Markdown(s.Body, width))
	}
	return lipgloss.JoinVertical(lipgloss.Center, parts...)
}

func bullets(items []deck.Bullet, width int) []string {
	out := make([]string, 0, len(items))
	for _, b := range items {
		text := theme.Emphasis.Render(b.Title)
		if b.Text != "" {
			text += ": " + Inline(b.Text)
		}
		out = append(out, Bullet(text, width))
	}
	return out
}

// stats lays stat cards out in rows that fit width.
func stats(items []deck.Stat, width int) string {
	if len(items) == 0 {
		return ""
	}
	perRow := max(min(len(items), width/(minCardWidth+1)), 1)
	cardW := max(width/perRow-1, minCardWidth)

	var rows []string
	for start := 0; start < len(items); start += perRow {
		end := min(start+perRow, len(items))
		cards := make([]string, 0, end-start)
		for _, st := range items[start:end] {
			cards = append(cards, statCard(st, cardW))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return strings.Join(rows, "\n")
}

func statCard(st deck.Stat, width int) string {
	inner := max(width-4, 1)
	lines := []string{theme.Emphasis.Render(ansi.Truncate(st.Value, inner, "…"))}
	if st.Label != "" {
		lines = append(lines, theme.Body.Render(ansi.Truncate(st.Label, inner, "…")))
	}
	if st.Sub != "" {
		lines = append(lines, theme.Subtitle.Render(ansi.Truncate(st.Sub, inner, "…")))
	}
	return theme.Card.Width(width).Render(strings.Join(lines, "\n"))
}

// withNotes pins the speaker notes to the bottom of the slide.
func withNotes(body, notes string, width, height int) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), true, false, false, false).
		BorderForeground(theme.Border).
		Foreground(theme.TextDim).
		Render(theme.Hint.Render("Notes: ") + Wrap(strings.TrimSpace(notes), width-7))

	room := height - lipgloss.Height(box)
	if room < 1 {
		return box
	}
	lines := strings.Split(body, "\n")
	if len(lines) > room {
		lines = lines[:room]
	}
	for len(lines) < room {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n") + "\n" + box
}
