// Package layout draws the chrome around a screen: the header bar, the
// key-hint footer and the frame that stacks them.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/pitchdeck/internal/ui/theme"
)

// The smallest terminal a slide renders in.
const (
	MinWidth  = 64
	MinHeight = 20
)

// KeyHint is one "key description" pair in the footer.
type KeyHint struct {
	Key         string
	Description string
}

func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage fills the terminal with a request to resize.
func RenderMinSizeMessage(width, height int) string {
	msg := fmt.Sprintf("Terminal too small!\n\nPlease resize to at\nleast %d x %d\n\nCurrent: %d x %d",
		MinWidth, MinHeight, width, height)
	return lipgloss.NewStyle().
		Foreground(theme.Text).
		Align(lipgloss.Center).
		Width(width).
		Height(height).
		Render(msg)
}

func bar(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border)
}

// RenderHeader draws the deck title at the left, title centred on the bar
// and status (the slide counter) at the right.
func RenderHeader(deckTitle, title, status string, width int) string {
	left := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("  " + deckTitle)
	mid := lipgloss.NewStyle().Foreground(theme.Text).Render(title)
	right := lipgloss.NewStyle().Foreground(theme.TextDim).Render(status)

	// Two columns of border and two of padding.
	inner := max(0, width-4)
	lw, mw, rw := lipgloss.Width(left), lipgloss.Width(mid), lipgloss.Width(right)

	gapL := max(1, (inner-mw)/2-lw)
	gapR := max(1, inner-lw-gapL-mw-rw)
	return bar(width).Render(left + strings.Repeat(" ", gapL) + mid + strings.Repeat(" ", gapR) + right)
}

// RenderFooter draws the hints in a bar.
func RenderFooter(hints []KeyHint, width int) string {
	return bar(width).Render("  " + RenderHints(hints))
}

// RenderHints lays hints out on one line.
func RenderHints(hints []KeyHint) string {
	key := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	desc := lipgloss.NewStyle().Foreground(theme.TextDim)

	var b strings.Builder
	for i, h := range hints {
		if i > 0 {
			b.WriteString("   ")
		}
		b.WriteString(key.Render(h.Key) + " " + desc.Render(h.Description))
	}
	return b.String()
}

// RenderFrame stacks header, content and footer into width x height. An
// empty header or footer takes no rows, which is how fullscreen hides the
// chrome; content is padded or cut to the rows left over.
func RenderFrame(header, content, footer string, width, height int) string {
	rows := height
	var parts []string
	if header != "" {
		rows -= lipgloss.Height(header)
		parts = append(parts, header)
	}
	if footer != "" {
		rows -= lipgloss.Height(footer)
	}
	rows = max(0, rows)

	parts = append(parts, lipgloss.NewStyle().Width(width).Height(rows).MaxHeight(rows).Render(content))
	if footer != "" {
		parts = append(parts, footer)
	}
	return strings.Join(parts, "\n")
}
