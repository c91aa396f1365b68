package render

import (
	"math"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/abhisek/pitchdeck/internal/deck"
	"github.com/abhisek/pitchdeck/internal/ui/theme"
)

const (
	barGlyph    = "█"
	maxNameCols = 12
)

var sparkLevels = []rune("▁▂▃▄▅▆▇█")

// FormatValue renders a chart value with its unit. Currency-like units
// ("$B", "₹ Cr") lead; percentages and others trail.
func FormatValue(v float64, unit string) string {
	n := strconv.FormatFloat(v, 'f', -1, 64)
	switch {
	case unit == "":
		return n
	case unit == "%":
		return n + "%"
	case strings.HasPrefix(unit, "$"):
		return "$" + n + strings.TrimPrefix(unit, "$")
	case strings.HasPrefix(unit, "₹"):
		return "₹" + n + strings.TrimPrefix(unit, "₹")
	default:
		return n + " " + unit
	}
}

// Bars draws a horizontal bar chart. Bars are scaled to the largest
// magnitude; negative values are drawn in the error colour.
func Bars(c *deck.Chart, width int) string {
	if c == nil || len(c.Points) == 0 {
		return ""
	}

	nameW, valueW := 0, 0
	peak := 0.0
	for _, p := range c.Points {
		nameW = max(nameW, ansi.StringWidth(p.Name))
		valueW = max(valueW, ansi.StringWidth(FormatValue(p.Value, c.Unit)))
		peak = math.Max(peak, math.Abs(p.Value))
		if p.Value2 != nil {
			valueW = max(valueW, ansi.StringWidth(FormatValue(*p.Value2, c.Unit)))
			peak = math.Max(peak, math.Abs(*p.Value2))
		}
	}
	nameW = min(nameW, maxNameCols)
	barW := max(width-nameW-valueW-4, 4)

	var lines []string
	if c.Title != "" {
		lines = append(lines, theme.Subtitle.Render(ansi.Truncate(c.Title, width, "…")))
	}
	for _, p := range c.Points {
		name := padRight(ansi.Truncate(p.Name, nameW, "…"), nameW)
		lines = append(lines, barLine(name, p.Value, peak, barW, c.Unit, barStyle(p.Value)))
		if p.Value2 != nil {
			lines = append(lines, barLine(strings.Repeat(" ", nameW), *p.Value2, peak, barW, c.Unit,
				lipgloss.NewStyle().Foreground(theme.TextDim)))
		}
		if p.Label != "" {
			lines = append(lines, strings.Repeat(" ", nameW+1)+theme.Hint.Render(p.Label))
		}
	}
	return strings.Join(lines, "\n")
}

func barLine(name string, v, peak float64, barW int, unit string, style lipgloss.Style) string {
	n := 0
	if peak > 0 {
		n = int(math.Round(math.Abs(v) / peak * float64(barW)))
	}
	if v != 0 && n == 0 {
		n = 1
	}
	return theme.Body.Render(name) + " " +
		style.Render(strings.Repeat(barGlyph, n)) + " " +
		theme.Subtitle.Render(FormatValue(v, unit))
}

func barStyle(v float64) lipgloss.Style {
	if v < 0 {
		return theme.Negative
	}
	return lipgloss.NewStyle().Foreground(theme.Primary)
}

// Line draws a series as a sparkline with the point names underneath.
func Line(c *deck.Chart, width int) string {
	if c == nil || len(c.Points) == 0 {
		return ""
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, p := range c.Points {
		lo = math.Min(lo, p.Value)
		hi = math.Max(hi, p.Value)
	}

	colW := max(width/len(c.Points), 1)
	var spark, names, values strings.Builder
	for _, p := range c.Points {
		level := len(sparkLevels) - 1
		if hi > lo {
			level = int(math.Round((p.Value - lo) / (hi - lo) * float64(len(sparkLevels)-1)))
		}
		glyph := string(sparkLevels[level])
		spark.WriteString(center(strings.Repeat(glyph, max(colW/2, 1)), colW))
		names.WriteString(center(ansi.Truncate(p.Name, colW-1, "…"), colW))
		values.WriteString(center(ansi.Truncate(FormatValue(p.Value, c.Unit), colW-1, "…"), colW))
	}

	var lines []string
	if c.Title != "" {
		lines = append(lines, theme.Subtitle.Render(ansi.Truncate(c.Title, width, "…")))
	}
	lines = append(lines,
		lipgloss.NewStyle().Foreground(theme.Primary).Render(spark.String()),
		theme.Body.Render(names.String()),
		theme.Subtitle.Render(values.String()),
	)
	return strings.Join(lines, "\n")
}

func padRight(s string, w int) string {
	if pad := w - ansi.StringWidth(s); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}

func center(s string, w int) string {
	pad := w - ansi.StringWidth(s)
	if pad <= 0 {
		return s
	}
	return strings.Repeat(" ", pad/2) + s + strings.Repeat(" ", pad-pad/2)
}
