package components

import (
	"strings"

	"github.com/abhisek/pitchdeck/internal/ui/theme"
)

// ProgressBar is a solid bar, Fraction of it filled.
type ProgressBar struct {
	Fraction float64
	Width    int
}

// SlideProgress is the deck's position bar. It is full on the last slide.
func SlideProgress(index, count, width int) ProgressBar {
	if count <= 0 {
		return ProgressBar{Width: width}
	}
	return ProgressBar{Fraction: float64(index+1) / float64(count), Width: width}
}

func (p ProgressBar) View() string {
	w := max(p.Width, 4)
	filled := max(0, min(w, int(float64(w)*p.Fraction)))
	return theme.ProgressFilled.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", w-filled))
}
