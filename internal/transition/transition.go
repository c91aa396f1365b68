// Package transition animates the slide change: the incoming slide slides
// in from the trailing edge on a damped spring while the outgoing slide
// drifts toward the leading edge at a parallax fraction of its speed.
package transition

import (
	"math"
	"strings"
	"sync/atomic"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/x/ansi"

	"github.com/abhisek/pitchdeck/internal/nav"
)

// Params tunes the spring. The defaults approximate a stiffness of 300,
// damping of 30 and mass of 0.8.
type Params struct {
	FPS       int
	Frequency float64 // angular frequency
	Damping   float64 // damping ratio
	Parallax  float64 // outgoing travel as a fraction of width
}

// DefaultParams returns the stock spring.
func DefaultParams() Params {
	return Params{FPS: 60, Frequency: 19.0, Damping: 0.97, Parallax: 0.25}
}

// maxDuration bounds an animation so a badly tuned spring still settles.
const maxDuration = 2 * time.Second

// FrameMsg advances the transition with the matching ID.
type FrameMsg struct {
	ID int
}

var lastID atomic.Int64

// Transition is one in-flight slide change.
type Transition struct {
	id        int
	From, To  int
	Direction nav.Direction

	width    int
	fps      int
	parallax float64
	spring   harmonica.Spring

	progress float64 // 0 at start, 1 at rest
	velocity float64
	frames   int
	maxFrame int
	done     bool
}

// Plan returns the transition for a move from slide from to slide to, or
// nil when nothing should animate (first render, same slide, no width).
func Plan(from, to int, dir nav.Direction, width int, p Params) *Transition {
	if dir == nav.None || from == to || width <= 0 {
		return nil
	}
	if p.FPS <= 0 {
		p.FPS = DefaultParams().FPS
	}
	return &Transition{
		id:        int(lastID.Add(1)),
		From:      from,
		To:        to,
		Direction: dir,
		width:     width,
		fps:       p.FPS,
		parallax:  p.Parallax,
		spring:    harmonica.NewSpring(harmonica.FPS(p.FPS), p.Frequency, p.Damping),
		maxFrame:  int(maxDuration.Seconds() * float64(p.FPS)),
	}
}

// ID identifies the transition's frame messages.
func (t *Transition) ID() int { return t.id }

// Tick schedules the next frame.
func (t *Transition) Tick() tea.Cmd {
	id := t.id
	return tea.Tick(time.Second/time.Duration(t.fps), func(time.Time) tea.Msg {
		return FrameMsg{ID: id}
	})
}

// Step advances one frame.
func (t *Transition) Step() {
	if t.done {
		return
	}
	t.progress, t.velocity = t.spring.Update(t.progress, t.velocity, 1.0)
	t.frames++

	settled := math.Abs(1-t.progress)*float64(t.width) < 0.5 && math.Abs(t.velocity) < 0.05
	if settled || t.frames >= t.maxFrame {
		t.progress, t.velocity = 1, 0
		t.done = true
	}
}

// Done reports whether the incoming slide is at rest.
func (t *Transition) Done() bool { return t.done }

// Offsets returns the current column offsets of the incoming and outgoing
// layers relative to their resting position.
func (t *Transition) Offsets() (incoming, outgoing int) {
	p := math.Max(0, math.Min(1, t.progress))
	sign := 1.0
	if t.Direction == nav.Backward {
		sign = -1
	}
	w := float64(t.width)
	incoming = int(math.Round(sign * w * (1 - p)))
	outgoing = int(math.Round(-sign * t.parallax * w * p))
	return incoming, outgoing
}

// View renders both layers at the current offsets.
func (t *Transition) View(outgoing, incoming string) string {
	in, out := t.Offsets()
	return Compose(outgoing, incoming, t.width, in, out)
}

// Compose draws outgoing and incoming side by side in a viewport of the
// given width, each shifted by its offset. Where the layers overlap the
// incoming one wins.
func Compose(outgoing, incoming string, width, inX, outX int) string {
	outLines := strings.Split(outgoing, "\n")
	inLines := strings.Split(incoming, "\n")
	rows := max(len(outLines), len(inLines))

	var b strings.Builder
	for r := 0; r < rows; r++ {
		if r > 0 {
			b.WriteByte('\n')
		}
		composeRow(&b, lineAt(outLines, r), lineAt(inLines, r), width, inX, outX)
	}
	return b.String()
}

func composeRow(b *strings.Builder, out, in string, width, inX, outX int) {
	inStart := clamp(inX, 0, width)
	inEnd := clamp(inX+width, 0, width)

	// Left of the incoming layer, then the incoming layer, then right of it.
	fillFrom(b, out, width, outX, 0, inStart)
	writeCells(b, in, width, inStart-inX, inEnd-inStart)
	fillFrom(b, out, width, outX, inEnd, width)
}

// fillFrom writes viewport columns [from, to) from the outgoing layer,
// padding with blanks where the layer does not reach.
func fillFrom(b *strings.Builder, line string, width, offset, from, to int) {
	if to <= from {
		return
	}
	start := clamp(offset, from, to)
	end := clamp(offset+width, from, to)
	b.WriteString(strings.Repeat(" ", start-from))
	writeCells(b, line, width, start-offset, end-start)
	b.WriteString(strings.Repeat(" ", to-end))
}

// writeCells writes n cells of line starting at source column src.
func writeCells(b *strings.Builder, line string, width, src, n int) {
	if n <= 0 {
		return
	}
	// A cut through a wide rune keeps the whole rune.
	seg := ansi.Truncate(ansi.Cut(line, src, src+n), n, "")
	b.WriteString(seg)
	if pad := n - ansi.StringWidth(seg); pad > 0 {
		b.WriteString(strings.Repeat(" ", pad))
	}
	if strings.Contains(seg, "\x1b[") {
		b.WriteString(ansi.ResetStyle)
	}
}

func lineAt(lines []string, i int) string {
	if i < len(lines) {
		return lines[i]
	}
	return ""
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
