package transition

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/pitchdeck/internal/nav"
)

func TestPlan_NoAnimation(t *testing.T) {
	p := DefaultParams()
	assert.Nil(t, Plan(0, 0, nav.None, 80, p), "first render")
	assert.Nil(t, Plan(2, 2, nav.Forward, 80, p), "same slide")
	assert.Nil(t, Plan(0, 1, nav.Forward, 0, p), "no width")
}

func TestPlan_UniqueIDs(t *testing.T) {
	a := Plan(0, 1, nav.Forward, 40, DefaultParams())
	b := Plan(1, 2, nav.Forward, 40, DefaultParams())
	require.NotNil(t, a)
	require.NotNil(t, b)
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestOffsets_StartPositions(t *testing.T) {
	fwd := Plan(0, 1, nav.Forward, 80, DefaultParams())
	in, out := fwd.Offsets()
	assert.Equal(t, 80, in, "forward enters from the right edge")
	assert.Equal(t, 0, out)

	back := Plan(1, 0, nav.Backward, 80, DefaultParams())
	in, out = back.Offsets()
	assert.Equal(t, -80, in, "backward enters from the left edge")
	assert.Equal(t, 0, out)
}

func TestStep_SettlesAtRest(t *testing.T) {
	for _, dir := range []nav.Direction{nav.Forward, nav.Backward} {
		tr := Plan(0, 1, dir, 80, DefaultParams())
		frames := 0
		for !tr.Done() {
			tr.Step()
			frames++
			require.Less(t, frames, 1000, "transition must terminate")

			in, out := tr.Offsets()
			if dir == nav.Forward {
				assert.GreaterOrEqual(t, in, 0)
				assert.LessOrEqual(t, out, 0)
				assert.GreaterOrEqual(t, out, -20, "parallax travel is a quarter width")
			} else {
				assert.LessOrEqual(t, in, 0)
				assert.GreaterOrEqual(t, out, 0)
				assert.LessOrEqual(t, out, 20)
			}
		}
		in, out := tr.Offsets()
		assert.Equal(t, 0, in)
		if dir == nav.Forward {
			assert.Equal(t, -20, out)
		} else {
			assert.Equal(t, 20, out)
		}
		assert.Less(t, frames, 2*60+1)
	}
}

func TestStep_BadSpringStillTerminates(t *testing.T) {
	tr := Plan(0, 1, nav.Forward, 80, Params{FPS: 10, Frequency: 0.01, Damping: 0.01, Parallax: 0.25})
	for i := 0; i < 21; i++ {
		tr.Step()
	}
	assert.True(t, tr.Done())
}

func TestCompose_AtRestShowsOnlyIncoming(t *testing.T) {
	got := Compose("AAAA\nAAAA", "BBBB\nBBBB", 4, 0, -1)
	assert.Equal(t, "BBBB\nBBBB", got)
}

func TestCompose_Forward(t *testing.T) {
	// Incoming starts at column 6; outgoing shifted one column left.
	got := Compose("0123456789", "abcdefghij", 10, 6, -1)
	assert.Equal(t, "123456abcd", got)
}

func TestCompose_Backward(t *testing.T) {
	got := Compose("0123456789", "abcdefghij", 10, -6, 1)
	assert.Equal(t, "ghij345678", got)
}

func TestCompose_PadsShortLinesAndRows(t *testing.T) {
	got := Compose("ab", "x\ny", 4, 2, 0)
	lines := strings.Split(got, "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "abx ", lines[0])
	for _, l := range lines {
		assert.Equal(t, 4, ansi.StringWidth(l))
	}
	assert.Equal(t, "  y ", lines[1])
}

func TestCompose_NeverBlankMidTransition(t *testing.T) {
	out := strings.Repeat("o", 40)
	in := strings.Repeat("i", 40)
	tr := Plan(0, 1, nav.Forward, 40, DefaultParams())
	for !tr.Done() {
		tr.Step()
		frame := tr.View(out, in)
		assert.NotContains(t, frame, " ", "layers must cover the viewport")
		assert.Equal(t, 40, ansi.StringWidth(frame))
	}
	assert.Equal(t, in, tr.View(out, in))
}

func TestCompose_StyledSegmentsAreReset(t *testing.T) {
	styled := "\x1b[31mredredredr\x1b[m"
	got := Compose(styled, "abcdefghij", 10, 5, 0)
	assert.Equal(t, "redreabcde", ansi.Strip(got))
	assert.Contains(t, got, ansi.ResetStyle)
}

func TestCompose_WideRunesKeepViewportWidth(t *testing.T) {
	out := strings.Repeat("漢", 20)
	in := strings.Repeat("字", 20)
	for inX := -40; inX <= 40; inX++ {
		for _, outX := range []int{-inX / 3, -inX / 2, -inX} {
			got := Compose(out+"\nplain", in, 40, inX, outX)
			for _, l := range strings.Split(got, "\n") {
				assert.Equal(t, 40, ansi.StringWidth(l), "inX=%d outX=%d", inX, outX)
			}
		}
	}

	tr := Plan(0, 1, nav.Backward, 40, DefaultParams())
	for !tr.Done() {
		tr.Step()
		assert.Equal(t, 40, ansi.StringWidth(tr.View(out, in)))
	}
}
