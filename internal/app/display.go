package app

import (
	"os"

	"golang.org/x/term"

	"github.com/abhisek/pitchdeck/internal/nav"
)

// terminalDisplay maps fullscreen onto the terminal's alternate screen.
// Output that is not a terminal has no alternate screen, so fullscreen is
// refused there.
type terminalDisplay struct {
	tty  bool
	full bool
}

var _ nav.Display = (*terminalDisplay)(nil)

func newTerminalDisplay(f *os.File) *terminalDisplay {
	return &terminalDisplay{tty: term.IsTerminal(int(f.Fd()))}
}

func (d *terminalDisplay) EnterFullscreen() error {
	if !d.tty {
		return nav.ErrFullscreenUnavailable
	}
	d.full = true
	return nil
}

func (d *terminalDisplay) ExitFullscreen() error {
	d.full = false
	return nil
}

func (d *terminalDisplay) IsFullscreen() bool {
	return d.full
}
