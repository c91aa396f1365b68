// Package nav holds the slide navigation state machine: the current slide
// index, the direction of the last move and the fullscreen flag.
package nav

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/pitchdeck/internal/logging"
)

// Direction records which way the last successful move went. It only
// drives the transition animation.
type Direction int

const (
	None Direction = iota
	Forward
	Backward
)

func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	default:
		return "none"
	}
}

// ErrFullscreenUnavailable is returned by a Display that cannot change
// mode, e.g. when output is not a terminal.
var ErrFullscreenUnavailable = errors.New("fullscreen unavailable")

// Display is the host's presentation surface.
type Display interface {
	EnterFullscreen() error
	ExitFullscreen() error
	IsFullscreen() bool
}

// State is a snapshot of the controller.
type State struct {
	Index      int
	Direction  Direction
	Fullscreen bool
}

// Controller moves through a fixed number of slides. Index always stays
// in [0, count).
type Controller struct {
	count int
	state State
}

// New returns a controller on the first slide.
func New(count int) (*Controller, error) {
	if count < 1 {
		return nil, fmt.Errorf("nav: slide count must be positive, got %d", count)
	}
	return &Controller{count: count}, nil
}

// State returns the current state.
func (c *Controller) State() State { return c.state }

// Index returns the current slide index.
func (c *Controller) Index() int { return c.state.Index }

// Count returns the number of slides.
func (c *Controller) Count() int { return c.count }

// AtStart reports whether Previous would be a no-op.
func (c *Controller) AtStart() bool { return c.state.Index == 0 }

// AtEnd reports whether Next would be a no-op.
func (c *Controller) AtEnd() bool { return c.state.Index == c.count-1 }

// Next advances one slide. At the last slide it does nothing, including
// leaving Direction untouched, and returns false.
func (c *Controller) Next() bool {
	if c.AtEnd() {
		return false
	}
	c.state.Index++
	c.state.Direction = Forward
	return true
}

// Previous goes back one slide. At the first slide it does nothing and
// returns false.
func (c *Controller) Previous() bool {
	if c.AtStart() {
		return false
	}
	c.state.Index--
	c.state.Direction = Backward
	return true
}

// JumpTo moves directly to slide i, clamped into range.
func (c *Controller) JumpTo(i int) bool {
	i = max(0, min(i, c.count-1))
	switch {
	case i == c.state.Index:
		return false
	case i > c.state.Index:
		c.state.Direction = Forward
	default:
		c.state.Direction = Backward
	}
	c.state.Index = i
	return true
}

// ToggleFullscreen asks d for the opposite of its current mode and records
// the requested mode immediately. A refusal is logged and otherwise
// ignored; SyncFullscreen corrects the flag once the host reports back.
func (c *Controller) ToggleFullscreen(d Display) {
	if d.IsFullscreen() {
		c.state.Fullscreen = false
		if err := d.ExitFullscreen(); err != nil {
			logging.Warn("exit fullscreen refused", zap.Error(err))
		}
		return
	}
	c.state.Fullscreen = true
	if err := d.EnterFullscreen(); err != nil {
		logging.Warn("enter fullscreen refused", zap.Error(err))
	}
}

// SyncFullscreen overwrites the fullscreen flag with the host's actual mode.
func (c *Controller) SyncFullscreen(actual bool) {
	c.state.Fullscreen = actual
}
