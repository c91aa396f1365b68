// Package router keeps the screen stack: the presenter at the bottom and
// modal screens such as the overview pushed above it.
package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/pitchdeck/internal/screen"
)

// PushScreenMsg asks the router to mount Screen on top of the stack.
type PushScreenMsg struct {
	Screen screen.Screen
}

// PopScreenMsg asks the router to unmount the top screen.
type PopScreenMsg struct{}

// Router owns a non-empty stack of screens. Only the top one is active.
type Router struct {
	stack []screen.Screen
}

func New(root screen.Screen) *Router {
	return &Router{stack: []screen.Screen{root}}
}

// Push mounts s above the active screen and returns its Init command.
func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return s.Init()
}

// Pop unmounts the active screen. The root is never popped.
func (r *Router) Pop() tea.Cmd {
	n := len(r.stack)
	if n <= 1 {
		return nil
	}
	top := r.stack[n-1]
	r.stack[n-1] = nil
	r.stack = r.stack[:n-1]
	unmount(top)
	return nil
}

// UnmountAll unmounts every screen, top first, on shutdown. The stack
// itself is left alone.
func (r *Router) UnmountAll() {
	for i := len(r.stack) - 1; i >= 0; i-- {
		unmount(r.stack[i])
	}
}

func unmount(s screen.Screen) {
	if u, ok := s.(screen.Unmounter); ok {
		u.Unmount()
	}
}

func (r *Router) Active() screen.Screen { return r.stack[len(r.stack)-1] }

func (r *Router) Depth() int { return len(r.stack) }

// Update applies stack messages and hands anything else to the active
// screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen)
	case PopScreenMsg:
		return r.Pop()
	}
	top := len(r.stack) - 1
	var cmd tea.Cmd
	r.stack[top], cmd = r.stack[top].Update(msg)
	return cmd
}

// Broadcast hands msg to every screen on the stack. A screen buried under
// a modal may still own in-flight work whose result has to land.
func (r *Router) Broadcast(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, len(r.stack))
	for i := range r.stack {
		r.stack[i], cmds[i] = r.stack[i].Update(msg)
	}
	return tea.Batch(cmds...)
}

func (r *Router) View(width, height int) string {
	return r.Active().View(width, height)
}
