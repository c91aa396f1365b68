// Package keys is the process-wide key listener registry. Screens bind
// named actions while mounted and release them on unmount; the app routes
// every key press through Dispatch before the active screen sees it.
package keys

import (
	"sync"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
)

// Action names a bindable intent.
type Action string

const (
	Advance Action = "advance"
	Retreat Action = "retreat"
)

// Binding ties an action to the keys that trigger it.
type Binding struct {
	Action Action
	Key    key.Binding
}

// NewBinding builds a Binding from key names as reported by
// tea.KeyPressMsg.String ("right", "space", "pgdown", "l").
func NewBinding(action Action, help string, keyNames ...string) Binding {
	return Binding{
		Action: action,
		Key: key.NewBinding(
			key.WithKeys(keyNames...),
			key.WithHelp(firstOr(keyNames, ""), help),
		),
	}
}

// Handler reacts to a matched action. Returning false declines the key so
// it falls through to the active screen.
type Handler func(Action) (tea.Cmd, bool)

type listener struct {
	id       uint64
	bindings []Binding
	handler  Handler
}

// Registry holds at most one listener per owner. Listeners form a stack:
// the most recently bound owner sees keys first, so an overlay bound on
// top of the deck shadows it until released.
type Registry struct {
	mu        sync.Mutex
	nextID    uint64
	order     []string
	listeners map[string]listener
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{listeners: make(map[string]listener)}
}

// Bind registers handler for owner's bindings and returns its release
// func. Binding an owner that is already bound replaces the previous
// listener, so repeated mounts never double-fire. Release is idempotent
// and a stale release (after a rebind) leaves the newer listener intact.
func (r *Registry) Bind(owner string, bindings []Binding, handler Handler) (release func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	id := r.nextID
	r.removeOrder(owner)
	r.order = append(r.order, owner)
	r.listeners[owner] = listener{id: id, bindings: bindings, handler: handler}

	var once sync.Once
	return func() {
		once.Do(func() { r.release(owner, id) })
	}
}

func (r *Registry) release(owner string, id uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.listeners[owner]
	if !ok || l.id != id {
		return
	}
	delete(r.listeners, owner)
	r.removeOrder(owner)
}

func (r *Registry) removeOrder(owner string) {
	for i, o := range r.order {
		if o == owner {
			r.order = append(r.order[:i], r.order[i+1:]...)
			return
		}
	}
}

// Bound reports whether owner currently has a listener.
func (r *Registry) Bound(owner string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.listeners[owner]
	return ok
}

// Len returns the number of bound owners.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.listeners)
}

const lockMods = tea.ModCapsLock | tea.ModNumLock | tea.ModScrollLock

// Dispatch offers msg to listeners, newest first. The first handler that
// accepts the key wins. Keys with modifiers are never matched, so ctrl
// and alt combos always reach the screen. Lock state is not a modifier.
func (r *Registry) Dispatch(msg tea.KeyPressMsg) (tea.Cmd, bool) {
	if msg.Mod&^lockMods != 0 {
		return nil, false
	}

	r.mu.Lock()
	candidates := make([]listener, 0, len(r.order))
	for i := len(r.order) - 1; i >= 0; i-- {
		candidates = append(candidates, r.listeners[r.order[i]])
	}
	r.mu.Unlock()

	// Handlers run unlocked; they may bind or release.
	for _, l := range candidates {
		for _, b := range l.bindings {
			if !key.Matches(msg, b.Key) {
				continue
			}
			if cmd, ok := l.handler(b.Action); ok {
				return cmd, true
			}
		}
	}
	return nil, false
}

func firstOr(s []string, def string) string {
	if len(s) == 0 {
		return def
	}
	return s[0]
}
