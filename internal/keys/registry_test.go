package keys

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func navBindings() []Binding {
	return []Binding{
		NewBinding(Advance, "next", "right", "space", "l"),
		NewBinding(Retreat, "prev", "left", "h"),
	}
}

func recorder(got *[]Action) Handler {
	return func(a Action) (tea.Cmd, bool) {
		*got = append(*got, a)
		return nil, true
	}
}

func TestDispatch_MatchesBoundKeys(t *testing.T) {
	r := NewRegistry()
	var got []Action
	r.Bind("deck", navBindings(), recorder(&got))

	for _, msg := range []tea.KeyPressMsg{
		specialKey(tea.KeyRight),
		specialKey(tea.KeySpace),
		keyPress('l'),
		specialKey(tea.KeyLeft),
		keyPress('h'),
	} {
		_, ok := r.Dispatch(msg)
		assert.True(t, ok, "key %q should match", msg.String())
	}

	assert.Equal(t, []Action{Advance, Advance, Advance, Retreat, Retreat}, got)
}

func TestDispatch_UnboundKeyFallsThrough(t *testing.T) {
	r := NewRegistry()
	var got []Action
	r.Bind("deck", navBindings(), recorder(&got))

	_, ok := r.Dispatch(keyPress('x'))
	assert.False(t, ok)
	assert.Empty(t, got)
}

func TestDispatch_ModifiersIgnored(t *testing.T) {
	r := NewRegistry()
	var got []Action
	r.Bind("deck", navBindings(), recorder(&got))

	_, ok := r.Dispatch(tea.KeyPressMsg{Code: tea.KeyRight, Mod: tea.ModShift})
	assert.False(t, ok)
	_, ok = r.Dispatch(tea.KeyPressMsg{Code: 'l', Mod: tea.ModCtrl})
	assert.False(t, ok)
	assert.Empty(t, got)
}

func TestDispatch_LockKeysStillMatch(t *testing.T) {
	r := NewRegistry()
	var got []Action
	r.Bind("deck", navBindings(), recorder(&got))

	for _, msg := range []tea.KeyPressMsg{
		{Code: tea.KeyRight, Mod: tea.ModNumLock},
		{Code: tea.KeyLeft, Mod: tea.ModCapsLock},
		{Code: tea.KeySpace, Text: " ", Mod: tea.ModNumLock},
		{Code: 'l', Text: "l", Mod: tea.ModScrollLock | tea.ModNumLock},
	} {
		_, ok := r.Dispatch(msg)
		assert.True(t, ok, "key %q with mod %d should match", msg.String(), msg.Mod)
	}
	assert.Equal(t, []Action{Advance, Retreat, Advance, Advance}, got)

	_, ok := r.Dispatch(tea.KeyPressMsg{Code: tea.KeyRight, Mod: tea.ModNumLock | tea.ModCtrl})
	assert.False(t, ok)
	assert.Len(t, got, 4)
}

func TestBind_SameOwnerReplaces(t *testing.T) {
	r := NewRegistry()
	var first, second []Action
	r.Bind("deck", navBindings(), recorder(&first))
	r.Bind("deck", navBindings(), recorder(&second))

	require.Equal(t, 1, r.Len())
	r.Dispatch(specialKey(tea.KeyRight))

	assert.Empty(t, first, "replaced listener must not fire")
	assert.Equal(t, []Action{Advance}, second)
}

func TestRelease_IdempotentAndStaleSafe(t *testing.T) {
	r := NewRegistry()
	var got []Action
	releaseOld := r.Bind("deck", navBindings(), recorder(&got))
	releaseNew := r.Bind("deck", navBindings(), recorder(&got))

	releaseOld()
	assert.True(t, r.Bound("deck"), "stale release leaves the rebind in place")

	releaseNew()
	releaseNew()
	assert.False(t, r.Bound("deck"))

	_, ok := r.Dispatch(specialKey(tea.KeyRight))
	assert.False(t, ok)
	assert.Empty(t, got)
}

func TestDispatch_DeclinedFallsToNextOwner(t *testing.T) {
	r := NewRegistry()
	var got []Action
	r.Bind("deck", navBindings(), recorder(&got))
	r.Bind("busy", navBindings(), func(Action) (tea.Cmd, bool) { return nil, false })

	_, ok := r.Dispatch(specialKey(tea.KeyLeft))
	assert.True(t, ok)
	assert.Equal(t, []Action{Retreat}, got)
}

func TestDispatch_HandlerMayRelease(t *testing.T) {
	r := NewRegistry()
	var release func()
	release = r.Bind("once", navBindings(), func(Action) (tea.Cmd, bool) {
		release()
		return nil, true
	})

	_, ok := r.Dispatch(specialKey(tea.KeyRight))
	assert.True(t, ok)
	assert.Equal(t, 0, r.Len())
}

func TestDispatch_NewestOwnerFirst(t *testing.T) {
	r := NewRegistry()
	var deck, overlay []Action
	r.Bind("deck", navBindings(), recorder(&deck))
	release := r.Bind("overlay", navBindings(), recorder(&overlay))

	r.Dispatch(specialKey(tea.KeyRight))
	assert.Empty(t, deck, "overlay shadows the deck")
	assert.Equal(t, []Action{Advance}, overlay)

	release()
	r.Dispatch(specialKey(tea.KeyRight))
	assert.Equal(t, []Action{Advance}, deck)
}

func TestBind_RebindMovesToTop(t *testing.T) {
	r := NewRegistry()
	var a, b []Action
	r.Bind("a", navBindings(), recorder(&a))
	r.Bind("b", navBindings(), recorder(&b))
	r.Bind("a", navBindings(), recorder(&a))

	r.Dispatch(specialKey(tea.KeyLeft))
	assert.Equal(t, []Action{Retreat}, a)
	assert.Empty(t, b)
	assert.Equal(t, 2, r.Len())
}
