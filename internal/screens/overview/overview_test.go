package overview

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/pitchdeck/internal/keys"
)

var titles = []string{"Intro", "Market", "Costs", "Team"}

func bindings() []keys.Binding {
	return []keys.Binding{
		keys.NewBinding(keys.Advance, "next", "right", "space"),
		keys.NewBinding(keys.Retreat, "prev", "left"),
	}
}

func TestNew_PreselectsCurrent(t *testing.T) {
	o := New(titles, 2, nil, nil)
	assert.Equal(t, 2, o.Selected())

	o = New(titles, 99, nil, nil)
	assert.Equal(t, 0, o.Selected(), "out of range falls back to the first slide")
}

func TestView_ListsTitles(t *testing.T) {
	o := New(titles, 1, nil, nil)
	view := ansi.Strip(o.View(80, 20))
	assert.Contains(t, view, " 1  Intro")
	assert.Contains(t, view, "▸  2  Market")
	assert.Contains(t, view, " 4  Team")
}

func TestNavigationKeysShadowDeck(t *testing.T) {
	reg := keys.NewRegistry()
	var deckMoves int
	reg.Bind("presenter", bindings(), func(keys.Action) (tea.Cmd, bool) {
		deckMoves++
		return nil, true
	})

	o := New(titles, 0, reg, bindings())
	o.Init()

	_, ok := reg.Dispatch(tea.KeyPressMsg{Code: tea.KeyRight})
	require.True(t, ok)
	assert.Equal(t, 1, o.Selected())
	assert.Zero(t, deckMoves)

	reg.Dispatch(tea.KeyPressMsg{Code: tea.KeyLeft})
	assert.Equal(t, 0, o.Selected())

	o.Unmount()
	o.Unmount()
	assert.False(t, reg.Bound(Owner))

	reg.Dispatch(tea.KeyPressMsg{Code: tea.KeyRight})
	assert.Equal(t, 1, deckMoves, "deck gets its keys back after unmount")
}

func TestEnterSelects(t *testing.T) {
	o := New(titles, 0, nil, nil)
	s, _ := o.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, 1, o.Selected())
}
