package app

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/pitchdeck/internal/config"
	"github.com/abhisek/pitchdeck/internal/screens/overview"
	"github.com/abhisek/pitchdeck/internal/screens/presenter"
)

func newTestModel(t *testing.T, tty bool) AppModel {
	t.Helper()
	cfg := config.Default()
	cfg.Transition.Disabled = true
	m, err := newAppModel(Options{Config: cfg}, &terminalDisplay{tty: tty})
	require.NoError(t, err)
	m.Init()
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return next.(AppModel)
}

func press(m AppModel, msg tea.KeyPressMsg) (AppModel, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(AppModel), cmd
}

func deckScreen(t *testing.T, m AppModel) *presenter.PresenterScreen {
	t.Helper()
	ps, ok := m.router.Active().(*presenter.PresenterScreen)
	require.True(t, ok, "deck screen should be active")
	return ps
}

func TestBindings(t *testing.T) {
	b := Bindings(config.KeysConfig{Advance: []string{"j"}})
	require.Len(t, b, 1)
	assert.Equal(t, []string{"j"}, b[0].Key.Keys())
	assert.Empty(t, Bindings(config.KeysConfig{}))
}

func TestArrowKeysNavigate(t *testing.T) {
	m := newTestModel(t, true)

	m, _ = press(m, tea.KeyPressMsg{Code: tea.KeyRight})
	assert.Equal(t, 1, deckScreen(t, m).State().Index)

	m, _ = press(m, tea.KeyPressMsg{Code: tea.KeyLeft})
	assert.Equal(t, 0, deckScreen(t, m).State().Index)
}

func TestView_HeaderAndFooter(t *testing.T) {
	m := newTestModel(t, true)
	view := ansi.Strip(m.render())
	assert.Contains(t, view, "Zomato: Path to Profitability")
	assert.Contains(t, view, "Slide 1 / 10")
	assert.Contains(t, view, "Overview")
	assert.False(t, m.View().AltScreen)
}

func TestFullscreenHidesChrome(t *testing.T) {
	m := newTestModel(t, true)
	m, cmd := press(m, tea.KeyPressMsg{Code: 'f', Text: "f"})
	require.NotNil(t, cmd)
	next, _ := m.Update(cmd())
	m = next.(AppModel)

	assert.True(t, m.View().AltScreen)
	out := m.render()
	assert.NotContains(t, ansi.Strip(out), "Zomato: Path to Profitability", "header is hidden")
	assert.Len(t, strings.Split(out, "\n"), 30)
}

func TestFullscreenRefusedWithoutTTY(t *testing.T) {
	m := newTestModel(t, false)
	m, cmd := press(m, tea.KeyPressMsg{Code: 'f', Text: "f"})
	require.NotNil(t, cmd)

	next, _ := m.Update(cmd())
	m = next.(AppModel)
	assert.False(t, deckScreen(t, m).State().Fullscreen)
	assert.False(t, m.View().AltScreen)
}

func TestOverviewRoundTrip(t *testing.T) {
	m := newTestModel(t, true)

	m, cmd := press(m, tea.KeyPressMsg{Code: 'o', Text: "o"})
	require.NotNil(t, cmd)
	next, _ := m.Update(cmd())
	m = next.(AppModel)
	require.Equal(t, 2, m.router.Depth())
	_, ok := m.router.Active().(*overview.OverviewScreen)
	require.True(t, ok)

	// Navigation keys move the overview selection, not the deck.
	m, _ = press(m, tea.KeyPressMsg{Code: tea.KeyRight})
	ps := m.router.Active().(*overview.OverviewScreen)
	assert.Equal(t, 1, ps.Selected())

	m, cmd = press(m, tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	next, _ = m.Update(cmd())
	m = next.(AppModel)
	assert.Equal(t, 1, m.router.Depth())

	next, _ = m.Update(overview.SelectedMsg{Index: 4})
	m = next.(AppModel)
	assert.Equal(t, 4, deckScreen(t, m).State().Index)

	m, _ = press(m, tea.KeyPressMsg{Code: tea.KeyRight})
	assert.Equal(t, 5, deckScreen(t, m).State().Index, "deck keys are back after the overview closes")
}

func TestTooSmall(t *testing.T) {
	m := newTestModel(t, true)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	m = next.(AppModel)
	assert.Contains(t, ansi.Strip(m.render()), "Terminal too small")
}

func TestCtrlCUnmounts(t *testing.T) {
	m := newTestModel(t, true)
	ps := deckScreen(t, m)
	_, cmd := press(m, tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	require.NotNil(t, cmd)
	assert.True(t, ps.Panel().Lifecycle().Closed())
	assert.False(t, m.registry.Bound(presenter.Owner))
}
