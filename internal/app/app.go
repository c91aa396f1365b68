// Package app is the root Bubble Tea model that hosts the screen router.
package app

import (
	"fmt"
	"os"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/pitchdeck/internal/assistant"
	"github.com/abhisek/pitchdeck/internal/config"
	"github.com/abhisek/pitchdeck/internal/deck"
	"github.com/abhisek/pitchdeck/internal/keys"
	"github.com/abhisek/pitchdeck/internal/logging"
	"github.com/abhisek/pitchdeck/internal/router"
	"github.com/abhisek/pitchdeck/internal/screen"
	"github.com/abhisek/pitchdeck/internal/screens/presenter"
	"github.com/abhisek/pitchdeck/internal/transition"
	"github.com/abhisek/pitchdeck/internal/ui/layout"

	"go.uber.org/zap"
)

// Options holds the dependencies of the presenter app.
type Options struct {
	Deck   *deck.Deck
	Config config.Config
	// Asker answers assistant queries. Nil means no provider is configured.
	Asker assistant.Asker
	// Fullscreen starts the deck fullscreen when the terminal allows it.
	Fullscreen bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router    *router.Router
	registry  *keys.Registry
	display   *terminalDisplay
	deckTitle string
	width     int
	height    int
}

// newAppModel creates a new AppModel with the deck screen.
func newAppModel(opts Options, display *terminalDisplay) (AppModel, error) {
	if opts.Deck == nil {
		opts.Deck = deck.Default()
	}
	registry := keys.NewRegistry()

	tc := opts.Config.Transition
	deckScreen, err := presenter.New(presenter.Options{
		Deck:     opts.Deck,
		Registry: registry,
		Bindings: Bindings(opts.Config.Keys),
		Display:  display,
		Asker:    opts.Asker,
		Transition: transition.Params{
			FPS:       tc.FPS,
			Frequency: tc.Frequency,
			Damping:   tc.Damping,
			Parallax:  tc.Parallax,
		},
		Animate: !tc.Disabled,
	})
	if err != nil {
		return AppModel{}, err
	}

	if opts.Fullscreen {
		if err := display.EnterFullscreen(); err != nil {
			logging.Warn("starting windowed", zap.Error(err))
		}
	}

	return AppModel{
		router:    router.New(deckScreen),
		registry:  registry,
		display:   display,
		deckTitle: opts.Deck.Title,
	}, nil
}

// Bindings builds the navigation bindings from the configured key names.
func Bindings(kc config.KeysConfig) []keys.Binding {
	var out []keys.Binding
	if len(kc.Advance) > 0 {
		out = append(out, keys.NewBinding(keys.Advance, "next", kc.Advance...))
	}
	if len(kc.Retreat) > 0 {
		out = append(out, keys.NewBinding(keys.Retreat, "previous", kc.Retreat...))
	}
	return out
}

func (m AppModel) Init() tea.Cmd {
	actual := m.display.IsFullscreen()
	return tea.Batch(
		m.router.Active().Init(),
		func() tea.Msg { return presenter.FullscreenChangedMsg{Actual: actual} },
	)
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, m.router.Broadcast(msg)

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			m.router.UnmountAll()
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
		}
		if cmd, ok := m.registry.Dispatch(msg); ok {
			return m, cmd
		}

	// Results of background work go to every screen so the deck still
	// receives them while the overview is on top.
	case assistant.AnswerMsg, spinner.TickMsg, transition.FrameMsg, presenter.FullscreenChangedMsg:
		return m, m.router.Broadcast(msg)
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = m.display.IsFullscreen()
	return v
}

// render draws the active screen inside the header and footer chrome.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	if h, ok := active.(screen.ChromeHider); ok && h.HideChrome() {
		return m.router.View(m.width, m.height)
	}

	status := ""
	if sp, ok := active.(screen.StatusProvider); ok {
		status = sp.Status()
	}
	header := layout.RenderHeader(m.deckTitle, active.Title(), status, m.width)

	hints := []layout.KeyHint{{Key: "Esc", Description: "Back"}, {Key: "Ctrl+C", Description: "Quit"}}
	if kp, ok := active.(screen.KeyHintProvider); ok {
		hints = kp.KeyHints()
	}
	footer := layout.RenderFooter(hints, m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	model, err := newAppModel(opts, newTerminalDisplay(os.Stdout))
	if err != nil {
		return err
	}

	p := tea.NewProgram(model)
	final, err := p.Run()
	if fm, ok := final.(AppModel); ok {
		fm.router.UnmountAll()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
