// Package presenter is the deck screen: one slide at a time with a
// control bar, speaker notes and the assistant panel floating over it.
package presenter

import (
	"fmt"
	"strconv"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/pitchdeck/internal/assistant"
	"github.com/abhisek/pitchdeck/internal/deck"
	"github.com/abhisek/pitchdeck/internal/keys"
	"github.com/abhisek/pitchdeck/internal/nav"
	"github.com/abhisek/pitchdeck/internal/router"
	"github.com/abhisek/pitchdeck/internal/screen"
	"github.com/abhisek/pitchdeck/internal/screens/overview"
	"github.com/abhisek/pitchdeck/internal/transition"
	"github.com/abhisek/pitchdeck/internal/ui/layout"
)

// Owner is the key registry owner name of the presenter.
const Owner = "presenter"

// FullscreenChangedMsg reports the display's actual fullscreen mode after
// a toggle request.
type FullscreenChangedMsg struct {
	Actual bool
}

// Options configures a PresenterScreen.
type Options struct {
	Deck     *deck.Deck
	Registry *keys.Registry
	// Bindings for the navigation actions. Empty uses DefaultBindings.
	Bindings []keys.Binding
	Display  nav.Display
	// Asker answers assistant queries. Nil answers every query with the
	// unavailable fallback.
	Asker      assistant.Asker
	Transition transition.Params
	// Animate enables slide transitions.
	Animate bool
}

// DefaultBindings are the stock navigation keys.
func DefaultBindings() []keys.Binding {
	return []keys.Binding{
		keys.NewBinding(keys.Advance, "next", "right", "space", "l", "pgdown"),
		keys.NewBinding(keys.Retreat, "previous", "left", "h", "pgup"),
	}
}

// PresenterScreen shows the deck.
type PresenterScreen struct {
	deck     *deck.Deck
	nav      *nav.Controller
	display  nav.Display
	registry *keys.Registry
	bindings []keys.Binding
	release  func()

	params  transition.Params
	animate bool
	trans   *transition.Transition

	panel     assistant.Panel
	showNotes bool
	width     int
}

var (
	_ screen.Screen          = (*PresenterScreen)(nil)
	_ screen.Unmounter       = (*PresenterScreen)(nil)
	_ screen.KeyHintProvider = (*PresenterScreen)(nil)
	_ screen.StatusProvider  = (*PresenterScreen)(nil)
	_ screen.ChromeHider     = (*PresenterScreen)(nil)
)

// New creates the deck screen. Keys are bound in Init and released in
// Unmount.
func New(opts Options) (*PresenterScreen, error) {
	if opts.Deck == nil {
		return nil, fmt.Errorf("presenter: no deck")
	}
	ctrl, err := nav.New(opts.Deck.Len())
	if err != nil {
		return nil, fmt.Errorf("presenter: %w", err)
	}
	if opts.Registry == nil {
		opts.Registry = keys.NewRegistry()
	}
	if len(opts.Bindings) == 0 {
		opts.Bindings = DefaultBindings()
	}
	if opts.Display == nil {
		opts.Display = windowed{}
	}
	asker := opts.Asker
	if asker == nil {
		asker = assistant.NewService(nil, assistant.Options{})
	}

	life := assistant.NewLifecycle(asker)
	return &PresenterScreen{
		deck:     opts.Deck,
		nav:      ctrl,
		display:  opts.Display,
		registry: opts.Registry,
		bindings: opts.Bindings,
		params:   opts.Transition,
		animate:  opts.Animate,
		panel:    assistant.NewPanel(life, opts.Deck.AssistantHint()),
	}, nil
}

func (s *PresenterScreen) Init() tea.Cmd {
	s.release = s.registry.Bind(Owner, s.bindings, s.onAction)
	return nil
}

// Unmount releases the key bindings and cancels any pending query.
func (s *PresenterScreen) Unmount() {
	if s.release != nil {
		s.release()
	}
	s.panel.Lifecycle().Close()
}

// onAction handles the registry's navigation actions. While the panel is
// open the keys are declined so they reach the query input.
func (s *PresenterScreen) onAction(a keys.Action) (tea.Cmd, bool) {
	if s.panel.Open() {
		return nil, false
	}
	from := s.nav.Index()
	switch a {
	case keys.Advance:
		return s.moved(s.nav.Next(), from), true
	case keys.Retreat:
		return s.moved(s.nav.Previous(), from), true
	}
	return nil, false
}

// moved starts the transition for a navigation that changed the slide.
func (s *PresenterScreen) moved(ok bool, from int) tea.Cmd {
	if !ok {
		return nil
	}
	if !s.animate {
		s.trans = nil
		return nil
	}
	st := s.nav.State()
	s.trans = transition.Plan(from, st.Index, st.Direction, s.width, s.params)
	if s.trans == nil {
		return nil
	}
	return s.trans.Tick()
}

func (s *PresenterScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.panel.SetWidth(msg.Width)
		return s, nil

	case transition.FrameMsg:
		if s.trans == nil || msg.ID != s.trans.ID() {
			return s, nil
		}
		s.trans.Step()
		if s.trans.Done() {
			s.trans = nil
			return s, nil
		}
		return s, s.trans.Tick()

	case overview.SelectedMsg:
		from := s.nav.Index()
		return s, s.moved(s.nav.JumpTo(msg.Index), from)

	case FullscreenChangedMsg:
		s.nav.SyncFullscreen(msg.Actual)
		return s, nil

	case assistant.AnswerMsg, spinner.TickMsg:
		var cmd tea.Cmd
		s.panel, cmd = s.panel.Update(msg)
		return s, cmd

	case tea.KeyPressMsg:
		if s.panel.Open() {
			var cmd tea.Cmd
			s.panel, cmd = s.panel.Update(msg)
			return s, cmd
		}
		return s, s.handleKey(msg)
	}

	var cmd tea.Cmd
	s.panel, cmd = s.panel.Update(msg)
	return s, cmd
}

func (s *PresenterScreen) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	from := s.nav.Index()
	switch k := msg.String(); k {
	case "a":
		var cmd tea.Cmd
		s.panel, cmd = s.panel.Toggle()
		return cmd
	case "f":
		s.nav.ToggleFullscreen(s.display)
		actual := s.display.IsFullscreen()
		return func() tea.Msg { return FullscreenChangedMsg{Actual: actual} }
	case "n":
		s.showNotes = !s.showNotes
	case "o":
		ov := overview.New(s.deck.Titles(), s.nav.Index(), s.registry, s.bindings)
		return func() tea.Msg { return router.PushScreenMsg{Screen: ov} }
	case "home", "g":
		return s.moved(s.nav.JumpTo(0), from)
	case "end", "G":
		return s.moved(s.nav.JumpTo(s.nav.Count()-1), from)
	case "q":
		return tea.Quit
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		n, _ := strconv.Atoi(k)
		return s.moved(s.nav.JumpTo(n-1), from)
	}
	return nil
}

// State exposes the navigation state.
func (s *PresenterScreen) State() nav.State {
	return s.nav.State()
}

// Panel exposes the assistant panel.
func (s *PresenterScreen) Panel() assistant.Panel {
	return s.panel
}

// NotesVisible reports whether speaker notes are shown.
func (s *PresenterScreen) NotesVisible() bool {
	return s.showNotes
}

// Transitioning reports whether a slide change is animating.
func (s *PresenterScreen) Transitioning() bool {
	return s.trans != nil
}

func (s *PresenterScreen) Title() string {
	return s.deck.Slide(s.nav.Index()).Title
}

// Status is the slide counter shown in the header.
func (s *PresenterScreen) Status() string {
	return fmt.Sprintf("Slide %d / %d", s.nav.Index()+1, s.nav.Count())
}

// HideChrome drops the header and footer in fullscreen.
func (s *PresenterScreen) HideChrome() bool {
	return s.nav.State().Fullscreen
}

func (s *PresenterScreen) KeyHints() []layout.KeyHint {
	if s.panel.Open() {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Ask"},
			{Key: "Esc", Description: "Close"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "←→", Description: "Navigate"},
		{Key: "o", Description: "Overview"},
		{Key: "a", Description: "Ask"},
		{Key: "n", Description: "Notes"},
		{Key: "f", Description: "Fullscreen"},
		{Key: "q", Description: "Quit"},
	}
}

// windowed is the display used when none is supplied: it never goes
// fullscreen.
type windowed struct{}

func (windowed) EnterFullscreen() error { return nav.ErrFullscreenUnavailable }
func (windowed) ExitFullscreen() error  { return nil }
func (windowed) IsFullscreen() bool     { return false }
