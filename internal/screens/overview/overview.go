// Package overview is the slide index: every slide title in a list, with
// Enter jumping the deck to the chosen slide.
package overview

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/pitchdeck/internal/keys"
	"github.com/abhisek/pitchdeck/internal/router"
	"github.com/abhisek/pitchdeck/internal/screen"
	"github.com/abhisek/pitchdeck/internal/ui/components"
	"github.com/abhisek/pitchdeck/internal/ui/layout"
	"github.com/abhisek/pitchdeck/internal/ui/theme"
)

// Owner is the key registry owner name of the overview.
const Owner = "overview"

// SelectedMsg reports the slide chosen in the overview. It is delivered
// after the overview has been popped.
type SelectedMsg struct {
	Index int
}

// OverviewScreen lists slide titles.
type OverviewScreen struct {
	menu     components.Menu
	registry *keys.Registry
	bindings []keys.Binding
	release  func()
}

var (
	_ screen.Screen          = (*OverviewScreen)(nil)
	_ screen.Unmounter       = (*OverviewScreen)(nil)
	_ screen.KeyHintProvider = (*OverviewScreen)(nil)
)

// New creates an overview of titles with current preselected. While
// mounted it shadows the deck's navigation keys in registry, stepping the
// selection instead.
func New(titles []string, current int, registry *keys.Registry, bindings []keys.Binding) *OverviewScreen {
	items := make([]components.MenuItem, len(titles))
	for i, t := range titles {
		index := i
		items[i] = components.MenuItem{
			Label: fmt.Sprintf("%2d  %s", i+1, t),
			Action: func() tea.Cmd {
				return tea.Sequence(
					func() tea.Msg { return router.PopScreenMsg{} },
					func() tea.Msg { return SelectedMsg{Index: index} },
				)
			},
		}
	}

	menu := components.NewMenu(items)
	if current >= 0 && current < len(items) {
		menu.Selected = current
	}
	return &OverviewScreen{menu: menu, registry: registry, bindings: bindings}
}

func (o *OverviewScreen) Init() tea.Cmd {
	if o.registry != nil {
		o.release = o.registry.Bind(Owner, o.bindings, o.onAction)
	}
	return nil
}

func (o *OverviewScreen) onAction(a keys.Action) (tea.Cmd, bool) {
	switch a {
	case keys.Advance:
		o.menu.Move(1)
	case keys.Retreat:
		o.menu.Move(-1)
	default:
		return nil, false
	}
	return nil, true
}

// Unmount releases the key bindings.
func (o *OverviewScreen) Unmount() {
	if o.release != nil {
		o.release()
	}
}

func (o *OverviewScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	o.menu, cmd = o.menu.Update(msg)
	return o, cmd
}

// Selected returns the highlighted slide index.
func (o *OverviewScreen) Selected() int {
	return o.menu.Selected
}

func (o *OverviewScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Kicker.Render("  SLIDES"))
	b.WriteString("\n\n")
	// Three rows above the list.
	b.WriteString(o.menu.Window(height - 3))
	return b.String()
}

func (o *OverviewScreen) Title() string {
	return "Overview"
}

func (o *OverviewScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Select"},
		{Key: "Enter", Description: "Go to slide"},
		{Key: "Esc", Description: "Back"},
	}
}
