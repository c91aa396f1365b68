package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/pitchdeck/internal/ui/theme"
)

// MenuItem is one selectable row.
type MenuItem struct {
	Label    string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical list with one highlighted row. Disabled rows are
// drawn but never highlighted.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu highlights the first enabled item.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items, Selected: 0}
	if len(items) > 0 && items[0].Disabled {
		m.Move(1)
	}
	return m
}

// Move steps the highlight by delta rows, skipping disabled ones. The
// highlight stays put when no enabled row lies in that direction.
func (m *Menu) Move(delta int) {
	if delta == 0 {
		return
	}
	step := 1
	if delta < 0 {
		step = -1
	}
	at := m.Selected
	for i := m.Selected + step; i >= 0 && i < len(m.Items) && delta != 0; i += step {
		if !m.Items[i].Disabled {
			at = i
			delta -= step
		}
	}
	m.Selected = at
}

// Update handles up/down (or k/j), home/end (or g/G) and enter.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok || len(m.Items) == 0 {
		return m, nil
	}

	switch key.String() {
	case "up", "k":
		m.Move(-1)
	case "down", "j":
		m.Move(1)
	case "home", "g":
		m.Move(-len(m.Items))
	case "end", "G":
		m.Move(len(m.Items))
	case "enter":
		if it := m.Items[m.Selected]; it.Action != nil && !it.Disabled {
			return m, it.Action()
		}
	}
	return m, nil
}

// View draws every row.
func (m Menu) View() string { return m.Window(len(m.Items)) }

// Window draws at most rows rows, scrolled so the highlight is visible.
func (m Menu) Window(rows int) string {
	first, last := 0, len(m.Items)
	if rows > 0 && rows < last {
		first = max(0, min(m.Selected-rows/2, last-rows))
		last = first + rows
	}

	var b strings.Builder
	for i := first; i < last; i++ {
		it := m.Items[i]
		switch {
		case i == m.Selected:
			b.WriteString(theme.Selected.Render("  ▸ " + it.Label))
		case it.Disabled:
			b.WriteString(theme.Disabled.Render("    " + it.Label))
		default:
			b.WriteString(theme.Unselected.Render("    " + it.Label))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
