package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/adaptiq/internal/ui/theme"
)

// MenuItem is one entry of a Menu. Disabled items are skipped by the cursor.
type MenuItem struct {
	Label    string
	Hint     string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical list navigated with the arrow keys.
type Menu struct {
	Items    []MenuItem
	Selected int
}

func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items}
	m.Selected = m.next(-1, 1)
	if m.Selected < 0 {
		m.Selected = 0
	}
	return m
}

// next returns the first enabled index after from in direction dir, or -1.
func (m Menu) next(from, dir int) int {
	for i := from + dir; i >= 0 && i < len(m.Items); i += dir {
		if !m.Items[i].Disabled {
			return i
		}
	}
	return -1
}

func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch kmsg.String() {
	case "up", "k":
		if i := m.next(m.Selected, -1); i >= 0 {
			m.Selected = i
		}
	case "down", "j":
		if i := m.next(m.Selected, 1); i >= 0 {
			m.Selected = i
		}
	case "enter":
		if m.Selected < len(m.Items) {
			item := m.Items[m.Selected]
			if item.Action != nil && !item.Disabled {
				return m, item.Action()
			}
		}
	}
	return m, nil
}

func (m Menu) View() string {
	var b strings.Builder
	for i, item := range m.Items {
		switch {
		case item.Disabled:
			b.WriteString(theme.Dim.Render("  " + item.Label))
		case i == m.Selected:
			b.WriteString(theme.Selected.Render("▸ " + item.Label))
		default:
			b.WriteString(theme.Body.Render("  " + item.Label))
		}
		if item.Hint != "" {
			b.WriteString("  " + theme.Hint.Render(item.Hint))
		}
		b.WriteString("\n")
	}
	return b.String()
}
