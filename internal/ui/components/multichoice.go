package components

import (
	"fmt"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/adaptiq/internal/bank"
	"github.com/abhisek/adaptiq/internal/ui/theme"
)

// MultiChoice shows one question with lettered options. The cursor moves
// with the arrow keys, a letter key jumps straight to that option and
// enter confirms. It does not reveal the correct answer.
type MultiChoice struct {
	Question  string
	Options   [4]string
	Selected  int
	Confirmed bool
}

func NewMultiChoice(q bank.Question) MultiChoice {
	return MultiChoice{Question: q.Text, Options: q.Options}
}

// Preselect moves the cursor to a previously given answer letter.
func (m MultiChoice) Preselect(letter string) MultiChoice {
	if i := slices.Index(bank.OptionLetters, letter); i >= 0 {
		m.Selected = i
	}
	return m
}

func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Confirmed {
		return m, nil
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key := kmsg.String(); key {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	case "a", "b", "c", "d":
		m.Selected = slices.Index(bank.OptionLetters, key)
	case "enter":
		m.Confirmed = true
	}
	return m, nil
}

// Answer returns the letter under the cursor.
func (m MultiChoice) Answer() string {
	return bank.OptionLetters[m.Selected]
}

func (m MultiChoice) View(width int) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Width(width).Render(m.Question))
	b.WriteString("\n\n")
	for i, opt := range m.Options {
		line := fmt.Sprintf("%s)  %s", strings.ToUpper(bank.OptionLetters[i]), opt)
		if i == m.Selected {
			b.WriteString(theme.Selected.Render("▸ " + line))
		} else {
			b.WriteString(theme.Body.Render("  " + line))
		}
		b.WriteString("\n")
	}
	return b.String()
}
