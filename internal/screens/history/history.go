// Package history lists the quizzes taken in this session, newest first.
package history

import (
	"fmt"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/adaptiq/internal/bank"
	"github.com/abhisek/adaptiq/internal/screen"
	"github.com/abhisek/adaptiq/internal/session"
	"github.com/abhisek/adaptiq/internal/tutor"
	"github.com/abhisek/adaptiq/internal/ui/layout"
	"github.com/abhisek/adaptiq/internal/ui/theme"
)

// Screen shows one line per quiz. Enter expands a quiz into its questions
// and the answers given.
type Screen struct {
	bank     *bank.Bank
	records  []session.QuizRecord
	selected int
	expanded map[int]bool
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

func New(t *tutor.Tutor, s *session.Session) *Screen {
	records := s.Records()
	slices.Reverse(records)
	return &Screen{
		bank:     t.Bank(),
		records:  records,
		expanded: make(map[int]bool),
	}
}

func (s *Screen) Init() tea.Cmd { return nil }

func (s *Screen) Title() string { return "History" }

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < len(s.records)-1 {
			s.selected++
		}
	case "enter":
		s.expanded[s.selected] = !s.expanded[s.selected]
	}
	return s, nil
}

func (s *Screen) View(width, height int) string {
	if len(s.records) == 0 {
		return layout.Center(theme.Hint.Render("\n\nNo quizzes yet. Start practicing!"), width)
	}

	var lines []string
	selectedLine := 0
	for i, rec := range s.records {
		sum := rec.Summary
		prefix := "  "
		style := theme.Body
		if i == s.selected {
			prefix = "▸ "
			style = theme.Selected
			selectedLine = len(lines)
		}
		line := fmt.Sprintf("%s%s  %-18s %-6s %2d/%-2d ",
			prefix, sum.Timestamp.Local().Format("Jan 02 15:04"), sum.Topic, sum.Difficulty.Title(),
			sum.Correct, sum.Total)
		acc := lipgloss.NewStyle().Foreground(theme.AccuracyColor(sum.Accuracy)).
			Render(fmt.Sprintf("%3.0f%%", sum.Accuracy*100))
		lines = append(lines, style.Render(line)+acc)

		if s.expanded[i] {
			lines = append(lines, s.details(rec)...)
		}
	}

	// Keep the cursor in view.
	start := 0
	if selectedLine >= height-1 {
		start = selectedLine - height + 2
	}
	lines = lines[start:]

	block := lipgloss.NewStyle().Width(min(width-4, 76)).Render("\n" + strings.Join(lines, "\n"))
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, block)
}

func (s *Screen) details(rec session.QuizRecord) []string {
	questions := s.bank.ByIDs(rec.QuestionIDs)
	byID := make(map[int]bank.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	var out []string
	for i, id := range rec.QuestionIDs {
		var answer string
		if i < len(rec.Answers) {
			answer = rec.Answers[i]
		}
		q, ok := byID[id]
		if !ok {
			out = append(out, theme.Dim.Render(fmt.Sprintf("      #%d is no longer in the bank", id)))
			continue
		}
		mark := theme.Correct.Render("✓")
		if !session.IsCorrect(answer, q.Answer) {
			mark = theme.Incorrect.Render("✗")
		}
		if answer == "" {
			answer = "-"
		}
		out = append(out, fmt.Sprintf("    %s %s %s", mark, truncate(q.Text, 56),
			theme.Dim.Render(fmt.Sprintf("[%s/%s]", strings.ToUpper(answer), strings.ToUpper(q.Answer)))))
	}
	return out
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
