// Package custom lets the learner pick a topic, difficulty and question
// count instead of taking the recommendation.
package custom

import (
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/adaptiq/internal/bank"
	"github.com/abhisek/adaptiq/internal/router"
	"github.com/abhisek/adaptiq/internal/screen"
	"github.com/abhisek/adaptiq/internal/screens/quiz"
	"github.com/abhisek/adaptiq/internal/session"
	"github.com/abhisek/adaptiq/internal/tutor"
	"github.com/abhisek/adaptiq/internal/ui/components"
	"github.com/abhisek/adaptiq/internal/ui/layout"
	"github.com/abhisek/adaptiq/internal/ui/theme"
)

const defaultCount = 10

type field int

const (
	fieldTopic field = iota
	fieldDifficulty
	fieldCount
	fieldStart
	numFields
)

// Screen is the custom quiz form.
type Screen struct {
	tutor  *tutor.Tutor
	sess   *session.Session
	topics []string
	diffs  []bank.Difficulty

	topic  int
	diff   int
	focus  field
	count  components.NumberInput
	button components.Button
	errMsg string
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

func New(t *tutor.Tutor, s *session.Session) *Screen {
	sc := &Screen{
		tutor:  t,
		sess:   s,
		topics: t.Bank().Topics(),
		diffs:  t.Bank().Difficulties(),
		count:  components.NewNumberInput(fmt.Sprint(defaultCount), 3),
	}
	sc.button = components.NewButton("Start quiz", sc.start)
	return sc
}

func (s *Screen) Init() tea.Cmd { return nil }

func (s *Screen) Title() string { return "Custom Quiz" }

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓/Tab", Description: "Field"},
		{Key: "←→", Description: "Change"},
		{Key: "Enter", Description: "Start"},
		{Key: "Esc", Description: "Back"},
	}
}

// Selection returns the current form values, with the count defaulted.
func (s *Screen) Selection() (string, bank.Difficulty, int) {
	var topic string
	if len(s.topics) > 0 {
		topic = s.topics[s.topic]
	}
	return topic, s.diffs[s.diff], s.count.Int(defaultCount)
}

func (s *Screen) start() tea.Cmd {
	topic, d, n := s.Selection()
	q, err := s.tutor.StartQuiz(s.sess, topic, d, n)
	switch {
	case errors.Is(err, tutor.ErrNoQuestions):
		s.errMsg = fmt.Sprintf("No unseen %s questions left for %s.", strings.ToLower(d.Title()), topic)
		return nil
	case err != nil:
		s.errMsg = err.Error()
		return nil
	}
	return router.Replace(quiz.New(s.tutor, s.sess, q, nil))
}

func (s *Screen) setFocus(f field) tea.Cmd {
	s.focus = (f + numFields) % numFields
	s.button.Focused = s.focus == fieldStart
	if s.focus == fieldCount {
		var cmd tea.Cmd
		s.count, cmd = s.count.Focus()
		return cmd
	}
	s.count = s.count.Blur()
	return nil
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		s.count, cmd = s.count.Update(msg)
		return s, cmd
	}

	switch kmsg.String() {
	case "tab", "down":
		return s, s.setFocus(s.focus + 1)
	case "shift+tab", "up":
		return s, s.setFocus(s.focus - 1)
	case "enter":
		s.errMsg = ""
		if s.focus != fieldStart {
			return s, s.start()
		}
		var cmd tea.Cmd
		s.button, cmd = s.button.Update(msg)
		return s, cmd
	case "left", "right":
		step := 1
		if kmsg.String() == "left" {
			step = -1
		}
		switch s.focus {
		case fieldTopic:
			if n := len(s.topics); n > 0 {
				s.topic = (s.topic + step + n) % n
			}
			return s, nil
		case fieldDifficulty:
			s.diff = (s.diff + step + len(s.diffs)) % len(s.diffs)
			return s, nil
		}
	}

	if s.focus == fieldCount {
		var cmd tea.Cmd
		s.count, cmd = s.count.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *Screen) View(width, height int) string {
	if len(s.topics) == 0 {
		return layout.Center(theme.Dim.Render("\nThe question bank is empty."), width)
	}
	topic, d, _ := s.Selection()

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(s.row(fieldTopic, "Topic", "‹ "+topic+" ›"))
	b.WriteString(s.row(fieldDifficulty, "Difficulty",
		"‹ "+lipgloss.NewStyle().Foreground(theme.DifficultyColor(d)).Render(d.Title())+" ›"))
	b.WriteString(s.row(fieldCount, "Questions", s.count.View()))

	avail := s.tutor.Bank().AvailableCount(topic, d, s.sess.Seen())
	total := s.tutor.Bank().TotalCount(topic, d)
	b.WriteString("\n")
	b.WriteString(theme.Dim.Render(fmt.Sprintf("%d of %d questions unseen · max %d per quiz",
		avail, total, s.tutor.Policy().MaxQuestions)))
	b.WriteString("\n\n")
	b.WriteString(s.button.View())

	if s.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.Incorrect.Render(s.errMsg))
	}

	card := theme.Card.Width(min(width-4, 60)).Render(b.String())
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, card)
}

func (s *Screen) row(f field, label, value string) string {
	l := lipgloss.NewStyle().Width(12).Foreground(theme.TextDim).Render(label)
	if s.focus == f {
		l = theme.Selected.Width(12).Render(label)
	}
	return l + value + "\n"
}
