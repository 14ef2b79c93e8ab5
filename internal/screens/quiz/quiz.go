// Package quiz has the question-by-question quiz screen and the results
// screen shown after it.
package quiz

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/adaptiq/internal/recommend"
	"github.com/abhisek/adaptiq/internal/router"
	"github.com/abhisek/adaptiq/internal/screen"
	"github.com/abhisek/adaptiq/internal/session"
	"github.com/abhisek/adaptiq/internal/tutor"
	"github.com/abhisek/adaptiq/internal/ui/components"
	"github.com/abhisek/adaptiq/internal/ui/layout"
	"github.com/abhisek/adaptiq/internal/ui/theme"
)

// Screen walks through the questions of one quiz and submits the answers
// after the last one.
type Screen struct {
	tutor   *tutor.Tutor
	sess    *session.Session
	quiz    session.Quiz
	rec     *recommend.Reconciled
	answers []string
	index   int
	choice  components.MultiChoice
	err     error
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New starts at the first question. rec is the recommendation the quiz was
// built from, or nil for a custom quiz.
func New(t *tutor.Tutor, s *session.Session, q session.Quiz, rec *recommend.Reconciled) *Screen {
	sc := &Screen{
		tutor:   t,
		sess:    s,
		quiz:    q,
		rec:     rec,
		answers: make([]string, len(q.Questions)),
	}
	sc.show(0)
	return sc
}

// StartRecommended builds a quiz from the current recommendation and
// returns its screen.
func StartRecommended(t *tutor.Tutor, s *session.Session) (*Screen, error) {
	q, rc, err := t.StartRecommended(s)
	if err != nil {
		return nil, err
	}
	return New(t, s, q, &rc), nil
}

func (s *Screen) Init() tea.Cmd { return nil }

func (s *Screen) Title() string {
	return fmt.Sprintf("%s · %s", s.quiz.Topic, s.quiz.Difficulty.Title())
}

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "A-D/↑↓", Description: "Choose"},
		{Key: "Enter", Description: "Answer"},
		{Key: "S", Description: "Skip"},
		{Key: "←", Description: "Previous"},
		{Key: "Esc", Description: "Abandon"},
	}
}

func (s *Screen) show(i int) {
	s.index = i
	s.choice = components.NewMultiChoice(s.quiz.Questions[i]).Preselect(s.answers[i])
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(s.quiz.Questions) == 0 {
		return s, nil
	}

	switch kmsg.String() {
	case "s", "tab":
		s.answers[s.index] = ""
		return s.advance()
	case "left", "p":
		if s.index > 0 {
			s.show(s.index - 1)
		}
		return s, nil
	}

	s.choice, _ = s.choice.Update(msg)
	if s.choice.Confirmed {
		s.answers[s.index] = s.choice.Answer()
		return s.advance()
	}
	return s, nil
}

func (s *Screen) advance() (screen.Screen, tea.Cmd) {
	if s.index < len(s.quiz.Questions)-1 {
		s.show(s.index + 1)
		return s, nil
	}
	return s.submit()
}

func (s *Screen) submit() (screen.Screen, tea.Cmd) {
	res, err := s.tutor.Submit(context.Background(), s.sess, s.quiz, s.answers)
	if err != nil {
		s.err = err
		return s, nil
	}
	return s, router.Replace(NewResults(s.tutor, s.sess, res))
}

// Answered counts the questions given a non-empty answer so far.
func (s *Screen) Answered() int {
	n := 0
	for _, a := range s.answers {
		if a != "" {
			n++
		}
	}
	return n
}

func (s *Screen) View(width, height int) string {
	if s.err != nil {
		return layout.Center(theme.Incorrect.Render("\nCould not submit quiz: "+s.err.Error()), width)
	}
	if len(s.quiz.Questions) == 0 {
		return layout.Center(theme.Dim.Render("\nThis quiz has no questions."), width)
	}

	cw := min(width-4, 76)
	var b strings.Builder
	b.WriteString("\n")
	if s.rec != nil && s.index == 0 && s.rec.Message != "" {
		b.WriteString(theme.Hint.Width(cw).Render(s.rec.Message))
		b.WriteString("\n\n")
	}
	b.WriteString(theme.Dim.Render(fmt.Sprintf("Question %d of %d", s.index+1, len(s.quiz.Questions))))
	b.WriteString("\n")
	b.WriteString(components.Steps(s.index, len(s.quiz.Questions), cw).View())
	b.WriteString("\n\n")
	b.WriteString(s.choice.View(cw))

	if prev := s.answers[s.index]; prev != "" {
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render("Current answer: " + strings.ToUpper(prev)))
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, lipgloss.NewStyle().Width(cw).Render(b.String()))
}
