package quiz

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/adaptiq/internal/bank"
	"github.com/abhisek/adaptiq/internal/recommend"
	"github.com/abhisek/adaptiq/internal/router"
	"github.com/abhisek/adaptiq/internal/screen"
	"github.com/abhisek/adaptiq/internal/session"
	"github.com/abhisek/adaptiq/internal/tutor"
	"github.com/abhisek/adaptiq/internal/ui/components"
	"github.com/abhisek/adaptiq/internal/ui/layout"
	"github.com/abhisek/adaptiq/internal/ui/theme"
)

// ResultsScreen shows the score, a per-question review and what comes next.
type ResultsScreen struct {
	tutor    *tutor.Tutor
	sess     *session.Session
	result   session.Result
	next     recommend.Reconciled
	scroller components.Scroller
	notice   string
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)

func NewResults(t *tutor.Tutor, s *session.Session, res session.Result) *ResultsScreen {
	return &ResultsScreen{
		tutor:    t,
		sess:     s,
		result:   res,
		next:     t.Recommend(s),
		scroller: components.NewScroller(),
	}
}

func (r *ResultsScreen) Init() tea.Cmd { return nil }

func (r *ResultsScreen) Title() string { return "Results" }

func (r *ResultsScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "↑↓", Description: "Scroll"}}
	if !r.next.Exhausted {
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Next quiz"})
	}
	return append(hints, layout.KeyHint{Key: "H/Esc", Description: "Home"})
}

func (r *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "n":
			next, err := StartRecommended(r.tutor, r.sess)
			switch {
			case errors.Is(err, recommend.ErrExhausted):
				r.notice = "Every question has been seen. Reset progress from the home screen."
				return r, nil
			case err != nil:
				r.notice = err.Error()
				return r, nil
			}
			return r, router.Replace(next)
		case "h":
			return r, router.PopToRoot
		}
	}
	return r, r.scroller.Update(msg)
}

func (r *ResultsScreen) View(width, height int) string {
	cw := min(width-4, 76)
	body := lipgloss.NewStyle().Width(cw).Render(r.content(cw))
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, r.scroller.View(body, cw, height))
}

func (r *ResultsScreen) content(cw int) string {
	sum := r.result.Summary
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(theme.Title.Render("Quiz complete"))
	b.WriteString("  ")
	b.WriteString(theme.Dim.Render(fmt.Sprintf("%s · %s", sum.Topic, sum.Difficulty.Title())))
	b.WriteString("\n\n")

	bandStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.BandColor(r.result.Band))
	b.WriteString(fmt.Sprintf("%d/%d correct   ", sum.Correct, sum.Total))
	b.WriteString(bandStyle.Render(r.result.Band.Label()))
	b.WriteString("\n")
	bar := components.NewProgressBar("", sum.Accuracy, cw)
	bar.Fill = theme.BandColor(r.result.Band)
	b.WriteString(bar.View())
	b.WriteString("\n\n")

	b.WriteString(theme.Title.Render("Review"))
	b.WriteString("\n")
	for i, rv := range r.result.Reviews {
		b.WriteString(reviewView(i+1, rv))
	}

	b.WriteString("\n")
	b.WriteString(theme.Title.Render("Next up"))
	b.WriteString("\n")
	b.WriteString(RecommendationView(r.next))

	if r.notice != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.Notice.Render(r.notice))
	}
	return b.String()
}

func reviewView(n int, rv session.Review) string {
	var b strings.Builder
	mark := theme.Correct.Render("✓")
	if !rv.Correct {
		mark = theme.Incorrect.Render("✗")
	}
	fmt.Fprintf(&b, "%s %d. %s\n", mark, n, rv.Question.Text)
	fmt.Fprintf(&b, "     Your answer: %s\n", optionText(rv.Question, rv.Answer))
	if !rv.Correct {
		fmt.Fprintf(&b, "     %s %s\n", theme.Correct.Render("Correct:"), optionText(rv.Question, rv.Question.Answer))
		if rv.Question.Explanation != "" {
			b.WriteString(theme.Hint.Render("     "+rv.Question.Explanation) + "\n")
		}
	}
	return b.String()
}

func optionText(q bank.Question, letter string) string {
	i := slices.Index(bank.OptionLetters, letter)
	if i < 0 {
		return theme.Dim.Render("(skipped)")
	}
	return fmt.Sprintf("%s) %s", strings.ToUpper(letter), q.Options[i])
}

// RecommendationView renders a reconciled recommendation as a short card body.
func RecommendationView(rc recommend.Reconciled) string {
	if rc.Exhausted {
		return theme.Notice.Render("All questions have been seen. Reset progress to keep practicing.")
	}
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(theme.Text).Render(rc.Topic))
	b.WriteString(" · ")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.DifficultyColor(rc.Difficulty)).Render(rc.Difficulty.Title()))
	b.WriteString(theme.Dim.Render(fmt.Sprintf(" · %d questions", rc.NumQuestions)))
	if rc.Message != "" {
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render(rc.Message))
	}
	if rc.Note != "" {
		b.WriteString("\n")
		b.WriteString(theme.Notice.Render(rc.Note))
	}
	return b.String()
}
