// Package stats shows the learner's totals, per-topic accuracy, analysis,
// learner profile and what is left in the question bank.
package stats

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/table"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/adaptiq/internal/bank"
	"github.com/abhisek/adaptiq/internal/predict"
	"github.com/abhisek/adaptiq/internal/recommend"
	"github.com/abhisek/adaptiq/internal/screen"
	"github.com/abhisek/adaptiq/internal/session"
	"github.com/abhisek/adaptiq/internal/tutor"
	"github.com/abhisek/adaptiq/internal/ui/components"
	"github.com/abhisek/adaptiq/internal/ui/layout"
	"github.com/abhisek/adaptiq/internal/ui/theme"
)

type predictionMsg struct {
	prediction *predict.Prediction
	ok         bool
}

// Screen is the statistics page. The prediction may call an LLM, so it
// loads in the background behind a spinner.
type Screen struct {
	tutor *tutor.Tutor
	sess  *session.Session

	stats      recommend.Stats
	cells      []bank.AvailabilityCell
	prediction *predict.Prediction
	loaded     bool

	spinner  spinner.Model
	scroller components.Scroller
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

func New(t *tutor.Tutor, s *session.Session) *Screen {
	return &Screen{
		tutor:    t,
		sess:     s,
		stats:    t.Stats(s),
		cells:    t.Availability(s),
		spinner:  spinner.New(spinner.WithSpinner(spinner.MiniDot), spinner.WithStyle(theme.Dim)),
		scroller: components.NewScroller(),
	}
}

func (s *Screen) Init() tea.Cmd {
	return tea.Batch(s.spinner.Tick, s.loadPrediction)
}

func (s *Screen) loadPrediction() tea.Msg {
	p, ok := s.tutor.Predict(context.Background(), s.sess)
	return predictionMsg{prediction: p, ok: ok}
}

func (s *Screen) Title() string { return "Statistics" }

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case predictionMsg:
		s.loaded = true
		if msg.ok {
			s.prediction = msg.prediction
		}
		return s, nil
	case spinner.TickMsg:
		if s.loaded {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd
	}
	return s, s.scroller.Update(msg)
}

func (s *Screen) View(width, height int) string {
	cw := min(width-4, 76)
	var sections []string

	if s.stats.TotalQuizzes == 0 {
		sections = append(sections, theme.Hint.Render("No quizzes yet. Take one from the home screen."))
	} else {
		sections = append(sections, s.overview(), s.topicBars(cw), s.difficulties(cw), s.analysis())
	}
	sections = append(sections, s.profile(), s.availability())

	body := lipgloss.NewStyle().Width(cw).Render("\n" + strings.Join(sections, "\n\n"))
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, s.scroller.View(body, cw, height))
}

func heading(s string) string { return theme.Title.Render(s) + "\n" }

func (s *Screen) overview() string {
	st := s.stats
	line := fmt.Sprintf("%d quizzes · %d/%d correct · %.0f%% overall",
		st.TotalQuizzes, st.TotalCorrect, st.TotalQuestions, st.OverallAccuracy*100)
	out := heading("Overview") + theme.Body.Render(line)
	if st.BestTopic != "" && st.BestTopic != st.WorstTopic {
		out += "\n" + theme.Dim.Render(fmt.Sprintf("Best: %s · Needs work: %s", st.BestTopic, st.WorstTopic))
	}
	return out
}

func labelWidth(labels []string) int {
	w := 0
	for _, l := range labels {
		w = max(w, lipgloss.Width(l))
	}
	return w
}

func (s *Screen) topicBars(cw int) string {
	labels := make([]string, len(s.stats.Topics))
	for i, ts := range s.stats.Topics {
		labels[i] = ts.Topic
	}
	lw := labelWidth(labels)

	var b strings.Builder
	b.WriteString(heading("Topics"))
	for _, ts := range s.stats.Topics {
		bar := components.NewProgressBar(ts.Topic, ts.Accuracy, cw)
		bar.LabelWidth = lw
		bar.Fill = theme.AccuracyColor(ts.Accuracy)
		bar.Suffix = fmt.Sprintf("%3.0f%% (%d/%d)", ts.Accuracy*100, ts.Correct, ts.Total)
		b.WriteString(bar.View() + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (s *Screen) difficulties(cw int) string {
	var b strings.Builder
	b.WriteString(heading("Difficulty"))
	for _, ds := range s.stats.Difficulties {
		bar := components.NewProgressBar(ds.Difficulty.Title(), ds.AvgAccuracy, cw)
		bar.LabelWidth = 6
		bar.Fill = theme.DifficultyColor(ds.Difficulty)
		bar.Suffix = fmt.Sprintf("%3.0f%% avg · %d quizzes", ds.AvgAccuracy*100, ds.Quizzes)
		b.WriteString(bar.View() + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (s *Screen) analysis() string {
	a := s.stats.Analysis
	lines := []string{
		fmt.Sprintf("Pattern: %s · Trend: %s", humanize(string(a.Pattern)), humanize(string(a.Trend))),
		fmt.Sprintf("Recent average: %.0f%% · Consistency: %.0f%%", a.RecentAvg*100, a.Consistency*100),
	}
	if len(a.StrugglingTopics) > 0 {
		lines = append(lines, theme.Notice.Render("Struggling with: "+strings.Join(a.StrugglingTopics, ", ")))
	}
	return heading("Analysis") + strings.Join(lines, "\n")
}

func (s *Screen) profile() string {
	out := heading("Learner profile")
	switch {
	case !s.loaded:
		return out + s.spinner.View() + theme.Dim.Render(" predicting…")
	case s.prediction == nil:
		return out + theme.Hint.Render("Take a quiz to get a learner profile.")
	}
	p := s.prediction
	out += fmt.Sprintf("%s learner · %s engagement",
		lipgloss.NewStyle().Bold(true).Render(humanize(p.LearnerType)),
		humanize(p.Engagement))
	out += theme.Dim.Render(fmt.Sprintf("  (%.0f%% · %s)", p.LearnerProbs[p.LearnerType]*100, p.Source))
	if p.Rationale != "" {
		out += "\n" + theme.Hint.Render(p.Rationale)
	}
	return out
}

func (s *Screen) availability() string {
	diffs := s.tutor.Bank().Difficulties()
	cols := []table.Column{{Title: "Topic", Width: 18}}
	for _, d := range diffs {
		cols = append(cols, table.Column{Title: d.Title(), Width: 9})
	}

	var rows []table.Row
	byTopic := make(map[string]table.Row)
	for _, c := range s.cells {
		row, ok := byTopic[c.Topic]
		if !ok {
			row = table.Row{c.Topic}
		}
		byTopic[c.Topic] = append(row, fmt.Sprintf("%d/%d", c.Available, c.Total))
	}
	for _, t := range s.tutor.Bank().Topics() {
		rows = append(rows, byTopic[t])
	}

	styles := table.DefaultStyles()
	styles.Header = styles.Header.Foreground(theme.TextDim)
	styles.Selected = styles.Cell
	tbl := table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithHeight(len(rows)+1),
		table.WithFocused(false),
		table.WithStyles(styles),
	)
	left := s.tutor.Bank().RemainingCount(s.sess.Seen())
	return heading("Questions left") + tbl.View() + "\n" +
		theme.Dim.Render(fmt.Sprintf("%d of %d unseen", left, s.tutor.Bank().Len()))
}

// humanize turns a snake_case label into words.
func humanize(s string) string {
	s = strings.ReplaceAll(s, "_", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
