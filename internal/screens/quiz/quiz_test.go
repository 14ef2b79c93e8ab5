package quiz

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/adaptiq/internal/router"
	st "github.com/abhisek/adaptiq/internal/screens/screentest"
	"github.com/abhisek/adaptiq/internal/session"
)

func startQuiz(t *testing.T, perPair int) (*Screen, *session.Session) {
	t.Helper()
	tu, s := st.Tutor(t, perPair)
	sc, err := StartRecommended(tu, s)
	if err != nil {
		t.Fatalf("StartRecommended: %v", err)
	}
	return sc, s
}

func answerAll(t *testing.T, sc *Screen, letter rune) tea.Cmd {
	t.Helper()
	var cmd tea.Cmd
	for range sc.quiz.Questions {
		sc.Update(st.Rune(letter))
		_, cmd = sc.Update(st.Special(tea.KeyEnter))
	}
	return cmd
}

func TestQuizScreen_Title(t *testing.T) {
	sc, _ := startQuiz(t, 10)
	if got := sc.Title(); got != "Python · Easy" {
		t.Errorf("Title = %q, want %q", got, "Python · Easy")
	}
}

func TestQuizScreen_AnswerAllCorrect(t *testing.T) {
	sc, s := startQuiz(t, 10)

	cmd := answerAll(t, sc, 'b')
	msg, ok := st.Run(cmd).(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", st.Run(cmd))
	}
	if _, ok := msg.Screen.(*ResultsScreen); !ok {
		t.Fatalf("expected results screen, got %T", msg.Screen)
	}

	hist := s.History()
	if len(hist) != 1 {
		t.Fatalf("expected 1 quiz in history, got %d", len(hist))
	}
	if hist[0].Correct != 5 || hist[0].Accuracy != 1 {
		t.Errorf("summary = %+v, want 5/5", hist[0])
	}
}

func TestQuizScreen_SkipCountsAsWrong(t *testing.T) {
	sc, s := startQuiz(t, 10)

	var cmd tea.Cmd
	for range sc.quiz.Questions {
		_, cmd = sc.Update(st.Rune('s'))
	}
	if cmd == nil {
		t.Fatal("expected submit after skipping the last question")
	}
	if got := s.History()[0].Correct; got != 0 {
		t.Errorf("Correct = %d, want 0", got)
	}
	if s.SeenCount() != 5 {
		t.Errorf("skipped questions should still be seen, got %d", s.SeenCount())
	}
}

func TestQuizScreen_PreviousKeepsAnswer(t *testing.T) {
	sc, _ := startQuiz(t, 10)

	sc.Update(st.Rune('c'))
	sc.Update(st.Special(tea.KeyEnter))
	if sc.index != 1 {
		t.Fatalf("index = %d, want 1", sc.index)
	}

	sc.Update(st.Special(tea.KeyLeft))
	if sc.index != 0 {
		t.Fatalf("index = %d after left, want 0", sc.index)
	}
	if got := sc.choice.Answer(); got != "c" {
		t.Errorf("cursor on %q, want previous answer c", got)
	}
	if !strings.Contains(sc.View(80, 30), "Current answer: C") {
		t.Error("expected the previous answer in the view")
	}
	if sc.Answered() != 1 {
		t.Errorf("Answered = %d, want 1", sc.Answered())
	}
}

func TestQuizScreen_ArrowsAndEnter(t *testing.T) {
	sc, _ := startQuiz(t, 10)

	sc.Update(st.Special(tea.KeyDown))
	sc.Update(st.Special(tea.KeyDown))
	sc.Update(st.Special(tea.KeyUp))
	sc.Update(st.Special(tea.KeyEnter))

	if sc.answers[0] != "b" {
		t.Errorf("answers[0] = %q, want b", sc.answers[0])
	}
}

func finishQuiz(t *testing.T, perPair int, letter rune) (*ResultsScreen, *session.Session) {
	t.Helper()
	sc, s := startQuiz(t, perPair)
	msg, ok := st.Run(answerAll(t, sc, letter)).(router.ReplaceScreenMsg)
	if !ok {
		t.Fatal("expected ReplaceScreenMsg")
	}
	return msg.Screen.(*ResultsScreen), s
}

func TestResultsScreen_View(t *testing.T) {
	res, _ := finishQuiz(t, 10, 'a')

	view := res.View(100, 60)
	for _, want := range []string{"0/5 correct", "Needs practice", "Review", "Correct:", "because", "Next up"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if res.next.Topic != "Python" {
		t.Errorf("next topic = %q, want Python", res.next.Topic)
	}
}

func TestResultsScreen_NextQuiz(t *testing.T) {
	res, s := finishQuiz(t, 10, 'b')

	_, cmd := res.Update(st.Special(tea.KeyEnter))
	msg, ok := st.Run(cmd).(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", st.Run(cmd))
	}
	next, ok := msg.Screen.(*Screen)
	if !ok {
		t.Fatalf("expected quiz screen, got %T", msg.Screen)
	}
	if next.rec == nil || next.quiz.Topic != res.next.Topic {
		t.Errorf("next quiz %q does not follow recommendation %q", next.quiz.Topic, res.next.Topic)
	}
	if len(s.History()) != 1 {
		t.Errorf("starting a quiz must not change history")
	}
}

func TestResultsScreen_Home(t *testing.T) {
	res, _ := finishQuiz(t, 10, 'b')

	_, cmd := res.Update(st.Rune('h'))
	if _, ok := st.Run(cmd).(router.PopToRootMsg); !ok {
		t.Errorf("expected PopToRootMsg, got %T", st.Run(cmd))
	}
}

func TestResultsScreen_ExhaustedBank(t *testing.T) {
	// One question per pair: the bank runs dry quickly.
	tu, s := st.Tutor(t, 1)
	var res session.Result
	for i := 0; i < 20 && !tu.Recommend(s).Exhausted; i++ {
		res = st.TakeQuiz(t, tu, s, true)
	}
	if !tu.Recommend(s).Exhausted {
		t.Fatal("bank should be exhausted")
	}

	rs := NewResults(tu, s, res)
	_, cmd := rs.Update(st.Special(tea.KeyEnter))
	if cmd != nil {
		t.Error("expected no navigation when the bank is exhausted")
	}
	if !strings.Contains(rs.notice, "Every question has been seen") {
		t.Errorf("notice = %q", rs.notice)
	}
	for _, h := range rs.KeyHints() {
		if h.Key == "Enter" {
			t.Error("Enter hint should be hidden when exhausted")
		}
	}
}
