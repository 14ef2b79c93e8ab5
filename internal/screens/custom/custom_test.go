package custom

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/adaptiq/internal/bank"
	"github.com/abhisek/adaptiq/internal/router"
	"github.com/abhisek/adaptiq/internal/screens/quiz"
	st "github.com/abhisek/adaptiq/internal/screens/screentest"
)

func TestCustomScreen_Defaults(t *testing.T) {
	tu, s := st.Tutor(t, 10)
	sc := New(tu, s)

	topic, d, n := sc.Selection()
	if topic != "Algorithms" || d != bank.Easy || n != defaultCount {
		t.Errorf("Selection = %q %q %d, want Algorithms easy %d", topic, d, n, defaultCount)
	}
	if sc.Title() != "Custom Quiz" {
		t.Errorf("Title = %q", sc.Title())
	}
}

func TestCustomScreen_CycleTopicAndDifficulty(t *testing.T) {
	tu, s := st.Tutor(t, 10)
	sc := New(tu, s)

	sc.Update(st.Special(tea.KeyLeft))
	if topic, _, _ := sc.Selection(); topic != "SQL" {
		t.Errorf("left from first topic should wrap to SQL, got %q", topic)
	}

	sc.Update(st.Special(tea.KeyDown))
	sc.Update(st.Special(tea.KeyRight))
	sc.Update(st.Special(tea.KeyRight))
	if _, d, _ := sc.Selection(); d != bank.Hard {
		t.Errorf("difficulty = %q, want hard", d)
	}
}

func TestCustomScreen_StartsQuiz(t *testing.T) {
	tu, s := st.Tutor(t, 10)
	sc := New(tu, s)

	sc.Update(st.Special(tea.KeyRight)) // Python
	sc.Update(st.Special(tea.KeyTab))
	sc.Update(st.Special(tea.KeyRight)) // medium
	sc.Update(st.Special(tea.KeyTab))
	sc.Update(st.Rune('x'))
	sc.Update(st.Rune('3'))

	if _, _, n := sc.Selection(); n != 3 {
		t.Fatalf("count = %d, want 3 (letters are ignored)", n)
	}

	_, cmd := sc.Update(st.Special(tea.KeyEnter))
	msg, ok := st.Run(cmd).(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T (err %q)", st.Run(cmd), sc.errMsg)
	}
	qs, ok := msg.Screen.(*quiz.Screen)
	if !ok {
		t.Fatalf("expected quiz screen, got %T", msg.Screen)
	}
	if qs.Title() != "Python · Medium" {
		t.Errorf("quiz title = %q", qs.Title())
	}
}

func TestCustomScreen_StartButton(t *testing.T) {
	tu, s := st.Tutor(t, 10)
	sc := New(tu, s)

	sc.Update(st.Special(tea.KeyUp)) // wraps to the button
	if !sc.button.Focused {
		t.Fatal("expected the start button to have focus")
	}
	_, cmd := sc.Update(st.Special(tea.KeyEnter))
	if _, ok := st.Run(cmd).(router.ReplaceScreenMsg); !ok {
		t.Errorf("expected ReplaceScreenMsg from the button, got %T", st.Run(cmd))
	}
}

func TestCustomScreen_NoQuestionsLeft(t *testing.T) {
	tu, s := st.Tutor(t, 2)
	sc := New(tu, s)

	// Algorithms/easy has two questions; take both.
	q, err := tu.StartQuiz(s, "Algorithms", bank.Easy, 10)
	if err != nil {
		t.Fatalf("StartQuiz: %v", err)
	}
	if _, err := tu.Submit(t.Context(), s, q, nil); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	_, cmd := sc.Update(st.Special(tea.KeyEnter))
	if cmd != nil {
		t.Error("expected no navigation")
	}
	if !strings.Contains(sc.errMsg, "No unseen easy questions left for Algorithms") {
		t.Errorf("errMsg = %q", sc.errMsg)
	}
	if !strings.Contains(sc.View(80, 24), "0 of 2 questions unseen") {
		t.Error("expected availability line in view")
	}
}
