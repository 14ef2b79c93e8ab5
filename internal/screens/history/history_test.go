package history

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	st "github.com/abhisek/adaptiq/internal/screens/screentest"
)

func TestHistoryScreen_Empty(t *testing.T) {
	tu, s := st.Tutor(t, 10)
	h := New(tu, s)
	if !strings.Contains(h.View(80, 20), "No quizzes yet") {
		t.Error("expected empty state")
	}
}

func TestHistoryScreen_NewestFirstAndExpand(t *testing.T) {
	tu, s := st.Tutor(t, 10)
	st.TakeQuiz(t, tu, s, true)  // Python easy
	st.TakeQuiz(t, tu, s, false) // then a harder Python quiz
	h := New(tu, s)

	if len(h.records) != 2 {
		t.Fatalf("records = %d, want 2", len(h.records))
	}
	if h.records[0].Summary.Correct != 0 {
		t.Errorf("newest quiz should be first, got %+v", h.records[0].Summary)
	}

	h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !h.expanded[1] {
		t.Fatal("expected second row expanded")
	}
	view := h.View(100, 40)
	if !strings.Contains(view, "[B/B]") {
		t.Error("expected answer/correct letters for the expanded quiz")
	}
	if !strings.Contains(view, "100%") || !strings.Contains(view, "0%") {
		t.Error("expected both accuracies")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("abcdef", 4); got != "abc…" {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("abc", 4); got != "abc" {
		t.Errorf("truncate = %q", got)
	}
}
