package session

import (
	"errors"
	"testing"
	"time"

	"github.com/abhisek/adaptiq/internal/bank"
)

var testNow = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func testQuiz(ids ...int) Quiz {
	qs := make([]bank.Question, len(ids))
	for i, id := range ids {
		qs[i] = bank.Question{ID: id, Topic: "SQL", Difficulty: bank.Easy, Answer: "a"}
	}
	return NewQuiz("SQL", bank.Easy, qs, false, testNow)
}

func TestSubmitQuiz_ScoresAndRecords(t *testing.T) {
	s := New(testNow)
	q := testQuiz(1, 2, 3, 4)

	res, err := s.SubmitQuiz(q, []string{"a", " A ", "b", ""}, testNow)
	if err != nil {
		t.Fatalf("SubmitQuiz: %v", err)
	}

	if res.Summary.Correct != 2 || res.Summary.Total != 4 {
		t.Errorf("score = %d/%d, want 2/4", res.Summary.Correct, res.Summary.Total)
	}
	if res.Summary.Accuracy != 0.5 {
		t.Errorf("Accuracy = %v, want 0.5", res.Summary.Accuracy)
	}
	if res.Band != BandFair {
		t.Errorf("Band = %q, want fair", res.Band)
	}
	if !res.Reviews[1].Correct || res.Reviews[1].Answer != "a" {
		t.Errorf("review 1 = %+v, want normalized correct answer", res.Reviews[1])
	}

	if len(s.History()) != 1 {
		t.Fatalf("History len = %d, want 1", len(s.History()))
	}
	seen := s.Seen()
	for _, id := range []int{1, 2, 3, 4} {
		if !seen.Has(id) {
			t.Errorf("id %d not marked seen", id)
		}
	}
}

func TestSubmitQuiz_MissingAnswersAreIncorrect(t *testing.T) {
	s := New(testNow)
	res, err := s.SubmitQuiz(testQuiz(1, 2, 3), []string{"a"}, testNow)
	if err != nil {
		t.Fatalf("SubmitQuiz: %v", err)
	}
	if res.Summary.Correct != 1 || res.Summary.Total != 3 {
		t.Errorf("score = %d/%d, want 1/3", res.Summary.Correct, res.Summary.Total)
	}
	if got := s.Records()[0].Answers; len(got) != 3 || got[2] != "" {
		t.Errorf("recorded answers = %q", got)
	}
}

func TestSubmitQuiz_EmptyQuiz(t *testing.T) {
	s := New(testNow)
	_, err := s.SubmitQuiz(testQuiz(), nil, testNow)
	if !errors.Is(err, ErrEmptyQuiz) {
		t.Errorf("err = %v, want ErrEmptyQuiz", err)
	}
	if len(s.History()) != 0 {
		t.Error("empty quiz should not be recorded")
	}
}

func TestReset_KeepsHistory(t *testing.T) {
	s := New(testNow)
	s.SubmitQuiz(testQuiz(1, 2), []string{"a", "a"}, testNow)

	s.Reset()

	if s.SeenCount() != 0 {
		t.Errorf("SeenCount = %d, want 0", s.SeenCount())
	}
	if len(s.History()) != 1 {
		t.Errorf("History len = %d, want 1 after Reset", len(s.History()))
	}

	s.ResetAll()
	if len(s.History()) != 0 {
		t.Errorf("History len = %d, want 0 after ResetAll", len(s.History()))
	}
}

func TestAccessorsReturnCopies(t *testing.T) {
	s := NewWithID(New(testNow).ID, testNow, nil, []int{7})

	seen := s.Seen()
	seen.Add(99)
	if s.Seen().Has(99) {
		t.Error("Seen exposed internal set")
	}

	s.SubmitQuiz(testQuiz(1), []string{"a"}, testNow)
	h := s.History()
	h[0].Topic = "changed"
	if s.History()[0].Topic != "SQL" {
		t.Error("History exposed internal slice")
	}
}

func TestBandFor(t *testing.T) {
	tests := []struct {
		acc  float64
		want Band
	}{
		{1.0, BandExcellent},
		{0.8, BandExcellent},
		{0.79, BandGood},
		{0.6, BandGood},
		{0.4, BandFair},
		{0.39, BandNeedsPractice},
		{0, BandNeedsPractice},
	}
	for _, tt := range tests {
		if got := BandFor(tt.acc); got != tt.want {
			t.Errorf("BandFor(%v) = %q, want %q", tt.acc, got, tt.want)
		}
	}
}

func TestNewSummary_ZeroTotal(t *testing.T) {
	s := NewSummary("SQL", bank.Easy, 0, 0, testNow)
	if s.Accuracy != 0 {
		t.Errorf("Accuracy = %v, want 0", s.Accuracy)
	}
}
