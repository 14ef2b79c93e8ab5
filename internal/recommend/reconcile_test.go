package recommend

import (
	"errors"
	"testing"

	"github.com/abhisek/adaptiq/internal/bank"
	"github.com/abhisek/adaptiq/internal/session"
)

func TestReconcile_Available(t *testing.T) {
	r := newTestRecommender()
	rec := Recommendation{Topic: "SQL", Difficulty: bank.Medium, NumQuestions: 10, Reason: ReasonSkillReinforcement}

	got := r.Reconcile(rec, fakeCounter{"SQL/medium": 25}, nil)
	if got.Recommendation != rec || got.Available != 25 || got.Exhausted || got.Note != "" {
		t.Errorf("Reconcile = %+v, want unchanged", got)
	}
}

func TestReconcile_ShortPairShrinks(t *testing.T) {
	r := newTestRecommender()
	rec := Recommendation{Topic: "SQL", Difficulty: bank.Medium, NumQuestions: 10, Reason: ReasonSkillReinforcement}

	got := r.Reconcile(rec, fakeCounter{"SQL/medium": 4}, nil)
	if got.NumQuestions != 4 || got.Available != 4 {
		t.Errorf("Reconcile = %+v, want 4 questions", got)
	}
	if got.Reason != ReasonSkillReinforcement {
		t.Errorf("Reason = %q, want unchanged", got.Reason)
	}
	if got.Note == "" {
		t.Error("expected a note about the reduced count")
	}
}

func TestReconcile_SameTopicOtherDifficulty(t *testing.T) {
	r := newTestRecommender()
	rec := Recommendation{Topic: "SQL", Difficulty: bank.Hard, NumQuestions: 10}

	got := r.Reconcile(rec, fakeCounter{"SQL/medium": 3, "Python/easy": 50}, nil)
	if got.Topic != "SQL" || got.Difficulty != bank.Medium || got.NumQuestions != 3 {
		t.Errorf("Reconcile = %s/%s/%d, want SQL/medium/3", got.Topic, got.Difficulty, got.NumQuestions)
	}
	if got.Reason != ReasonAvailabilityAdjusted {
		t.Errorf("Reason = %q, want availability_adjusted", got.Reason)
	}
}

func TestReconcile_SameTopicPrefersEasiest(t *testing.T) {
	r := newTestRecommender()
	rec := Recommendation{Topic: "SQL", Difficulty: bank.Medium, NumQuestions: 5}

	got := r.Reconcile(rec, fakeCounter{"SQL/easy": 9, "SQL/hard": 9}, nil)
	if got.Difficulty != bank.Easy || got.NumQuestions != 5 {
		t.Errorf("Reconcile = %s/%d, want easy/5", got.Difficulty, got.NumQuestions)
	}
}

func TestReconcile_FallbackToFirstPairWithFive(t *testing.T) {
	r := newTestRecommender()
	rec := Recommendation{Topic: "SQL", Difficulty: bank.Hard, NumQuestions: 10}

	// Algorithms/easy has 4 (too few); Data Structures/medium is the first with >= 5.
	c := fakeCounter{"Algorithms/easy": 4, "Data Structures/medium": 7, "Python/easy": 30}
	got := r.Reconcile(rec, c, nil)

	if got.Topic != "Data Structures" || got.Difficulty != bank.Medium || got.NumQuestions != 7 {
		t.Errorf("Reconcile = %s/%s/%d, want Data Structures/medium/7",
			got.Topic, got.Difficulty, got.NumQuestions)
	}
	if got.Reason != ReasonAvailabilityFallback {
		t.Errorf("Reason = %q, want availability_fallback", got.Reason)
	}

	got = r.Reconcile(rec, fakeCounter{"Python/hard": 40}, nil)
	if got.NumQuestions != 10 {
		t.Errorf("fallback NumQuestions = %d, want capped at 10", got.NumQuestions)
	}
}

func TestReconcile_Exhausted(t *testing.T) {
	r := newTestRecommender()
	rec := Recommendation{Topic: "SQL", Difficulty: bank.Hard, NumQuestions: 10}

	got := r.Reconcile(rec, fakeCounter{"Python/easy": 4}, nil)
	if !got.Exhausted {
		t.Fatalf("Reconcile = %+v, want exhausted", got)
	}
	if !errors.Is(got.Err(), ErrExhausted) {
		t.Errorf("Err = %v, want ErrExhausted", got.Err())
	}
}

func TestRecommend_ConfidenceOverrideBeforeReconcile(t *testing.T) {
	r := newTestRecommender()
	history := []session.Summary{
		quiz("Python", bank.Easy, 5, 5),
		quiz("SQL", bank.Easy, 0, 5),
		quiz("Algorithms", bank.Easy, 0, 5),
		quiz("Data Structures", bank.Easy, 0, 5),
	}

	got := r.Recommend(history, fakeCounter{"Python/easy": 2, "Data Structures/easy": 50}, nil)
	if got.Topic != "Python" || got.NumQuestions != 2 {
		t.Errorf("Recommend = %s/%d, want the override topic Python shrunk to 2", got.Topic, got.NumQuestions)
	}
	if got.Reason != ReasonConfidenceBuilding {
		t.Errorf("Reason = %q, want confidence_building", got.Reason)
	}
}

func TestRecommend_WithBank(t *testing.T) {
	qs := []bank.Question{
		{ID: 1, Topic: "Python", Difficulty: bank.Easy},
		{ID: 2, Topic: "Python", Difficulty: bank.Easy},
		{ID: 3, Topic: "Python", Difficulty: bank.Medium},
	}
	b := bank.New(qs)
	r := New(b.Topics())

	got := r.Recommend(nil, b, bank.NewIDSet(1))
	if got.Topic != "Python" || got.Difficulty != bank.Easy || got.NumQuestions != 1 {
		t.Errorf("Recommend = %+v, want Python/easy/1", got)
	}

	got = r.Recommend(nil, b, bank.NewIDSet(1, 2, 3))
	if !got.Exhausted {
		t.Errorf("Recommend = %+v, want exhausted", got)
	}
}
