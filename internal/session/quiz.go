package session

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/adaptiq/internal/bank"
)

// Quiz is a set of questions served together at one topic and difficulty.
type Quiz struct {
	ID         uuid.UUID       `json:"id"`
	Topic      string          `json:"topic"`
	Difficulty bank.Difficulty `json:"difficulty"`
	Questions  []bank.Question `json:"questions"`
	Custom     bool            `json:"custom"`
	CreatedAt  time.Time       `json:"created_at"`
}

// NewQuiz wraps sampled questions in a quiz with a fresh id.
func NewQuiz(topic string, d bank.Difficulty, questions []bank.Question, custom bool, now time.Time) Quiz {
	return Quiz{
		ID:         uuid.New(),
		Topic:      topic,
		Difficulty: d,
		Questions:  questions,
		Custom:     custom,
		CreatedAt:  now,
	}
}

// QuestionIDs returns the ids of the quiz questions in order.
func (q Quiz) QuestionIDs() []int {
	ids := make([]int, len(q.Questions))
	for i, qq := range q.Questions {
		ids[i] = qq.ID
	}
	return ids
}

// Review is the per-question outcome shown after a quiz.
type Review struct {
	Question bank.Question `json:"question"`
	Answer   string        `json:"answer"`
	Correct  bool          `json:"correct"`
}

// Result is what SubmitQuiz returns.
type Result struct {
	Summary Summary  `json:"summary"`
	Band    Band     `json:"band"`
	Reviews []Review `json:"reviews"`
}

// IsCorrect compares a learner answer with the correct letter, ignoring
// case and surrounding space. An empty answer is never correct.
func IsCorrect(answer, correct string) bool {
	a := strings.ToLower(strings.TrimSpace(answer))
	return a != "" && a == strings.ToLower(strings.TrimSpace(correct))
}

// Score grades answers against a quiz. Missing answers count as incorrect.
func Score(q Quiz, answers []string, now time.Time) Result {
	reviews := make([]Review, len(q.Questions))
	correct := 0
	for i, qq := range q.Questions {
		var a string
		if i < len(answers) {
			a = strings.ToLower(strings.TrimSpace(answers[i]))
		}
		ok := IsCorrect(a, qq.Answer)
		if ok {
			correct++
		}
		reviews[i] = Review{Question: qq, Answer: a, Correct: ok}
	}

	sum := NewSummary(q.Topic, q.Difficulty, correct, len(q.Questions), now)
	return Result{
		Summary: sum,
		Band:    BandFor(sum.Accuracy),
		Reviews: reviews,
	}
}
