package session

import (
	"time"

	"github.com/abhisek/adaptiq/internal/bank"
)

// Summary is the immutable outcome of one submitted quiz.
type Summary struct {
	Topic      string          `json:"topic"`
	Difficulty bank.Difficulty `json:"difficulty"`
	Correct    int             `json:"correct"`
	Total      int             `json:"total"`
	Accuracy   float64         `json:"accuracy"`
	Timestamp  time.Time       `json:"timestamp"`
}

// NewSummary computes the accuracy for a quiz outcome. A quiz with no
// questions has accuracy 0.
func NewSummary(topic string, d bank.Difficulty, correct, total int, at time.Time) Summary {
	var acc float64
	if total > 0 {
		acc = float64(correct) / float64(total)
	}
	return Summary{
		Topic:      topic,
		Difficulty: d,
		Correct:    correct,
		Total:      total,
		Accuracy:   acc,
		Timestamp:  at,
	}
}

// QuizRecord is a history entry: the summary plus what was asked and
// answered, in order.
type QuizRecord struct {
	Summary     Summary  `json:"summary"`
	QuestionIDs []int    `json:"question_ids"`
	Answers     []string `json:"answers"`
}

// Band is a coarse performance label for a quiz.
type Band string

const (
	BandExcellent     Band = "excellent"
	BandGood          Band = "good"
	BandFair          Band = "fair"
	BandNeedsPractice Band = "needs_practice"
)

// BandFor maps accuracy to a performance band.
func BandFor(accuracy float64) Band {
	switch {
	case accuracy >= 0.8:
		return BandExcellent
	case accuracy >= 0.6:
		return BandGood
	case accuracy >= 0.4:
		return BandFair
	default:
		return BandNeedsPractice
	}
}

// Label returns the display text for a band.
func (b Band) Label() string {
	switch b {
	case BandExcellent:
		return "Excellent"
	case BandGood:
		return "Good"
	case BandFair:
		return "Fair"
	default:
		return "Needs practice"
	}
}
