// Package predict labels a learner's profile from their quiz history.
//
// A rule-based classifier is always available. It can be replaced by a
// logistic model loaded from a JSON file, and refined by an LLM when one
// is configured. Predictions are informational and never feed the
// recommender.
package predict

import (
	"math"

	"github.com/abhisek/adaptiq/internal/session"
)

// window is how many recent quizzes the features look at.
const window = 3

// Features summarizes recent performance. Time and attempts are
// estimated from accuracy since the quiz does not measure them.
type Features struct {
	Accuracy       float64 `json:"accuracy"`
	TotalQuestions float64 `json:"total_questions"`
	AvgTimeSeconds float64 `json:"avg_time_seconds"`
	AvgAttempts    float64 `json:"avg_attempts"`
	Consistency    float64 `json:"consistency"`
}

// FeaturesFrom computes features from the last few summaries.
func FeaturesFrom(history []session.Summary) Features {
	recent := history
	if len(recent) > window {
		recent = recent[len(recent)-window:]
	}

	acc := 0.5
	total := 0
	consistency := 0.8
	if len(recent) > 0 {
		accs := make([]float64, len(recent))
		sum := 0.0
		for i, s := range recent {
			accs[i] = s.Accuracy
			sum += s.Accuracy
			total += s.Total
		}
		acc = sum / float64(len(recent))
		if len(recent) > 1 {
			consistency = 1 - stddev(accs, acc)
		}
	}

	return Features{
		Accuracy:       acc,
		TotalQuestions: float64(total),
		AvgTimeSeconds: 30 + (1-acc)*20,
		AvgAttempts:    1 + (1-acc)*0.5,
		Consistency:    consistency,
	}
}

// Vector returns the features in model input order.
func (f Features) Vector() []float64 {
	return []float64{f.Accuracy, f.TotalQuestions, f.AvgTimeSeconds, f.AvgAttempts, f.Consistency}
}

// NumFeatures is the length of Vector.
const NumFeatures = 5

func stddev(xs []float64, mean float64) float64 {
	var ss float64
	for _, x := range xs {
		ss += (x - mean) * (x - mean)
	}
	return math.Sqrt(ss / float64(len(xs)))
}
