package recommend

import (
	"math/rand/v2"
	"time"

	"github.com/abhisek/adaptiq/internal/bank"
	"github.com/abhisek/adaptiq/internal/session"
)

var t0 = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func quiz(topic string, d bank.Difficulty, correct, total int) session.Summary {
	return session.NewSummary(topic, d, correct, total, t0)
}

var testTopics = []string{"Algorithms", "Data Structures", "Python", "SQL"}

func newTestRecommender(opts ...Option) *Recommender {
	opts = append([]Option{WithRand(rand.New(rand.NewPCG(7, 11)))}, opts...)
	return New(testTopics, opts...)
}

// fakeCounter answers AvailableCount from a fixed table keyed by
// "topic/difficulty", ignoring seen.
type fakeCounter map[string]int

func (f fakeCounter) AvailableCount(topic string, d bank.Difficulty, _ bank.IDSet) int {
	return f[topic+"/"+string(d)]
}
