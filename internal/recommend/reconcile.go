package recommend

import (
	"errors"
	"fmt"

	"github.com/abhisek/adaptiq/internal/bank"
	"github.com/abhisek/adaptiq/internal/session"
)

// ErrExhausted means no topic/difficulty pair has unseen questions left.
// Resetting the seen ids is the only way forward.
var ErrExhausted = errors.New("all available questions have been seen")

// Counter reports how many unseen questions match a pair. *bank.Bank
// implements it.
type Counter interface {
	AvailableCount(topic string, difficulty bank.Difficulty, seen bank.IDSet) int
}

// Reconciled is a recommendation checked against the bank.
type Reconciled struct {
	Recommendation
	Available int  `json:"available"`
	Exhausted bool `json:"exhausted"`
	// Note is set when the question count was shrunk to what is left.
	Note string `json:"note,omitempty"`
}

// Err returns ErrExhausted for an exhausted result and nil otherwise.
func (rc Reconciled) Err() error {
	if rc.Exhausted {
		return ErrExhausted
	}
	return nil
}

// Reconcile adjusts rec so it can actually be served. When the pair is
// empty it tries the same topic at each difficulty, then the first pair
// anywhere with enough questions left. A pair that is merely short has its
// count reduced.
func (r *Recommender) Reconcile(rec Recommendation, c Counter, seen bank.IDSet) Reconciled {
	p := r.policy
	avail := c.AvailableCount(rec.Topic, rec.Difficulty, seen)

	if avail == 0 {
		adjusted := false
		for _, d := range bank.AllDifficulties() {
			n := c.AvailableCount(rec.Topic, d, seen)
			if n > 0 {
				rec.Difficulty = d
				rec.NumQuestions = min(rec.NumQuestions, n)
				rec.Message = fmt.Sprintf("Adjusted to %s level for %s (available questions).", d, rec.Topic)
				rec.Reason = ReasonAvailabilityAdjusted
				avail = n
				adjusted = true
				break
			}
		}

		if !adjusted {
			fb, n, ok := r.fallback(c, seen)
			if !ok {
				return Reconciled{Recommendation: rec, Exhausted: true}
			}
			rec, avail = fb, n
		}
	}

	out := Reconciled{Recommendation: rec, Available: avail}
	if rec.NumQuestions > avail {
		out.NumQuestions = avail
		out.Note = fmt.Sprintf("Adjusted to %d questions (all available for this level).", avail)
	}
	if out.NumQuestions > p.MaxQuestions {
		out.NumQuestions = p.MaxQuestions
	}
	return out
}

// fallback scans every pair in enumeration order for one with at least
// FallbackMinAvailable unseen questions.
func (r *Recommender) fallback(c Counter, seen bank.IDSet) (Recommendation, int, bool) {
	p := r.policy
	for _, t := range r.topics {
		for _, d := range bank.AllDifficulties() {
			n := c.AvailableCount(t, d, seen)
			if n >= p.FallbackMinAvailable {
				return Recommendation{
					Topic:        t,
					Difficulty:   d,
					NumQuestions: min(p.FallbackQuizSize, n),
					Message:      fmt.Sprintf("Let's try %s to keep your learning going!", t),
					Reason:       ReasonAvailabilityFallback,
				}, n, true
			}
		}
	}
	return Recommendation{}, 0, false
}

// Recommend runs the decision tree and reconciles the result in one step.
func (r *Recommender) Recommend(history []session.Summary, c Counter, seen bank.IDSet) Reconciled {
	return r.Reconcile(r.Next(history), c, seen)
}
