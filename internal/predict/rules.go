package predict

import "math"

const (
	// quickSeconds is the per-question time under which a learner counts as fast.
	quickSeconds = 48.0
	// paceSeconds is the reference pace for the engagement speed term.
	paceSeconds = 25.0
	sharpness   = 12.0
)

func sigmoid(x float64) float64 { return 1 / (1 + math.Exp(-sharpness*x)) }

// LearnerRules scores the learner type decision list:
//
//	accuracy ≥ 0.8 and quick            → Advanced
//	accuracy ≥ 0.65 and consistency > 0.7 → Moderate
//	accuracy < 0.45 or attempts > 1.4  → Struggling
//	otherwise                          → Balanced
//
// Each test is softened with a sigmoid and the list is evaluated as a
// chain of conditional probabilities, so the scores always sum to 1.
type LearnerRules struct{}

func (LearnerRules) Predict(f Features) (string, map[string]float64) {
	adv := sigmoid(f.Accuracy-0.8) * sigmoid((quickSeconds-f.AvgTimeSeconds)/20)
	rest := 1 - adv

	mod := rest * sigmoid(f.Accuracy-0.65) * sigmoid(f.Consistency-0.7)
	rest -= mod

	strug := rest * math.Max(sigmoid(0.45-f.Accuracy), sigmoid(f.AvgAttempts-1.4))
	rest -= strug

	probs := map[string]float64{
		Advanced:   adv,
		Moderate:   mod,
		Struggling: strug,
		Balanced:   rest,
	}
	return argmax(probs), probs
}

// EngagementRules scores engagement from a weighted blend of accuracy,
// speed, consistency and attempts: High above 0.7, Low below 0.45.
type EngagementRules struct{}

func (EngagementRules) Predict(f Features) (string, map[string]float64) {
	score := engagementScore(f)
	high := sigmoid(score - 0.7)
	low := sigmoid(0.45 - score)
	probs := map[string]float64{
		EngagementHigh:   high,
		EngagementLow:    low,
		EngagementMedium: math.Max(0, 1-high-low),
	}
	return argmax(probs), probs
}

func engagementScore(f Features) float64 {
	speed := 0.0
	if f.AvgTimeSeconds > 0 {
		speed = paceSeconds / f.AvgTimeSeconds
	}
	attempts := 0.0
	if f.AvgAttempts > 0 {
		attempts = 1 / f.AvgAttempts
	}
	s := f.Accuracy*0.4 + speed*0.3 + f.Consistency*0.2 + attempts*0.1
	return math.Min(1, math.Max(0, s))
}
