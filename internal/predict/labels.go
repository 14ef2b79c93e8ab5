package predict

import "sort"

const (
	Advanced   = "Advanced"
	Balanced   = "Balanced"
	Moderate   = "Moderate"
	Struggling = "Struggling"
)

const (
	EngagementHigh   = "High"
	EngagementLow    = "Low"
	EngagementMedium = "Medium"
)

// LearnerTypes and EngagementLevels are the label sets, sorted.
var (
	LearnerTypes     = []string{Advanced, Balanced, Moderate, Struggling}
	EngagementLevels = []string{EngagementHigh, EngagementLow, EngagementMedium}
)

// Head predicts one label and the probability of every label in its set.
type Head interface {
	Predict(f Features) (string, map[string]float64)
}

// argmax returns the most probable label. Ties go to the first label in
// sorted order so results are stable.
func argmax(probs map[string]float64) string {
	keys := make([]string, 0, len(probs))
	for k := range probs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	best := ""
	bestP := -1.0
	for _, k := range keys {
		if probs[k] > bestP {
			best, bestP = k, probs[k]
		}
	}
	return best
}

func contains(set []string, label string) bool {
	for _, s := range set {
		if s == label {
			return true
		}
	}
	return false
}
