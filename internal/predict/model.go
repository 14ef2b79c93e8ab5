package predict

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"golang.org/x/mod/semver"
)

// SupportedModelMajor is the model file major version this build reads.
const SupportedModelMajor = "v1"

// ErrIncompatibleModel is returned for a model file whose version this
// build cannot read.
var ErrIncompatibleModel = errors.New("incompatible model file")

// ModelFile is a pair of multinomial logistic regression heads trained
// offline on Features.Vector.
type ModelFile struct {
	Version    string       `json:"version"`
	Learner    LogisticHead `json:"learner"`
	Engagement LogisticHead `json:"engagement"`
}

// LogisticHead computes softmax(W·x + b). Weights has one row per class,
// each row NumFeatures long.
type LogisticHead struct {
	Classes []string    `json:"classes"`
	Weights [][]float64 `json:"weights"`
	Bias    []float64   `json:"bias"`
}

func (h LogisticHead) Predict(f Features) (string, map[string]float64) {
	x := f.Vector()
	logits := make([]float64, len(h.Classes))
	maxLogit := math.Inf(-1)
	for i := range h.Classes {
		z := h.Bias[i]
		for j, w := range h.Weights[i] {
			z += w * x[j]
		}
		logits[i] = z
		maxLogit = math.Max(maxLogit, z)
	}

	var sum float64
	for i, z := range logits {
		logits[i] = math.Exp(z - maxLogit)
		sum += logits[i]
	}
	probs := make(map[string]float64, len(h.Classes))
	for i, c := range h.Classes {
		probs[c] = logits[i] / sum
	}
	return argmax(probs), probs
}

func (h LogisticHead) check(name string, labels []string) error {
	n := len(h.Classes)
	if n == 0 {
		return fmt.Errorf("%s: no classes", name)
	}
	if len(h.Weights) != n || len(h.Bias) != n {
		return fmt.Errorf("%s: %d classes but %d weight rows and %d biases", name, n, len(h.Weights), len(h.Bias))
	}
	for i, c := range h.Classes {
		if !contains(labels, c) {
			return fmt.Errorf("%s: unknown class %q", name, c)
		}
		if len(h.Weights[i]) != NumFeatures {
			return fmt.Errorf("%s: class %q has %d weights, want %d", name, c, len(h.Weights[i]), NumFeatures)
		}
	}
	return nil
}

// canonicalVersion accepts "1.2.0" as well as "v1.2.0".
func canonicalVersion(v string) string {
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}

// Validate checks the version and the shape of both heads.
func (m *ModelFile) Validate() error {
	v := canonicalVersion(m.Version)
	if !semver.IsValid(v) {
		return fmt.Errorf("%w: invalid version %q", ErrIncompatibleModel, m.Version)
	}
	if semver.Major(v) != SupportedModelMajor {
		return fmt.Errorf("%w: version %s, supported %s.x", ErrIncompatibleModel, m.Version, SupportedModelMajor)
	}
	return errors.Join(
		m.Learner.check("learner", LearnerTypes),
		m.Engagement.check("engagement", EngagementLevels),
	)
}

// LoadModel reads and validates a model file.
func LoadModel(path string) (*ModelFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model: %w", err)
	}
	var m ModelFile
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse model %s: %w", path, err)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("model %s: %w", path, err)
	}
	return &m, nil
}
