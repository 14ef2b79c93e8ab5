package predict

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"text/template"

	"github.com/abhisek/adaptiq/internal/llm"
	"github.com/abhisek/adaptiq/internal/session"
)

// ProfileSchema constrains the LLM's learner profile.
var ProfileSchema = &llm.Schema{
	Name:        "learner-profile",
	Description: "Learner type and engagement level for a quiz taker",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"learner_type": map[string]any{
				"type": "string",
				"enum": LearnerTypes,
			},
			"engagement_level": map[string]any{
				"type": "string",
				"enum": EngagementLevels,
			},
			"rationale": map[string]any{
				"type":        "string",
				"description": "One or two sentences addressed to the learner",
			},
		},
		"required":             []string{"learner_type", "engagement_level", "rationale"},
		"additionalProperties": false,
	},
}

const profileSystemPrompt = `You assess learners in an adaptive programming quiz.
Classify the learner from their recent results. Learner types:
- Advanced: high accuracy, answers quickly.
- Moderate: good accuracy and consistent.
- Struggling: low accuracy or needs many attempts.
- Balanced: anything in between.
Engagement is High, Medium or Low. Be encouraging in the rationale.`

var profilePrompt = template.Must(template.New("profile").Parse(
	`Recent quizzes (oldest first):
{{range .History}}- {{.Topic}} ({{.Difficulty}}): {{.Correct}}/{{.Total}}
{{end}}
Derived features:
- accuracy: {{printf "%.2f" .F.Accuracy}}
- questions answered: {{printf "%.0f" .F.TotalQuestions}}
- estimated seconds per question: {{printf "%.1f" .F.AvgTimeSeconds}}
- estimated attempts per question: {{printf "%.2f" .F.AvgAttempts}}
- consistency: {{printf "%.2f" .F.Consistency}}
Local model guess: {{.Local.LearnerType}} / {{.Local.Engagement}}`))

type profileOutput struct {
	LearnerType string `json:"learner_type"`
	Engagement  string `json:"engagement_level"`
	Rationale   string `json:"rationale"`
}

// Profiler asks an LLM to confirm or revise the local prediction.
type Profiler struct {
	provider    llm.Provider
	maxTokens   int
	temperature float64
}

func NewProfiler(p llm.Provider) *Profiler {
	return &Profiler{provider: p, maxTokens: 256, temperature: 0.2}
}

// Refine returns a copy of local with the LLM's labels and rationale.
func (p *Profiler) Refine(ctx context.Context, history []session.Summary, local Prediction) (Prediction, error) {
	ctx = llm.WithPurpose(ctx, "learner-profile")

	recent := history
	if len(recent) > 10 {
		recent = recent[len(recent)-10:]
	}
	var buf bytes.Buffer
	err := profilePrompt.Execute(&buf, struct {
		History []session.Summary
		F       Features
		Local   Prediction
	}{recent, local.Features, local})
	if err != nil {
		return local, fmt.Errorf("build profile prompt: %w", err)
	}

	resp, err := p.provider.Generate(ctx, llm.SingleTurn(profileSystemPrompt, buf.String(), ProfileSchema, p.maxTokens, p.temperature))
	if err != nil {
		return local, fmt.Errorf("llm profile: %w", err)
	}
	var out profileOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return local, fmt.Errorf("parse profile response: %w", err)
	}

	refined := local
	refined.LearnerType = out.LearnerType
	refined.Engagement = out.Engagement
	refined.Rationale = out.Rationale
	refined.Source = SourceLLM
	return refined, nil
}
