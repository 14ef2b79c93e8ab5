package llm

// Friendly model aliases per provider. Anything not listed is passed
// through as a literal model id.
var (
	anthropicModels = map[string]string{
		"claude-sonnet": "claude-sonnet-4-5-20250929",
		"claude-haiku":  "claude-haiku-4-5-20251001",
	}
	openaiModels = map[string]string{
		"gpt-4o":      "gpt-4o",
		"gpt-4o-mini": "gpt-4o-mini",
	}
	geminiModels = map[string]string{
		"gemini-flash": "gemini-2.0-flash",
		"gemini-pro":   "gemini-2.5-pro",
	}
)

func resolveModel(name string, aliases map[string]string) string {
	if id, ok := aliases[name]; ok {
		return id
	}
	return name
}

// ModelCost holds USD prices per million tokens.
type ModelCost struct {
	InputPerMTok  float64
	OutputPerMTok float64
}

// Cost returns the USD cost of the given token counts.
func (c ModelCost) Cost(inputTokens, outputTokens int) float64 {
	return float64(inputTokens)*c.InputPerMTok/1_000_000 +
		float64(outputTokens)*c.OutputPerMTok/1_000_000
}

// LookupCost returns the pricing for a model id, or nil if unknown.
func LookupCost(modelID string) *ModelCost {
	if c, ok := modelCosts[modelID]; ok {
		return &c
	}
	return nil
}

// Prices from models.dev, 2026-02.
var modelCosts = map[string]ModelCost{
	"claude-haiku-4-5":            {1, 5},
	"claude-haiku-4-5-20251001":   {1, 5},
	"claude-sonnet-4-5":           {3, 15},
	"claude-sonnet-4-5-20250929":  {3, 15},
	"claude-sonnet-4-20250514":    {3, 15},
	"gpt-4o":                      {2.5, 10},
	"gpt-4o-mini":                 {0.15, 0.6},
	"gpt-4.1":                     {2, 8},
	"gpt-4.1-mini":                {0.4, 1.6},
	"gemini-2.0-flash":            {0.1, 0.4},
	"gemini-2.5-flash":            {0.3, 2.5},
	"gemini-2.5-pro":              {1.25, 10},
	"google/gemini-2.0-flash-001": {0.1, 0.4},
	"openai/gpt-4o-mini":          {0.15, 0.6},
}
