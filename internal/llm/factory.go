package llm

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/adaptiq/internal/store"
)

// NewProvider builds the configured provider and wraps it as
// retry → timeout → logging → base, so every attempt is recorded.
// repo and log may be nil.
func NewProvider(ctx context.Context, cfg Config, repo store.EventRepo, log logrus.FieldLogger) (Provider, error) {
	var (
		base Provider
		err  error
	)
	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		base = NewMockProvider()
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	p := WithLogging(base, repo, log)
	p = WithTimeout(p, cfg.Timeout)
	return WithRetry(p, cfg.Retry), nil
}

// FromConfig resolves cfg and builds the provider. Callers treat
// ErrNotConfigured as "run without AI features".
func FromConfig(ctx context.Context, cfg Config, repo store.EventRepo, log logrus.FieldLogger) (Provider, error) {
	resolved, err := Resolve(cfg)
	if err != nil {
		return nil, err
	}
	return NewProvider(ctx, resolved, repo, log)
}
