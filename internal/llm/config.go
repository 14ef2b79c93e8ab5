package llm

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config selects and configures a provider. Field tags match the "llm"
// section of the config file.
type Config struct {
	// Provider is one of "anthropic", "openai", "gemini", "openrouter" or
	// "mock". Empty means discover from well-known API key variables.
	Provider string `mapstructure:"provider"`

	Anthropic  AnthropicConfig  `mapstructure:"anthropic"`
	OpenAI     OpenAIConfig     `mapstructure:"openai"`
	Gemini     GeminiConfig     `mapstructure:"gemini"`
	OpenRouter OpenRouterConfig `mapstructure:"openrouter"`
	Retry      RetryConfig      `mapstructure:"retry"`

	// Timeout bounds a single attempt.
	Timeout time.Duration `mapstructure:"timeout"`
}

type AnthropicConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

type OpenAIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

type GeminiConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

type OpenRouterConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

// RetryConfig configures exponential backoff for transient failures.
type RetryConfig struct {
	MaxAttempts int           `mapstructure:"max_attempts"`
	InitialWait time.Duration `mapstructure:"initial_wait"`
	MaxWait     time.Duration `mapstructure:"max_wait"`
	Multiplier  float64       `mapstructure:"multiplier"`
}

func DefaultConfig() Config {
	return Config{
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.0-flash-001"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2,
		},
		Timeout: 30 * time.Second,
	}
}

// discoveryOrder lists the vendor API key variables checked when no
// provider is configured, first match wins.
var discoveryOrder = []struct {
	env      string
	provider string
	apply    func(*Config, string)
}{
	{"GEMINI_API_KEY", "gemini", func(c *Config, k string) { c.Gemini.APIKey = k }},
	{"OPENAI_API_KEY", "openai", func(c *Config, k string) { c.OpenAI.APIKey = k }},
	{"ANTHROPIC_API_KEY", "anthropic", func(c *Config, k string) { c.Anthropic.APIKey = k }},
	{"OPENROUTER_API_KEY", "openrouter", func(c *Config, k string) { c.OpenRouter.APIKey = k }},
}

// Resolve returns cfg unchanged when a provider is set. Otherwise it
// checks the vendor key variables and fills in the first one found,
// keeping the rest of cfg. ErrNotConfigured means nothing was found.
func Resolve(cfg Config) (Config, error) {
	if cfg.Provider != "" {
		return cfg, cfg.Validate()
	}
	for _, d := range discoveryOrder {
		if k := os.Getenv(d.env); k != "" {
			cfg.Provider = d.provider
			d.apply(&cfg, k)
			return cfg, nil
		}
	}
	return cfg, ErrNotConfigured
}

// Validate checks that the selected provider has its API key.
func (c Config) Validate() error {
	var key string
	switch c.Provider {
	case "anthropic":
		key = c.Anthropic.APIKey
	case "openai":
		key = c.OpenAI.APIKey
	case "gemini":
		key = c.Gemini.APIKey
	case "openrouter":
		key = c.OpenRouter.APIKey
	case "mock":
		return nil
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if key == "" {
		return fmt.Errorf("an API key is required for the %s provider (set ADAPTIQ_%s_API_KEY)",
			c.Provider, strings.ToUpper(c.Provider))
	}
	return nil
}
