// Package llm is a provider-neutral client for structured JSON generation.
// Concrete providers wrap the Anthropic, OpenAI (and OpenRouter) and Gemini
// SDKs; decorators add retries, per-call timeouts and request logging.
package llm

import (
	"context"
	"encoding/json"
)

// Provider generates a response for a request.
type Provider interface {
	// Generate sends a request and returns the response. When the request
	// carries a Schema, Content is JSON that has been validated against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// Name is the provider family, e.g. "anthropic".
	Name() string

	// ModelID returns the model the provider is configured to use.
	ModelID() string
}

// Request describes what to send to the model.
type Request struct {
	System   string
	Messages []Message

	// Schema, when set, asks the provider for JSON matching it.
	Schema *Schema

	MaxTokens   int
	Temperature float64
}

// Message is one turn of the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema names a JSON Schema definition. Name doubles as the tool or
// schema name sent to providers, so keep it kebab-case.
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

// Response holds the model output.
type Response struct {
	Content json.RawMessage
	Usage   Usage
	Model   string

	// StopReason is normalized to "end" or "max_tokens".
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// SingleTurn builds the common one-message request.
func SingleTurn(system, user string, schema *Schema, maxTokens int, temperature float64) Request {
	return Request{
		System:      system,
		Messages:    []Message{{Role: RoleUser, Content: user}},
		Schema:      schema,
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}
}

// structured validates content against the request schema, if any, and
// assembles the response every provider returns.
func structured(req Request, content json.RawMessage, usage Usage, model, stop string) (*Response, error) {
	if err := validateResponse(req.Schema, content); err != nil {
		return nil, err
	}
	if usage.TotalTokens == 0 {
		usage.TotalTokens = usage.InputTokens + usage.OutputTokens
	}
	return &Response{
		Content:    content,
		Usage:      usage,
		Model:      model,
		StopReason: stop,
	}, nil
}
