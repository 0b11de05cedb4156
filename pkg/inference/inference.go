// Package inference provides a provider-neutral text-generation capability
// with one implementation per backend. Providers differ in request/response
// shape only; everything downstream consumes the same Result.
package inference

import (
	"context"
	"fmt"
	"time"
)

// Result is the normalized outcome of one generation call.
// Tokens is zero when the backend does not report usage.
type Result struct {
	Text         string        `json:"text"`
	Tokens       int64         `json:"tokens"`
	FinishReason string        `json:"finish_reason"`
	Latency      time.Duration `json:"latency"`
}

// Generator runs a single prompt against one text-generation backend.
type Generator interface {
	Generate(ctx context.Context, prompt string, temperature float64) (Result, error)
}

// Provider keys accepted by New, matching the model registry.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderGoogle    = "google"
)

// New builds the Generator for a provider key. maxTokens caps completion
// length per call; model may be empty to use the provider default.
func New(provider, apiKey, model string, maxTokens int64) (Generator, error) {
	switch provider {
	case ProviderOpenAI:
		return NewOpenAIGenerator(apiKey, model, maxTokens), nil
	case ProviderAnthropic:
		return NewAnthropicGenerator(apiKey, model, maxTokens), nil
	case ProviderGoogle:
		return NewGeminiGenerator(apiKey, model, maxTokens)
	default:
		return nil, fmt.Errorf("inference: unknown provider %q", provider)
	}
}
