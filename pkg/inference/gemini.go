package inference

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"time"

	"google.golang.org/genai"
)

// GeminiGenerator implements Generator using the Google GenAI SDK.
type GeminiGenerator struct {
	client    *genai.Client
	model     string
	maxTokens int64
}

// NewGeminiGenerator creates a new generator instance using the GenAI client.
func NewGeminiGenerator(apiKey string, model string, maxTokens int64) (*GeminiGenerator, error) {
	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, err
	}
	return &GeminiGenerator{
		client:    client,
		model:     cmp.Or(model, "gemini-2.0-flash-exp"),
		maxTokens: maxTokens,
	}, nil
}

// Generate sends prompt to the GenerateContent endpoint and returns the
// normalized output. Gemini does not always report token usage; Tokens is
// zero when the usage metadata is absent.
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string, temperature float64) (Result, error) {
	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(temperature)),
		MaxOutputTokens: int32(cmp.Or(g.maxTokens, 150)),
	}

	start := time.Now()
	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), config)
	if err != nil {
		return Result{Latency: time.Since(start)}, fmt.Errorf("failed to generate content: %w", err)
	}

	text := result.Text()
	if text == "" {
		return Result{Latency: time.Since(start)}, errors.New("empty completion content")
	}

	var tokens int64
	if result.UsageMetadata != nil {
		tokens = int64(result.UsageMetadata.TotalTokenCount)
	}

	return Result{
		Text:         text,
		Tokens:       tokens,
		FinishReason: "complete",
		Latency:      time.Since(start),
	}, nil
}
