package inference

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// AnthropicGenerator implements Generator using the Anthropic Messages API.
type AnthropicGenerator struct {
	client    *anthropic.Client
	model     string
	maxTokens int64
}

// NewAnthropicGenerator creates a new generator instance using the Anthropic client.
func NewAnthropicGenerator(apiKey string, model string, maxTokens int64) *AnthropicGenerator {
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &AnthropicGenerator{
		client:    &client,
		model:     cmp.Or(model, "claude-3-5-sonnet-20241022"),
		maxTokens: maxTokens,
	}
}

// Generate sends prompt to the messages endpoint and returns the normalized
// output. Reported tokens are input plus output, mirroring how the other
// providers report totals.
func (a *AnthropicGenerator) Generate(ctx context.Context, prompt string, temperature float64) (Result, error) {
	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(a.model),
		MaxTokens:   cmp.Or(a.maxTokens, 150),
		Temperature: anthropic.Float(temperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	}

	start := time.Now()
	msg, err := a.client.Messages.New(ctx, params)
	if err != nil {
		return Result{Latency: time.Since(start)}, fmt.Errorf("anthropic inference error: %w", err)
	}

	var parts []string
	for _, block := range msg.Content {
		if block.Text != "" {
			parts = append(parts, block.Text)
		}
	}
	text := strings.Join(parts, "\n")
	if text == "" {
		return Result{Latency: time.Since(start)}, errors.New("empty completion content")
	}

	return Result{
		Text:         text,
		Tokens:       msg.Usage.InputTokens + msg.Usage.OutputTokens,
		FinishReason: string(msg.StopReason),
		Latency:      time.Since(start),
	}, nil
}
