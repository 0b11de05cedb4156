package inference

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/packages/param"

	"benign/pkg/schema"
	"benign/pkg/utils"
)

// OpenAIGenerator implements Generator using OpenAI's official Go SDK.
type OpenAIGenerator struct {
	client     *openai.Client
	apiKey     string
	model      string
	maxTokens  int64
	structured bool
}

// NewOpenAIGenerator creates a new generator instance using the OpenAI client.
func NewOpenAIGenerator(apiKey string, model string, maxTokens int64) *OpenAIGenerator {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIGenerator{
		client:    &client,
		apiKey:    apiKey,
		model:     cmp.Or(model, "gpt-4o"),
		maxTokens: maxTokens,
	}
}

func (o *OpenAIGenerator) ChangeBaseURL(baseURL string) {
	client := openai.NewClient(
		option.WithAPIKey(o.apiKey),
		option.WithBaseURL(baseURL),
	)
	o.client = &client
}

// UseStructuredOutput requests labeled jokes via a JSON schema response
// format. The JSON is rendered back into Setup:/Punchline: marker text so
// the downstream parser sees a uniform input either way.
func (o *OpenAIGenerator) UseStructuredOutput(enabled bool) {
	o.structured = enabled
}

// Generate sends prompt to the chat completion endpoint and returns the
// normalized output.
func (o *OpenAIGenerator) Generate(ctx context.Context, prompt string, temperature float64) (Result, error) {
	params := openai.ChatCompletionNewParams{
		Model: o.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			{
				OfUser: &openai.ChatCompletionUserMessageParam{
					Role: "user",
					Content: openai.ChatCompletionUserMessageParamContentUnion{
						OfString: param.Opt[string]{Value: prompt},
					},
				},
			},
		},
		MaxCompletionTokens: openai.Int(cmp.Or(o.maxTokens, 150)),
		Temperature:         openai.Float(temperature),
		TopP:                openai.Float(1.0),
	}
	if o.structured {
		params.ResponseFormat = schema.LabeledJokeResponseFormat()
	}

	start := time.Now()
	resp, err := o.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return Result{Latency: time.Since(start)}, fmt.Errorf("openai inference error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return Result{Latency: time.Since(start)}, errors.New("no choices returned")
	}
	text := resp.Choices[0].Message.Content
	if text == "" {
		return Result{Latency: time.Since(start)}, errors.New("empty completion content")
	}
	if o.structured {
		text = renderLabeled(text)
	}

	return Result{
		Text:         text,
		Tokens:       resp.Usage.TotalTokens,
		FinishReason: string(resp.Choices[0].FinishReason),
		Latency:      time.Since(start),
	}, nil
}

// renderLabeled converts a structured-output JSON payload back into marker
// text. Undecodable payloads pass through untouched; the parser degrades
// gracefully on them.
func renderLabeled(text string) string {
	var labeled schema.LabeledJoke
	if err := json.Unmarshal([]byte(utils.CleanJSON(text)), &labeled); err != nil {
		return text
	}
	if labeled.Setup == "" && labeled.Punchline == "" {
		return text
	}
	return "Setup: " + labeled.Setup + "\nPunchline: " + labeled.Punchline
}
