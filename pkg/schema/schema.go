// Package schema defines the structured-output contract for labeled jokes.
package schema

import (
	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go/v3"
)

func generateSchema[T any]() any {
	r := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	return r.Reflect(v)
}

// LabeledJoke is the JSON shape requested from providers that support
// structured outputs. It mirrors the Setup:/Punchline: marker format the
// free-text path asks for.
type LabeledJoke struct {
	Setup     string `json:"setup" jsonschema_description:"The portion of the joke establishing context and expectation"`
	Punchline string `json:"punchline" jsonschema_description:"The portion resolving or subverting the setup's expectation"`
}

var LabeledJokeSchema = generateSchema[LabeledJoke]()

// LabeledJokeResponseFormat builds the strict JSON-schema response format
// for chat completion requests.
func LabeledJokeResponseFormat() openai.ChatCompletionNewParamsResponseFormatUnion {
	p := openai.ResponseFormatJSONSchemaJSONSchemaParam{
		Name:        "labeled_joke",
		Description: openai.String("A single joke split into setup and punchline"),
		Schema:      LabeledJokeSchema,
		Strict:      openai.Bool(true),
	}
	return openai.ChatCompletionNewParamsResponseFormatUnion{
		OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{JSONSchema: p},
	}
}
