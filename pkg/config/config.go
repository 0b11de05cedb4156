// Package config holds the study configuration: provider credentials, the
// model registry, the experimental grid, and output locations. It is built
// once at startup and passed by reference; the parsing/coding core takes no
// configuration at all.
package config

import (
	"fmt"

	"benign/pkg/inference"
)

// Config is the root study configuration.
type Config struct {
	Keys   KeysConfig   `yaml:"keys"`
	Models ModelsConfig `yaml:"models"`
	Study  StudyConfig  `yaml:"study"`
	Paths  PathsConfig  `yaml:"paths"`
}

// KeysConfig holds provider API keys.
type KeysConfig struct {
	OpenAI    string `yaml:"openai"    env:"OPENAI_API_KEY"`
	Anthropic string `yaml:"anthropic" env:"ANTHROPIC_API_KEY"`
	Google    string `yaml:"google"    env:"GOOGLE_API_KEY"`
}

// ModelsConfig holds the concrete model names behind each registry key and
// the per-joke completion cap shared by all of them.
type ModelsConfig struct {
	GPT4o     string `yaml:"gpt4o"      env:"OPENAI_MODEL"     env-default:"gpt-4o"`
	Claude    string `yaml:"claude"     env:"ANTHROPIC_MODEL"  env-default:"claude-3-5-sonnet-20241022"`
	Gemini    string `yaml:"gemini"     env:"GOOGLE_MODEL"     env-default:"gemini-2.0-flash-exp"`
	MaxTokens int64  `yaml:"max_tokens" env:"MODEL_MAX_TOKENS" env-default:"150"`

	// OpenAIBaseURL points the OpenAI generator at a compatible server,
	// such as a locally hosted model.
	OpenAIBaseURL string `yaml:"openai_base_url" env:"OPENAI_BASE_URL"`
	// Structured requests labeled setup/punchline JSON from providers
	// that support schema-constrained outputs.
	Structured bool `yaml:"structured" env:"OPENAI_STRUCTURED_OUTPUT"`
}

// StudyConfig holds the experimental grid parameters.
type StudyConfig struct {
	Temperatures []float64 `yaml:"temperatures"  env:"PILOT_TEMPERATURES"    env-default:"0.5,0.7,0.9"`
	PerCondition int       `yaml:"per_condition" env:"PILOT_N_PER_CONDITION" env-default:"5"`
}

// PathsConfig holds the experiment directory layout.
type PathsConfig struct {
	DataDir         string `yaml:"data_dir"         env:"DATA_DIR"         env-default:"data"`
	PilotDir        string `yaml:"pilot_dir"        env:"PILOT_DIR"        env-default:"experiments/exp1_generation/pilot"`
	OutputsDir      string `yaml:"outputs_dir"      env:"OUTPUTS_DIR"      env-default:"experiments/exp1_generation/outputs"`
	ExplanationsDir string `yaml:"explanations_dir" env:"EXPLANATIONS_DIR" env-default:"experiments/exp2_explanation/outputs"`
}

// ModelSpec describes one registry entry.
type ModelSpec struct {
	Key         string
	Name        string
	Provider    string
	Description string
	MaxTokens   int64
}

// Registry keys, stable across runs; records reference models by these.
const (
	ModelGPT4o  = "gpt4o"
	ModelClaude = "claude"
	ModelGemini = "gemini"
)

// ModelSpecs returns the registry in study order.
func (c *Config) ModelSpecs() []ModelSpec {
	return []ModelSpec{
		{Key: ModelGPT4o, Name: c.Models.GPT4o, Provider: inference.ProviderOpenAI, Description: "GPT-4o (October 2024)", MaxTokens: c.Models.MaxTokens},
		{Key: ModelClaude, Name: c.Models.Claude, Provider: inference.ProviderAnthropic, Description: "Claude 3.5 Sonnet", MaxTokens: c.Models.MaxTokens},
		{Key: ModelGemini, Name: c.Models.Gemini, Provider: inference.ProviderGoogle, Description: "Gemini 2.0 Flash", MaxTokens: c.Models.MaxTokens},
	}
}

// ModelSpec looks a registry entry up by key.
func (c *Config) ModelSpec(key string) (ModelSpec, bool) {
	for _, spec := range c.ModelSpecs() {
		if spec.Key == key {
			return spec, true
		}
	}
	return ModelSpec{}, false
}

func (c *Config) keyFor(provider string) string {
	switch provider {
	case inference.ProviderOpenAI:
		return c.Keys.OpenAI
	case inference.ProviderAnthropic:
		return c.Keys.Anthropic
	case inference.ProviderGoogle:
		return c.Keys.Google
	default:
		return ""
	}
}

// Generator constructs the backend for a registry key, applying the
// OpenAI-specific overrides (base URL, structured output) when they are set.
func (c *Config) Generator(key string) (inference.Generator, error) {
	spec, ok := c.ModelSpec(key)
	if !ok {
		return nil, fmt.Errorf("config: invalid model %q", key)
	}
	gen, err := inference.New(spec.Provider, c.keyFor(spec.Provider), spec.Name, spec.MaxTokens)
	if err != nil {
		return nil, err
	}
	if o, ok := gen.(*inference.OpenAIGenerator); ok {
		if c.Models.OpenAIBaseURL != "" {
			o.ChangeBaseURL(c.Models.OpenAIBaseURL)
		}
		o.UseStructuredOutput(c.Models.Structured)
	}
	return gen, nil
}

// MissingKeys lists the API-key environment variables that are unset for the
// given registry keys. An empty argument list checks the whole registry.
func (c *Config) MissingKeys(modelKeys ...string) []string {
	if len(modelKeys) == 0 {
		modelKeys = []string{ModelGPT4o, ModelClaude, ModelGemini}
	}
	names := map[string]string{
		inference.ProviderOpenAI:    "OPENAI_API_KEY",
		inference.ProviderAnthropic: "ANTHROPIC_API_KEY",
		inference.ProviderGoogle:    "GOOGLE_API_KEY",
	}
	var missing []string
	seen := make(map[string]bool)
	for _, key := range modelKeys {
		spec, ok := c.ModelSpec(key)
		if !ok {
			continue
		}
		if c.keyFor(spec.Provider) == "" && !seen[spec.Provider] {
			seen[spec.Provider] = true
			missing = append(missing, names[spec.Provider])
		}
	}
	return missing
}

// Validate checks the grid parameters. API keys are checked per run via
// MissingKeys, since analysis-only commands need none of them.
func (c *Config) Validate() error {
	if len(c.Study.Temperatures) == 0 {
		return fmt.Errorf("config: no temperatures configured")
	}
	for _, temp := range c.Study.Temperatures {
		if temp < 0 || temp > 2 {
			return fmt.Errorf("config: temperature %v out of range [0, 2]", temp)
		}
	}
	if c.Study.PerCondition <= 0 {
		return fmt.Errorf("config: per_condition must be > 0")
	}
	if c.Models.MaxTokens <= 0 {
		return fmt.Errorf("config: max_tokens must be > 0")
	}
	return nil
}
