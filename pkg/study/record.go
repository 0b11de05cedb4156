// Package study runs the experimental grid and aggregates its outputs: joke
// generation records, model explanations, and the derived analyses.
package study

import (
	"time"

	"benign/pkg/joke"
)

// ManualRatings holds the human rating dimensions, all on a 1-7 scale.
// Nil means not yet rated; a rating session fills them in place.
type ManualRatings struct {
	Funniness           *int   `json:"funniness"`
	CategoryFit         *int   `json:"category_fit"`
	StructuralCoherence *int   `json:"structural_coherence"`
	Originality         *int   `json:"originality"`
	Notes               string `json:"notes"`
}

// Complete reports whether every dimension has been rated.
func (m ManualRatings) Complete() bool {
	return m.Funniness != nil && m.CategoryFit != nil &&
		m.StructuralCoherence != nil && m.Originality != nil
}

// APIInfo records provider-call metadata for one generation.
type APIInfo struct {
	Tokens         int64   `json:"tokens"`
	LatencySeconds float64 `json:"latency_seconds"`
	FinishReason   string  `json:"finish_reason"`
	Error          string  `json:"error,omitempty"`
}

// Generation is one cell of the model × category × temperature × prompt
// grid. Failed calls are recorded too, with the error string in APIInfo and
// an empty response; they are never fatal to a run.
type Generation struct {
	// RecordID is globally unique; ConditionID is the deterministic
	// model_category_tX_idx key the analyses join on.
	RecordID    string    `json:"record_id"`
	ConditionID string    `json:"id"`
	Timestamp   time.Time `json:"timestamp"`

	Model         string  `json:"model"`
	ModelFullName string  `json:"model_full_name"`
	Category      string  `json:"category"`
	Temperature   float64 `json:"temperature"`
	PromptIndex   int     `json:"prompt_index"`

	Prompt      string `json:"prompt"`
	RawResponse string `json:"raw_response"`

	joke.ParsedJoke
	Metrics joke.Metrics `json:"metrics"`

	API     APIInfo       `json:"api_info"`
	Ratings ManualRatings `json:"manual_ratings"`
}

// Succeeded reports whether the provider returned text for this condition.
func (g Generation) Succeeded() bool {
	return g.API.Error == "" && g.RawResponse != ""
}

// Explanation is one model's account of why a joke is funny, collected in
// the second experiment. FeatureCodes over it are computed at analysis time.
type Explanation struct {
	RecordID        string    `json:"record_id"`
	JokeID          string    `json:"joke_id"`
	JokeCategory    string    `json:"joke_category"`
	JokeGenerator   string    `json:"joke_generator_model"`
	JokeTemperature float64   `json:"joke_temperature"`
	ExplainingModel string    `json:"explaining_model"`
	Explanation     string    `json:"explanation"`
	Success         bool      `json:"success"`
	Tokens          int64     `json:"tokens"`
	LatencySeconds  float64   `json:"latency_seconds"`
	Error           string    `json:"error,omitempty"`
	Timestamp       time.Time `json:"timestamp"`
}

// Surprise is the punchline-predictability probe for one joke: a model
// predicts the punchline from the setup alone, and the distance between
// prediction and actual punchline becomes the surprise score.
type Surprise struct {
	JokeID      string  `json:"id"`
	Model       string  `json:"model"`
	Category    string  `json:"category"`
	Temperature float64 `json:"temperature"`

	PredictedPunchline        string  `json:"predicted_punchline"`
	PunchlineOverlapWithSetup float64 `json:"punchline_overlap_with_setup"`
	PredictionAccuracy        float64 `json:"prediction_accuracy"`
	PredictionSimilarity      float64 `json:"prediction_similarity"`
	SurpriseScore             float64 `json:"surprise_score"`

	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}
