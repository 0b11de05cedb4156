package study

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/segmentio/ksuid"

	"benign/pkg/config"
	"benign/pkg/inference"
	"benign/pkg/joke"
	"benign/pkg/prompts"
	"benign/pkg/utils"
)

// Runner drives the experimental grid against a set of generators keyed by
// registry model key.
type Runner struct {
	cfg        *config.Config
	generators map[string]inference.Generator
}

// NewRunner builds a runner over generators for the given model keys.
func NewRunner(cfg *config.Config, modelKeys []string) (*Runner, error) {
	generators := make(map[string]inference.Generator, len(modelKeys))
	for _, key := range modelKeys {
		gen, err := cfg.Generator(key)
		if err != nil {
			return nil, err
		}
		generators[key] = gen
	}
	return &Runner{cfg: cfg, generators: generators}, nil
}

// ConditionID builds the deterministic grid key for one condition.
func ConditionID(model, category string, temperature float64, idx int) string {
	return fmt.Sprintf("%s_%s_t%s_%d",
		model, category, strconv.FormatFloat(temperature, 'g', -1, 64), idx)
}

// GridSize returns the number of generations one full run performs. Each
// category contributes its actual prompt count, which is capped by the
// number of novel contexts it defines.
func (r *Runner) GridSize(categories []string) int {
	promptCount := 0
	for _, category := range categories {
		ps, err := prompts.ForCategory(category, r.cfg.Study.PerCondition)
		if err != nil {
			continue
		}
		promptCount += len(ps)
	}
	return len(r.generators) * len(r.cfg.Study.Temperatures) * promptCount
}

// EstimateTokens sums the prompt tokens of one full run, for the pre-run
// cost preview.
func (r *Runner) EstimateTokens(categories []string) (int, error) {
	var all []string
	for _, category := range categories {
		ps, err := prompts.ForCategory(category, r.cfg.Study.PerCondition)
		if err != nil {
			return 0, err
		}
		for range r.cfg.Study.Temperatures {
			all = append(all, ps...)
		}
	}
	return utils.EstimateTokens(all) * len(r.generators), nil
}

// Run executes the full model × category × temperature × prompt grid.
// Generation failures are recorded on the result, never returned; the only
// error paths are an invalid category and context cancellation, both of
// which return the records produced so far.
func (r *Runner) Run(ctx context.Context, modelOrder []string, categories []string) ([]Generation, error) {
	var results []Generation

	for _, modelKey := range modelOrder {
		gen, ok := r.generators[modelKey]
		if !ok {
			continue
		}
		spec, _ := r.cfg.ModelSpec(modelKey)

		for _, category := range categories {
			ps, err := prompts.ForCategory(category, r.cfg.Study.PerCondition)
			if err != nil {
				return results, err
			}

			for _, temp := range r.cfg.Study.Temperatures {
				for idx, prompt := range ps {
					if err := ctx.Err(); err != nil {
						return results, err
					}
					results = append(results, r.generateOne(ctx, gen, spec, category, temp, idx, prompt))
				}
			}
		}
	}

	return results, nil
}

func (r *Runner) generateOne(ctx context.Context, gen inference.Generator, spec config.ModelSpec, category string, temp float64, idx int, prompt string) Generation {
	record := Generation{
		RecordID:      ksuid.New().String(),
		ConditionID:   ConditionID(spec.Key, category, temp, idx),
		Timestamp:     time.Now(),
		Model:         spec.Key,
		ModelFullName: spec.Name,
		Category:      category,
		Temperature:   temp,
		PromptIndex:   idx,
		Prompt:        prompt,
	}

	result, err := gen.Generate(ctx, prompt, temp)
	record.API = APIInfo{
		Tokens:         result.Tokens,
		LatencySeconds: result.Latency.Seconds(),
		FinishReason:   result.FinishReason,
	}
	if err != nil {
		record.API.Error = err.Error()
		log.Warn("generation failed", "id", record.ConditionID, "error", err)
		return record
	}

	record.RawResponse = result.Text
	record.ParsedJoke = joke.Parse(result.Text)
	record.Metrics = record.ParsedJoke.Metrics()
	log.Debug("generated joke", "id", record.ConditionID, "words", record.Metrics.TotalWords, "latency", result.Latency)
	return record
}

// SampleAcrossCategories picks up to n usable jokes spread evenly over the
// study categories, preserving input order within each. Failed and
// unparseable generations are dropped before any quota is counted, so they
// never displace a usable joke. n <= 0 returns every usable joke.
func SampleAcrossCategories(jokes []Generation, categories []string, n int) []Generation {
	var usable []Generation
	for _, j := range jokes {
		if j.Succeeded() && j.FullText != "" {
			usable = append(usable, j)
		}
	}
	if n <= 0 || len(categories) == 0 {
		return usable
	}
	perCategory := n / len(categories)
	var sampled []Generation
	for _, category := range categories {
		taken := 0
		for _, j := range usable {
			if j.Category != category || taken >= perCategory {
				continue
			}
			sampled = append(sampled, j)
			taken++
		}
	}
	return sampled
}

// CollectExplanations asks each explaining model why each joke is funny.
// Explanation calls run at low temperature since this is an analytical task.
func (r *Runner) CollectExplanations(ctx context.Context, jokes []Generation, explainingModels []string) ([]Explanation, error) {
	const analyticTemperature = 0.3

	var results []Explanation
	for _, j := range jokes {
		if !j.Succeeded() || j.FullText == "" {
			continue
		}
		for _, modelKey := range explainingModels {
			gen, ok := r.generators[modelKey]
			if !ok {
				continue
			}
			if err := ctx.Err(); err != nil {
				return results, err
			}

			record := Explanation{
				RecordID:        ksuid.New().String(),
				JokeID:          j.ConditionID,
				JokeCategory:    j.Category,
				JokeGenerator:   j.Model,
				JokeTemperature: j.Temperature,
				ExplainingModel: modelKey,
				Timestamp:       time.Now(),
			}

			result, err := gen.Generate(ctx, prompts.Explanation(j.FullText), analyticTemperature)
			if err != nil {
				record.Error = err.Error()
				log.Warn("explanation failed", "joke", j.ConditionID, "model", modelKey, "error", err)
			} else {
				record.Explanation = result.Text
				record.Success = true
				record.Tokens = result.Tokens
				record.LatencySeconds = result.Latency.Seconds()
			}
			results = append(results, record)
		}
	}
	return results, nil
}

// ProbeSurprise asks proberKey to predict each joke's punchline from its
// setup and scores how far the actual punchline lands from the prediction.
func (r *Runner) ProbeSurprise(ctx context.Context, jokes []Generation, proberKey string) ([]Surprise, error) {
	gen, ok := r.generators[proberKey]
	if !ok {
		return nil, fmt.Errorf("study: no generator for prober %q", proberKey)
	}

	var results []Surprise
	for _, j := range jokes {
		if !j.Succeeded() || j.Setup == "" || j.Punchline == "" {
			continue
		}
		if err := ctx.Err(); err != nil {
			return results, err
		}

		record := Surprise{
			JokeID:      j.ConditionID,
			Model:       j.Model,
			Category:    j.Category,
			Temperature: j.Temperature,
		}

		result, err := gen.Generate(ctx, prompts.PunchlinePrediction(j.Setup), 0.7)
		if err != nil {
			record.Error = err.Error()
			log.Warn("surprise probe failed", "joke", j.ConditionID, "error", err)
			results = append(results, record)
			continue
		}

		predicted := result.Text
		accuracy := utils.OverlapRatio(predicted, j.Punchline)
		record.PredictedPunchline = predicted
		record.PunchlineOverlapWithSetup = utils.ContainmentRatio(j.Punchline, j.Setup)
		record.PredictionAccuracy = accuracy
		record.PredictionSimilarity = utils.SequenceSimilarity(j.Punchline, predicted)
		record.SurpriseScore = 1 - accuracy
		record.Success = true
		results = append(results, record)
	}
	return results, nil
}
