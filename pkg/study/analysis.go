package study

import (
	"benign/pkg/features"
	"benign/pkg/joke"
	"benign/pkg/prompts"
	"benign/pkg/utils"
)

// StructuralRow is the per-joke slice of the structural-validity table.
type StructuralRow struct {
	ID          string  `json:"id"`
	Model       string  `json:"model"`
	Category    string  `json:"category"`
	Temperature float64 `json:"temperature"`
	joke.Metrics
	joke.Structure
}

// AnalyzeStructure computes the structural table over successful
// generations; failed conditions are excluded, matching the study design.
func AnalyzeStructure(gens []Generation) []StructuralRow {
	var rows []StructuralRow
	for _, g := range gens {
		if !g.Succeeded() {
			continue
		}
		rows = append(rows, StructuralRow{
			ID:          g.ConditionID,
			Model:       g.Model,
			Category:    g.Category,
			Temperature: g.Temperature,
			Metrics:     g.Metrics,
			Structure:   g.ParsedJoke.Structure(),
		})
	}
	return rows
}

// StructuralSummary aggregates the structural table.
type StructuralSummary struct {
	Total            int                `json:"total"`
	ValidRate        float64            `json:"valid_rate"`
	WithinTargetRate float64            `json:"within_target_rate"`
	QuestionRate     float64            `json:"question_rate"`
	MeanWords        float64            `json:"mean_words"`
	SDWords          float64            `json:"sd_words"`
	ValidByModel     map[string]float64 `json:"valid_by_model"`
	ValidByCategory  map[string]float64 `json:"valid_by_category"`
}

// SummarizeStructure folds the structural table into overall and per-group
// validity rates.
func SummarizeStructure(rows []StructuralRow) StructuralSummary {
	summary := StructuralSummary{
		Total:           len(rows),
		ValidByModel:    make(map[string]float64),
		ValidByCategory: make(map[string]float64),
	}

	var valid, target, question []bool
	var words []float64
	for _, row := range rows {
		valid = append(valid, row.Valid)
		target = append(target, row.WithinTargetLength)
		question = append(question, row.HasQuestion)
		words = append(words, float64(row.TotalWords))
	}
	summary.ValidRate = Proportion(valid)
	summary.WithinTargetRate = Proportion(target)
	summary.QuestionRate = Proportion(question)
	summary.MeanWords = Mean(words)
	summary.SDWords = StdDev(words)

	for model, group := range GroupBy(rows, func(r StructuralRow) string { return r.Model }) {
		flags := make([]bool, len(group))
		for i, r := range group {
			flags[i] = r.Valid
		}
		summary.ValidByModel[model] = Proportion(flags)
	}
	for category, group := range GroupBy(rows, func(r StructuralRow) string { return r.Category }) {
		flags := make([]bool, len(group))
		for i, r := range group {
			flags[i] = r.Valid
		}
		summary.ValidByCategory[category] = Proportion(flags)
	}
	return summary
}

// DuplicatePair records two generations whose texts are near-identical.
type DuplicatePair struct {
	A          string  `json:"a"`
	B          string  `json:"b"`
	Similarity float64 `json:"similarity"`
}

// NearDuplicates flags pairs of successful generations in the same category
// whose normalized edit similarity meets the threshold. Repeated jokes
// inflate validity rates without adding independent observations.
func NearDuplicates(gens []Generation, threshold float64) []DuplicatePair {
	var ok []Generation
	for _, g := range gens {
		if g.Succeeded() {
			ok = append(ok, g)
		}
	}

	var pairs []DuplicatePair
	for i := range ok {
		for j := i + 1; j < len(ok); j++ {
			if ok[i].Category != ok[j].Category {
				continue
			}
			sim := utils.Similarity(ok[i].FullText, ok[j].FullText)
			if sim >= threshold {
				pairs = append(pairs, DuplicatePair{
					A:          ok[i].ConditionID,
					B:          ok[j].ConditionID,
					Similarity: sim,
				})
			}
		}
	}
	return pairs
}

// FeatureRow is the per-explanation slice of the feature-coding table.
type FeatureRow struct {
	JokeID          string         `json:"joke_id"`
	JokeCategory    string         `json:"joke_category"`
	JokeGenerator   string         `json:"joke_generator"`
	ExplainingModel string         `json:"explaining_model"`
	Codes           features.Codes `json:"codes"`
}

// AnalyzeExplanations codes each successful explanation against the coder's
// keyword configuration.
func AnalyzeExplanations(exps []Explanation, coder *features.Coder) []FeatureRow {
	var rows []FeatureRow
	for _, e := range exps {
		if !e.Success {
			continue
		}
		rows = append(rows, FeatureRow{
			JokeID:          e.JokeID,
			JokeCategory:    e.JokeCategory,
			JokeGenerator:   e.JokeGenerator,
			ExplainingModel: e.ExplainingModel,
			Codes:           coder.Code(e.Explanation),
		})
	}
	return rows
}

// KindStats is the citation rate and mean keyword count for one feature
// kind within one group of explanations.
type KindStats struct {
	CitationRate float64 `json:"citation_rate"`
	MeanCount    float64 `json:"mean_count"`
}

// FeatureSummary aggregates the feature table for the hybrid-hypothesis
// comparisons.
type FeatureSummary struct {
	Total      int                             `json:"total"`
	ByCategory map[string]map[string]KindStats `json:"by_category"`
	ByModel    map[string]map[string]float64   `json:"by_model"`

	// The two critical comparisons: do physical jokes draw embodied
	// explanations, and linguistic jokes semantic ones?
	PhysicalEmbodiedRate   float64 `json:"physical_embodied_rate"`
	LinguisticSemanticRate float64 `json:"linguistic_semantic_rate"`
}

// SummarizeFeatures folds the feature table into per-category and per-model
// citation statistics over the given kinds.
func SummarizeFeatures(rows []FeatureRow, kinds []string) FeatureSummary {
	summary := FeatureSummary{
		Total:      len(rows),
		ByCategory: make(map[string]map[string]KindStats),
		ByModel:    make(map[string]map[string]float64),
	}

	for category, group := range GroupBy(rows, func(r FeatureRow) string { return r.JokeCategory }) {
		stats := make(map[string]KindStats, len(kinds))
		for _, kind := range kinds {
			flags := make([]bool, len(group))
			counts := make([]float64, len(group))
			for i, r := range group {
				flags[i] = r.Codes.Has(kind)
				counts[i] = float64(r.Codes.Count(kind))
			}
			stats[kind] = KindStats{CitationRate: Proportion(flags), MeanCount: Mean(counts)}
		}
		summary.ByCategory[category] = stats
	}

	for model, group := range GroupBy(rows, func(r FeatureRow) string { return r.ExplainingModel }) {
		rates := make(map[string]float64, len(kinds))
		for _, kind := range kinds {
			flags := make([]bool, len(group))
			for i, r := range group {
				flags[i] = r.Codes.Has(kind)
			}
			rates[kind] = Proportion(flags)
		}
		summary.ByModel[model] = rates
	}

	if stats, ok := summary.ByCategory[prompts.Physical]; ok {
		summary.PhysicalEmbodiedRate = stats[features.Embodied].CitationRate
	}
	if stats, ok := summary.ByCategory[prompts.Linguistic]; ok {
		summary.LinguisticSemanticRate = stats[features.Semantic].CitationRate
	}
	return summary
}

// RatingsSummary aggregates the manual ratings and correlates funniness
// with the computational measures.
type RatingsSummary struct {
	Rated               int                `json:"rated"`
	MeanFunniness       float64            `json:"mean_funniness"`
	SDFunniness         float64            `json:"sd_funniness"`
	FunninessByCategory map[string]float64 `json:"funniness_by_category"`
	FunninessByModel    map[string]float64 `json:"funniness_by_model"`

	FunninessSurpriseR  float64 `json:"funniness_surprise_r"`
	FunninessCoherenceR float64 `json:"funniness_coherence_r"`
}

// SummarizeRatings folds rated generations, joining surprise scores by
// condition ID for the correlation.
func SummarizeRatings(gens []Generation, surprises []Surprise) RatingsSummary {
	summary := RatingsSummary{
		FunninessByCategory: make(map[string]float64),
		FunninessByModel:    make(map[string]float64),
	}

	surpriseByID := make(map[string]float64, len(surprises))
	for _, s := range surprises {
		if s.Success {
			surpriseByID[s.JokeID] = s.SurpriseScore
		}
	}

	var rated []Generation
	var funniness []float64
	for _, g := range gens {
		if g.Ratings.Funniness == nil {
			continue
		}
		rated = append(rated, g)
		funniness = append(funniness, float64(*g.Ratings.Funniness))
	}
	summary.Rated = len(rated)
	summary.MeanFunniness = Mean(funniness)
	summary.SDFunniness = StdDev(funniness)

	for category, group := range GroupBy(rated, func(g Generation) string { return g.Category }) {
		vals := make([]float64, len(group))
		for i, g := range group {
			vals[i] = float64(*g.Ratings.Funniness)
		}
		summary.FunninessByCategory[category] = Mean(vals)
	}
	for model, group := range GroupBy(rated, func(g Generation) string { return g.Model }) {
		vals := make([]float64, len(group))
		for i, g := range group {
			vals[i] = float64(*g.Ratings.Funniness)
		}
		summary.FunninessByModel[model] = Mean(vals)
	}

	var fWithSurprise, surprise []float64
	var fWithCoherence, coherence []float64
	for _, g := range rated {
		if s, ok := surpriseByID[g.ConditionID]; ok {
			fWithSurprise = append(fWithSurprise, float64(*g.Ratings.Funniness))
			surprise = append(surprise, s)
		}
		if g.Ratings.StructuralCoherence != nil {
			fWithCoherence = append(fWithCoherence, float64(*g.Ratings.Funniness))
			coherence = append(coherence, float64(*g.Ratings.StructuralCoherence))
		}
	}
	summary.FunninessSurpriseR = Pearson(fWithSurprise, surprise)
	summary.FunninessCoherenceR = Pearson(fWithCoherence, coherence)
	return summary
}

// SurpriseSummary aggregates the surprise probes per category.
type SurpriseSummary struct {
	Total              int                `json:"total"`
	MeanSurprise       float64            `json:"mean_surprise"`
	SurpriseByCategory map[string]float64 `json:"surprise_by_category"`
}

// SummarizeSurprise folds successful probes into per-category means.
func SummarizeSurprise(rows []Surprise) SurpriseSummary {
	summary := SurpriseSummary{SurpriseByCategory: make(map[string]float64)}

	var ok []Surprise
	var scores []float64
	for _, s := range rows {
		if !s.Success {
			continue
		}
		ok = append(ok, s)
		scores = append(scores, s.SurpriseScore)
	}
	summary.Total = len(ok)
	summary.MeanSurprise = Mean(scores)

	for category, group := range GroupBy(ok, func(s Surprise) string { return s.Category }) {
		vals := make([]float64, len(group))
		for i, s := range group {
			vals[i] = s.SurpriseScore
		}
		summary.SurpriseByCategory[category] = Mean(vals)
	}
	return summary
}
