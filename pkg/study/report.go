package study

import (
	"fmt"
	"sort"
	"strings"

	"benign/pkg/features"
	"benign/pkg/prompts"
)

const reportWidth = 70

func banner(title string) string {
	line := strings.Repeat("=", reportWidth)
	return line + "\n " + title + "\n" + line + "\n"
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// RenderStructuralReport formats the structural summary as the printed
// report block.
func RenderStructuralReport(summary StructuralSummary) string {
	var b strings.Builder
	b.WriteString(banner("STRUCTURAL VALIDITY ANALYSIS"))
	fmt.Fprintf(&b, "  Jokes analyzed: %d\n", summary.Total)
	fmt.Fprintf(&b, "  Valid structure (setup + punchline): %.1f%%\n", 100*summary.ValidRate)
	fmt.Fprintf(&b, "  Within target length (15-50 words): %.1f%%\n", 100*summary.WithinTargetRate)
	fmt.Fprintf(&b, "  Question format: %.1f%%\n", 100*summary.QuestionRate)
	fmt.Fprintf(&b, "  Average total words: %.1f (SD=%.1f)\n", summary.MeanWords, summary.SDWords)

	b.WriteString("\n  Valid structure by model:\n")
	for _, model := range sortedKeys(summary.ValidByModel) {
		fmt.Fprintf(&b, "    %-12s %.1f%%\n", model, 100*summary.ValidByModel[model])
	}
	b.WriteString("\n  Valid structure by category:\n")
	for _, category := range sortedKeys(summary.ValidByCategory) {
		fmt.Fprintf(&b, "    %-12s %.1f%%\n", category, 100*summary.ValidByCategory[category])
	}
	return b.String()
}

// RenderDuplicateReport lists near-duplicate joke pairs, or a one-line
// all-clear when none were found.
func RenderDuplicateReport(pairs []DuplicatePair, threshold float64) string {
	var b strings.Builder
	b.WriteString(banner("NEAR-DUPLICATE CHECK"))
	if len(pairs) == 0 {
		fmt.Fprintf(&b, "  No joke pairs above %.2f similarity.\n", threshold)
		return b.String()
	}
	fmt.Fprintf(&b, "  %d pair(s) above %.2f similarity:\n", len(pairs), threshold)
	for _, p := range pairs {
		fmt.Fprintf(&b, "    %s ~ %s (%.2f)\n", p.A, p.B, p.Similarity)
	}
	return b.String()
}

// RenderFeatureReport formats the feature summary, including the two
// critical hybrid-hypothesis comparisons.
func RenderFeatureReport(summary FeatureSummary, kinds []string) string {
	var b strings.Builder
	b.WriteString(banner("EXPLANATION FEATURE ANALYSIS"))
	fmt.Fprintf(&b, "  Explanations coded: %d\n", summary.Total)

	for _, category := range prompts.Categories() {
		stats, ok := summary.ByCategory[category]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "\n  %s jokes:\n", strings.ToUpper(category))
		for _, kind := range kinds {
			ks := stats[kind]
			fmt.Fprintf(&b, "    %-10s cited %.1f%% (mean keywords %.2f)\n",
				kind, 100*ks.CitationRate, ks.MeanCount)
		}
	}

	b.WriteString("\n  Citation rates by explaining model:\n")
	for _, model := range sortedKeys(summary.ByModel) {
		rates := summary.ByModel[model]
		parts := make([]string, 0, len(kinds))
		for _, kind := range kinds {
			parts = append(parts, fmt.Sprintf("%s %.0f%%", kind, 100*rates[kind]))
		}
		fmt.Fprintf(&b, "    %-12s %s\n", model, strings.Join(parts, "  "))
	}

	b.WriteString("\n  Critical comparisons:\n")
	fmt.Fprintf(&b, "    Physical jokes citing embodied features: %.1f%%\n", 100*summary.PhysicalEmbodiedRate)
	if summary.PhysicalEmbodiedRate < 0.5 {
		b.WriteString("      -> models largely fail to cite embodied features\n")
	} else {
		b.WriteString("      -> models do cite embodied features\n")
	}
	fmt.Fprintf(&b, "    Linguistic jokes citing semantic features: %.1f%%\n", 100*summary.LinguisticSemanticRate)
	if summary.LinguisticSemanticRate > 0.7 {
		b.WriteString("      -> models reliably explain linguistic humor\n")
	} else {
		b.WriteString("      -> models struggle with semantic features\n")
	}
	return b.String()
}

// RenderSurpriseReport formats the surprise summary.
func RenderSurpriseReport(summary SurpriseSummary) string {
	var b strings.Builder
	b.WriteString(banner("SEMANTIC SURPRISE ANALYSIS"))
	fmt.Fprintf(&b, "  Probes scored: %d\n", summary.Total)
	fmt.Fprintf(&b, "  Mean surprise: %.3f\n", summary.MeanSurprise)
	b.WriteString("\n  Surprise by category:\n")
	for _, category := range sortedKeys(summary.SurpriseByCategory) {
		fmt.Fprintf(&b, "    %-12s %.3f\n", category, summary.SurpriseByCategory[category])
	}
	return b.String()
}

// RenderRatingsReport formats the manual-ratings summary.
func RenderRatingsReport(summary RatingsSummary) string {
	var b strings.Builder
	b.WriteString(banner("MANUAL RATINGS SUMMARY"))
	fmt.Fprintf(&b, "  Rated jokes: %d\n", summary.Rated)
	fmt.Fprintf(&b, "  Mean funniness: %.2f (SD=%.2f)\n", summary.MeanFunniness, summary.SDFunniness)

	b.WriteString("\n  Funniness by category:\n")
	for _, category := range sortedKeys(summary.FunninessByCategory) {
		fmt.Fprintf(&b, "    %-12s %.2f\n", category, summary.FunninessByCategory[category])
	}
	b.WriteString("\n  Funniness by model:\n")
	for _, model := range sortedKeys(summary.FunninessByModel) {
		fmt.Fprintf(&b, "    %-12s %.2f\n", model, summary.FunninessByModel[model])
	}

	b.WriteString("\n  Correlations with funniness:\n")
	fmt.Fprintf(&b, "    surprise score:       r = %+.3f\n", summary.FunninessSurpriseR)
	fmt.Fprintf(&b, "    structural coherence: r = %+.3f\n", summary.FunninessCoherenceR)
	return b.String()
}

// RenderComprehensiveReport stitches the individual reports into the
// converging-evidence table the study closes with.
func RenderComprehensiveReport(structural StructuralSummary, feature FeatureSummary, surprise SurpriseSummary, ratings RatingsSummary) string {
	var b strings.Builder
	b.WriteString(banner("COMPREHENSIVE HUMOR GENERATION ANALYSIS"))
	b.WriteString("  Hybrid hypothesis prediction: linguistic > social > physical > dark\n\n")
	fmt.Fprintf(&b, "  %-12s %-18s %-16s %s\n", "Category", "Structural valid", "Mean surprise", "Key feature cited")
	for _, category := range prompts.Categories() {
		validity := "-"
		if rate, ok := structural.ValidByCategory[category]; ok {
			validity = fmt.Sprintf("%.1f%%", 100*rate)
		}
		surp := "-"
		if score, ok := surprise.SurpriseByCategory[category]; ok {
			surp = fmt.Sprintf("%.3f", score)
		}
		cited := "-"
		if stats, ok := feature.ByCategory[category]; ok {
			kind := keyKindFor(category)
			cited = fmt.Sprintf("%.1f%% %s", 100*stats[kind].CitationRate, kind)
		}
		fmt.Fprintf(&b, "  %-12s %-18s %-16s %s\n", category, validity, surp, cited)
	}
	if ratings.Rated > 0 {
		b.WriteString("\n")
		b.WriteString(RenderRatingsReport(ratings))
	}
	return b.String()
}

// keyKindFor maps each joke category to the feature kind its explanations
// are predicted to cite.
func keyKindFor(category string) string {
	switch category {
	case prompts.Physical:
		return features.Embodied
	case prompts.Social:
		return features.Social
	case prompts.Dark:
		return features.Threat
	default:
		return features.Semantic
	}
}
