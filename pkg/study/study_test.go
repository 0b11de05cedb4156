package study

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"benign/pkg/config"
	"benign/pkg/features"
	"benign/pkg/inference"
	"benign/pkg/joke"
	"benign/pkg/prompts"
)

// scriptedGenerator returns a fixed response or error for every call and
// records what it was asked.
type scriptedGenerator struct {
	text  string
	err   error
	calls []scriptedCall
}

type scriptedCall struct {
	prompt      string
	temperature float64
}

func (s *scriptedGenerator) Generate(_ context.Context, prompt string, temperature float64) (inference.Result, error) {
	s.calls = append(s.calls, scriptedCall{prompt: prompt, temperature: temperature})
	if s.err != nil {
		return inference.Result{}, s.err
	}
	return inference.Result{
		Text:         s.text,
		Tokens:       42,
		FinishReason: "stop",
		Latency:      5 * time.Millisecond,
	}, nil
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := &config.Config{}
	cfg.Models.GPT4o = "gpt-4o"
	cfg.Models.Claude = "claude-3-5-sonnet-20241022"
	cfg.Models.Gemini = "gemini-2.0-flash-exp"
	cfg.Models.MaxTokens = 150
	cfg.Study.Temperatures = []float64{0.7}
	cfg.Study.PerCondition = 2
	return cfg
}

func testRunner(cfg *config.Config, generators map[string]inference.Generator) *Runner {
	return &Runner{cfg: cfg, generators: generators}
}

func TestConditionID(t *testing.T) {
	got := ConditionID("gpt4o", "linguistic", 0.5, 3)
	if got != "gpt4o_linguistic_t0.5_3" {
		t.Errorf("ConditionID = %q, want gpt4o_linguistic_t0.5_3", got)
	}
	if got := ConditionID("claude", "dark", 0.9, 0); got != "claude_dark_t0.9_0" {
		t.Errorf("ConditionID = %q, want claude_dark_t0.9_0", got)
	}
}

func TestRunProducesFullGrid(t *testing.T) {
	cfg := testConfig(t)
	gpt := &scriptedGenerator{text: "Setup: Why did the pun cross the road?\nPunchline: To get to the other side of the sentence."}
	cla := &scriptedGenerator{text: "Setup: A horse walks into a bar.\nPunchline: The bartender asks why the long face."}
	r := testRunner(cfg, map[string]inference.Generator{
		config.ModelGPT4o:  gpt,
		config.ModelClaude: cla,
	})

	results, err := r.Run(context.Background(), []string{config.ModelGPT4o, config.ModelClaude}, []string{prompts.Linguistic})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := 2 * 1 * 1 * cfg.Study.PerCondition
	if len(results) != want {
		t.Fatalf("Run produced %d records, want %d", len(results), want)
	}

	first := results[0]
	if first.Model != config.ModelGPT4o {
		t.Errorf("first record model = %q, want %q", first.Model, config.ModelGPT4o)
	}
	if first.ModelFullName != "gpt-4o" {
		t.Errorf("first record full name = %q, want gpt-4o", first.ModelFullName)
	}
	if first.ConditionID != "gpt4o_linguistic_t0.7_0" {
		t.Errorf("first condition ID = %q", first.ConditionID)
	}
	if !first.Succeeded() {
		t.Error("record with a response should report Succeeded")
	}
	if first.Setup == "" || first.Punchline == "" {
		t.Errorf("response not parsed: setup=%q punchline=%q", first.Setup, first.Punchline)
	}
	if first.Metrics.TotalWords == 0 {
		t.Error("metrics not computed on success")
	}
	if first.RecordID == "" {
		t.Error("record ID not assigned")
	}
	if first.API.Tokens != 42 || first.API.FinishReason != "stop" {
		t.Errorf("API info not recorded: %+v", first.API)
	}

	if len(gpt.calls) != cfg.Study.PerCondition {
		t.Errorf("gpt4o called %d times, want %d", len(gpt.calls), cfg.Study.PerCondition)
	}
	for _, c := range gpt.calls {
		if c.temperature != 0.7 {
			t.Errorf("call temperature = %v, want 0.7", c.temperature)
		}
	}
}

func TestRunRecordsFailuresWithoutAborting(t *testing.T) {
	cfg := testConfig(t)
	broken := &scriptedGenerator{err: errors.New("rate limited")}
	r := testRunner(cfg, map[string]inference.Generator{config.ModelGemini: broken})

	results, err := r.Run(context.Background(), []string{config.ModelGemini}, []string{prompts.Dark})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(results) != cfg.Study.PerCondition {
		t.Fatalf("Run produced %d records, want %d", len(results), cfg.Study.PerCondition)
	}
	for _, rec := range results {
		if rec.Succeeded() {
			t.Error("failed generation should not report Succeeded")
		}
		if rec.API.Error != "rate limited" {
			t.Errorf("API error = %q, want rate limited", rec.API.Error)
		}
		if rec.RawResponse != "" {
			t.Errorf("failed generation has response %q", rec.RawResponse)
		}
	}
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	cfg := testConfig(t)
	r := testRunner(cfg, map[string]inference.Generator{
		config.ModelGPT4o: &scriptedGenerator{text: "Setup: s? Punchline: p."},
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := r.Run(ctx, []string{config.ModelGPT4o}, []string{prompts.Social})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run error = %v, want context.Canceled", err)
	}
	if len(results) != 0 {
		t.Errorf("cancelled run produced %d records", len(results))
	}
}

func TestRunRejectsUnknownCategory(t *testing.T) {
	cfg := testConfig(t)
	r := testRunner(cfg, map[string]inference.Generator{
		config.ModelGPT4o: &scriptedGenerator{text: "x"},
	})
	if _, err := r.Run(context.Background(), []string{config.ModelGPT4o}, []string{"slapstick"}); err == nil {
		t.Fatal("expected error for unknown category")
	}
}

func TestGridSizeMatchesActualPrompts(t *testing.T) {
	cfg := testConfig(t)
	r := testRunner(cfg, map[string]inference.Generator{
		config.ModelGPT4o: &scriptedGenerator{text: "ok"},
	})

	// PerCondition below the five novel contexts per category.
	if got := r.GridSize([]string{prompts.Linguistic, prompts.Physical}); got != 4 {
		t.Errorf("grid size = %d, want 4", got)
	}

	// PerCondition above the context count: each category contributes its
	// five contexts, not the requested count.
	cfg.Study.PerCondition = 99
	if got := r.GridSize([]string{prompts.Linguistic}); got != 5 {
		t.Errorf("grid size = %d, want 5 (capped by novel contexts)", got)
	}
}

func TestExplanationLatencyTag(t *testing.T) {
	data, err := json.Marshal(Explanation{LatencySeconds: 1.5})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"latency_seconds":1.5`) {
		t.Errorf("latency field serialized as %s", data)
	}
}

func TestSampleAcrossCategories(t *testing.T) {
	usable := func(id, category string) Generation {
		text := "Setup: A question. Punchline: An answer."
		return Generation{
			ConditionID: id,
			Category:    category,
			RawResponse: text,
			ParsedJoke:  joke.Parse(text),
		}
	}
	jokes := []Generation{
		usable("a", prompts.Linguistic),
		usable("b", prompts.Linguistic),
		usable("c", prompts.Physical),
		usable("d", prompts.Physical),
		usable("e", prompts.Social),
	}
	got := SampleAcrossCategories(jokes, []string{prompts.Linguistic, prompts.Physical}, 2)
	if len(got) != 2 {
		t.Fatalf("sampled %d jokes, want 2", len(got))
	}
	if got[0].ConditionID != "a" || got[1].ConditionID != "c" {
		t.Errorf("sampled %q and %q, want a and c", got[0].ConditionID, got[1].ConditionID)
	}

	if got := SampleAcrossCategories(jokes, []string{prompts.Linguistic}, 0); len(got) != len(jokes) {
		t.Errorf("n <= 0 should return every usable joke, got %d", len(got))
	}
}

func TestSampleSkipsFailedBeforeQuota(t *testing.T) {
	usable := func(id, category string) Generation {
		text := "Setup: A question. Punchline: An answer."
		return Generation{
			ConditionID: id,
			Category:    category,
			RawResponse: text,
			ParsedJoke:  joke.Parse(text),
		}
	}
	jokes := []Generation{
		// A failed call ahead of the usable jokes must not occupy a
		// linguistic slot.
		{ConditionID: "failed", Category: prompts.Linguistic, API: APIInfo{Error: "timeout"}},
		usable("a", prompts.Linguistic),
		usable("b", prompts.Linguistic),
		usable("c", prompts.Physical),
	}
	got := SampleAcrossCategories(jokes, []string{prompts.Linguistic, prompts.Physical}, 4)
	if len(got) != 3 {
		t.Fatalf("sampled %d jokes, want 3", len(got))
	}
	if got[0].ConditionID != "a" || got[1].ConditionID != "b" {
		t.Errorf("linguistic slots went to %q and %q, want a and b", got[0].ConditionID, got[1].ConditionID)
	}

	if got := SampleAcrossCategories(jokes, prompts.Categories(), 0); len(got) != 3 {
		t.Errorf("n <= 0 kept %d jokes, want the 3 usable ones", len(got))
	}
}

func TestCollectExplanationsSkipsFailedJokes(t *testing.T) {
	cfg := testConfig(t)
	explainer := &scriptedGenerator{text: "The pun works through incongruity between two word senses."}
	r := testRunner(cfg, map[string]inference.Generator{config.ModelClaude: explainer})

	jokes := []Generation{
		{
			ConditionID: "gpt4o_linguistic_t0.7_0",
			Model:       config.ModelGPT4o,
			Category:    prompts.Linguistic,
			RawResponse: "ok",
			ParsedJoke:  joke.Parse("Setup: s? Punchline: p."),
		},
		{
			ConditionID: "gpt4o_linguistic_t0.7_1",
			Model:       config.ModelGPT4o,
			Category:    prompts.Linguistic,
			API:         APIInfo{Error: "timeout"},
		},
	}

	exps, err := r.CollectExplanations(context.Background(), jokes, []string{config.ModelClaude})
	if err != nil {
		t.Fatalf("CollectExplanations: %v", err)
	}
	if len(exps) != 1 {
		t.Fatalf("collected %d explanations, want 1", len(exps))
	}
	e := exps[0]
	if !e.Success || e.Explanation == "" {
		t.Errorf("explanation not recorded: %+v", e)
	}
	if e.JokeID != "gpt4o_linguistic_t0.7_0" || e.ExplainingModel != config.ModelClaude {
		t.Errorf("explanation join fields wrong: %+v", e)
	}
	if len(explainer.calls) != 1 || explainer.calls[0].temperature != 0.3 {
		t.Errorf("explanations should run once at temperature 0.3, got %+v", explainer.calls)
	}
	if !strings.Contains(explainer.calls[0].prompt, jokes[0].FullText) {
		t.Error("explanation prompt should embed the joke text")
	}
}

func TestProbeSurprise(t *testing.T) {
	cfg := testConfig(t)
	prober := &scriptedGenerator{text: "to get to the other side"}
	r := testRunner(cfg, map[string]inference.Generator{config.ModelGPT4o: prober})

	jokes := []Generation{
		{
			ConditionID: "claude_physical_t0.5_0",
			Model:       config.ModelClaude,
			Category:    prompts.Physical,
			Temperature: 0.5,
			RawResponse: "ok",
			ParsedJoke: joke.ParsedJoke{
				Setup:     "Why did the chicken cross the road?",
				Punchline: "To get to the other side.",
				FullText:  "Why did the chicken cross the road? To get to the other side.",
			},
		},
	}

	probes, err := r.ProbeSurprise(context.Background(), jokes, config.ModelGPT4o)
	if err != nil {
		t.Fatalf("ProbeSurprise: %v", err)
	}
	if len(probes) != 1 {
		t.Fatalf("probed %d jokes, want 1", len(probes))
	}
	p := probes[0]
	if !p.Success {
		t.Fatalf("probe failed: %+v", p)
	}
	if p.PredictedPunchline != "to get to the other side" {
		t.Errorf("predicted punchline = %q", p.PredictedPunchline)
	}
	// Prediction and punchline share every word, so surprise collapses to 0.
	if p.PredictionAccuracy != 1 {
		t.Errorf("prediction accuracy = %v, want 1", p.PredictionAccuracy)
	}
	if p.SurpriseScore != 0 {
		t.Errorf("surprise score = %v, want 0", p.SurpriseScore)
	}
	if math.Abs(p.SurpriseScore-(1-p.PredictionAccuracy)) > 1e-12 {
		t.Errorf("surprise %v is not 1 - accuracy %v", p.SurpriseScore, p.PredictionAccuracy)
	}
	if len(prober.calls) != 1 || prober.calls[0].temperature != 0.7 {
		t.Errorf("probe should run once at temperature 0.7, got %+v", prober.calls)
	}
	if strings.Contains(prober.calls[0].prompt, "other side.") {
		t.Error("prediction prompt must not leak the punchline")
	}
}

func TestProbeSurpriseUnknownProber(t *testing.T) {
	r := testRunner(testConfig(t), map[string]inference.Generator{})
	if _, err := r.ProbeSurprise(context.Background(), nil, "mystery"); err == nil {
		t.Fatal("expected error for unknown prober")
	}
}

func TestStats(t *testing.T) {
	if got := Mean(nil); got != 0 {
		t.Errorf("Mean(nil) = %v", got)
	}
	if got := Mean([]float64{2, 4, 6}); got != 4 {
		t.Errorf("Mean = %v, want 4", got)
	}
	if got := StdDev([]float64{5}); got != 0 {
		t.Errorf("StdDev of one value = %v", got)
	}
	// Sample SD of {2, 4, 6} is 2.
	if got := StdDev([]float64{2, 4, 6}); math.Abs(got-2) > 1e-12 {
		t.Errorf("StdDev = %v, want 2", got)
	}
	if got := Proportion([]bool{true, false, true, true}); got != 0.75 {
		t.Errorf("Proportion = %v, want 0.75", got)
	}
}

func TestPearson(t *testing.T) {
	x := []float64{1, 2, 3, 4}
	if got := Pearson(x, []float64{2, 4, 6, 8}); math.Abs(got-1) > 1e-12 {
		t.Errorf("perfect correlation r = %v, want 1", got)
	}
	if got := Pearson(x, []float64{8, 6, 4, 2}); math.Abs(got+1) > 1e-12 {
		t.Errorf("perfect anticorrelation r = %v, want -1", got)
	}
	if got := Pearson(x, []float64{5, 5, 5, 5}); got != 0 {
		t.Errorf("no-variance r = %v, want 0", got)
	}
	if got := Pearson([]float64{1}, []float64{1}); got != 0 {
		t.Errorf("single-pair r = %v, want 0", got)
	}
}

func TestAnalyzeStructure(t *testing.T) {
	valid := joke.Parse("Setup: Why did the chicken cross the road?\nPunchline: To get to the other side of the nice wide road.")
	gens := []Generation{
		{
			ConditionID: "gpt4o_physical_t0.7_0",
			Model:       config.ModelGPT4o,
			Category:    prompts.Physical,
			RawResponse: "ok",
			ParsedJoke:  valid,
			Metrics:     valid.Metrics(),
		},
		{
			ConditionID: "gpt4o_physical_t0.7_1",
			Model:       config.ModelGPT4o,
			Category:    prompts.Physical,
			API:         APIInfo{Error: "timeout"},
		},
	}

	rows := AnalyzeStructure(gens)
	if len(rows) != 1 {
		t.Fatalf("analyzed %d rows, want 1 (failures excluded)", len(rows))
	}
	if !rows[0].Valid || !rows[0].ExplicitMarkers {
		t.Errorf("structure flags wrong: %+v", rows[0].Structure)
	}

	summary := SummarizeStructure(rows)
	if summary.Total != 1 || summary.ValidRate != 1 {
		t.Errorf("summary = %+v", summary)
	}
	if summary.ValidByModel[config.ModelGPT4o] != 1 {
		t.Errorf("valid by model = %v", summary.ValidByModel)
	}
	if summary.ValidByCategory[prompts.Physical] != 1 {
		t.Errorf("valid by category = %v", summary.ValidByCategory)
	}
}

func TestNearDuplicates(t *testing.T) {
	gen := func(id, category, text string) Generation {
		return Generation{
			ConditionID: id,
			Category:    category,
			RawResponse: text,
			ParsedJoke:  joke.Parse(text),
		}
	}
	gens := []Generation{
		gen("gpt4o_physical_t0.7_0", prompts.Physical, "Why did the clown trip? His shoes were two sizes too big."),
		gen("gpt4o_physical_t0.7_1", prompts.Physical, "Why did the clown trip? His shoes were two sizes too big!"),
		gen("claude_physical_t0.7_0", prompts.Physical, "I tried yoga once. Gravity tried harder."),
		// Same text in another category must not pair with the first two.
		gen("gpt4o_dark_t0.7_0", prompts.Dark, "Why did the clown trip? His shoes were two sizes too big."),
		{ConditionID: "gemini_physical_t0.7_0", Category: prompts.Physical, API: APIInfo{Error: "timeout"}},
	}

	pairs := NearDuplicates(gens, 0.9)
	if len(pairs) != 1 {
		t.Fatalf("found %d pairs, want 1: %+v", len(pairs), pairs)
	}
	if pairs[0].A != "gpt4o_physical_t0.7_0" || pairs[0].B != "gpt4o_physical_t0.7_1" {
		t.Errorf("paired %s with %s", pairs[0].A, pairs[0].B)
	}
	if pairs[0].Similarity < 0.9 {
		t.Errorf("similarity = %v", pairs[0].Similarity)
	}

	if got := NearDuplicates(gens, 1.01); got != nil {
		t.Errorf("impossible threshold matched %+v", got)
	}

	report := RenderDuplicateReport(pairs, 0.9)
	if !strings.Contains(report, "gpt4o_physical_t0.7_0 ~ gpt4o_physical_t0.7_1") {
		t.Errorf("report missing pair:\n%s", report)
	}
}

func TestFeatureAnalysis(t *testing.T) {
	coder := features.NewDefaultCoder()
	exps := []Explanation{
		{
			JokeID:          "a",
			JokeCategory:    prompts.Physical,
			ExplainingModel: config.ModelGPT4o,
			Explanation:     "The humor comes from the physical slip and the fall.",
			Success:         true,
		},
		{
			JokeID:          "b",
			JokeCategory:    prompts.Physical,
			ExplainingModel: config.ModelGPT4o,
			Explanation:     "It relies on the double meaning of the word.",
			Success:         true,
		},
		{
			JokeID:          "c",
			JokeCategory:    prompts.Linguistic,
			ExplainingModel: config.ModelClaude,
			Explanation:     "A classic pun built on wordplay and ambiguity.",
			Success:         true,
		},
		{JokeID: "d", JokeCategory: prompts.Linguistic, Success: false},
	}

	rows := AnalyzeExplanations(exps, coder)
	if len(rows) != 3 {
		t.Fatalf("coded %d rows, want 3 (failures excluded)", len(rows))
	}

	summary := SummarizeFeatures(rows, features.Kinds())
	if summary.Total != 3 {
		t.Errorf("total = %d, want 3", summary.Total)
	}
	// One of the two physical-joke explanations cites embodied features.
	if summary.PhysicalEmbodiedRate != 0.5 {
		t.Errorf("physical embodied rate = %v, want 0.5", summary.PhysicalEmbodiedRate)
	}
	if summary.LinguisticSemanticRate != 1 {
		t.Errorf("linguistic semantic rate = %v, want 1", summary.LinguisticSemanticRate)
	}
	if rate := summary.ByModel[config.ModelClaude][features.Semantic]; rate != 1 {
		t.Errorf("claude semantic citation rate = %v, want 1", rate)
	}
}

func intPtr(v int) *int { return &v }

func TestSummarizeRatings(t *testing.T) {
	gens := []Generation{
		{
			ConditionID: "a", Model: config.ModelGPT4o, Category: prompts.Linguistic,
			Ratings: ManualRatings{Funniness: intPtr(6), StructuralCoherence: intPtr(7)},
		},
		{
			ConditionID: "b", Model: config.ModelGPT4o, Category: prompts.Dark,
			Ratings: ManualRatings{Funniness: intPtr(2), StructuralCoherence: intPtr(3)},
		},
		{ConditionID: "c", Model: config.ModelClaude, Category: prompts.Dark},
	}
	surprises := []Surprise{
		{JokeID: "a", SurpriseScore: 0.9, Success: true},
		{JokeID: "b", SurpriseScore: 0.1, Success: true},
	}

	summary := SummarizeRatings(gens, surprises)
	if summary.Rated != 2 {
		t.Fatalf("rated = %d, want 2 (unrated excluded)", summary.Rated)
	}
	if summary.MeanFunniness != 4 {
		t.Errorf("mean funniness = %v, want 4", summary.MeanFunniness)
	}
	if summary.FunninessByCategory[prompts.Dark] != 2 {
		t.Errorf("dark funniness = %v, want 2", summary.FunninessByCategory[prompts.Dark])
	}
	// Two pairs moving together give perfect positive correlations.
	if math.Abs(summary.FunninessSurpriseR-1) > 1e-12 {
		t.Errorf("funniness-surprise r = %v, want 1", summary.FunninessSurpriseR)
	}
	if math.Abs(summary.FunninessCoherenceR-1) > 1e-12 {
		t.Errorf("funniness-coherence r = %v, want 1", summary.FunninessCoherenceR)
	}
}

func TestSummarizeSurprise(t *testing.T) {
	rows := []Surprise{
		{JokeID: "a", Category: prompts.Linguistic, SurpriseScore: 0.8, Success: true},
		{JokeID: "b", Category: prompts.Linguistic, SurpriseScore: 0.4, Success: true},
		{JokeID: "c", Category: prompts.Dark, Error: "timeout"},
	}
	summary := SummarizeSurprise(rows)
	if summary.Total != 2 {
		t.Fatalf("total = %d, want 2", summary.Total)
	}
	if math.Abs(summary.MeanSurprise-0.6) > 1e-12 {
		t.Errorf("mean surprise = %v, want 0.6", summary.MeanSurprise)
	}
	if math.Abs(summary.SurpriseByCategory[prompts.Linguistic]-0.6) > 1e-12 {
		t.Errorf("linguistic surprise = %v", summary.SurpriseByCategory[prompts.Linguistic])
	}
	if _, ok := summary.SurpriseByCategory[prompts.Dark]; ok {
		t.Error("failed probes should not contribute a category mean")
	}
}

func TestWriteStructuralCSV(t *testing.T) {
	parsed := joke.Parse("Setup: Why?\nPunchline: Because.")
	rows := []StructuralRow{{
		ID:          "gpt4o_linguistic_t0.5_0",
		Model:       config.ModelGPT4o,
		Category:    prompts.Linguistic,
		Temperature: 0.5,
		Metrics:     parsed.Metrics(),
		Structure:   parsed.Structure(),
	}}

	path := filepath.Join(t.TempDir(), "structural.csv")
	if err := WriteStructuralCSV(path, rows); err != nil {
		t.Fatalf("WriteStructuralCSV: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("csv has %d records, want header + 1 row", len(records))
	}
	if records[0][0] != "id" || records[0][12] != "structure_valid" {
		t.Errorf("header = %v", records[0])
	}
	if records[1][0] != "gpt4o_linguistic_t0.5_0" {
		t.Errorf("row id = %q", records[1][0])
	}
	if records[1][12] != "True" {
		t.Errorf("structure_valid = %q, want True", records[1][12])
	}
}

func TestRenderReports(t *testing.T) {
	structural := StructuralSummary{
		Total: 4, ValidRate: 0.75, WithinTargetRate: 0.5, QuestionRate: 0.25,
		MeanWords: 20, SDWords: 3,
		ValidByModel:    map[string]float64{config.ModelGPT4o: 0.75},
		ValidByCategory: map[string]float64{prompts.Linguistic: 0.75},
	}
	out := RenderStructuralReport(structural)
	if !strings.Contains(out, "STRUCTURAL VALIDITY ANALYSIS") {
		t.Error("structural report missing banner")
	}
	if !strings.Contains(out, "75.0%") {
		t.Errorf("structural report missing valid rate:\n%s", out)
	}

	feature := FeatureSummary{
		Total: 2,
		ByCategory: map[string]map[string]KindStats{
			prompts.Physical: {features.Embodied: {CitationRate: 0.25, MeanCount: 0.5}},
		},
		ByModel:              map[string]map[string]float64{config.ModelGPT4o: {features.Embodied: 0.25}},
		PhysicalEmbodiedRate: 0.25,
	}
	out = RenderFeatureReport(feature, features.Kinds())
	if !strings.Contains(out, "fail to cite embodied features") {
		t.Errorf("feature report should flag the low embodied rate:\n%s", out)
	}

	out = RenderComprehensiveReport(structural, feature, SurpriseSummary{}, RatingsSummary{})
	if !strings.Contains(out, "linguistic") || strings.Contains(out, "MANUAL RATINGS") {
		t.Errorf("comprehensive report wrong:\n%s", out)
	}
}
