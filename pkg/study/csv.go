package study

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

func writeCSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("study: create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func formatBool(v bool) string {
	if v {
		return "True"
	}
	return "False"
}

// WriteStructuralCSV exports the structural table as a delimited file for
// downstream statistical tooling.
func WriteStructuralCSV(path string, rows []StructuralRow) error {
	header := []string{
		"id", "model", "category", "temperature",
		"total_words", "setup_words", "punchline_words", "setup_to_punchline_ratio",
		"has_question", "has_punctuation_emphasis",
		"has_setup", "has_punchline", "structure_valid", "within_target_length",
		"explicit_format_markers", "sentence_count",
	}
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			r.ID, r.Model, r.Category, formatFloat(r.Temperature),
			strconv.Itoa(r.TotalWords), strconv.Itoa(r.SetupWords), strconv.Itoa(r.PunchlineWords),
			formatFloat(r.SetupToPunchlineRatio),
			formatBool(r.HasQuestion), formatBool(r.HasPunctuationEmphasis),
			formatBool(r.HasSetup), formatBool(r.HasPunchline), formatBool(r.Valid),
			formatBool(r.WithinTargetLength), formatBool(r.ExplicitMarkers),
			strconv.Itoa(r.SentenceCount),
		})
	}
	return writeCSV(path, header, out)
}

// WriteFeatureCSV exports the feature-coding table with one has_/count pair
// of columns per kind, in the given kind order.
func WriteFeatureCSV(path string, rows []FeatureRow, kinds []string) error {
	header := []string{"joke_id", "joke_category", "joke_generator", "explaining_model"}
	for _, kind := range kinds {
		header = append(header, "has_"+kind, kind+"_count")
	}

	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		row := []string{r.JokeID, r.JokeCategory, r.JokeGenerator, r.ExplainingModel}
		for _, kind := range kinds {
			row = append(row, formatBool(r.Codes.Has(kind)), strconv.Itoa(r.Codes.Count(kind)))
		}
		out = append(out, row)
	}
	return writeCSV(path, header, out)
}

// WriteSurpriseCSV exports the surprise probes.
func WriteSurpriseCSV(path string, rows []Surprise) error {
	header := []string{
		"id", "model", "category", "temperature",
		"predicted_punchline", "punchline_overlap_with_setup",
		"prediction_accuracy", "prediction_similarity", "surprise_score", "success",
	}
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			r.JokeID, r.Model, r.Category, formatFloat(r.Temperature),
			r.PredictedPunchline, formatFloat(r.PunchlineOverlapWithSetup),
			formatFloat(r.PredictionAccuracy), formatFloat(r.PredictionSimilarity),
			formatFloat(r.SurpriseScore), formatBool(r.Success),
		})
	}
	return writeCSV(path, header, out)
}
