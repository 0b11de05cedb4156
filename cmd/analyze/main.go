// Command analyze aggregates a study's raw outputs into the statistical
// tables and printed reports: structural validity, explanation feature
// coding, surprise scores, and manual-rating correlations.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	_ "github.com/joho/godotenv/autoload"

	"benign/pkg/config"
	"benign/pkg/features"
	"benign/pkg/study"
	"benign/pkg/utils"
)

func main() {
	args, err := parseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("load config", "error", err)
	}

	jokes := loadOptional[[]study.Generation](args.Jokes, cfg.Paths.PilotDir, "pilot_results")
	exps := loadOptional[[]study.Explanation](args.Explanations, cfg.Paths.ExplanationsDir, "explanations")
	probes := loadOptional[[]study.Surprise](args.Probes, cfg.Paths.OutputsDir, "surprise_probes")
	if len(jokes) == 0 && len(exps) == 0 && len(probes) == 0 {
		log.Fatal("nothing to analyze: no result files found")
	}

	coder := features.NewDefaultCoder()
	structuralRows := study.AnalyzeStructure(jokes)
	featureRows := study.AnalyzeExplanations(exps, coder)

	structural := study.SummarizeStructure(structuralRows)
	feature := study.SummarizeFeatures(featureRows, features.Kinds())
	surprise := study.SummarizeSurprise(probes)
	ratings := study.SummarizeRatings(jokes, probes)

	duplicates := study.NearDuplicates(jokes, args.DupThreshold)

	if len(structuralRows) > 0 {
		fmt.Println(study.RenderStructuralReport(structural))
		fmt.Println(study.RenderDuplicateReport(duplicates, args.DupThreshold))
	}
	if len(featureRows) > 0 {
		fmt.Println(study.RenderFeatureReport(feature, features.Kinds()))
	}
	if surprise.Total > 0 {
		fmt.Println(study.RenderSurpriseReport(surprise))
	}
	fmt.Println(study.RenderComprehensiveReport(structural, feature, surprise, ratings))

	if args.CSVDir != "" {
		if err := os.MkdirAll(args.CSVDir, 0o755); err != nil {
			log.Fatal("create csv dir", "error", err)
		}
		writeCSVs(args.CSVDir, structuralRows, featureRows, probes)
	}

	summaryPath := utils.Timestamped(cfg.Paths.OutputsDir, "analysis_summary", ".json")
	summary := map[string]any{
		"structural":      structural,
		"features":        feature,
		"surprise":        surprise,
		"ratings":         ratings,
		"near_duplicates": duplicates,
	}
	if err := utils.Save(summaryPath, summary); err != nil {
		log.Fatal("save summary", "path", summaryPath, "error", err)
	}
	log.Info("analysis complete", "summary", summaryPath)
}

func loadOptional[T any](path, dir, prefix string) T {
	var zero T
	if path == "" {
		path = utils.Latest(dir, prefix, ".json")
	}
	if path == "" {
		return zero
	}
	v, err := utils.Load[T](path)
	if err != nil {
		log.Warn("skipping unreadable file", "path", path, "error", err)
		return zero
	}
	log.Info("loaded", "path", path)
	return v
}

func writeCSVs(dir string, structural []study.StructuralRow, feature []study.FeatureRow, probes []study.Surprise) {
	if len(structural) > 0 {
		path := filepath.Join(dir, "structural_analysis.csv")
		if err := study.WriteStructuralCSV(path, structural); err != nil {
			log.Fatal("write csv", "path", path, "error", err)
		}
		log.Info("wrote csv", "path", path, "rows", len(structural))
	}
	if len(feature) > 0 {
		path := filepath.Join(dir, "feature_analysis.csv")
		if err := study.WriteFeatureCSV(path, feature, features.Kinds()); err != nil {
			log.Fatal("write csv", "path", path, "error", err)
		}
		log.Info("wrote csv", "path", path, "rows", len(feature))
	}
	if len(probes) > 0 {
		path := filepath.Join(dir, "surprise_analysis.csv")
		if err := study.WriteSurpriseCSV(path, probes); err != nil {
			log.Fatal("write csv", "path", path, "error", err)
		}
		log.Info("wrote csv", "path", path, "rows", len(probes))
	}
}

type Config struct {
	Jokes        string
	Explanations string
	Probes       string
	CSVDir       string
	DupThreshold float64
}

func parseFlags(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	fs.SetOutput(os.Stderr)

	fs.StringVar(&cfg.Jokes, "jokes", "", "Generation results file (default: most recent)")
	fs.StringVar(&cfg.Explanations, "explanations", "", "Explanations file (default: most recent)")
	fs.StringVar(&cfg.Probes, "probes", "", "Surprise probe file (default: most recent)")
	fs.StringVar(&cfg.CSVDir, "csv-dir", "", "Also export per-row CSV tables into this directory")
	fs.Float64Var(&cfg.DupThreshold, "dup-threshold", 0.9, "Similarity above which two jokes count as near-duplicates")

	return cfg, fs.Parse(args)
}
