// Command explain runs the second experiment over a prior generation run:
// it samples jokes across categories, asks each explaining model why every
// joke is funny, and optionally probes punchline predictability for the
// surprise analysis.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/log"
	_ "github.com/joho/godotenv/autoload"

	"benign/pkg/config"
	"benign/pkg/prompts"
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

	jokesPath := args.Jokes
	if jokesPath == "" {
		jokesPath = utils.Latest(cfg.Paths.PilotDir, "pilot_results", ".json")
	}
	if jokesPath == "" {
		log.Fatal("no generation results found", "dir", cfg.Paths.PilotDir)
	}
	jokes, err := utils.Load[[]study.Generation](jokesPath)
	if err != nil {
		log.Fatal("load jokes", "path", jokesPath, "error", err)
	}
	log.Info("loaded jokes", "path", jokesPath, "count", len(jokes))

	needed := args.Models
	if args.Probe {
		needed = append(append([]string{}, needed...), args.Prober)
	}
	if missing := cfg.MissingKeys(needed...); len(missing) > 0 {
		log.Fatal("missing API keys", "env", strings.Join(missing, ", "))
	}
	runner, err := study.NewRunner(cfg, needed)
	if err != nil {
		log.Fatal("build runner", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sampled := study.SampleAcrossCategories(jokes, prompts.Categories(), args.Sample)
	log.Info("collecting explanations", "jokes", len(sampled), "models", strings.Join(args.Models, ","))

	exps, expErr := runner.CollectExplanations(ctx, sampled, args.Models)
	if len(exps) > 0 {
		out := utils.Timestamped(cfg.Paths.ExplanationsDir, "explanations", ".json")
		if err := utils.Save(out, exps); err != nil {
			log.Fatal("save explanations", "path", out, "error", err)
		}
		log.Info("explanations saved", "count", len(exps), "path", out)
	}
	if expErr != nil && !errors.Is(expErr, context.Canceled) {
		log.Fatal("collect explanations", "error", expErr)
	}

	if args.Probe && ctx.Err() == nil {
		log.Info("probing punchline predictability", "prober", args.Prober)
		probes, probeErr := runner.ProbeSurprise(ctx, sampled, args.Prober)
		if len(probes) > 0 {
			out := utils.Timestamped(cfg.Paths.OutputsDir, "surprise_probes", ".json")
			if err := utils.Save(out, probes); err != nil {
				log.Fatal("save probes", "path", out, "error", err)
			}
			log.Info("surprise probes saved", "count", len(probes), "path", out)
		}
		if probeErr != nil && !errors.Is(probeErr, context.Canceled) {
			log.Fatal("probe surprise", "error", probeErr)
		}
	}

	if ctx.Err() != nil {
		log.Warn("run interrupted, results are partial")
		os.Exit(1)
	}
}

type Config struct {
	Jokes  string
	Models []string
	Sample int
	Probe  bool
	Prober string
}

func defaultConfig() Config {
	return Config{
		Models: []string{config.ModelGPT4o, config.ModelClaude, config.ModelGemini},
		Sample: 24,
		Probe:  true,
		Prober: config.ModelGPT4o,
	}
}

func parseFlags(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := defaultConfig()
	fs.SetOutput(os.Stderr)

	models := fs.String("models", strings.Join(cfg.Models, ","), "Comma-separated explaining model keys")
	fs.StringVar(&cfg.Jokes, "jokes", "", "Generation results file (default: most recent under the pilot directory)")
	fs.IntVar(&cfg.Sample, "sample", cfg.Sample, "Number of jokes to sample across categories; 0 explains all")
	fs.BoolVar(&cfg.Probe, "probe", cfg.Probe, "Also run the punchline-prediction probe")
	fs.StringVar(&cfg.Prober, "prober", cfg.Prober, "Model key used to predict punchlines")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	cfg.Models = nil
	for _, part := range strings.Split(*models, ",") {
		if part = strings.TrimSpace(part); part != "" {
			cfg.Models = append(cfg.Models, part)
		}
	}
	if len(cfg.Models) == 0 {
		return cfg, fmt.Errorf("missing -models")
	}
	return cfg, nil
}
