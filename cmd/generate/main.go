// Command generate runs the joke-generation grid: every configured model by
// every requested category, temperature, and prompt. Results, including
// failed calls, are written as a timestamped JSON file under the pilot
// directory.
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
	if missing := cfg.MissingKeys(args.Models...); len(missing) > 0 {
		log.Fatal("missing API keys", "env", strings.Join(missing, ", "))
	}
	if args.Structured {
		cfg.Models.Structured = true
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner, err := study.NewRunner(cfg, args.Models)
	if err != nil {
		log.Fatal("build runner", "error", err)
	}

	tokens, err := runner.EstimateTokens(args.Categories)
	if err != nil {
		log.Fatal("estimate tokens", "error", err)
	}
	log.Info("starting generation grid",
		"models", strings.Join(args.Models, ","),
		"categories", strings.Join(args.Categories, ","),
		"conditions", runner.GridSize(args.Categories),
		"prompt_tokens", tokens)
	if args.DryRun {
		fmt.Printf("conditions=%d prompt_tokens=%d\n", runner.GridSize(args.Categories), tokens)
		return
	}

	results, runErr := runner.Run(ctx, args.Models, args.Categories)
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		log.Fatal("run grid", "error", runErr)
	}

	out := args.Out
	if out == "" {
		out = utils.Timestamped(cfg.Paths.PilotDir, "pilot_results", ".json")
	}
	if err := utils.Save(out, results); err != nil {
		log.Fatal("save results", "path", out, "error", err)
	}

	succeeded := 0
	for _, r := range results {
		if r.Succeeded() {
			succeeded++
		}
	}
	log.Info("generation complete", "total", len(results), "succeeded", succeeded, "path", out)
	if runErr != nil {
		log.Warn("run interrupted, results are partial")
		os.Exit(1)
	}
}

type Config struct {
	Models     []string
	Categories []string
	Out        string
	DryRun     bool
	Structured bool
}

func defaultConfig() Config {
	return Config{
		Models:     []string{config.ModelGPT4o, config.ModelClaude, config.ModelGemini},
		Categories: prompts.Categories(),
	}
}

func parseFlags(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := defaultConfig()
	fs.SetOutput(os.Stderr)

	models := fs.String("models", strings.Join(cfg.Models, ","), "Comma-separated model keys to run (gpt4o, claude, gemini)")
	categories := fs.String("categories", strings.Join(cfg.Categories, ","), "Comma-separated joke categories to run")
	fs.StringVar(&cfg.Out, "out", "", "Output path (default: timestamped file under the pilot directory)")
	fs.BoolVar(&cfg.DryRun, "dry-run", false, "Print the grid size and token estimate, then exit")
	fs.BoolVar(&cfg.Structured, "structured", false, "Request labeled setup/punchline JSON where the provider supports it")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	cfg.Models = splitList(*models)
	cfg.Categories = splitList(*categories)
	if len(cfg.Models) == 0 {
		return cfg, fmt.Errorf("missing -models")
	}
	if len(cfg.Categories) == 0 {
		return cfg, fmt.Errorf("missing -categories")
	}
	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
