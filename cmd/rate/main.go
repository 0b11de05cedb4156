// Command rate opens an interactive terminal session for manually rating
// generated jokes on four 1-7 dimensions. Ratings are written back into the
// generation results file after every completed joke, so a session can be
// stopped and resumed at any point.
package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	_ "github.com/joho/godotenv/autoload"

	"benign/pkg/config"
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

	path := args.Jokes
	if path == "" {
		path = utils.Latest(cfg.Paths.PilotDir, "pilot_results", ".json")
	}
	if path == "" {
		log.Fatal("no generation results found", "dir", cfg.Paths.PilotDir)
	}
	jokes, err := utils.Load[[]study.Generation](path)
	if err != nil {
		log.Fatal("load jokes", "path", path, "error", err)
	}

	var pending []int
	for i, j := range jokes {
		if !j.Succeeded() {
			continue
		}
		if !args.All && j.Ratings.Complete() {
			continue
		}
		pending = append(pending, i)
	}
	if len(pending) == 0 {
		fmt.Println("Nothing to rate: every joke already has a complete rating.")
		return
	}

	m := newModel(jokes, pending, func(all []study.Generation) error {
		return utils.Save(path, all)
	})
	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		log.Fatal("rating session", "error", err)
	}
	if fm, ok := final.(model); ok {
		fmt.Printf("Rated %d of %d jokes. Ratings saved to %s\n", fm.completed, len(pending), path)
	}
}

type Config struct {
	Jokes string
	All   bool
}

func parseFlags(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	fs.SetOutput(os.Stderr)

	fs.StringVar(&cfg.Jokes, "jokes", "", "Generation results file (default: most recent under the pilot directory)")
	fs.BoolVar(&cfg.All, "all", false, "Revisit jokes that already have complete ratings")

	return cfg, fs.Parse(args)
}
