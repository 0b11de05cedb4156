// Command serve exposes a prior study run over HTTP: the raw generation
// records plus the aggregated analyses, for browsing results without
// re-running anything.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"
	"github.com/labstack/gommon/log"

	"benign/pkg/config"
	"benign/pkg/server"
)

func main() {
	ctx, done := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer done()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	data, err := server.LoadData(cfg)
	if err != nil {
		log.Fatalf("Failed to load study results: %v", err)
	}
	if len(data.Generations) == 0 {
		log.Warnf("No generation results under %s; serving empty data", cfg.Paths.PilotDir)
	}

	srv := server.NewServer(data)
	srv.Echo.Logger.SetLevel(log.INFO)

	addr := ":8080"
	if envAddr := os.Getenv("PORT"); envAddr != "" {
		addr = ":" + envAddr
	}

	finishedShutDown := make(chan struct{})
	go func() {
		<-ctx.Done()
		if err := srv.Shutdown(context.Background()); err != nil {
			log.Fatal(err)
		}
		close(finishedShutDown)
	}()

	if err := srv.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error(err)
	}
	<-finishedShutDown
}
