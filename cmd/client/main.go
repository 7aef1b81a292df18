package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/dkurbatovs/shopcart/internal/cli"
	"github.com/dkurbatovs/shopcart/internal/config"
	"github.com/dkurbatovs/shopcart/internal/logging"
)

func main() {
	cfg := config.LoadConfig()

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})
	log := logging.NewSlogLogger(slog.New(handler))

	app, err := cli.NewApp(cfg, log)
	if err != nil {
		slog.Error("failed to start", "error", err)
		os.Exit(1)
	}
	defer app.Close()

	app.Root(context.Background())
}
