package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/qj0r9j0vc2/monitor-bridge/internal/app"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	application, err := app.New(configPath)
	if err != nil {
		slog.Error("failed to initialize application", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := application.Start(ctx); err != nil {
		slog.Error("server error", "error", err)
		application.Shutdown()
		os.Exit(1)
	}

	if err := application.Shutdown(); err != nil {
		os.Exit(1)
	}
}
