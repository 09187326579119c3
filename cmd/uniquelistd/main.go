package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"uniquelist/internal/config"
	uhttp "uniquelist/internal/http"
	"uniquelist/pkg/metrics"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			slog.Error("Failed to load config", "path", *configPath, "error", err)
			os.Exit(1)
		}
	}

	setupLogger(cfg.Logger)

	server := uhttp.NewServer(cfg, metrics.NewRegistry())
	if err := server.Start(); err != nil {
		slog.Error("Failed to start server", "error", err)
		os.Exit(1)
	}

	<-ctx.Done()

	if err := server.Stop(); err != nil {
		slog.Error("Failed to stop server", "error", err)
		os.Exit(1)
	}
	slog.Info("Server stopped")
}

func setupLogger(cfg config.LoggerConfig) {
	level := slog.LevelInfo
	switch strings.ToUpper(cfg.Level) {
	case "DEBUG":
		level = slog.LevelDebug
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.JSON {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}
