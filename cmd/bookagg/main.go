package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/caesar-terminal/bookagg/internal/app"
	"github.com/caesar-terminal/bookagg/internal/config"
	"github.com/caesar-terminal/bookagg/internal/logger"
)

func main() {
	// A missing .env is fine; real deployments set the environment.
	_ = godotenv.Load()

	cfg, err := config.Load(os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Get().Configure(cfg.Log.Level, cfg.Log.Format, cfg.Log.File, cfg.Log.MaxSizeMB, cfg.Log.MaxAgeDays); err != nil {
		fmt.Fprintf(os.Stderr, "failed to configure logging: %v\n", err)
		os.Exit(1)
	}
	defer logger.Get().Close()

	log := logger.Get().WithComponent("main")
	log.WithField("env", cfg.Env).Info("order book aggregator starting")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	a, err := app.New(ctx, cfg)
	if err != nil {
		log.WithError(err).Error("startup failed")
		logger.Get().Close()
		os.Exit(1)
	}
	if err := a.Run(ctx); err != nil {
		log.WithError(err).Error("aggregator stopped with error")
		logger.Get().Close()
		os.Exit(1)
	}
}
