package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/orgball2608/story-playback/internal/app"
	"github.com/orgball2608/story-playback/pkg/logger"
	"go.uber.org/fx"
)

const stopTimeout = 15 * time.Second

func main() {
	log := logger.New(logger.Opts{Env: os.Getenv("APP_ENV")})

	engine := fx.New(
		fx.Logger(log),
		app.Module,
	)

	if err := engine.Start(context.Background()); err != nil {
		log.Error("Failed to start story playback", "error", err)
		os.Exit(1)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	ctx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()

	// Live sessions are closed and pending views drained before the pool goes away.
	if err := engine.Stop(ctx); err != nil {
		log.Error("Failed to stop story playback", "error", err)
		os.Exit(1)
	}
}
