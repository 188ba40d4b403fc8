package main

import (
	"context"
	"os/signal"
	"syscall"

	"homestay/config"
	"homestay/di"
	"homestay/shared/logger"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	worker, err := di.InitializeWorker()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize worker")
	}

	if err := worker.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("Worker stopped unexpectedly")
	}
}
