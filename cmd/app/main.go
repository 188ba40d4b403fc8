package main

import (
	"homestay/config"
	"homestay/di"
	"homestay/helper"
	"homestay/shared/logger"

	"github.com/rs/zerolog/log"
)

// @title Homestay Booking API
// @version 1.0
// @description Rooms, bookings and reports of a small homestay.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to run database migrations")
		}
	}

	http := di.InitializeService()
	http.Serve()
}
