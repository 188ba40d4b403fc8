package main

import (
	"os"

	"homestay/config"
	"homestay/helper"
	"homestay/shared/logger"

	"github.com/rs/zerolog/log"
)

const (
	argLength = 2
)

func main() {
	logger.InitLogger()

	if len(os.Args) < argLength {
		log.Fatal().Msg("Migration direction (up/down/drop/step-up) is required")
	}

	cfg := config.Get()

	logger.SetLogLevel(cfg)

	var err error

	switch direction := os.Args[1]; direction {
	case helper.DirectionUp:
		err = helper.Up(cfg)
	case helper.DirectionDown:
		err = helper.Down(cfg)
	case helper.DirectionDrop:
		err = helper.Drop(cfg)
	case helper.DirectionStepUp:
		err = helper.StepUp(cfg)
	default:
		log.Fatal().Str("direction", direction).Msg("Invalid direction. Use 'up', 'down', 'drop' or 'step-up'")
	}

	if err != nil {
		log.Fatal().Err(err).Msg("Migration failed")
	}
}
