package main

import (
	"os"
	"shop/config"
	"shop/helper"
	"shop/shared/logger"

	"github.com/rs/zerolog/log"
)

const (
	argLength = 2
)

func main() {
	logger.InitLogger()

	if len(os.Args) < argLength {
		log.Fatal().Msg("Migration direction (up/down) is required")
	}

	cfg := config.Get()

	logger.SetLogLevel(cfg)

	action := os.Args[1]

	if err := helper.Runner(cfg, action); err != nil {
		log.Fatal().Err(err).Str("action", action).Msg("Invalid direction. Use 'up', 'down', 'drop' or 'step-up'")
	}

	log.Info().Str("action", action).Msg("Migration completed")
}
