package main

import (
	"shop/config"
	"shop/di"
	"shop/helper"
	"shop/shared/logger"
	"shop/shared/timezone"

	"github.com/rs/zerolog/log"

	_ "shop/docs"
)

// @title						Shop API
// @version					1.0
// @description				Product gallery and access token service.
// @BasePath					/
// @accept						json
// @produce					json
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.Configure(cfg)

	if err := timezone.Init(cfg.App.Timezone); err != nil {
		log.Fatal().Err(err).Str("timezone", cfg.App.Timezone).Msg("Failed to load timezone")
	}

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to run migrations")
		}
	}

	http := di.InitializeService()
	http.Serve()
}
