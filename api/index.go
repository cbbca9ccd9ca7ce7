package handler

import (
	"net/http"
	"shop/config"
	"shop/di"
	"shop/shared/logger"
	"shop/shared/timezone"
	transport "shop/transport/http"
	"sync"

	"github.com/rs/zerolog/log"

	_ "shop/docs"
)

var (
	service *transport.HTTP
	once    sync.Once
)

func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger()

		logger.Configure(cfg)

		if err := timezone.Init(cfg.App.Timezone); err != nil {
			log.Error().Err(err).Msg("Failed to load timezone, falling back to UTC")
		}

		service = di.InitializeService()
	})

	service.ServeHTTP(w, r)
}
