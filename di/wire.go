//go:build wireinject
// +build wireinject

package di

import (
	"shop/config"
	"shop/infras/otel"
	"shop/infras/postgres"
	"shop/infras/redis"
	"shop/infras/s3"
	galleryHandler "shop/internal/handlers/gallery"
	"shop/internal/handlers/health"
	tokenHandler "shop/internal/handlers/token"
	"shop/shared/cache"
	"shop/transport/http"
	"shop/transport/http/middleware"
	"shop/transport/http/router"

	galleryRepository "shop/internal/domains/gallery/repository"
	galleryService "shop/internal/domains/gallery/service"

	tokenRepository "shop/internal/domains/token/repository"
	tokenService "shop/internal/domains/token/service"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	health.NewStatus,
)

var galleryDomain = wire.NewSet(
	galleryRepository.New,
	galleryService.New,
)

var tokenDomain = wire.NewSet(
	tokenRepository.New,
	tokenService.New,
)

var domains = wire.NewSet(
	galleryDomain,
	tokenDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	galleryHandler.New,
	tokenHandler.New,
	health.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
