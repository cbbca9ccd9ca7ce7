package health

import (
	"context"
	"net/http"
	"shop/infras/postgres"
	"shop/shared/constant"
	"shop/transport/http/response"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const pingTimeout = 2 * time.Second

// Pinger reports whether a backing dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type PingerFunc func(ctx context.Context) error

func (f PingerFunc) Ping(ctx context.Context) error {
	return f(ctx)
}

type Handler struct {
	status       *Status
	dependencies map[string]Pinger
}

func New(status *Status, db *postgres.Connection, cache *redis.Client) Handler {
	return NewWithDependencies(status, map[string]Pinger{
		"postgres": db,
		"redis": PingerFunc(func(ctx context.Context) error {
			return cache.Ping(ctx).Err()
		}),
	})
}

func NewWithDependencies(status *Status, dependencies map[string]Pinger) Handler {
	return Handler{
		status:       status,
		dependencies: dependencies,
	}
}

// Health reports readiness. It answers 503 while the server is shutting down or a dependency is unreachable.
// @Summary Readiness check
// @Tags Health
// @Produce json
// @Success 200 {object} response.Message
// @Failure 503 {object} response.Message
// @Router /health [get]
func (handler *Handler) Health(writer http.ResponseWriter, request *http.Request) {
	if handler.status.ShuttingDown() {
		response.WithPreparingShutdown(writer)

		return
	}

	ctx, cancel := context.WithTimeout(request.Context(), pingTimeout)
	defer cancel()

	for name, dependency := range handler.dependencies {
		if err := dependency.Ping(ctx); err != nil {
			log.Error().Err(err).Str("dependency", name).Msg("health check failed")
			response.WithUnhealthy(writer)

			return
		}
	}

	response.WithMessage(writer, http.StatusOK, constant.ResponseHealthy)
}
