package s3

import (
	"shop/config"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker/v2"
)

const (
	defaultBreakerMinRequests  = 3
	defaultBreakerFailureRatio = 0.6
	defaultBreakerTimeout      = 30 * time.Second
)

// newBreaker trips once at least MinRequests calls were made in the window and the failure ratio is reached.
func newBreaker(name string, cfg *config.Config) *gobreaker.CircuitBreaker[any] {
	settings := cfg.External.S3.Breaker

	minRequests := settings.MinRequests
	if minRequests == 0 {
		minRequests = defaultBreakerMinRequests
	}

	failureRatio := settings.FailureRatio
	if failureRatio <= 0 {
		failureRatio = defaultBreakerFailureRatio
	}

	timeout := time.Duration(settings.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = defaultBreakerTimeout
	}

	return gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:    name,
		Timeout: timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)

			return counts.Requests >= minRequests && ratio >= failureRatio
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state changed")
		},
	})
}
