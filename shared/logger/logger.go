package logger

import (
	"context"
	"io"
	"os"
	"shop/config"
	"shop/shared/constant"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func InitLogger() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}

	log.Logger = log.Output(output)
	log.Trace().Msg("Zerolog initialized.")
}

// Configure applies the configured level and, in production, switches to JSON lines tagged with the app name.
func Configure(cfg *config.Config) {
	SetLogLevel(cfg)

	if cfg.Server.Env != constant.ServerEnvProduction {
		return
	}

	log.Logger = newJSONLogger(os.Stdout, cfg.App.Name)
}

func newJSONLogger(out io.Writer, appName string) zerolog.Logger {
	return zerolog.New(out).With().Timestamp().Str("app", appName).Logger()
}

func ErrorWithStack(err error) {
	log.Error().Msgf("%+v", errors.WithStack(err))
}

// FromContext returns the global logger enriched with the request ID stored in ctx, if any.
func FromContext(ctx context.Context) *zerolog.Logger {
	requestID, ok := ctx.Value(constant.ContextKeyRequestID).(string)
	if !ok || requestID == "" {
		return &log.Logger
	}

	l := log.With().Str("request_id", requestID).Logger()

	return &l
}

func SetLogLevel(config *config.Config) {
	level, err := zerolog.ParseLevel(config.Server.LogLevel)
	if err != nil {
		level = zerolog.TraceLevel
		log.Trace().Str("loglevel", level.String()).Msg("Environment has no log level set up, using default.")
	} else {
		log.Trace().Str("loglevel", level.String()).Msg("Desired log level detected.")
	}

	zerolog.SetGlobalLevel(level)
}
