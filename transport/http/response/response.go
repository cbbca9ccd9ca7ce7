package response

import (
	"encoding/json"
	"net/http"
	"shop/shared/constant"
	"shop/shared/failure"
	"shop/shared/logger"

	"github.com/rs/zerolog/log"
)

const (
	messageRouteNotFound    = "route not found"
	messageMethodNotAllowed = "method not allowed"
)

// Data wraps a successful payload.
type Data[T any] struct {
	Data *T `json:"data,omitempty"`
}

type Error struct {
	Error *string `json:"error,omitempty"`
}

type Message struct {
	Message *string `json:"message,omitempty"`
}

// WithData writes payload under the data key.
func WithData[T any](writer http.ResponseWriter, code int, payload T) {
	write(writer, code, Data[T]{Data: &payload})
}

func WithMessage(writer http.ResponseWriter, code int, message string) {
	write(writer, code, Message{Message: &message})
}

// WithError reports err with the status carried by its failure, or 500. Server errors are logged.
func WithError(writer http.ResponseWriter, err error) {
	code := failure.GetCode(err)
	if code >= http.StatusInternalServerError {
		log.Error().Err(err).Int("status", code).Msg("request failed")
	}

	errMsg := err.Error()

	write(writer, code, Error{Error: &errMsg})
}

func WithRequestLimitExceeded(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusTooManyRequests, constant.ResponseErrorRequestLimitExceeded)
}

func WithPreparingShutdown(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorPrepareShutdown)
}

func WithUnhealthy(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorUnhealthy)
}

// NotFound is the handler for requests that match no route.
func NotFound(writer http.ResponseWriter, _ *http.Request) {
	WithError(writer, &failure.Failure{Code: http.StatusNotFound, Message: messageRouteNotFound})
}

// MethodNotAllowed is the handler for known routes requested with an unsupported method.
func MethodNotAllowed(writer http.ResponseWriter, _ *http.Request) {
	WithError(writer, &failure.Failure{Code: http.StatusMethodNotAllowed, Message: messageMethodNotAllowed})
}

func write(writer http.ResponseWriter, code int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorWithStack(err)
		writer.WriteHeader(http.StatusInternalServerError)

		return
	}

	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	writer.WriteHeader(code)

	if _, err := writer.Write(body); err != nil {
		logger.ErrorWithStack(err)
	}
}
