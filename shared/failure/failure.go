package failure

import (
	"errors"
	"net/http"
)

// Failure is an error carrying the HTTP status it should be reported with.
type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`

	cause error
}

var InvalidContentType = &Failure{Code: http.StatusUnsupportedMediaType, Message: "unsupported content type"}

func (e *Failure) Error() string {
	return e.Message
}

// Unwrap exposes the error the failure was built from, if any.
func (e *Failure) Unwrap() error {
	return e.cause
}

// BadRequest reports err to the client as a 400. A nil err stays nil.
func BadRequest(err error) error {
	if err == nil {
		return nil
	}

	return &Failure{
		Code:    http.StatusBadRequest,
		Message: err.Error(),
		cause:   err,
	}
}

func BadRequestFromString(msg string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Message: msg,
	}
}

// NotFound is returned when no stored record matches the requested entity.
func NotFound(entityName string) error {
	return &Failure{
		Code:    http.StatusNotFound,
		Message: entityName + " not found",
	}
}

func Conflict(message string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Message: message,
	}
}

// IsNotFound reports whether err carries a not found code.
func IsNotFound(err error) bool {
	return GetCode(err) == http.StatusNotFound
}

// IsClientError reports whether err is a failure caused by the request rather than the server.
func IsClientError(err error) bool {
	code := GetCode(err)

	return code >= http.StatusBadRequest && code < http.StatusInternalServerError
}

// GetCode returns the status of the first Failure in err's chain, or 500.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}
