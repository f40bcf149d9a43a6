package httpapi

import (
	"errors"
	"net/http"

	"slidedeck/internal/logger"
	"slidedeck/internal/services"
)

// handlerWithError is an HTTP handler that can return an error.
type handlerWithError func(http.ResponseWriter, *http.Request) error

// badRequestError marks errors caused by the request itself.
type badRequestError struct {
	err error
}

func (e *badRequestError) Error() string { return e.err.Error() }
func (e *badRequestError) Unwrap() error { return e.err }

func badRequest(err error) error {
	return &badRequestError{err: err}
}

// errorCode maps an error to an HTTP status code.
func errorCode(err error) int {
	var br *badRequestError
	switch {
	case errors.As(err, &br):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrLayoutNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// errorHandler converts errors returned by fn into HTTP responses. 5xx
// details are logged and replaced with a generic message.
func errorHandler(fn handlerWithError) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := fn(w, r)
		if err == nil {
			return
		}

		code := errorCode(err)
		if code >= http.StatusInternalServerError {
			logger.Error("Internal server error", "error", err, "path", r.URL.Path, "request_id", RequestID(r.Context()))
			http.Error(w, http.StatusText(code), code)
			return
		}

		http.Error(w, err.Error(), code)
	}
}
