package gerr

import (
	"errors"
	"net/http"
)

var (
	ErrUnauthorized      = errors.New("invalid admin key")
	ErrRateLimited       = errors.New("too many requests")
	ErrInvalidMonth      = errors.New("month must be YYYY-MM or YYYY-MM-01")
	ErrInvalidTarget     = errors.New("invalid target")
	ErrValidation        = errors.New("validation failed")
	ErrNoSnapshot        = errors.New("dashboard not loaded yet")
	ErrWarehouseDisabled = errors.New("warehouse client is disabled")

	ErrStorageUnavailable = errors.New("target storage unreachable")
)

// HTTPStatus maps a sentinel (possibly wrapped) to a response code.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, ErrInvalidMonth), errors.Is(err, ErrInvalidTarget), errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNoSnapshot), errors.Is(err, ErrWarehouseDisabled), errors.Is(err, ErrStorageUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
