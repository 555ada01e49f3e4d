package gerr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusOK, HTTPStatus(nil))
	assert.Equal(t, http.StatusUnauthorized, HTTPStatus(ErrUnauthorized))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(fmt.Errorf("parse month %q: %w", "x", ErrInvalidMonth)))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(fmt.Errorf("row 2: %w", ErrInvalidTarget)))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(ErrValidation))
	assert.Equal(t, http.StatusTooManyRequests, HTTPStatus(ErrRateLimited))
	assert.Equal(t, http.StatusServiceUnavailable, HTTPStatus(ErrNoSnapshot))
	assert.Equal(t, http.StatusServiceUnavailable, HTTPStatus(fmt.Errorf("ping: %w", ErrStorageUnavailable)))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("boom")))
}
