package apperror

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	e := New("PRV_003", "The requested product could not be found", http.StatusNotFound)
	assert.Equal(t, "[PRV_003] The requested product could not be found", e.Error())
}

func TestAppError_ErrorWithWrapped(t *testing.T) {
	inner := errors.New("connection reset")
	e := ErrProviderUnavailable(inner)
	assert.Contains(t, e.Error(), "PRV_001")
	assert.Contains(t, e.Error(), "connection reset")
}

func TestAppError_Unwrap(t *testing.T) {
	inner := errors.New("dial tcp: timeout")
	e := Wrap("PRV_001", "HTTP request failed after retries", http.StatusServiceUnavailable, inner)
	assert.True(t, errors.Is(e, inner))
}

func TestErrProviderNotConfigured(t *testing.T) {
	e := ErrProviderNotConfigured("Amazon")
	assert.Equal(t, "CFG_001", e.Code)
	assert.Equal(t, http.StatusServiceUnavailable, e.HTTPStatus)
	assert.Contains(t, e.Message, "Amazon")
}

func TestErrVendor_CarriesStatusAndBody(t *testing.T) {
	e := ErrVendor("Walmart", 429, "too many requests")
	assert.Equal(t, "PRV_002", e.Code)
	assert.Equal(t, http.StatusBadGateway, e.HTTPStatus)
	assert.Contains(t, e.Message, "429")
	assert.Contains(t, e.Message, "too many requests")
}

func TestErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    *AppError
		status int
	}{
		{"not found", ErrProductNotFound(), http.StatusNotFound},
		{"filtered", ErrContentFiltered(), http.StatusForbidden},
		{"bad credentials", ErrInvalidCredentials(), http.StatusUnauthorized},
		{"duplicate username", ErrUsernameExists(), http.StatusConflict},
		{"bad token", ErrInvalidToken(), http.StatusUnauthorized},
		{"unknown location", ErrLocationUnknown("atlantis"), http.StatusNotFound},
		{"validation", Validation("keywords is required"), http.StatusBadRequest},
		{"internal", InternalError(errors.New("boom")), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.HTTPStatus)
		})
	}
}
