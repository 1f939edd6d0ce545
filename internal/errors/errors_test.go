package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_IsMatchesByCode(t *testing.T) {
	err := UserNotFound("Requesting user not found")

	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.NotErrorIs(t, err, ErrNotFound)

	wrapped := fmt.Errorf("accept: %w", err)
	assert.ErrorIs(t, wrapped, ErrUserNotFound)
}

func TestError_WrapKeepsCause(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := Wrap(cause, CodeInternal, "failed to save users")

	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, ErrInternal)
	assert.Equal(t, "failed to save users: disk full", err.Error())
}

func TestError_WithDetails(t *testing.T) {
	details := map[string]string{"email": "must be a valid email address"}
	err := ErrValidation.WithDetails(details)

	assert.Equal(t, details, err.Details)
	assert.Nil(t, ErrValidation.Details, "sentinel must not be mutated")
}

func TestCode_HTTPStatus(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{CodeNotFound, http.StatusNotFound},
		{CodeUserNotFound, http.StatusNotFound},
		{CodeDuplicateUsername, http.StatusConflict},
		{CodeDuplicateEmail, http.StatusConflict},
		{CodeNotAuthenticated, http.StatusUnauthorized},
		{CodeSelfFollow, http.StatusBadRequest},
		{CodeValidation, http.StatusBadRequest},
		{CodeNotConfigured, http.StatusServiceUnavailable},
		{CodeUpstream, http.StatusBadGateway},
		{CodeRateLimited, http.StatusTooManyRequests},
		{CodeInternal, http.StatusInternalServerError},
		{Code("SOMETHING_ELSE"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.code.HTTPStatus())
		})
	}
}
