package api

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvelopeTransformer(t *testing.T) {
	t.Run("wraps data", func(t *testing.T) {
		out, err := EnvelopeTransformer(nil, "200", map[string]string{"id": "list-1"})
		require.NoError(t, err)

		env, ok := out.(APIEnvelope)
		require.True(t, ok)
		assert.Equal(t, EnvelopeVersion, env.Version)
		assert.True(t, env.Success)
		assert.Equal(t, map[string]string{"id": "list-1"}, env.Data)
	})

	t.Run("flattens coded errors", func(t *testing.T) {
		apiErr := &APIError{status: http.StatusNotFound, Code: "NOT_FOUND", Message: "List not found"}
		out, err := EnvelopeTransformer(nil, "404", apiErr)
		require.NoError(t, err)

		env, ok := out.(APIErrorEnvelope)
		require.True(t, ok)
		assert.False(t, env.Success)
		assert.Equal(t, "NOT_FOUND", env.Code)
		assert.Equal(t, "List not found", env.Message)
	})

	t.Run("bare errors", func(t *testing.T) {
		out, err := EnvelopeTransformer(nil, "500", errors.New("boom"))
		require.NoError(t, err)

		env, ok := out.(APIEnvelope)
		require.True(t, ok)
		assert.False(t, env.Success)
		assert.Equal(t, "boom", env.Error)
	})
}

func TestStatusToCode(t *testing.T) {
	tests := map[int]string{
		http.StatusBadRequest:          "VALIDATION",
		http.StatusUnprocessableEntity: "VALIDATION",
		http.StatusUnauthorized:        "NOT_AUTHENTICATED",
		http.StatusNotFound:            "NOT_FOUND",
		http.StatusTooManyRequests:     "RATE_LIMITED",
		http.StatusBadGateway:          "UPSTREAM",
		http.StatusServiceUnavailable:  "NOT_CONFIGURED",
		http.StatusTeapot:              "INTERNAL",
	}
	for status, code := range tests {
		assert.Equal(t, code, statusToCode(status), "status %d", status)
	}
}
