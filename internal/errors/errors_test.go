package errors

import (
	"context"
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		category ErrorCategory
		status   int
	}{
		{"validation", NewValidationError("text is required"), CategoryValidation, http.StatusBadRequest},
		{"not found", NewNotFoundError("analysis", "abc-123"), CategoryNotFound, http.StatusNotFound},
		{"timeout", NewTimeoutError("too slow", nil), CategoryTimeout, http.StatusGatewayTimeout},
		{"rate limit", NewRateLimitError("60"), CategoryRateLimit, http.StatusTooManyRequests},
		{"annotator", NewAnnotatorError("parse failed", stderrors.New("boom")), CategoryAnnotator, http.StatusBadGateway},
		{"configuration", NewConfigurationError("bad thresholds", nil), CategoryConfiguration, http.StatusInternalServerError},
		{"internal", NewInternalError("oops", nil), CategoryInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.category, tt.err.Category)
			assert.Equal(t, tt.status, tt.err.HTTPStatus)
			assert.NotEmpty(t, tt.err.Error())
			assert.False(t, tt.err.Timestamp.IsZero())
		})
	}
}

func TestToAppError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		category ErrorCategory
	}{
		{"connection refused", stderrors.New("dial tcp: connection refused"), CategoryAnnotator},
		{"annotation service message", stderrors.New("annotation service unreachable"), CategoryAnnotator},
		{"timeout message", stderrors.New("i/o timeout"), CategoryTimeout},
		{"context canceled", context.Canceled, CategoryTimeout},
		{"context deadline", context.DeadlineExceeded, CategoryTimeout},
		{"unknown", stderrors.New("something odd"), CategoryInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := ToAppError(tt.err)
			require.NotNil(t, appErr)
			assert.Equal(t, tt.category, appErr.Category)
		})
	}

	t.Run("nil", func(t *testing.T) {
		assert.Nil(t, ToAppError(nil))
	})

	t.Run("passthrough", func(t *testing.T) {
		orig := NewValidationError("bad input")
		assert.Same(t, orig, ToAppError(orig))
	})
}

func TestIsRetryableError(t *testing.T) {
	assert.True(t, IsRetryableError(NewAnnotatorError("down", nil)))
	assert.True(t, IsRetryableError(NewTimeoutError("slow", nil)))
	assert.True(t, IsRetryableError(NewRateLimitError("1")))
	assert.False(t, IsRetryableError(NewValidationError("bad")))
	assert.False(t, IsRetryableError(NewNotFoundError("analysis", "x")))
}

func TestWrapError(t *testing.T) {
	base := stderrors.New("base")
	wrapped := WrapError(base, "loading %s", "config")
	require.Error(t, wrapped)
	assert.Equal(t, "loading config: base", wrapped.Error())
	assert.ErrorIs(t, wrapped, base)

	assert.NoError(t, WrapError(nil, "ignored"))
}
