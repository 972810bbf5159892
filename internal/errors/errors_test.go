package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError(t *testing.T) {
	err := NewValidationError("room", "problem_type")
	assert.Equal(t, "missing required fields: room, problem_type", err.Error())
	assert.Equal(t, []string{"room", "problem_type"}, err.Missing)
	assert.True(t, IsValidation(err))
	assert.False(t, IsSinkUnavailable(err))
}

func TestSinkUnavailableError(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := NewSinkUnavailableError("telegram", "send failed", cause)

	assert.Equal(t, "sink telegram unavailable: send failed: connection refused", err.Error())
	assert.True(t, IsSinkUnavailable(err))
	assert.True(t, stderrors.Is(err, cause), "wrapped cause must survive Unwrap")

	bare := NewSinkUnavailableError("sheets", "not configured", nil)
	assert.Equal(t, "sink sheets unavailable: not configured", bare.Error())
}

func TestEncodingError(t *testing.T) {
	cause := fmt.Errorf("content too long")
	err := NewEncodingError("failed to encode URL", cause)

	assert.Equal(t, "encoding error: failed to encode URL: content too long", err.Error())
	assert.True(t, IsEncoding(err))
	assert.True(t, stderrors.Is(err, cause))
	assert.False(t, IsValidation(err))
}
