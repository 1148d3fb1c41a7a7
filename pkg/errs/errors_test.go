package errs

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUpstreamError(t *testing.T) {
	cause := context.DeadlineExceeded
	err := fmt.Errorf("estimate: %w", NewUpstreamError("pricing", cause))

	assert.True(t, IsUpstream(err))
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.False(t, IsNotFound(err))

	var upstream *UpstreamError
	assert.True(t, errors.As(err, &upstream))
	assert.Equal(t, "pricing", upstream.Gateway)
	assert.Contains(t, err.Error(), "pricing")
}

func TestValidationError(t *testing.T) {
	err := &ValidationError{Missing: []string{"storage", "carrier"}}
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "validation failed: missing storage, carrier", err.Error())
	assert.Equal(t, "validation failed", (&ValidationError{}).Error())
}

func TestNotFound(t *testing.T) {
	err := fmt.Errorf("kiosks for 92101: %w", ErrNotFound)
	assert.True(t, IsNotFound(err))
	assert.False(t, IsUpstream(err))
}
