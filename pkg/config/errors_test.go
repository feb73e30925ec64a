package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationErrorFormatsFieldAndUnderlyingError(t *testing.T) {
	err := NewValidationError("probe.concurrency", ErrInvalidValue)
	assert.Contains(t, err.Error(), "probe.concurrency")
	assert.Contains(t, err.Error(), ErrInvalidValue.Error())
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestLoadErrorFormatsFileAndUnderlyingError(t *testing.T) {
	underlying := errors.New("permission denied")
	err := NewLoadError("anna.yaml", underlying)
	assert.Contains(t, err.Error(), "anna.yaml")
	assert.Contains(t, err.Error(), "permission denied")
	assert.ErrorIs(t, err, underlying)
}
