package zkperr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewAndIs(t *testing.T) {
	err := New(InvalidInput, "value %d out of range", 5)
	assert.True(t, Is(err, InvalidInput))
	assert.False(t, Is(err, CryptoError))
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestErrorMessage(t *testing.T) {
	err := New(ProofGenerationFailed, "boom")
	assert.Contains(t, err.Error(), "proof generation failed")
	assert.Contains(t, err.Error(), "boom")
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "config error", ConfigError.String())
	assert.Equal(t, "unknown error", Kind(999).String())
}
