package faultline

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigErrorMessage(t *testing.T) {
	err := configErr("New", "confidence_floor", ErrInvalidConfig)
	assert.Contains(t, err.Error(), "New")
	assert.Contains(t, err.Error(), "confidence_floor")

	bare := configErr("LoadConfig", "", ErrInvalidConfig)
	assert.Contains(t, bare.Error(), "LoadConfig")
	assert.NotContains(t, bare.Error(), "field")
}

func TestConfigErrorUnwrap(t *testing.T) {
	err := configErr("New", "rules", ErrInvalidRule)

	assert.ErrorIs(t, err, ErrInvalidRule)
	assert.NotErrorIs(t, err, ErrInvalidConfig)

	var cfgErr *ConfigError
	assert.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "New", cfgErr.Op)
	assert.Equal(t, "rules", cfgErr.Field)
}
