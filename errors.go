package faultline

import (
	"errors"
	"fmt"
)

// Sentinel errors for construction-time failures. The classification path
// itself is total: Process never returns an error.
var (
	// ErrInvalidConfig indicates a malformed configuration file or value.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInvalidRule indicates a custom rule that failed validation or
	// compilation.
	ErrInvalidRule = errors.New("invalid rule")
)

// ConfigError wraps a construction-time failure with the operation that
// produced it. It supports errors.Is and errors.As through Unwrap.
type ConfigError struct {
	// Op is the operation that failed (e.g., "LoadConfig", "New").
	Op string

	// Field names the offending configuration field, when known.
	Field string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("faultline: %s: field %q: %v", e.Op, e.Field, e.Err)
	}
	return fmt.Sprintf("faultline: %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error, enabling errors.Is and errors.As.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

func configErr(op, field string, err error) error {
	return &ConfigError{Op: op, Field: field, Err: err}
}
