package service

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks bad user input. Wrapped errors carry the field detail.
	ErrValidation = errors.New("validation failed")
	// ErrUpstream marks a failure of an external data provider.
	ErrUpstream = errors.New("upstream provider failed")
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func upstream(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrUpstream, err)
}
