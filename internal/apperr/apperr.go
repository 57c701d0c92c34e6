// Package apperr defines the error taxonomy surfaced to API callers.
// Every failure wraps one of the sentinels so handlers can pick a status
// code with errors.Is without inspecting messages.
package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrValidation    = errors.New("invalid input")
	ErrNotFound      = errors.New("not found")
	ErrProvider      = errors.New("provider failure")
	ErrConfiguration = errors.New("configuration error")
)

func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", op, err)
}

func Validation(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrValidation)...)
}

func NotFound(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrNotFound)...)
}

func Configuration(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrConfiguration)...)
}

// ProviderError carries the upstream provider's status alongside the
// failed operation. It unwraps to ErrProvider.
type ProviderError struct {
	Provider string // e.g. "places", "geocode"
	Status   string // provider status string or transport description
	Err      error  // underlying transport error, may be nil
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s provider: %s: %v", e.Provider, e.Status, e.Err)
	}
	return fmt.Sprintf("%s provider returned status %s", e.Provider, e.Status)
}

func (e *ProviderError) Unwrap() error { return ErrProvider }
