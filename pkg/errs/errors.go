// Package errs holds the error taxonomy shared by the dialogue engine and its gateways.
package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUpstream   = errors.New("upstream service failed")
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
)

// UpstreamError is returned by any gateway call that fails or yields a malformed payload.
type UpstreamError struct {
	Gateway string
	Err     error
}

func NewUpstreamError(gateway string, err error) *UpstreamError {
	return &UpstreamError{Gateway: gateway, Err: err}
}

func (e *UpstreamError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Gateway, ErrUpstream)
	}
	return fmt.Sprintf("%s: %s: %v", e.Gateway, ErrUpstream, e.Err)
}

// Unwrap exposes both ErrUpstream and the cause to errors.Is / errors.As.
func (e *UpstreamError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrUpstream}
	}
	return []error{ErrUpstream, e.Err}
}

// ValidationError lists the required fields that were absent.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	if len(e.Missing) == 0 {
		return ErrValidation.Error()
	}
	return fmt.Sprintf("%s: missing %s", ErrValidation, strings.Join(e.Missing, ", "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func IsUpstream(err error) bool {
	return errors.Is(err, ErrUpstream)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
