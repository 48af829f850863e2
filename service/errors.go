package service

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/emzola/bookswap/clients"
	"github.com/emzola/bookswap/internal/validator"
)

var (
	ErrFailedValidation   = errors.New("failed validation")
	ErrRecordNotFound     = errors.New("record not found")
	ErrEditConflict       = errors.New("edit conflict")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateRecord    = errors.New("duplicate record")
	ErrNotPermitted       = errors.New("not permitted")
	// ErrInvalidState is returned when a record is not in the status an
	// operation requires, e.g. responding to a request that is no longer
	// pending.
	ErrInvalidState = errors.New("invalid state")
	ErrUpstream     = errors.New("upstream failure")
)

// ValidationError carries the field messages of a failed validation. It
// matches ErrFailedValidation with errors.Is.
type ValidationError struct {
	Errors map[string]string
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	for i, key := range slices.Sorted(maps.Keys(e.Errors)) {
		if i > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(&b, "%q %s", key, e.Errors[key])
	}
	return b.String()
}

func (e *ValidationError) Unwrap() error {
	return ErrFailedValidation
}

// failedValidation returns the errors collected by v as a ValidationError.
func failedValidation(v *validator.Validator) error {
	return &ValidationError{Errors: v.Errors}
}

func fieldError(key, message string) error {
	return &ValidationError{Errors: map[string]string{key: message}}
}

// UpstreamError reports a failed call to an external service. Status is the
// upstream HTTP status, or zero when no response was received.
type UpstreamError struct {
	Op     string
	Status int
	Err    error
}

func (e *UpstreamError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: upstream responded with status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

func (e *UpstreamError) Is(target error) bool {
	return target == ErrUpstream
}

func upstreamError(op string, err error) error {
	upstream := &UpstreamError{Op: op, Err: err}
	var statusErr *clients.StatusError
	if errors.As(err, &statusErr) {
		upstream.Status = statusErr.StatusCode
	}
	return upstream
}
