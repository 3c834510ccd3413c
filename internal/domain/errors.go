package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is an expected outcome: no profile, no candidate.
var ErrNotFound = errors.New("not found")

// ErrSelfAction rejects like/block/report/favorite aimed at oneself.
var ErrSelfAction = errors.New("cannot target own profile")

// ValidationError names the field and the constraint it violated.
type ValidationError struct {
	Field      string
	Constraint string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Constraint)
}

func NewValidationError(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Constraint: fmt.Sprintf(format, args...)}
}

// StoreError is a timeout or connectivity failure against durable storage.
// Every mutating operation is idempotent, so the call is safe to retry.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// Temporary marks the error as retryable.
func (e *StoreError) Temporary() bool { return true }

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

func IsStore(err error) bool {
	var s *StoreError
	return errors.As(err, &s)
}
