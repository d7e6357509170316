// Package errors provides consistent error types for the toggl CLI.
// It distinguishes errors the caller can fix (validation, bad input) from
// violations of the entity field contracts and from remote-call failures.
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors for common conditions.
var (
	ErrNotRunning      = errors.New("time entry is not currently running")
	ErrMissingID       = errors.New("time entry must have an id")
	ErrNoDuration      = errors.New(`time entry has no "duration" property`)
	ErrNoStart         = errors.New(`time entry has no "start" property`)
	ErrNoSuchWorkspace = errors.New("workspace not found")
	ErrNoSuchProject   = errors.New("project not found")
	ErrNoSuchClient    = errors.New("client not found")
	ErrNoSuchEntry     = errors.New("time entry not found")
	ErrMissingToken    = errors.New("api token is not configured")
)

// ValidationError reports a required field missing before a remote call.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("time entries must have a '%s' property", e.Field)
}

// TypeMismatchError reports a value whose type does not satisfy a field's
// validator, e.g. a string assigned to a date-time field.
type TypeMismatchError struct {
	Field string
	Want  string
	Value any
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("field '%s' requires %s, got %T", e.Field, e.Want, e.Value)
}

// ReadOnlyError reports an assignment to a read-only field outside of
// construction.
type ReadOnlyError struct {
	Field string
}

func (e *ReadOnlyError) Error() string {
	return fmt.Sprintf("field '%s' is read-only", e.Field)
}

// WriteOnceError reports a second assignment to a write-once field.
type WriteOnceError struct {
	Field string
}

func (e *WriteOnceError) Error() string {
	return fmt.Sprintf("field '%s' can only be written once", e.Field)
}

// UnknownFieldError reports a value supplied for a field the entity type does
// not declare.
type UnknownFieldError struct {
	Field string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("unknown field '%s'", e.Field)
}

// UnknownKeyError reports a time entry attribute outside the closed key set.
type UnknownKeyError struct {
	Key string
}

func (e *UnknownKeyError) Error() string {
	return fmt.Sprintf("unknown time entry property '%s'", e.Key)
}

// StateError reports an operation attempted in a lifecycle state that does
// not permit it, e.g. stopping an entry that is not running.
type StateError struct {
	Op     string
	Reason error
}

func (e *StateError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

func (e *StateError) Unwrap() error {
	return e.Reason
}

// LookupError reports a reference list lookup that resolved to nothing.
type LookupError struct {
	Kind string // "workspace", "project", "client", "time entry"
	Name string
	Err  error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%s '%s' not found", e.Kind, e.Name)
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

// TransportError reports a failed remote call. The status is zero when the
// request never reached the server.
type TransportError struct {
	Method   string
	Endpoint string
	Status   int
	Body     string
	Cause    error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s %s: unexpected status %d: %s", e.Method, e.Endpoint, e.Status, e.Body)
	}
	return fmt.Sprintf("%s %s: %v", e.Method, e.Endpoint, e.Cause)
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}

// IsValidation checks if an error is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsTypeMismatch checks if an error is a TypeMismatchError.
func IsTypeMismatch(err error) bool {
	var te *TypeMismatchError
	return errors.As(err, &te)
}

// IsReadOnly checks if an error is a ReadOnlyError.
func IsReadOnly(err error) bool {
	var re *ReadOnlyError
	return errors.As(err, &re)
}

// IsWriteOnce checks if an error is a WriteOnceError.
func IsWriteOnce(err error) bool {
	var we *WriteOnceError
	return errors.As(err, &we)
}

// IsState checks if an error is a StateError.
func IsState(err error) bool {
	var se *StateError
	return errors.As(err, &se)
}

// IsLookup checks if an error is a LookupError.
func IsLookup(err error) bool {
	var le *LookupError
	return errors.As(err, &le)
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted additional context.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
