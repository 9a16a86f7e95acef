// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Error kinds. Every concrete error below wraps one of these so callers can
// branch with errors.Is.
var (
	// ErrValidation marks user input that failed a precondition.
	ErrValidation = errors.New("validation failed")
	// ErrStorage marks a failed read or write against the storage medium.
	ErrStorage = errors.New("storage failure")
	// ErrInvalidConfig marks a setting that cannot be used.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// ValidationError reports which input field was rejected and why.
// The action that produced it must not have changed any state.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Is lets errors.Is(err, ErrValidation) match.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// StorageError wraps a failure of the persistence layer. It is never fatal:
// loads fall back to defaults and saves leave the in-memory change in place.
type StorageError struct {
	Err error
	Op  string
	Key string
}

func (e *StorageError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("storage %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrStorage) match.
func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}

// NewStorageError wraps err as a StorageError. A nil err yields nil.
func NewStorageError(op, key string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Key: key, Err: err}
}

// IsValidation reports whether err is (or wraps) a validation failure.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsStorage reports whether err is (or wraps) a storage failure.
func IsStorage(err error) bool {
	return errors.Is(err, ErrStorage)
}

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}
