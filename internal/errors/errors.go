// Package errors provides custom error types for the roomcare application.
//
// This package defines domain-specific errors that help with error handling
// and recovery throughout the application. Each error type provides context
// about what went wrong and can be used for specific recovery strategies.
package errors

import (
	"fmt"
	"strings"
)

// ValidationError indicates that an inbound submission is incomplete.
//
// This error is returned when:
//   - The room reference is missing from the payload
//   - The problem kind code is missing from the payload
//
// All missing fields are collected into a single error so the caller can
// report them at once. A submission that fails validation never reaches
// any sink.
//
// Recovery strategy: fix the payload and resubmit; never retried internally
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Missing, ", "))
}

// NewValidationError creates a validation error for the given missing fields
func NewValidationError(missing ...string) *ValidationError {
	return &ValidationError{Missing: missing}
}

// SinkUnavailableError indicates that a notification sink could not accept a record.
//
// This error is returned when:
//   - The sink has no credentials configured (soft skip)
//   - The sink's endpoint is unreachable or times out
//   - The sink's API rejects the request
//
// Recovery strategy: none inside the dispatcher; the failure is reported as
// that sink's outcome and the other sinks proceed independently
type SinkUnavailableError struct {
	Sink    string
	Message string
	Err     error
}

func (e *SinkUnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("sink %s unavailable: %s: %v", e.Sink, e.Message, e.Err)
	}
	return fmt.Sprintf("sink %s unavailable: %s", e.Sink, e.Message)
}

// Unwrap returns the wrapped error for error chain inspection
func (e *SinkUnavailableError) Unwrap() error {
	return e.Err
}

// NewSinkUnavailableError creates a new sink unavailability error with context
func NewSinkUnavailableError(sink, msg string, err error) *SinkUnavailableError {
	return &SinkUnavailableError{Sink: sink, Message: msg, Err: err}
}

// EncodingError indicates that room token generation failed.
//
// This error is returned when:
//   - The deep link URL cannot be encoded into a QR matrix
//   - The PNG image cannot be rendered
//
// Recovery strategy: surface directly to the token-generation caller;
// unrelated to the submission flow
type EncodingError struct {
	Message string
	Err     error
}

func (e *EncodingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("encoding error: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("encoding error: %s", e.Message)
}

// Unwrap returns the wrapped error for error chain inspection
func (e *EncodingError) Unwrap() error {
	return e.Err
}

// NewEncodingError creates a new encoding error with context
func NewEncodingError(msg string, err error) *EncodingError {
	return &EncodingError{Message: msg, Err: err}
}

// IsValidation checks if the error is a validation error
func IsValidation(err error) bool {
	_, ok := err.(*ValidationError)
	return ok
}

// IsSinkUnavailable checks if the error is a sink unavailability error
func IsSinkUnavailable(err error) bool {
	_, ok := err.(*SinkUnavailableError)
	return ok
}

// IsEncoding checks if the error is an encoding error
func IsEncoding(err error) bool {
	_, ok := err.(*EncodingError)
	return ok
}
