package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents different types of errors in the system
type ErrorType string

const (
	// ErrorTypeValidation indicates invalid client input
	ErrorTypeValidation ErrorType = "VALIDATION"

	// ErrorTypeConfiguration indicates missing or invalid service configuration
	ErrorTypeConfiguration ErrorType = "CONFIGURATION"

	// ErrorTypeUpstream indicates a failure talking to the analysis provider
	ErrorTypeUpstream ErrorType = "UPSTREAM"

	// ErrorTypeInternal indicates an internal server error
	ErrorTypeInternal ErrorType = "INTERNAL"
)

// UpstreamKind narrows an upstream error down to its failure mode.
type UpstreamKind string

const (
	UpstreamTimeout     UpstreamKind = "timeout"
	UpstreamConnection  UpstreamKind = "connection"
	UpstreamHTTPStatus  UpstreamKind = "http_status"
	UpstreamBadEnvelope UpstreamKind = "malformed_envelope"
	UpstreamBadJSON     UpstreamKind = "invalid_json"
)

// AppError represents an application error
type AppError struct {
	Type    ErrorType
	Kind    UpstreamKind // set only for ErrorTypeUpstream
	Message string
	Err     error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap implements the unwrap interface
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a new validation error
func NewValidationError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: message,
	}
}

// NewConfigurationError creates a new configuration error
func NewConfigurationError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeConfiguration,
		Message: message,
	}
}

// NewUpstreamError creates a new upstream provider error
func NewUpstreamError(kind UpstreamKind, message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeUpstream,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// NewInternalError creates a new internal error
func NewInternalError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeInternal,
		Message: message,
		Err:     err,
	}
}

// AsAppError extracts an *AppError from an error chain, if present.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
