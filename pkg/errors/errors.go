package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// Domain errors
	ErrorTypeValidation     ErrorType = "VALIDATION"
	ErrorTypeUnknownElement ErrorType = "UNKNOWN_ELEMENT"
	ErrorTypeNotFound       ErrorType = "NOT_FOUND"
	ErrorTypeDuplicateName  ErrorType = "DUPLICATE_NAME"
	ErrorTypeForbidden      ErrorType = "FORBIDDEN"

	// Generation pipeline errors
	ErrorTypeMalformedGeneration ErrorType = "MALFORMED_GENERATION"
	ErrorTypeGenerationFailed    ErrorType = "GENERATION_FAILED"
	ErrorTypeImageGeneration     ErrorType = "IMAGE_GENERATION"
	ErrorTypeStorageUpload       ErrorType = "STORAGE_UPLOAD"

	// Infrastructure errors
	ErrorTypeInternal ErrorType = "INTERNAL"
	ErrorTypeDatabase ErrorType = "DATABASE"
)

// AppError represents an application-specific error
type AppError struct {
	Type       ErrorType              `json:"type"`
	Message    string                 `json:"message"`
	Details    map[string]interface{} `json:"details,omitempty"`
	Cause      error                  `json:"-"`
	HTTPStatus int                    `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithDetails adds error details
func (e *AppError) WithDetails(details map[string]interface{}) *AppError {
	e.Details = details
	return e
}

// WithCause wraps an underlying error
func (e *AppError) WithCause(err error) *AppError {
	e.Cause = err
	return e
}

// Constructor functions for common error types

// NewValidationError creates a validation error
func NewValidationError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewNotFoundError creates a not found error
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
	}
}

// NewUnknownElementError reports a fusion parent the store does not hold.
// This signals stale or inconsistent client state, not a server fault.
func NewUnknownElementError(name string) *AppError {
	return &AppError{
		Type:       ErrorTypeUnknownElement,
		Message:    fmt.Sprintf("element '%s' does not exist", name),
		HTTPStatus: http.StatusNotFound,
	}
}

// NewDuplicateNameError reports a violation of the store's unique-name
// constraint. The orchestrator resolves this by convergence at creation
// time; anywhere else it surfaces as a conflict.
func NewDuplicateNameError(name string) *AppError {
	return &AppError{
		Type:       ErrorTypeDuplicateName,
		Message:    fmt.Sprintf("an element named '%s' already exists", name),
		HTTPStatus: http.StatusConflict,
	}
}

// NewForbiddenError creates a forbidden error
func NewForbiddenError(message string) *AppError {
	if message == "" {
		message = "forbidden"
	}
	return &AppError{
		Type:       ErrorTypeForbidden,
		Message:    message,
		HTTPStatus: http.StatusForbidden,
	}
}

// NewMalformedGenerationError reports model output that failed the strict
// two-field decode.
func NewMalformedGenerationError(message string, err error) *AppError {
	return &AppError{
		Type:       ErrorTypeMalformedGeneration,
		Message:    message,
		Cause:      err,
		HTTPStatus: http.StatusBadGateway,
	}
}

// NewGenerationFailedError reports a text-generation collaborator failure
func NewGenerationFailedError(err error) *AppError {
	return &AppError{
		Type:       ErrorTypeGenerationFailed,
		Message:    "text generation failed",
		Cause:      err,
		HTTPStatus: http.StatusBadGateway,
	}
}

// NewImageGenerationError reports an image-generation collaborator failure
func NewImageGenerationError(err error) *AppError {
	return &AppError{
		Type:       ErrorTypeImageGeneration,
		Message:    "icon generation failed",
		Cause:      err,
		HTTPStatus: http.StatusBadGateway,
	}
}

// NewStorageUploadError reports an object-store upload failure
func NewStorageUploadError(err error) *AppError {
	return &AppError{
		Type:       ErrorTypeStorageUpload,
		Message:    "icon upload failed",
		Cause:      err,
		HTTPStatus: http.StatusBadGateway,
	}
}

// NewInternalError creates an internal error
func NewInternalError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
	}
}

// NewDatabaseError creates a database error
func NewDatabaseError(operation string, err error) *AppError {
	return &AppError{
		Type:       ErrorTypeDatabase,
		Message:    fmt.Sprintf("database operation '%s' failed", operation),
		Cause:      err,
		HTTPStatus: http.StatusInternalServerError,
	}
}

// Helper functions

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError extracts AppError from an error chain
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// IsType checks if an error is of a specific type
func IsType(err error, errType ErrorType) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == errType
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return IsType(err, ErrorTypeNotFound)
}

// IsUnknownElement checks if an error names a missing fusion parent
func IsUnknownElement(err error) bool {
	return IsType(err, ErrorTypeUnknownElement)
}

// IsDuplicateName checks if an error came from the unique-name constraint
func IsDuplicateName(err error) bool {
	return IsType(err, ErrorTypeDuplicateName)
}

// IsValidation checks if an error is a validation error
func IsValidation(err error) bool {
	return IsType(err, ErrorTypeValidation)
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}

	// If it's already an AppError, add context to message
	if appErr := GetAppError(err); appErr != nil {
		appErr.Message = fmt.Sprintf("%s: %s", message, appErr.Message)
		return appErr
	}

	// Otherwise create a new internal error
	return NewInternalError(message).WithCause(err)
}

// Wrapf wraps an error with formatted message
func Wrapf(err error, format string, args ...interface{}) error {
	return Wrap(err, fmt.Sprintf(format, args...))
}
