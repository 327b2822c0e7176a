// Package errors provides structured error handling for the picset core.
// It defines error types with codes, messages, causes, and contextual
// information so failures surfaced through the persistence channel stay
// attributable to a specific collection field.
package errors

import (
	"fmt"
	"log/slog"
)

// ErrorCode represents a categorized error type for structured error handling.
type ErrorCode string

// Error code constants for categorizing application errors.
const (
	ErrCodeStorage      ErrorCode = "STORAGE_ERROR"
	ErrCodeDatabase     ErrorCode = "DATABASE_ERROR"
	ErrCodeStaleVersion ErrorCode = "STALE_VERSION"
	ErrCodeValidation   ErrorCode = "VALIDATION_ERROR"
	ErrCodeConfig       ErrorCode = "CONFIG_ERROR"
	ErrCodeNotSupported ErrorCode = "NOT_SUPPORTED"
	ErrCodeUnknown      ErrorCode = "UNKNOWN_ERROR"
)

// AppError represents a structured application error with code, message,
// cause, and context. It implements the error interface and supports error
// unwrapping.
type AppError struct {
	Code    ErrorCode
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error returns a string representation of the AppError.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause error for use with errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// StorageError creates an AppError for backend byte I/O failures during the
// deferred-commit phase. Context should carry the collection field and key
// so a host-side reconciler can target the orphaned object.
func StorageError(message string, cause error, context map[string]interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeStorage,
		Message: message,
		Cause:   cause,
		Context: context,
	}
}

// DatabaseError creates an AppError for persistence engine failures.
func DatabaseError(message string, cause error, context map[string]interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeDatabase,
		Message: message,
		Cause:   cause,
		Context: context,
	}
}

// StaleVersionError creates an AppError for optimistic-lock violations.
func StaleVersionError(message string, cause error, context map[string]interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeStaleVersion,
		Message: message,
		Cause:   cause,
		Context: context,
	}
}

// ValidationError creates an AppError for input validation failures.
func ValidationError(message string, context map[string]interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: message,
		Context: context,
	}
}

// ConfigError creates an AppError for fatal configuration problems.
func ConfigError(message string, context map[string]interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeConfig,
		Message: message,
		Context: context,
	}
}

// NotSupportedError creates an AppError for missing backend capabilities.
func NotSupportedError(message string, cause error, context map[string]interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeNotSupported,
		Message: message,
		Cause:   cause,
		Context: context,
	}
}

// UnknownError creates an AppError for unclassified errors.
func UnknownError(message string, cause error, context map[string]interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeUnknown,
		Message: message,
		Cause:   cause,
		Context: context,
	}
}

// LogError logs an AppError with structured logging and context.
func LogError(logger *slog.Logger, err error, operation string) {
	if logger == nil {
		return
	}

	if appErr, ok := err.(*AppError); ok {
		args := []interface{}{
			"operation", operation,
			"error_code", string(appErr.Code),
			"error_message", appErr.Message,
		}

		if appErr.Context != nil {
			for key, value := range appErr.Context {
				args = append(args, key, value)
			}
		}

		if appErr.Cause != nil {
			args = append(args, "cause", appErr.Cause.Error())
		}

		logger.Error("application error occurred", args...)
	} else {
		logger.Error("unknown error occurred",
			"operation", operation,
			"error", err.Error(),
		)
	}
}
