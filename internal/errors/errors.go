// Package errors provides unified error handling across flip-flop-prompter.
//
// SYSTEM ARCHITECTURE ROLE:
// This module serves as the foundation for error handling across all interfaces (CLI, TUI).
// It standardizes error representation, categorization, and handling patterns throughout the application.
//
// KEY RESPONSIBILITIES:
// - Define standardized error codes and categories for consistent error identification
// - Provide structured error types (AppError) with severity levels and context
// - Enable interface-specific error formatting while maintaining consistent core error data
// - Support error recovery strategies with retryable error classification
//
// INTEGRATION POINTS:
// - internal/llm/ollama.go: refiner client wraps timeouts and connection failures
// - internal/generator/generator.go: batch coordinator reports per-iteration failures
// - internal/cli/cli.go: CLIErrorHandler formats AppErrors for terminal display
// - internal/ui/model.go: TUIErrorHandler provides styling for bubble tea error display
// - internal/validation/validator.go: ValidationResult.ToAppError() converts validation failures
// - internal/service/service.go: Service layer operations wrap errors as AppErrors
//
// USAGE PATTERNS:
// - Create errors: Use constructor functions like ValidationError(), NotFoundError()
// - Wrap errors: Use Wrap() to add context to existing errors
// - Handle errors: Use error handlers specific to interface (CLI, TUI)
// - Check types: Use IsAppError() and GetAppError() for type-safe error handling
package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorCode represents standardized error codes
type ErrorCode string

const (
	// Validation errors
	ErrCodeValidation    ErrorCode = "VALIDATION_ERROR"
	ErrCodeInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrCodeMissingField  ErrorCode = "MISSING_FIELD"
	ErrCodeInvalidFormat ErrorCode = "INVALID_FORMAT"
	ErrCodeInvalidSeed   ErrorCode = "INVALID_SEED"

	// Service errors
	ErrCodeInternalError  ErrorCode = "INTERNAL_ERROR"
	ErrCodeNotImplemented ErrorCode = "NOT_IMPLEMENTED"
	ErrCodeBusy           ErrorCode = "GENERATION_IN_PROGRESS"

	// Resource errors
	ErrCodeNotFound      ErrorCode = "NOT_FOUND"
	ErrCodeAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// Storage errors
	ErrCodeStorageFailure ErrorCode = "STORAGE_FAILURE"
	ErrCodeFileNotFound   ErrorCode = "FILE_NOT_FOUND"
	ErrCodeFileCorrupted  ErrorCode = "FILE_CORRUPTED"

	// Refiner errors
	ErrCodeRefinerUnavailable ErrorCode = "REFINER_UNAVAILABLE"
	ErrCodeRefinerTimeout     ErrorCode = "REFINER_TIMEOUT"
	ErrCodeRefinerConnection  ErrorCode = "REFINER_CONNECTION"
	ErrCodeRefinerResponse    ErrorCode = "REFINER_BAD_RESPONSE"

	// History errors
	ErrCodeHistoryEmpty   ErrorCode = "HISTORY_EMPTY"
	ErrCodeHistoryBounds  ErrorCode = "HISTORY_OUT_OF_BOUNDS"

	// Snippet library errors
	ErrCodeSnippetFailure ErrorCode = "SNIPPET_FAILURE"
)

// ErrorSeverity represents the severity level of an error
type ErrorSeverity string

const (
	SeverityInfo     ErrorSeverity = "info"
	SeverityWarning  ErrorSeverity = "warning"
	SeverityError    ErrorSeverity = "error"
	SeverityCritical ErrorSeverity = "critical"
)

// ErrorCategory represents the category of an error
type ErrorCategory string

const (
	CategoryValidation ErrorCategory = "validation"
	CategoryService    ErrorCategory = "service"
	CategoryStorage    ErrorCategory = "storage"
	CategoryRefiner    ErrorCategory = "refiner"
	CategoryHistory    ErrorCategory = "history"
	CategorySnippets   ErrorCategory = "snippets"
	CategorySystem     ErrorCategory = "system"
)

// AppError represents a standardized application error
type AppError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Severity  ErrorSeverity          `json:"severity"`
	Category  ErrorCategory          `json:"category"`
	Cause     error                  `json:"-"`
	Context   map[string]interface{} `json:"context,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	Retryable bool                   `json:"retryable"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// IsRetryable returns whether the error is retryable
func (e *AppError) IsRetryable() bool {
	return e.Retryable
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// WithDetails adds details to the error
func (e *AppError) WithDetails(details string) *AppError {
	e.Details = details
	return e
}

// NewAppError creates a new application error
func NewAppError(code ErrorCode, message string) *AppError {
	category, severity := categorizeError(code)
	return &AppError{
		Code:      code,
		Message:   message,
		Severity:  severity,
		Category:  category,
		Timestamp: time.Now(),
		Retryable: isRetryable(code),
	}
}

// Wrap wraps an existing error with application error context
func Wrap(err error, code ErrorCode, message string) *AppError {
	category, severity := categorizeError(code)
	return &AppError{
		Code:      code,
		Message:   message,
		Severity:  severity,
		Category:  category,
		Cause:     err,
		Timestamp: time.Now(),
		Retryable: isRetryable(code),
	}
}

// categorizeError determines the category and severity based on error code
func categorizeError(code ErrorCode) (ErrorCategory, ErrorSeverity) {
	switch code {
	// Validation errors
	case ErrCodeValidation, ErrCodeInvalidInput, ErrCodeMissingField, ErrCodeInvalidFormat, ErrCodeInvalidSeed:
		return CategoryValidation, SeverityWarning

	// Service errors
	case ErrCodeInternalError:
		return CategoryService, SeverityCritical
	case ErrCodeNotImplemented:
		return CategoryService, SeverityInfo
	case ErrCodeBusy:
		return CategoryService, SeverityWarning

	// Resource errors
	case ErrCodeNotFound:
		return CategoryService, SeverityInfo
	case ErrCodeAlreadyExists:
		return CategoryService, SeverityWarning

	// Storage errors
	case ErrCodeStorageFailure, ErrCodeFileCorrupted:
		return CategoryStorage, SeverityError
	case ErrCodeFileNotFound:
		return CategoryStorage, SeverityInfo

	// Refiner errors
	case ErrCodeRefinerTimeout, ErrCodeRefinerConnection:
		return CategoryRefiner, SeverityError
	case ErrCodeRefinerUnavailable:
		return CategoryRefiner, SeverityWarning
	case ErrCodeRefinerResponse:
		return CategoryRefiner, SeverityError

	// History errors
	case ErrCodeHistoryEmpty, ErrCodeHistoryBounds:
		return CategoryHistory, SeverityInfo

	// Snippet library errors
	case ErrCodeSnippetFailure:
		return CategorySnippets, SeverityError

	default:
		return CategorySystem, SeverityError
	}
}

// isRetryable determines if an error is retryable based on its code
func isRetryable(code ErrorCode) bool {
	switch code {
	case ErrCodeRefinerTimeout, ErrCodeRefinerConnection:
		return true
	case ErrCodeStorageFailure:
		return true
	default:
		return false
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

// GetAppError extracts an AppError from an error, or converts it to one
func GetAppError(err error) *AppError {
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, ErrCodeInternalError, err.Error())
}

// Common error constructors for frequently used errors
func ValidationError(message string) *AppError {
	return NewAppError(ErrCodeValidation, message)
}

func NotFoundError(resource string) *AppError {
	return NewAppError(ErrCodeNotFound, fmt.Sprintf("%s not found", resource))
}

func AlreadyExistsError(resource string) *AppError {
	return NewAppError(ErrCodeAlreadyExists, fmt.Sprintf("%s already exists", resource))
}

func InternalError(message string) *AppError {
	return NewAppError(ErrCodeInternalError, message)
}

func BusyError() *AppError {
	return NewAppError(ErrCodeBusy, "A generation batch is already running")
}

func StorageError(operation string, err error) *AppError {
	return Wrap(err, ErrCodeStorageFailure, fmt.Sprintf("Storage operation failed: %s", operation))
}

func RefinerTimeoutError(model string, err error) *AppError {
	return Wrap(err, ErrCodeRefinerTimeout, fmt.Sprintf("Refiner model '%s' timed out", model))
}

func RefinerConnectionError(baseURL string, err error) *AppError {
	return Wrap(err, ErrCodeRefinerConnection, fmt.Sprintf("Cannot reach refiner at %s", baseURL))
}

func RefinerUnavailableError(reason string) *AppError {
	return NewAppError(ErrCodeRefinerUnavailable, fmt.Sprintf("Refiner unavailable: %s", reason))
}

func SnippetError(operation string, err error) *AppError {
	return Wrap(err, ErrCodeSnippetFailure, fmt.Sprintf("Snippet operation failed: %s", operation))
}
