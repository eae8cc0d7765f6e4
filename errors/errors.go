package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Details contains additional context for the error (path, line, op).
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError.
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// --- Constructors ---

// IOFailure creates an AppError for a failed file operation. op is one of
// "open", "read", "write", "create", "commit" or "close".
func IOFailure(op, path string, cause error) *AppError {
	return &AppError{
		Code:    ErrCodeIOFailure,
		Message: fmt.Sprintf("%s %s failed", op, path),
		Details: map[string]any{"op": op, "path": path},
		Cause:   cause,
	}
}

// InvalidLine creates an AppError for a line that could not be decoded.
// line is the 1-based number of the offending line.
func InvalidLine(path string, line int, reason string) *AppError {
	return &AppError{
		Code:    ErrCodeInvalidLine,
		Message: fmt.Sprintf("%s:%d: %s", path, line, reason),
		Details: map[string]any{"path": path, "line": line},
	}
}

// NoSources creates an AppError for a merge without inputs.
func NoSources() *AppError {
	return &AppError{
		Code:    ErrCodeNoSources,
		Message: "at least one input source is required",
	}
}

// InvalidInput creates an AppError for an invalid field or argument.
func InvalidInput(field, reason string) *AppError {
	e := New(ErrCodeInvalidInput, fmt.Sprintf("Invalid input: %s", reason))
	if field != "" {
		e.WithDetail("field", field)
	}
	return e
}

// Validation creates an AppError for aggregated validation failures.
func Validation(message string) *AppError {
	return &AppError{Code: ErrCodeInvalidInput, Message: message}
}

// Internal creates an AppError for an unexpected error.
func Internal(cause error) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: "unexpected error",
		Cause:   cause,
	}
}

// --- Inspection ---

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsCode reports whether err is, or wraps, an AppError with the given code.
func IsCode(err error, code ErrorCode) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Code == code
}

// IsIOFailure reports whether err belongs to the I/O failure class.
func IsIOFailure(err error) bool {
	appErr, ok := AsAppError(err)
	return ok && IsIOCode(appErr.Code)
}

// Wrap returns err as an AppError. Existing AppErrors anywhere in the chain
// are returned as-is; other errors become ErrCodeInternal.
func Wrap(err error) *AppError {
	if err == nil {
		return nil
	}
	if appErr, ok := AsAppError(err); ok {
		return appErr
	}
	return Internal(err)
}
