package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// I/O errors
const (
	// ErrCodeIOFailure indicates a file could not be opened, read, written or finalized.
	ErrCodeIOFailure ErrorCode = "IO_FAILURE"
	// ErrCodeInvalidLine indicates a line that could not be decoded (invalid UTF-8 or over the size limit).
	ErrCodeInvalidLine ErrorCode = "INVALID_LINE"
)

// Precondition and input errors
const (
	// ErrCodeNoSources indicates a merge was requested with no input sources.
	ErrCodeNoSources ErrorCode = "NO_SOURCES"
	// ErrCodeInvalidInput indicates invalid configuration, flags or predicate names.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
)

// Internal errors
const (
	// ErrCodeInternal indicates an unexpected error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var ioCodes = map[ErrorCode]bool{
	ErrCodeIOFailure:   true,
	ErrCodeInvalidLine: true,
}

// IsIOCode returns true if the code belongs to the I/O failure class.
func IsIOCode(code ErrorCode) bool {
	return ioCodes[code]
}
