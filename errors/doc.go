// Package errors provides the structured error type shared by logmerge
// packages. Every failure carries a machine-readable ErrorCode; I/O failures
// from opening, reading or writing files all map to ErrCodeIOFailure so
// callers can tell them apart from bad input with a single check.
package errors
