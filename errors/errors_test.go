package errors

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"strings"
	"testing"
)

func TestIOFailure(t *testing.T) {
	cause := fs.ErrNotExist
	err := IOFailure("open", "/var/log/a.log", cause)
	if err.Code != ErrCodeIOFailure {
		t.Errorf("expected IO_FAILURE, got %s", err.Code)
	}
	if err.Details["op"] != "open" || err.Details["path"] != "/var/log/a.log" {
		t.Errorf("unexpected details %v", err.Details)
	}
	if !stderrors.Is(err, fs.ErrNotExist) {
		t.Error("expected errors.Is to reach the cause")
	}
	if !strings.Contains(err.Error(), "open /var/log/a.log failed") {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestInvalidLine(t *testing.T) {
	err := InvalidLine("a.log", 4, "invalid UTF-8")
	if err.Code != ErrCodeInvalidLine {
		t.Errorf("expected INVALID_LINE, got %s", err.Code)
	}
	if err.Details["line"] != 4 {
		t.Errorf("expected line=4, got %v", err.Details["line"])
	}
	if err.Message != "a.log:4: invalid UTF-8" {
		t.Errorf("unexpected message %q", err.Message)
	}
}

func TestNoSources(t *testing.T) {
	err := NoSources()
	if err.Code != ErrCodeNoSources {
		t.Errorf("expected NO_SOURCES, got %s", err.Code)
	}
	if IsIOFailure(err) {
		t.Error("NO_SOURCES is not an I/O failure")
	}
}

func TestInvalidInput(t *testing.T) {
	err := InvalidInput("filter", "unknown predicate")
	if err.Details["field"] != "filter" {
		t.Errorf("expected field=filter, got %v", err.Details["field"])
	}
	if _, ok := InvalidInput("", "x").Details["field"]; ok {
		t.Error("expected no 'field' key when field is empty")
	}
}

func TestIsIOFailure_Table(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"io failure", IOFailure("read", "x", nil), true},
		{"invalid line", InvalidLine("x", 1, "bad"), true},
		{"wrapped io failure", fmt.Errorf("run: %w", IOFailure("write", "y", nil)), true},
		{"invalid input", InvalidInput("f", "bad"), false},
		{"plain error", stderrors.New("plain"), false},
		{"nil", nil, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsIOFailure(tc.err); got != tc.want {
				t.Errorf("IsIOFailure = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestIsCode(t *testing.T) {
	err := fmt.Errorf("outer: %w", NoSources())
	if !IsCode(err, ErrCodeNoSources) {
		t.Error("expected NO_SOURCES through wrapping")
	}
	if IsCode(err, ErrCodeIOFailure) {
		t.Error("did not expect IO_FAILURE")
	}
}

func TestAppError_WithDetail_NilMap(t *testing.T) {
	err := New(ErrCodeInternal, "x")
	err.WithDetail("k", "v")
	if err.Details["k"] != "v" {
		t.Errorf("expected k=v, got %v", err.Details)
	}
}

func TestAppError_WithCause_Chain(t *testing.T) {
	root := stderrors.New("root")
	err := New(ErrCodeIOFailure, "x").WithCause(root)
	if stderrors.Unwrap(err) != root {
		t.Error("expected Unwrap to return cause")
	}
}

func TestAppError_Error_Format(t *testing.T) {
	if got := New(ErrCodeNoSources, "none").Error(); got != "NO_SOURCES: none" {
		t.Errorf("got %q", got)
	}
	got := New(ErrCodeIOFailure, "bad").WithCause(stderrors.New("eof")).Error()
	if got != "IO_FAILURE: bad (cause: eof)" {
		t.Errorf("got %q", got)
	}
}

func TestWrap_NilReturnsNil(t *testing.T) {
	if Wrap(nil) != nil {
		t.Error("Wrap(nil) should return nil")
	}
}

func TestWrap_AppErrorPassthrough(t *testing.T) {
	orig := NoSources()
	if Wrap(orig) != orig {
		t.Error("Wrap should return the original AppError unchanged")
	}
	if Wrap(fmt.Errorf("outer: %w", orig)) != orig {
		t.Error("Wrap should find an AppError in the chain")
	}
}

func TestWrap_PlainError(t *testing.T) {
	plain := fmt.Errorf("something broke")
	got := Wrap(plain)
	if got.Code != ErrCodeInternal {
		t.Errorf("expected INTERNAL_ERROR, got %s", got.Code)
	}
	if got.Cause != plain {
		t.Error("expected cause to be the original error")
	}
}

func TestAppError_ImplementsErrorInterface(t *testing.T) {
	var err error = IOFailure("open", "x", nil)
	var appErr *AppError
	if !stderrors.As(err, &appErr) {
		t.Error("stderrors.As should work with AppError")
	}
	if _, ok := AsAppError(stderrors.New("plain")); ok {
		t.Error("plain error is not an AppError")
	}
}
