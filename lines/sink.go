package lines

import (
	"bufio"
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/kbukum/logmerge/errors"
)

// Sink receives content lines in order. Commit finalizes the output; Abort
// discards whatever was written. After either call the sink is unusable.
type Sink interface {
	WriteLine(ctx context.Context, line string) error
	Commit() error
	Abort() error
	// Name identifies the destination in logs and errors.
	Name() string
}

var chmod = os.Chmod

// FileSink writes to a temporary file next to the target and renames it into
// place on Commit, so a failed run never leaves a partial output file.
type FileSink struct {
	path    string
	tmpPath string
	perm    os.FileMode
	tmp     *os.File
	w       *bufio.Writer
	lines   int
	closed  bool
}

var _ Sink = (*FileSink)(nil)

// CreateFile opens a FileSink for path. The target directory must exist.
func CreateFile(path string, opts ...Option) (*FileSink, error) {
	o := buildOptions(opts)
	tmp, err := os.CreateTemp(filepath.Dir(path), ".logmerge-*")
	if err != nil {
		return nil, errors.IOFailure("create", path, err)
	}
	return &FileSink{
		path:    path,
		tmpPath: tmp.Name(),
		perm:    o.Perm,
		tmp:     tmp,
		w:       bufio.NewWriterSize(tmp, o.BufSize),
	}, nil
}

// WriteLine appends line and a newline.
func (s *FileSink) WriteLine(_ context.Context, line string) error {
	if s.closed {
		return errors.IOFailure("write", s.path, os.ErrClosed)
	}
	if _, err := s.w.WriteString(line); err != nil {
		return errors.IOFailure("write", s.path, err)
	}
	if err := s.w.WriteByte('\n'); err != nil {
		return errors.IOFailure("write", s.path, err)
	}
	s.lines++
	return nil
}

// Lines returns the number of lines written so far.
func (s *FileSink) Lines() int { return s.lines }

// Name returns the target path.
func (s *FileSink) Name() string { return s.path }

// Commit flushes, syncs and renames the temporary file onto the target path.
func (s *FileSink) Commit() error {
	if s.closed {
		return errors.IOFailure("commit", s.path, os.ErrClosed)
	}
	s.closed = true
	if err := s.w.Flush(); err != nil {
		s.discard()
		return errors.IOFailure("write", s.path, err)
	}
	if err := s.tmp.Sync(); err != nil {
		s.discard()
		return errors.IOFailure("commit", s.path, err)
	}
	if err := s.tmp.Close(); err != nil {
		_ = os.Remove(s.tmpPath)
		return errors.IOFailure("commit", s.path, err)
	}
	if err := chmod(s.tmpPath, s.perm); err != nil {
		_ = os.Remove(s.tmpPath)
		return errors.IOFailure("commit", s.path, err)
	}
	if err := os.Rename(s.tmpPath, s.path); err != nil {
		_ = os.Remove(s.tmpPath)
		return errors.IOFailure("commit", s.path, err)
	}
	return nil
}

// Abort removes the temporary file. It is a no-op after Commit.
func (s *FileSink) Abort() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.discard()
}

func (s *FileSink) discard() error {
	cerr := s.tmp.Close()
	if err := os.Remove(s.tmpPath); err != nil && !os.IsNotExist(err) {
		return errors.IOFailure("close", s.path, err)
	}
	if cerr != nil {
		return errors.IOFailure("close", s.path, cerr)
	}
	return nil
}

// WriterSink writes lines straight to an io.Writer such as stdout. Nothing
// can be withdrawn, so Abort only flushes what was already accepted.
type WriterSink struct {
	name  string
	w     *bufio.Writer
	lines int
}

var _ Sink = (*WriterSink)(nil)

// NewWriterSink wraps w. name identifies w in errors.
func NewWriterSink(name string, w io.Writer) *WriterSink {
	return &WriterSink{name: name, w: bufio.NewWriter(w)}
}

// WriteLine appends line and a newline.
func (s *WriterSink) WriteLine(_ context.Context, line string) error {
	if _, err := s.w.WriteString(line + "\n"); err != nil {
		return errors.IOFailure("write", s.name, err)
	}
	s.lines++
	return nil
}

// Lines returns the number of lines written so far.
func (s *WriterSink) Lines() int { return s.lines }

// Name returns the name given to NewWriterSink.
func (s *WriterSink) Name() string { return s.name }

// Commit flushes buffered lines.
func (s *WriterSink) Commit() error {
	if err := s.w.Flush(); err != nil {
		return errors.IOFailure("write", s.name, err)
	}
	return nil
}

// Abort flushes buffered lines.
func (s *WriterSink) Abort() error { return s.Commit() }

// Create returns the sink for path: standard output for Stdin ("-"), a
// FileSink otherwise.
func Create(path string, opts ...Option) (Sink, error) {
	if path == Stdin {
		return NewWriterSink("stdout", os.Stdout), nil
	}
	fs, err := CreateFile(path, opts...)
	if err != nil {
		return nil, err
	}
	return fs, nil
}
