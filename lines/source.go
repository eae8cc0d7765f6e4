// Package lines connects logmerge pipelines to files.
//
// The source side reads a file lazily, one line per pull, and numbers each
// line with its 1-based position in that file. The sink side writes content
// lines to an output file that only appears at its final path once the whole
// run has succeeded.
//
//	src := lines.Open("app.log")             // *pipeline.Pipeline[record.Line[string]]
//	out, err := lines.CreateFile("merged.log")
package lines

import (
	"bufio"
	"context"
	stderrors "errors"
	"io"
	"os"
	"unicode/utf8"

	"github.com/kbukum/logmerge/errors"
	"github.com/kbukum/logmerge/pipeline"
	"github.com/kbukum/logmerge/record"
)

// Stdin is the path that reads from standard input instead of a file.
const Stdin = "-"

const (
	defaultBufSize     = 64 * 1024
	defaultMaxLineSize = 1024 * 1024
)

// Options configures line reading and writing.
type Options struct {
	// BufSize is the initial read and write buffer size in bytes.
	BufSize int
	// MaxLineSize is the longest accepted line in bytes; longer lines fail
	// with errors.ErrCodeInvalidLine.
	MaxLineSize int
	// Perm is the permission of the finalized output file.
	Perm os.FileMode
}

// Option is a functional option for sources and sinks.
type Option func(*Options)

// WithBufferSize sets the read/write buffer size.
func WithBufferSize(n int) Option {
	return func(o *Options) { o.BufSize = n }
}

// WithMaxLineSize sets the longest accepted line.
func WithMaxLineSize(n int) Option {
	return func(o *Options) { o.MaxLineSize = n }
}

// WithPerm sets the output file permission.
func WithPerm(perm os.FileMode) Option {
	return func(o *Options) { o.Perm = perm }
}

func buildOptions(opts []Option) Options {
	o := Options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.BufSize <= 0 {
		o.BufSize = defaultBufSize
	}
	if o.MaxLineSize <= 0 {
		o.MaxLineSize = defaultMaxLineSize
	}
	if o.BufSize > o.MaxLineSize {
		o.BufSize = o.MaxLineSize
	}
	if o.Perm == 0 {
		o.Perm = 0o644
	}
	return o
}

// Open returns the numbered lines of the file at path. The file is opened on
// the first pull and closed when the pipeline's iterator is closed; a failure
// to open is returned from that first pull.
func Open(path string, opts ...Option) *pipeline.Pipeline[record.Line[string]] {
	return Number(FromFile(path, opts...))
}

// FromFile returns the raw lines of the file at path, terminators stripped.
// Path Stdin reads standard input.
func FromFile(path string, opts ...Option) *pipeline.Pipeline[string] {
	o := buildOptions(opts)
	return pipeline.FromFunc(func(_ context.Context) pipeline.Iterator[string] {
		return &scanIter{name: path, opts: o, open: func() (io.ReadCloser, error) {
			if path == Stdin {
				return io.NopCloser(os.Stdin), nil
			}
			return os.Open(path)
		}}
	})
}

// FromReader returns the raw lines of r. name identifies r in errors. The
// reader is consumed once; r is closed with the iterator if it is an
// io.Closer.
func FromReader(name string, r io.Reader, opts ...Option) *pipeline.Pipeline[string] {
	o := buildOptions(opts)
	return pipeline.FromFunc(func(_ context.Context) pipeline.Iterator[string] {
		return &scanIter{name: name, opts: o, open: func() (io.ReadCloser, error) {
			if rc, ok := r.(io.ReadCloser); ok {
				return rc, nil
			}
			return io.NopCloser(r), nil
		}}
	})
}

// Number attaches 1-based positions to the items of p. Positions count every
// item pulled from p, so numbering must happen before any filtering.
func Number[C comparable](p *pipeline.Pipeline[C]) *pipeline.Pipeline[record.Line[C]] {
	return pipeline.FromFunc(func(ctx context.Context) pipeline.Iterator[record.Line[C]] {
		return &numberIter[C]{source: p.Iter(ctx)}
	})
}

type numberIter[C comparable] struct {
	source pipeline.Iterator[C]
	next   int
}

func (it *numberIter[C]) Next(ctx context.Context) (record.Line[C], bool, error) {
	val, ok, err := it.source.Next(ctx)
	if err != nil || !ok {
		return record.Line[C]{}, false, err
	}
	it.next++
	return record.New(it.next, val), true, nil
}

func (it *numberIter[C]) Close() error { return it.source.Close() }

// scanIter reads one line per pull. Any failure is terminal.
type scanIter struct {
	name string
	opts Options
	open func() (io.ReadCloser, error)

	rc      io.ReadCloser
	scanner *bufio.Scanner
	line    int
	done    bool
}

func (it *scanIter) Next(ctx context.Context) (string, bool, error) {
	if it.done {
		return "", false, nil
	}
	if err := ctx.Err(); err != nil {
		it.done = true
		return "", false, err
	}
	if it.scanner == nil {
		rc, err := it.open()
		if err != nil {
			it.done = true
			return "", false, errors.IOFailure("open", it.name, err)
		}
		it.rc = rc
		it.scanner = bufio.NewScanner(rc)
		it.scanner.Buffer(make([]byte, 0, it.opts.BufSize), it.opts.MaxLineSize)
	}
	if !it.scanner.Scan() {
		it.done = true
		err := it.scanner.Err()
		switch {
		case err == nil:
			return "", false, nil
		case stderrors.Is(err, bufio.ErrTooLong):
			return "", false, errors.InvalidLine(it.name, it.line+1, "line exceeds maximum size").WithCause(err)
		default:
			return "", false, errors.IOFailure("read", it.name, err)
		}
	}
	it.line++
	text := it.scanner.Text()
	if !utf8.ValidString(text) {
		it.done = true
		return "", false, errors.InvalidLine(it.name, it.line, "stream did not contain valid UTF-8")
	}
	return text, true, nil
}

func (it *scanIter) Close() error {
	if it.rc == nil {
		return nil
	}
	rc := it.rc
	it.rc = nil
	if err := rc.Close(); err != nil {
		return errors.IOFailure("close", it.name, err)
	}
	return nil
}
