package logmerge

import (
	"context"
	"fmt"
	"io"

	"github.com/kbukum/logmerge/errors"
)

// FilterMergeAndWriteLines filters each input, folds them into one stream
// ordered by before, and writes the record contents to output. It fails on
// the first I/O error and when inputs is empty.
func FilterMergeAndWriteLines(ctx context.Context, inputs []string, output string, filter Filter, before Order) error {
	return NewRunner().FilterMergeAndWriteLines(ctx, inputs, output, filter, before)
}

// FilterAndWriteLines writes the contents of the lines of input accepted by
// filter to output, in their original order.
func FilterAndWriteLines(ctx context.Context, input string, filter Filter, output string) error {
	return NewRunner().FilterAndWriteLines(ctx, input, filter, output)
}

// Printer returns a tap function that writes each record as
// "{position}: {content}" and a newline to w.
func Printer(w io.Writer) func(context.Context, Record) error {
	return func(_ context.Context, rec Record) error {
		if _, err := fmt.Fprintln(w, rec.String()); err != nil {
			return errors.IOFailure("write", "tap", err)
		}
		return nil
	}
}
