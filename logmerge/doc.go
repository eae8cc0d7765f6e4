// Package logmerge filters and merges line-oriented log files.
//
// Every input line becomes a record carrying its 1-based position in its
// own file. Records are filtered per source, folded into one ordered stream
// by repeated two-way merges, and their contents are written to a single
// output file:
//
//	err := logmerge.FilterMergeAndWriteLines(ctx,
//		[]string{"a.log", "b.log", "c.log"}, "merged.log",
//		logmerge.EvenPositions, logmerge.ByFirstChar)
//
// The fold treats the inputs as a stack: the last input is the base and
// each earlier input is merged on top of the running result, so
// merge(a, merge(b, c)). Inputs are assumed to be sorted under the ordering;
// this is not checked.
//
// Runs fail on the first I/O error and never leave a partial output file.
package logmerge
