package logmerge

import (
	"bufio"
	"context"
	"io"
	"strings"

	"github.com/kbukum/logmerge/errors"
	"github.com/kbukum/logmerge/lines"
	"github.com/kbukum/logmerge/logger"
	"github.com/kbukum/logmerge/observability"
	"github.com/kbukum/logmerge/pipeline"
	"github.com/kbukum/logmerge/record"
)

// Match is a line that contains one of the searched patterns.
type Match struct {
	Line    int
	Content string
	Pattern string
}

// String renders the match as "{line}: {content}".
func (m Match) String() string {
	return record.New(m.Line, m.Content).String()
}

// Matches returns one Match per (line, pattern) hit, in file order and, for
// a line, in pattern order. A line containing two patterns is reported twice.
func (r *Runner) Matches(ctx context.Context, patterns []string, path string) ([]Match, error) {
	var found []Match
	err := r.eachMatch(ctx, patterns, path, func(m Match) error {
		found = append(found, m)
		return nil
	})
	return found, err
}

// MatchStrings reports "{line}: {content}" for every pattern hit in path.
func (r *Runner) MatchStrings(ctx context.Context, patterns []string, path string) ([]string, error) {
	found, err := r.Matches(ctx, patterns, path)
	if err != nil {
		return nil, err
	}
	var report []string
	for _, m := range found {
		report = append(report, m.String())
	}
	return report, nil
}

// WriteMatches streams the MatchStrings report to w, one entry per line.
func (r *Runner) WriteMatches(ctx context.Context, w io.Writer, patterns []string, path string) error {
	bw := bufio.NewWriter(w)
	err := r.eachMatch(ctx, patterns, path, func(m Match) error {
		if _, err := bw.WriteString(m.String() + "\n"); err != nil {
			return errors.IOFailure("write", "matches", err)
		}
		return nil
	})
	if ferr := bw.Flush(); err == nil && ferr != nil {
		err = errors.IOFailure("write", "matches", ferr)
	}
	return err
}

func (r *Runner) eachMatch(ctx context.Context, patterns []string, path string, fn func(Match) error) error {
	fields := logger.Fields(logger.FieldSource, path, "patterns", len(patterns))
	return r.track(ctx, OpMatch, fields, func(ctx context.Context, run *observability.Run) error {
		return pipeline.ForEach(ctx, lines.Open(path, r.lineOpts...), func(_ context.Context, rec Record) error {
			run.AddRead(1)
			hit := false
			for _, p := range patterns {
				if !strings.Contains(rec.Content(), p) {
					continue
				}
				hit = true
				run.AddWritten(1)
				if err := fn(Match{Line: rec.Position(), Content: rec.Content(), Pattern: p}); err != nil {
					return err
				}
			}
			if !hit {
				run.AddDropped(1)
			}
			return nil
		})
	})
}

// MatchStrings reports "{line}: {content}" for every line of path that
// contains one of patterns, once per matching pattern, in file order.
func MatchStrings(ctx context.Context, patterns []string, path string) ([]string, error) {
	return NewRunner().MatchStrings(ctx, patterns, path)
}

// WriteMatches streams the MatchStrings report for path to w.
func WriteMatches(ctx context.Context, w io.Writer, patterns []string, path string) error {
	return NewRunner().WriteMatches(ctx, w, patterns, path)
}
