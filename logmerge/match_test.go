package logmerge

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/kbukum/logmerge/errors"
)

func TestMatchStrings(t *testing.T) {
	path := writeFile(t, t.TempDir(), "simple.log",
		"this is line number 1",
		"this is line number 2",
		"this is something else",
		"nothing here",
	)

	got, err := quietRunner().MatchStrings(context.Background(), []string{"line number 2", "this is something else"}, path)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"2: this is line number 2", "3: this is something else"}
	if !equalStrings(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestMatchStrings_OneEntryPerPattern(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.log", "error: disk full", "ok")

	got, err := MatchStrings(context.Background(), []string{"error", "disk"}, path)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"1: error: disk full", "1: error: disk full"}
	if !equalStrings(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestMatchStrings_NoMatches(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.log", "a", "b")
	got, err := quietRunner().MatchStrings(context.Background(), []string{"zzz"}, path)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("expected no matches, got %v", got)
	}
}

func TestMatchStrings_MissingFile(t *testing.T) {
	got, err := quietRunner().MatchStrings(context.Background(), []string{"a"}, filepath.Join(t.TempDir(), "missing.log"))
	if !errors.IsCode(err, errors.ErrCodeIOFailure) {
		t.Fatalf("expected IO_FAILURE, got %v", err)
	}
	if got != nil {
		t.Errorf("expected no report on failure, got %v", got)
	}
}

func TestMatches(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.log", "GET /a", "POST /b", "GET /c")
	got, err := quietRunner().Matches(context.Background(), []string{"POST", "/c"}, path)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %v", got)
	}
	if got[0].Line != 2 || got[0].Pattern != "POST" || got[1].Line != 3 || got[1].Pattern != "/c" {
		t.Errorf("unexpected matches %+v", got)
	}
}

func TestWriteMatches(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.log", "alpha", "beta", "alphabet")
	var buf bytes.Buffer
	if err := WriteMatches(context.Background(), &buf, []string{"alpha"}, path); err != nil {
		t.Fatal(err)
	}
	if want := "1: alpha\n3: alphabet\n"; buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}
