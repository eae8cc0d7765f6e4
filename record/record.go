// Package record defines the numbered line value that flows through a
// logmerge pipeline.
//
// A Line is created once by the numbering stage and passed by value through
// filtering, merging and the sink. Its position is the 1-based index of the
// line within the source it was read from and is never renumbered, so a line
// that survives filtering keeps the number it had in the original file.
//
//	l := record.New(3, "GET /health 200")
//	fmt.Println(l) // 3: GET /health 200
package record

import "fmt"

// Line is an immutable numbered line. C is the content representation,
// string for text logs.
type Line[C comparable] struct {
	position int
	content  C
}

// New creates a Line. Position is taken as given; callers pass the 1-based
// index within the originating source.
func New[C comparable](position int, content C) Line[C] {
	return Line[C]{position: position, content: content}
}

// Position returns the 1-based index of the line in its source.
func (l Line[C]) Position() int { return l.position }

// Content returns the line body without its terminator.
func (l Line[C]) Content() C { return l.content }

// Equal reports whether both lines carry the same position and content.
func (l Line[C]) Equal(other Line[C]) bool {
	return l.position == other.position && l.content == other.content
}

// String renders the line as "{position}: {content}".
func (l Line[C]) String() string {
	return fmt.Sprintf("%d: %v", l.position, l.content)
}
