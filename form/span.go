package form

import (
	"fmt"
)

// Position is a point in some input sequence: an item offset plus a
// human-readable line/column pair. Positions are plain values: composite
// patterns snapshot them before speculating and restore them on rollback.
type Position struct {
	name              string
	offset, line, col int
}

// NewPosition creates the starting position (line 1, column 1) for a named input.
func NewPosition(name string) Position {
	return Position{name: name, line: 1, col: 1}
}

// SourceName returns input name or empty string.
func (p Position) SourceName() string {
	return p.name
}

// Offset returns zero-based item offset.
func (p Position) Offset() int {
	return p.offset
}

// Line returns line number or 0.
func (p Position) Line() int {
	return p.line
}

// Col returns column number or 0.
func (p Position) Col() int {
	return p.col
}

// Next returns the position one item further on the same line.
func (p Position) Next() Position {
	p.offset++
	p.col++
	return p
}

// NextLine returns the position one item further at the start of the next line.
func (p Position) NextLine() Position {
	p.offset++
	p.line++
	p.col = 1
	return p
}

// At returns a copy of p located at the given offset and line/column.
// Used by token cursors that adopt positions recorded during scanning.
func (p Position) At(offset, line, col int) Position {
	p.offset = offset
	p.line = line
	p.col = col
	return p
}

func (p Position) String() string {
	if p.name == "" {
		return fmt.Sprintf("%d:%d", p.line, p.col)
	}
	return fmt.Sprintf("%s:%d:%d", p.name, p.line, p.col)
}

// Span is a half-open region of input between two positions.
// A span whose ends coincide is a point span (nothing consumed).
type Span struct {
	from, to Position
}

// NewSpan creates a span covering [from, to).
func NewSpan(from, to Position) Span {
	return Span{from, to}
}

// PointSpan creates an empty span located at p.
func PointSpan(p Position) Span {
	return Span{p, p}
}

func (s Span) From() Position {
	return s.from
}

func (s Span) To() Position {
	return s.to
}

// Len returns the number of items covered by the span.
func (s Span) Len() int {
	return s.to.offset - s.from.offset
}

// SourceName returns the input name of the span start, implementing former.SourcePos.
func (s Span) SourceName() string {
	return s.from.name
}

// Line returns the line of the span start, implementing former.SourcePos.
func (s Span) Line() int {
	return s.from.line
}

// Col returns the column of the span start, implementing former.SourcePos.
func (s Span) Col() int {
	return s.from.col
}

func (s Span) String() string {
	return s.from.String()
}
