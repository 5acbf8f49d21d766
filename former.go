/*
Package former is a pattern-matching and tree-forming toolkit for building
compiler front ends.

Consists of subpackages:
  - form: the matching engine; patterns are assembled programmatically and
    driven over any positioned input sequence to produce result trees;
  - source: positioned text buffers used to map byte offsets to line/column;
  - scan: a scanner turning source text into tokens using a lexical pattern;
  - syntax: a parser turning tokens into syntax element trees.

Typical usage is:

1. Build a pattern graph once with the form package constructors
(form.Literal, form.Sequence, form.Persistence, ...), attaching transform,
ignore, and failure actions where the grammar needs them.

2. Wrap the input in a form.Cursor and drive form.Former.Form over it,
or use the scan and syntax packages which do exactly that for text and
token input respectively.

3. Flatten the resulting forms into output values and collect failure
forms into an error list.
*/
package former

import (
	"fmt"
)

// Error classes used by subpackages, each class contains up to 99 error codes:
const (
	FormErrors   = 1   // used by form
	ScanErrors   = 101 // used by scan
	SyntaxErrors = 201 // used by syntax
)

// Error is the error type used by former subpackages.
type Error struct {
	// Code contains non-zero error code.
	Code int

	// Message contains non-empty error message including source name and position information if provided.
	Message string

	// SourceName contains source name that caused this error or empty string.
	SourceName string

	// Line contains line number in source file or 0.
	Line int

	// Col contains column number in source file or 0.
	Col int
}

// SourcePos is used to retrieve source name and position information when constructing an error;
// form.Position, scan.Token, and syntax.Element implement this interface.
type SourcePos interface {
	// SourceName returns source file name or empty string.
	SourceName() string
	// Line returns line number or 0.
	Line() int
	// Col returns column number or 0.
	Col() int
}

// NewError creates new Error structure.
// name, line, and col will be added to error message if provided (non-zero).
func NewError(code int, msg, name string, line, col int) *Error {
	if name != "" && line != 0 && col != 0 {
		msg += fmt.Sprintf(" in %s at line %d col %d", name, line, col)
	}
	return &Error{code, msg, name, line, col}
}

// Error simply returns Error.Message.
func (e *Error) Error() string {
	return e.Message
}

// FormatError creates Error structure with no source and position information.
// params will be added to error message using fmt.Sprintf function.
func FormatError(code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return NewError(code, msg, "", 0, 0)
}

// FormatErrorPos creates Error structure with source and position information.
// pos must not be nil.
// params will be added to error message using fmt.Sprintf function.
func FormatErrorPos(pos SourcePos, code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return NewError(code, msg, pos.SourceName(), pos.Line(), pos.Col())
}
