package scan

import (
	"fmt"

	"github.com/avklo/former/form"
)

// TokenKind classifies scanned tokens.
type TokenKind int

const (
	Identifier TokenKind = iota
	Keyword
	Number
	String
	Operator
	Punctuation
)

var kindNames = [...]string{"identifier", "keyword", "number", "string", "operator", "punctuation"}

func (k TokenKind) String() string {
	if k < Identifier || k > Punctuation {
		return "invalid"
	}
	return kindNames[k]
}

// Token is one lexeme produced by the scanner. Tokens are plain comparable
// values so they can serve as the input items of a syntactic pattern.
type Token struct {
	Kind TokenKind
	Text string
	Span form.Span
}

// NewToken creates a token covering span.
func NewToken(kind TokenKind, text string, span form.Span) Token {
	return Token{Kind: kind, Text: text, Span: span}
}

// SourceName returns the name of the source the token came from, implementing former.SourcePos.
func (t Token) SourceName() string {
	return t.Span.SourceName()
}

// Line returns the 1-based line of the token start, implementing former.SourcePos.
func (t Token) Line() int {
	return t.Span.Line()
}

// Col returns the 1-based column of the token start, implementing former.SourcePos.
func (t Token) Col() int {
	return t.Span.Col()
}

func (t Token) String() string {
	return fmt.Sprintf("%s %q", t.Kind, t.Text)
}
