// Package scan defines a scanner turning source text into tokens.
//
// The scanner is a client of the form engine: one lexical pattern describes
// every lexeme class, and the scanner repeatedly drives it over a rune
// cursor, flattening the produced forms into tokens and scan errors.
// Scanning continues past malformed lexemes; every failure is reported with
// its source position.
package scan

import (
	"github.com/avklo/former"
	"github.com/avklo/former/form"
	"github.com/avklo/former/internal/queue"
	"github.com/avklo/former/source"
)

// Error codes used by scanner:
const (
	// UnexpectedCharError indicates a rune no lexeme class covers.
	UnexpectedCharError = former.ScanErrors + iota

	// UnterminatedStringError indicates a string literal with no closing quote
	// before end of line or input.
	UnterminatedStringError

	// UnterminatedCommentError indicates a block comment with no closing delimiter.
	UnterminatedCommentError

	// BadEscapeError indicates an unknown escape sequence inside a string literal.
	BadEscapeError
)

// Pattern is the lexical pattern type produced and consumed by this package.
type Pattern = form.Pattern[rune, Token, *former.Error]

// Scanner holds an immutable lexical pattern and keyword set. The same
// Scanner may be used by different goroutines; all mutable matching state
// lives in per-call cursors.
type Scanner struct {
	pattern  *Pattern
	keywords map[string]bool
}

// New creates a scanner recognizing identifiers, the given keywords,
// numbers, strings, operators, punctuation, and comments.
func New(keywords ...string) *Scanner {
	s := &Scanner{keywords: make(map[string]bool, len(keywords))}
	for _, kw := range keywords {
		s.keywords[kw] = true
	}
	s.pattern = s.buildPattern()
	return s
}

// Scan tokenizes the given sources in order and returns all tokens and all
// scan errors. Sources after the first are queued and scanned when the
// current one is exhausted.
func (s *Scanner) Scan(src *source.Source, more ...*source.Source) ([]Token, []*former.Error) {
	pending := queue.New[*source.Source](more...)
	var tokens []Token
	var errors []*former.Error

	for src != nil {
		s.scanOne(src, &tokens, &errors)
		src, _ = pending.First()
	}
	return tokens, errors
}

func (s *Scanner) scanOne(src *source.Source, tokens *[]Token, errors *[]*former.Error) {
	cursor := form.NewCursor(src.Name(), src.Runes(), StepRune)
	fr := form.NewFormer[rune, Token, *former.Error](cursor, nil)

	for !cursor.Exhausted() {
		before := cursor.Index()
		result := fr.Form(s.pattern)

		for _, sub := range result.Expand() {
			switch sub.Kind {
			case form.OutputForm:
				*tokens = append(*tokens, sub.Output)
			case form.FailureForm:
				*errors = append(*errors, sub.Failure)
			}
		}

		// the fallback lexeme keeps this from triggering, but a stuck
		// cursor must never loop forever
		if cursor.Index() == before {
			cursor.Skip(1)
		}
	}
}

// StepRune advances a position past one rune, bumping the line on newlines.
// It is the Stepper used for all text cursors.
func StepRune(r rune, pos form.Position) form.Position {
	if r == '\n' {
		return pos.NextLine()
	}
	return pos.Next()
}
