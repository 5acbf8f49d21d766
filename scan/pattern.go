package scan

import (
	"strings"
	"unicode"

	"github.com/avklo/former"
	"github.com/avklo/former/form"
)

const operatorRunes = "+-*/%=<>!&|^~?:"
const punctuationRunes = "()[]{},;."

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

type runeForm = form.Form[rune, Token, *former.Error]

// buildPattern assembles the whole lexical pattern: leading trivia
// (whitespace and comments, consumed but never emitted) followed by at most
// one lexeme. The trailing fallback lexeme consumes one rune and reports it,
// so the scanner always makes progress.
func (s *Scanner) buildPattern() *Pattern {
	trivia := form.Persistence(
		form.Alternative(whitespace(), lineComment(), blockComment()),
		0, -1)

	lexeme := form.Alternative(
		number(),
		stringLiteral(),
		s.word(),
		operator(),
		punctuation(),
		fallback(),
	)

	return form.Sequence(trivia, form.Optional(lexeme))
}

func whitespace() *Pattern {
	return form.Persistence(
		form.ByPredicate[rune, Token, *former.Error](unicode.IsSpace),
		1, -1).WithIgnore()
}

func lineComment() *Pattern {
	return form.Sequence(
		form.Literal[rune, Token, *former.Error]('/'),
		form.Literal[rune, Token, *former.Error]('/'),
		form.Persistence(
			form.ByPredicate[rune, Token, *former.Error](func(r rune) bool { return r != '\n' }),
			0, -1),
	).WithIgnore()
}

func blockComment() *Pattern {
	open := form.Sequence(
		form.Literal[rune, Token, *former.Error]('/'),
		form.Literal[rune, Token, *former.Error]('*'),
	)
	close := form.Sequence(
		form.Literal[rune, Token, *former.Error]('*'),
		form.Literal[rune, Token, *former.Error]('/'),
	)
	body := form.Persistence(form.Negate(close), 0, -1)

	report := form.OrderFail(func(_ *form.Registry, f runeForm) *former.Error {
		return former.FormatErrorPos(f.Span, UnterminatedCommentError, "unterminated comment")
	})
	return form.Sequence(open, body, close.WithFallback(report)).WithIgnore()
}

// word scans an identifier and promotes it to a keyword token when it is in
// the scanner's keyword set.
func (s *Scanner) word() *Pattern {
	return form.Sequence(
		form.ByPredicate[rune, Token, *former.Error](isIdentStart),
		form.Persistence(
			form.ByPredicate[rune, Token, *former.Error](isIdentPart),
			0, -1),
	).WithTransform(func(_ *form.Registry, f runeForm) (runeForm, **former.Error) {
		text := string(f.Inputs())
		kind := Identifier
		if s.keywords[text] {
			kind = Keyword
		}
		return form.NewOutput[rune, Token, *former.Error](NewToken(kind, text, f.Span), f.Span), nil
	})
}

func number() *Pattern {
	digits := func() *Pattern {
		return form.Persistence(
			form.ByPredicate[rune, Token, *former.Error](isDigit),
			1, -1)
	}
	fraction := form.Sequence(form.Literal[rune, Token, *former.Error]('.'), digits())
	exponent := form.Sequence(
		form.ByPredicate[rune, Token, *former.Error](func(r rune) bool { return r == 'e' || r == 'E' }),
		form.Optional(form.ByPredicate[rune, Token, *former.Error](func(r rune) bool { return r == '+' || r == '-' })),
		digits(),
	)

	return form.Sequence(digits(), form.Optional(fraction), form.Optional(exponent)).
		WithTransform(func(_ *form.Registry, f runeForm) (runeForm, **former.Error) {
			text := string(f.Inputs())
			return form.NewOutput[rune, Token, *former.Error](NewToken(Number, text, f.Span), f.Span), nil
		})
}

func stringLiteral() *Pattern {
	quote := form.Literal[rune, Token, *former.Error]('"')
	escape := form.Sequence(
		form.Literal[rune, Token, *former.Error]('\\'),
		form.Anything[rune, Token, *former.Error](),
	)
	plain := form.ByPredicate[rune, Token, *former.Error](func(r rune) bool {
		return r != '"' && r != '\\' && r != '\n'
	})
	body := form.Persistence(form.Alternative(escape, plain), 0, -1)

	report := form.OrderFail(func(_ *form.Registry, f runeForm) *former.Error {
		return former.FormatErrorPos(f.Span, UnterminatedStringError, "unterminated string")
	})

	return form.Sequence(quote.WithIgnore(), body, quote.WithFallback(report).WithIgnore()).
		WithTransform(func(_ *form.Registry, f runeForm) (runeForm, **former.Error) {
			text, e := unescape(f.Inputs(), f.Span)
			if e != nil {
				return f, &e
			}
			return form.NewOutput[rune, Token, *former.Error](NewToken(String, text, f.Span), f.Span), nil
		})
}

func unescape(runes []rune, span form.Span) (string, *former.Error) {
	var b strings.Builder
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r != '\\' {
			b.WriteRune(r)
			continue
		}

		i++
		if i >= len(runes) {
			break
		}
		switch runes[i] {
		case 'n':
			b.WriteRune('\n')
		case 't':
			b.WriteRune('\t')
		case 'r':
			b.WriteRune('\r')
		case '"', '\'', '\\':
			b.WriteRune(runes[i])
		default:
			return "", former.FormatErrorPos(span, BadEscapeError, "unknown escape \\%c", runes[i])
		}
	}
	return b.String(), nil
}

func operator() *Pattern {
	return form.Persistence(
		form.ByPredicate[rune, Token, *former.Error](func(r rune) bool {
			return strings.ContainsRune(operatorRunes, r)
		}),
		1, -1).
		WithTransform(func(_ *form.Registry, f runeForm) (runeForm, **former.Error) {
			text := string(f.Inputs())
			return form.NewOutput[rune, Token, *former.Error](NewToken(Operator, text, f.Span), f.Span), nil
		})
}

func punctuation() *Pattern {
	return form.ByPredicate[rune, Token, *former.Error](func(r rune) bool {
		return strings.ContainsRune(punctuationRunes, r)
	}).
		WithTransform(func(_ *form.Registry, f runeForm) (runeForm, **former.Error) {
			text := string(f.Inputs())
			return form.NewOutput[rune, Token, *former.Error](NewToken(Punctuation, text, f.Span), f.Span), nil
		})
}

// fallback consumes the offending rune so scanning can continue past it.
// It stays blank at end of input: trailing trivia is not an error.
func fallback() *Pattern {
	return form.Anything[rune, Token, *former.Error]().
		WithInspect(func(d form.Draft[rune, Token, *former.Error]) *form.Order[rune, Token, *former.Error] {
			if d.Record != form.Aligned {
				return nil
			}
			return form.OrderFail(func(_ *form.Registry, f runeForm) *former.Error {
				return former.FormatErrorPos(f.Span, UnexpectedCharError, "unexpected char %q", f.Inputs()[0])
			})
		})
}
