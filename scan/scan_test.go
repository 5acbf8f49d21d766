package scan

import (
	"testing"

	"github.com/avklo/former"
	"github.com/avklo/former/internal/test"
	"github.com/avklo/former/source"
)

type tokenSample struct {
	kind TokenKind
	text string
}

func scanAll(text string, keywords ...string) ([]Token, []*former.Error) {
	return New(keywords...).Scan(source.New("sample", []byte(text)))
}

func expectTokens(t *testing.T, text string, expected []tokenSample, keywords ...string) []Token {
	tokens, errors := scanAll(text, keywords...)
	test.Assert(t, len(errors) == 0, "source %q: unexpected errors %v", text, errors)
	test.Assert(t, len(tokens) == len(expected), "source %q: expecting %d tokens, got %d: %v",
		text, len(expected), len(tokens), tokens)
	for i, sample := range expected {
		tok := tokens[i]
		test.Assert(t, tok.Kind == sample.kind && tok.Text == sample.text,
			"source %q: token %d: expecting %s %q, got %s", text, i, sample.kind, sample.text, tok)
	}
	return tokens
}

func TestEmpty(t *testing.T) {
	samples := []string{"", " ", " \t\r\n ", "// comment only", "/* block */", " /* a */ // b"}
	for _, text := range samples {
		tokens, errors := scanAll(text)
		test.Assert(t, len(tokens) == 0, "source %q: unexpected tokens %v", text, tokens)
		test.Assert(t, len(errors) == 0, "source %q: unexpected errors %v", text, errors)
	}
}

func TestLexemeKinds(t *testing.T) {
	samples := []struct {
		text   string
		sample tokenSample
	}{
		{"foo", tokenSample{Identifier, "foo"}},
		{"_x9", tokenSample{Identifier, "_x9"}},
		{"let", tokenSample{Keyword, "let"}},
		{"42", tokenSample{Number, "42"}},
		{"3.14", tokenSample{Number, "3.14"}},
		{"1e10", tokenSample{Number, "1e10"}},
		{"2.5E-3", tokenSample{Number, "2.5E-3"}},
		{`"hi"`, tokenSample{String, "hi"}},
		{"+", tokenSample{Operator, "+"}},
		{"==", tokenSample{Operator, "=="}},
		{"<=", tokenSample{Operator, "<="}},
		{"(", tokenSample{Punctuation, "("}},
		{";", tokenSample{Punctuation, ";"}},
	}
	for _, s := range samples {
		expectTokens(t, s.text, []tokenSample{s.sample}, "let")
	}
}

func TestExpression(t *testing.T) {
	expectTokens(t, "let x = (1 + 2) * y; // trailing", []tokenSample{
		{Keyword, "let"},
		{Identifier, "x"},
		{Operator, "="},
		{Punctuation, "("},
		{Number, "1"},
		{Operator, "+"},
		{Number, "2"},
		{Punctuation, ")"},
		{Operator, "*"},
		{Identifier, "y"},
		{Punctuation, ";"},
	}, "let")
}

func TestStringEscapes(t *testing.T) {
	expectTokens(t, `"a\nb\t\"q\""`, []tokenSample{{String, "a\nb\t\"q\""}})
}

func TestBadEscape(t *testing.T) {
	tokens, errors := scanAll(`"a\qb" x`)
	test.ExpectInt(t, 1, len(errors))
	test.ExpectErrorCode(t, BadEscapeError, errors[0])
	// scanning continues past the malformed literal
	test.ExpectInt(t, 1, len(tokens))
	test.Expect(t, tokens[0].Text == "x", "x", tokens[0].Text)
}

func TestUnterminatedString(t *testing.T) {
	tokens, errors := scanAll("\"abc\ndef")
	test.ExpectInt(t, 1, len(errors))
	test.ExpectErrorCode(t, UnterminatedStringError, errors[0])
	test.ExpectInt(t, 1, len(tokens))
	test.Expect(t, tokens[0].Text == "def", "def", tokens[0].Text)
	test.ExpectInt(t, 2, tokens[0].Line())
}

func TestUnterminatedComment(t *testing.T) {
	tokens, errors := scanAll("/* abc")
	test.ExpectInt(t, 0, len(tokens))
	test.ExpectInt(t, 1, len(errors))
	test.ExpectErrorCode(t, UnterminatedCommentError, errors[0])
}

func TestUnexpectedChar(t *testing.T) {
	tokens, errors := scanAll("a @ b")
	test.ExpectInt(t, 1, len(errors))
	test.ExpectErrorCode(t, UnexpectedCharError, errors[0])
	test.ExpectInt(t, 2, len(tokens))
	test.Expect(t, tokens[0].Text == "a", "a", tokens[0].Text)
	test.Expect(t, tokens[1].Text == "b", "b", tokens[1].Text)
}

func TestPositions(t *testing.T) {
	text := "ab\n cd"
	src := source.New("sample", []byte(text))
	tokens, errors := New().Scan(src)
	test.ExpectInt(t, 0, len(errors))
	test.ExpectInt(t, 2, len(tokens))

	ab, cd := tokens[0], tokens[1]
	test.ExpectInt(t, 1, ab.Line())
	test.ExpectInt(t, 1, ab.Col())
	test.ExpectInt(t, 2, cd.Line())
	test.ExpectInt(t, 2, cd.Col())
	test.ExpectInt(t, 2, cd.Span.Len())

	// token positions agree with the source line index
	line, col := src.LineCol(cd.Span.From().Offset())
	test.ExpectInt(t, line, cd.Line())
	test.ExpectInt(t, col, cd.Col())
	test.Expect(t, cd.SourceName() == "sample", "sample", cd.SourceName())
}

func TestMultipleSources(t *testing.T) {
	first := source.New("a", []byte("one\ntwo"))
	second := source.New("b", []byte("three"))
	tokens, errors := New().Scan(first, second)

	test.ExpectInt(t, 0, len(errors))
	test.ExpectInt(t, 3, len(tokens))
	test.Expect(t, tokens[2].Text == "three", "three", tokens[2].Text)
	test.Expect(t, tokens[2].SourceName() == "b", "b", tokens[2].SourceName())
	// positions restart per source
	test.ExpectInt(t, 1, tokens[2].Line())
	test.ExpectInt(t, 2, tokens[1].Line())
}
