package syntax

import (
	"testing"

	"github.com/avklo/former"
	"github.com/avklo/former/internal/test"
	"github.com/avklo/former/scan"
	"github.com/avklo/former/source"
)

func parse(t *testing.T, text string) (*Element, []*former.Error) {
	tokens, scanErrors := scan.New(Keywords...).Scan(source.New("sample", []byte(text)))
	test.Assert(t, len(scanErrors) == 0, "source %q: unexpected scan errors %v", text, scanErrors)
	return New().Parse("sample", tokens)
}

func expectTree(t *testing.T, text, expected string) *Element {
	root, errors := parse(t, text)
	test.Assert(t, len(errors) == 0, "source %q: unexpected errors %v", text, errors)
	got := root.String()
	test.Assert(t, got == expected, "source %q: expecting %s, got %s", text, expected, got)
	return root
}

func expectError(t *testing.T, text string, code int) {
	_, errors := parse(t, text)
	test.Assert(t, len(errors) == 1, "source %q: expecting one error, got %v", text, errors)
	test.ExpectErrorCode(t, code, errors[0])
}

func TestEmptyInput(t *testing.T) {
	root, errors := parse(t, "")
	test.ExpectInt(t, 0, len(errors))
	test.ExpectInt(t, 0, len(root.Children))
}

func TestPrimary(t *testing.T) {
	expectTree(t, "x", "(sequence x)")
	expectTree(t, "42", "(sequence 42)")
	expectTree(t, `"hi"`, "(sequence hi)")
	expectTree(t, "(x)", "(sequence (group x))")
}

func TestPrecedence(t *testing.T) {
	samples := [][2]string{
		{"1 + 2 * 3", "(+ 1 (* 2 3))"},
		{"1 * 2 + 3", "(+ (* 1 2) 3)"},
		{"1 - 2 - 3", "(- (- 1 2) 3)"},
		{"a + b == c", "(== (+ a b) c)"},
		{"(1 + 2) * 3", "(* (group (+ 1 2)) 3)"},
		{"- x * y", "(* (- x) y)"},
		{"! a == b", "(== (! a) b)"},
		{"- - x", "(- (- x))"},
	}
	for _, s := range samples {
		expectTree(t, s[0], "(sequence "+s[1]+")")
	}
}

func TestBinding(t *testing.T) {
	root := expectTree(t, "let x = 1 + 2;", "(sequence (let x (+ 1 2)))")

	bindings := root.Find(BindingElement)
	test.ExpectInt(t, 1, len(bindings))
	test.Expect(t, bindings[0].Token.Text == "x", "x", bindings[0].Token.Text)
	test.Assert(t, bindings[0].NthChild(-1).Kind == BinaryElement,
		"expecting a binary value, got %v", bindings[0].NthChild(-1).Kind)
}

func TestBlock(t *testing.T) {
	expectTree(t, "{ let y = 2; y * 3 }", "(sequence (block (let y 2) (* y 3)))")
	expectTree(t, "{ }", "(sequence block)")
}

func TestStatementSequence(t *testing.T) {
	expectTree(t, "a; b", "(sequence a b)")
	expectTree(t, "a b", "(sequence a b)")
}

func TestMissingOperand(t *testing.T) {
	expectError(t, "1 +", ExpectedExpressionError)
}

func TestMissingClose(t *testing.T) {
	expectError(t, "(1 + 2", ExpectedTokenError)
	expectError(t, "{ a", ExpectedTokenError)
}

func TestMalformedBinding(t *testing.T) {
	// the dangling "=" is reported a second time once recovery resumes
	// after the failed binding
	_, errors := parse(t, "let = 1")
	test.ExpectInt(t, 2, len(errors))
	test.ExpectErrorCode(t, ExpectedTokenError, errors[0])
	test.ExpectErrorCode(t, UnexpectedTokenError, errors[1])

	expectError(t, "let x 1", ExpectedTokenError)
	expectError(t, "let x =", ExpectedExpressionError)
}

func TestRecovery(t *testing.T) {
	root, errors := parse(t, "a ) b")
	test.ExpectInt(t, 1, len(errors))
	test.ExpectErrorCode(t, UnexpectedTokenError, errors[0])
	test.Expect(t, root.String() == "(sequence a b)", "(sequence a b)", root.String())
}

func TestWalk(t *testing.T) {
	root := expectTree(t, "let x = (1 + 2)", "(sequence (let x (group (+ 1 2))))")

	literals := root.Find(LiteralElement)
	test.ExpectInt(t, 2, len(literals))
	test.Expect(t, literals[0].Token.Text == "1", "1", literals[0].Token.Text)

	visited := 0
	root.Walk(func(el *Element) bool {
		visited++
		return el.Kind != GroupElement
	})
	// sequence, binding, group; the group subtree is pruned
	test.ExpectInt(t, 3, visited)
}

func TestElementPositions(t *testing.T) {
	root, errors := parse(t, "a +\n b")
	test.ExpectInt(t, 0, len(errors))

	sum := root.NthChild(0)
	test.Assert(t, sum.Kind == BinaryElement, "expecting a binary element, got %v", sum.Kind)
	test.ExpectInt(t, 1, sum.Line())
	test.ExpectInt(t, 1, sum.Col())
	test.ExpectInt(t, 2, sum.NthChild(1).Line())
	test.ExpectInt(t, 2, sum.NthChild(1).Col())
	test.Expect(t, sum.SourceName() == "sample", "sample", sum.SourceName())
}
