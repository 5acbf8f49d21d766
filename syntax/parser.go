// Package syntax turns token streams into syntax element trees.
//
// The parser is the second client of the form engine: the same pattern
// algebra that scans characters drives here over a token cursor. The
// grammar covers literals, identifiers, unary and binary expressions with
// precedence, parenthesised groups, let bindings, blocks, and statement
// sequences. Malformed constructs produce positioned diagnostics and
// parsing continues with the next statement.
package syntax

import (
	"github.com/avklo/former"
	"github.com/avklo/former/form"
	"github.com/avklo/former/scan"
)

// Error codes used by parser:
const (
	// UnexpectedTokenError indicates a token no statement starts with.
	UnexpectedTokenError = former.SyntaxErrors + iota

	// ExpectedExpressionError indicates a missing operand or group body.
	ExpectedExpressionError

	// ExpectedTokenError indicates a missing required token, e.g. a closing
	// parenthesis or the name after "let".
	ExpectedTokenError
)

// Pattern is the syntactic pattern type: token input, element output.
type Pattern = form.Pattern[scan.Token, *Element, *former.Error]

type tokenForm = form.Form[scan.Token, *Element, *former.Error]

type tokenOrder = form.Order[scan.Token, *Element, *former.Error]

// Keywords lists the words the grammar reserves. Pass them to scan.New
// when scanning input meant for this parser.
var Keywords = []string{"let"}

const bindingNameCapture = 1

// Parser holds an immutable syntactic pattern graph. One Parser may drive
// any number of token streams, concurrently if needed.
type Parser struct {
	expression *Pattern
	statement  *Pattern
}

// New builds the pattern graph once.
func New() *Parser {
	p := &Parser{}

	expression := form.Deferred(func() *Pattern { return p.expression })
	statement := form.Deferred(func() *Pattern { return p.statement })

	primary := form.Alternative(
		leaf(scan.Number, LiteralElement),
		leaf(scan.String, LiteralElement),
		leaf(scan.Identifier, IdentifierElement),
		group(expression),
	)

	unary := form.Sequence(
		form.Persistence(operator("-", "!"), 0, -1),
		primary,
	).WithTransform(foldUnary)

	product := binary(unary, "*", "/", "%")
	sum := binary(product, "+", "-")
	p.expression = binary(sum, "==", "!=", "<=", ">=", "<", ">")

	// the semicolon stays a plain input form; drivers collect only outputs
	// and failures, so it needs no explicit discarding
	p.statement = form.Sequence(
		form.Alternative(binding(expression), block(statement), p.expression),
		form.Optional(punctuation(";")),
	)

	return p
}

// Parse drives the statement pattern over tokens and returns the root
// sequence element plus every syntax error found, in source order.
func (p *Parser) Parse(name string, tokens []scan.Token) (*Element, []*former.Error) {
	cursor := form.NewCursor(name, tokens, StepToken)
	fr := form.NewFormer[scan.Token, *Element, *former.Error](cursor, nil)

	recovery := form.Anything[scan.Token, *Element, *former.Error]().
		WithFail(func(_ *form.Registry, f tokenForm) *former.Error {
			unexpected := f.Inputs()[0]
			return former.FormatErrorPos(unexpected, UnexpectedTokenError, "unexpected %s", unexpected)
		})
	driver := form.Alternative(p.statement, recovery)

	root := &Element{Kind: SequenceElement}
	var errors []*former.Error

	for !cursor.Exhausted() {
		before := cursor.Index()
		result := fr.Form(driver)

		for _, sub := range result.Expand() {
			switch sub.Kind {
			case form.OutputForm:
				root.Children = append(root.Children, sub.Output)
			case form.FailureForm:
				errors = append(errors, sub.Failure)
			}
		}

		if cursor.Index() == before {
			cursor.Skip(1)
		}
	}

	if len(root.Children) > 0 {
		first, last := root.Children[0], root.Children[len(root.Children)-1]
		root.Span = form.NewSpan(first.Span.From(), last.Span.To())
	}
	return root, errors
}

// StepToken advances a position past one token, adopting the end of the
// token's recorded span so that diagnostics point into the original text.
func StepToken(t scan.Token, pos form.Position) form.Position {
	to := t.Span.To()
	return pos.At(pos.Offset()+1, to.Line(), to.Col())
}

func match(kind scan.TokenKind, texts ...string) *Pattern {
	if len(texts) == 0 {
		return form.ByPredicate[scan.Token, *Element, *former.Error](func(t scan.Token) bool {
			return t.Kind == kind
		})
	}

	allowed := make(map[string]bool, len(texts))
	for _, text := range texts {
		allowed[text] = true
	}
	return form.ByPredicate[scan.Token, *Element, *former.Error](func(t scan.Token) bool {
		return t.Kind == kind && allowed[t.Text]
	})
}

func operator(texts ...string) *Pattern {
	return match(scan.Operator, texts...)
}

func punctuation(text string) *Pattern {
	return match(scan.Punctuation, text)
}

func keyword(text string) *Pattern {
	return match(scan.Keyword, text)
}

// leaf matches one token of the given kind and maps it to a childless element.
func leaf(kind scan.TokenKind, elem ElementKind) *Pattern {
	return match(kind).WithTransform(func(_ *form.Registry, f tokenForm) (tokenForm, **former.Error) {
		t := f.Inputs()[0]
		el := &Element{Kind: elem, Token: t, Span: t.Span}
		return form.NewOutput[scan.Token, *Element, *former.Error](el, f.Span), nil
	})
}

// required makes a grammar slot mandatory: when the inner pattern comes up
// blank the slot fails with a positioned diagnostic instead of letting the
// enclosing sequence roll back silently. Failures from deeper slots pass
// through untouched.
func required(p *Pattern, code int, message string) *Pattern {
	return p.WithInspect(func(d form.Draft[scan.Token, *Element, *former.Error]) *tokenOrder {
		if d.Record != form.Blank {
			return nil
		}
		return form.OrderFail(func(_ *form.Registry, f tokenForm) *former.Error {
			return former.FormatErrorPos(f.Span, code, message)
		})
	})
}

func group(expression *Pattern) *Pattern {
	return form.Sequence(
		punctuation("(").WithIgnore(),
		required(expression, ExpectedExpressionError, "expected expression after \"(\""),
		required(punctuation(")").WithIgnore(), ExpectedTokenError, "expected \")\""),
	).WithTransform(func(_ *form.Registry, f tokenForm) (tokenForm, **former.Error) {
		inner := f.Outputs()[0]
		el := &Element{Kind: GroupElement, Children: []*Element{inner}, Span: f.Span}
		return form.NewOutput[scan.Token, *Element, *former.Error](el, f.Span), nil
	})
}

// binary builds one precedence level: a left fold of operand chained by the
// given operator texts.
func binary(operand *Pattern, texts ...string) *Pattern {
	rest := form.Repeat(form.Sequence(
		operator(texts...),
		required(operand, ExpectedExpressionError, "expected expression after operator"),
	), 0, -1)

	return form.Sequence(operand, rest).WithTransform(func(_ *form.Registry, f tokenForm) (tokenForm, **former.Error) {
		ops, operands := f.Inputs(), f.Outputs()
		el := operands[0]
		for i, op := range ops {
			right := operands[i+1]
			el = &Element{
				Kind:     BinaryElement,
				Token:    op,
				Children: []*Element{el, right},
				Span:     form.NewSpan(el.Span.From(), right.Span.To()),
			}
		}
		return form.NewOutput[scan.Token, *Element, *former.Error](el, f.Span), nil
	})
}

// foldUnary wraps the operand element once per collected prefix operator,
// innermost last: "- ! x" becomes (- (! x)).
func foldUnary(_ *form.Registry, f tokenForm) (tokenForm, **former.Error) {
	ops, operands := f.Inputs(), f.Outputs()
	el := operands[len(operands)-1]
	for i := len(ops) - 1; i >= 0; i-- {
		el = &Element{
			Kind:     UnaryElement,
			Token:    ops[i],
			Children: []*Element{el},
			Span:     form.NewSpan(ops[i].Span.From(), el.Span.To()),
		}
	}
	return form.NewOutput[scan.Token, *Element, *former.Error](el, f.Span), nil
}

// binding matches "let name = expression". The name token is captured
// during the match and read back by the transform; bindings cannot nest
// inside a binding's value (blocks are statements, not expressions), so a
// single capture slot suffices.
func binding(expression *Pattern) *Pattern {
	name := match(scan.Identifier).WithCapture(bindingNameCapture)

	return form.Sequence(
		keyword("let").WithIgnore(),
		required(name, ExpectedTokenError, "expected name after \"let\""),
		required(operator("=").WithIgnore(), ExpectedTokenError, "expected \"=\""),
		required(expression, ExpectedExpressionError, "expected expression after \"=\""),
	).WithTransform(func(reg *form.Registry, f tokenForm) (tokenForm, **former.Error) {
		captured, _ := reg.Captured(bindingNameCapture)
		nameForm, _ := captured.(tokenForm)
		value := f.Outputs()[0]
		el := &Element{
			Kind:     BindingElement,
			Token:    nameForm.Inputs()[0],
			Children: []*Element{value},
			Span:     f.Span,
		}
		return form.NewOutput[scan.Token, *Element, *former.Error](el, f.Span), nil
	})
}

// block matches "{ statement* }" and yields a block element whose children
// are the statement elements in order.
func block(statement *Pattern) *Pattern {
	return form.Sequence(
		punctuation("{").WithIgnore(),
		form.Repeat(statement, 0, -1),
		required(punctuation("}").WithIgnore(), ExpectedTokenError, "expected \"}\""),
	).WithTransform(func(_ *form.Registry, f tokenForm) (tokenForm, **former.Error) {
		el := &Element{Kind: BlockElement, Children: f.Outputs(), Span: f.Span}
		return form.NewOutput[scan.Token, *Element, *former.Error](el, f.Span), nil
	})
}
