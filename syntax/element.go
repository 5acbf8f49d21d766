package syntax

import (
	"strings"

	"github.com/avklo/former/form"
	"github.com/avklo/former/scan"
)

// ElementKind classifies syntax elements.
type ElementKind int

const (
	LiteralElement ElementKind = iota
	IdentifierElement
	UnaryElement
	BinaryElement
	GroupElement
	BindingElement
	BlockElement
	SequenceElement
)

var elementNames = [...]string{
	"literal", "identifier", "unary", "binary", "group", "binding", "block", "sequence",
}

func (k ElementKind) String() string {
	if k < LiteralElement || k > SequenceElement {
		return "invalid"
	}
	return elementNames[k]
}

// Element is one node of a parsed syntax tree: a kind, the principal token
// (the literal value, the operator, the bound name), and ordered children.
type Element struct {
	Kind     ElementKind
	Token    scan.Token
	Children []*Element
	Span     form.Span
}

// SourceName returns the source name of the element start, implementing former.SourcePos.
func (el *Element) SourceName() string {
	return el.Span.SourceName()
}

// Line returns the line of the element start, implementing former.SourcePos.
func (el *Element) Line() int {
	return el.Span.Line()
}

// Col returns the column of the element start, implementing former.SourcePos.
func (el *Element) Col() int {
	return el.Span.Col()
}

// NthChild returns the i-th child, counting from the end when i is negative,
// or nil when out of range.
func (el *Element) NthChild(i int) *Element {
	if i < 0 {
		i += len(el.Children)
	}
	if i < 0 || i >= len(el.Children) {
		return nil
	}
	return el.Children[i]
}

// Walk calls visit for el and every descendant in depth-first order,
// skipping a node's children when visit returns false for it.
func (el *Element) Walk(visit func(*Element) bool) {
	if el == nil || !visit(el) {
		return
	}
	for _, c := range el.Children {
		c.Walk(visit)
	}
}

// Find returns all descendants of the given kind, el included, in
// depth-first order.
func (el *Element) Find(kind ElementKind) []*Element {
	var result []*Element
	el.Walk(func(e *Element) bool {
		if e.Kind == kind {
			result = append(result, e)
		}
		return true
	})
	return result
}

// String renders the element as a compact s-expression, used mainly by
// tests and diagnostics: leaves render as their token text, inner nodes as
// (text child ...).
func (el *Element) String() string {
	var b strings.Builder
	el.write(&b)
	return b.String()
}

func (el *Element) write(b *strings.Builder) {
	if len(el.Children) == 0 {
		b.WriteString(el.label())
		return
	}

	b.WriteByte('(')
	b.WriteString(el.label())
	for _, c := range el.Children {
		b.WriteByte(' ')
		c.write(b)
	}
	b.WriteByte(')')
}

func (el *Element) label() string {
	switch {
	case el.Kind == BindingElement:
		return "let " + el.Token.Text
	case el.Token.Text != "":
		return el.Token.Text
	default:
		return el.Kind.String()
	}
}
