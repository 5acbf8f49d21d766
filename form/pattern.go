package form

import (
	"fmt"
	"hash/fnv"
	"strconv"
	"sync/atomic"
)

type patternKind int8

const (
	literalPattern patternKind = iota
	predicatePattern
	alternativePattern
	sequencePattern
	repetitionPattern
	optionalPattern
	negationPattern
	deferredPattern
	wrapperPattern
	rankedPattern
)

var closureSeq atomic.Uint64

// Predicate decides whether one peeked input item matches.
type Predicate[Input comparable] func(Input) bool

// Factory lazily produces a pattern, used for recursive grammars.
type Factory[Input comparable, Output, Failure any] func() *Pattern[Input, Output, Failure]

// Pattern is an immutable description of a matching strategy, optionally
// decorated with an Order that runs once the match attempt completes.
// Patterns are cheaply shareable: the same node may appear in many
// productions and may be matched concurrently from independent cursors.
type Pattern[Input comparable, Output, Failure any] struct {
	kind    patternKind
	expect  Input
	pred    Predicate[Input]
	list    []*Pattern[Input, Output, Failure]
	inner   *Pattern[Input, Output, Failure]
	factory Factory[Input, Output, Failure]

	// repetition contract
	min, max                       int // max < 0 means unbounded
	update, accept, consume, halt  RecordSet
	alignOnSuccess, emptyOnFailure bool

	// alternative policy
	perfection, blacklist RecordSet

	closure uint64 // identity of an embedded closure, 0 for closure-free kinds
	order   *Order[Input, Output, Failure]
}

// Literal matches one input item equal to the expected value.
func Literal[Input comparable, Output, Failure any](expected Input) *Pattern[Input, Output, Failure] {
	return &Pattern[Input, Output, Failure]{kind: literalPattern, expect: expected}
}

// ByPredicate matches one input item satisfying the predicate.
func ByPredicate[Input comparable, Output, Failure any](pred Predicate[Input]) *Pattern[Input, Output, Failure] {
	return &Pattern[Input, Output, Failure]{kind: predicatePattern, pred: pred, closure: closureSeq.Add(1)}
}

// Anything matches any one input item.
func Anything[Input comparable, Output, Failure any]() *Pattern[Input, Output, Failure] {
	return ByPredicate[Input, Output, Failure](func(Input) bool { return true })
}

// Nothing matches no input item.
func Nothing[Input comparable, Output, Failure any]() *Pattern[Input, Output, Failure] {
	return ByPredicate[Input, Output, Failure](func(Input) bool { return false })
}

// Alternative tries children in order and returns the first one reaching
// Aligned or Panicked, skipping Blank children; if none reaches perfection
// the best-ranked candidate wins. The whole alternative is Blank when every
// child is Blank.
func Alternative[Input comparable, Output, Failure any](list ...*Pattern[Input, Output, Failure]) *Pattern[Input, Output, Failure] {
	return &Pattern[Input, Output, Failure]{
		kind:       alternativePattern,
		list:       list,
		perfection: Records(Aligned, Panicked),
		blacklist:  Records(Blank),
	}
}

// Choice evaluates children against a caller-supplied perfection set with no
// blacklist. With an empty perfection set every child is evaluated and the
// strictly best-ranked one wins, ties broken by first-seen.
func Choice[Input comparable, Output, Failure any](perfection RecordSet, list ...*Pattern[Input, Output, Failure]) *Pattern[Input, Output, Failure] {
	return &Pattern[Input, Output, Failure]{
		kind:       alternativePattern,
		list:       list,
		perfection: perfection,
	}
}

// Sequence matches children left to right. A Failed or Panicked child stops
// the sequence keeping the consumed prefix; a Blank child makes the whole
// sequence Blank.
func Sequence[Input comparable, Output, Failure any](list ...*Pattern[Input, Output, Failure]) *Pattern[Input, Output, Failure] {
	return &Pattern[Input, Output, Failure]{kind: sequencePattern, list: list}
}

// Repeat loops the inner pattern for syntactic lists: it stops immediately on
// Failed or Panicked (propagating the failure), continues through Ignored,
// and is Aligned once at least min iterations were collected, even zero.
// max < 0 means unbounded.
func Repeat[Input comparable, Output, Failure any](inner *Pattern[Input, Output, Failure], min, max int) *Pattern[Input, Output, Failure] {
	return &Pattern[Input, Output, Failure]{
		kind:           repetitionPattern,
		inner:          inner,
		min:            min,
		max:            max,
		update:         Records(Aligned, Failed, Panicked),
		accept:         Records(Aligned, Failed, Panicked, Ignored),
		consume:        Records(Aligned, Failed, Panicked),
		halt:           Records(Failed, Panicked),
		emptyOnFailure: true,
	}
}

// Persistence loops the inner pattern for lexical runs: it keeps going
// whether iterations succeed or fail, stopping only on exhaustion, zero
// consumption, or the max bound; the result is Aligned when at least min
// iterations were collected and Blank otherwise.
func Persistence[Input comparable, Output, Failure any](inner *Pattern[Input, Output, Failure], min, max int) *Pattern[Input, Output, Failure] {
	return &Pattern[Input, Output, Failure]{
		kind:           repetitionPattern,
		inner:          inner,
		min:            min,
		max:            max,
		accept:         Records(Aligned, Failed, Panicked, Ignored),
		consume:        Records(Aligned, Failed, Panicked),
		alignOnSuccess: true,
		emptyOnFailure: true,
	}
}

// Continuous is Repeat without early halting: failed iterations are adopted
// and collected but never stop the loop.
func Continuous[Input comparable, Output, Failure any](inner *Pattern[Input, Output, Failure], min, max int) *Pattern[Input, Output, Failure] {
	return &Pattern[Input, Output, Failure]{
		kind:           repetitionPattern,
		inner:          inner,
		min:            min,
		max:            max,
		update:         Records(Aligned, Failed, Panicked),
		accept:         Records(Aligned, Failed, Panicked, Ignored),
		consume:        Records(Aligned, Failed, Panicked),
		emptyOnFailure: true,
	}
}

// Optional speculates into the inner pattern. An Aligned, Failed, or
// Panicked child result is adopted verbatim; otherwise the optional
// consumes nothing and finishes Aligned with a blank form, so an optional
// slot never makes the enclosing pattern Blank.
func Optional[Input comparable, Output, Failure any](inner *Pattern[Input, Output, Failure]) *Pattern[Input, Output, Failure] {
	return &Pattern[Input, Output, Failure]{kind: optionalPattern, inner: inner}
}

// Negate matches one input item if the inner pattern does not align at the
// current position. The inner speculative attempt never leaks consumption.
func Negate[Input comparable, Output, Failure any](inner *Pattern[Input, Output, Failure]) *Pattern[Input, Output, Failure] {
	return &Pattern[Input, Output, Failure]{kind: negationPattern, inner: inner}
}

// Deferred resolves the factory lazily on each match attempt, allowing a
// pattern to reference itself directly or mutually without infinite eager
// construction.
func Deferred[Input comparable, Output, Failure any](factory Factory[Input, Output, Failure]) *Pattern[Input, Output, Failure] {
	return &Pattern[Input, Output, Failure]{kind: deferredPattern, factory: factory, closure: closureSeq.Add(1)}
}

// Wrap matches exactly like the inner pattern; it exists as an attachment
// point for an order that must not alter the inner matching semantics.
func Wrap[Input comparable, Output, Failure any](inner *Pattern[Input, Output, Failure]) *Pattern[Input, Output, Failure] {
	return &Pattern[Input, Output, Failure]{kind: wrapperPattern, inner: inner}
}

// Ranked matches exactly like the inner pattern but reports an externally
// supplied precedence instead of the natural record: an aligned inner match
// ranks at least precedence, a failed one at most precedence. Used under
// Choice to disambiguate overlapping matches by priority rather than order.
func Ranked[Input comparable, Output, Failure any](inner *Pattern[Input, Output, Failure], precedence Record) *Pattern[Input, Output, Failure] {
	return &Pattern[Input, Output, Failure]{kind: rankedPattern, inner: inner, min: int(precedence)}
}

// Delimited matches open, content, close, discarding the delimiters from the
// produced form.
func Delimited[Input comparable, Output, Failure any](open, content, close *Pattern[Input, Output, Failure]) *Pattern[Input, Output, Failure] {
	return Sequence[Input, Output, Failure](open.WithIgnore(), content, close.WithIgnore())
}

// WithOrder returns a copy of the pattern decorated with the given order.
// An already decorated pattern gets a composed order running the existing
// one first.
func (p *Pattern[Input, Output, Failure]) WithOrder(o *Order[Input, Output, Failure]) *Pattern[Input, Output, Failure] {
	result := *p
	if result.order == nil {
		result.order = o
	} else {
		result.order = OrderMultiple(result.order, o)
	}
	return &result
}

// WithTransform attaches a transform order, see OrderTransform.
func (p *Pattern[Input, Output, Failure]) WithTransform(t Transformer[Input, Output, Failure]) *Pattern[Input, Output, Failure] {
	return p.WithOrder(OrderTransform(t))
}

// WithIgnore attaches an ignore order, see OrderIgnore.
func (p *Pattern[Input, Output, Failure]) WithIgnore() *Pattern[Input, Output, Failure] {
	return p.WithOrder(OrderIgnore[Input, Output, Failure]())
}

// WithSkip attaches a skip order, see OrderSkip.
func (p *Pattern[Input, Output, Failure]) WithSkip() *Pattern[Input, Output, Failure] {
	return p.WithOrder(OrderSkip[Input, Output, Failure]())
}

// WithFail attaches a failure-emitting order, see OrderFail.
func (p *Pattern[Input, Output, Failure]) WithFail(e Emitter[Input, Output, Failure]) *Pattern[Input, Output, Failure] {
	return p.WithOrder(OrderFail(e))
}

// WithPanic attaches a panic-emitting order, see OrderPanic.
func (p *Pattern[Input, Output, Failure]) WithPanic(e Emitter[Input, Output, Failure]) *Pattern[Input, Output, Failure] {
	return p.WithOrder(OrderPanic(e))
}

// WithBranch attaches a branching order, see OrderBranch.
func (p *Pattern[Input, Output, Failure]) WithBranch(found, missing *Order[Input, Output, Failure]) *Pattern[Input, Output, Failure] {
	return p.WithOrder(OrderBranch(found, missing))
}

// WithFallback runs the given order only when the match did not align.
func (p *Pattern[Input, Output, Failure]) WithFallback(missing *Order[Input, Output, Failure]) *Pattern[Input, Output, Failure] {
	return p.WithOrder(OrderBranch(OrderPerform[Input, Output, Failure](func() {}), missing))
}

// WithCapture attaches a capture order, see OrderCapture.
func (p *Pattern[Input, Output, Failure]) WithCapture(id int) *Pattern[Input, Output, Failure] {
	return p.WithOrder(OrderCapture[Input, Output, Failure](id))
}

// WithPerform attaches an effect-only order, see OrderPerform.
func (p *Pattern[Input, Output, Failure]) WithPerform(f func()) *Pattern[Input, Output, Failure] {
	return p.WithOrder(OrderPerform[Input, Output, Failure](f))
}

// WithInspect attaches an inspecting order, see OrderInspect.
func (p *Pattern[Input, Output, Failure]) WithInspect(i Inspector[Input, Output, Failure]) *Pattern[Input, Output, Failure] {
	return p.WithOrder(OrderInspect(i))
}

// WithPardon attaches a pardoning order, see OrderPardon.
func (p *Pattern[Input, Output, Failure]) WithPardon() *Pattern[Input, Output, Failure] {
	return p.WithOrder(OrderPardon[Input, Output, Failure]())
}

// WithAlign attaches an aligning order, see OrderAlign.
func (p *Pattern[Input, Output, Failure]) WithAlign() *Pattern[Input, Output, Failure] {
	return p.WithOrder(OrderAlign[Input, Output, Failure]())
}

// Equal reports structural equality of two pattern graphs. Nodes embedding
// closures (predicates, deferred factories) compare by identity, attached
// orders are not compared. Supports caching of built forms keyed by pattern.
func (p *Pattern[Input, Output, Failure]) Equal(other *Pattern[Input, Output, Failure]) bool {
	if p == other {
		return true
	}
	if p == nil || other == nil || p.kind != other.kind {
		return false
	}

	switch p.kind {
	case literalPattern:
		return p.expect == other.expect

	case predicatePattern, deferredPattern:
		return p.closure == other.closure

	case alternativePattern, sequencePattern:
		if len(p.list) != len(other.list) || p.perfection != other.perfection || p.blacklist != other.blacklist {
			return false
		}
		for i, sub := range p.list {
			if !sub.Equal(other.list[i]) {
				return false
			}
		}
		return true

	case repetitionPattern:
		return p.min == other.min && p.max == other.max &&
			p.update == other.update && p.accept == other.accept &&
			p.consume == other.consume && p.halt == other.halt &&
			p.alignOnSuccess == other.alignOnSuccess && p.emptyOnFailure == other.emptyOnFailure &&
			p.inner.Equal(other.inner)

	default:
		return p.min == other.min && p.inner.Equal(other.inner)
	}
}

// Hash returns a structural FNV-1a hash consistent with Equal.
func (p *Pattern[Input, Output, Failure]) Hash() uint64 {
	h := fnv.New64a()
	p.hash(h)
	return h.Sum64()
}

type hasher interface {
	Write([]byte) (int, error)
}

func (p *Pattern[Input, Output, Failure]) hash(h hasher) {
	if p == nil {
		h.Write([]byte{0xff})
		return
	}
	h.Write([]byte{byte(p.kind)})

	switch p.kind {
	case literalPattern:
		h.Write([]byte(literalKey(p.expect)))

	case predicatePattern, deferredPattern:
		h.Write([]byte(strconv.FormatUint(p.closure, 16)))

	case alternativePattern, sequencePattern:
		h.Write([]byte{byte(p.perfection), byte(p.blacklist)})
		for _, sub := range p.list {
			sub.hash(h)
		}

	case repetitionPattern:
		h.Write([]byte(strconv.Itoa(p.min)))
		h.Write([]byte(strconv.Itoa(p.max)))
		h.Write([]byte{byte(p.update), byte(p.accept), byte(p.consume), byte(p.halt)})
		if p.alignOnSuccess {
			h.Write([]byte{1})
		}
		if p.emptyOnFailure {
			h.Write([]byte{2})
		}
		p.inner.hash(h)

	default:
		h.Write([]byte(strconv.Itoa(p.min)))
		p.inner.hash(h)
	}
}

func literalKey[Input comparable](v Input) string {
	switch item := any(v).(type) {
	case string:
		return item
	case rune:
		return string(item)
	default:
		return fmt.Sprintf("%v", item)
	}
}
