// Package form implements a generic pattern-matching and tree-forming
// engine: immutable patterns describe matching strategies, a former drives
// them over a positioned input source, and the result is a typed form tree.
// The same engine scans characters into tokens and parses tokens into
// syntax elements; see the scan and syntax packages.
package form

// Former drives patterns over one source: the single entry point is Form.
// The former holds the mutable per-run state (source cursor, registry,
// capture table); patterns stay immutable and shareable across formers.
type Former[Input comparable, Output, Failure any] struct {
	source   Source[Input]
	registry *Registry
}

// NewFormer creates a former over the source. A nil registry gets a fresh one.
func NewFormer[Input comparable, Output, Failure any](source Source[Input], registry *Registry) *Former[Input, Output, Failure] {
	if registry == nil {
		registry = NewRegistry()
	}
	return &Former[Input, Output, Failure]{source: source, registry: registry}
}

// Source returns the driven source.
func (fr *Former[Input, Output, Failure]) Source() Source[Input] {
	return fr.source
}

// Registry returns the mutable context visible to orders.
func (fr *Former[Input, Output, Failure]) Registry() *Registry {
	return fr.registry
}

// Form matches the pattern at the committed cursor and finalizes a form.
// The cursor advances only when the attempt ends Aligned, Failed, or
// Panicked; Blank and Ignored attempts leave the source untouched.
func (fr *Former[Input, Output, Failure]) Form(p *Pattern[Input, Output, Failure]) Form[Input, Output, Failure] {
	d := newDraft(fr.source.Index(), fr.source.Position(), p)
	fr.build(d)
	if d.Record.IsEffected() || d.Record == Panicked {
		fr.source.Jump(d.Marker, d.Pos)
	}
	return d.Form
}

// Draft matches the pattern at the committed cursor and returns the raw
// finalized draft without committing the cursor. Used by callers that need
// the match trace for diagnostics.
func (fr *Former[Input, Output, Failure]) Draft(p *Pattern[Input, Output, Failure]) *Draft[Input, Output, Failure] {
	d := newDraft(fr.source.Index(), fr.source.Position(), p)
	fr.build(d)
	return d
}

func (fr *Former[Input, Output, Failure]) build(d *Draft[Input, Output, Failure]) {
	p := d.Pattern
	start := d.Pos

	switch p.kind {
	case literalPattern:
		fr.buildItem(d, start, func(item Input) bool { return item == p.expect })

	case predicatePattern:
		fr.buildItem(d, start, p.pred)

	case negationPattern:
		fr.buildNegation(d, start)

	case optionalPattern:
		fr.buildOptional(d, start)

	case alternativePattern:
		fr.buildAlternative(d, start)

	case sequencePattern:
		fr.buildSequence(d, start)

	case repetitionPattern:
		fr.buildRepetition(d, start)

	case deferredPattern:
		child := newDraft(d.Marker, d.Pos, p.factory())
		fr.build(child)
		d.adopt(child)

	case wrapperPattern:
		child := newDraft(d.Marker, d.Pos, p.inner)
		fr.build(child)
		d.adopt(child)

	case rankedPattern:
		child := newDraft(d.Marker, d.Pos, p.inner)
		fr.build(child)
		d.adopt(child)
		precedence := Record(p.min)
		switch child.Record {
		case Aligned:
			d.Record = max(precedence, Aligned)
		case Failed:
			d.Record = min(precedence, Failed)
		}
	}

	if p.order != nil {
		p.order.apply(fr, d)
	}
}

func (fr *Former[Input, Output, Failure]) buildItem(d *Draft[Input, Output, Failure], start Position, pred Predicate[Input]) {
	item, has := fr.source.At(d.Marker)
	if !has || !pred(item) {
		d.Record = Blank
		return
	}

	d.Record = Aligned
	d.Marker, d.Pos = fr.source.Step(d.Marker, d.Pos)
	d.Consumed = append(d.Consumed, item)
	d.Form = NewInput[Input, Output, Failure](item, NewSpan(start, d.Pos))
}

// buildNegation speculates into the inner pattern against a throwaway
// cursor; no consumption from that attempt ever leaks out.
func (fr *Former[Input, Output, Failure]) buildNegation(d *Draft[Input, Output, Failure], start Position) {
	item, has := fr.source.At(d.Marker)
	if !has {
		d.Record = Blank
		return
	}

	child := newDraft(d.Marker, d.Pos, d.Pattern.inner)
	fr.build(child)
	if child.Record == Aligned {
		d.Record = Blank
		return
	}

	d.Record = Aligned
	d.Marker, d.Pos = fr.source.Step(d.Marker, d.Pos)
	d.Consumed = append(d.Consumed, item)
	d.Form = NewInput[Input, Output, Failure](item, NewSpan(start, d.Pos))
}

func (fr *Former[Input, Output, Failure]) buildOptional(d *Draft[Input, Output, Failure], start Position) {
	child := newDraft(d.Marker, d.Pos, d.Pattern.inner)
	fr.build(child)

	if child.Record.IsEffected() || child.Record == Panicked {
		d.adopt(child)
		return
	}
	d.Record = Aligned
	d.Form = NewBlank[Input, Output, Failure](PointSpan(start))
}

func (fr *Former[Input, Output, Failure]) buildAlternative(d *Draft[Input, Output, Failure], start Position) {
	p := d.Pattern
	var best *Draft[Input, Output, Failure]

	for _, sub := range p.list {
		child := newDraft(d.Marker, d.Pos, sub)
		fr.build(child)
		if p.blacklist.Has(child.Record) {
			continue
		}

		if best == nil || child.Record > best.Record {
			best = child
		}
		if p.perfection.Has(child.Record) {
			break
		}
	}

	if best == nil {
		d.Record = Blank
		d.Form = NewBlank[Input, Output, Failure](PointSpan(start))
		return
	}
	d.adopt(best)
}

func (fr *Former[Input, Output, Failure]) buildSequence(d *Draft[Input, Output, Failure], start Position) {
	p := d.Pattern
	index, pos := d.Marker, d.Pos
	var consumed []Input
	forms := make([]Form[Input, Output, Failure], 0, len(p.list))

	for _, sub := range p.list {
		child := newDraft(index, pos, sub)
		fr.build(child)
		d.Children = append(d.Children, child)

		stop := false
		switch child.Record {
		case Aligned:
			d.Record = Aligned
			index, pos = child.Marker, child.Pos
			consumed = append(consumed, child.Consumed...)
			forms = append(forms, child.Form)
		case Failed, Panicked:
			d.Record = child.Record
			index, pos = child.Marker, child.Pos
			consumed = append(consumed, child.Consumed...)
			forms = append(forms, child.Form)
			stop = true
		case Ignored:
			index, pos = child.Marker, child.Pos
		default:
			d.Record = child.Record
			stop = true
		}
		if stop {
			break
		}
	}

	d.Marker, d.Pos = index, pos
	d.Consumed = consumed
	d.Form = NewMultiple(forms, NewSpan(start, pos))
}

func (fr *Former[Input, Output, Failure]) buildRepetition(d *Draft[Input, Output, Failure], start Position) {
	p := d.Pattern
	index, pos := d.Marker, d.Pos
	var consumed []Input
	var forms []Form[Input, Output, Failure]

	for {
		if _, has := fr.source.At(index); !has {
			break
		}

		child := newDraft(index, pos, p.inner)
		fr.build(child)
		// a zero-consumption or unaccepted iteration would loop forever
		if child.Marker == index || !p.accept.Has(child.Record) {
			break
		}
		d.Children = append(d.Children, child)

		if p.update.Has(child.Record) {
			d.Record = child.Record
		}
		if p.accept.Has(child.Record) {
			index, pos = child.Marker, child.Pos
		}
		if p.consume.Has(child.Record) {
			consumed = append(consumed, child.Consumed...)
			forms = append(forms, child.Form)
		}
		if p.halt.Has(child.Record) {
			break
		}
		if p.max >= 0 && len(forms) >= p.max {
			break
		}
	}

	if len(forms) < p.min {
		if p.emptyOnFailure {
			d.Record = Blank
		}
		return
	}

	// meeting the minimum aligns the loop, even with zero iterations;
	// a propagating failure from a collected iteration keeps its record
	if p.alignOnSuccess || (d.Record != Failed && d.Record != Panicked) {
		d.Record = Aligned
	}
	d.Marker, d.Pos = index, pos
	d.Consumed = consumed
	d.Form = NewMultiple(forms, NewSpan(start, pos))
}
