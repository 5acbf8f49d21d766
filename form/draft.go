package form

// Draft is the mutable working state of one match attempt: the pattern
// being matched, the cursor reached so far, the items consumed, the record,
// the form produced, and the trace of child attempts. A draft is created
// fresh per attempt, owned by the call frame driving it, and never mutated
// after the former finalizes it.
type Draft[Input comparable, Output, Failure any] struct {
	// Pattern is the node this attempt matches.
	Pattern *Pattern[Input, Output, Failure]

	// Marker is the input index reached by this attempt.
	Marker int

	// Pos is the input position reached by this attempt.
	Pos Position

	// Consumed lists the items this attempt consumed, in order.
	Consumed []Input

	// Record is the outcome of this attempt, Blank until decided.
	Record Record

	// Form is the result produced so far.
	Form Form[Input, Output, Failure]

	// Children traces sub-pattern attempts of composite patterns,
	// preserved for error reporting.
	Children []*Draft[Input, Output, Failure]
}

func newDraft[Input comparable, Output, Failure any](marker int, pos Position, p *Pattern[Input, Output, Failure]) *Draft[Input, Output, Failure] {
	return &Draft[Input, Output, Failure]{
		Pattern: p,
		Marker:  marker,
		Pos:     pos,
		Form:    NewBlank[Input, Output, Failure](PointSpan(pos)),
	}
}

func (d *Draft[Input, Output, Failure]) adopt(child *Draft[Input, Output, Failure]) {
	d.Marker = child.Marker
	d.Pos = child.Pos
	d.Consumed = child.Consumed
	d.Record = child.Record
	d.Form = child.Form
	d.Children = append(d.Children, child)
}
