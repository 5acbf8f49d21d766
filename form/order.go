package form

type orderKind int8

const (
	captureOrder orderKind = iota
	transformOrder
	failOrder
	panicOrder
	performOrder
	ignoreOrder
	skipOrder
	branchOrder
	inspectOrder
	multipleOrder
	pardonOrder
	alignOrder
)

// Transformer rewrites an aligned draft's form. A non-nil failure return
// turns the draft into a failed one carrying that failure.
type Transformer[Input comparable, Output, Failure any] func(*Registry, Form[Input, Output, Failure]) (Form[Input, Output, Failure], *Failure)

// Emitter synthesizes a failure value from the registry and the form the
// match produced so far. The form may be blank; emitters must handle that.
type Emitter[Input comparable, Output, Failure any] func(*Registry, Form[Input, Output, Failure]) Failure

// Inspector examines a finished draft and returns the order to run next.
type Inspector[Input comparable, Output, Failure any] func(Draft[Input, Output, Failure]) *Order[Input, Output, Failure]

// Order is a composable side effect attached to a pattern, run once the
// underlying match attempt completes. Orders may rewrite the draft's record
// and form but never move the cursor.
type Order[Input comparable, Output, Failure any] struct {
	kind      orderKind
	id        int
	transform Transformer[Input, Output, Failure]
	emitter   Emitter[Input, Output, Failure]
	perform   func()
	inspector Inspector[Input, Output, Failure]
	found     *Order[Input, Output, Failure]
	missing   *Order[Input, Output, Failure]
	orders    []*Order[Input, Output, Failure]
}

// OrderCapture stores the draft's form in the registry's capture table under
// the given id, letting grammars destructure a sequence by position.
func OrderCapture[Input comparable, Output, Failure any](id int) *Order[Input, Output, Failure] {
	return &Order[Input, Output, Failure]{kind: captureOrder, id: id}
}

// OrderTransform rewrites an aligned draft's form through t.
func OrderTransform[Input comparable, Output, Failure any](t Transformer[Input, Output, Failure]) *Order[Input, Output, Failure] {
	return &Order[Input, Output, Failure]{kind: transformOrder, transform: t}
}

// OrderFail marks the draft failed with a failure synthesized by e.
func OrderFail[Input comparable, Output, Failure any](e Emitter[Input, Output, Failure]) *Order[Input, Output, Failure] {
	return &Order[Input, Output, Failure]{kind: failOrder, emitter: e}
}

// OrderPanic marks the draft panicked with a failure synthesized by e.
// Panicked propagates to the top uncaught by surrounding alternatives.
func OrderPanic[Input comparable, Output, Failure any](e Emitter[Input, Output, Failure]) *Order[Input, Output, Failure] {
	return &Order[Input, Output, Failure]{kind: panicOrder, emitter: e}
}

// OrderPerform runs f for effect only when the draft is aligned.
func OrderPerform[Input comparable, Output, Failure any](f func()) *Order[Input, Output, Failure] {
	return &Order[Input, Output, Failure]{kind: performOrder, perform: f}
}

// OrderIgnore turns an aligned draft into an ignored one with a blank form:
// the input is consumed but produces nothing.
func OrderIgnore[Input comparable, Output, Failure any]() *Order[Input, Output, Failure] {
	return &Order[Input, Output, Failure]{kind: ignoreOrder}
}

// OrderSkip turns an aligned draft into a blank one with a blank form:
// the match becomes advisory and its consumption is not committed.
func OrderSkip[Input comparable, Output, Failure any]() *Order[Input, Output, Failure] {
	return &Order[Input, Output, Failure]{kind: skipOrder}
}

// OrderBranch runs found on an aligned draft and missing otherwise.
func OrderBranch[Input comparable, Output, Failure any](found, missing *Order[Input, Output, Failure]) *Order[Input, Output, Failure] {
	return &Order[Input, Output, Failure]{kind: branchOrder, found: found, missing: missing}
}

// OrderInspect passes a copy of the draft to i and runs the returned order.
func OrderInspect[Input comparable, Output, Failure any](i Inspector[Input, Output, Failure]) *Order[Input, Output, Failure] {
	return &Order[Input, Output, Failure]{kind: inspectOrder, inspector: i}
}

// OrderMultiple runs orders in sequence against the same draft. It is the
// composition primitive behind all With* pattern decorators.
func OrderMultiple[Input comparable, Output, Failure any](orders ...*Order[Input, Output, Failure]) *Order[Input, Output, Failure] {
	return &Order[Input, Output, Failure]{kind: multipleOrder, orders: orders}
}

// OrderPardon forces the draft record to blank regardless of prior outcome.
func OrderPardon[Input comparable, Output, Failure any]() *Order[Input, Output, Failure] {
	return &Order[Input, Output, Failure]{kind: pardonOrder}
}

// OrderAlign forces the draft record to aligned unconditionally.
func OrderAlign[Input comparable, Output, Failure any]() *Order[Input, Output, Failure] {
	return &Order[Input, Output, Failure]{kind: alignOrder}
}

func (o *Order[Input, Output, Failure]) apply(fr *Former[Input, Output, Failure], d *Draft[Input, Output, Failure]) {
	switch o.kind {
	case captureOrder:
		fr.registry.Capture(o.id, d.Form)

	case transformOrder:
		if d.Record != Aligned {
			return
		}
		mapped, failure := o.transform(fr.registry, d.Form)
		if failure == nil {
			d.Form = mapped
		} else {
			d.Record = Failed
			d.Form = NewFailure[Input, Output, Failure](*failure, d.Form.Span)
		}

	case failOrder, panicOrder:
		failure := o.emitter(fr.registry, d.Form)
		if o.kind == failOrder {
			d.Record = Failed
		} else {
			d.Record = Panicked
		}
		d.Form = NewFailure[Input, Output, Failure](failure, d.Form.Span)

	case performOrder:
		if d.Record == Aligned {
			o.perform()
		}

	case ignoreOrder:
		if d.Record == Aligned {
			d.Record = Ignored
			d.Form = NewBlank[Input, Output, Failure](d.Form.Span)
		}

	case skipOrder:
		if d.Record == Aligned {
			d.Record = Blank
			d.Form = NewBlank[Input, Output, Failure](d.Form.Span)
		}

	case branchOrder:
		chosen := o.missing
		if d.Record == Aligned {
			chosen = o.found
		}
		chosen.apply(fr, d)

	case inspectOrder:
		next := o.inspector(*d)
		if next != nil {
			next.apply(fr, d)
		}

	case multipleOrder:
		for _, sub := range o.orders {
			sub.apply(fr, d)
		}

	case pardonOrder:
		d.Record = Blank

	case alignOrder:
		d.Record = Aligned
	}
}
