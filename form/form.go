package form

// FormKind discriminates the variants of Form.
type FormKind int8

const (
	// BlankForm means nothing was produced.
	BlankForm FormKind = iota
	// InputForm holds one raw input item.
	InputForm
	// OutputForm holds one produced output value.
	OutputForm
	// MultipleForm holds an ordered aggregate of sub-forms.
	MultipleForm
	// FailureForm holds one failure value.
	FailureForm
)

// Form is the typed result tree of a completed match: a raw input item,
// a produced output value, a failure value, an ordered aggregate, or blank.
// Forms are immutable once produced.
type Form[Input comparable, Output, Failure any] struct {
	Kind    FormKind
	Input   Input
	Output  Output
	Failure Failure
	List    []Form[Input, Output, Failure]
	Span    Span
}

// NewBlank creates a blank form located at span.
func NewBlank[Input comparable, Output, Failure any](span Span) Form[Input, Output, Failure] {
	return Form[Input, Output, Failure]{Kind: BlankForm, Span: span}
}

// NewInput creates a form holding one raw input item.
func NewInput[Input comparable, Output, Failure any](item Input, span Span) Form[Input, Output, Failure] {
	return Form[Input, Output, Failure]{Kind: InputForm, Input: item, Span: span}
}

// NewOutput creates a form holding one produced output value.
func NewOutput[Input comparable, Output, Failure any](value Output, span Span) Form[Input, Output, Failure] {
	return Form[Input, Output, Failure]{Kind: OutputForm, Output: value, Span: span}
}

// NewFailure creates a form holding one failure value.
func NewFailure[Input comparable, Output, Failure any](value Failure, span Span) Form[Input, Output, Failure] {
	return Form[Input, Output, Failure]{Kind: FailureForm, Failure: value, Span: span}
}

// NewMultiple creates an aggregate form. A zero-child aggregate is
// normalized to a blank form.
func NewMultiple[Input comparable, Output, Failure any](list []Form[Input, Output, Failure], span Span) Form[Input, Output, Failure] {
	if len(list) == 0 {
		return NewBlank[Input, Output, Failure](span)
	}
	return Form[Input, Output, Failure]{Kind: MultipleForm, List: list, Span: span}
}

// IsBlank reports whether the form produced nothing.
func (f Form[Input, Output, Failure]) IsBlank() bool {
	return f.Kind == BlankForm
}

// Expand flattens nested aggregates into a single ordered slice of
// non-aggregate forms, dropping blanks.
func (f Form[Input, Output, Failure]) Expand() []Form[Input, Output, Failure] {
	var result []Form[Input, Output, Failure]
	f.expand(&result)
	return result
}

func (f Form[Input, Output, Failure]) expand(into *[]Form[Input, Output, Failure]) {
	switch f.Kind {
	case MultipleForm:
		for _, sub := range f.List {
			sub.expand(into)
		}
	case BlankForm:
	default:
		*into = append(*into, f)
	}
}

// Inputs collects all raw input items in the form, in order, descending
// into aggregates.
func (f Form[Input, Output, Failure]) Inputs() []Input {
	var result []Input
	for _, sub := range f.Expand() {
		if sub.Kind == InputForm {
			result = append(result, sub.Input)
		}
	}
	return result
}

// Outputs collects all produced output values in the form, in order,
// descending into aggregates.
func (f Form[Input, Output, Failure]) Outputs() []Output {
	var result []Output
	for _, sub := range f.Expand() {
		if sub.Kind == OutputForm {
			result = append(result, sub.Output)
		}
	}
	return result
}

// Catch collects all failure forms in the form, in order, descending
// into aggregates.
func (f Form[Input, Output, Failure]) Catch() []Form[Input, Output, Failure] {
	var result []Form[Input, Output, Failure]
	for _, sub := range f.Expand() {
		if sub.Kind == FailureForm {
			result = append(result, sub)
		}
	}
	return result
}
