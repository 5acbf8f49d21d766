package form

// Record is the outcome tag of a single match attempt.
// Records are totally ordered; a greater Record wins when competing
// alternative branches are ranked against each other.
type Record int8

const (
	// Blank means the pattern does not apply at the current position.
	// It is not an error and is always silently recoverable upward.
	Blank Record = iota

	// Failed means the pattern was the right one but the input is malformed
	// from here on. It is never retried in place; the partial form and the
	// consumed span are preserved for diagnostics.
	Failed

	// Ignored means the pattern applied and consumed input, but its result
	// was intentionally discarded (whitespace, comments).
	Ignored

	// Aligned is the successful, cursor-advancing outcome.
	Aligned

	// Panicked means the grammar itself is in an unrecoverable state.
	// It ranks above Aligned so it is never shadowed by a competing branch.
	Panicked
)

var recordNames = [...]string{"blank", "failed", "ignored", "aligned", "panicked"}

func (r Record) String() string {
	if r < Blank || r > Panicked {
		return "invalid"
	}
	return recordNames[r]
}

// IsEffected reports whether the record carries a committed result:
// either a successful match or a failure with a partial form.
func (r Record) IsEffected() bool {
	return r == Aligned || r == Failed
}

// RecordSet represents a set of records, each one is coded as 1 << record.
type RecordSet uint8

// Records builds a RecordSet from the given records.
func Records(rs ...Record) RecordSet {
	var result RecordSet
	for _, r := range rs {
		result |= 1 << uint(r)
	}
	return result
}

// Has reports whether r belongs to the set.
func (s RecordSet) Has(r Record) bool {
	return s&(1<<uint(r)) != 0
}
