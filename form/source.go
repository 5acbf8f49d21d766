package form

// Source is the positioned, peekable input sequence a former drives over.
// Matching is the sole mutator of a source, and it only mutates through
// Jump when a top-level attempt commits.
type Source[Input comparable] interface {
	// Len returns the total number of input items.
	Len() int

	// At peeks at the item at an absolute index without consuming it.
	At(index int) (Input, bool)

	// Step returns the cursor advanced past the item at index.
	// It must not mutate the source.
	Step(index int, pos Position) (int, Position)

	// Index returns the committed cursor index.
	Index() int

	// Position returns the committed cursor position.
	Position() Position

	// Jump moves the committed cursor.
	Jump(index int, pos Position)
}

// Stepper advances a position past one consumed item. Text cursors bump
// line/column on newlines; token cursors adopt the next token's recorded
// position.
type Stepper[Input comparable] func(item Input, pos Position) Position

// Cursor is the standard slice-backed Source implementation.
type Cursor[Input comparable] struct {
	items []Input
	index int
	pos   Position
	step  Stepper[Input]
}

// NewCursor creates a cursor over items starting at line 1, column 1 of the
// named input. A nil step advances one column per item.
func NewCursor[Input comparable](name string, items []Input, step Stepper[Input]) *Cursor[Input] {
	if step == nil {
		step = func(_ Input, pos Position) Position { return pos.Next() }
	}
	return &Cursor[Input]{items: items, pos: NewPosition(name), step: step}
}

func (c *Cursor[Input]) Len() int {
	return len(c.items)
}

func (c *Cursor[Input]) At(index int) (Input, bool) {
	if index < 0 || index >= len(c.items) {
		var zero Input
		return zero, false
	}
	return c.items[index], true
}

func (c *Cursor[Input]) Step(index int, pos Position) (int, Position) {
	if index >= len(c.items) {
		return index, pos
	}
	return index + 1, c.step(c.items[index], pos)
}

func (c *Cursor[Input]) Index() int {
	return c.index
}

func (c *Cursor[Input]) Position() Position {
	return c.pos
}

func (c *Cursor[Input]) Jump(index int, pos Position) {
	c.index = index
	c.pos = pos
}

// Exhausted reports whether the committed cursor is past the last item.
func (c *Cursor[Input]) Exhausted() bool {
	return c.index >= len(c.items)
}

// Skip advances the committed cursor past count items. Used by driving
// loops to give up on input no pattern applies to.
func (c *Cursor[Input]) Skip(count int) {
	for ; count > 0 && c.index < len(c.items); count-- {
		c.index, c.pos = c.Step(c.index, c.pos)
	}
}
