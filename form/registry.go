package form

// Registry is the mutable context surrounding a matching run: a symbol
// table shared by transform actions and a sink collecting diagnostics
// reported by fail and panic actions. One Registry may back many Former
// instances of different type instantiations, but a single Registry must
// not be shared between concurrently driven cursors.
type Registry struct {
	symbols  map[string]any
	captures map[int]any
	diags    []error
}

func NewRegistry() *Registry {
	return &Registry{symbols: map[string]any{}, captures: map[int]any{}}
}

// Set stores a named symbol.
func (r *Registry) Set(name string, value any) {
	r.symbols[name] = value
}

// Get returns a named symbol and a flag telling whether it is present.
func (r *Registry) Get(name string) (any, bool) {
	value, has := r.symbols[name]
	return value, has
}

// Capture stores a form under an integer id. Capture orders call this;
// transform closures running later in the same match read the result back
// through Captured.
func (r *Registry) Capture(id int, f any) {
	r.captures[id] = f
}

// Captured returns the form stored under id and a flag telling whether the
// capture ran.
func (r *Registry) Captured(id int) (any, bool) {
	f, has := r.captures[id]
	return f, has
}

// Report appends a diagnostic to the sink.
func (r *Registry) Report(e error) {
	r.diags = append(r.diags, e)
}

// Diagnostics returns all reported diagnostics in order.
func (r *Registry) Diagnostics() []error {
	return r.diags
}
