package caret

// constantTable maps constant names to their values for one parse.
// Redefinition replaces the previous value.
type constantTable struct {
	values map[string]Value
	order  []string
}

func newConstantTable() *constantTable {
	return &constantTable{values: make(map[string]Value)}
}

// define binds name to v and reports whether an earlier binding was replaced.
func (t *constantTable) define(name string, v Value) bool {
	_, replaced := t.values[name]
	if !replaced {
		t.order = append(t.order, name)
	}
	t.values[name] = v
	return replaced
}

// resolve returns the value bound to name.
func (t *constantTable) resolve(name string) (Value, bool) {
	v, ok := t.values[name]
	return v, ok
}

// names returns the declared names in first-declaration order.
func (t *constantTable) names() []string {
	return append([]string(nil), t.order...)
}
