package route

// Bindings maps parameter names to their converted values. Untyped
// parameters bind strings, typed parameters bind whatever their converter
// produced, boolean flags bind bools, and catch-all parameters bind
// []string.
type Bindings map[string]any

// Lookup returns the raw bound value.
func (b Bindings) Lookup(name string) (any, bool) {
	v, ok := b[name]
	return v, ok
}

// String returns a bound string value, or "" when the parameter is unbound
// or bound to a different type.
func (b Bindings) String(name string) string {
	if v, ok := b[name].(string); ok {
		return v
	}
	return ""
}

// Int returns a bound int value, or 0 when unbound or not an int.
func (b Bindings) Int(name string) int {
	if v, ok := b[name].(int); ok {
		return v
	}
	return 0
}

// Bool reports a bound flag. Absent flags bind false at match time, so this
// is also false for unknown names.
func (b Bindings) Bool(name string) bool {
	if v, ok := b[name].(bool); ok {
		return v
	}
	return false
}

// Strings returns the values of a catch-all parameter, or nil.
func (b Bindings) Strings(name string) []string {
	if v, ok := b[name].([]string); ok {
		return v
	}
	return nil
}

// Values returns the converted values of a repeated parameter, or nil.
func (b Bindings) Values(name string) []any {
	if v, ok := b[name].([]any); ok {
		return v
	}
	return nil
}
