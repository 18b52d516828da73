// Package convert turns raw argument strings into typed values under named
// constraints such as "int" or "ipaddress". Conversions are side-effect-free
// and never panic: failure is always reported as an error value so that the
// resolver can simply try the next candidate route.
package convert

import (
	"fmt"
	"net/netip"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Func converts one raw argument string into a typed value.
type Func func(raw string) (any, error)

// Error reports a failed conversion. It carries enough context for the
// caller to explain why a route was skipped.
type Error struct {
	Raw        string
	Constraint string
	Reason     string
}

func (e *Error) Error() string {
	return fmt.Sprintf("cannot convert %q to %s: %s", e.Raw, e.Constraint, e.Reason)
}

func failed(raw, constraint, reason string) error {
	return &Error{Raw: raw, Constraint: constraint, Reason: reason}
}

// File is the converted value of a "fileinfo" constraint: a cleaned path.
// The filesystem is deliberately not consulted, conversion stays pure.
type File string

// Dir is the converted value of a "directoryinfo" constraint.
type Dir string

// Registry maps constraint names to conversion functions. The zero value is
// not usable; construct one with NewRegistry, which installs the built-in
// constraints.
type Registry struct {
	funcs map[string]Func
}

// NewRegistry returns a registry preloaded with the built-in constraints.
func NewRegistry() *Registry {
	r := &Registry{funcs: make(map[string]Func)}
	for name, fn := range builtins {
		r.funcs[name] = fn
	}
	return r
}

// Register installs a custom converter under the given constraint name,
// replacing any previous converter with that name.
func (r *Registry) Register(name string, fn Func) error {
	if name == "" {
		return fmt.Errorf("constraint name must not be empty")
	}
	if fn == nil {
		return fmt.Errorf("converter for %q must not be nil", name)
	}
	r.funcs[strings.ToLower(name)] = fn
	return nil
}

// RegisterEnum installs a constraint accepting exactly the given values,
// case-insensitively. The converted value is the canonical (registered)
// spelling.
func (r *Registry) RegisterEnum(name string, values ...string) error {
	if len(values) == 0 {
		return fmt.Errorf("enum %q needs at least one value", name)
	}
	canonical := make(map[string]string, len(values))
	for _, v := range values {
		canonical[strings.ToLower(v)] = v
	}
	return r.Register(name, func(raw string) (any, error) {
		if v, ok := canonical[strings.ToLower(raw)]; ok {
			return v, nil
		}
		return nil, failed(raw, name, fmt.Sprintf("expected one of %s", strings.Join(values, ", ")))
	})
}

// Knows reports whether the registry has a converter for the constraint
// (ignoring a trailing '?').
func (r *Registry) Knows(constraint string) bool {
	base := strings.TrimSuffix(strings.ToLower(constraint), "?")
	_, ok := r.funcs[base]
	return ok
}

// Convert applies the named constraint to a raw string. A '?' suffix marks
// the nullable variant of any constraint: it converts an empty raw string to
// nil instead of failing. An empty constraint is the identity conversion.
func (r *Registry) Convert(raw, constraint string) (any, error) {
	if constraint == "" {
		return raw, nil
	}

	base := strings.ToLower(constraint)
	nullable := strings.HasSuffix(base, "?")
	if nullable {
		base = strings.TrimSuffix(base, "?")
		if raw == "" {
			return nil, nil
		}
	}

	fn, ok := r.funcs[base]
	if !ok {
		return nil, failed(raw, constraint, "unknown constraint")
	}
	return fn(raw)
}

var builtins = map[string]Func{
	"string": func(raw string) (any, error) {
		return raw, nil
	},
	"int": func(raw string) (any, error) {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, failed(raw, "int", "not an integer")
		}
		return n, nil
	},
	"long": func(raw string) (any, error) {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, failed(raw, "long", "not a 64-bit integer")
		}
		return n, nil
	},
	"double": func(raw string) (any, error) {
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, failed(raw, "double", "not a number")
		}
		return f, nil
	},
	"bool": func(raw string) (any, error) {
		b, err := strconv.ParseBool(strings.ToLower(raw))
		if err != nil {
			return nil, failed(raw, "bool", "not a boolean")
		}
		return b, nil
	},
	"uri": func(raw string) (any, error) {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" {
			return nil, failed(raw, "uri", "not an absolute URI")
		}
		return u, nil
	},
	"fileinfo": func(raw string) (any, error) {
		if raw == "" {
			return nil, failed(raw, "fileinfo", "empty path")
		}
		return File(filepath.Clean(raw)), nil
	},
	"directoryinfo": func(raw string) (any, error) {
		if raw == "" {
			return nil, failed(raw, "directoryinfo", "empty path")
		}
		return Dir(filepath.Clean(raw)), nil
	},
	"ipaddress": func(raw string) (any, error) {
		addr, err := netip.ParseAddr(raw)
		if err != nil {
			return nil, failed(raw, "ipaddress", "not an IP address")
		}
		return addr, nil
	},
	"dateonly": func(raw string) (any, error) {
		t, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			return nil, failed(raw, "dateonly", "expected YYYY-MM-DD")
		}
		return t, nil
	},
	"timeonly": func(raw string) (any, error) {
		t, err := time.Parse(time.TimeOnly, raw)
		if err != nil {
			return nil, failed(raw, "timeonly", "expected HH:MM:SS")
		}
		return t, nil
	},
	"duration": func(raw string) (any, error) {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, failed(raw, "duration", "not a duration like 1h30m")
		}
		return d, nil
	},
}
