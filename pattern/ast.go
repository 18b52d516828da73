package pattern

import (
	"fmt"
	"strings"
)

// Segment is a single element of a route pattern: a literal word, a
// parameter, an option, or the end-of-options separator.
type Segment interface {
	// Pos returns the starting byte offset of the segment in the source.
	Pos() int
	// End returns the byte offset just past the segment.
	End() int
	// String renders the segment for debugging.
	String() string
}

var (
	_ Segment = (*Literal)(nil)
	_ Segment = (*Parameter)(nil)
	_ Segment = (*Option)(nil)
	_ Segment = (*Separator)(nil)
)

// Pattern is the root of the syntax tree: an ordered sequence of segments
// plus the source string they were parsed from.
type Pattern struct {
	Source   string
	Segments []Segment
}

func (p *Pattern) String() string {
	parts := make([]string, len(p.Segments))
	for i, s := range p.Segments {
		parts[i] = s.String()
	}
	return strings.Join(parts, " ")
}

// Literal is a segment that must match an argument exactly
// (case-insensitively at match time).
type Literal struct {
	Text string
	pos  int
}

func (l *Literal) Pos() int       { return l.pos }
func (l *Literal) End() int       { return l.pos + len(l.Text) }
func (l *Literal) String() string { return fmt.Sprintf("Literal(%s)", l.Text) }

// Parameter is a named capture like {env}, {tag?}, {*args} or {count:int}.
type Parameter struct {
	Name        string
	CatchAll    bool   // {*name}: consumes all remaining arguments
	Optional    bool   // {name?}: may be left unbound
	Repeated    bool   // {name*}: may bind more than one value
	Constraint  string // type constraint, "" when untyped
	Nullable    bool   // {name:int?}: constraint carries a '?' suffix
	Description string

	pos int
	end int
}

func (p *Parameter) Pos() int { return p.pos }
func (p *Parameter) End() int { return p.end }

func (p *Parameter) String() string {
	var b strings.Builder
	b.WriteString("Parameter(")
	if p.CatchAll {
		b.WriteByte('*')
	}
	b.WriteString(p.Name)
	if p.Optional {
		b.WriteByte('?')
	}
	if p.Repeated {
		b.WriteByte('*')
	}
	if p.Constraint != "" {
		b.WriteByte(':')
		b.WriteString(p.Constraint)
		if p.Nullable {
			b.WriteByte('?')
		}
	}
	b.WriteByte(')')
	return b.String()
}

// Option is a --flag / -f segment, optionally carrying a bound parameter
// for its value and an alternate short form.
type Option struct {
	Long        string // long form without dashes, "" when short-only
	Short       string // short form without dashes, "" when long-only
	Description string
	Param       *Parameter // nil for boolean flags

	pos int
	end int
}

func (o *Option) Pos() int { return o.pos }
func (o *Option) End() int { return o.end }

func (o *Option) String() string {
	var b strings.Builder
	b.WriteString("Option(")
	b.WriteString(o.PrimaryForm())
	if alt := o.AlternateForm(); alt != "" {
		b.WriteByte(',')
		b.WriteString(alt)
	}
	if o.Param != nil {
		b.WriteByte(' ')
		b.WriteString(o.Param.String())
	}
	b.WriteByte(')')
	return b.String()
}

// PrimaryForm returns the canonical dashed form of the option. The long
// form is always primary when both forms exist.
func (o *Option) PrimaryForm() string {
	if o.Long != "" {
		return "--" + o.Long
	}
	return "-" + o.Short
}

// AlternateForm returns the secondary dashed form, or "" when the option
// has a single form.
func (o *Option) AlternateForm() string {
	if o.Long != "" && o.Short != "" {
		return "-" + o.Short
	}
	return ""
}

// Separator is the bare "--" end-of-options marker.
type Separator struct {
	pos int
}

func (s *Separator) Pos() int       { return s.pos }
func (s *Separator) End() int       { return s.pos + 2 }
func (s *Separator) String() string { return "Separator(--)" }
