// Package formatter renders pattern diagnostics as caret-style text, one
// block per problem, with the offending span underlined in the source
// pattern.
package formatter

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"text/template"

	"github.com/fatih/color"

	"github.com/argroute/argroute/pattern"
)

var (
	errorStyle      = color.New(color.FgRed, color.Bold)
	ruleStyle       = color.New(color.FgYellow, color.Bold)
	sourceStyle     = color.New(color.FgCyan, color.Bold)
	lineStyle       = color.New(color.FgHiBlue, color.Bold)
	messageStyle    = color.New(color.FgRed, color.Bold)
	suggestionStyle = color.New(color.FgGreen, color.Bold)
)

const diagnosticTemplate = `{{header .Rule .Name .Position -}}
{{patternLine .Source -}}
{{underlineAndMessage .Message .Source .Position .Length}}
{{- if .Suggestion }}
{{suggestion .Suggestion}}
{{- end }}
`

// diagnosticData is the template payload for one rendered diagnostic.
type diagnosticData struct {
	Rule       string
	Name       string
	Source     string
	Position   int
	Length     int
	Message    string
	Suggestion string
}

// Generate renders every diagnostic found in one pattern. The name
// identifies where the pattern came from (a file, a registration site) and
// appears in the header of each block. Diagnostics are rendered in source
// order regardless of the order they were collected in.
func Generate(name, source string, diags []pattern.Diagnostic) string {
	sorted := make([]pattern.Diagnostic, len(diags))
	copy(sorted, diags)
	sort.SliceStable(sorted, func(a, b int) bool {
		pa, _ := sorted[a].Span()
		pb, _ := sorted[b].Span()
		return pa < pb
	})

	var builder strings.Builder
	for _, d := range sorted {
		builder.WriteString(buildDiagnostic(name, source, d))
	}
	return builder.String()
}

func buildDiagnostic(name, source string, diag pattern.Diagnostic) string {
	position, length := diag.Span()

	data := diagnosticData{
		Rule:       ruleName(diag),
		Name:       name,
		Source:     source,
		Position:   position,
		Length:     length,
		Message:    diag.Error(),
		Suggestion: diag.Hint(),
	}

	funcMap := template.FuncMap{
		"header":              header,
		"patternLine":         patternLine,
		"underlineAndMessage": underlineAndMessage,
		"suggestion":          suggestion,
	}

	tmpl := template.Must(template.New("diagnostic").Funcs(funcMap).Parse(diagnosticTemplate))

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Sprintf("error formatting diagnostic: %v\n", err)
	}
	return buf.String()
}

// ruleName picks the header label: semantic errors carry their rule code,
// parse errors are plain syntax errors.
func ruleName(diag pattern.Diagnostic) string {
	if sem, ok := diag.(*pattern.SemanticError); ok {
		return sem.Code.String()
	}
	return "syntax"
}

// template helper functions

func header(rule, name string, position int) string {
	out := errorStyle.Sprint("error: ")
	out += ruleStyle.Sprintf("%s\n", rule)
	out += lineStyle.Sprint(" --> ")
	out += sourceStyle.Sprintf("%s:%d\n", name, position)
	return out
}

func patternLine(source string) string {
	out := lineStyle.Sprint("  |\n")
	out += lineStyle.Sprint("  | ")
	out += fmt.Sprintf("%s\n", source)
	return out
}

func underlineAndMessage(message, source string, position, length int) string {
	out := lineStyle.Sprint("  | ")

	if position < 0 || position > len(source) {
		out += messageStyle.Sprintf("%s\n", message)
		return out
	}
	if length < 1 {
		length = 1
	}
	if position+length > len(source)+1 {
		length = len(source) + 1 - position
	}

	out += strings.Repeat(" ", position)
	out += messageStyle.Sprintf("%s\n", strings.Repeat("~", length))
	out += lineStyle.Sprint("  = ")
	out += messageStyle.Sprintf("%s", message)
	return out
}

func suggestion(hint string) string {
	out := suggestionStyle.Sprint("Suggestion: ")
	out += lineStyle.Sprintf("did you mean %q?", hint)
	return out
}
