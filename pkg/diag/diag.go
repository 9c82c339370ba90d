// Package diag collects parser diagnostics in raise order.
package diag

import (
	"fmt"

	"github.com/jcrawley/hazel-cc/pkg/ast"
)

// Severity distinguishes hard errors from warnings.
type Severity int

const (
	Error Severity = iota
	Warning
)

func (s Severity) String() string {
	if s == Warning {
		return "warning"
	}
	return "error"
}

// Kind identifies what a diagnostic complains about.
type Kind int

const (
	ExpectedToken Kind = iota
	ExpectedExpr
	ExpectedDecl
	InvalidTypeSpecifier
	DuplicateQualifier
)

func (k Kind) String() string {
	switch k {
	case ExpectedToken:
		return "expected token"
	case ExpectedExpr:
		return "expected expression"
	case ExpectedDecl:
		return "expected declaration"
	case InvalidTypeSpecifier:
		return "invalid type specifier"
	case DuplicateQualifier:
		return "duplicate qualifier"
	}
	return "unknown"
}

// Diagnostic is one parser finding, anchored to the token at which it
// was raised. Line and Col are copied from that token so a diagnostic
// stays printable after the token sequence is gone.
type Diagnostic struct {
	Severity Severity
	Kind     Kind
	Pos      ast.Pos // index of the offending token
	Line     int
	Col      int
	Expected string // for ExpectedToken: the spelling that was wanted
	Found    string // spelling of the token actually seen
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("line %d, col %d: %s: %s", d.Line, d.Col, d.Severity, d.message())
}

func (d Diagnostic) message() string {
	switch d.Kind {
	case ExpectedToken:
		return fmt.Sprintf("expected %s, got %s", d.Expected, d.Found)
	case ExpectedExpr:
		return fmt.Sprintf("expected expression, got %s", d.Found)
	case ExpectedDecl:
		return fmt.Sprintf("expected declaration, got %s", d.Found)
	case InvalidTypeSpecifier:
		return fmt.Sprintf("invalid type specifier: unexpected %s", d.Found)
	case DuplicateQualifier:
		return fmt.Sprintf("duplicate %s ignored", d.Found)
	}
	return d.Kind.String()
}

// Sink is an append-only collection of diagnostics. The parser raises
// them in token order, so positions are nondecreasing; only an
// abandoned speculative parse may drop its own tail, via Truncate.
type Sink struct {
	diags []Diagnostic
}

// NewSink creates an empty sink.
func NewSink() *Sink {
	return &Sink{}
}

// Add appends a diagnostic.
func (s *Sink) Add(d Diagnostic) {
	s.diags = append(s.diags, d)
}

// Len returns the number of diagnostics collected.
func (s *Sink) Len() int {
	return len(s.diags)
}

// All returns every diagnostic in raise order. The slice is shared
// with the sink; callers must not modify it.
func (s *Sink) All() []Diagnostic {
	return s.diags
}

// Errs returns the error-severity diagnostics in raise order.
func (s *Sink) Errs() []Diagnostic {
	var out []Diagnostic
	for _, d := range s.diags {
		if d.Severity == Error {
			out = append(out, d)
		}
	}
	return out
}

// Warnings returns the warning-severity diagnostics in raise order.
func (s *Sink) Warnings() []Diagnostic {
	var out []Diagnostic
	for _, d := range s.diags {
		if d.Severity == Warning {
			out = append(out, d)
		}
	}
	return out
}

// HasErrors reports whether any error-severity diagnostic was raised.
func (s *Sink) HasErrors() bool {
	for _, d := range s.diags {
		if d.Severity == Error {
			return true
		}
	}
	return false
}

// Last returns the most recently raised diagnostic.
func (s *Sink) Last() (Diagnostic, bool) {
	if len(s.diags) == 0 {
		return Diagnostic{}, false
	}
	return s.diags[len(s.diags)-1], true
}

// Truncate drops every diagnostic recorded at index n or later, undoing
// what a failed speculative parse pushed after checkpointing Len.
func (s *Sink) Truncate(n int) {
	if n >= 0 && n < len(s.diags) {
		s.diags = s.diags[:n]
	}
}
