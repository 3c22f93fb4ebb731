package mfasm

import (
	"fmt"

	"github.com/misbitfont/mfasm/internal/parser"
)

// Diagnostic is one error or warning with its 1-based line and column.
type Diagnostic = parser.Diagnostic

// Severity separates errors from warnings.
type Severity = parser.Severity

// Severities
const (
	SeverityWarning = parser.SeverityWarning
	SeverityError   = parser.SeverityError
)

// AssemblyError is returned when a source produced at least one error.
// No font is produced in that case.
type AssemblyError struct {
	Source      string
	Errors      int
	Warnings    int
	Diagnostics []Diagnostic
}

func (e *AssemblyError) Error() string {
	src := e.Source
	if src == "" {
		src = "source"
	}
	msg := fmt.Sprintf("%s: assembly failed with %d error(s) and %d warning(s)", src, e.Errors, e.Warnings)
	for _, d := range e.Diagnostics {
		if d.Severity == SeverityError {
			return msg + "; first " + d.Error()
		}
	}
	return msg
}

// Unwrap returns every error diagnostic so errors.Is matches any error kind
// the source produced.
func (e *AssemblyError) Unwrap() []error {
	var errs []error
	for _, d := range e.Diagnostics {
		if d.Severity == SeverityError {
			errs = append(errs, d)
		}
	}
	return errs
}
