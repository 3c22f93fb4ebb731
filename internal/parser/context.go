package parser

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/misbitfont/mfasm/internal/common"
	"github.com/misbitfont/mfasm/internal/debug"
	"github.com/misbitfont/mfasm/internal/pixel"
)

// Size is a glyph size in pixels.
type Size struct {
	Width  int
	Height int
}

// Settings holds the font-wide state set by directives.
type Settings struct {
	// PaletteDepth is the number of bits per pixel (1-8)
	PaletteDepth int

	// Spacing is monospace or variable
	Spacing common.Spacing

	// MaxSize bounds every glyph; it is also the row stride of glyph buffers
	MaxSize Size

	// FontName is at most 64 bytes
	FontName string

	// Language is at most 64 bytes
	Language string

	// CurrentWidth is the width given to the next glyph under variable
	// spacing. Zero means the max width.
	CurrentWidth int

	// DrawMode is the numeral base of pixel tokens
	DrawMode common.DrawMode
}

// DefaultSettings returns the settings in effect before any directive.
func DefaultSettings() Settings {
	return Settings{
		PaletteDepth: 1,
		Spacing:      common.Monospace,
		MaxSize:      Size{Width: 1, Height: 1},
		DrawMode:     common.Binary,
	}
}

// Severity separates errors, which fail the assembly, from warnings.
type Severity uint8

const (
	SeverityWarning Severity = iota
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

// Diagnostic is one error or warning. Line and Column are 1-based; Column is
// where the offending token began.
type Diagnostic struct {
	Severity Severity
	// Err is the error kind sentinel from internal/common; nil for warnings
	Err     error
	Line    int
	Column  int
	Message string
}

// Error formats the diagnostic the way the command line prints it.
func (d Diagnostic) Error() string {
	if d.Err != nil {
		return fmt.Sprintf("%s at %d:%d: %v: %s", d.Severity, d.Line, d.Column, d.Err, d.Message)
	}
	return fmt.Sprintf("%s at %d:%d: %s", d.Severity, d.Line, d.Column, d.Message)
}

// Unwrap returns the error kind so errors.Is matches the sentinels.
func (d Diagnostic) Unwrap() error {
	return d.Err
}

// Options configures an assembly pass.
type Options struct {
	// Source names the input in traces
	Source string
	// Logger receives every diagnostic; nil disables logging
	Logger logrus.FieldLogger
	// Report is called for every diagnostic as soon as it is issued
	Report func(Diagnostic)
	// Debug is the trace session; nil disables tracing
	Debug *debug.Session
}

// Context is the whole mutable state of one assembly pass. Lines are fed in
// order with Line and the outcome collected with Finish.
type Context struct {
	settings Settings

	// canvas is the glyph being drawn; non-nil exactly while a draw block is open
	canvas     *pixel.Canvas
	canvasLine int

	glyphs []pixel.Glyph

	line        int
	errors      int
	warnings    int
	diagnostics []Diagnostic

	opts Options
}

// NewContext returns a context holding the default settings.
func NewContext(opts Options) *Context {
	return &Context{
		settings: DefaultSettings(),
		opts:     opts,
	}
}

// Settings returns a copy of the current settings.
func (c *Context) Settings() Settings {
	return c.settings
}

// Drawing reports whether a draw block is open.
func (c *Context) Drawing() bool {
	return c.canvas != nil
}

// Glyphs returns the finished glyphs in order.
func (c *Context) Glyphs() []pixel.Glyph {
	return c.glyphs
}

// Counts returns the error and warning counters.
func (c *Context) Counts() (errors, warnings int) {
	return c.errors, c.warnings
}

// Diagnostics returns every diagnostic issued so far.
func (c *Context) Diagnostics() []Diagnostic {
	return c.diagnostics
}

func (c *Context) warn(col int, format string, args ...interface{}) {
	c.warnings++
	c.issue(Diagnostic{
		Severity: SeverityWarning,
		Line:     c.line,
		Column:   col,
		Message:  fmt.Sprintf(format, args...),
	})
}

func (c *Context) fail(kind error, col int, format string, args ...interface{}) {
	c.errors++
	c.issue(Diagnostic{
		Severity: SeverityError,
		Err:      kind,
		Line:     c.line,
		Column:   col,
		Message:  fmt.Sprintf(format, args...),
	})
}

func (c *Context) issue(d Diagnostic) {
	c.diagnostics = append(c.diagnostics, d)

	kind := ""
	if d.Err != nil {
		kind = d.Err.Error()
	}
	c.opts.Debug.Emit("diagnostic", d.Severity.String(), debug.DiagnosticData{
		Severity: d.Severity.String(),
		Kind:     kind,
		Line:     d.Line,
		Column:   d.Column,
		Message:  d.Message,
	})

	if c.opts.Logger != nil {
		entry := c.opts.Logger.WithFields(logrus.Fields{
			"line":   d.Line,
			"column": d.Column,
		})
		if d.Severity == SeverityError {
			entry.WithField("kind", kind).Error(d.Message)
		} else {
			entry.Warn(d.Message)
		}
	}

	if c.opts.Report != nil {
		c.opts.Report(d)
	}
}
