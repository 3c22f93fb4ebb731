// Package parser implements the MisbitFont source tokenizer: a line-oriented
// state machine that applies directives to the font settings and feeds pixel
// tokens to the pixel encoder while a draw block is open.
package parser

import (
	"fmt"
	"io"
	"time"

	"github.com/misbitfont/mfasm/internal/debug"
	"github.com/misbitfont/mfasm/internal/pixel"
)

// Result is the outcome of one assembly pass.
type Result struct {
	Settings    Settings
	Glyphs      []pixel.Glyph
	Diagnostics []Diagnostic
	Errors      int
	Warnings    int
	Lines       int
}

// Failed reports whether any error was issued.
func (r *Result) Failed() bool {
	return r.Errors > 0
}

// Finish closes the pass. A draw block still open at end of input is
// discarded with a warning.
func (c *Context) Finish() *Result {
	if c.canvas != nil {
		c.warn(1, "draw block opened on line %d was never closed, glyph discarded", c.canvasLine)
		c.canvas = nil
	}
	return &Result{
		Settings:    c.settings,
		Glyphs:      c.glyphs,
		Diagnostics: c.diagnostics,
		Errors:      c.errors,
		Warnings:    c.warnings,
		Lines:       c.line,
	}
}

// Parse reads a whole source from r. Diagnostics never make Parse fail;
// the returned error is reserved for read failures.
func Parse(r io.Reader, opts Options) (*Result, error) {
	start := time.Now()
	opts.Debug.Emit("assemble", "Start", debug.AssembleStartData{Source: opts.Source})

	scanner, buf := newLineScanner(r)
	defer releaseLineBuffer(buf)

	c := NewContext(opts)
	for scanner.Scan() {
		c.Line(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading source at line %d: %w", c.line+1, err)
	}

	res := c.Finish()
	opts.Debug.Emit("assemble", "End", debug.AssembleEndData{
		Lines:     res.Lines,
		Glyphs:    len(res.Glyphs),
		Errors:    res.Errors,
		Warnings:  res.Warnings,
		ElapsedMs: time.Since(start).Milliseconds(),
	})
	return res, nil
}
