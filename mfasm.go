// Package mfasm assembles MisbitFont sources into bitmap font containers.
//
// A source is a line-oriented text file of directives that set font-wide
// properties (palette depth, glyph size, spacing, name, language) and DRAW
// blocks whose rows of numerals are packed into glyph bitmaps. The result
// is written as a MisbitFont container: a fixed header, an optional
// per-glyph width table and one bit-packed glyph region.
//
// Example:
//
//	font, err := mfasm.AssembleFile("glyphs.mfs")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	out, err := os.Create("glyphs.msbt")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer out.Close()
//	if _, err := font.WriteTo(out); err != nil {
//	    log.Fatal(err)
//	}
package mfasm

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/misbitfont/mfasm/internal/debug"
	"github.com/misbitfont/mfasm/internal/parser"
)

// Assemble reads a source from r and returns the assembled font.
//
// If the source produced any error diagnostic the returned error is an
// *AssemblyError and the font is nil. Warnings never fail an assembly; they
// are kept in Font.Warnings. Read failures are returned wrapped.
func Assemble(r io.Reader, opts ...Option) (*Font, error) {
	o := applyOptions(opts)

	res, err := parser.Parse(r, parser.Options{
		Source: o.source,
		Logger: o.logger,
		Report: o.report,
		Debug:  o.debug,
	})
	if err != nil {
		return nil, err
	}

	if res.Failed() {
		return nil, &AssemblyError{
			Source:      o.source,
			Errors:      res.Errors,
			Warnings:    res.Warnings,
			Diagnostics: res.Diagnostics,
		}
	}
	return newFont(res), nil
}

// AssembleBytes assembles a source held in memory.
func AssembleBytes(data []byte, opts ...Option) (*Font, error) {
	return Assemble(bytes.NewReader(data), opts...)
}

// AssembleFile assembles the source at path.
func AssembleFile(path string, opts ...Option) (*Font, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open source: %w", err)
	}
	defer file.Close()

	return Assemble(file, append([]Option{WithSource(path)}, opts...)...)
}

// cleanFSPath validates and cleans a path for use with fs.FS.
func cleanFSPath(p string) (string, error) {
	if p == "" {
		return "", errors.New("path cannot be empty")
	}
	// fs.FS disallows leading slash and uses '/' only
	if strings.HasPrefix(p, "/") {
		return "", errors.New("absolute paths not allowed")
	}
	if strings.ContainsRune(p, '\\') {
		return "", errors.New("backslashes not allowed in fs paths")
	}
	if !fs.ValidPath(p) {
		return "", fmt.Errorf("invalid fs path: %s", p)
	}
	clean := path.Clean(p)
	if clean == "." || strings.HasPrefix(clean, "../") {
		return "", errors.New("path traversal not allowed")
	}
	return clean, nil
}

// AssembleFS assembles the source at p within fsys. Path traversal is
// rejected.
//
// Example with embed.FS:
//
//	//go:embed fonts/*.mfs
//	var sources embed.FS
//
//	font, err := mfasm.AssembleFS(sources, "fonts/tiny.mfs")
func AssembleFS(fsys fs.FS, p string, opts ...Option) (*Font, error) {
	if fsys == nil {
		return nil, fmt.Errorf("filesystem cannot be nil")
	}

	clean, err := cleanFSPath(p)
	if err != nil {
		return nil, err
	}

	file, err := fsys.Open(clean)
	if err != nil {
		return nil, fmt.Errorf("failed to open source: %w", err)
	}
	defer file.Close()

	return Assemble(file, append([]Option{WithSource(clean)}, opts...)...)
}

func newFont(res *parser.Result) *Font {
	st := res.Settings
	f := &Font{
		glyphs:       make([]Glyph, len(res.Glyphs)),
		Name:         st.FontName,
		Language:     st.Language,
		PaletteDepth: st.PaletteDepth,
		Spacing:      st.Spacing,
		MaxWidth:     st.MaxSize.Width,
		MaxHeight:    st.MaxSize.Height,
		Warnings:     res.Diagnostics,
	}
	for i, g := range res.Glyphs {
		f.glyphs[i] = Glyph{Width: g.Width, Data: g.Data}
	}
	return f
}

// Option configures an assembly.
type Option func(*options)

type options struct {
	source string
	logger logrus.FieldLogger
	report func(Diagnostic)
	debug  *debug.Session
}

func applyOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithSource names the source in errors and traces. AssembleFile and
// AssembleFS set it to the path.
func WithSource(name string) Option {
	return func(o *options) {
		o.source = name
	}
}

// WithLogger logs every diagnostic as it is issued, with line, column and
// error kind as fields. Applied directives are logged at debug level.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithReporter calls fn for every diagnostic as it is issued, in source
// order.
func WithReporter(fn func(Diagnostic)) Option {
	return func(o *options) {
		o.report = fn
	}
}

// WithDebug traces the assembly into session. A nil session disables
// tracing.
func WithDebug(session *debug.Session) Option {
	return func(o *options) {
		o.debug = session
	}
}
