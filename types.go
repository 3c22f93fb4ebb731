package mfasm

import (
	"github.com/misbitfont/mfasm/internal/common"
)

// Spacing selects whether glyphs share the max width or carry their own.
type Spacing = common.Spacing

// Spacing types
const (
	Monospace = common.Monospace
	Variable  = common.Variable
)

// DrawMode is the numeral base of pixel tokens inside a draw block.
type DrawMode = common.DrawMode

// Draw modes
const (
	Binary      = common.Binary
	Octal       = common.Octal
	Decimal     = common.Decimal
	Hexadecimal = common.Hexadecimal
)

// Glyph is one assembled bitmap. Data holds Width x MaxHeight samples of
// PaletteDepth bits, packed MSB-first with the font's MaxWidth as row
// stride. Data must not be modified.
type Glyph struct {
	Width int
	Data  []byte
}

// Font is an assembled MisbitFont. It is immutable once returned and safe
// for concurrent use.
type Font struct {
	glyphs []Glyph

	// Name is the FONT_NAME string, at most 64 bytes
	Name string

	// Language is the LANGUAGE string, at most 64 bytes
	Language string

	// PaletteDepth is the number of bits per pixel (1-8)
	PaletteDepth int

	// Spacing is monospace or variable
	Spacing Spacing

	// MaxWidth is the width of every glyph under monospace and the row
	// stride of every glyph buffer
	MaxWidth int

	// MaxHeight is the height of every glyph
	MaxHeight int

	// Warnings lists the warnings issued while assembling the font
	Warnings []Diagnostic
}

// Len returns the number of glyphs.
func (f *Font) Len() int {
	if f == nil {
		return 0
	}
	return len(f.glyphs)
}

// Glyph returns glyph i in assembly order, or false if there is none.
func (f *Font) Glyph(i int) (Glyph, bool) {
	if f == nil || i < 0 || i >= len(f.glyphs) {
		return Glyph{}, false
	}
	return f.glyphs[i], true
}

// Error kinds reported by Diagnostic. Use errors.Is to match them against
// a Diagnostic or an *AssemblyError.
var (
	// ErrInvalidToken is an unrecognized keyword or malformed draw-block token
	ErrInvalidToken = common.ErrInvalidToken

	// ErrMissingOperand is a keyword with no following value
	ErrMissingOperand = common.ErrMissingOperand

	// ErrInvalidValue is an operand that fails its expected form
	ErrInvalidValue = common.ErrInvalidValue

	// ErrIllegalToken is a directive other than DRAW OFF inside a draw block
	ErrIllegalToken = common.ErrIllegalToken

	// ErrUnsupportedPaletteFormat is a palette depth outside 1-8
	ErrUnsupportedPaletteFormat = common.ErrUnsupportedPaletteFormat

	// ErrUnsupportedMaxFontSize is a width or height outside 1-256
	ErrUnsupportedMaxFontSize = common.ErrUnsupportedMaxFontSize

	// ErrStringRequirement is a string directive given an unquoted operand
	ErrStringRequirement = common.ErrStringRequirement
)
