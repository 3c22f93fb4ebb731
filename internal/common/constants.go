// Package common provides shared constants and types for internal packages.
// These values must match the public API in the mfasm package.
package common

import "errors"

// Limits of the font format
const (
	// MinPaletteDepth is the smallest supported number of bits per pixel
	MinPaletteDepth = 1
	// MaxPaletteDepth is the largest supported number of bits per pixel
	MaxPaletteDepth = 8
	// MaxGlyphDimension bounds both the width and the height of a glyph
	MaxGlyphDimension = 256
	// MaxStringBytes is the storage size of the font name and language fields
	MaxStringBytes = 64
	// MaxCurrentWidth is the largest literal accepted by CURRENT_FONT_WIDTH
	MaxCurrentWidth = 0xFFFF
)

// Spacing selects whether glyphs share the max width or carry their own.
type Spacing uint8

const (
	// Monospace glyphs all use the max font width
	Monospace Spacing = iota
	// Variable glyphs each carry a width up to the max font width
	Variable
)

func (s Spacing) String() string {
	if s == Variable {
		return "variable"
	}
	return "monospace"
}

// DrawMode selects the numeral base used for pixel tokens inside a draw block.
type DrawMode uint8

const (
	Binary DrawMode = iota
	Octal
	Decimal
	Hexadecimal
)

// Base returns the numeral base of the mode.
func (m DrawMode) Base() int {
	switch m {
	case Octal:
		return 8
	case Decimal:
		return 10
	case Hexadecimal:
		return 16
	default:
		return 2
	}
}

func (m DrawMode) String() string {
	switch m {
	case Octal:
		return "octal"
	case Decimal:
		return "decimal"
	case Hexadecimal:
		return "hexadecimal"
	default:
		return "binary"
	}
}

// Error kinds (must match public API in mfasm package)
var (
	// ErrInvalidToken is an unrecognised keyword or malformed draw-block token
	ErrInvalidToken = errors.New("invalid token")
	// ErrMissingOperand is a keyword with no following value
	ErrMissingOperand = errors.New("missing operand")
	// ErrInvalidValue is an operand that fails its expected lexical form
	ErrInvalidValue = errors.New("invalid value")
	// ErrIllegalToken is a directive keyword used inside an open draw block
	ErrIllegalToken = errors.New("illegal token while drawing")
	// ErrUnsupportedPaletteFormat is a palette depth outside 1-8
	ErrUnsupportedPaletteFormat = errors.New("unsupported palette format")
	// ErrUnsupportedMaxFontSize is a width or height outside 1-256
	ErrUnsupportedMaxFontSize = errors.New("unsupported max font size")
	// ErrStringRequirement is a string-valued directive given a bare operand
	ErrStringRequirement = errors.New("string operand required")
)
