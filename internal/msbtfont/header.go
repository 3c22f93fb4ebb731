// Package msbtfont reads and writes the MisbitFont container: a fixed
// header, an optional per-glyph width table and one bit-packed glyph region.
package msbtfont

import (
	"bytes"
	"errors"

	"github.com/misbitfont/mfasm/internal/common"
)

// Container constants
const (
	// Magic opens every container
	Magic = "MSBTFONT"
	// VersionMajor changes when the layout changes incompatibly
	VersionMajor = 1
	// VersionMinor changes when the layout gains compatible additions
	VersionMinor = 0
	// HeaderSize is the encoded size of Header in bytes
	HeaderSize = 148
	// FieldSize is the size of the font name and language fields
	FieldSize = common.MaxStringBytes

	// MaxGlyphCount bounds the glyph count Read accepts
	MaxGlyphCount = 1 << 20

	// FlagVariable marks a container with a width table
	FlagVariable = 1 << 0
)

var (
	// ErrBadMagic is returned by Read when the stream is not a container.
	ErrBadMagic = errors.New("not a MisbitFont container")

	// ErrVersion is returned by Read for an unsupported major version.
	ErrVersion = errors.New("unsupported container version")

	// ErrGlyphIndex is returned when a glyph index is outside the container.
	ErrGlyphIndex = errors.New("glyph index out of range")

	// ErrGlyphSize is returned when a glyph buffer is smaller than one glyph.
	ErrGlyphSize = errors.New("glyph buffer too small")
)

// Descriptor describes a font in natural units. CreateHeader stores the
// minus-one encodings the header uses.
type Descriptor struct {
	PaletteDepth int
	Spacing      common.Spacing
	MaxWidth     int
	MaxHeight    int
	GlyphCount   int
	FontName     string
	Language     string
}

// Header is the fixed-size record at the start of a container. Its field
// order and sizes are the on-disk layout, little-endian.
type Header struct {
	Magic         [8]byte
	VersionMajor  uint16
	VersionMinor  uint16
	PaletteFormat uint8 // depth-1
	MaxWidth      uint8 // width-1
	MaxHeight     uint8 // height-1
	Flags         uint8
	GlyphCount    uint32
	FontName      [FieldSize]byte
	Language      [FieldSize]byte
}

// CreateHeader builds the header for d. Strings longer than FieldSize are
// cut; dimensions are expected to be within the format's limits.
func CreateHeader(d Descriptor) Header {
	var h Header
	copy(h.Magic[:], Magic)
	h.VersionMajor = VersionMajor
	h.VersionMinor = VersionMinor
	h.PaletteFormat = uint8(d.PaletteDepth - 1)
	h.MaxWidth = uint8(d.MaxWidth - 1)
	h.MaxHeight = uint8(d.MaxHeight - 1)
	if d.Spacing == common.Variable {
		h.Flags |= FlagVariable
	}
	h.GlyphCount = uint32(d.GlyphCount)
	copy(h.FontName[:], d.FontName)
	copy(h.Language[:], d.Language)
	return h
}

// Descriptor decodes h back into natural units.
func (h Header) Descriptor() Descriptor {
	spacing := common.Monospace
	if h.Variable() {
		spacing = common.Variable
	}
	return Descriptor{
		PaletteDepth: h.Depth(),
		Spacing:      spacing,
		MaxWidth:     h.Width(),
		MaxHeight:    h.Height(),
		GlyphCount:   int(h.GlyphCount),
		FontName:     cString(h.FontName[:]),
		Language:     cString(h.Language[:]),
	}
}

func (h Header) Depth() int     { return int(h.PaletteFormat) + 1 }
func (h Header) Width() int     { return int(h.MaxWidth) + 1 }
func (h Header) Height() int    { return int(h.MaxHeight) + 1 }
func (h Header) Variable() bool { return h.Flags&FlagVariable != 0 }

// GlyphBits is the number of bits one glyph occupies in the glyph region.
func (h Header) GlyphBits() int {
	return h.Width() * h.Height() * h.Depth()
}

// DataSize is the size in bytes of the glyph region.
func (h Header) DataSize() int {
	return (h.GlyphBits()*int(h.GlyphCount) + 7) / 8
}

func cString(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}
