package msbtfont

import "fmt"

// FileData is everything after the header.
type FileData struct {
	// Widths holds width-1 per glyph; nil unless the header is variable
	Widths []byte
	// Glyphs is the bit-packed glyph region
	Glyphs []byte
}

// AllocateFileData returns zeroed file data sized for h.
func AllocateFileData(h Header) *FileData {
	fd := &FileData{Glyphs: make([]byte, h.DataSize())}
	if h.Variable() {
		fd.Widths = make([]byte, h.GlyphCount)
	}
	return fd
}

// StoreGlyph copies one glyph's packed buffer into the glyph region. The
// buffer holds the glyph's bits MSB-first from its first byte, as produced
// by the pixel encoder; only GlyphBits bits of it are used.
func StoreGlyph(h Header, fd *FileData, glyph []byte, index int) error {
	if index < 0 || index >= int(h.GlyphCount) {
		return fmt.Errorf("store glyph %d of %d: %w", index, h.GlyphCount, ErrGlyphIndex)
	}
	bits := h.GlyphBits()
	if len(glyph)*8 < bits {
		return fmt.Errorf("store glyph %d: %d bytes for %d bits: %w", index, len(glyph), bits, ErrGlyphSize)
	}

	off := index * bits
	if off%8 == 0 && bits%8 == 0 {
		copy(fd.Glyphs[off/8:], glyph[:bits/8])
		return nil
	}
	copyBits(fd.Glyphs, off, glyph, 0, bits)
	return nil
}

// LoadGlyph returns a copy of glyph index laid out the way StoreGlyph
// expects it, with trailing pad bits zero.
func LoadGlyph(h Header, fd *FileData, index int) ([]byte, error) {
	if index < 0 || index >= int(h.GlyphCount) {
		return nil, fmt.Errorf("load glyph %d of %d: %w", index, h.GlyphCount, ErrGlyphIndex)
	}
	bits := h.GlyphBits()
	out := make([]byte, (bits+7)/8)
	copyBits(out, 0, fd.Glyphs, index*bits, bits)
	return out, nil
}

// SetWidth records the width of glyph index. It is a no-op for monospace
// containers.
func (fd *FileData) SetWidth(index, width int) {
	if fd.Widths != nil && index >= 0 && index < len(fd.Widths) {
		fd.Widths[index] = uint8(width - 1)
	}
}

// Width returns the width of glyph index.
func (fd *FileData) Width(h Header, index int) int {
	if fd.Widths == nil || index < 0 || index >= len(fd.Widths) {
		return h.Width()
	}
	return int(fd.Widths[index]) + 1
}

// copyBits copies n bits, MSB-first, from src starting at bit so to dst
// starting at bit do.
func copyBits(dst []byte, do int, src []byte, so, n int) {
	for i := 0; i < n; i++ {
		s, d := so+i, do+i
		mask := byte(0x80) >> (d % 8)
		if src[s/8]&(0x80>>(s%8)) != 0 {
			dst[d/8] |= mask
		} else {
			dst[d/8] &^= mask
		}
	}
}
