package msbtfont

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Write encodes a container to w: header, width table when variable, then
// the glyph region. It returns the number of bytes written.
func Write(w io.Writer, h Header, fd *FileData) (int64, error) {
	cw := &countingWriter{w: w}
	if err := binary.Write(cw, binary.LittleEndian, &h); err != nil {
		return cw.n, fmt.Errorf("write header: %w", err)
	}
	if h.Variable() {
		if len(fd.Widths) != int(h.GlyphCount) {
			return cw.n, fmt.Errorf("write width table: %d entries for %d glyphs", len(fd.Widths), h.GlyphCount)
		}
		if _, err := cw.Write(fd.Widths); err != nil {
			return cw.n, fmt.Errorf("write width table: %w", err)
		}
	}
	if len(fd.Glyphs) != h.DataSize() {
		return cw.n, fmt.Errorf("write glyphs: region is %d bytes, header needs %d", len(fd.Glyphs), h.DataSize())
	}
	if _, err := cw.Write(fd.Glyphs); err != nil {
		return cw.n, fmt.Errorf("write glyphs: %w", err)
	}
	return cw.n, nil
}

// Read decodes a container from r.
func Read(r io.Reader) (Header, *FileData, error) {
	var h Header
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return Header{}, nil, fmt.Errorf("read header: %w", unexpected(err))
	}
	if string(h.Magic[:]) != Magic {
		return Header{}, nil, ErrBadMagic
	}
	if h.VersionMajor != VersionMajor {
		return Header{}, nil, fmt.Errorf("%w: %d.%d", ErrVersion, h.VersionMajor, h.VersionMinor)
	}
	if h.GlyphCount > MaxGlyphCount {
		return Header{}, nil, fmt.Errorf("read header: %d glyphs exceeds the limit of %d", h.GlyphCount, MaxGlyphCount)
	}

	fd := AllocateFileData(h)
	if fd.Widths != nil {
		if _, err := io.ReadFull(r, fd.Widths); err != nil {
			return Header{}, nil, fmt.Errorf("read width table: %w", unexpected(err))
		}
	}
	if _, err := io.ReadFull(r, fd.Glyphs); err != nil {
		return Header{}, nil, fmt.Errorf("read glyphs: %w", unexpected(err))
	}
	return h, fd, nil
}

// unexpected turns a clean EOF inside a container into io.ErrUnexpectedEOF.
func unexpected(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
