package mfasm

import (
	"bytes"
	"fmt"
	"io"

	"golang.org/x/image/font"

	"github.com/misbitfont/mfasm/internal/msbtfont"
	"github.com/misbitfont/mfasm/internal/preview"
)

// Container layout constants
const (
	// ContainerMagic opens every container
	ContainerMagic = msbtfont.Magic
	// HeaderSize is the size of the container header in bytes
	HeaderSize = msbtfont.HeaderSize
)

// container lays the font out as a header and file data.
func (f *Font) container() (msbtfont.Header, *msbtfont.FileData, error) {
	h := msbtfont.CreateHeader(msbtfont.Descriptor{
		PaletteDepth: f.PaletteDepth,
		Spacing:      f.Spacing,
		MaxWidth:     f.MaxWidth,
		MaxHeight:    f.MaxHeight,
		GlyphCount:   len(f.glyphs),
		FontName:     f.Name,
		Language:     f.Language,
	})
	fd := msbtfont.AllocateFileData(h)
	for i, g := range f.glyphs {
		fd.SetWidth(i, g.Width)
		if err := msbtfont.StoreGlyph(h, fd, g.Data, i); err != nil {
			return msbtfont.Header{}, nil, err
		}
	}
	return h, fd, nil
}

// WriteTo writes the font as a MisbitFont container.
func (f *Font) WriteTo(w io.Writer) (int64, error) {
	h, fd, err := f.container()
	if err != nil {
		return 0, err
	}
	return msbtfont.Write(w, h, fd)
}

// MarshalBinary returns the container bytes.
func (f *Font) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ReadFont decodes a container written by WriteTo. The returned font has no
// warnings.
func ReadFont(r io.Reader) (*Font, error) {
	h, fd, err := msbtfont.Read(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read container: %w", err)
	}

	d := h.Descriptor()
	f := &Font{
		glyphs:       make([]Glyph, d.GlyphCount),
		Name:         d.FontName,
		Language:     d.Language,
		PaletteDepth: d.PaletteDepth,
		Spacing:      d.Spacing,
		MaxWidth:     d.MaxWidth,
		MaxHeight:    d.MaxHeight,
	}
	for i := range f.glyphs {
		data, err := msbtfont.LoadGlyph(h, fd, i)
		if err != nil {
			return nil, err
		}
		f.glyphs[i] = Glyph{Width: fd.Width(h, i), Data: data}
	}
	return f, nil
}

// Face returns a bitmap font.Face over the font. Glyph i is mapped to rune
// base+i and drawn one screen pixel per font pixel, with sample values
// scaled to alpha.
func (f *Font) Face(base rune) (font.Face, error) {
	face, err := f.face(base)
	if err != nil {
		return nil, err
	}
	return face, nil
}

func (f *Font) face(base rune) (*preview.Face, error) {
	h, fd, err := f.container()
	if err != nil {
		return nil, err
	}
	return preview.NewFace(h, fd, base)
}

// PreviewOptions controls WritePreview.
type PreviewOptions struct {
	// Base is the rune of glyph 0; space when zero
	Base rune
	// Columns is the number of glyphs per row; 16 when zero
	Columns int
	// Scale is the integer magnification; 1 when zero
	Scale int
}

// WritePreview renders every glyph onto a PNG sheet.
func (f *Font) WritePreview(w io.Writer, opts PreviewOptions) error {
	base := opts.Base
	if base == 0 {
		base = preview.DefaultBase
	}
	face, err := f.face(base)
	if err != nil {
		return err
	}
	img := preview.Sheet(face, preview.SheetOptions{
		Columns: opts.Columns,
		Scale:   opts.Scale,
		Gap:     1,
	})
	return preview.WritePNG(w, img)
}
