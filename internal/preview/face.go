// Package preview renders assembled fonts: a font.Face for use with the
// golang.org/x/image text drawing API and a scaled glyph sheet.
package preview

import (
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/misbitfont/mfasm/internal/msbtfont"
	"github.com/misbitfont/mfasm/internal/pixel"
)

// DefaultBase is the rune mapped to glyph 0 when none is given.
const DefaultBase = ' '

// Face is a bitmap font.Face over a container. Glyph i is mapped to rune
// base+i; samples become alpha values scaled to the palette range.
type Face struct {
	base   rune
	height int
	masks  []*image.Alpha
}

var _ font.Face = (*Face)(nil)

// NewFace decodes every glyph of the container into an alpha mask.
func NewFace(h msbtfont.Header, fd *msbtfont.FileData, base rune) (*Face, error) {
	f := &Face{
		base:   base,
		height: h.Height(),
		masks:  make([]*image.Alpha, h.GlyphCount),
	}

	depth := h.Depth()
	top := uint32(pixel.Mask(depth))
	for i := range f.masks {
		data, err := msbtfont.LoadGlyph(h, fd, i)
		if err != nil {
			return nil, err
		}
		width := fd.Width(h, i)
		mask := image.NewAlpha(image.Rect(0, 0, width, f.height))
		for y := 0; y < f.height; y++ {
			for x := 0; x < width; x++ {
				s := uint32(pixel.Unpack(data, (y*h.Width()+x)*depth, depth))
				mask.Pix[y*mask.Stride+x] = uint8(s * 0xFF / top)
			}
		}
		f.masks[i] = mask
	}
	return f, nil
}

// Len returns the number of glyphs.
func (f *Face) Len() int {
	return len(f.masks)
}

// Base returns the rune of glyph 0.
func (f *Face) Base() rune {
	return f.base
}

func (f *Face) index(r rune) (int, bool) {
	i := int(r - f.base)
	return i, r >= f.base && i < len(f.masks)
}

// Close implements font.Face.
func (f *Face) Close() error {
	return nil
}

// Glyph implements font.Face. The glyph's bottom edge sits on the baseline.
func (f *Face) Glyph(dot fixed.Point26_6, r rune) (
	dr image.Rectangle, mask image.Image, maskp image.Point, advance fixed.Int26_6, ok bool) {

	i, ok := f.index(r)
	if !ok {
		return image.Rectangle{}, nil, image.Point{}, 0, false
	}
	m := f.masks[i]
	x, y := dot.X.Round(), dot.Y.Round()
	dr = image.Rect(x, y-f.height, x+m.Rect.Dx(), y)
	return dr, m, image.Point{}, fixed.I(m.Rect.Dx()), true
}

// GlyphBounds implements font.Face.
func (f *Face) GlyphBounds(r rune) (bounds fixed.Rectangle26_6, advance fixed.Int26_6, ok bool) {
	i, ok := f.index(r)
	if !ok {
		return fixed.Rectangle26_6{}, 0, false
	}
	w := f.masks[i].Rect.Dx()
	return fixed.R(0, -f.height, w, 0), fixed.I(w), true
}

// GlyphAdvance implements font.Face.
func (f *Face) GlyphAdvance(r rune) (advance fixed.Int26_6, ok bool) {
	i, ok := f.index(r)
	if !ok {
		return 0, false
	}
	return fixed.I(f.masks[i].Rect.Dx()), true
}

// Kern implements font.Face. Bitmap fonts have no kerning.
func (f *Face) Kern(r0, r1 rune) fixed.Int26_6 {
	return 0
}

// Metrics implements font.Face.
func (f *Face) Metrics() font.Metrics {
	h := fixed.I(f.height)
	return font.Metrics{
		Height:     h,
		Ascent:     h,
		CapHeight:  h,
		XHeight:    h,
		CaretSlope: image.Point{X: 0, Y: 1},
	}
}
