package preview

import (
	"fmt"
	"image"
	"image/png"
	"io"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// SheetOptions controls the glyph sheet layout.
type SheetOptions struct {
	// Columns is the number of glyphs per row; 16 when zero
	Columns int
	// Scale is the integer magnification; 1 when zero
	Scale int
	// Gap is the spacing between cells in unscaled pixels
	Gap int
}

// Sheet draws every glyph of f on a grid, dark on light, and scales the
// result with nearest-neighbour sampling so pixels stay square.
func Sheet(f *Face, opts SheetOptions) *image.Gray {
	cols := opts.Columns
	if cols <= 0 {
		cols = 16
	}
	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}

	cellW, cellH := 0, f.height
	for _, m := range f.masks {
		if w := m.Rect.Dx(); w > cellW {
			cellW = w
		}
	}
	rows := (f.Len() + cols - 1) / cols
	if rows == 0 {
		rows = 1
	}
	if cols > f.Len() && f.Len() > 0 {
		cols = f.Len()
	}

	gap := opts.Gap
	src := image.NewGray(image.Rect(0, 0, cols*(cellW+gap)+gap, rows*(cellH+gap)+gap))
	draw.Draw(src, src.Bounds(), image.White, image.Point{}, draw.Src)

	d := font.Drawer{Dst: src, Src: image.Black, Face: f}
	for i := 0; i < f.Len(); i++ {
		col, row := i%cols, i/cols
		d.Dot = fixed.P(gap+col*(cellW+gap), gap+row*(cellH+gap)+cellH)
		d.DrawString(string(f.base + rune(i)))
	}

	if scale == 1 {
		return src
	}
	dst := image.NewGray(image.Rect(0, 0, src.Rect.Dx()*scale, src.Rect.Dy()*scale))
	draw.NearestNeighbor.Scale(dst, dst.Rect, src, src.Rect, draw.Src, nil)
	return dst
}

// WritePNG encodes img as PNG.
func WritePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode preview: %w", err)
	}
	return nil
}
