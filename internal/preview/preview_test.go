package preview

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"golang.org/x/image/math/fixed"

	"github.com/misbitfont/mfasm/internal/common"
	"github.com/misbitfont/mfasm/internal/msbtfont"
)

// twoGlyphs is a 1-bit 2x2 variable font: a diagonal and a 1-wide bar.
func twoGlyphs(t *testing.T) (msbtfont.Header, *msbtfont.FileData) {
	t.Helper()
	h := msbtfont.CreateHeader(msbtfont.Descriptor{
		PaletteDepth: 1,
		Spacing:      common.Variable,
		MaxWidth:     2,
		MaxHeight:    2,
		GlyphCount:   2,
	})
	fd := msbtfont.AllocateFileData(h)
	fd.SetWidth(0, 2)
	fd.SetWidth(1, 1)
	if err := msbtfont.StoreGlyph(h, fd, []byte{0b10010000}, 0); err != nil {
		t.Fatal(err)
	}
	if err := msbtfont.StoreGlyph(h, fd, []byte{0b10100000}, 1); err != nil {
		t.Fatal(err)
	}
	return h, fd
}

func ink(img *image.Gray, x, y int) bool {
	return img.GrayAt(x, y).Y < 0x80
}

func TestFaceGlyph(t *testing.T) {
	h, fd := twoGlyphs(t)
	f, err := NewFace(h, fd, 'A')
	if err != nil {
		t.Fatal(err)
	}

	dr, mask, _, adv, ok := f.Glyph(fixed.P(10, 20), 'A')
	if !ok {
		t.Fatal("Glyph('A') not ok")
	}
	if want := image.Rect(10, 18, 12, 20); dr != want {
		t.Errorf("dr = %v, want %v", dr, want)
	}
	if adv != fixed.I(2) {
		t.Errorf("advance = %v, want 2", adv)
	}
	alpha := mask.(*image.Alpha)
	want := []uint8{0xFF, 0x00, 0x00, 0xFF}
	if !bytes.Equal(alpha.Pix, want) {
		t.Errorf("mask = %v, want %v", alpha.Pix, want)
	}

	if adv, ok := f.GlyphAdvance('B'); !ok || adv != fixed.I(1) {
		t.Errorf("GlyphAdvance('B') = %v, %v, want 1, true", adv, ok)
	}
	for _, r := range []rune{'@', 'C'} {
		if _, ok := f.GlyphAdvance(r); ok {
			t.Errorf("GlyphAdvance(%q) ok, want missing", r)
		}
	}
	if m := f.Metrics(); m.Height != fixed.I(2) || m.Ascent != fixed.I(2) {
		t.Errorf("metrics = %+v", m)
	}
}

func TestFaceAlphaScale(t *testing.T) {
	h := msbtfont.CreateHeader(msbtfont.Descriptor{PaletteDepth: 2, MaxWidth: 4, MaxHeight: 1, GlyphCount: 1})
	fd := msbtfont.AllocateFileData(h)
	// samples 0, 1, 2, 3
	if err := msbtfont.StoreGlyph(h, fd, []byte{0b00011011}, 0); err != nil {
		t.Fatal(err)
	}
	f, err := NewFace(h, fd, DefaultBase)
	if err != nil {
		t.Fatal(err)
	}
	_, mask, _, _, _ := f.Glyph(fixed.P(0, 1), ' ')
	want := []uint8{0x00, 0x55, 0xAA, 0xFF}
	if got := mask.(*image.Alpha).Pix; !bytes.Equal(got, want) {
		t.Errorf("alpha = %v, want %v", got, want)
	}
}

func TestSheet(t *testing.T) {
	h, fd := twoGlyphs(t)
	f, err := NewFace(h, fd, DefaultBase)
	if err != nil {
		t.Fatal(err)
	}

	img := Sheet(f, SheetOptions{Columns: 2, Scale: 3, Gap: 1})
	// two 2x2 cells plus three 1px gaps wide, one cell plus two gaps high
	if want := image.Rect(0, 0, 7*3, 4*3); img.Rect != want {
		t.Fatalf("bounds = %v, want %v", img.Rect, want)
	}

	tests := []struct {
		x, y int
		want bool
	}{
		{1, 1, true},  // glyph 0 (0,0)
		{2, 1, false}, // glyph 0 (1,0)
		{2, 2, true},  // glyph 0 (1,1)
		{4, 1, true},  // glyph 1 (0,0)
		{4, 2, true},  // glyph 1 (0,1)
		{0, 0, false}, // gap
	}
	for _, tt := range tests {
		// sample the centre of each scaled pixel
		if got := ink(img, tt.x*3+1, tt.y*3+1); got != tt.want {
			t.Errorf("ink at (%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}

	var buf bytes.Buffer
	if err := WritePNG(&buf, img); err != nil {
		t.Fatal(err)
	}
	decoded, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if decoded.Bounds() != img.Rect {
		t.Errorf("decoded bounds = %v", decoded.Bounds())
	}
}
