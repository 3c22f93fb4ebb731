package pixel

import "testing"

func TestCanvasRowMajor(t *testing.T) {
	c := NewCanvas(2, 2, 2, 1)
	c.Put(1)
	c.Put(0)
	c.NextRow()
	c.Put(0)
	c.Put(1)
	g := c.Finish()
	if len(g.Data) != 1 || g.Data[0] != 0b10010000 {
		t.Errorf("glyph = %08b, want [10010000]", g.Data)
	}
	if g.Width != 2 {
		t.Errorf("Width = %d, want 2", g.Width)
	}
}

func TestCanvasClipsX(t *testing.T) {
	c := NewCanvas(4, 1, 2, 1)
	if r := c.Put(1); r != Placed {
		t.Fatalf("first Put = %d, want Placed", r)
	}
	c.Put(1)
	if r := c.Put(1); r != ClippedX {
		t.Errorf("third Put = %d, want ClippedX", r)
	}
	if x, _ := c.Cursor(); x != 2 {
		t.Errorf("x = %d, want 2 after clipping", x)
	}
	if g := c.Finish(); g.Data[0] != 0b11000000 {
		t.Errorf("glyph = %08b, want 11000000", g.Data[0])
	}
}

func TestCanvasVariableWidthUsesMaxStride(t *testing.T) {
	// 4 wide stride, glyph only 2 wide: second row starts at bit 4
	c := NewCanvas(4, 2, 2, 1)
	c.Put(1)
	c.NextRow()
	c.Put(1)
	if g := c.Finish(); g.Data[0] != 0b10001000 {
		t.Errorf("glyph = %08b, want 10001000", g.Data[0])
	}
}

func TestCanvasClipsY(t *testing.T) {
	c := NewCanvas(1, 1, 1, 8)
	c.Put(0xAA)
	c.NextRow()
	c.NextRow()
	if _, y := c.Cursor(); y != 1 {
		t.Errorf("y = %d, want saturation at 1", y)
	}
	if r := c.Put(0x55); r != ClippedY {
		t.Errorf("Put below last row = %d, want ClippedY", r)
	}
	if g := c.Finish(); g.Data[0] != 0xAA {
		t.Errorf("glyph = %#x, want 0xaa", g.Data[0])
	}
}
