package pixel

// Glyph is one finished bitmap. Width is the glyph's own width, which only
// differs from the max font width under variable spacing.
type Glyph struct {
	Data  []byte
	Width int
}

// Result reports what Canvas.Put did with a sample.
type Result uint8

const (
	// Placed means the sample was packed and the cursor advanced
	Placed Result = iota
	// ClippedX means the row was already full; the sample was dropped
	ClippedX
	// ClippedY means the cursor is below the last row; the sample was dropped
	ClippedY
)

// Canvas is the glyph under construction and its drawing cursor.
// Rows are laid out with the max font width as stride regardless of the
// glyph's own width.
type Canvas struct {
	glyph  Glyph
	stride int
	height int
	depth  int
	x, y   int
}

// NewCanvas allocates a zeroed glyph of stride x height samples at depth.
// width is the number of columns the glyph may draw into.
func NewCanvas(stride, height, width, depth int) *Canvas {
	return &Canvas{
		glyph: Glyph{
			Data:  make([]byte, Bytes(stride, height, depth)),
			Width: width,
		},
		stride: stride,
		height: height,
		depth:  depth,
	}
}

// Put packs sample at the cursor and advances x.
func (c *Canvas) Put(sample uint8) Result {
	if c.y >= c.height {
		return ClippedY
	}
	if c.x >= c.glyph.Width {
		return ClippedX
	}
	Pack(c.glyph.Data, (c.y*c.stride+c.x)*c.depth, sample, c.depth)
	c.x++
	return Placed
}

// NextRow moves the cursor to the start of the next row. y stops at the
// height so later rows keep reporting ClippedY.
func (c *Canvas) NextRow() {
	c.x = 0
	if c.y < c.height {
		c.y++
	}
}

// Cursor returns the current drawing position.
func (c *Canvas) Cursor() (x, y int) {
	return c.x, c.y
}

// Finish hands the glyph over to the caller. The canvas must not be used
// afterwards.
func (c *Canvas) Finish() Glyph {
	g := c.glyph
	c.glyph = Glyph{}
	return g
}
