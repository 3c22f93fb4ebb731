package parser

import (
	"strconv"
	"strings"

	"github.com/misbitfont/mfasm/internal/common"
	"github.com/misbitfont/mfasm/internal/debug"
	"github.com/misbitfont/mfasm/internal/pixel"
)

// apply executes a directive with a bare operand. It returns false when an
// error was issued.
func (c *Context) apply(kw keyword, operand string, col int) bool {
	switch kw {
	case kwCurrentFontWidth:
		return c.setCurrentWidth(operand, col)
	case kwDraw:
		on, ok := toggles[strings.ToUpper(operand)]
		if !ok {
			c.fail(common.ErrInvalidToken, col, "invalid token '%s'", operand)
			return false
		}
		if on {
			c.openGlyph(col)
		} else {
			c.warn(col, "drawing is already off, this statement has no effect")
		}
	case kwDrawMode:
		mode, ok := drawModes[strings.ToUpper(operand)]
		if !ok {
			c.fail(common.ErrInvalidToken, col, "invalid token '%s'", operand)
			return false
		}
		c.settings.DrawMode = mode
	case kwFontName, kwLanguage:
		c.fail(common.ErrStringRequirement, col, "%s requires a quoted string", kw)
		return false
	case kwMaxFontSize:
		return c.setMaxSize(operand, col)
	case kwPaletteFormat:
		return c.setPaletteFormat(operand, col)
	case kwSpacingType:
		spacing, ok := spacings[strings.ToUpper(operand)]
		if !ok {
			c.fail(common.ErrInvalidToken, col, "invalid token '%s'", operand)
			return false
		}
		if c.locked(col, kw) {
			return true
		}
		c.settings.Spacing = spacing
	}
	c.traceDirective(kw, operand, col)
	return true
}

// applyString executes FONT_NAME or LANGUAGE. col is the column of the
// opening quote.
func (c *Context) applyString(kw keyword, value string, col int) {
	if len(value) > common.MaxStringBytes {
		c.warn(col, "%s is longer than %d bytes, truncating", kw, common.MaxStringBytes)
		value = value[:common.MaxStringBytes]
	}
	if kw == kwFontName {
		c.settings.FontName = value
	} else {
		c.settings.Language = value
	}
	c.traceDirective(kw, value, col)
}

// locked warns and returns true when a font-wide setting can no longer
// change because glyphs already exist.
func (c *Context) locked(col int, kw keyword) bool {
	if len(c.glyphs) == 0 {
		return false
	}
	c.warn(col, "%s cannot change after glyphs have been drawn, statement ignored", kw)
	return true
}

func (c *Context) setCurrentWidth(operand string, col int) bool {
	v, ok := parseUint(operand)
	if !ok || v > common.MaxCurrentWidth {
		c.fail(common.ErrInvalidValue, col, "invalid value '%s' for %s", operand, kwCurrentFontWidth)
		return false
	}
	switch {
	case c.settings.Spacing == common.Monospace:
		c.warn(col, "%s has no effect with monospace spacing", kwCurrentFontWidth)
	case int(v) > c.settings.MaxSize.Width:
		c.warn(col, "%s %d exceeds the max font width %d, statement ignored", kwCurrentFontWidth, v, c.settings.MaxSize.Width)
	default:
		c.settings.CurrentWidth = int(v)
		c.traceDirective(kwCurrentFontWidth, operand, col)
	}
	return true
}

func (c *Context) setPaletteFormat(operand string, col int) bool {
	v, ok := parseUint(operand)
	if !ok {
		c.fail(common.ErrInvalidValue, col, "invalid value '%s' for %s", operand, kwPaletteFormat)
		return false
	}
	if c.locked(col, kwPaletteFormat) {
		return true
	}
	if v < common.MinPaletteDepth || v > common.MaxPaletteDepth {
		c.fail(common.ErrUnsupportedPaletteFormat, col, "palette format %d is not between %d and %d",
			v, common.MinPaletteDepth, common.MaxPaletteDepth)
		return false
	}
	c.settings.PaletteDepth = int(v)
	c.traceDirective(kwPaletteFormat, operand, col)
	return true
}

func (c *Context) setMaxSize(operand string, col int) bool {
	size, ok := parseSize(operand)
	if !ok {
		c.fail(common.ErrInvalidValue, col, "invalid value '%s' for %s, expected WIDTHxHEIGHT", operand, kwMaxFontSize)
		return false
	}
	if c.locked(col, kwMaxFontSize) {
		return true
	}
	if size.Width < 1 || size.Width > common.MaxGlyphDimension ||
		size.Height < 1 || size.Height > common.MaxGlyphDimension {
		c.fail(common.ErrUnsupportedMaxFontSize, col, "max font size %dx%d is outside 1x1 to %dx%d",
			size.Width, size.Height, common.MaxGlyphDimension, common.MaxGlyphDimension)
		return false
	}
	c.settings.MaxSize = size
	c.traceDirective(kwMaxFontSize, operand, col)
	return true
}

// parseUint reads a decimal operand or one prefixed with 0x or 0b.
func parseUint(s string) (uint64, bool) {
	base := 10
	if len(s) > 2 && s[0] == '0' {
		switch s[1] {
		case 'x', 'X':
			base, s = 16, s[2:]
		case 'b', 'B':
			base, s = 2, s[2:]
		}
	}
	if s == "" || s[0] == '+' || s[0] == '-' {
		return 0, false
	}
	v, err := strconv.ParseUint(s, base, 32)
	if err != nil {
		return 0, false
	}
	return v, true
}

// parseSize reads WIDTHxHEIGHT with both parts in decimal.
func parseSize(s string) (Size, bool) {
	i := strings.IndexAny(s, "xX")
	if i < 0 || strings.ContainsAny(s[i+1:], "xX") {
		return Size{}, false
	}
	w, err := strconv.ParseUint(s[:i], 10, 16)
	if err != nil {
		return Size{}, false
	}
	h, err := strconv.ParseUint(s[i+1:], 10, 16)
	if err != nil {
		return Size{}, false
	}
	return Size{Width: int(w), Height: int(h)}, true
}

// openGlyph starts a draw block. The glyph's width is the max width under
// monospace, otherwise the current width clamped to the max width.
func (c *Context) openGlyph(col int) {
	st := &c.settings
	width := st.MaxSize.Width
	if st.Spacing == common.Variable && st.CurrentWidth != 0 {
		if st.CurrentWidth > width {
			c.warn(col, "current font width %d exceeds the max font width %d, clamping", st.CurrentWidth, width)
		} else {
			width = st.CurrentWidth
		}
	}

	c.canvas = pixel.NewCanvas(st.MaxSize.Width, st.MaxSize.Height, width, st.PaletteDepth)
	c.canvasLine = c.line
	c.opts.Debug.Emit("glyph", "Open", c.glyphData(width))
}

// closeGlyph ends the draw block and appends its glyph.
func (c *Context) closeGlyph(col int) {
	g := c.canvas.Finish()
	c.canvas = nil
	c.glyphs = append(c.glyphs, g)
	c.opts.Debug.Emit("glyph", "Close", c.glyphData(g.Width))
	c.traceDirective(kwDraw, "OFF", col)
}

func (c *Context) glyphData(width int) debug.GlyphData {
	st := c.settings
	return debug.GlyphData{
		Index:  len(c.glyphs),
		Line:   c.line,
		Width:  width,
		Height: st.MaxSize.Height,
		Depth:  st.PaletteDepth,
		Bytes:  pixel.Bytes(st.MaxSize.Width, st.MaxSize.Height, st.PaletteDepth),
	}
}

// put places one encoded sample on the canvas.
func (c *Context) put(sample uint8, token string, col int) {
	res := c.canvas.Put(sample)
	switch res {
	case pixel.ClippedX:
		c.warn(col, "drawing out of bounds on the x-axis, skipping pixel")
	case pixel.ClippedY:
		c.warn(col, "drawing out of bounds on the y-axis, skipping pixel")
	}

	if c.opts.Debug != nil {
		x, y := c.canvas.Cursor()
		c.opts.Debug.Emit("pixel", resultName(res), debug.PixelData{
			Line:   c.line,
			Column: col,
			X:      x,
			Y:      y,
			Token:  token,
			Value:  int(sample),
			Result: resultName(res),
		})
	}
}

func resultName(r pixel.Result) string {
	switch r {
	case pixel.ClippedX:
		return "clipped_x"
	case pixel.ClippedY:
		return "clipped_y"
	default:
		return "placed"
	}
}

func (c *Context) traceDirective(kw keyword, operand string, col int) {
	if c.opts.Logger != nil {
		c.opts.Logger.WithField("line", c.line).Debugf("%s %s", kw, operand)
	}
	c.opts.Debug.Emit("directive", kw.String(), debug.DirectiveData{
		Line:    c.line,
		Column:  col,
		Keyword: kw.String(),
		Operand: operand,
	})
}
