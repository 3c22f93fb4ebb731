package parser

import (
	"strings"

	"github.com/misbitfont/mfasm/internal/common"
	"github.com/misbitfont/mfasm/internal/pixel"
)

// lineScanner walks one line of input. Its state is the inner lexer state
// plus the statement being built; the outer mode is read from the context
// on every step because DRAW switches it mid-line.
type lineScanner struct {
	c    *Context
	text string

	state lexState
	start int // index where the current token or string body began
	kind  tokenKind

	kw       keyword
	kwCol    int
	operands int

	failed bool
	drew   bool
}

// Line runs one line of input, without its terminator, through the state
// machine. An error abandons the rest of the line.
func (c *Context) Line(text string) {
	c.line++
	s := lineScanner{c: c, text: text}
	s.run()
}

func (s *lineScanner) run() {
	for i := 0; i < len(s.text); i++ {
		s.step(i, classify(s.text[i]))
		if s.failed || s.state == stateComment {
			break
		}
	}
	if s.failed {
		return
	}
	s.endOfLine()
}

func (s *lineScanner) step(i int, cls charClass) {
	switch s.state {
	case stateString:
		if cls == classQuote {
			s.closeString(i)
		}
	case stateToken:
		switch cls {
		case classSpace:
			s.state = stateIdle
			s.endToken(i)
		case classSemicolon:
			s.state = stateComment
			s.endToken(i)
		case classQuote:
			s.state = stateIdle
			s.endToken(i)
			if !s.failed {
				s.quote(i)
			}
		default:
			s.extend(i)
		}
	default:
		switch cls {
		case classSpace:
		case classSemicolon:
			s.state = stateComment
		case classQuote:
			s.quote(i)
		default:
			s.beginToken(i)
		}
	}
}

func (s *lineScanner) endOfLine() {
	switch s.state {
	case stateToken:
		s.endToken(len(s.text))
	case stateString:
		s.c.fail(common.ErrInvalidValue, s.start, "unterminated string for %s", s.kw)
		return
	}
	if s.failed {
		return
	}
	if s.kw != kwNone && s.operands == 0 {
		s.c.fail(common.ErrMissingOperand, s.kwCol, "missing operand for %s", s.kw)
		return
	}
	if s.drew && s.c.canvas != nil {
		s.c.canvas.NextRow()
	}
}

// beginToken classifies a token by its first character. Inside a draw block
// a leading digit commits to a pixel run; under hexadecimal a leading hex
// letter is ambiguous until the next character is seen.
func (s *lineScanner) beginToken(i int) {
	s.state = stateToken
	s.start = i
	s.kind = tokenWord
	if !s.c.Drawing() || s.kw != kwNone {
		return
	}
	c := s.text[i]
	switch {
	case classify(c) == classDigit:
		s.kind = tokenPixel
	case s.c.settings.DrawMode == common.Hexadecimal && pixel.IsDigit(c, 16):
		s.kind = tokenPending
	}
}

// extend adds text[i] to the current token. A pixel run that already holds
// a full sample's digits is emitted first, so unseparated samples are cut
// at the expected digit count.
func (s *lineScanner) extend(i int) {
	if s.kind == tokenPending {
		if pixel.IsDigit(s.text[i], 16) {
			s.kind = tokenPixel
		} else {
			s.kind = tokenWord
		}
	}
	if s.kind != tokenPixel {
		return
	}
	st := s.c.settings
	if i-s.start == pixel.DigitCount(st.DrawMode, st.PaletteDepth) {
		s.pixel(s.start, i)
		s.start = i
	}
}

func (s *lineScanner) endToken(end int) {
	if s.c.Drawing() {
		s.drawToken(end)
	} else {
		s.directiveToken(s.text[s.start:end], s.start+1)
	}
}

func (s *lineScanner) quote(i int) {
	if !s.c.Drawing() && s.kw.stringValued() && s.operands == 0 {
		s.state = stateString
		s.start = i + 1
		return
	}
	kind := common.ErrInvalidValue
	if s.c.Drawing() {
		kind = common.ErrInvalidToken
	}
	s.failed = true
	s.c.fail(kind, i+1, "unexpected string")
}

func (s *lineScanner) closeString(i int) {
	s.state = stateIdle
	s.operands++
	s.c.applyString(s.kw, s.text[s.start:i], s.start)
}

func (s *lineScanner) directiveToken(tok string, col int) {
	if s.kw == kwNone {
		kw, ok := lookupKeyword(tok)
		if !ok {
			s.failed = true
			s.c.fail(common.ErrInvalidToken, col, "invalid token '%s'", tok)
			return
		}
		s.kw, s.kwCol = kw, col
		return
	}
	if s.operands > 0 {
		s.failed = true
		s.c.fail(common.ErrInvalidToken, col, "unexpected token '%s' after %s operand", tok, s.kw)
		return
	}
	s.operands++
	if !s.c.apply(s.kw, tok, col) {
		s.failed = true
	}
}

func (s *lineScanner) drawToken(end int) {
	tok, col := s.text[s.start:end], s.start+1

	if s.kw != kwNone {
		// only DRAW gets this far while drawing
		if s.operands > 0 {
			s.failed = true
			s.c.fail(common.ErrInvalidToken, col, "unexpected token '%s' after %s operand", tok, s.kw)
			return
		}
		s.operands++
		on, ok := toggles[strings.ToUpper(tok)]
		switch {
		case !ok:
			s.failed = true
			s.c.fail(common.ErrInvalidToken, col, "invalid token '%s'", tok)
		case on:
			s.c.warn(col, "drawing is already on, this statement has no effect")
		default:
			s.c.closeGlyph(col)
		}
		return
	}

	if s.kind != tokenWord {
		s.pixel(s.start, end)
		return
	}

	kw, ok := lookupKeyword(tok)
	switch {
	case !ok:
		s.failed = true
		s.c.fail(common.ErrInvalidToken, col, "invalid token '%s'", tok)
	case kw != kwDraw:
		s.failed = true
		s.c.fail(common.ErrIllegalToken, col, "%s cannot be used while drawing", kw)
	default:
		s.kw, s.kwCol = kw, col
	}
}

func (s *lineScanner) pixel(start, end int) {
	st := s.c.settings
	tok := s.text[start:end]
	value, w := pixel.Encode(tok, st.DrawMode, st.PaletteDepth)
	if w != pixel.NoWarning {
		s.c.warn(start+1, "%s", w.Message(st.DrawMode))
	}
	s.drew = true
	s.c.put(value, tok, start+1)
}
