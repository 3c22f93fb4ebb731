package parser

import (
	"strings"

	"github.com/misbitfont/mfasm/internal/common"
)

// keyword is the directive a statement starts with.
type keyword uint8

const (
	kwNone keyword = iota
	kwCurrentFontWidth
	kwDraw
	kwDrawMode
	kwFontName
	kwLanguage
	kwMaxFontSize
	kwPaletteFormat
	kwSpacingType
)

var keywordNames = [...]string{
	kwNone:             "",
	kwCurrentFontWidth: "CURRENT_FONT_WIDTH",
	kwDraw:             "DRAW",
	kwDrawMode:         "DRAW_MODE",
	kwFontName:         "FONT_NAME",
	kwLanguage:         "LANGUAGE",
	kwMaxFontSize:      "MAX_FONT_SIZE",
	kwPaletteFormat:    "PALETTE_FORMAT",
	kwSpacingType:      "SPACING_TYPE",
}

var keywords = func() map[string]keyword {
	m := make(map[string]keyword, len(keywordNames))
	for k, name := range keywordNames {
		if name != "" {
			m[name] = keyword(k)
		}
	}
	return m
}()

func (k keyword) String() string {
	return keywordNames[k]
}

// stringValued reports whether the operand must be a quoted string.
func (k keyword) stringValued() bool {
	return k == kwFontName || k == kwLanguage
}

// Enumerator operands, keyed by upper-cased word.
var (
	toggles = map[string]bool{
		"ON":  true,
		"OFF": false,
	}
	drawModes = map[string]common.DrawMode{
		"BINARY":      common.Binary,
		"OCTAL":       common.Octal,
		"DECIMAL":     common.Decimal,
		"HEXADECIMAL": common.Hexadecimal,
	}
	spacings = map[string]common.Spacing{
		"MONOSPACE": common.Monospace,
		"VARIABLE":  common.Variable,
	}
)

func lookupKeyword(word string) (keyword, bool) {
	k, ok := keywords[strings.ToUpper(word)]
	return k, ok
}
