package pixel

import (
	"fmt"

	"github.com/misbitfont/mfasm/internal/common"
)

// Warning describes the recovery applied while encoding a sample.
type Warning uint8

const (
	// NoWarning means the token was read as written
	NoWarning Warning = iota
	// InvalidDigit means the token held a character outside the base; the sample was zeroed
	InvalidDigit
	// Truncated means the value exceeded 2^depth-1 and was masked to fit
	Truncated
)

// Message renders the warning for a token read in mode.
func (w Warning) Message(mode common.DrawMode) string {
	switch w {
	case InvalidDigit:
		return fmt.Sprintf("unsupported value (must be %s in %s drawing mode), pixel zeroed", digitRange(mode), mode)
	case Truncated:
		return fmt.Sprintf("value is beyond the maximum for the palette format in %s drawing mode, pixel truncated to fit", mode)
	default:
		return ""
	}
}

func digitRange(mode common.DrawMode) string {
	switch mode {
	case common.Octal:
		return "0-7"
	case common.Decimal:
		return "0-9"
	case common.Hexadecimal:
		return "0-F"
	default:
		return "0 or 1"
	}
}

// Mask returns the bit mask of a sample at depth.
func Mask(depth int) uint8 {
	return 0xFF >> (8 - depth)
}

// Encode converts one token into a depth-bit sample. Malformed tokens yield
// zero and out-of-range values are masked; both report a warning.
func Encode(token string, mode common.DrawMode, depth int) (uint8, Warning) {
	value, big, ok := readDigits(token, mode.Base())
	if !ok {
		return 0, InvalidDigit
	}
	mask := Mask(depth)
	sample := uint8(value) & mask
	if big || value > uint64(mask) {
		return sample, Truncated
	}
	return sample, NoWarning
}
