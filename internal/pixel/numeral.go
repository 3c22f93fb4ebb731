// Package pixel converts textual pixel tokens into N-bit samples and packs
// them into glyph bitmaps at sub-byte granularity.
package pixel

import "github.com/misbitfont/mfasm/internal/common"

// bigValue marks an accumulated value that can no longer fit any sample.
// Accumulation keeps going past it (mod 2^64) so the low bits stay exact.
const bigValue = 1 << 56

// DigitCount returns the number of digits a full-scale sample (2^depth-1)
// takes in the base of mode. This is the length at which the tokenizer
// commits a pixel token.
func DigitCount(mode common.DrawMode, depth int) int {
	maxValue := uint(1)<<depth - 1
	base := uint(mode.Base())
	n := 1
	for maxValue >= base {
		maxValue /= base
		n++
	}
	return n
}

// digitValue returns the value of c as a digit in base, case-insensitively.
func digitValue(c byte, base int) (int, bool) {
	var v int
	switch {
	case c >= '0' && c <= '9':
		v = int(c - '0')
	case c >= 'a' && c <= 'f':
		v = int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		v = int(c-'A') + 10
	default:
		return 0, false
	}
	if v >= base {
		return 0, false
	}
	return v, true
}

// IsDigit reports whether c is a valid digit in base.
func IsDigit(c byte, base int) bool {
	_, ok := digitValue(c, base)
	return ok
}

// readDigits reads token most-significant digit first. big is set once the
// value has grown beyond anything a sample could hold.
func readDigits(token string, base int) (value uint64, big, ok bool) {
	if token == "" {
		return 0, false, false
	}
	for i := 0; i < len(token); i++ {
		d, valid := digitValue(token[i], base)
		if !valid {
			return 0, false, false
		}
		value = value*uint64(base) + uint64(d)
		if value >= bigValue {
			big = true
		}
	}
	return value, big, true
}
