package pixel

import (
	"strconv"
	"strings"
	"testing"

	"github.com/misbitfont/mfasm/internal/common"
)

var allModes = []common.DrawMode{common.Binary, common.Octal, common.Decimal, common.Hexadecimal}

func formatSample(v uint64, mode common.DrawMode, digits int) string {
	s := strings.ToUpper(strconv.FormatUint(v, mode.Base()))
	if len(s) < digits {
		s = strings.Repeat("0", digits-len(s)) + s
	}
	return s
}

func TestDigitCount(t *testing.T) {
	tests := []struct {
		mode common.DrawMode
		want [8]int // depth 1..8
	}{
		{common.Binary, [8]int{1, 2, 3, 4, 5, 6, 7, 8}},
		{common.Octal, [8]int{1, 1, 1, 2, 2, 2, 3, 3}},
		{common.Decimal, [8]int{1, 1, 1, 2, 2, 2, 3, 3}},
		{common.Hexadecimal, [8]int{1, 1, 1, 1, 2, 2, 2, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			for depth := 1; depth <= 8; depth++ {
				if got := DigitCount(tt.mode, depth); got != tt.want[depth-1] {
					t.Errorf("DigitCount(%s, %d) = %d, want %d", tt.mode, depth, got, tt.want[depth-1])
				}
			}
		})
	}
}

func TestEncodeMaxValueRoundTrips(t *testing.T) {
	for _, mode := range allModes {
		for depth := 1; depth <= 8; depth++ {
			maxValue := uint64(1)<<depth - 1
			token := formatSample(maxValue, mode, DigitCount(mode, depth))
			got, w := Encode(token, mode, depth)
			if w != NoWarning {
				t.Errorf("Encode(%q, %s, %d) warned %d", token, mode, depth, w)
			}
			if uint64(got) != maxValue {
				t.Errorf("Encode(%q, %s, %d) = %d, want %d", token, mode, depth, got, maxValue)
			}
		}
	}
}

func TestEncodeOnePastMaxTruncates(t *testing.T) {
	for _, mode := range allModes {
		for depth := 1; depth <= 8; depth++ {
			token := formatSample(uint64(1)<<depth, mode, 1)
			got, w := Encode(token, mode, depth)
			if w != Truncated {
				t.Errorf("Encode(%q, %s, %d) warning = %d, want Truncated", token, mode, depth, w)
			}
			if got != 0 {
				t.Errorf("Encode(%q, %s, %d) = %d, want 0", token, mode, depth, got)
			}
		}
	}
}

func TestEncode(t *testing.T) {
	tests := []struct {
		name  string
		token string
		mode  common.DrawMode
		depth int
		want  uint8
		warn  Warning
	}{
		{"decimal_depth3_eight_clamps", "8", common.Decimal, 3, 0, Truncated},
		{"decimal_depth3_nine_clamps", "9", common.Decimal, 3, 1, Truncated},
		{"binary_invalid_char", "1a01", common.Binary, 4, 0, InvalidDigit},
		{"binary_msb_first", "1000", common.Binary, 4, 8, NoWarning},
		{"binary_lsb", "0001", common.Binary, 4, 1, NoWarning},
		{"binary_digit_two", "2", common.Binary, 1, 0, InvalidDigit},
		{"octal_two_digits", "17", common.Octal, 4, 15, NoWarning},
		{"octal_eight_invalid", "8", common.Octal, 3, 0, InvalidDigit},
		{"octal_depth8_overflow", "777", common.Octal, 8, 0xFF, Truncated},
		{"octal_depth8_max", "377", common.Octal, 8, 0xFF, NoWarning},
		{"decimal_depth8_max", "255", common.Decimal, 8, 255, NoWarning},
		{"decimal_depth8_overflow", "256", common.Decimal, 8, 0, Truncated},
		{"decimal_depth8_999", "999", common.Decimal, 8, 999 & 0xFF, Truncated},
		{"decimal_short_token", "7", common.Decimal, 8, 7, NoWarning},
		{"hex_lowercase", "ff", common.Hexadecimal, 8, 0xFF, NoWarning},
		{"hex_mixed_case", "aB", common.Hexadecimal, 8, 0xAB, NoWarning},
		{"hex_depth4_letter", "C", common.Hexadecimal, 4, 0xC, NoWarning},
		{"hex_depth2_letter_truncates", "E", common.Hexadecimal, 2, 2, Truncated},
		{"hex_invalid", "G1", common.Hexadecimal, 8, 0, InvalidDigit},
		{"empty", "", common.Decimal, 4, 0, InvalidDigit},
		{"very_long_keeps_low_bits", strings.Repeat("9", 40), common.Decimal, 8, 0xFF, Truncated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, w := Encode(tt.token, tt.mode, tt.depth)
			if got != tt.want {
				t.Errorf("Encode(%q) = %d, want %d", tt.token, got, tt.want)
			}
			if w != tt.warn {
				t.Errorf("Encode(%q) warning = %d, want %d", tt.token, w, tt.warn)
			}
		})
	}
}

func TestWarningMessage(t *testing.T) {
	if msg := NoWarning.Message(common.Binary); msg != "" {
		t.Errorf("NoWarning.Message = %q, want empty", msg)
	}
	if msg := InvalidDigit.Message(common.Octal); !strings.Contains(msg, "0-7") || !strings.Contains(msg, "octal") {
		t.Errorf("InvalidDigit.Message(octal) = %q", msg)
	}
	if msg := Truncated.Message(common.Hexadecimal); !strings.Contains(msg, "truncated") {
		t.Errorf("Truncated.Message = %q", msg)
	}
}
