package lists

import (
	"math"
	"strings"
	"unicode"
)

// AppendPosition is the position used for input that carries no number.
// It is always past the end, so Insert takes the tolerant-append path.
const AppendPosition = math.MaxInt

// ParsePosition coerces free-form position text the way form input is
// read: leading spaces are skipped, an optional sign and the leading run
// of digits are taken and anything after them is ignored ("3.7" is 3,
// "2abc" is 2). Text without a leading number yields AppendPosition.
// Negative numbers are clamped to 0. The second result reports whether a
// number was found.
func ParsePosition(text string) (int, bool) {
	s := strings.TrimLeftFunc(text, unicode.IsSpace)
	negative := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		negative = s[0] == '-'
		s = s[1:]
	}

	n, digits := 0, 0
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		digits++
		d := int(r - '0')
		if n > (math.MaxInt-d)/10 {
			n = math.MaxInt
			continue
		}
		n = n*10 + d
	}
	if digits == 0 {
		return AppendPosition, false
	}
	if negative {
		return 0, true
	}
	return n, true
}
