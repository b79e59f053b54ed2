package calc

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// ParseLiteral turns a word into a value, trying an integer (with base
// prefix detection), then a float, and finally falling back to the word
// itself as text. It never fails.
func ParseLiteral(word string) Value {
	if v, ok := parseNumber(word); ok {
		return v
	}
	return Text(word)
}

// parseNumber runs the numeric steps of ParseLiteral.
func parseNumber(s string) (Value, bool) {
	if n, ok := parseInteger(s); ok {
		return Integer(n), true
	}
	if f, ok := parseFloat(s); ok {
		return Float(f), true
	}
	return Value{}, false
}

// parseInteger accepts an optional sign, an optional 0x/0o/0b prefix, and
// underscores between digits. Unprefixed literals may only start with 0
// when they are entirely zero, so "010" is not an integer.
func parseInteger(s string) (int64, bool) {
	body := s
	if len(body) > 0 && (body[0] == '+' || body[0] == '-') {
		body = body[1:]
	}
	if body == "" {
		return 0, false
	}
	if len(body) > 1 && body[0] == '0' {
		switch body[1] {
		case 'x', 'X', 'o', 'O', 'b', 'B':
		default:
			if strings.Trim(body, "0_") != "" || !validUnderscores(body) {
				return 0, false
			}
			return 0, true
		}
	}
	n, err := strconv.ParseInt(s, 0, 64)
	return n, err == nil
}

// parseFloat accepts decimal and scientific notation along with the
// inf/infinity/nan spellings, any of them signed. Hexadecimal floats are rejected, and values
// too large for a float64 become infinities rather than failing.
func parseFloat(s string) (float64, bool) {
	body := s
	if len(body) > 0 && (body[0] == '+' || body[0] == '-') {
		body = body[1:]
	}
	if len(body) > 1 && body[0] == '0' && (body[1] == 'x' || body[1] == 'X') {
		return 0, false
	}
	// strconv only takes a sign on the infinities
	if strings.EqualFold(body, "nan") {
		return math.NaN(), true
	}
	if strings.IndexByte(s, '_') >= 0 {
		if !validUnderscores(s) {
			return 0, false
		}
		s = strings.ReplaceAll(s, "_", "")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && numErr.Err == strconv.ErrRange {
			return f, true
		}
		return 0, false
	}
	return f, true
}

// validUnderscores reports whether every underscore in s sits between two
// digits.
func validUnderscores(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] != '_' {
			continue
		}
		if i == 0 || i == len(s)-1 || !isDigit(s[i-1]) || !isDigit(s[i+1]) {
			return false
		}
	}
	return true
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

// parseDecimal parses text as a signed base 10 integer, allowing
// surrounding space and underscores between digits.
func parseDecimal(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if strings.IndexByte(s, '_') >= 0 {
		if !validUnderscores(s) {
			return 0, strconv.ErrSyntax
		}
		s = strings.ReplaceAll(s, "_", "")
	}
	return strconv.ParseInt(s, 10, 64)
}
