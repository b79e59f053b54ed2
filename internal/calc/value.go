// Package calc implements the value model and word dispatch of an RPN
// calculator: a stack of integer, float and text values, operators looked up
// by operand kinds, stack commands, and a literal parser that turns any
// other word into a value.
package calc

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind identifies which variant a Value holds.
type Kind uint8

// The only kinds a Value may have; the dispatch tables are keyed by these.
const (
	IntegerKind Kind = iota + 1
	FloatKind
	TextKind
)

// Tag returns the short type tag used when rendering a stack entry.
func (k Kind) Tag() string {
	switch k {
	case IntegerKind:
		return "i"
	case FloatKind:
		return "f"
	case TextKind:
		return "s"
	}
	return "?"
}

func (k Kind) String() string {
	switch k {
	case IntegerKind:
		return "integer"
	case FloatKind:
		return "float"
	case TextKind:
		return "text"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Value is a single stack entry: exactly one of an integer, a float, or a
// text string, as selected by its Kind.
type Value struct {
	kind Kind
	i    int64
	f    float64
	s    string
}

// Integer returns an integer value.
func Integer(n int64) Value { return Value{kind: IntegerKind, i: n} }

// Float returns a floating point value.
func Float(f float64) Value { return Value{kind: FloatKind, f: f} }

// Text returns a string value.
func Text(s string) Value { return Value{kind: TextKind, s: s} }

// Kind returns the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// Int returns the integer held by v, and whether v is an integer.
func (v Value) Int() (int64, bool) { return v.i, v.kind == IntegerKind }

// Float64 returns the float held by v, and whether v is a float.
func (v Value) Float64() (float64, bool) { return v.f, v.kind == FloatKind }

// Str returns the text held by v, and whether v is text.
func (v Value) Str() (string, bool) { return v.s, v.kind == TextKind }

// widen returns the numeric value of an integer or float as a float64.
func (v Value) widen() float64 {
	if v.kind == IntegerKind {
		return float64(v.i)
	}
	return v.f
}

// String formats v the way it is rendered on the stack: integers in
// decimal, floats in their shortest round-trip form, text verbatim.
func (v Value) String() string {
	switch v.kind {
	case IntegerKind:
		return strconv.FormatInt(v.i, 10)
	case FloatKind:
		return formatFloat(v.f)
	case TextKind:
		return v.s
	}
	return ""
}

// formatFloat uses fixed notation for decimal exponents in [-4, 16) and
// scientific notation otherwise; integral values keep a ".0" so that they
// remain distinguishable from integers.
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	s := strconv.FormatFloat(f, 'e', -1, 64)
	if exp, err := strconv.Atoi(s[strings.LastIndexByte(s, 'e')+1:]); err == nil && exp >= -4 && exp < 16 {
		s = strconv.FormatFloat(f, 'f', -1, 64)
		if !strings.ContainsRune(s, '.') {
			s += ".0"
		}
	}
	return s
}
