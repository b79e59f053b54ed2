package calc

import (
	"math"
)

type unaryKey struct {
	kind Kind
	sym  string
}

type binaryKey struct {
	top, second Kind
	sym         string
}

// unaryFunc maps the top value to its replacement.
type unaryFunc func(a Value) (Value, error)

// binaryFunc receives the second value first and the top value second, so
// that "a b -" computes a - b.
type binaryFunc func(a, b Value) (Value, error)

var (
	unaryOps  = make(map[unaryKey]unaryFunc)
	binaryOps = make(map[binaryKey]binaryFunc)

	// arity records how many operands each operator symbol consumes, so that
	// a symbol with no matching entry reports an error instead of becoming
	// text.
	arity = make(map[string]int)
)

var numericKinds = []Kind{IntegerKind, FloatKind}

func defUnary(fn unaryFunc, kinds []Kind, syms ...string) {
	for _, sym := range syms {
		arity[sym] = 1
		for _, kind := range kinds {
			unaryOps[unaryKey{kind, sym}] = fn
		}
	}
}

func defBinary(sym string, top, second Kind, fn binaryFunc) {
	arity[sym] = 2
	binaryOps[binaryKey{top, second, sym}] = fn
}

// defArith registers sym over all four integer/float pairings. Two integers
// go through intFn when it is non-nil; every other pairing is widened to
// floats for floatFn.
func defArith(sym string, intFn func(a, b int64) (Value, error), floatFn func(a, b float64) (Value, error)) {
	for _, top := range numericKinds {
		for _, second := range numericKinds {
			if intFn != nil && top == IntegerKind && second == IntegerKind {
				defBinary(sym, top, second, func(a, b Value) (Value, error) { return intFn(a.i, b.i) })
			} else {
				defBinary(sym, top, second, func(a, b Value) (Value, error) { return floatFn(a.widen(), b.widen()) })
			}
		}
	}
}

func lookupUnary(sym string, a Value) (unaryFunc, bool) {
	fn, ok := unaryOps[unaryKey{a.kind, sym}]
	return fn, ok
}

func lookupBinary(sym string, a, b Value) (binaryFunc, bool) {
	fn, ok := binaryOps[binaryKey{b.kind, a.kind, sym}]
	return fn, ok
}

func init() {
	//// Unary operators

	// Symbol   Name         Function
	//   --     negate       replace top with its negation
	defUnary(func(a Value) (Value, error) {
		if a.kind == IntegerKind {
			if a.i == math.MinInt64 {
				return Value{}, ErrOverflow
			}
			return Integer(-a.i), nil
		}
		return Float(-a.f), nil
	}, numericKinds, "--")

	// Symbol   Name         Function
	//   1/     reciprocal   replace top with 1 divided by it, always a float
	defUnary(func(a Value) (Value, error) {
		x := a.widen()
		if x == 0 {
			return Value{}, ErrDivideByZero
		}
		return Float(1 / x), nil
	}, numericKinds, "1/")

	// Symbol   Name         Function
	//   !      factorial    replace a non-negative integer with its factorial;
	//                       integral floats are accepted
	defUnary(func(a Value) (Value, error) {
		n := a.i
		if a.kind == FloatKind {
			if a.f != math.Trunc(a.f) || math.IsInf(a.f, 0) {
				return Value{}, ErrDomain
			}
			if a.f > 20 {
				return Value{}, ErrOverflow
			}
			n = int64(a.f)
		}
		return factorial(n)
	}, numericKinds, "!")

	// Transcendental operators accept either numeric kind and always yield
	// a float.
	defUnary(transcendental(math.Sqrt), numericKinds, "sqrt")
	defUnary(transcendental(math.Exp), numericKinds, "exp")
	defUnary(transcendental(math.Log), numericKinds, "ln", "loge")
	defUnary(transcendental(math.Log10), numericKinds, "log", "log10")
	defUnary(transcendental(math.Log2), numericKinds, "log2", "lg")
	defUnary(transcendental(math.Sin), numericKinds, "sin")
	defUnary(transcendental(math.Cos), numericKinds, "cos")
	defUnary(transcendental(math.Tan), numericKinds, "tan")
	defUnary(transcendental(math.Asin), numericKinds, "asin")
	defUnary(transcendental(math.Acos), numericKinds, "acos")
	defUnary(transcendental(math.Atan), numericKinds, "atan")

	//// Binary operators

	// Symbol   Name         Function
	//   +      add          integers stay integers, text concatenates
	defArith("+", addInt, func(a, b float64) (Value, error) { return Float(a + b), nil })
	defBinary("+", TextKind, TextKind, func(a, b Value) (Value, error) { return Text(a.s + b.s), nil })

	// Symbol   Name         Function
	//   -      subtract     second minus top
	defArith("-", subInt, func(a, b float64) (Value, error) { return Float(a - b), nil })

	// Symbol   Name         Function
	//   *      multiply
	defArith("*", mulInt, func(a, b float64) (Value, error) { return Float(a * b), nil })

	// Symbol   Name         Function
	//   /      divide       true division, always a float
	defArith("/", nil, func(a, b float64) (Value, error) {
		if b == 0 {
			return Value{}, ErrDivideByZero
		}
		return Float(a / b), nil
	})

	// Symbol   Name         Function
	//   //     floor divide rounds the quotient toward negative infinity
	defArith("//", floorDivInt, floorDivFloat)

	// Symbol   Name         Function
	//   **     power        second raised to top; a negative integer exponent
	//                       widens to float
	defArith("**", powInt, powFloat)

	// Symbol   Name         Function
	//  atan2   arctangent   atan2(second, top), always a float
	defArith("atan2", nil, func(y, x float64) (Value, error) { return Float(math.Atan2(y, x)), nil })
}

// transcendental wraps a float function, rejecting results that leave the
// reals (NaN) or overflow (±Inf) when the input was finite.
func transcendental(fn func(float64) float64) unaryFunc {
	return func(a Value) (Value, error) {
		x := a.widen()
		r := fn(x)
		if isFinite(x) && !isFinite(r) {
			return Value{}, ErrDomain
		}
		return Float(r), nil
	}
}

func isFinite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }

func addInt(a, b int64) (Value, error) {
	r := a + b
	if (r > a) != (b > 0) {
		return Value{}, ErrOverflow
	}
	return Integer(r), nil
}

func subInt(a, b int64) (Value, error) {
	r := a - b
	if (r < a) != (b > 0) {
		return Value{}, ErrOverflow
	}
	return Integer(r), nil
}

func mulInt(a, b int64) (Value, error) {
	r, ok := mulInt64(a, b)
	if !ok {
		return Value{}, ErrOverflow
	}
	return Integer(r), nil
}

func mulInt64(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return 0, false
	}
	r := a * b
	return r, r/b == a
}

func floorDivInt(a, b int64) (Value, error) {
	if b == 0 {
		return Value{}, ErrDivideByZero
	}
	if a == math.MinInt64 && b == -1 {
		return Value{}, ErrOverflow
	}
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return Integer(q), nil
}

// floorDivFloat derives the quotient from the remainder so that it agrees
// with the modulus: 1 // 0.1 is 9, since 0.1 is slightly above a tenth.
func floorDivFloat(a, b float64) (Value, error) {
	if b == 0 {
		return Value{}, ErrDivideByZero
	}
	mod := math.Mod(a, b)
	div := (a - mod) / b
	if mod != 0 && (b < 0) != (mod < 0) {
		div--
	}
	if div == 0 {
		return Float(math.Copysign(0, a/b)), nil
	}
	q := math.Floor(div)
	if div-q > 0.5 {
		q++
	}
	return Float(q), nil
}

func powInt(a, b int64) (Value, error) {
	if b < 0 {
		if a == 0 {
			return Value{}, ErrDivideByZero
		}
		return Float(math.Pow(float64(a), float64(b))), nil
	}
	r := int64(1)
	for base, ok := a, true; b > 0; b >>= 1 {
		if b&1 == 1 {
			if r, ok = mulInt64(r, base); !ok {
				return Value{}, ErrOverflow
			}
		}
		if b > 1 {
			if base, ok = mulInt64(base, base); !ok {
				return Value{}, ErrOverflow
			}
		}
	}
	return Integer(r), nil
}

func powFloat(a, b float64) (Value, error) {
	if a == 0 && b < 0 {
		return Value{}, ErrDivideByZero
	}
	r := math.Pow(a, b)
	if isFinite(a) && isFinite(b) && !isFinite(r) {
		return Value{}, ErrDomain
	}
	return Float(r), nil
}

func factorial(n int64) (Value, error) {
	if n < 0 {
		return Value{}, ErrDomain
	}
	r := int64(1)
	for i := int64(2); i <= n; i++ {
		var ok bool
		if r, ok = mulInt64(r, i); !ok {
			return Value{}, ErrOverflow
		}
	}
	return Integer(r), nil
}
