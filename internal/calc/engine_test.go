package calc

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Engine(t *testing.T) {
	calcTestCases{
		// end to end arithmetic
		calcTest("add").do("3 4 +").expectStack("i: 7"),
		calcTest("subtract order").do("10 3 -").expectStack("i: 7"),
		calcTest("multiply").do("6 7 *").expectStack("i: 42"),
		calcTest("floor divide").do("10 3 //").expectStack("i: 3"),
		calcTest("floor divide negative").do("-7 2 //").expectStack("i: -4"),
		calcTest("floor divide float").do("7.5 2 //").expectStack("f: 3.0"),
		calcTest("floor divide inexact float").do("1 0.1 //").expectStack("f: 9.0"),
		calcTest("floor divide negative float").do("-7.5 2 //").expectStack("f: -4.0"),
		calcTest("floor divide negative divisor").do("7.5 -2 //").expectStack("f: -4.0"),
		calcTest("floor divide small float").do("-0.5 2 //").expectStack("f: -1.0"),
		calcTest("floor divide to zero").do("0.5 2 //").expectStack("f: 0.0"),
		calcTest("true divide").do("7 2 /").expectStack("f: 3.5"),
		calcTest("true divide exact").do("6 3 /").expectStack("f: 2.0"),
		calcTest("widen").do("1 2.5 +").expectStack("f: 3.5"),
		calcTest("widen second").do("2.5 1 -").expectStack("f: 1.5"),
		calcTest("power").do("2 10 **").expectStack("i: 1024"),
		calcTest("power zero").do("5 0 **").expectStack("i: 1"),
		calcTest("power negative exponent").do("2 -1 **").expectStack("f: 0.5"),
		calcTest("power float").do("9 0.5 **").expectStack("f: 3.0"),
		calcTest("concat").do("foo bar +").expectStack("s: foobar"),
		calcTest("atan2").do("1 1 atan2").expectFloat(0, math.Pi/4),
		calcTest("atan2 order").do("1 0 atan2").expectFloat(0, math.Pi/2),

		// unary operators
		calcTest("negate").do("5 --").expectStack("i: -5"),
		calcTest("negate float").do("2.5 --").expectStack("f: -2.5"),
		calcTest("reciprocal").do("2 1/").expectStack("f: 0.5"),
		calcTest("factorial").do("5 !").expectStack("i: 120"),
		calcTest("factorial zero").do("0 !").expectStack("i: 1"),
		calcTest("factorial integral float").do("5.0 !").expectStack("i: 120"),
		calcTest("sqrt").do("16 sqrt").expectStack("f: 4.0"),
		calcTest("exp").do("0 exp").expectStack("f: 1.0"),
		calcTest("ln").do("e ln").expectFloat(0, 1),
		calcTest("loge").do("1 loge").expectStack("f: 0.0"),
		calcTest("log").do("1000 log").expectFloat(0, 3),
		calcTest("log10").do("100 log10").expectFloat(0, 2),
		calcTest("log2").do("8 log2").expectStack("f: 3.0"),
		calcTest("lg").do("1024 lg").expectStack("f: 10.0"),
		calcTest("sin pi").do("pi sin").expectFloat(0, 0),
		calcTest("cos").do("0 cos").expectStack("f: 1.0"),
		calcTest("tan").do("0 tan").expectStack("f: 0.0"),
		calcTest("asin").do("1 asin").expectFloat(0, math.Pi/2),
		calcTest("acos").do("1 acos").expectFloat(0, 0),
		calcTest("atan").do("1 atan").expectFloat(0, math.Pi/4),
		calcTest("transcendental of integer is float").do("0 sin").expectStack("f: 0.0"),

		// domain errors leave operands in place
		calcTest("divide by zero").do("1 0 /").
			expectStack("i: 0", "i: 1").expectErrors("/ error: bad arguments").expectErrorIs(ErrDivideByZero),
		calcTest("divide by float zero").do("1 0.0 /").
			expectStack("f: 0.0", "i: 1").expectErrors("/ error: bad arguments"),
		calcTest("floor divide by zero").do("1 0 //").
			expectStack("i: 0", "i: 1").expectErrors("// error: bad arguments"),
		calcTest("reciprocal of zero").do("0 1/").
			expectStack("i: 0").expectErrors("1/ error: bad arguments"),
		calcTest("negative factorial").do("-1 !").
			expectStack("i: -1").expectErrors("! error: bad arguments").expectErrorIs(ErrDomain),
		calcTest("fractional factorial").do("5.5 !").
			expectStack("f: 5.5").expectErrors("! error: bad arguments"),
		calcTest("factorial overflow").do("21 !").
			expectStack("i: 21").expectErrors("! error: bad arguments").expectErrorIs(ErrOverflow),
		calcTest("negative sqrt").do("-4 sqrt").
			expectStack("i: -4").expectErrors("sqrt error: bad arguments"),
		calcTest("log of zero").do("0 ln").
			expectStack("i: 0").expectErrors("ln error: bad arguments"),
		calcTest("log of negative").do("-1 log").
			expectStack("i: -1").expectErrors("log error: bad arguments"),
		calcTest("asin out of range").do("2 asin").
			expectStack("i: 2").expectErrors("asin error: bad arguments"),
		calcTest("exp overflow").do("1000 exp").
			expectStack("i: 1000").expectErrors("exp error: bad arguments"),
		calcTest("nan passes through").do("nan sqrt").expectStack("f: nan"),
		calcTest("integer overflow").do("9223372036854775807 1 +").
			expectStack("i: 1", "i: 9223372036854775807").expectErrors("+ error: bad arguments").expectErrorIs(ErrOverflow),
		calcTest("integer underflow").do("-9223372036854775808 1 -").
			expectErrors("- error: bad arguments"),
		calcTest("multiply overflow").do("4611686018427387904 2 *").
			expectErrors("* error: bad arguments"),
		calcTest("power overflow").do("2 63 **").
			expectStack("i: 63", "i: 2").expectErrors("** error: bad arguments"),
		calcTest("power of zero to negative").do("0 -1 **").
			expectErrors("** error: bad arguments"),
		calcTest("complex power").do("-8 0.5 **").
			expectStack("f: 0.5", "i: -8").expectErrors("** error: bad arguments"),
		calcTest("negate min").do("-9223372036854775808 --").
			expectErrors("-- error: bad arguments"),
		calcTest("text and integer").do("a 1 +").
			expectStack("i: 1", "s: a").expectErrors("+ error: bad arguments").expectErrorIs(ErrDomain),
		calcTest("text subtract").do("a b -").
			expectStack("s: b", "s: a").expectErrors("- error: bad arguments"),
		calcTest("sqrt of text").do("x sqrt").
			expectStack("s: x").expectErrors("sqrt error: bad arguments"),
		calcTest("errors do not stop the line").do("1 0 / 5").
			expectStack("i: 5", "i: 0", "i: 1").expectErrors("/ error: bad arguments"),

		// underflow
		calcTest("drop empty").do("drop").
			expectDepth(0).expectErrors("drop error: requires 1 argument"),
		calcTest("dup empty").do("dup").
			expectDepth(0).expectErrors("dup error: requires 1 argument"),
		calcTest("swap one").do("1 swap").
			expectStack("i: 1").expectErrors("swap error: requires 2 arguments"),
		calcTest("add one").do("1 +").
			expectStack("i: 1").expectErrors("+ error: requires 2 arguments"),
		calcTest("sqrt empty").do("sqrt").
			expectDepth(0).expectErrors("sqrt error: requires 1 argument"),
		calcTest("int empty").do("int").
			expectDepth(0).expectErrors("int error: requires 1 argument"),
		calcTest("float empty").do("float").
			expectDepth(0).expectErrors("float error: requires 1 argument"),
		calcTest("str empty").do("str").
			expectDepth(0).expectErrors("str error: requires 1 argument"),
		calcTest("errors in order").do("drop swap").
			expectErrors("drop error: requires 1 argument", "swap error: requires 2 arguments").
			expectErrorKind(Underflow),

		// commands
		calcTest("dup text").withStack(Text("x")).do("dup").expectStack("s: x", "s: x"),
		calcTest("drop").do("1 2 drop").expectStack("i: 1"),
		calcTest("swap").do("1 2 swap").expectStack("i: 1", "i: 2"),
		calcTest("clear").do("1 2 3 clear").expectDepth(0),
		calcTest("clear empty").do("clear").expectDepth(0),
		calcTest("depth twice").do("depth depth").expectStack("i: 1", "i: 0"),
		calcTest("int of float").do("3.7 int").expectStack("i: 3"),
		calcTest("int truncates toward zero").do("-3.7 int").expectStack("i: -3"),
		calcTest("int of text").withStack(Text(" 42 ")).do("int").expectStack("i: 42"),
		calcTest("int of text with separators").withStack(Text("-1_000")).do("int").expectStack("i: -1000"),
		calcTest("int of text with bad separators").withStack(Text("1__000")).do("int").
			expectStack("s: 1__000").expectErrors("int error, bad operand"),
		calcTest("int of bad text").do("abc int").
			expectStack("s: abc").expectErrors("int error, bad operand").expectErrorIs(ErrConversion),
		calcTest("int of inf").do("inf int").
			expectStack("f: inf").expectErrors("int error, bad operand"),
		calcTest("float of integer").do("3 float").expectStack("f: 3.0"),
		calcTest("float of text").withStack(Text("1e3")).do("float").expectStack("f: 1000.0"),
		calcTest("float of bad text").do("abc float").
			expectStack("s: abc").expectErrors("float error, bad operand"),
		calcTest("str of float").do("2.5 str").expectStack("s: 2.5"),
		calcTest("str of integer").do("0x10 str").expectStack("s: 16"),
		calcTest("str round trip").do("7 str int").expectStack("i: 7"),
		calcTest("constants").do("pi e tau inf nan").expectStack(
			"f: nan",
			"f: inf",
			"f: 6.283185307179586",
			"f: 2.718281828459045",
			"f: 3.141592653589793",
		),

		// literals
		calcTest("hex").do("0x10").expectStack("i: 16"),
		calcTest("octal").do("0o17").expectStack("i: 15"),
		calcTest("binary").do("0b101").expectStack("i: 5"),
		calcTest("negative hex").do("-0x10").expectStack("i: -16"),
		calcTest("leading zero").do("010").expectStack("f: 10.0"),
		calcTest("zeros").do("00").expectStack("i: 0"),
		calcTest("underscores").do("1_000").expectStack("i: 1000"),
		calcTest("scientific").do("1e3").expectStack("f: 1000.0"),
		calcTest("negative infinity").do("-inf").expectStack("f: -inf"),
		calcTest("signed nan").do("-nan +NaN").expectStack("f: nan", "f: nan"),
		calcTest("huge integer").do("99999999999999999999").expectStack("f: 1e+20"),
		calcTest("text").do("abc").expectStack("s: abc"),
		calcTest("bad digits").do("0b102").expectStack("s: 0b102"),
		calcTest("hex float is text").do("0x1p4").expectStack("s: 0x1p4"),

		// expression lines
		calcTest("expr precedence").do(":1 + 2 * 3").expectStack("i: 7"),
		calcTest("expr parens").do(":(1 + 2) * 3").expectStack("i: 9"),
		calcTest("expr power binds tight").do(":-2**2").expectStack("i: -4"),
		calcTest("expr power right assoc").do(":2 ** 3 ** 2").expectStack("i: 512"),
		calcTest("expr floor").do(":7 // 2").expectStack("i: 3"),
		calcTest("expr divide").do(":7 / 2").expectStack("f: 3.5"),
		calcTest("expr call").do(":sqrt(16)").expectStack("f: 4.0"),
		calcTest("expr atan2").do(":atan2(1, 1)").expectFloat(0, math.Pi/4),
		calcTest("expr constant").do(":2 * pi").expectStack("f: 6.283185307179586"),
		calcTest("expr int").do(":int(3.9)").expectStack("i: 3"),
		calcTest("expr pushes onto stack").do("1", ":2 + 2").expectStack("i: 4", "i: 1"),
		calcTest("expr domain").do(":sqrt(-1)").
			expectDepth(0).expectErrors(": error, eval failed").expectErrorKind(EvalFailed),
		calcTest("expr divide by zero").do(":1 / 0").
			expectDepth(0).expectErrors(": error, eval failed").expectErrorIs(ErrDivideByZero),
		calcTest("expr unclosed").do(":(1 + 2").
			expectDepth(0).expectErrors(": error, eval failed").expectErrorIs(ErrSyntax),
		calcTest("expr unknown").do(":foo").
			expectErrors(": error, eval failed").expectErrorIs(ErrSyntax),
		calcTest("expr no host eval").do(`:__import__("os")`).
			expectDepth(0).expectErrors(": error, eval failed"),
		calcTest("expr trailing newline").do(":1 + 1\n").expectStack("i: 2"),
	}.run(t)
}

type calcTestCases []calcTestCase

func (cts calcTestCases) run(t *testing.T) {
	{
		var exclusive []calcTestCase
		for _, ct := range cts {
			if ct.exclusive {
				exclusive = append(exclusive, ct)
			}
		}
		if len(exclusive) > 0 {
			cts = exclusive
		}
	}
	for _, ct := range cts {
		t.Run(ct.name, ct.run)
	}
}

func calcTest(name string) (ct calcTestCase) {
	ct.name = name
	return ct
}

type calcTestCase struct {
	name   string
	opts   []Option
	lines  []string
	expect []func(t *testing.T, eng *Engine, err error)

	wantErr   bool
	exclusive bool
}

func (ct calcTestCase) exclusiveTest() calcTestCase {
	ct.exclusive = true
	return ct
}

func (ct calcTestCase) withStack(values ...Value) calcTestCase {
	ct.opts = append(ct.opts, WithValues(values...))
	return ct
}

func (ct calcTestCase) do(lines ...string) calcTestCase {
	ct.lines = append(ct.lines, lines...)
	return ct
}

// expectStack checks the rendered "tag: value" of each entry, top first.
func (ct calcTestCase) expectStack(entries ...string) calcTestCase {
	ct.expect = append(ct.expect, func(t *testing.T, eng *Engine, _ error) {
		if entries == nil {
			entries = []string{}
		}
		assert.Equal(t, entries, formatEntries(eng.Values()), "expected stack values")
	})
	return ct
}

func (ct calcTestCase) expectDepth(depth int) calcTestCase {
	ct.expect = append(ct.expect, func(t *testing.T, eng *Engine, _ error) {
		assert.Equal(t, depth, eng.Depth(), "expected stack depth")
	})
	return ct
}

func (ct calcTestCase) expectFloat(i int, want float64) calcTestCase {
	ct.expect = append(ct.expect, func(t *testing.T, eng *Engine, _ error) {
		vals := eng.Values()
		require.True(t, i < len(vals), "expected a value at index %v", i)
		f, ok := vals[i].Float64()
		require.True(t, ok, "expected a float at index %v, got %v", i, vals[i].Kind())
		assert.InDelta(t, want, f, 1e-12, "expected float value at index %v", i)
	})
	return ct
}

func (ct calcTestCase) expectErrors(messages ...string) calcTestCase {
	ct.wantErr = true
	ct.expect = append(ct.expect, func(t *testing.T, _ *Engine, err error) {
		if assert.Error(t, err, "expected errors") {
			assert.Equal(t, messages, strings.Split(err.Error(), "\n"), "expected error messages")
		}
	})
	return ct
}

func (ct calcTestCase) expectErrorIs(target error) calcTestCase {
	ct.wantErr = true
	ct.expect = append(ct.expect, func(t *testing.T, _ *Engine, err error) {
		assert.True(t, errors.Is(err, target), "expected error %v to wrap %v", err, target)
	})
	return ct
}

func (ct calcTestCase) expectErrorKind(kind ErrorKind) calcTestCase {
	ct.wantErr = true
	ct.expect = append(ct.expect, func(t *testing.T, _ *Engine, err error) {
		var opErr *OpError
		if assert.True(t, errors.As(err, &opErr), "expected an OpError, got %v", err) {
			assert.Equal(t, kind, opErr.Kind, "expected error kind")
		}
	})
	return ct
}

func (ct calcTestCase) run(t *testing.T) {
	eng := New(append(ct.opts, WithLogf(t.Logf))...)
	var errs []error
	for _, line := range ct.lines {
		if err := eng.ProcessLine(line); err != nil {
			errs = append(errs, err)
		}
	}
	err := errors.Join(errs...)
	if !ct.wantErr {
		assert.NoError(t, err, "unexpected errors")
	}
	for _, expect := range ct.expect {
		expect(t, eng, err)
	}
}

func formatEntries(vals []Value) []string {
	entries := make([]string, len(vals))
	for i, v := range vals {
		entries[i] = v.Kind().Tag() + ": " + v.String()
	}
	return entries
}
