package calc

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Engine owns a stack and applies words to it.
type Engine struct {
	stack Stack
	logfn func(mess string, args ...interface{})
}

// Option configures an Engine.
type Option func(eng *Engine)

// WithLogf sets a function to receive a trace line for every word.
func WithLogf(logfn func(mess string, args ...interface{})) Option {
	return func(eng *Engine) { eng.logfn = logfn }
}

// WithValues seeds the stack; values are given top first.
func WithValues(values ...Value) Option {
	return func(eng *Engine) {
		for i := len(values) - 1; i >= 0; i-- {
			eng.stack.Push(values[i])
		}
	}
}

// New creates an engine with an empty stack.
func New(opts ...Option) *Engine {
	var eng Engine
	for _, opt := range opts {
		if opt != nil {
			opt(&eng)
		}
	}
	return &eng
}

func (eng *Engine) logf(mess string, args ...interface{}) {
	if eng.logfn != nil {
		eng.logfn(mess, args...)
	}
}

// Depth returns the number of values on the stack.
func (eng *Engine) Depth() int { return eng.stack.Depth() }

// Values returns a snapshot of the stack, top first.
func (eng *Engine) Values() []Value { return eng.stack.Values() }

// ProcessLine applies every whitespace separated word in line, left to
// right. A line starting with ":" is instead evaluated as an infix
// expression whose result is pushed. Errors from individual words are
// joined in order; a failing word never stops the words after it.
func (eng *Engine) ProcessLine(line string) error {
	if expr, ok := strings.CutPrefix(line, ":"); ok {
		return eng.evalLine(strings.TrimRight(expr, "\r\n"))
	}
	var errs []error
	for _, word := range strings.Fields(line) {
		if err := eng.ProcessWord(word); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (eng *Engine) evalLine(expr string) error {
	v, err := Eval(expr)
	if err != nil {
		eng.logf("eval %q: %v", expr, err)
		return &OpError{Word: ":", Kind: EvalFailed, Err: err}
	}
	eng.logf("eval %q -> %v", expr, v)
	eng.stack.Push(v)
	return nil
}

// ProcessWord applies a single word. Lookup order is: a unary operator
// for the top value's kind, a binary operator for the top two values'
// kinds, a named command, and finally a literal push.
func (eng *Engine) ProcessWord(word string) error {
	err := eng.processWord(word)
	if err != nil {
		var opErr *OpError
		if errors.As(err, &opErr) && opErr.Err != nil {
			eng.logf("%v %v: %v", word, opErr.Kind, opErr.Err)
		}
	}
	return err
}

func (eng *Engine) processWord(word string) error {
	depth := eng.stack.Depth()

	if depth >= 1 {
		a := eng.stack.Peek(0)
		if fn, ok := lookupUnary(word, a); ok {
			eng.logf("unary %v %v", word, a.kind)
			r, err := fn(a)
			if err != nil {
				return domainError(word, err)
			}
			eng.stack.Set(0, r)
			return nil
		}
	}

	if depth >= 2 {
		a, b := eng.stack.Peek(1), eng.stack.Peek(0)
		if fn, ok := lookupBinary(word, a, b); ok {
			eng.logf("binary %v %v %v", a.kind, b.kind, word)
			r, err := fn(a, b)
			if err != nil {
				return domainError(word, err)
			}
			eng.stack.Pop()
			eng.stack.Set(0, r)
			return nil
		}
	}

	if cmd, ok := commands[word]; ok {
		eng.logf("command %v", word)
		return cmd(eng, word)
	}

	if need, ok := arity[word]; ok {
		if depth < need {
			return underflowError(word, need)
		}
		kinds := make([]Kind, need)
		for i := range kinds {
			kinds[i] = eng.stack.Peek(need - 1 - i).kind
		}
		return domainError(word, kindError{word, kinds})
	}

	v := ParseLiteral(word)
	eng.logf("push %v %v", v.kind, v)
	eng.stack.Push(v)
	return nil
}

//// Commands

// commands maps stack manipulation words to their implementation; each is
// given the word it was invoked as for error reporting.
var commands map[string]func(eng *Engine, word string) error

// constants are the floating point values pushed by name.
var constants = map[string]float64{
	"pi":  math.Pi,
	"e":   math.E,
	"tau": 2 * math.Pi,
	"inf": math.Inf(1),
	"nan": math.NaN(),
}

func init() {
	commands = map[string]func(eng *Engine, word string) error{
		"dup":   (*Engine).dup,
		"drop":  (*Engine).drop,
		"swap":  (*Engine).swap,
		"depth": (*Engine).depth,
		"clear": (*Engine).clear,
		"int":   convertCommand(toInteger),
		"float": convertCommand(toFloat),
		"str":   convertCommand(toText),
	}
	for name, f := range constants {
		f := f
		commands[name] = func(eng *Engine, _ string) error {
			eng.stack.Push(Float(f))
			return nil
		}
	}
}

// Name   Function
// dup    push a copy of the top value
func (eng *Engine) dup(word string) error {
	if eng.stack.Depth() < 1 {
		return underflowError(word, 1)
	}
	eng.stack.Push(eng.stack.Peek(0))
	return nil
}

// Name   Function
// drop   discard the top value
func (eng *Engine) drop(word string) error {
	if eng.stack.Depth() < 1 {
		return underflowError(word, 1)
	}
	eng.stack.Pop()
	return nil
}

// Name   Function
// swap   exchange the top two values
func (eng *Engine) swap(word string) error {
	if eng.stack.Depth() < 2 {
		return underflowError(word, 2)
	}
	a, b := eng.stack.Peek(1), eng.stack.Peek(0)
	eng.stack.Set(0, a)
	eng.stack.Set(1, b)
	return nil
}

// Name   Function
// depth  push the number of values on the stack, measured before the push
func (eng *Engine) depth(string) error {
	eng.stack.Push(Integer(int64(eng.stack.Depth())))
	return nil
}

// Name   Function
// clear  discard every value
func (eng *Engine) clear(string) error {
	eng.stack.Clear()
	return nil
}

// convertCommand builds a command replacing the top value with its
// conversion. The depth is checked before any conversion is attempted.
func convertCommand(convert func(Value) (Value, error)) func(eng *Engine, word string) error {
	return func(eng *Engine, word string) error {
		if eng.stack.Depth() < 1 {
			return underflowError(word, 1)
		}
		r, err := convert(eng.stack.Peek(0))
		if err != nil {
			return domainError(word, err)
		}
		eng.stack.Set(0, r)
		return nil
	}
}

// toInteger truncates floats toward zero and parses text as a decimal
// integer, digit separators included.
func toInteger(v Value) (Value, error) {
	switch v.kind {
	case IntegerKind:
		return v, nil
	case FloatKind:
		t := math.Trunc(v.f)
		if !isFinite(t) || t < math.MinInt64 || t >= math.MaxInt64 {
			return Value{}, fmt.Errorf("%w: %v out of integer range", ErrConversion, formatFloat(v.f))
		}
		return Integer(int64(t)), nil
	case TextKind:
		n, err := parseDecimal(v.s)
		if err != nil {
			return Value{}, fmt.Errorf("%w: %v", ErrConversion, err)
		}
		return Integer(n), nil
	}
	return Value{}, ErrConversion
}

// toFloat widens integers and parses text with the literal float rules.
func toFloat(v Value) (Value, error) {
	switch v.kind {
	case IntegerKind:
		return Float(float64(v.i)), nil
	case FloatKind:
		return v, nil
	case TextKind:
		f, ok := parseFloat(strings.TrimSpace(v.s))
		if !ok {
			return Value{}, fmt.Errorf("%w: %q is not a float", ErrConversion, v.s)
		}
		return Float(f), nil
	}
	return Value{}, ErrConversion
}

// toText always succeeds.
func toText(v Value) (Value, error) { return Text(v.String()), nil }
