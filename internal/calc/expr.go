package calc

import (
	"fmt"
	"strings"
)

// Eval evaluates an infix arithmetic expression over numeric literals, the
// named constants, parenthesised groups, the binary operators
// + - * / // ** and calls such as sqrt(2) or atan2(y, x). Every operation
// goes through the same dispatch tables as RPN words, so the results and
// domain errors match.
//
// Precedence from loosest to tightest: + -, then * / //, then unary - +,
// then ** which is right associative and binds tighter than a unary minus
// on its left, so -2**2 is -4.
func Eval(src string) (Value, error) {
	ex := exprParser{src: src}
	ex.next()
	v, err := ex.sum()
	if err != nil {
		return Value{}, err
	}
	if ex.tok.kind != tokEOF {
		return Value{}, ex.errorf("unexpected %q", ex.tok.text)
	}
	return v, nil
}

type tokKind uint8

const (
	tokEOF tokKind = iota
	tokNumber
	tokIdent
	tokOp
	tokError
)

type exprToken struct {
	kind tokKind
	text string
	pos  int
}

type exprParser struct {
	src string
	pos int
	tok exprToken
}

func (ex *exprParser) errorf(mess string, args ...interface{}) error {
	return fmt.Errorf("%w at column %v: %v", ErrSyntax, ex.tok.pos+1, fmt.Sprintf(mess, args...))
}

// next scans the next token into ex.tok.
func (ex *exprParser) next() {
	for ex.pos < len(ex.src) && (ex.src[ex.pos] == ' ' || ex.src[ex.pos] == '\t') {
		ex.pos++
	}
	start := ex.pos
	if ex.pos >= len(ex.src) {
		ex.tok = exprToken{tokEOF, "", start}
		return
	}

	switch c := ex.src[ex.pos]; {
	case isDigit(c) || (c == '.' && ex.pos+1 < len(ex.src) && isDigit(ex.src[ex.pos+1])):
		ex.scanNumber()
		ex.tok = exprToken{tokNumber, ex.src[start:ex.pos], start}

	case isIdentStart(c):
		for ex.pos < len(ex.src) && (isIdentStart(ex.src[ex.pos]) || isDigit(ex.src[ex.pos])) {
			ex.pos++
		}
		ex.tok = exprToken{tokIdent, ex.src[start:ex.pos], start}

	case c == '*' || c == '/':
		ex.pos++
		if ex.pos < len(ex.src) && ex.src[ex.pos] == c {
			ex.pos++
		}
		ex.tok = exprToken{tokOp, ex.src[start:ex.pos], start}

	case strings.IndexByte("+-(),", c) >= 0:
		ex.pos++
		ex.tok = exprToken{tokOp, ex.src[start:ex.pos], start}

	default:
		ex.pos++
		ex.tok = exprToken{tokError, ex.src[start:ex.pos], start}
	}
}

// scanNumber consumes a numeric literal, including a signed exponent on
// decimal literals; the text is validated by parseNumber.
func (ex *exprParser) scanNumber() {
	start := ex.pos
	hex := strings.HasPrefix(ex.src[start:], "0x") || strings.HasPrefix(ex.src[start:], "0X")
	for ex.pos < len(ex.src) {
		c := ex.src[ex.pos]
		switch {
		case isDigit(c) || isIdentStart(c) || c == '.':
			ex.pos++
		case (c == '+' || c == '-') && !hex && ex.pos > start && (ex.src[ex.pos-1] == 'e' || ex.src[ex.pos-1] == 'E'):
			ex.pos++
		default:
			return
		}
	}
}

func isIdentStart(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func (ex *exprParser) isOp(op string) bool {
	return ex.tok.kind == tokOp && ex.tok.text == op
}

// sum := product { ("+" | "-") product }
func (ex *exprParser) sum() (Value, error) {
	a, err := ex.product()
	for err == nil && (ex.isOp("+") || ex.isOp("-")) {
		op := ex.tok.text
		ex.next()
		var b Value
		if b, err = ex.product(); err == nil {
			a, err = applyBinary(op, a, b)
		}
	}
	return a, err
}

// product := factor { ("*" | "/" | "//") factor }
func (ex *exprParser) product() (Value, error) {
	a, err := ex.factor()
	for err == nil && (ex.isOp("*") || ex.isOp("/") || ex.isOp("//")) {
		op := ex.tok.text
		ex.next()
		var b Value
		if b, err = ex.factor(); err == nil {
			a, err = applyBinary(op, a, b)
		}
	}
	return a, err
}

// factor := ("-" | "+") factor | power
func (ex *exprParser) factor() (Value, error) {
	switch {
	case ex.isOp("-"):
		ex.next()
		a, err := ex.factor()
		if err != nil {
			return Value{}, err
		}
		return applyUnary("--", a)
	case ex.isOp("+"):
		ex.next()
		return ex.factor()
	}
	return ex.power()
}

// power := primary [ "**" factor ]
func (ex *exprParser) power() (Value, error) {
	a, err := ex.primary()
	if err == nil && ex.isOp("**") {
		ex.next()
		var b Value
		if b, err = ex.factor(); err == nil {
			a, err = applyBinary("**", a, b)
		}
	}
	return a, err
}

// primary := number | constant | name "(" args ")" | "(" sum ")"
func (ex *exprParser) primary() (Value, error) {
	switch tok := ex.tok; tok.kind {
	case tokNumber:
		v, ok := parseNumber(tok.text)
		if !ok {
			return Value{}, ex.errorf("malformed number %q", tok.text)
		}
		ex.next()
		return v, nil

	case tokIdent:
		ex.next()
		if !ex.isOp("(") {
			if f, ok := constants[tok.text]; ok {
				return Float(f), nil
			}
			return Value{}, fmt.Errorf("%w: unknown name %q", ErrSyntax, tok.text)
		}
		ex.next()
		args, err := ex.args()
		if err != nil {
			return Value{}, err
		}
		return call(tok.text, args)

	case tokOp:
		if tok.text == "(" {
			ex.next()
			v, err := ex.sum()
			if err != nil {
				return Value{}, err
			}
			if !ex.isOp(")") {
				return Value{}, ex.errorf("missing )")
			}
			ex.next()
			return v, nil
		}
	case tokEOF:
		return Value{}, ex.errorf("unexpected end of expression")
	}
	return Value{}, ex.errorf("unexpected %q", ex.tok.text)
}

// args := [ sum { "," sum } ] ")"
func (ex *exprParser) args() ([]Value, error) {
	var args []Value
	if ex.isOp(")") {
		ex.next()
		return args, nil
	}
	for {
		v, err := ex.sum()
		if err != nil {
			return nil, err
		}
		args = append(args, v)
		switch {
		case ex.isOp(","):
			ex.next()
		case ex.isOp(")"):
			ex.next()
			return args, nil
		default:
			return nil, ex.errorf("expected , or )")
		}
	}
}

// call applies a named function: any unary operator spelled as a name, the
// binary atan2, or the int and float conversions.
func call(name string, args []Value) (Value, error) {
	switch name {
	case "int", "float":
		if len(args) != 1 {
			return Value{}, fmt.Errorf("%w: %v takes 1 argument, got %v", ErrSyntax, name, len(args))
		}
		if name == "int" {
			return toInteger(args[0])
		}
		return toFloat(args[0])
	}
	switch need, ok := arity[name]; {
	case !ok || !isIdentStart(name[0]):
		return Value{}, fmt.Errorf("%w: unknown function %q", ErrSyntax, name)
	case len(args) != need:
		return Value{}, fmt.Errorf("%w: %v takes %v argument(s), got %v", ErrSyntax, name, need, len(args))
	case need == 1:
		return applyUnary(name, args[0])
	default:
		return applyBinary(name, args[0], args[1])
	}
}

func applyUnary(sym string, a Value) (Value, error) {
	fn, ok := lookupUnary(sym, a)
	if !ok {
		return Value{}, kindError{sym, []Kind{a.kind}}
	}
	return fn(a)
}

func applyBinary(sym string, a, b Value) (Value, error) {
	fn, ok := lookupBinary(sym, a, b)
	if !ok {
		return Value{}, kindError{sym, []Kind{a.kind, b.kind}}
	}
	return fn(a, b)
}
