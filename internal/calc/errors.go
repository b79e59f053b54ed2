package calc

import (
	"errors"
	"fmt"
)

// Causes wrapped by OpError.
var (
	ErrDivideByZero = errors.New("division by zero")
	ErrDomain       = errors.New("operand out of domain")
	ErrOverflow     = errors.New("integer overflow")
	ErrConversion   = errors.New("conversion failed")
	ErrSyntax       = errors.New("syntax error")
)

// ErrorKind classifies an OpError.
type ErrorKind uint8

// Error kinds; none of them abort processing of later words.
const (
	// Underflow means a word needed more operands than the stack held.
	Underflow ErrorKind = iota + 1

	// Domain means the operands were present but not acceptable: wrong
	// kinds, a zero divisor, a negative square root, a failed conversion.
	Domain

	// EvalFailed means a ":" expression line failed to parse or evaluate.
	EvalFailed
)

func (k ErrorKind) String() string {
	switch k {
	case Underflow:
		return "underflow"
	case Domain:
		return "domain"
	case EvalFailed:
		return "eval"
	}
	return fmt.Sprintf("ErrorKind(%d)", uint8(k))
}

// OpError reports a word that could not be applied. The stack is left as
// it was before the word.
type OpError struct {
	Word string
	Kind ErrorKind
	Need int   // operand count, for Underflow
	Err  error // cause, for Domain and EvalFailed
}

func (err *OpError) Error() string {
	switch err.Kind {
	case Underflow:
		if err.Need == 1 {
			return fmt.Sprintf("%v error: requires 1 argument", err.Word)
		}
		return fmt.Sprintf("%v error: requires %v arguments", err.Word, err.Need)
	case EvalFailed:
		return fmt.Sprintf("%v error, eval failed", err.Word)
	}
	if errors.Is(err.Err, ErrConversion) {
		return fmt.Sprintf("%v error, bad operand", err.Word)
	}
	return fmt.Sprintf("%v error: bad arguments", err.Word)
}

func (err *OpError) Unwrap() error { return err.Err }

func underflowError(word string, need int) error {
	return &OpError{Word: word, Kind: Underflow, Need: need}
}

func domainError(word string, cause error) error {
	return &OpError{Word: word, Kind: Domain, Err: cause}
}

// kindError is the cause used when no operator is defined for the operand
// kinds at hand.
type kindError struct {
	op    string
	kinds []Kind
}

func (err kindError) Error() string {
	return fmt.Sprintf("%v is not defined for %v", err.op, err.kinds)
}

func (err kindError) Is(target error) bool { return target == ErrDomain }
