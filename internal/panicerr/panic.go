package panicerr

import (
	"errors"
	"fmt"
)

type panicError struct {
	name  string
	value interface{}
	stack []byte
}

func (pe panicError) Error() string {
	if pe.name == "" {
		return fmt.Sprintf("panic: %v", pe.value)
	}
	return fmt.Sprintf("%v panicked: %v", pe.name, pe.value)
}

// Format adds the panic stack under %+v.
func (pe panicError) Format(f fmt.State, c rune) {
	fmt.Fprint(f, pe.Error())
	if c == 'v' && f.Flag('+') {
		fmt.Fprintf(f, "\n%s", pe.stack)
	}
}

// Unwrap returns the panic value when it was itself an error.
func (pe panicError) Unwrap() error {
	err, _ := pe.value.(error)
	return err
}

// IsPanic reports whether err came from a recovered panic.
func IsPanic(err error) bool {
	var pe panicError
	return errors.As(err, &pe)
}

// PanicStack returns the stack captured with a recovered panic, or "".
func PanicStack(err error) string {
	var pe panicError
	if errors.As(err, &pe) {
		return string(pe.stack)
	}
	return ""
}
