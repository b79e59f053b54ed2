package panicerr

import (
	"errors"
	"fmt"
)

// exitError names a goroutine that ended through runtime.Goexit rather than
// returning.
type exitError string

func (name exitError) Error() string {
	if name == "" {
		return "exited without returning"
	}
	return fmt.Sprintf("%v exited without returning", string(name))
}

// IsExit reports whether err came from a recovered runtime.Goexit.
func IsExit(err error) bool {
	var xe exitError
	return errors.As(err, &xe)
}
