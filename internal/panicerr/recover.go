// Package panicerr turns a panic or runtime.Goexit on a calculator session's
// goroutine into an error the command can report.
package panicerr

import "runtime/debug"

// Recover runs f on its own goroutine and waits for it to finish. A panic
// comes back as an error matched by IsPanic, carrying the stack where it
// happened; a runtime.Goexit comes back as one matched by IsExit. The name
// labels either message.
func Recover(name string, f func() error) (err error) {
	done := make(chan struct{})
	go func() {
		defer close(done)
		returned := false
		defer func() {
			if r := recover(); r != nil {
				err = panicError{name: name, value: r, stack: debug.Stack()}
			} else if !returned {
				err = exitError(name)
			}
		}()
		err = f()
		returned = true
	}()
	<-done
	return err
}
