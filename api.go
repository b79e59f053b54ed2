package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/jcorbin/rpn/internal/calc"
	"github.com/jcorbin/rpn/internal/panicerr"
)

// New creates a session with an empty stack. Without any input option the
// session reads nothing and only renders the empty stack.
func New(opts ...SessionOption) *Session {
	var sess Session
	sess.src = &sess.in
	defaultOptions.apply(&sess)
	SessionOptions(opts...).apply(&sess)
	sess.eng = calc.New(calc.WithLogf(sess.engineLogf))
	return &sess
}

// Run processes input until it is exhausted, the context is done, or output
// fails. End of input is not an error. A panic is returned as an error and
// its stack is traced; a line reader that exits its goroutine aborts the
// session with an error.
func (sess *Session) Run(ctx context.Context) error {
	err := panicerr.Recover("session", func() error {
		return sess.run(ctx)
	})
	switch {
	case errors.Is(err, io.EOF):
		err = nil
	case panicerr.IsPanic(err):
		sess.logf("!", "%v\n%s", err, panicerr.PanicStack(err))
	case panicerr.IsExit(err):
		err = fmt.Errorf("input aborted: %w", err)
	}
	if ferr := sess.out.Flush(); err == nil {
		err = ferr
	}
	if cerr := sess.in.Close(); err == nil {
		err = cerr
	}
	return err
}

// Values returns a snapshot of the session's stack, top first.
func (sess *Session) Values() []calc.Value { return sess.eng.Values() }

// WithInput queues a stream of lines; the stack is rendered after each line.
func WithInput(r io.Reader) SessionOption { return withInput(r) }

// WithOutput sets where diagnostics and stack renders are written.
func WithOutput(w io.Writer) SessionOption { return withOutput(w) }

// WithTee copies all output to an additional writer.
func WithTee(w io.Writer) SessionOption { return withTee(w) }

// WithPrompt reads lines from an interactive line reader; at end of input
// a trailing newline is written so the shell prompt starts on a fresh line.
func WithPrompt(lr LineReader) SessionOption { return withPrompt(lr) }

// WithWords processes the given words once, as a single flat sequence, and
// renders the stack only at the end.
func WithWords(words ...string) SessionOption { return withWords(words...) }

// WithLogf sets a trace logging function.
func WithLogf(logfn func(mess string, args ...interface{})) SessionOption { return withLogfn(logfn) }
