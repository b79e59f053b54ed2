package main

import (
	"io"

	"github.com/jcorbin/rpn/internal/flushio"
)

// SessionOption configures a Session.
type SessionOption interface{ apply(sess *Session) }

// SessionOptions combines options into one, applied in order.
func SessionOptions(opts ...SessionOption) SessionOption {
	var res sessionOptions
	for _, opt := range opts {
		switch impl := opt.(type) {
		case nil:
		case sessionOptions:
			res = append(res, impl...)
		default:
			res = append(res, opt)
		}
	}
	if len(res) == 1 {
		return res[0]
	}
	return res
}

type sessionOptions []SessionOption

func (opts sessionOptions) apply(sess *Session) {
	for _, opt := range opts {
		opt.apply(sess)
	}
}

var defaultOptions = SessionOptions(
	withOutput(io.Discard),
)

type withLogfn func(mess string, args ...interface{})

func (logfn withLogfn) apply(sess *Session) {
	sess.logfn = logfn
}

type inputOption struct{ io.Reader }
type outputOption struct{ io.Writer }
type teeOption struct{ io.Writer }
type promptOption struct{ LineReader }
type wordsOption []string

func withInput(r io.Reader) inputOption     { return inputOption{r} }
func withOutput(w io.Writer) outputOption   { return outputOption{w} }
func withTee(w io.Writer) teeOption         { return teeOption{w} }
func withPrompt(lr LineReader) promptOption { return promptOption{lr} }
func withWords(words ...string) wordsOption { return wordsOption(words) }

func (i inputOption) apply(sess *Session) {
	sess.in.Push(i.Reader)
	sess.src = &sess.in
	sess.interactive = false
}

func (p promptOption) apply(sess *Session) {
	sess.src = p.LineReader
	sess.interactive = true
}

func (o outputOption) apply(sess *Session) {
	if sess.out != nil {
		sess.out.Flush()
	}
	sess.out = flushio.NewWriteFlusher(o.Writer)
}

func (o teeOption) apply(sess *Session) {
	sess.out = flushio.WriteFlushers(sess.out, flushio.NewWriteFlusher(o.Writer))
}

func (words wordsOption) apply(sess *Session) {
	sess.words = append(sess.words, words...)
	sess.argv = true
}
