package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jcorbin/rpn/internal/calc"
	"github.com/jcorbin/rpn/internal/flushio"
	"github.com/jcorbin/rpn/internal/lineinput"
)

// LineReader supplies input lines to a session; io.EOF ends the session.
type LineReader interface {
	ReadLine() (string, error)
}

// Session drives a calculator engine from a source of lines or words,
// printing diagnostics and the stack to its output.
type Session struct {
	logging

	eng *calc.Engine
	out flushio.WriteFlusher

	in          lineinput.Input
	src         LineReader
	interactive bool

	words []string
	argv  bool
}

func (sess *Session) run(ctx context.Context) error {
	if sess.argv {
		return sess.runWords(ctx)
	}
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := sess.out.Flush(); err != nil {
			return err
		}

		line, err := sess.src.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) && sess.interactive {
				if _, werr := io.WriteString(sess.out, "\n"); werr != nil {
					return werr
				}
			}
			return err
		}
		if sess.src == &sess.in {
			sess.logf(">", "%v %q", sess.in.Last, line)
		} else {
			sess.logf(">", "%q", line)
		}

		if err := sess.report(sess.eng.ProcessLine(line)); err != nil {
			return err
		}
		if err := sess.render(); err != nil {
			return err
		}
	}
}

// runWords processes argv words one at a time, reporting each failure as
// it happens, then renders the final stack once.
func (sess *Session) runWords(ctx context.Context) error {
	for i, word := range sess.words {
		if err := ctx.Err(); err != nil {
			return err
		}
		sess.logf(">", "arg[%v] %q", i, word)
		if err := sess.report(sess.eng.ProcessWord(word)); err != nil {
			return err
		}
	}
	return sess.render()
}

// report writes any word errors as diagnostic lines; the returned error is
// only ever an output failure.
func (sess *Session) report(err error) error {
	if err == nil {
		return nil
	}
	_, werr := fmt.Fprintln(sess.out, err)
	return werr
}

func (sess *Session) render() error {
	dump := stackDumper{out: sess.out}
	if err := dump.dump(sess.eng.Values()); err != nil {
		return err
	}
	return sess.out.Flush()
}

func (sess *Session) engineLogf(mess string, args ...interface{}) {
	sess.logf("|", mess, args...)
}

type logging struct {
	logfn func(mess string, args ...interface{})

	markWidth int
}

func (log *logging) logf(mark, mess string, args ...interface{}) {
	if log.logfn == nil {
		return
	}
	if n := log.markWidth - len(mark); n > 0 {
		mark = strings.Repeat(" ", n) + mark
	} else if n < 0 {
		log.markWidth = len(mark)
	}
	if len(args) > 0 {
		mess = fmt.Sprintf(mess, args...)
	}
	log.logfn("%v %v", mark, mess)
}
