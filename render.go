package main

import (
	"fmt"
	"io"

	"github.com/jcorbin/rpn/internal/calc"
)

// stackDumper writes one line per stack entry, "index: tag: value", with
// the deepest entry first and the top of the stack (index 0) last.
type stackDumper struct {
	out io.Writer

	indexWidth int
	tagWidth   int
}

func (dump stackDumper) dump(values []calc.Value) error {
	if dump.indexWidth == 0 {
		dump.indexWidth = 3
	}
	if dump.tagWidth == 0 {
		dump.tagWidth = 3
	}
	for i := len(values) - 1; i >= 0; i-- {
		v := values[i]
		if _, err := fmt.Fprintf(dump.out, "%*d: %*s: %v\n",
			dump.indexWidth, i,
			dump.tagWidth, v.Kind().Tag(),
			v,
		); err != nil {
			return err
		}
	}
	return nil
}
