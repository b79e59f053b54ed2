// Package flushio provides buffered output that is flushed at well defined
// points, such as after a stack render or before a prompt.
package flushio

import (
	"bufio"
	"io"
)

// WriteFlusher is a flush-able io.Writer.
type WriteFlusher interface {
	io.Writer
	Flush() error
}

// inMemory matches bytes.Buffer and strings.Builder, which gain nothing
// from buffering.
type inMemory interface {
	io.Writer
	Len() int
	Grow(n int)
	Reset()
}

// NewWriteFlusher returns w itself when it already flushes. In memory
// buffers and io.Discard are written through with a no-op Flush; anything
// else, such as a terminal or pipe, is buffered until the next Flush.
func NewWriteFlusher(w io.Writer) WriteFlusher {
	switch impl := w.(type) {
	case WriteFlusher:
		return impl
	case inMemory:
		return writeThrough{w}
	}
	if w == io.Discard {
		return writeThrough{w}
	}
	return bufio.NewWriter(w)
}

type writeThrough struct{ io.Writer }

func (writeThrough) Flush() error { return nil }
