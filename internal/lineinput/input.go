// Package lineinput reads lines sequentially from a queue of input streams,
// remembering where the last line came from.
package lineinput

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Location names a line in an Input stream.
type Location struct {
	Name string
	Line int
}

func (loc Location) String() string { return fmt.Sprintf("%v:%v", loc.Name, loc.Line) }

// Input implements sequential line reading through a Queue of one or more
// input streams. Streams are closed, if they are io.Closers, once drained.
type Input struct {
	Queue []io.Reader

	// Last is the location of the line most recently returned by ReadLine.
	Last Location

	cur io.Reader
	br  *bufio.Reader
	loc Location
}

// ReadLine returns the next line without its line ending. A final line
// without a trailing newline is still returned; io.EOF is returned once
// every queued stream is exhausted.
func (in *Input) ReadLine() (string, error) {
	for {
		if in.br == nil && !in.nextIn() {
			return "", io.EOF
		}

		line, err := in.br.ReadString('\n')
		if err != nil && err != io.EOF {
			return "", err
		}
		if line != "" {
			in.loc.Line++
			in.Last = in.loc
			line = strings.TrimSuffix(line, "\n")
			line = strings.TrimSuffix(line, "\r")
			return line, nil
		}
		in.closeIn()
	}
}

// Push queues another stream after any already queued.
func (in *Input) Push(r io.Reader) { in.Queue = append(in.Queue, r) }

// Close closes the current stream and any still queued.
func (in *Input) Close() (err error) {
	in.closeIn()
	for _, r := range in.Queue {
		if cl, ok := r.(io.Closer); ok {
			if cerr := cl.Close(); err == nil {
				err = cerr
			}
		}
	}
	in.Queue = nil
	return err
}

func (in *Input) closeIn() {
	if cl, ok := in.cur.(io.Closer); ok {
		cl.Close()
	}
	in.cur = nil
	in.br = nil
}

func (in *Input) nextIn() bool {
	if len(in.Queue) == 0 {
		return false
	}
	in.cur = in.Queue[0]
	in.Queue = in.Queue[1:]
	in.br = bufio.NewReader(in.cur)
	in.loc = Location{Name: nameOf(in.cur)}
	return true
}

func nameOf(obj interface{}) string {
	if nom, ok := obj.(interface{ Name() string }); ok {
		return nom.Name()
	}
	return fmt.Sprintf("<unnamed %T>", obj)
}

// NamedReader attaches a name to r for use in Location.
func NamedReader(name string, r io.Reader) io.Reader { return namedReader{r, name} }

type namedReader struct {
	io.Reader
	name string
}

func (nr namedReader) Name() string { return nr.name }
