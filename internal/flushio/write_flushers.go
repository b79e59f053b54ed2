package flushio

import "io"

// WriteFlushers tees output across every non-nil WriteFlusher given; nested
// tees are flattened. A single writer is returned as is, none yields nil.
//
// Each write and flush reaches every writer even after one of them fails,
// so that a broken copy does not starve the others of stack renders; the
// first failure is returned.
func WriteFlushers(wfs ...WriteFlusher) WriteFlusher {
	var t tee
	for _, wf := range wfs {
		switch impl := wf.(type) {
		case nil:
		case tee:
			t = append(t, impl...)
		default:
			t = append(t, wf)
		}
	}
	switch len(t) {
	case 0:
		return nil
	case 1:
		return t[0]
	}
	return t
}

type tee []WriteFlusher

func (t tee) Write(p []byte) (int, error) {
	var first error
	for _, wf := range t {
		n, err := wf.Write(p)
		if err == nil && n != len(p) {
			err = io.ErrShortWrite
		}
		if first == nil {
			first = err
		}
	}
	if first != nil {
		return 0, first
	}
	return len(p), nil
}

func (t tee) Flush() error {
	var first error
	for _, wf := range t {
		if err := wf.Flush(); first == nil {
			first = err
		}
	}
	return first
}
