package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/peterh/liner"
)

// linerReader reads lines interactively with editing and history. Ctrl-C
// abandons the line being edited; Ctrl-D ends input.
type linerReader struct {
	state   *liner.State
	prompt  string
	history string
}

// newLinerReader returns a usable reader even when the history file could
// not be loaded; that failure is returned alongside it.
func newLinerReader(prompt, history string) (*linerReader, error) {
	lr := &linerReader{
		state:   liner.NewLiner(),
		prompt:  prompt,
		history: history,
	}
	lr.state.SetCtrlCAborts(true)
	return lr, loadHistory(lr.state, lr.history)
}

type historyLoader interface {
	ReadHistory(r io.Reader) (int, error)
}

// loadHistory reads a history file into h; a missing file is not an error.
func loadHistory(h historyLoader, path string) error {
	if path == "" {
		return nil
	}
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	} else if err != nil {
		return fmt.Errorf("history: %w", err)
	}
	defer f.Close()
	if _, err := h.ReadHistory(f); err != nil {
		return fmt.Errorf("history %v: %w", path, err)
	}
	return nil
}

func (lr *linerReader) ReadLine() (string, error) {
	for {
		line, err := lr.state.Prompt(lr.prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(line) != "" {
			lr.state.AppendHistory(line)
		}
		return line, nil
	}
}

// Close saves history and restores the terminal.
func (lr *linerReader) Close() (err error) {
	if lr.history != "" {
		if f, ferr := os.Create(lr.history); ferr == nil {
			_, err = lr.state.WriteHistory(f)
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}
	}
	if cerr := lr.state.Close(); err == nil {
		err = cerr
	}
	return err
}
