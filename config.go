package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the settings that may come from a YAML file:
//
//	prompt: "> "
//	history: ~/.rpn_history
//	trace: false
type Config struct {
	Prompt  string `yaml:"prompt"`
	History string `yaml:"history"`
	Trace   bool   `yaml:"trace"`
}

func defaultConfig() Config {
	return Config{
		Prompt:  "> ",
		History: "~/.rpn_history",
	}
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "rpn", "config.yaml")
}

// Load reads the YAML file at path over cfg; a missing file leaves cfg as
// it was.
func (cfg *Config) Load(path string) error {
	if path == "" {
		return nil
	}
	f, err := os.Open(expandHome(path))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	} else if err != nil {
		return err
	}
	defer f.Close()
	if err := cfg.Decode(f); err != nil {
		return fmt.Errorf("config %v: %w", path, err)
	}
	return nil
}

// Decode reads YAML from r over cfg, rejecting unknown keys. Empty input is
// not an error.
func (cfg *Config) Decode(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// HistoryPath returns the history file with any leading "~/" expanded.
func (cfg Config) HistoryPath() string { return expandHome(cfg.History) }

func expandHome(path string) string {
	if rest, ok := strings.CutPrefix(path, "~/"); ok {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, rest)
		}
	}
	return path
}
