package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/jcorbin/rpn/internal/calc"
	"github.com/jcorbin/rpn/internal/logio"
)

func main() {
	os.Exit(run())
}

func run() (code int) {
	ctx := context.Background()

	var log logio.Logger
	log.SetOutput(os.Stderr)

	var (
		configPath string
		timeout    time.Duration
		trace      bool
		prompt     string
		history    string
		noHistory  bool
	)
	cfg := defaultConfig()
	flag.StringVar(&configPath, "config", defaultConfigPath(), "YAML config file")
	flag.DurationVar(&timeout, "timeout", 0, "specify a time limit")
	flag.BoolVar(&trace, "trace", false, "enable trace logging")
	flag.StringVar(&prompt, "prompt", cfg.Prompt, "interactive prompt")
	flag.StringVar(&history, "history", cfg.History, "interactive history file")
	flag.BoolVar(&noHistory, "no-history", false, "do not load or save interactive history")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %v [flags] [--] [word ...]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flagArgs, words := splitArgs(flag.CommandLine, os.Args[1:])
	if err := flag.CommandLine.Parse(flagArgs); err != nil {
		return 2
	}
	words = append(append([]string(nil), flag.Args()...), words...)

	if err := cfg.Load(configPath); err != nil {
		log.ErrorIf(err)
		return log.ExitCode()
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "trace":
			cfg.Trace = trace
		case "prompt":
			cfg.Prompt = prompt
		case "history":
			cfg.History = history
		}
	})
	if noHistory {
		cfg.History = ""
	}

	var opts = []SessionOption{
		WithOutput(os.Stdout),
	}
	if cfg.Trace {
		opts = append(opts, WithLogf(log.Leveledf("TRACE")))
	}
	switch {
	case len(words) > 0:
		opts = append(opts, WithWords(words...))
	case term.IsTerminal(int(os.Stdin.Fd())):
		lr, err := newLinerReader(cfg.Prompt, cfg.HistoryPath())
		if err != nil {
			log.Printf("WARN", "%v", err)
		}
		defer func() {
			log.ErrorIf(lr.Close())
			code = log.ExitCode()
		}()
		opts = append(opts, WithPrompt(lr))
	default:
		opts = append(opts, WithInput(os.Stdin))
	}
	sess := New(opts...)

	if timeout != 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	log.ErrorIf(sess.Run(ctx))
	return log.ExitCode()
}

// splitArgs separates leading flags from calculator words. Words start at
// the first argument that is not a flag: one without a leading "-", a
// number such as -3 or -inf, or anything after "--". A flag that takes a
// value consumes the following argument.
func splitArgs(fs *flag.FlagSet, args []string) (flagArgs, words []string) {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--":
			return args[:i], args[i+1:]
		case len(arg) < 2 || arg[0] != '-':
			return args[:i], args[i:]
		case calc.ParseLiteral(arg).Kind() != calc.TextKind:
			return args[:i], args[i:]
		}
		name := strings.TrimLeft(arg, "-")
		if strings.ContainsRune(name, '=') {
			continue
		}
		f := fs.Lookup(name)
		if f == nil {
			// left for fs.Parse to report
			continue
		}
		if bf, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && bf.IsBoolFlag() {
			continue
		}
		i++
	}
	return args, nil
}
