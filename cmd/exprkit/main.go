// Command exprkit evaluates, simplifies, compiles and benchmarks arithmetic
// expressions, and matches input against derivative-based regular
// expressions.
//
//	exprkit [-config FILE] [-log-level LEVEL] [-log-type text|json] COMMAND [ARGS]
//
// Commands:
//
//	eval [-simplify] [-backend NAME] EXPR
//	simplify [-v] EXPR
//	compile [-fused] [-bytecode] EXPR
//	run [-backend NAME] FILE
//	match PATTERN INPUT
//	search PATTERN INPUT
//	bench [-n N] [-workers N] [-backends a,b] EXPR
//
// Configuration is read from the -config file and from EXPRKIT_*
// environment variables; flags take precedence.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/vitalvas/exprkit/xlogger"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

var errUsage = errors.New("usage")

type app struct {
	cfg    Config
	logger *slog.Logger
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

type command struct {
	usage string
	run   func(a *app, args []string) error
}

var commands = map[string]command{
	"eval":     {"eval [-simplify] [-backend NAME] EXPR", (*app).eval},
	"simplify": {"simplify [-v] EXPR", (*app).simplify},
	"compile":  {"compile [-fused] [-bytecode] EXPR", (*app).compile},
	"run":      {"run [-backend NAME] FILE", (*app).runFile},
	"match":    {"match PATTERN INPUT", (*app).match},
	"search":   {"search PATTERN INPUT", (*app).search},
	"bench":    {"bench [-n N] [-workers N] [-backends a,b] EXPR", (*app).bench},
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("exprkit", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configFile := fs.String("config", "", "configuration file (.yaml, .yml or .json)")
	logLevel := fs.String("log-level", "", "log level: debug, info, warn or error")
	logType := fs.String("log-type", "", "log format: text or json")
	fs.Usage = func() { usage(fs) }

	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	cfg, err := loadConfig(*configFile)
	if err != nil {
		fmt.Fprintf(stderr, "exprkit: %v\n", err)
		return exitError
	}
	if *logLevel != "" {
		cfg.Logger.Level = *logLevel
	}
	if *logType != "" {
		cfg.Logger.LogType = *logType
	}
	if err := cfg.Logger.Validate(); err != nil {
		fmt.Fprintf(stderr, "exprkit: %v\n", err)
		return exitUsage
	}

	if fs.NArg() == 0 {
		fs.Usage()
		return exitUsage
	}
	cmd, ok := commands[fs.Arg(0)]
	if !ok {
		fmt.Fprintf(stderr, "exprkit: unknown command %q\n", fs.Arg(0))
		fs.Usage()
		return exitUsage
	}

	a := &app{
		cfg:    cfg,
		logger: xlogger.NewWriter(stderr, cfg.Logger),
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
	}

	err = cmd.run(a, fs.Args()[1:])
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errUsage), errors.Is(err, flag.ErrHelp):
		fmt.Fprintf(stderr, "usage: exprkit %s\n", cmd.usage)
		return exitUsage
	default:
		a.logger.Error("command failed", "command", fs.Arg(0), "error", err)
		return exitError
	}
}

func usage(fs *flag.FlagSet) {
	out := fs.Output()
	fmt.Fprintln(out, "usage: exprkit [flags] COMMAND [ARGS]")
	fmt.Fprintln(out, "\nflags:")
	fs.PrintDefaults()
	fmt.Fprintln(out, "\ncommands:")

	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(out, "  %s\n", commands[name].usage)
	}
}

// newFlagSet returns a subcommand flag set that reports errors instead of
// exiting, and prints nothing by itself.
func (a *app) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

// parseExprArgs parses fs and joins the remaining arguments into one
// expression, so "exprkit eval 1 + 2" works without quoting.
func parseExprArgs(fs *flag.FlagSet, args []string) (string, error) {
	if err := fs.Parse(args); err != nil {
		return "", fmt.Errorf("%w: %v", errUsage, err)
	}
	if fs.NArg() == 0 {
		return "", errUsage
	}
	return strings.Join(fs.Args(), " "), nil
}
