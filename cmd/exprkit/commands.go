package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/vitalvas/exprkit/expr"
	"github.com/vitalvas/exprkit/regex"
	"github.com/vitalvas/exprkit/vm"
	"github.com/vitalvas/exprkit/vmbench"
	"github.com/vitalvas/exprkit/xcmd"
)

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func (a *app) eval(args []string) error {
	fs := a.newFlagSet("eval")
	simplify := fs.Bool("simplify", a.cfg.Simplify, "simplify before compiling")
	backendName := fs.String("backend", a.cfg.Backend, "execution backend: "+strings.Join(vm.BackendNames(), ", "))

	src, err := parseExprArgs(fs, args)
	if err != nil {
		return err
	}
	backend, err := vm.LookupBackend(*backendName)
	if err != nil {
		return err
	}

	e, err := expr.Parse(src)
	if err != nil {
		return err
	}
	if *simplify {
		var passes int
		e, passes = expr.SimplifyTrace(e)
		a.logger.Debug("simplified", "expr", e.String(), "passes", passes)
	}

	p := vm.Compile(e)
	result, err := backend.Run(p)
	if err != nil {
		return err
	}
	a.logger.Debug("evaluated", "backend", backend.Name, "ops", len(p), "result", result)

	fmt.Fprintln(a.stdout, formatFloat(result))
	return nil
}

func (a *app) simplify(args []string) error {
	fs := a.newFlagSet("simplify")
	verbose := fs.Bool("v", false, "print the number of passes")

	src, err := parseExprArgs(fs, args)
	if err != nil {
		return err
	}
	e, err := expr.Parse(src)
	if err != nil {
		return err
	}

	simplified, passes := expr.SimplifyTrace(e)
	a.logger.Debug("simplified", "before", expr.Size(e), "after", expr.Size(simplified), "passes", passes)

	fmt.Fprintln(a.stdout, simplified)
	if *verbose {
		fmt.Fprintf(a.stdout, "passes: %d\n", passes)
	}
	return nil
}

func (a *app) compile(args []string) error {
	fs := a.newFlagSet("compile")
	fused := fs.Bool("fused", false, "apply superinstruction fusion")
	bytecode := fs.Bool("bytecode", false, "print the compact encoding")

	src, err := parseExprArgs(fs, args)
	if err != nil {
		return err
	}
	e, err := expr.Parse(src)
	if err != nil {
		return err
	}

	p := vm.Compile(e)
	if *fused {
		p = vm.Fuse(p)
	}
	a.logger.Debug("compiled", "ops", len(p), "fused", *fused)

	if *bytecode {
		b := vm.Encode(p)
		fmt.Fprintf(a.stdout, "code:   % x\n", b.Code)
		consts := make([]string, len(b.Consts))
		for i, c := range b.Consts {
			consts[i] = formatFloat(c)
		}
		fmt.Fprintf(a.stdout, "consts: [%s]\n", strings.Join(consts, " "))
		return nil
	}

	_, err = vm.Disassemble(a.stdout, p)
	return err
}

func (a *app) runFile(args []string) error {
	fs := a.newFlagSet("run")
	backendName := fs.String("backend", a.cfg.Backend, "execution backend")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if fs.NArg() != 1 {
		return errUsage
	}

	backend, err := vm.LookupBackend(*backendName)
	if err != nil {
		return err
	}

	src, err := a.readSource(fs.Arg(0))
	if err != nil {
		return err
	}
	p, err := vm.Assemble(src)
	if err != nil {
		return err
	}
	depth, err := vm.MaxDepth(p)
	if err != nil {
		return err
	}

	result, err := backend.Run(p)
	if err != nil {
		return err
	}
	a.logger.Debug("evaluated", "backend", backend.Name, "ops", len(p), "depth", depth, "result", result)

	fmt.Fprintln(a.stdout, formatFloat(result))
	return nil
}

// readSource reads a named file, or stdin for "-".
func (a *app) readSource(name string) (string, error) {
	if name == "-" {
		data, err := io.ReadAll(a.stdin)
		return string(data), err
	}
	data, err := os.ReadFile(name)
	return string(data), err
}

func (a *app) match(args []string) error {
	return a.matchWith(args, func(m *regex.Matcher, input string) bool {
		return m.Match(input)
	})
}

func (a *app) search(args []string) error {
	return a.matchWith(args, func(m *regex.Matcher, input string) bool {
		return m.Search(input)
	})
}

func (a *app) matchWith(args []string, test func(*regex.Matcher, string) bool) error {
	if len(args) != 2 {
		return errUsage
	}

	r, err := regex.Parse(args[0])
	if err != nil {
		return err
	}
	m := regex.Compile(r)
	ok := test(m, args[1])
	a.logger.Debug("matched", "pattern", r.String(), "input", args[1], "result", ok)

	fmt.Fprintln(a.stdout, ok)
	return nil
}

func (a *app) bench(args []string) error {
	cfg := a.cfg.Bench

	fs := a.newFlagSet("bench")
	fs.IntVar(&cfg.Iterations, "n", cfg.Iterations, "runs per backend")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "goroutines per backend")
	fs.IntVar(&cfg.Batch, "batch", cfg.Batch, "runs per timed batch")
	backends := fs.String("backends", strings.Join(cfg.Backends, ","), "comma separated backends, empty for all")
	fs.DurationVar(&cfg.ProgressInterval, "progress", cfg.ProgressInterval, "progress log interval, 0 to disable")

	src, err := parseExprArgs(fs, args)
	if err != nil {
		return err
	}
	cfg.Backends = nil
	for _, name := range strings.Split(*backends, ",") {
		if name = strings.TrimSpace(name); name != "" {
			cfg.Backends = append(cfg.Backends, name)
		}
	}

	e, err := expr.Parse(src)
	if err != nil {
		return err
	}

	b, err := vmbench.New(cfg, vmbench.WithProgress(func(p vmbench.Progress) {
		a.logger.Info("benchmark progress", "done", p.Done, "total", p.Total)
	}))
	if err != nil {
		return err
	}

	ctx, stop := xcmd.WithSignals(context.Background())
	defer stop()

	start := time.Now()
	report, err := b.Run(ctx, vm.Compile(e))
	if err != nil {
		return err
	}
	a.logger.Info("benchmark finished", "backends", len(report.Results), "elapsed", time.Since(start))

	return report.WriteTable(a.stdout)
}
