// Package vmbench measures the execution backends of package vm against
// each other on a single program.
//
// Every selected backend runs concurrently in its own goroutines. Each
// worker times batches of runs and records the per-run latency in a
// t-digest; the workers' digests are merged into one per backend. The first
// result of every backend is checked against the baseline, so a report
// never compares backends that disagree.
package vmbench

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/vitalvas/exprkit/tdigest"
	"github.com/vitalvas/exprkit/vm"
	"github.com/vitalvas/exprkit/xcmd"
)

var ErrMismatch = errors.New("backend result differs from baseline")

type Config struct {
	// Iterations is the number of runs per backend.
	Iterations int `yaml:"iterations" json:"iterations" default:"100000"`

	// Batch is the number of runs timed together.
	Batch int `yaml:"batch" json:"batch" default:"100"`

	// Workers is the number of goroutines per backend.
	Workers int `yaml:"workers" json:"workers" default:"1"`

	// Backends selects backends by name; empty means all of them.
	Backends []string `yaml:"backends" json:"backends"`

	Compression float64 `yaml:"compression" json:"compression" default:"100"`

	// ProgressInterval enables periodic progress callbacks when positive.
	ProgressInterval time.Duration `yaml:"progress_interval" json:"progress_interval"`
}

// Result holds the measurements of one backend.
type Result struct {
	Backend string
	Value   float64
	Runs    int
	Elapsed time.Duration

	Mean time.Duration
	P50  time.Duration
	P90  time.Duration
	P99  time.Duration
	Min  time.Duration
	Max  time.Duration
}

// Report is the outcome of a benchmark.
type Report struct {
	Host    HostInfo
	Program vm.Program
	Results []Result
}

// Fastest returns the result with the lowest median latency.
func (r *Report) Fastest() (Result, bool) {
	if len(r.Results) == 0 {
		return Result{}, false
	}
	best := r.Results[0]
	for _, res := range r.Results[1:] {
		if res.P50 < best.P50 {
			best = res
		}
	}
	return best, true
}

// Progress is passed to the progress callback.
type Progress struct {
	Done  int64
	Total int64
}

type Option func(*Bench)

// WithProgress registers fn to be called every Config.ProgressInterval
// while the benchmark runs.
func WithProgress(fn func(Progress)) Option {
	return func(b *Bench) {
		b.progress = fn
	}
}

// Bench runs a benchmark.
type Bench struct {
	cfg      Config
	backends []vm.Backend
	progress func(Progress)
	done     atomic.Int64
}

// New validates cfg and resolves the selected backends.
func New(cfg Config, opts ...Option) (*Bench, error) {
	if cfg.Iterations <= 0 {
		return nil, fmt.Errorf("iterations must be positive, got %d", cfg.Iterations)
	}
	cfg.Batch = max(cfg.Batch, 1)
	cfg.Workers = max(cfg.Workers, 1)

	b := &Bench{cfg: cfg}
	if len(cfg.Backends) == 0 {
		b.backends = vm.Backends()
	}
	for _, name := range cfg.Backends {
		backend, err := vm.LookupBackend(name)
		if err != nil {
			return nil, err
		}
		b.backends = append(b.backends, backend)
	}

	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// Run benchmarks p. It fails if p does not run on the baseline backend, if
// any backend disagrees with the baseline, or if ctx is canceled.
func (b *Bench) Run(ctx context.Context, p vm.Program) (*Report, error) {
	if ctx.Err() != nil {
		return nil, context.Cause(ctx)
	}
	want, err := vm.Run(p)
	if err != nil {
		return nil, err
	}
	b.done.Store(0)

	results := make([]Result, len(b.backends))
	group, gctx := xcmd.ErrGroup(ctx)

	stopProgress := b.startProgress(gctx)
	for i, backend := range b.backends {
		group.Go(func(ctx context.Context) error {
			res, err := b.runBackend(ctx, backend, p, want)
			if err != nil {
				return fmt.Errorf("%s: %w", backend.Name, err)
			}
			results[i] = res
			return nil
		})
	}
	err = group.Wait()
	stopProgress()
	if err != nil {
		return nil, err
	}

	return &Report{Host: Host(), Program: p, Results: results}, nil
}

func (b *Bench) runBackend(ctx context.Context, backend vm.Backend, p vm.Program, want float64) (Result, error) {
	got, err := backend.Run(p)
	if err != nil {
		return Result{}, err
	}
	if !sameFloat(got, want) {
		return Result{}, fmt.Errorf("%w: got %v, want %v", ErrMismatch, got, want)
	}

	shares := split(b.cfg.Iterations, b.cfg.Workers)
	digests := make([]*tdigest.TDigest, len(shares))
	group, _ := xcmd.ErrGroup(ctx)

	start := time.Now()
	for w, runs := range shares {
		digests[w] = tdigest.New(b.cfg.Compression)
		group.Go(func(ctx context.Context) error {
			return b.measure(ctx, backend, p, runs, digests[w])
		})
	}
	if err := group.Wait(); err != nil {
		return Result{}, err
	}
	elapsed := time.Since(start)

	td := digests[0]
	for _, d := range digests[1:] {
		td.Merge(d)
	}

	return Result{
		Backend: backend.Name,
		Value:   got,
		Runs:    b.cfg.Iterations,
		Elapsed: elapsed,
		Mean:    duration(td.Mean()),
		P50:     td.QuantileDuration(0.5),
		P90:     td.QuantileDuration(0.9),
		P99:     td.QuantileDuration(0.99),
		Min:     duration(td.Min()),
		Max:     duration(td.Max()),
	}, nil
}

// measure performs runs executions in timed batches, recording the mean
// latency of each batch weighted by its size.
func (b *Bench) measure(ctx context.Context, backend vm.Backend, p vm.Program, runs int, td *tdigest.TDigest) error {
	for runs > 0 {
		if err := ctx.Err(); err != nil {
			return context.Cause(ctx)
		}

		n := min(runs, b.cfg.Batch)
		start := time.Now()
		for i := 0; i < n; i++ {
			if _, err := backend.Run(p); err != nil {
				return err
			}
		}
		elapsed := time.Since(start)

		td.AddWeighted(float64(elapsed)/float64(n), float64(n))
		b.done.Add(int64(n))
		runs -= n
	}
	return nil
}

func (b *Bench) startProgress(ctx context.Context) func() {
	if b.progress == nil || b.cfg.ProgressInterval <= 0 {
		return func() {}
	}

	total := int64(b.cfg.Iterations) * int64(len(b.backends))
	ctx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = xcmd.PeriodicRun(ctx, func(_ context.Context) error {
			b.progress(Progress{Done: b.done.Load(), Total: total})
			return nil
		}, b.cfg.ProgressInterval)
	}()

	return func() {
		cancel()
		wg.Wait()
	}
}

// split divides n into k nearly equal positive parts; it returns fewer
// parts when n < k.
func split(n, k int) []int {
	k = min(k, n)
	parts := make([]int, k)
	for i := range parts {
		parts[i] = n / k
		if i < n%k {
			parts[i]++
		}
	}
	return parts
}

func duration(ns float64) time.Duration {
	if math.IsNaN(ns) {
		return 0
	}
	return time.Duration(math.Round(ns))
}

// sameFloat compares bit patterns, so 0 and -0 differ. Any two NaNs are
// the same.
func sameFloat(a, b float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return math.IsNaN(a) && math.IsNaN(b)
	}
	return math.Float64bits(a) == math.Float64bits(b)
}
