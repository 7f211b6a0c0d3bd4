package xcmd

import (
	"context"
	"sync"
	"sync/atomic"
)

// Group runs goroutines that share a context. The first goroutine to fail
// cancels the context for all the others, and its error is returned by
// Wait.
type Group struct {
	ctx     context.Context
	cancel  context.CancelCauseFunc
	wg      sync.WaitGroup
	sem     chan struct{}
	errOnce sync.Once
	err     error
	skipped atomic.Bool
}

// ErrGroup returns a new Group and the Context its goroutines receive. The
// Context is canceled by the first error, or by Wait once every goroutine
// has returned.
func ErrGroup(ctx context.Context) (*Group, context.Context) {
	ctx, cancel := context.WithCancelCause(ctx)
	return &Group{ctx: ctx, cancel: cancel}, ctx
}

// SetLimit bounds the number of goroutines running at once. Go blocks while
// the limit is reached. A limit of zero or less removes the bound. SetLimit
// must be called before the first Go.
func (g *Group) SetLimit(n int) {
	if n <= 0 {
		g.sem = nil
		return
	}
	g.sem = make(chan struct{}, n)
}

// Go runs f in a new goroutine. If the group's context is already done, f
// is not started and Wait reports the cancellation cause.
func (g *Group) Go(f func(ctx context.Context) error) {
	if g.ctx.Err() != nil {
		g.skipped.Store(true)
		return
	}
	if g.sem != nil {
		select {
		case g.sem <- struct{}{}:
		case <-g.ctx.Done():
			g.skipped.Store(true)
			return
		}
	}

	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		if g.sem != nil {
			defer func() { <-g.sem }()
		}

		if err := f(g.ctx); err != nil {
			g.errOnce.Do(func() {
				g.err = err
				g.cancel(err)
			})
		}
	}()
}

// Wait blocks until every started goroutine has returned and reports the
// first error. When no goroutine failed but Go skipped work because the
// context was done, Wait returns the context's cause.
func (g *Group) Wait() error {
	g.wg.Wait()
	err := g.err
	if err == nil && g.skipped.Load() {
		err = context.Cause(g.ctx)
	}
	g.cancel(nil)
	return err
}
