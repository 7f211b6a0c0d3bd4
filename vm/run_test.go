package vm

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalvas/exprkit/expr"
)

func TestBackendsAgreeWithEval(t *testing.T) {
	corpus := randomCorpus(3, 500, 6)
	corpus = append(corpus,
		expr.Div(expr.Lit(1), expr.Lit(0)),
		expr.Div(expr.Lit(0), expr.Lit(0)),
		expr.Add(expr.Div(expr.Lit(-1), expr.Lit(0)), expr.Lit(1)),
		expr.Add(expr.Lit(1), expr.Add(expr.Lit(2), expr.Lit(1))),
		expr.Mul(expr.Lit(-1), expr.Lit(0)),
		expr.Sub(expr.Mul(expr.Lit(-1), expr.Lit(0)), expr.Lit(0)),
		expr.Div(expr.Lit(0), expr.Lit(-3)),
	)

	for _, backend := range Backends() {
		t.Run(backend.Name, func(t *testing.T) {
			for _, e := range corpus {
				want := expr.Eval(e)
				got, err := backend.Run(Compile(e))
				require.NoError(t, err, "%s", e)
				assert.True(t, sameFloat(want, got), "%s: want %v, got %v", e, want, got)
			}
		})
	}
}

func TestBackendsKeepZeroSign(t *testing.T) {
	assert.False(t, sameFloat(0, math.Copysign(0, -1)))
	assert.True(t, sameFloat(math.NaN(), math.NaN()))

	p := Compile(expr.Mul(expr.Lit(-1), expr.Lit(0)))
	for _, backend := range Backends() {
		t.Run(backend.Name, func(t *testing.T) {
			v, err := backend.Run(p)
			require.NoError(t, err)
			assert.True(t, math.Signbit(v), "want -0, got %v", v)
		})
	}
}

func TestBackendsDivisionByZero(t *testing.T) {
	p := Compile(expr.Div(expr.Lit(1), expr.Lit(0)))
	for _, backend := range Backends() {
		t.Run(backend.Name, func(t *testing.T) {
			v, err := backend.Run(p)
			require.NoError(t, err)
			assert.True(t, math.IsInf(v, 1))
		})
	}
}

func TestBackendsErrors(t *testing.T) {
	tests := []struct {
		name string
		prog Program
		err  error
	}{
		{"empty program", Program{}, ErrUnbalanced},
		{"two values left", Program{Lit(1), Lit(2)}, ErrUnbalanced},
		{"operator on empty stack", Program{Add}, ErrStackUnderflow},
		{"operator on one value", Program{Lit(1), Lit(2), Mul, Div}, ErrStackUnderflow},
		{"literal then operator", Program{Lit(1), Sub}, ErrStackUnderflow},
		{"unknown opcode", Program{Lit(1), {Code: 200}}, ErrUnknownOpcode},
		{"invalid opcode", Program{{Code: OpInvalid}}, ErrUnknownOpcode},
	}

	for _, backend := range Backends() {
		for _, tt := range tests {
			t.Run(backend.Name+"/"+tt.name, func(t *testing.T) {
				_, err := backend.Run(tt.prog)
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.err)

				var rerr *RuntimeError
				assert.True(t, errors.As(err, &rerr))
			})
		}
	}
}

func TestRunErrorPosition(t *testing.T) {
	_, err := Run(Program{Lit(1), Lit(2), Add, Mul})
	var rerr *RuntimeError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, 3, rerr.IP)
	require.NotNil(t, rerr.Op)
	assert.Equal(t, Mul, *rerr.Op)
	assert.Equal(t, "exprkit/vm: runtime error @ IP 3: MUL: stack underflow", err.Error())

	_, err = Run(Program{Lit(1), Lit(2)})
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, 2, rerr.IP)
	assert.Nil(t, rerr.Op)
	assert.Equal(t, "exprkit/vm: runtime error @ IP 2: "+ErrUnbalanced.Error(), err.Error())
}

func TestRunRejectsSuperinstructions(t *testing.T) {
	p := Program{Lit(1), {Code: OpInc}}

	_, err := Run(p)
	assert.ErrorIs(t, err, ErrUnknownOpcode)
	_, err = RunArray(p)
	assert.ErrorIs(t, err, ErrUnknownOpcode)
	_, err = RunCached(p)
	assert.ErrorIs(t, err, ErrUnknownOpcode)
	_, err = RunCompact(p)
	assert.ErrorIs(t, err, ErrUnknownOpcode)

	v, err := RunSuper(p)
	require.NoError(t, err)
	assert.Equal(t, 2.0, v)
}

func TestMustRun(t *testing.T) {
	assert.Equal(t, 6.0, MustRun(Program{Lit(2), Lit(3), Mul}))
	assert.Panics(t, func() { MustRun(Program{Add}) })
}

func TestRunArrayCapOverflow(t *testing.T) {
	p := Program{Lit(1), Lit(2), Add}

	_, err := RunArrayCap(p, 1)
	var rerr *RuntimeError
	require.ErrorAs(t, err, &rerr)
	assert.ErrorIs(t, err, ErrStackOverflow)
	assert.Equal(t, 1, rerr.IP)

	v, err := RunArrayCap(p, 2)
	require.NoError(t, err)
	assert.Equal(t, 3.0, v)

	_, err = RunArrayCap(Program{Lit(1)}, 0)
	assert.ErrorIs(t, err, ErrStackOverflow)
}

func TestRunCachedSpills(t *testing.T) {
	// Right-leaning trees keep every intermediate value live.
	p := Program{Lit(1), Lit(2), Lit(3), Lit(4), Sub, Sub, Sub}
	v, err := RunCached(p)
	require.NoError(t, err)
	assert.Equal(t, 1-(2-(3-4.0)), v)
}

func TestBackendsConcurrentRuns(t *testing.T) {
	p := Compile(randomCorpus(4, 1, 8)[0])
	want, err := Run(p)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make(chan float64, 5*16)
	for _, backend := range Backends() {
		for i := 0; i < 16; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				v, err := backend.Run(p)
				if err == nil {
					results <- v
				}
			}()
		}
	}
	wg.Wait()
	close(results)

	count := 0
	for v := range results {
		assert.True(t, sameFloat(want, v))
		count++
	}
	assert.Equal(t, 5*16, count)
}

func BenchmarkBackends(b *testing.B) {
	p := Compile(randomCorpus(5, 1, 10)[0])
	for _, backend := range Backends() {
		b.Run(backend.Name, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_, _ = backend.Run(p)
			}
		})
	}
}
