package vm

// Run executes p on a growable stack. It is the baseline backend: each
// instruction goes through Stack.Apply. Superinstructions are rejected with
// ErrUnknownOpcode; use RunFused for those.
func Run(p Program) (float64, error) {
	s := NewStack(0)
	for ip, op := range p {
		if op.Code.Meta().Fused {
			return 0, runtimeError(ErrUnknownOpcode, ip, op)
		}
		if err := s.Apply(op); err != nil {
			return 0, runtimeError(err, ip, op)
		}
	}
	if s.Len() != 1 {
		return 0, endError(ErrUnbalanced, len(p))
	}
	v, _ := s.Pop()
	return v, nil
}

// MustRun is like Run but panics on error. Use it with programs that come
// from Compile, for which an error means a bug in this package.
func MustRun(p Program) float64 {
	v, err := Run(p)
	if err != nil {
		panic(err)
	}
	return v
}
