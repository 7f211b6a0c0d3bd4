package vm

// RunArray executes p on a preallocated array stack sized to len(p), which
// is enough for any program since no instruction grows the stack by more
// than one value.
func RunArray(p Program) (float64, error) {
	return RunArrayCap(p, len(p))
}

// RunArrayCap executes p on an array stack holding at most capacity values.
// Pushing onto a full stack aborts the run with ErrStackOverflow. MaxDepth
// gives the smallest capacity that works for a given program.
func RunArrayCap(p Program, capacity int) (float64, error) {
	s := newFixedStack(max(capacity, 0))
	for ip, op := range p {
		switch op.Code {
		case OpLit:
			if !s.push(op.Value) {
				return 0, runtimeError(ErrStackOverflow, ip, op)
			}
			continue
		case OpAdd, OpSub, OpMul, OpDiv:
		default:
			return 0, runtimeError(ErrUnknownOpcode, ip, op)
		}

		if s.sp < 2 {
			return 0, runtimeError(ErrStackUnderflow, ip, op)
		}
		b, _ := s.pop()
		a, _ := s.pop()
		switch op.Code {
		case OpAdd:
			s.push(a + b)
		case OpSub:
			s.push(a - b)
		case OpMul:
			s.push(a * b)
		case OpDiv:
			s.push(a / b)
		}
	}
	if s.sp != 1 {
		return 0, endError(ErrUnbalanced, len(p))
	}
	return s.values[0], nil
}
