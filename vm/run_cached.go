package vm

// RunCached executes p with the top of the stack held in a local variable.
// A push spills the cached value into the array first; a binary operator
// takes its right operand from the cache and only its left operand from the
// array, leaving the result cached. The cache is occupied exactly when the
// stack is not empty.
func RunCached(p Program) (float64, error) {
	stack := make([]float64, len(p))
	sp := 0
	var tos float64
	cached := false

	for ip, op := range p {
		switch op.Code {
		case OpLit:
			if cached {
				stack[sp] = tos
				sp++
			}
			tos = op.Value
			cached = true
			continue
		case OpAdd, OpSub, OpMul, OpDiv:
		default:
			return 0, runtimeError(ErrUnknownOpcode, ip, op)
		}

		if !cached || sp == 0 {
			return 0, runtimeError(ErrStackUnderflow, ip, op)
		}
		sp--
		lhs := stack[sp]
		switch op.Code {
		case OpAdd:
			tos = lhs + tos
		case OpSub:
			tos = lhs - tos
		case OpMul:
			tos = lhs * tos
		case OpDiv:
			tos = lhs / tos
		}
	}
	if !cached || sp != 0 {
		return 0, endError(ErrUnbalanced, len(p))
	}
	return tos, nil
}
