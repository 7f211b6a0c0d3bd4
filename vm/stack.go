package vm

// Stack is a growable operand stack.
type Stack struct {
	values []float64
}

// NewStack returns an empty stack with room for capacity values before it
// has to grow.
func NewStack(capacity int) *Stack {
	return &Stack{values: make([]float64, 0, capacity)}
}

// Len returns the number of values on the stack.
func (s *Stack) Len() int {
	return len(s.values)
}

// Push pushes v.
func (s *Stack) Push(v float64) {
	s.values = append(s.values, v)
}

// Pop removes and returns the top value.
func (s *Stack) Pop() (float64, bool) {
	n := len(s.values)
	if n == 0 {
		return 0, false
	}
	v := s.values[n-1]
	s.values = s.values[:n-1]
	return v, true
}

// Values returns a copy of the stack contents, bottom first.
func (s *Stack) Values() []float64 {
	out := make([]float64, len(s.values))
	copy(out, s.values)
	return out
}

// Apply executes op against the stack. This is the reference transition
// function: every backend must agree with it, superinstructions included.
// On error the stack is left unchanged.
func (s *Stack) Apply(op Op) error {
	meta := op.Code.Meta()
	if meta.Illegal {
		return ErrUnknownOpcode
	}
	if len(s.values) < meta.Pops {
		return ErrStackUnderflow
	}

	switch op.Code {
	case OpLit:
		s.Push(op.Value)
		return nil
	case OpInc, OpDec, OpAddLit, OpSubLit, OpMulLit, OpDivLit:
		top := len(s.values) - 1
		s.values[top] = applyUnary(op, s.values[top])
		return nil
	}

	b, _ := s.Pop()
	a, _ := s.Pop()
	switch op.Code {
	case OpAdd:
		s.Push(a + b)
	case OpSub:
		s.Push(a - b)
	case OpMul:
		s.Push(a * b)
	case OpDiv:
		s.Push(a / b)
	case OpAddAddLit:
		s.Push((a + b) + op.Value)
	}
	return nil
}

// applyUnary evaluates the single-operand superinstructions.
func applyUnary(op Op, a float64) float64 {
	switch op.Code {
	case OpInc:
		return a + 1
	case OpDec:
		return a - 1
	case OpAddLit:
		return a + op.Value
	case OpSubLit:
		return a - op.Value
	case OpMulLit:
		return a * op.Value
	case OpDivLit:
		return a / op.Value
	}
	panic("vm: not a unary superinstruction: " + op.Code.String())
}

// fixedStack is an array-backed stack with an explicit stack pointer. It
// never grows.
type fixedStack struct {
	values []float64
	sp     int
}

func newFixedStack(capacity int) fixedStack {
	return fixedStack{values: make([]float64, capacity)}
}

func (s *fixedStack) push(v float64) bool {
	if s.sp == len(s.values) {
		return false
	}
	s.values[s.sp] = v
	s.sp++
	return true
}

func (s *fixedStack) pop() (float64, bool) {
	if s.sp == 0 {
		return 0, false
	}
	s.sp--
	return s.values[s.sp], true
}
