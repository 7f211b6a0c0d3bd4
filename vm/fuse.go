package vm

// FusionRule describes one superinstruction: the instruction window it
// replaces and the opcode that replaces it.
type FusionRule struct {
	Name    string
	Pattern []OpCode
	Result  OpCode
}

// FusionRules lists the rewrites applied by Fuse, longest window first.
// Where a pattern contains LIT, the literal's value becomes the value of the
// fused instruction.
var FusionRules = []FusionRule{
	{Name: "add-add-lit", Pattern: []OpCode{OpAdd, OpLit, OpAdd}, Result: OpAddAddLit},
	{Name: "inc", Pattern: []OpCode{OpLit, OpAdd}, Result: OpInc},
	{Name: "dec", Pattern: []OpCode{OpLit, OpSub}, Result: OpDec},
	{Name: "add-lit", Pattern: []OpCode{OpLit, OpAdd}, Result: OpAddLit},
	{Name: "sub-lit", Pattern: []OpCode{OpLit, OpSub}, Result: OpSubLit},
	{Name: "mul-lit", Pattern: []OpCode{OpLit, OpMul}, Result: OpMulLit},
	{Name: "div-lit", Pattern: []OpCode{OpLit, OpDiv}, Result: OpDivLit},
}

// Fuse returns a copy of p with instruction windows replaced by
// superinstructions, scanning left to right and taking the first matching
// rule at each position. INC and DEC only apply when the literal is exactly
// 1. The result is equivalent to p on every stack, errors included.
func Fuse(p Program) Program {
	out := make(Program, 0, len(p))
	for i := 0; i < len(p); {
		op, n := fuseAt(p, i)
		out = append(out, op)
		i += n
	}
	return out
}

func fuseAt(p Program, i int) (Op, int) {
	for _, rule := range FusionRules {
		if !matchWindow(p, i, rule.Pattern) {
			continue
		}
		v, hasLit := windowLiteral(p[i : i+len(rule.Pattern)])
		switch rule.Result {
		case OpInc, OpDec:
			if v != 1 {
				continue
			}
			return Op{Code: rule.Result}, len(rule.Pattern)
		}
		fused := Op{Code: rule.Result}
		if hasLit {
			fused.Value = v
		}
		return fused, len(rule.Pattern)
	}
	return p[i], 1
}

func matchWindow(p Program, i int, pattern []OpCode) bool {
	if i+len(pattern) > len(p) {
		return false
	}
	for j, code := range pattern {
		if p[i+j].Code != code {
			return false
		}
	}
	return true
}

func windowLiteral(window Program) (float64, bool) {
	for _, op := range window {
		if op.Code == OpLit {
			return op.Value, true
		}
	}
	return 0, false
}

// RunFused fuses p and executes the result with RunSuper.
func RunFused(p Program) (float64, error) {
	return RunSuper(Fuse(p))
}

// RunSuper executes a program that may contain superinstructions on an
// array stack. Error positions refer to the fused program.
func RunSuper(p Program) (float64, error) {
	stack := make([]float64, len(p))
	sp := 0

	for ip, op := range p {
		meta := op.Code.Meta()
		if meta.Illegal {
			return 0, runtimeError(ErrUnknownOpcode, ip, op)
		}
		if sp < meta.Pops {
			return 0, runtimeError(ErrStackUnderflow, ip, op)
		}

		switch op.Code {
		case OpLit:
			stack[sp] = op.Value
			sp++
		case OpAdd:
			sp--
			stack[sp-1] += stack[sp]
		case OpSub:
			sp--
			stack[sp-1] -= stack[sp]
		case OpMul:
			sp--
			stack[sp-1] *= stack[sp]
		case OpDiv:
			sp--
			stack[sp-1] /= stack[sp]
		case OpInc:
			stack[sp-1]++
		case OpDec:
			stack[sp-1]--
		case OpAddLit:
			stack[sp-1] += op.Value
		case OpSubLit:
			stack[sp-1] -= op.Value
		case OpMulLit:
			stack[sp-1] *= op.Value
		case OpDivLit:
			stack[sp-1] /= op.Value
		case OpAddAddLit:
			sp--
			stack[sp-1] = (stack[sp-1] + stack[sp]) + op.Value
		}
	}
	if sp != 1 {
		return 0, endError(ErrUnbalanced, len(p))
	}
	return stack[0], nil
}
