package vm

// Bytecode is the compact form of a Program: one opcode byte per
// instruction, with the operands of LIT (and of the fused instructions that
// carry a value) stored in order in a separate constant table.
type Bytecode struct {
	Code   []byte
	Consts []float64
}

// Encode converts p to its compact form.
func Encode(p Program) Bytecode {
	b := Bytecode{Code: make([]byte, len(p))}
	for i, op := range p {
		b.Code[i] = byte(op.Code)
		if op.Code.Valid() && op.Code.Meta().HasValue {
			b.Consts = append(b.Consts, op.Value)
		}
	}
	return b
}

// Decode converts b back to a Program.
func Decode(b Bytecode) (Program, error) {
	p := make(Program, len(b.Code))
	k := 0
	for ip, c := range b.Code {
		op := Op{Code: OpCode(c)}
		if !op.Code.Valid() {
			return nil, runtimeError(ErrUnknownOpcode, ip, op)
		}
		if op.Code.Meta().HasValue {
			if k == len(b.Consts) {
				return nil, runtimeError(ErrConstTable, ip, op)
			}
			op.Value = b.Consts[k]
			k++
		}
		p[ip] = op
	}
	if k != len(b.Consts) {
		return nil, endError(ErrConstTable, len(b.Code))
	}
	return p, nil
}

// RunCompact encodes p and executes it with RunBytecode.
func RunCompact(p Program) (float64, error) {
	return RunBytecode(Encode(p))
}

// RunBytecode executes the base instruction set directly from the compact
// form, reading LIT operands sequentially from the constant table. Constants
// left unread at the end are an ErrConstTable error, as in Decode.
func RunBytecode(b Bytecode) (float64, error) {
	code, consts := b.Code, b.Consts
	stack := make([]float64, len(code))
	sp, k := 0, 0

	for ip, c := range code {
		switch OpCode(c) {
		case OpLit:
			if k == len(consts) {
				return 0, runtimeError(ErrConstTable, ip, Op{Code: OpLit})
			}
			stack[sp] = consts[k]
			sp++
			k++
			continue
		case OpAdd, OpSub, OpMul, OpDiv:
		default:
			return 0, runtimeError(ErrUnknownOpcode, ip, Op{Code: OpCode(c)})
		}

		if sp < 2 {
			return 0, runtimeError(ErrStackUnderflow, ip, Op{Code: OpCode(c)})
		}
		sp--
		rhs := stack[sp]
		lhs := stack[sp-1]
		switch OpCode(c) {
		case OpAdd:
			stack[sp-1] = lhs + rhs
		case OpSub:
			stack[sp-1] = lhs - rhs
		case OpMul:
			stack[sp-1] = lhs * rhs
		case OpDiv:
			stack[sp-1] = lhs / rhs
		}
	}
	if k != len(consts) {
		return 0, endError(ErrConstTable, len(code))
	}
	if sp != 1 {
		return 0, endError(ErrUnbalanced, len(code))
	}
	return stack[0], nil
}
