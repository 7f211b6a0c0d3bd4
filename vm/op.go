package vm

import (
	"strconv"
	"strings"
)

// OpCode identifies a stack machine instruction.
type OpCode uint8

const (
	OpInvalid OpCode = iota

	// Base instruction set, produced by Compile.
	OpLit
	OpAdd
	OpSub
	OpMul
	OpDiv

	// Superinstructions, produced only by Fuse.
	OpInc       // LIT 1, ADD
	OpDec       // LIT 1, SUB
	OpAddLit    // LIT v, ADD
	OpSubLit    // LIT v, SUB
	OpMulLit    // LIT v, MUL
	OpDivLit    // LIT v, DIV
	OpAddAddLit // ADD, LIT v, ADD

	numOpCodes
)

// OpMeta describes the static properties of an opcode.
type OpMeta struct {
	Code OpCode
	Name string

	// HasValue is true if the instruction carries a float64 operand.
	HasValue bool

	// Pops and Pushes give the instruction's effect on stack depth.
	Pops   int
	Pushes int

	// Fused marks superinstructions.
	Fused bool

	Illegal bool
}

var opMetas = [numOpCodes]OpMeta{
	OpInvalid:   {Code: OpInvalid, Name: "INVALID", Illegal: true},
	OpLit:       {Code: OpLit, Name: "LIT", HasValue: true, Pushes: 1},
	OpAdd:       {Code: OpAdd, Name: "ADD", Pops: 2, Pushes: 1},
	OpSub:       {Code: OpSub, Name: "SUB", Pops: 2, Pushes: 1},
	OpMul:       {Code: OpMul, Name: "MUL", Pops: 2, Pushes: 1},
	OpDiv:       {Code: OpDiv, Name: "DIV", Pops: 2, Pushes: 1},
	OpInc:       {Code: OpInc, Name: "INC", Pops: 1, Pushes: 1, Fused: true},
	OpDec:       {Code: OpDec, Name: "DEC", Pops: 1, Pushes: 1, Fused: true},
	OpAddLit:    {Code: OpAddLit, Name: "ADDLIT", HasValue: true, Pops: 1, Pushes: 1, Fused: true},
	OpSubLit:    {Code: OpSubLit, Name: "SUBLIT", HasValue: true, Pops: 1, Pushes: 1, Fused: true},
	OpMulLit:    {Code: OpMulLit, Name: "MULLIT", HasValue: true, Pops: 1, Pushes: 1, Fused: true},
	OpDivLit:    {Code: OpDivLit, Name: "DIVLIT", HasValue: true, Pops: 1, Pushes: 1, Fused: true},
	OpAddAddLit: {Code: OpAddAddLit, Name: "ADDADDLIT", HasValue: true, Pops: 2, Pushes: 1, Fused: true},
}

var illegalMeta = OpMeta{Code: OpInvalid, Name: "ILLEGAL", Illegal: true}

// Meta returns the metadata for the opcode. Unknown opcodes get a shared
// metadata value with Illegal set.
func (c OpCode) Meta() *OpMeta {
	if c < numOpCodes {
		return &opMetas[c]
	}
	return &illegalMeta
}

// Valid reports whether c is a known, executable opcode.
func (c OpCode) Valid() bool {
	return !c.Meta().Illegal
}

func (c OpCode) String() string {
	if c.Valid() {
		return c.Meta().Name
	}
	return "OP(" + strconv.Itoa(int(c)) + ")"
}

// LookupOpCode finds an opcode by its case-insensitive mnemonic.
func LookupOpCode(name string) (OpCode, bool) {
	for i := range opMetas {
		m := &opMetas[i]
		if !m.Illegal && strings.EqualFold(m.Name, name) {
			return m.Code, true
		}
	}
	return OpInvalid, false
}

// Op is a single instruction. Value is only meaningful when the opcode's
// metadata has HasValue set.
type Op struct {
	Code  OpCode
	Value float64
}

// Base instructions without operands.
var (
	Add = Op{Code: OpAdd}
	Sub = Op{Code: OpSub}
	Mul = Op{Code: OpMul}
	Div = Op{Code: OpDiv}
)

// Lit returns an instruction pushing v.
func Lit(v float64) Op {
	return Op{Code: OpLit, Value: v}
}

// String returns the assembly form of the instruction, e.g. "LIT 2.5".
func (op Op) String() string {
	if !op.Code.Valid() || !op.Code.Meta().HasValue {
		return op.Code.String()
	}
	return op.Code.String() + " " + strconv.FormatFloat(op.Value, 'g', -1, 64)
}
