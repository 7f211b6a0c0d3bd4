package vm

import (
	"bytes"
	"fmt"
	"io"
)

// Program is a flat sequence of instructions. Programs are read-only once
// built and may be executed any number of times, concurrently.
type Program []Op

func (p Program) String() string {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, op := range p {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(op.String())
	}
	buf.WriteByte(']')
	return buf.String()
}

// MaxDepth walks p without executing it and returns the deepest stack it
// needs. It fails if any instruction would underflow, if an opcode is
// unknown, or if p would not finish with exactly one value on the stack.
// Every program produced by Compile or Fuse passes.
func MaxDepth(p Program) (int, error) {
	depth, peak := 0, 0
	for ip, op := range p {
		meta := op.Code.Meta()
		if meta.Illegal {
			return 0, runtimeError(ErrUnknownOpcode, ip, op)
		}
		if depth < meta.Pops {
			return 0, runtimeError(ErrStackUnderflow, ip, op)
		}
		depth += meta.Pushes - meta.Pops
		peak = max(peak, depth)
	}
	if depth != 1 {
		return 0, endError(ErrUnbalanced, len(p))
	}
	return peak, nil
}

// Disassemble writes one instruction per line, prefixed with its index, in
// the format accepted by Assemble.
func Disassemble(w io.Writer, p Program) (int, error) {
	var buf bytes.Buffer
	for ip, op := range p {
		fmt.Fprintf(&buf, "%04d\t%s\n", ip, op)
	}
	return w.Write(buf.Bytes())
}
