package vm

import (
	"bytes"
	"errors"
	"fmt"
)

var (
	ErrStackUnderflow = errors.New("stack underflow")
	ErrStackOverflow  = errors.New("stack overflow")
	ErrUnbalanced     = errors.New("program must leave exactly one value on the stack")
	ErrUnknownOpcode  = errors.New("unknown opcode")
	ErrConstTable     = errors.New("constant table does not match code")
	ErrUnknownBackend = errors.New("unknown backend")
)

// RuntimeError is an error encountered while executing a program. It always
// means the program was not produced by Compile (or Fuse), or that the
// capacity given to a fixed-size stack was too small.
type RuntimeError struct {
	Err error

	// IP is the index of the failing instruction, or the program length if
	// the program ran to completion with a bad final stack.
	IP int

	// Op is the failing instruction, nil at program end.
	Op *Op
}

func (e *RuntimeError) Error() string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "exprkit/vm: runtime error @ IP %d: ", e.IP)
	if e.Op != nil {
		buf.WriteString(e.Op.Code.String())
		buf.WriteString(": ")
	}
	buf.WriteString(e.Err.Error())
	return buf.String()
}

func (e *RuntimeError) Unwrap() error {
	return e.Err
}

func runtimeError(err error, ip int, op Op) *RuntimeError {
	return &RuntimeError{Err: err, IP: ip, Op: &op}
}

func endError(err error, ip int) *RuntimeError {
	return &RuntimeError{Err: err, IP: ip}
}
