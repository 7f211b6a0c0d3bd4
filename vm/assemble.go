package vm

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrSyntax = errors.New("syntax error")
)

// AssembleError reports the source line an assembly error was found on.
type AssembleError struct {
	Line int
	Err  error
}

func (e *AssembleError) Error() string {
	return fmt.Sprintf("exprkit/vm: line %d: %v", e.Line, e.Err)
}

func (e *AssembleError) Unwrap() error {
	return e.Err
}

// Assemble parses a program written one instruction per line:
//
//	# compute (1 + 2) * 3
//	lit 1
//	lit 2
//	add
//	lit 3
//	mul
//
// Mnemonics are case-insensitive. Anything after '#' is a comment. A leading
// decimal instruction index, as written by Disassemble, is ignored. The
// result is not checked for stack balance; use MaxDepth for that.
func Assemble(src string) (Program, error) {
	var p Program
	sc := bufio.NewScanner(strings.NewReader(src))
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		fields := strings.Fields(text)
		if len(fields) > 0 && isIndex(fields[0]) {
			fields = fields[1:]
		}
		if len(fields) == 0 {
			continue
		}

		op, err := assembleOp(fields)
		if err != nil {
			return nil, &AssembleError{Line: line, Err: err}
		}
		p = append(p, op)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return p, nil
}

func assembleOp(fields []string) (Op, error) {
	code, ok := LookupOpCode(fields[0])
	if !ok {
		return Op{}, fmt.Errorf("%w: %q", ErrUnknownOpcode, fields[0])
	}
	op := Op{Code: code}
	args := fields[1:]

	if !code.Meta().HasValue {
		if len(args) != 0 {
			return Op{}, fmt.Errorf("%w: %s takes no operand", ErrSyntax, code)
		}
		return op, nil
	}

	if len(args) != 1 {
		return Op{}, fmt.Errorf("%w: %s takes exactly one operand", ErrSyntax, code)
	}
	v, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return Op{}, fmt.Errorf("%w: invalid operand %q", ErrSyntax, args[0])
	}
	op.Value = v
	return op, nil
}

func isIndex(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
