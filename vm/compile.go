package vm

import (
	"fmt"

	"github.com/vitalvas/exprkit/expr"
)

// Compile lowers e into reverse-Polish order:
//
//	Literal(v)    => LIT v
//	Addition(l,r) => compile(l) compile(r) ADD
//
// and likewise SUB, MUL and DIV for the other operators. Every node becomes
// exactly one instruction.
func Compile(e expr.Expression) Program {
	c := compiler{code: make(Program, 0, expr.Size(e))}
	c.emit(e)
	return c.code
}

type compiler struct {
	code Program
}

func (c *compiler) emit(e expr.Expression) {
	switch n := e.(type) {
	case *expr.Literal:
		c.code = append(c.code, Lit(n.Value))
	case *expr.Addition:
		c.binary(n.Left, n.Right, Add)
	case *expr.Subtraction:
		c.binary(n.Left, n.Right, Sub)
	case *expr.Multiplication:
		c.binary(n.Left, n.Right, Mul)
	case *expr.Division:
		c.binary(n.Left, n.Right, Div)
	default:
		panic(fmt.Sprintf("vm: cannot compile expression node %T", e))
	}
}

func (c *compiler) binary(left, right expr.Expression, op Op) {
	c.emit(left)
	c.emit(right)
	c.code = append(c.code, op)
}
