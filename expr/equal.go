package expr

import (
	"fmt"
	"math"
)

// Equal reports whether a and b are structurally identical trees.
// Literals compare by bit pattern, so NaN equals NaN and -0 differs from 0.
func Equal(a, b Expression) bool {
	switch x := a.(type) {
	case *Literal:
		y, ok := b.(*Literal)
		return ok && math.Float64bits(x.Value) == math.Float64bits(y.Value)
	case *Addition:
		y, ok := b.(*Addition)
		return ok && Equal(x.Left, y.Left) && Equal(x.Right, y.Right)
	case *Subtraction:
		y, ok := b.(*Subtraction)
		return ok && Equal(x.Left, y.Left) && Equal(x.Right, y.Right)
	case *Multiplication:
		y, ok := b.(*Multiplication)
		return ok && Equal(x.Left, y.Left) && Equal(x.Right, y.Right)
	case *Division:
		y, ok := b.(*Division)
		return ok && Equal(x.Left, y.Left) && Equal(x.Right, y.Right)
	}
	panic(unknownNode(a))
}

// Size returns the number of nodes in e.
func Size(e Expression) int {
	if _, ok := e.(*Literal); ok {
		return 1
	}
	left, right, ok := Operands(e)
	if !ok {
		panic(unknownNode(e))
	}
	return 1 + Size(left) + Size(right)
}

// Depth returns the height of e; a literal has depth 1.
func Depth(e Expression) int {
	if _, ok := e.(*Literal); ok {
		return 1
	}
	left, right, ok := Operands(e)
	if !ok {
		panic(unknownNode(e))
	}
	return 1 + max(Depth(left), Depth(right))
}

func unknownNode(e Expression) string {
	return fmt.Sprintf("expr: unknown expression node %T", e)
}
