package expr

// Eval evaluates e directly over the tree.
//
// Division by zero is not an error: it yields an infinity or NaN exactly as
// IEEE-754 float64 division does, and the value propagates through the rest
// of the computation.
func Eval(e Expression) float64 {
	switch n := e.(type) {
	case *Literal:
		return n.Value
	case *Addition:
		return Eval(n.Left) + Eval(n.Right)
	case *Subtraction:
		return Eval(n.Left) - Eval(n.Right)
	case *Multiplication:
		return Eval(n.Left) * Eval(n.Right)
	case *Division:
		return Eval(n.Left) / Eval(n.Right)
	}
	panic(unknownNode(e))
}
