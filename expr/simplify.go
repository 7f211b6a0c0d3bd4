package expr

// SimplifyOnce performs a single rewriting pass over e.
//
// Rules are tried at every node in this order, the first match wins:
//
//	0 + x, x + 0  => x
//	1 * x, x * 1  => x
//	0 * x, x * 0  => 0 (x is dropped without being visited)
//	x - 0         => x
//	x / 1         => x
//
// Any other node is rebuilt with both children simplified. 0 - x and 1 / x
// are left alone since neither operator is commutative.
func SimplifyOnce(e Expression) Expression {
	switch n := e.(type) {
	case *Literal:
		return &Literal{Value: n.Value}

	case *Addition:
		if isConst(n.Left, 0) {
			return SimplifyOnce(n.Right)
		}
		if isConst(n.Right, 0) {
			return SimplifyOnce(n.Left)
		}
		return &Addition{Left: SimplifyOnce(n.Left), Right: SimplifyOnce(n.Right)}

	case *Multiplication:
		if isConst(n.Left, 1) {
			return SimplifyOnce(n.Right)
		}
		if isConst(n.Right, 1) {
			return SimplifyOnce(n.Left)
		}
		if isConst(n.Left, 0) || isConst(n.Right, 0) {
			return &Literal{Value: 0}
		}
		return &Multiplication{Left: SimplifyOnce(n.Left), Right: SimplifyOnce(n.Right)}

	case *Subtraction:
		if isConst(n.Right, 0) {
			return SimplifyOnce(n.Left)
		}
		return &Subtraction{Left: SimplifyOnce(n.Left), Right: SimplifyOnce(n.Right)}

	case *Division:
		if isConst(n.Right, 1) {
			return SimplifyOnce(n.Left)
		}
		return &Division{Left: SimplifyOnce(n.Left), Right: SimplifyOnce(n.Right)}
	}
	panic(unknownNode(e))
}

// Simplify applies SimplifyOnce until the tree stops changing and returns
// that fixed point. Every pass either shrinks the tree or leaves it equal, so
// the loop always terminates.
func Simplify(e Expression) Expression {
	out, _ := SimplifyTrace(e)
	return out
}

// SimplifyTrace is Simplify that also reports how many passes ran, counting
// the final pass that confirmed the fixed point.
func SimplifyTrace(e Expression) (Expression, int) {
	cur := e
	for passes := 1; ; passes++ {
		next := SimplifyOnce(cur)
		if Equal(next, cur) {
			return next, passes
		}
		cur = next
	}
}

// isConst matches a literal equal to v. -0 counts as 0.
func isConst(e Expression, v float64) bool {
	l, ok := e.(*Literal)
	return ok && l.Value == v
}
