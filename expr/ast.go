// Package expr implements a small arithmetic expression language: a closed
// expression tree, a parser for its infix text form, a tree-walking evaluator
// and an algebraic simplifier that rewrites trees to a fixed point.
//
// Example:
//
//	e, err := expr.Parse("4 * (0 + 1)")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println(expr.Simplify(e)) // 4
//	fmt.Println(expr.Eval(e))     // 4
package expr

// Expression is an arithmetic expression tree.
//
// The set of variants is closed: Literal, Addition, Subtraction,
// Multiplication and Division. Every node exclusively owns its children and
// is never mutated after construction.
type Expression interface {
	expression()
	String() string
}

// Literal is a numeric constant.
type Literal struct {
	Value float64
}

func (l *Literal) expression() {}

// Addition represents left + right.
type Addition struct {
	Left  Expression
	Right Expression
}

func (a *Addition) expression() {}

// Subtraction represents left - right.
type Subtraction struct {
	Left  Expression
	Right Expression
}

func (s *Subtraction) expression() {}

// Multiplication represents left * right.
type Multiplication struct {
	Left  Expression
	Right Expression
}

func (m *Multiplication) expression() {}

// Division represents left / right.
type Division struct {
	Left  Expression
	Right Expression
}

func (d *Division) expression() {}

// Lit returns a literal node.
func Lit(v float64) Expression {
	return &Literal{Value: v}
}

// Add returns left + right.
func Add(left, right Expression) Expression {
	return &Addition{Left: left, Right: right}
}

// Sub returns left - right.
func Sub(left, right Expression) Expression {
	return &Subtraction{Left: left, Right: right}
}

// Mul returns left * right.
func Mul(left, right Expression) Expression {
	return &Multiplication{Left: left, Right: right}
}

// Div returns left / right.
func Div(left, right Expression) Expression {
	return &Division{Left: left, Right: right}
}

// Operands returns the children of a binary node, or ok=false for a literal.
func Operands(e Expression) (left, right Expression, ok bool) {
	switch n := e.(type) {
	case *Addition:
		return n.Left, n.Right, true
	case *Subtraction:
		return n.Left, n.Right, true
	case *Multiplication:
		return n.Left, n.Right, true
	case *Division:
		return n.Left, n.Right, true
	}
	return nil, nil, false
}
