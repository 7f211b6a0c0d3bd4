package regex

// Equal reports whether a and b are structurally identical.
func Equal(a, b Regexp) bool {
	switch x := a.(type) {
	case *Epsilon:
		_, ok := b.(*Epsilon)
		return ok
	case *Empty:
		_, ok := b.(*Empty)
		return ok
	case *Apply:
		y, ok := b.(*Apply)
		return ok && x.Literal == y.Literal
	case *Append:
		y, ok := b.(*Append)
		return ok && Equal(x.Left, y.Left) && Equal(x.Right, y.Right)
	case *OrElse:
		y, ok := b.(*OrElse)
		return ok && Equal(x.First, y.First) && Equal(x.Second, y.Second)
	case *Repeat:
		y, ok := b.(*Repeat)
		return ok && Equal(x.Source, y.Source)
	}
	panic(unknownNode(a))
}

// Size returns the number of nodes in r.
func Size(r Regexp) int {
	switch n := r.(type) {
	case *Append:
		return 1 + Size(n.Left) + Size(n.Right)
	case *OrElse:
		return 1 + Size(n.First) + Size(n.Second)
	case *Repeat:
		return 1 + Size(n.Source)
	case *Epsilon, *Empty, *Apply:
		return 1
	}
	panic(unknownNode(r))
}

// Compact rewrites r into a pattern accepting the same language, using
//
//	Fail ++ x, x ++ Fail   => Fail
//	Eps ++ x, x ++ Eps     => x
//	Fail | x, x | Fail     => x
//	x | x                  => x
//	(Eps)*, (Fail)*        => Eps
//	(x*)*                  => x*
//
// Derivatives leave a trail of dead Fail branches behind them; Matches
// compacts between steps so residuals stay proportional to the pattern.
func Compact(r Regexp) Regexp {
	switch n := r.(type) {
	case *Append:
		return compactSeq(Compact(n.Left), Compact(n.Right))
	case *OrElse:
		return compactOr(Compact(n.First), Compact(n.Second))
	case *Repeat:
		return compactStar(Compact(n.Source))
	case *Epsilon, *Empty:
		return r
	case *Apply:
		mustLiteral(n)
		return r
	}
	panic(unknownNode(r))
}

func compactSeq(left, right Regexp) Regexp {
	switch {
	case isFail(left) || isFail(right):
		return Fail
	case isEps(left):
		return right
	case isEps(right):
		return left
	}
	return Seq(left, right)
}

func compactOr(first, second Regexp) Regexp {
	switch {
	case isFail(first):
		return second
	case isFail(second):
		return first
	case Equal(first, second):
		return first
	}
	return Or(first, second)
}

func compactStar(source Regexp) Regexp {
	switch source.(type) {
	case *Epsilon, *Empty:
		return Eps
	case *Repeat:
		return source
	}
	return Star(source)
}

func isFail(r Regexp) bool {
	_, ok := r.(*Empty)
	return ok
}

func isEps(r Regexp) bool {
	_, ok := r.(*Epsilon)
	return ok
}
