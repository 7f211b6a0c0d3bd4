package regex

import (
	"fmt"
	"unicode/utf8"
)

// Nullable reports whether r matches the empty string.
func Nullable(r Regexp) bool {
	switch n := r.(type) {
	case *Append:
		return Nullable(n.Left) && Nullable(n.Right)
	case *OrElse:
		return Nullable(n.First) || Nullable(n.Second)
	case *Repeat:
		return true
	case *Apply:
		mustLiteral(n)
		return false
	case *Epsilon:
		return true
	case *Empty:
		return false
	}
	panic(unknownNode(r))
}

// Delta is Eps when r is nullable and Fail otherwise.
func Delta(r Regexp) Regexp {
	if Nullable(r) {
		return Eps
	}
	return Fail
}

// Derivative returns the pattern that matches whatever may follow ch in a
// string matched by r. It is Fail when no match of r starts with ch.
func Derivative(r Regexp, ch rune) Regexp {
	switch n := r.(type) {
	case *Append:
		return Or(
			Seq(Derivative(n.Left, ch), n.Right),
			Seq(Delta(n.Left), Derivative(n.Right, ch)),
		)
	case *OrElse:
		return Or(Derivative(n.First, ch), Derivative(n.Second, ch))
	case *Repeat:
		return Seq(Derivative(n.Source, ch), n)
	case *Apply:
		mustLiteral(n)
		head, size := utf8.DecodeRuneInString(n.Literal)
		if head != ch {
			return Fail
		}
		if size == len(n.Literal) {
			return Eps
		}
		return &Apply{Literal: n.Literal[size:]}
	case *Epsilon:
		return Fail
	case *Empty:
		return Fail
	}
	panic(unknownNode(r))
}

func mustLiteral(a *Apply) {
	if a.Literal == "" {
		panic("regex: Apply with an empty literal; use Lit or Eps")
	}
}

func unknownNode(r Regexp) string {
	return fmt.Sprintf("regex: unknown pattern node %T", r)
}
