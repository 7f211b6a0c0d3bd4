package regex

import (
	"github.com/coregx/ahocorasick"
)

// Matches reports whether r matches the whole of input.
//
// Matches folds Derivative over the runes of input and tests the residual
// with Nullable. A prefix match is not a match: Matches(Lit("a"), "ab") is
// false. The empty input reduces to Nullable(r). Input bytes that are not
// valid UTF-8 each read as U+FFFD.
func Matches(r Regexp, input string) bool {
	cur := r
	for _, ch := range input {
		cur = Compact(Derivative(cur, ch))
		if isFail(cur) {
			return false
		}
	}
	return Nullable(cur)
}

// Search reports whether any substring of input matches r.
func Search(r Regexp, input string) bool {
	return Compile(r).Search(input)
}

// Literals returns the literals of r when r is nothing but an alternation of
// literals, such as "GET|POST|PUT".
func Literals(r Regexp) ([]string, bool) {
	var out []string
	var walk func(Regexp) bool
	walk = func(r Regexp) bool {
		switch n := r.(type) {
		case *Apply:
			mustLiteral(n)
			out = append(out, n.Literal)
			return true
		case *OrElse:
			return walk(n.First) && walk(n.Second)
		}
		return false
	}
	if !walk(r) {
		return nil, false
	}
	return out, true
}

// Matcher is a pattern prepared for repeated use. It is safe for concurrent
// use by multiple goroutines.
type Matcher struct {
	re       Regexp
	nullable bool
	literals *ahocorasick.Automaton
}

// Compile prepares r for repeated matching. Patterns that are a plain set of
// literals get a multi-pattern automaton for Search.
func Compile(r Regexp) *Matcher {
	m := &Matcher{
		re:       r,
		nullable: Nullable(r),
	}

	if lits, ok := Literals(r); ok {
		builder := ahocorasick.NewBuilder()
		for _, lit := range lits {
			builder.AddPattern([]byte(validUTF8(lit)))
		}
		if auto, err := builder.Build(); err == nil {
			m.literals = auto
		}
	}

	return m
}

// Regexp returns the pattern m was compiled from.
func (m *Matcher) Regexp() Regexp {
	return m.re
}

// Match reports whether m matches the whole of input.
func (m *Matcher) Match(input string) bool {
	return Matches(m.re, input)
}

// Search reports whether any substring of input matches m.
func (m *Matcher) Search(input string) bool {
	if m.nullable {
		return true
	}
	if m.literals != nil {
		return m.literals.IsMatch([]byte(validUTF8(input)))
	}
	return m.searchDerivative(input)
}

// searchDerivative starts a derivative fold at every rune offset and stops at
// the first nullable residual.
func (m *Matcher) searchDerivative(input string) bool {
	for start := range input {
		cur := m.re
		for _, ch := range input[start:] {
			cur = Compact(Derivative(cur, ch))
			if isFail(cur) {
				break
			}
			if Nullable(cur) {
				return true
			}
		}
	}
	return false
}
