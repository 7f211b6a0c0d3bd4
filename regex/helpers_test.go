package regex

import (
	"math/rand"
	"strings"
)

// refMatch is a naive backtracking matcher used as a reference: it computes
// every offset at which r can stop when started at 0 and checks whether the
// end of s is among them.
func refMatch(r Regexp, s string) bool {
	for _, end := range refEnds(r, s, 0) {
		if end == len(s) {
			return true
		}
	}
	return false
}

func refEnds(r Regexp, s string, at int) []int {
	switch n := r.(type) {
	case *Epsilon:
		return []int{at}
	case *Empty:
		return nil
	case *Apply:
		if strings.HasPrefix(s[at:], n.Literal) {
			return []int{at + len(n.Literal)}
		}
		return nil
	case *Append:
		var out []int
		for _, mid := range refEnds(n.Left, s, at) {
			out = append(out, refEnds(n.Right, s, mid)...)
		}
		return out
	case *OrElse:
		return append(refEnds(n.First, s, at), refEnds(n.Second, s, at)...)
	case *Repeat:
		seen := map[int]bool{at: true}
		frontier := []int{at}
		out := []int{at}
		for len(frontier) > 0 {
			cur := frontier[0]
			frontier = frontier[1:]
			for _, end := range refEnds(n.Source, s, cur) {
				if !seen[end] {
					seen[end] = true
					frontier = append(frontier, end)
					out = append(out, end)
				}
			}
		}
		return out
	}
	panic(unknownNode(r))
}

// matchesExact folds Derivative without compaction.
func matchesExact(r Regexp, input string) bool {
	cur := r
	for _, ch := range input {
		cur = Derivative(cur, ch)
	}
	return Nullable(cur)
}

func randomRegexp(rng *rand.Rand, depth int) Regexp {
	if depth <= 0 || rng.Intn(5) == 0 {
		switch rng.Intn(8) {
		case 0:
			return Eps
		case 1:
			return Fail
		default:
			return Lit(randomString(rng, "ab", 1+rng.Intn(2)))
		}
	}

	switch rng.Intn(3) {
	case 0:
		return Seq(randomRegexp(rng, depth-1), randomRegexp(rng, depth-1))
	case 1:
		return Or(randomRegexp(rng, depth-1), randomRegexp(rng, depth-1))
	default:
		return Star(randomRegexp(rng, depth-1))
	}
}

func randomString(rng *rand.Rand, alphabet string, n int) string {
	var buf strings.Builder
	for i := 0; i < n; i++ {
		buf.WriteByte(alphabet[rng.Intn(len(alphabet))])
	}
	return buf.String()
}
