package expr

import "math/rand"

// randomExpr builds a tree of the given depth from small integer literals,
// with a bias towards 0 and 1 so that every simplifier rule fires.
func randomExpr(rng *rand.Rand, depth int, withDivision bool) Expression {
	if depth <= 0 || rng.Intn(4) == 0 {
		switch rng.Intn(4) {
		case 0:
			return Lit(0)
		case 1:
			return Lit(1)
		default:
			return Lit(float64(rng.Intn(19) - 9))
		}
	}

	left := randomExpr(rng, depth-1, withDivision)
	right := randomExpr(rng, depth-1, withDivision)

	ops := 3
	if withDivision {
		ops = 4
	}
	switch rng.Intn(ops) {
	case 0:
		return Add(left, right)
	case 1:
		return Sub(left, right)
	case 2:
		return Mul(left, right)
	default:
		return Div(left, right)
	}
}

func randomCorpus(seed int64, n, depth int, withDivision bool) []Expression {
	rng := rand.New(rand.NewSource(seed))
	out := make([]Expression, n)
	for i := range out {
		out[i] = randomExpr(rng, depth, withDivision)
	}
	return out
}
