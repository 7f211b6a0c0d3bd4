package vm

import (
	"math"
	"math/rand"

	"github.com/vitalvas/exprkit/expr"
)

func randomExpr(rng *rand.Rand, depth int) expr.Expression {
	if depth <= 0 || rng.Intn(4) == 0 {
		switch rng.Intn(5) {
		case 0:
			return expr.Lit(0)
		case 1:
			return expr.Lit(1)
		case 2:
			return expr.Lit(rng.Float64()*200 - 100)
		default:
			return expr.Lit(float64(rng.Intn(19) - 9))
		}
	}

	left := randomExpr(rng, depth-1)
	right := randomExpr(rng, depth-1)
	switch rng.Intn(4) {
	case 0:
		return expr.Add(left, right)
	case 1:
		return expr.Sub(left, right)
	case 2:
		return expr.Mul(left, right)
	default:
		return expr.Div(left, right)
	}
}

func randomCorpus(seed int64, n, depth int) []expr.Expression {
	rng := rand.New(rand.NewSource(seed))
	out := make([]expr.Expression, n)
	for i := range out {
		out[i] = randomExpr(rng, depth)
	}
	return out
}

// sameFloat compares bit patterns, treating any two NaNs as equal.
func sameFloat(a, b float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return math.IsNaN(a) && math.IsNaN(b)
	}
	return math.Float64bits(a) == math.Float64bits(b)
}
