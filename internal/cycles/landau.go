package cycles

import (
	"math"
	"math/big"
)

// LandauLimit is the largest n for which callers should ask for Landau(n)
// on an interactive path; Landau(LandauLimit) takes tens of milliseconds.
const LandauLimit = 20000

// factor is one prime power in a best-so-far product, shared between
// knapsack cells as an immutable list.
type factor struct {
	pk   int64
	next *factor
}

// Landau returns g(n), the largest order of any permutation of n elements.
// It bounds every value Analyze can report for a table of length n.
//
// The knapsack runs on logarithms; only the winning prime powers are
// multiplied out. Cost is about n·π(n) float operations.
func Landau(n int) *big.Int {
	if n < 1 {
		return big.NewInt(1)
	}

	// logBest[s] is the largest log-product of powers of distinct primes
	// summing to at most s; the remainder is filled with fixed points.
	logBest := make([]float64, n+1)
	chosen := make([]*factor, n+1)

	for _, p := range primes(n) {
		lp := math.Log(float64(p))
		// descending s keeps logBest[s-pk] free of p
		for s := n; s >= p; s-- {
			k := 1.0
			for pk := p; pk <= s; pk *= p {
				if cand := logBest[s-pk] + k*lp; cand > logBest[s] {
					logBest[s] = cand
					chosen[s] = &factor{pk: int64(pk), next: chosen[s-pk]}
				}
				k++
			}
		}
	}

	g := big.NewInt(1)
	for f := chosen[n]; f != nil; f = f.next {
		g.Mul(g, big.NewInt(f.pk))
	}
	return g
}

func primes(n int) []int {
	composite := make([]bool, n+1)
	var out []int
	for i := 2; i <= n; i++ {
		if composite[i] {
			continue
		}
		out = append(out, i)
		for j := i * i; j <= n; j += i {
			composite[j] = true
		}
	}
	return out
}
