// Package cycles decomposes scramble tables into disjoint cycles and computes
// their order as elements of the symmetric group.
//
// The order of a permutation is the least common multiple of its cycle
// lengths: applying the table that many times returns every index to its
// starting position. Orders are kept as [big.Int] because they grow
// super-polynomially with the table length.
package cycles

import (
	"fmt"
	"math/big"
	"slices"
	"strings"

	"github.com/san-kum/scramble/internal/scramble"
)

// Decomposition is the cycle structure of a table.
type Decomposition struct {
	// Counts maps a cycle length to the number of cycles of that length.
	Counts map[int]int
	// Order is the LCM of all cycle lengths present; 1 for the identity.
	Order *big.Int
}

// Analyze walks every cycle of p once. p must be a bijection.
func Analyze(p scramble.Permutation) Decomposition {
	n := len(p)
	visited := make([]bool, n)
	counts := make(map[int]int)

	for i := 0; i < n; i++ {
		if visited[i] {
			continue
		}
		length := 0
		for j := i; !visited[j]; j = p[j] {
			visited[j] = true
			length++
		}
		counts[length]++
	}

	order := big.NewInt(1)
	for length := range counts {
		lcm(order, big.NewInt(int64(length)))
	}

	return Decomposition{Counts: counts, Order: order}
}

// lcm sets acc to lcm(acc, v) and returns it.
func lcm(acc, v *big.Int) *big.Int {
	g := new(big.Int).GCD(nil, nil, acc, v)
	acc.Mul(acc, v)
	return acc.Quo(acc, g)
}

// Lengths returns the distinct cycle lengths in ascending order.
func (d Decomposition) Lengths() []int {
	out := make([]int, 0, len(d.Counts))
	for l := range d.Counts {
		out = append(out, l)
	}
	slices.Sort(out)
	return out
}

// Cycles returns the total number of cycles.
func (d Decomposition) Cycles() int {
	total := 0
	for _, c := range d.Counts {
		total += c
	}
	return total
}

// Size returns the number of elements covered, which equals the table length.
func (d Decomposition) Size() int {
	total := 0
	for l, c := range d.Counts {
		total += l * c
	}
	return total
}

// FixedPoints returns the number of 1-cycles.
func (d Decomposition) FixedPoints() int { return d.Counts[1] }

// OrderFloat returns the order as a float64, saturating to +Inf.
func (d Decomposition) OrderFloat() float64 {
	f, _ := new(big.Float).SetInt(d.Order).Float64()
	return f
}

// String renders the counts as {length: count, ...} sorted by length.
func (d Decomposition) String() string {
	parts := make([]string, 0, len(d.Counts))
	for _, l := range d.Lengths() {
		parts = append(parts, fmt.Sprintf("%d: %d", l, d.Counts[l]))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Order is a shortcut for Analyze(p).Order.
func Order(p scramble.Permutation) *big.Int {
	return Analyze(p).Order
}
