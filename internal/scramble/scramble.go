// Package scramble turns chaotic orbits into scramble tables.
//
// A table of length N is built by driving a [chaos.Param] N times from a seed
// state and ranking the resulting real values. The value at position i of
// the table is the rank of the i-th orbit value, so the table is always a
// bijection on {0, ..., N-1}.
package scramble

import (
	"encoding/binary"
	"slices"

	"github.com/cespare/xxhash/v2"
	"github.com/hyp3rd/ewrap"

	"github.com/san-kum/scramble/internal/chaos"
)

// Sequence is the real-valued orbit a table is ranked from.
type Sequence []float64

// Permutation is a bijection on {0, ..., len-1}.
type Permutation []int

// NewSequence drives the map N times from x0; each element is the n-fold
// iterate of the previous one.
func NewSequence(p chaos.Param, x0 float64, n, N int) (Sequence, error) {
	if N <= 0 {
		return nil, ewrap.Wrapf(chaos.ErrInvalidParameter, "table length N=%d must be positive", N)
	}
	orbit, err := chaos.Orbit(x0, n, N, p)
	if err != nil {
		return nil, err
	}
	return Sequence(orbit), nil
}

// Generate builds the scramble table for (p, x0, n, N).
func Generate(p chaos.Param, x0 float64, n, N int) (Permutation, error) {
	seq, err := NewSequence(p, x0, n, N)
	if err != nil {
		return nil, err
	}
	return Rank(seq), nil
}

// Order returns the indices of seq sorted by ascending value. Equal values
// keep their index order.
func Order(seq Sequence) []int {
	idx := make([]int, len(seq))
	for i := range idx {
		idx[i] = i
	}
	slices.SortStableFunc(idx, func(a, b int) int {
		switch {
		case seq[a] < seq[b]:
			return -1
		case seq[a] > seq[b]:
			return 1
		}
		return 0
	})
	return idx
}

// Rank maps every position to the rank of its value in seq.
func Rank(seq Sequence) Permutation {
	return Permutation(Order(seq)).Inverse()
}

// Len returns the table length.
func (p Permutation) Len() int { return len(p) }

// Valid reports whether p is a bijection on {0, ..., len-1}.
func (p Permutation) Valid() bool {
	seen := make([]bool, len(p))
	for _, v := range p {
		if v < 0 || v >= len(p) || seen[v] {
			return false
		}
		seen[v] = true
	}
	return true
}

// Inverse returns q with q[p[i]] = i.
func (p Permutation) Inverse() Permutation {
	q := make(Permutation, len(p))
	for i, v := range p {
		q[v] = i
	}
	return q
}

// Apply follows i through the table k times.
func (p Permutation) Apply(i, k int) int {
	for ; k > 0; k-- {
		i = p[i]
	}
	return i
}

// Compose returns the table that applies q first, then p.
func (p Permutation) Compose(q Permutation) Permutation {
	r := make(Permutation, len(q))
	for i, v := range q {
		r[i] = p[v]
	}
	return r
}

// IsIdentity reports whether every index is a fixed point.
func (p Permutation) IsIdentity() bool {
	for i, v := range p {
		if i != v {
			return false
		}
	}
	return true
}

// Fingerprint is a 64-bit xxhash of the table, stable across platforms.
func (p Permutation) Fingerprint() uint64 {
	d := xxhash.New()
	var buf [8]byte
	for _, v := range p {
		binary.LittleEndian.PutUint64(buf[:], uint64(v))
		_, _ = d.Write(buf[:])
	}
	return d.Sum64()
}

// Clone returns an independent copy.
func (p Permutation) Clone() Permutation {
	return slices.Clone(p)
}

// Identity returns the identity table of length n.
func Identity(n int) Permutation {
	p := make(Permutation, n)
	for i := range p {
		p[i] = i
	}
	return p
}
