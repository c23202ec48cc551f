package cycles_test

import (
	"math/big"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/scramble/internal/chaos"
	"github.com/san-kum/scramble/internal/cycles"
	"github.com/san-kum/scramble/internal/scramble"
)

func randomTables(seed int64, count, maxLen int) []scramble.Permutation {
	rng := rand.New(rand.NewSource(seed))
	out := make([]scramble.Permutation, count)
	for i := range out {
		out[i] = scramble.Permutation(rng.Perm(1 + rng.Intn(maxLen)))
	}
	return out
}

var _ = Describe("Analyze", func() {
	tables := randomTables(7, 200, 30)

	It("partitions every table into cycles covering all indices", func() {
		for _, p := range tables {
			d := cycles.Analyze(p)
			Expect(d.Size()).To(Equal(len(p)), "table %v", p)
			for length, count := range d.Counts {
				Expect(length).To(BeNumerically(">", 0))
				Expect(count).To(BeNumerically(">", 0))
			}
		}
	})

	It("reports an order divisible by every cycle length", func() {
		for _, p := range tables {
			d := cycles.Analyze(p)
			for _, length := range d.Lengths() {
				rem := new(big.Int).Rem(d.Order, big.NewInt(int64(length)))
				Expect(rem.Sign()).To(Equal(0), "order %s, length %d", d.Order, length)
			}
		}
	})

	It("reports the smallest power that returns every index home", func() {
		for _, p := range tables {
			order := int(cycles.Analyze(p).Order.Int64())

			power := scramble.Identity(len(p))
			for k := 1; k <= order; k++ {
				power = p.Compose(power)
				if k < order {
					Expect(power.IsIdentity()).To(BeFalse(), "table %v returned home after %d < %d", p, k, order)
				}
			}
			Expect(power.IsIdentity()).To(BeTrue(), "table %v not home after %d", p, order)

			for i := range p {
				Expect(p.Apply(i, order)).To(Equal(i))
			}
		}
	})

	It("never exceeds Landau's bound", func() {
		for _, p := range tables {
			Expect(cycles.Order(p).Cmp(cycles.Landau(len(p)))).To(BeNumerically("<=", 0))
		}
	})

	It("is invariant under inversion", func() {
		for _, p := range tables {
			a, b := cycles.Analyze(p), cycles.Analyze(p.Inverse())
			Expect(b.Counts).To(Equal(a.Counts))
			Expect(b.Order.Cmp(a.Order)).To(Equal(0))
		}
	})

	Context("with chaotic tables", func() {
		It("treats a single-element table as the identity", func() {
			for _, kind := range chaos.Kinds {
				a := kind.Range().Min + (kind.Range().Max-kind.Range().Min)/2
				p, err := chaos.NewParam(kind, a)
				Expect(err).NotTo(HaveOccurred())

				table, err := scramble.Generate(p, 0.3, 4, 1)
				Expect(err).NotTo(HaveOccurred())
				Expect(table).To(Equal(scramble.Permutation{0}))

				d := cycles.Analyze(table)
				Expect(d.Counts).To(Equal(map[int]int{1: 1}))
				Expect(d.Order.Int64()).To(Equal(int64(1)))
			}
		})

		It("reproduces the pinned logistic table", func() {
			p, err := chaos.NewParam(chaos.Logistic, 3.9)
			Expect(err).NotTo(HaveOccurred())

			for run := 0; run < 3; run++ {
				table, err := scramble.Generate(p, 0.5, 5, 8)
				Expect(err).NotTo(HaveOccurred())
				Expect(table).To(Equal(scramble.Permutation{4, 0, 3, 1, 2, 7, 6, 5}))

				d := cycles.Analyze(table)
				Expect(d.Counts).To(Equal(map[int]int{1: 1, 2: 1, 5: 1}))
				Expect(d.Order.Int64()).To(Equal(int64(10)))
			}
		})
	})
})
