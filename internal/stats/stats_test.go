package stats_test

import (
	"context"
	"math"
	"math/big"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/scramble/internal/chaos"
	"github.com/san-kum/scramble/internal/cycles"
	"github.com/san-kum/scramble/internal/experiment"
	"github.com/san-kum/scramble/internal/stats"
)

func factorial(n int) *big.Int {
	return new(big.Int).MulRange(1, int64(n))
}

var _ = Describe("AverageOrderVsN", func() {
	var (
		ctx      context.Context
		logistic chaos.Param
	)

	BeforeEach(func() {
		ctx = context.Background()
		var err error
		logistic, err = chaos.NewParam(chaos.Logistic, 3.9)
		Expect(err).NotTo(HaveOccurred())
	})

	It("averages the per-seed orders", func() {
		ns := []int{8, 12}
		curve, err := stats.AverageOrderVsN(ctx, logistic, 5, ns, 10)
		Expect(err).NotTo(HaveOccurred())
		Expect(curve.Points).To(HaveLen(2))

		for i, N := range ns {
			sum := 0.0
			lo, hi := math.Inf(1), math.Inf(-1)
			for s := 0; s < 10; s++ {
				sample, err := experiment.Trial(experiment.Config{Param: logistic, Iterations: 5, Length: N, Seed: int64(s)})
				Expect(err).NotTo(HaveOccurred())
				v := float64(sample.Order.Int64())
				sum += v
				lo = math.Min(lo, v)
				hi = math.Max(hi, v)
			}
			pt := curve.Points[i]
			Expect(pt.N).To(Equal(N))
			Expect(pt.Mean).To(BeNumerically("~", sum/10, 1e-9))
			Expect(pt.Min).To(Equal(lo))
			Expect(pt.Max).To(Equal(hi))
			Expect(pt.StdDev).To(BeNumerically(">=", 0))
		}
	})

	It("preserves the order of the requested lengths", func() {
		ns := []int{20, 10, 15}
		curve, err := stats.AverageOrderVsN(ctx, logistic, 5, ns, 5)
		Expect(err).NotTo(HaveOccurred())
		Expect(curve.Ns()).To(Equal(ns))

		sorted, err := stats.AverageOrderVsN(ctx, logistic, 5, []int{10, 15, 20}, 5)
		Expect(err).NotTo(HaveOccurred())
		Expect(curve.Points[0]).To(Equal(sorted.Points[2]))
		Expect(curve.Points[1]).To(Equal(sorted.Points[0]))
		Expect(curve.Points[2]).To(Equal(sorted.Points[1]))
	})

	It("is reproducible and independent of the worker count", func() {
		ns := []int{10, 11, 12, 13}
		seq, err := stats.AverageOrderVsN(ctx, logistic, 5, ns, 20)
		Expect(err).NotTo(HaveOccurred())
		again, err := stats.AverageOrderVsN(ctx, logistic, 5, ns, 20)
		Expect(err).NotTo(HaveOccurred())
		par, err := stats.AverageOrderVsN(ctx, logistic, 5, ns, 20, stats.WithWorkers(4))
		Expect(err).NotTo(HaveOccurred())

		Expect(again.Points).To(Equal(seq.Points))
		Expect(par.Points).To(Equal(seq.Points))
	})

	It("reports progress for every trial", func() {
		calls := 0
		last := 0
		_, err := stats.AverageOrderVsN(ctx, logistic, 2, []int{5, 6}, 3,
			stats.WithProgress(func(done, total int) {
				calls++
				last = done
				Expect(total).To(Equal(6))
			}))
		Expect(err).NotTo(HaveOccurred())
		Expect(calls).To(Equal(6))
		Expect(last).To(Equal(6))
	})

	DescribeTable("stays within the group-theoretic bounds on the default range",
		func(kind chaos.Kind, a float64) {
			p, err := chaos.NewParam(kind, a)
			Expect(err).NotTo(HaveOccurred())

			curve, err := stats.AverageOrderVsN(ctx, p, 5, stats.DefaultNs(), stats.DefaultSeedsPerN, stats.WithWorkers(4))
			Expect(err).NotTo(HaveOccurred())
			Expect(curve.Points).To(HaveLen(21))

			for _, pt := range curve.Points {
				landau, _ := new(big.Float).SetInt(cycles.Landau(pt.N)).Float64()
				fact, _ := new(big.Float).SetInt(factorial(pt.N)).Float64()
				Expect(pt.Mean).To(BeNumerically(">=", 1))
				Expect(pt.Mean).To(BeNumerically("<=", landau))
				Expect(pt.Mean).To(BeNumerically("<=", fact))
				Expect(pt.Max).To(BeNumerically("<=", landau))
				Expect(pt.Min).To(BeNumerically(">=", 1))
			}
		},
		Entry("logistic", chaos.Logistic, 3.9),
		Entry("singer", chaos.Singer, 1.07),
		Entry("pwlcm", chaos.PWLCM, 0.3),
	)

	Context("with invalid input", func() {
		It("rejects an out-of-range parameter before running", func() {
			calls := 0
			_, err := stats.AverageOrderVsN(ctx, chaos.Param{Kind: chaos.Logistic, A: 3.57}, 5, []int{10}, 5,
				stats.WithProgress(func(int, int) { calls++ }))
			Expect(err).To(MatchError(chaos.ErrInvalidParameter))
			Expect(calls).To(BeZero())
		})

		It("rejects non-positive lengths and seed counts", func() {
			_, err := stats.AverageOrderVsN(ctx, logistic, 5, []int{10, 0}, 5)
			Expect(err).To(MatchError(chaos.ErrInvalidParameter))

			_, err = stats.AverageOrderVsN(ctx, logistic, 5, []int{10}, 0)
			Expect(err).To(MatchError(chaos.ErrInvalidParameter))
		})

		It("returns no curve when the context is cancelled", func() {
			cancelled, cancel := context.WithCancel(ctx)
			cancel()

			curve, err := stats.AverageOrderVsN(cancelled, logistic, 5, []int{10}, 5)
			Expect(err).To(MatchError(context.Canceled))
			Expect(curve).To(BeNil())

			curve, err = stats.AverageOrderVsN(cancelled, logistic, 5, []int{10}, 5, stats.WithWorkers(3))
			Expect(err).To(MatchError(context.Canceled))
			Expect(curve).To(BeNil())
		})
	})
})

var _ = Describe("Range", func() {
	It("includes both ends", func() {
		ns, err := stats.Range(10, 30, 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(ns).To(HaveLen(21))
		Expect(ns[0]).To(Equal(10))
		Expect(ns[20]).To(Equal(30))
		Expect(stats.DefaultNs()).To(Equal(ns))
	})

	It("honours the step", func() {
		ns, err := stats.Range(4, 13, 3)
		Expect(err).NotTo(HaveOccurred())
		Expect(ns).To(Equal([]int{4, 7, 10, 13}))
	})

	It("rejects empty or non-positive ranges", func() {
		for _, args := range [][3]int{{0, 10, 1}, {10, 5, 1}, {1, 10, 0}} {
			_, err := stats.Range(args[0], args[1], args[2])
			Expect(err).To(MatchError(chaos.ErrInvalidParameter))
		}
	})
})
