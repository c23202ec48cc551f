// Package stats estimates how the average order of chaotic scramble tables
// grows with the table length.
//
// For every length N the estimator runs a fixed number of seeded trials
// (see package experiment). Trial s always seeds its own random source with
// s, so a curve is reproducible regardless of how trials are scheduled.
package stats

import (
	"context"
	"math"
	"math/big"
	"sync"

	"github.com/hyp3rd/ewrap"
	"golang.org/x/sync/errgroup"

	"github.com/san-kum/scramble/internal/chaos"
	"github.com/san-kum/scramble/internal/experiment"
)

const (
	DefaultFrom      = 10
	DefaultTo        = 30
	DefaultStep      = 1
	DefaultSeedsPerN = 100
)

// Point summarizes the trials for one table length.
type Point struct {
	N      int     `json:"n"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stddev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// Curve is the mean order as a function of N, in input order.
type Curve struct {
	Param      chaos.Param
	Iterations int
	SeedsPerN  int
	Points     []Point
}

// Ns returns the table lengths of the curve.
func (c *Curve) Ns() []int {
	out := make([]int, len(c.Points))
	for i, p := range c.Points {
		out[i] = p.N
	}
	return out
}

// Means returns the mean orders of the curve.
func (c *Curve) Means() []float64 {
	out := make([]float64, len(c.Points))
	for i, p := range c.Points {
		out[i] = p.Mean
	}
	return out
}

type options struct {
	workers  int
	progress func(done, total int)
}

type Option func(*options)

// WithWorkers runs up to k trials at once. Values below 2 run sequentially.
func WithWorkers(k int) Option {
	return func(o *options) { o.workers = k }
}

// WithProgress registers a callback invoked after every finished trial.
func WithProgress(fn func(done, total int)) Option {
	return func(o *options) { o.progress = fn }
}

// DefaultNs returns the lengths 10 through 30.
func DefaultNs() []int {
	ns, _ := Range(DefaultFrom, DefaultTo, DefaultStep)
	return ns
}

// Range returns from, from+step, ... up to and including to.
func Range(from, to, step int) ([]int, error) {
	if from <= 0 || to < from || step <= 0 {
		return nil, ewrap.Wrapf(chaos.ErrInvalidParameter, "range from=%d to=%d step=%d", from, to, step)
	}
	ns := make([]int, 0, (to-from)/step+1)
	for n := from; n <= to; n += step {
		ns = append(ns, n)
	}
	return ns, nil
}

// AverageOrderVsN runs seedsPerN trials for every N in ns and returns the
// mean order per N. Any failing trial aborts the run and no curve is returned.
func AverageOrderVsN(ctx context.Context, p chaos.Param, n int, ns []int, seedsPerN int, opts ...Option) (*Curve, error) {
	o := options{workers: 1}
	for _, opt := range opts {
		opt(&o)
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, ewrap.Wrapf(chaos.ErrInvalidParameter, "iterations=%d must be non-negative", n)
	}
	if seedsPerN <= 0 {
		return nil, ewrap.Wrapf(chaos.ErrInvalidParameter, "seeds per N=%d must be positive", seedsPerN)
	}
	for _, N := range ns {
		if N <= 0 {
			return nil, ewrap.Wrapf(chaos.ErrInvalidParameter, "table length N=%d must be positive", N)
		}
	}

	orders := make([][]*big.Int, len(ns))
	for i := range orders {
		orders[i] = make([]*big.Int, seedsPerN)
	}

	total := len(ns) * seedsPerN
	var mu sync.Mutex
	done := 0

	trial := func(ctx context.Context, i, s int) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		sample, err := experiment.Trial(experiment.Config{
			Param:      p,
			Iterations: n,
			Length:     ns[i],
			Seed:       int64(s),
		})
		if err != nil {
			return err
		}
		orders[i][s] = sample.Order

		if o.progress != nil {
			mu.Lock()
			done++
			o.progress(done, total)
			mu.Unlock()
		}
		return nil
	}

	if o.workers < 2 {
		for i := range ns {
			for s := 0; s < seedsPerN; s++ {
				if err := trial(ctx, i, s); err != nil {
					return nil, err
				}
			}
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(o.workers)
		for i := range ns {
			for s := 0; s < seedsPerN; s++ {
				g.Go(func() error { return trial(gctx, i, s) })
			}
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	curve := &Curve{
		Param:      p,
		Iterations: n,
		SeedsPerN:  seedsPerN,
		Points:     make([]Point, len(ns)),
	}
	for i, N := range ns {
		curve.Points[i] = summarize(N, orders[i])
	}
	return curve, nil
}

func summarize(N int, orders []*big.Int) Point {
	sum := new(big.Int)
	lo, hi := orders[0], orders[0]
	for _, o := range orders {
		sum.Add(sum, o)
		if o.Cmp(lo) < 0 {
			lo = o
		}
		if o.Cmp(hi) > 0 {
			hi = o
		}
	}

	count := float64(len(orders))
	mean, _ := new(big.Float).Quo(new(big.Float).SetInt(sum), big.NewFloat(count)).Float64()

	variance := 0.0
	for _, o := range orders {
		d := toFloat(o) - mean
		variance += d * d
	}

	return Point{
		N:      N,
		Mean:   mean,
		StdDev: math.Sqrt(variance / count),
		Min:    toFloat(lo),
		Max:    toFloat(hi),
	}
}

func toFloat(v *big.Int) float64 {
	f, _ := new(big.Float).SetInt(v).Float64()
	return f
}
