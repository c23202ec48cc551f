// Package optim searches a map family's parameter range for the value that
// maximizes an objective, such as the mean table order.
package optim

import (
	"context"
	"errors"
	"math"

	"github.com/hyp3rd/ewrap"

	"github.com/san-kum/scramble/internal/chaos"
	"github.com/san-kum/scramble/internal/stats"
)

// Objective scores one parameter value; higher is better.
type Objective func(ctx context.Context, p chaos.Param) (float64, error)

// Score is one evaluated grid point.
type Score struct {
	A     float64
	Value float64
	Err   error // non-nil when the objective failed for this a
}

type Result struct {
	Best   chaos.Param
	Value  float64
	Scores []Score
}

// GridSearch evaluates steps evenly spaced values strictly inside the
// family's range.
type GridSearch struct {
	kind  chaos.Kind
	steps int
}

func NewGridSearch(kind chaos.Kind, steps int) *GridSearch {
	return &GridSearch{kind: kind, steps: steps}
}

// Grid returns the parameter values the search visits.
func (g *GridSearch) Grid() []float64 {
	r := g.kind.Range()
	out := make([]float64, g.steps)
	for i := range out {
		out[i] = r.Min + (r.Max-r.Min)*float64(i+1)/float64(g.steps+1)
	}
	return out
}

// Search runs the objective over the grid. Points where the objective fails
// are recorded and skipped; the search fails only if every point fails or
// ctx is done.
func (g *GridSearch) Search(ctx context.Context, objective Objective) (*Result, error) {
	if g.steps <= 0 {
		return nil, ewrap.Wrapf(chaos.ErrInvalidParameter, "grid steps=%d must be positive", g.steps)
	}

	res := &Result{Value: math.Inf(-1)}
	var lastErr error

	for _, a := range g.Grid() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p, err := chaos.NewParam(g.kind, a)
		if err != nil {
			return nil, err
		}

		val, err := objective(ctx, p)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil, err
			}
			lastErr = err
			res.Scores = append(res.Scores, Score{A: a, Value: math.NaN(), Err: err})
			continue
		}

		res.Scores = append(res.Scores, Score{A: a, Value: val})
		if val > res.Value {
			res.Value = val
			res.Best = p
		}
	}

	if math.IsInf(res.Value, -1) {
		return nil, ewrap.Wrap(lastErr, "every grid point failed")
	}
	return res, nil
}

// MeanOrderAt scores a parameter by the mean order of tables of length N.
func MeanOrderAt(n, N, seedsPerN int, opts ...stats.Option) Objective {
	return func(ctx context.Context, p chaos.Param) (float64, error) {
		c, err := stats.AverageOrderVsN(ctx, p, n, []int{N}, seedsPerN, opts...)
		if err != nil {
			return 0, err
		}
		return c.Points[0].Mean, nil
	}
}
