package experiment

import (
	"math/big"
	"math/rand"

	"github.com/san-kum/scramble/internal/chaos"
	"github.com/san-kum/scramble/internal/cycles"
	"github.com/san-kum/scramble/internal/scramble"
)

// Config describes one order sample: a table of Length entries built with
// Iterations map steps per entry, started from a seeded initial state.
type Config struct {
	Param      chaos.Param
	Iterations int
	Length     int
	Seed       int64
}

// Sample is the outcome of one trial.
type Sample struct {
	N     int
	Seed  int64
	X0    float64
	Order *big.Int
}

// Experiment owns the random source of a single trial. The source is seeded
// from cfg.Seed and never shared, so a trial is reproducible on its own.
type Experiment struct {
	cfg        Config
	randSource *rand.Rand
}

func New(cfg Config) *Experiment {
	return &Experiment{
		cfg:        cfg,
		randSource: rand.New(rand.NewSource(cfg.Seed)),
	}
}

// InitialState draws the trial's starting point uniformly from [0, 1).
func InitialState(seed int64) float64 {
	return rand.New(rand.NewSource(seed)).Float64()
}

// Run draws x0, builds the table and returns its order.
func (e *Experiment) Run() (Sample, error) {
	x0 := e.randSource.Float64()
	table, err := scramble.Generate(e.cfg.Param, x0, e.cfg.Iterations, e.cfg.Length)
	if err != nil {
		return Sample{}, err
	}
	return Sample{
		N:     e.cfg.Length,
		Seed:  e.cfg.Seed,
		X0:    x0,
		Order: cycles.Order(table),
	}, nil
}

// Trial is a convenience wrapper for New(cfg).Run().
func Trial(cfg Config) (Sample, error) {
	return New(cfg).Run()
}
