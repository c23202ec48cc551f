// Package automation runs scripted sequences of tables and curves from a
// YAML scenario file.
package automation

import (
	"context"
	"os"

	"github.com/hyp3rd/ewrap"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/scramble/internal/chaos"
	"github.com/san-kum/scramble/internal/cycles"
	"github.com/san-kum/scramble/internal/experiment"
	"github.com/san-kum/scramble/internal/scramble"
	"github.com/san-kum/scramble/internal/stats"
)

const (
	ModeTable = "table"
	ModeCurve = "curve"
)

// Scenario defines a scripted sequence of runs
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is a single run in a scenario. Curve fields default to the
// stats defaults when zero.
type ScenarioStep struct {
	Name       string  `yaml:"name"`
	Mode       string  `yaml:"mode"`
	Map        string  `yaml:"map"`
	A          float64 `yaml:"a"`
	Iterations int     `yaml:"iterations"`
	Length     int     `yaml:"length"`
	Seed       int64   `yaml:"seed"`
	From       int     `yaml:"from"`
	To         int     `yaml:"to"`
	Step       int     `yaml:"step"`
	Seeds      int     `yaml:"seeds_per_n"`
}

// StepResult holds what one step produced; Table or Curve depending on Mode.
type StepResult struct {
	Step   ScenarioStep
	Param  chaos.Param
	X0     float64
	Table  scramble.Permutation
	Cycles cycles.Decomposition
	Curve  *stats.Curve
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ewrap.Wrap(err, "read scenario")
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, ewrap.Wrap(err, "parse scenario")
	}
	if len(scenario.Steps) == 0 {
		return nil, ewrap.Wrapf(chaos.ErrInvalidParameter, "scenario %q has no steps", scenario.Name)
	}

	return &scenario, nil
}

// RunScenario executes all steps in order and stops at the first failure,
// returning the results gathered so far. onStep, if set, is called before
// each step.
func RunScenario(ctx context.Context, scenario *Scenario, onStep func(i, total int, step ScenarioStep), opts ...stats.Option) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		if onStep != nil {
			onStep(i, len(scenario.Steps), step)
		}

		res, err := runStep(ctx, step, opts...)
		if err != nil {
			return results, ewrap.Wrapf(err, "step %d", i+1)
		}
		results = append(results, res)
	}

	return results, nil
}

func runStep(ctx context.Context, step ScenarioStep, opts ...stats.Option) (StepResult, error) {
	kind, err := chaos.ParseKind(step.Map)
	if err != nil {
		return StepResult{}, err
	}
	p, err := chaos.NewParam(kind, step.A)
	if err != nil {
		return StepResult{}, err
	}
	res := StepResult{Step: step, Param: p}

	switch step.Mode {
	case ModeTable, "":
		res.X0 = experiment.InitialState(step.Seed)
		res.Table, err = scramble.Generate(p, res.X0, step.Iterations, step.Length)
		if err != nil {
			return StepResult{}, err
		}
		res.Cycles = cycles.Analyze(res.Table)

	case ModeCurve:
		from, to, inc, seeds := step.From, step.To, step.Step, step.Seeds
		if from == 0 {
			from = stats.DefaultFrom
		}
		if to == 0 {
			to = stats.DefaultTo
		}
		if inc == 0 {
			inc = stats.DefaultStep
		}
		if seeds == 0 {
			seeds = stats.DefaultSeedsPerN
		}
		ns, err := stats.Range(from, to, inc)
		if err != nil {
			return StepResult{}, err
		}
		res.Curve, err = stats.AverageOrderVsN(ctx, p, step.Iterations, ns, seeds, opts...)
		if err != nil {
			return StepResult{}, err
		}

	default:
		return StepResult{}, ewrap.Wrapf(chaos.ErrInvalidParameter, "unknown mode %q", step.Mode)
	}

	return res, nil
}
