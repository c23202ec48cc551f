package analysis

import (
	"math"

	"github.com/hyp3rd/ewrap"

	"github.com/san-kum/scramble/internal/chaos"
)

// ErrDiverged indicates the orbit left the finite reals.
var ErrDiverged = ewrap.New("analysis: orbit diverged")

// LyapunovConfig controls the trajectory separation estimate.
type LyapunovConfig struct {
	Transient    int     // steps discarded before measuring
	Steps        int     // measured steps
	Perturbation float64 // initial and renormalized separation
}

func DefaultLyapunovConfig() LyapunovConfig {
	return LyapunovConfig{
		Transient:    1000,
		Steps:        20000,
		Perturbation: 1e-9,
	}
}

// LyapunovExponent estimates the largest Lyapunov exponent of the map by
// following two trajectories d0 apart and renormalizing their separation
// after every step:
//
//	λ ≈ (1/T) · Σ ln(|δx_t| / d0)
func LyapunovExponent(p chaos.Param, x0 float64, cfg LyapunovConfig) (float64, error) {
	if cfg.Steps <= 0 || cfg.Transient < 0 || !(cfg.Perturbation > 0) {
		return 0, ewrap.Wrapf(chaos.ErrInvalidParameter, "lyapunov: steps=%d transient=%d perturbation=%g",
			cfg.Steps, cfg.Transient, cfg.Perturbation)
	}

	x, err := chaos.Iterate(x0, cfg.Transient, p)
	if err != nil {
		return 0, err
	}
	if !finite(x) {
		return 0, ewrap.Wrapf(ErrDiverged, "%s during transient from x0=%g", p, x0)
	}

	d0 := cfg.Perturbation
	xp := x + d0

	sumLog := 0.0
	count := 0

	for i := 0; i < cfg.Steps; i++ {
		if x, err = chaos.Iterate(x, 1, p); err != nil {
			return 0, err
		}
		if xp, err = chaos.Iterate(xp, 1, p); err != nil {
			return 0, err
		}
		if !finite(x) || !finite(xp) {
			return 0, ewrap.Wrapf(ErrDiverged, "%s at step %d", p, i)
		}

		sep := math.Abs(xp - x)
		if sep == 0 {
			xp = x + d0
			continue
		}

		sumLog += math.Log(sep / d0)
		count++

		xp = x + (xp-x)*d0/sep
	}

	if count == 0 {
		return math.Inf(-1), nil
	}
	return sumLog / float64(count), nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
