package chaos

import (
	"fmt"
	"math"
	"strings"

	"github.com/hyp3rd/ewrap"
)

// Kind identifies one of the supported map families.
type Kind int

const (
	Logistic Kind = iota
	Singer
	PWLCM
)

// Kinds lists every supported family in display order.
var Kinds = []Kind{Logistic, Singer, PWLCM}

// Range is the parameter interval on which a family behaves chaotically.
type Range struct {
	Min, Max     float64
	MinInclusive bool
	MaxInclusive bool
}

// Contains reports whether a lies inside the range. NaN is never contained.
func (r Range) Contains(a float64) bool {
	if math.IsNaN(a) {
		return false
	}
	if a < r.Min || (a == r.Min && !r.MinInclusive) {
		return false
	}
	if a > r.Max || (a == r.Max && !r.MaxInclusive) {
		return false
	}
	return true
}

func (r Range) String() string {
	lo, hi := "(", ")"
	if r.MinInclusive {
		lo = "["
	}
	if r.MaxInclusive {
		hi = "]"
	}
	return fmt.Sprintf("%s%g, %g%s", lo, r.Min, r.Max, hi)
}

var ranges = map[Kind]Range{
	Logistic: {Min: 3.57, Max: 4},
	Singer:   {Min: 0.9, Max: 1.08, MinInclusive: true, MaxInclusive: true},
	PWLCM:    {Min: 0, Max: 1},
}

var names = map[Kind]string{
	Logistic: "logistic",
	Singer:   "singer",
	PWLCM:    "pwlcm",
}

var descriptions = map[Kind]string{
	Logistic: "quadratic population map",
	Singer:   "quartic polynomial map",
	PWLCM:    "piecewise-linear chaotic map",
}

func (k Kind) String() string {
	if name, ok := names[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Range returns the chaotic parameter range of the family.
func (k Kind) Range() Range { return ranges[k] }

// Description is a short human-readable summary of the family.
func (k Kind) Description() string { return descriptions[k] }

func (k Kind) valid() bool {
	_, ok := names[k]
	return ok
}

// ParseKind resolves a family name, ignoring case and surrounding space.
func ParseKind(name string) (Kind, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, k := range Kinds {
		if names[k] == n {
			return k, nil
		}
	}
	return 0, ewrap.Wrapf(ErrInvalidMapName, "%q (want one of: %s)", name, strings.Join(KindNames(), ", "))
}

// KindNames returns the names of all families in display order.
func KindNames() []string {
	out := make([]string, len(Kinds))
	for i, k := range Kinds {
		out[i] = k.String()
	}
	return out
}

// Param is a map family together with its control parameter a.
type Param struct {
	Kind Kind
	A    float64
}

// NewParam validates a against the family's chaotic range.
func NewParam(kind Kind, a float64) (Param, error) {
	p := Param{Kind: kind, A: a}
	if err := p.Validate(); err != nil {
		return Param{}, err
	}
	return p, nil
}

// Validate checks the family and the parameter range.
func (p Param) Validate() error {
	if !p.Kind.valid() {
		return ewrap.Wrapf(ErrInvalidMapName, "%s", p.Kind)
	}
	r := p.Kind.Range()
	if !r.Contains(p.A) {
		return ewrap.Wrapf(ErrInvalidParameter, "%s: a=%g outside %s", p.Kind, p.A, r)
	}
	return nil
}

func (p Param) String() string {
	return fmt.Sprintf("%s(a=%g)", p.Kind, p.A)
}

// step applies one iteration of the family's recurrence.
func (p Param) step(x float64) float64 {
	a := p.A
	switch p.Kind {
	case Logistic:
		return a * x * (1 - x)
	case Singer:
		x2 := x * x
		x3 := x2 * x
		x4 := x2 * x2
		return a * (7.86*x - 23.31*x2 + 28.75*x3 - 13.302875*x4)
	case PWLCM:
		if x < a {
			return x / a
		}
		return (1 - a) * (1 - x)
	}
	return x
}

// Iterate applies the map n times starting from x0 and returns the final
// state. The parameter is validated before the first step; divergence during
// iteration is not checked.
func Iterate(x0 float64, n int, p Param) (float64, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, ewrap.Wrapf(ErrInvalidParameter, "iterations=%d must be non-negative", n)
	}
	return p.iterate(x0, n), nil
}

func (p Param) iterate(x float64, n int) float64 {
	for i := 0; i < n; i++ {
		x = p.step(x)
	}
	return x
}

// Orbit returns steps successive n-fold iterates: the first element is
// Iterate(x0, n), each following element iterates the previous one.
func Orbit(x0 float64, n, steps int, p Param) ([]float64, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, ewrap.Wrapf(ErrInvalidParameter, "iterations=%d must be non-negative", n)
	}
	if steps < 0 {
		return nil, ewrap.Wrapf(ErrInvalidParameter, "steps=%d must be non-negative", steps)
	}
	out := make([]float64, steps)
	x := x0
	for i := range out {
		x = p.iterate(x, n)
		out[i] = x
	}
	return out, nil
}
