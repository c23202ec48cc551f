// Package export encodes scramble results as JSON reports and SVG images.
package export

import (
	"fmt"
	"io"
	"math/big"

	"github.com/goccy/go-json"
	"github.com/hyp3rd/ewrap"

	"github.com/san-kum/scramble/internal/cycles"
	"github.com/san-kum/scramble/internal/scramble"
	"github.com/san-kum/scramble/internal/stats"
)

// TableReport describes one generated table and its cycle structure.
// Orders are decimal strings since they can exceed 64 bits. Landau is left
// empty for tables longer than cycles.LandauLimit.
type TableReport struct {
	Map         string      `json:"map"`
	A           float64     `json:"a"`
	Iterations  int         `json:"iterations"`
	Length      int         `json:"length"`
	X0          float64     `json:"x0"`
	Seed        *int64      `json:"seed,omitempty"`
	Argsort     bool        `json:"argsort,omitempty"`
	Table       []int       `json:"table"`
	Cycles      map[int]int `json:"cycles"`
	Order       string      `json:"order"`
	Landau      string      `json:"landau,omitempty"`
	Fingerprint string      `json:"fingerprint"`
}

// TableInput bundles what NewTableReport needs besides the table itself.
type TableInput struct {
	Map        string
	A          float64
	Iterations int
	X0         float64
	Seed       *int64
	Argsort    bool
}

// NewTableReport builds the report for table p and its decomposition d.
func NewTableReport(in TableInput, p scramble.Permutation, d cycles.Decomposition) TableReport {
	counts := make(map[int]int, len(d.Counts))
	for l, c := range d.Counts {
		counts[l] = c
	}
	var landau string
	if len(p) <= cycles.LandauLimit {
		landau = cycles.Landau(len(p)).String()
	}
	return TableReport{
		Map:         in.Map,
		A:           in.A,
		Iterations:  in.Iterations,
		Length:      len(p),
		X0:          in.X0,
		Seed:        in.Seed,
		Argsort:     in.Argsort,
		Table:       []int(p.Clone()),
		Cycles:      counts,
		Order:       bigString(d.Order),
		Landau:      landau,
		Fingerprint: fmt.Sprintf("%016x", p.Fingerprint()),
	}
}

// CurveReport is the JSON form of a mean-order curve.
type CurveReport struct {
	Map        string        `json:"map"`
	A          float64       `json:"a"`
	Iterations int           `json:"iterations"`
	SeedsPerN  int           `json:"seeds_per_n"`
	Points     []stats.Point `json:"points"`
}

func NewCurveReport(c *stats.Curve) CurveReport {
	return CurveReport{
		Map:        c.Param.Kind.String(),
		A:          c.Param.A,
		Iterations: c.Iterations,
		SeedsPerN:  c.SeedsPerN,
		Points:     append([]stats.Point(nil), c.Points...),
	}
}

// WriteJSON writes v as indented JSON followed by a newline.
func WriteJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return ewrap.Wrap(err, "encode report")
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return ewrap.Wrap(err, "write report")
	}
	return nil
}

func bigString(x *big.Int) string {
	if x == nil {
		return "1"
	}
	return x.String()
}
