package analysis

import (
	"math"
	"strings"

	"github.com/hyp3rd/ewrap"

	"github.com/san-kum/scramble/internal/chaos"
)

// BifurcationPoint represents the attractor found for one parameter value
type BifurcationPoint struct {
	Param  float64
	Values []float64 // distinct visited values after the transient
}

// BifurcationDiagram sweeps a across the interior of the family's chaotic
// range and records the values the orbit visits. Endpoints are never
// sampled, so open ranges stay valid.
//
// Parameters:
// - kind: map family to sweep
// - paramSteps: number of parameter values to test
// - x0: initial state for every parameter
// - transient, record: iterations discarded and recorded
func BifurcationDiagram(kind chaos.Kind, paramSteps int, x0 float64, transient, record int) ([]BifurcationPoint, error) {
	if paramSteps <= 0 || transient < 0 || record <= 0 {
		return nil, ewrap.Wrapf(chaos.ErrInvalidParameter, "bifurcation: steps=%d transient=%d record=%d",
			paramSteps, transient, record)
	}

	r := kind.Range()
	width := r.Max - r.Min
	results := make([]BifurcationPoint, 0, paramSteps)

	for i := 0; i < paramSteps; i++ {
		p, err := chaos.NewParam(kind, r.Min+width*float64(i+1)/float64(paramSteps+1))
		if err != nil {
			return nil, err
		}

		x, err := chaos.Iterate(x0, transient, p)
		if err != nil {
			return nil, err
		}

		// Quantize to find distinct values
		values := make([]float64, 0, 100)
		seen := make(map[int]bool)
		for j := 0; j < record; j++ {
			if x, err = chaos.Iterate(x, 1, p); err != nil {
				return nil, err
			}
			if !finite(x) {
				break
			}
			key := int(math.Round(x * 1000))
			if !seen[key] {
				seen[key] = true
				values = append(values, x)
			}
		}

		results = append(results, BifurcationPoint{Param: p.A, Values: values})
	}

	return results, nil
}

// BifurcationToASCII converts bifurcation data to ASCII art
func BifurcationToASCII(data []BifurcationPoint, width, height int) string {
	if len(data) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	// Find value range - need at least one valid value
	var minVal, maxVal float64
	foundFirst := false
	for _, p := range data {
		for _, v := range p.Values {
			if !foundFirst {
				minVal, maxVal = v, v
				foundFirst = true
			} else {
				minVal = math.Min(minVal, v)
				maxVal = math.Max(maxVal, v)
			}
		}
	}
	if !foundFirst {
		return ""
	}

	if maxVal == minVal {
		maxVal = minVal + 1
	}

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	for i, p := range data {
		col := i * width / len(data)
		if col >= width {
			col = width - 1
		}

		for _, v := range p.Values {
			row := height - 1 - int((v-minVal)/(maxVal-minVal)*float64(height-1))
			if row >= 0 && row < height {
				canvas[row][col] = '•'
			}
		}
	}

	var b strings.Builder
	for _, row := range canvas {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}
