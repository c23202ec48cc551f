package viz

import (
	"fmt"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/scramble/internal/stats"
)

// PlotCurve draws mean order against N.
func PlotCurve(c *stats.Curve, width, height int) string {
	return PlotCurves([]*stats.Curve{c}, nil, width, height)
}

// PlotCurves overlays several curves, labelled by legends when given.
func PlotCurves(curves []*stats.Curve, legends []string, width, height int) string {
	var first *stats.Curve
	series := make([][]float64, 0, len(curves))
	colors := make([]asciigraph.AnsiColor, 0, len(curves))
	for i, c := range curves {
		if c == nil || len(c.Points) == 0 {
			continue
		}
		if first == nil {
			first = c
		}
		series = append(series, c.Means())
		colors = append(colors, CurrentTheme.seriesColor(i))
	}
	if len(series) == 0 {
		return ""
	}

	opts := []asciigraph.Option{
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.LowerBound(0),
		asciigraph.SeriesColors(colors...),
		asciigraph.Caption(caption(first)),
	}
	if len(legends) == len(series) {
		opts = append(opts, asciigraph.SeriesLegends(legends...))
	}
	return asciigraph.PlotMany(series, opts...)
}

func caption(c *stats.Curve) string {
	ns := c.Ns()
	return fmt.Sprintf("average order vs N (N = %d … %d)", ns[0], ns[len(ns)-1])
}
