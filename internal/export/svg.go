package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/scramble/internal/stats"
	"github.com/san-kum/scramble/internal/viz"
)

// CanvasToSVG converts a Braille canvas to SVG format, one circle per dot.
func CanvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Width) * scale * 2   // 2 sub-pixels per char
	height := float64(canvas.Height) * scale * 4 // 4 sub-pixels per char

	var sb strings.Builder
	writeHeader(&sb, width, height)
	sb.WriteString("<g fill=\"#00ff00\">\n")

	dotRadius := scale * 0.4
	for y := 0; y < canvas.Height*4; y++ {
		for x := 0; x < canvas.Width*2; x++ {
			if !canvas.IsSet(x, y) {
				continue
			}
			cx := float64(x)*scale + scale/2
			cy := float64(y)*scale + scale/2
			fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n", cx, cy, dotRadius)
		}
	}

	sb.WriteString("</g>\n</svg>\n")
	return sb.String()
}

var curveColors = []string{"#00ffff", "#ff00ff", "#ffd700", "#00ff88"}

const svgMargin = 40.0

// CurveToSVG draws mean order against N as polylines, one per curve,
// sharing axes. The y axis starts at zero.
func CurveToSVG(curves []*stats.Curve, width, height int) string {
	minN, maxN := math.MaxInt, math.MinInt
	maxMean := 0.0
	for _, c := range curves {
		if c == nil {
			continue
		}
		for _, p := range c.Points {
			minN = min(minN, p.N)
			maxN = max(maxN, p.N)
			maxMean = max(maxMean, p.Mean)
		}
	}
	if minN > maxN {
		return ""
	}

	rangeN := float64(maxN - minN)
	if rangeN == 0 {
		rangeN = 1
	}
	if maxMean == 0 {
		maxMean = 1
	}
	maxMean *= 1.1

	w, h := float64(width), float64(height)
	plotW, plotH := w-2*svgMargin, h-2*svgMargin
	toX := func(n int) float64 { return svgMargin + float64(n-minN)/rangeN*plotW }
	toY := func(m float64) float64 { return h - svgMargin - m/maxMean*plotH }

	var sb strings.Builder
	writeHeader(&sb, w, h)

	// axes
	fmt.Fprintf(&sb, "<path fill=\"none\" stroke=\"#666666\" d=\"M%.1f,%.1f L%.1f,%.1f L%.1f,%.1f\"/>\n",
		svgMargin, svgMargin, svgMargin, h-svgMargin, w-svgMargin, h-svgMargin)
	fmt.Fprintf(&sb, "<g fill=\"#888888\" font-family=\"monospace\" font-size=\"11\">\n")
	fmt.Fprintf(&sb, "<text x=\"%.1f\" y=\"%.1f\">%d</text>\n", svgMargin, h-svgMargin/2, minN)
	fmt.Fprintf(&sb, "<text x=\"%.1f\" y=\"%.1f\" text-anchor=\"end\">%d</text>\n", w-svgMargin, h-svgMargin/2, maxN)
	fmt.Fprintf(&sb, "<text x=\"%.1f\" y=\"%.1f\" text-anchor=\"end\">%.0f</text>\n", svgMargin-4, svgMargin, maxMean)
	fmt.Fprintf(&sb, "<text x=\"%.1f\" y=\"%.1f\" text-anchor=\"middle\">N</text>\n", w/2, h-svgMargin/4)
	sb.WriteString("</g>\n")

	for i, c := range curves {
		if c == nil || len(c.Points) == 0 {
			continue
		}
		fmt.Fprintf(&sb, "<path fill=\"none\" stroke=\"%s\" stroke-width=\"1.5\" d=\"", curveColors[i%len(curveColors)])
		for j, p := range c.Points {
			cmd := " L"
			if j == 0 {
				cmd = "M"
			}
			fmt.Fprintf(&sb, "%s%.1f,%.1f", cmd, toX(p.N), toY(p.Mean))
		}
		sb.WriteString("\"/>\n")
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

func writeHeader(sb *strings.Builder, width, height float64) {
	fmt.Fprintf(sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height)
}
