// Package viz renders scramble tables and order curves for the terminal.
//
//   - [PlotCurve] and [PlotCurves]: asciigraph line plots of mean order vs N
//   - [DotPlot]: Braille scatter of a table (index → image)
//   - [Canvas]: Braille-based pixel canvas, 2x4 dots per cell
//   - Theme selection with built-in color schemes ([SetTheme])
//
// Output is plain strings; callers decide where to print them.
package viz
