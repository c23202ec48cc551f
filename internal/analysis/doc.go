// Package analysis provides tools for judging whether a map family is a good
// permutation source.
//
// The package includes:
//
//   - [LyapunovExponent]: largest Lyapunov exponent via trajectory separation
//   - [BifurcationDiagram]: attractor values across the family's parameter range
//   - [BifurcationToASCII]: terminal rendering of a bifurcation diagram
//
// # Chaos Detection
//
// A positive exponent indicates sensitive dependence on the initial state,
// which is what makes nearby seeds produce unrelated scramble tables:
//
//	lambda, err := analysis.LyapunovExponent(p, x0, analysis.DefaultLyapunovConfig())
//	if err == nil && lambda > 0 {
//	    // map is chaotic at this parameter
//	}
package analysis
