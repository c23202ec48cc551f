// Package chaos provides the one-dimensional chaotic maps used to drive
// permutation generation.
//
// Three map families are supported, each selected by a [Kind]:
//
//   - [Logistic]: y = a·x·(1−x), chaotic for a in (3.57, 4)
//   - [Singer]: y = a·(7.86x − 23.31x² + 28.75x³ − 13.302875x⁴), a in [0.9, 1.08]
//   - [PWLCM]: piecewise-linear map, y = x/a below the threshold a, (1−a)·(1−x) above, a in (0, 1)
//
// A [Param] couples a family with its control parameter and is only valid
// inside the family's chaotic range. Out-of-range values are rejected with
// [ErrInvalidParameter]; they are never clamped.
//
// # Example
//
//	p, err := chaos.NewParam(chaos.Logistic, 3.9)
//	if err != nil {
//	    return err
//	}
//	x, _ := chaos.Iterate(0.5, 5, p)
//
// All functions are pure and safe for concurrent use.
package chaos
