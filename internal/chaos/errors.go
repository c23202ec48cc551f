package chaos

import "github.com/hyp3rd/ewrap"

// Domain errors for map construction and iteration.
var (
	// ErrInvalidParameter indicates a map parameter outside its chaotic range,
	// a negative iteration count or a non-positive table length.
	ErrInvalidParameter = ewrap.New("chaos: invalid parameter")

	// ErrInvalidMapName indicates an unrecognized map family name.
	ErrInvalidMapName = ewrap.New("chaos: invalid map name")
)
