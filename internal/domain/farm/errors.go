package farm

import "errors"

var (
	ErrOutOfBounds     = errors.New("cell outside the field")
	ErrAlreadyTilled   = errors.New("cell already tilled")
	ErrNotTilled       = errors.New("cell not tilled")
	ErrOccupied        = errors.New("cell already has a crop")
	ErrUnknownSpecies  = errors.New("unknown species")
	ErrNoSeeds         = errors.New("no seeds left")
	ErrNotGrowing      = errors.New("no growing crop")
	ErrAlreadyWatered  = errors.New("crop already watered")
	ErrNotReady        = errors.New("crop not ready to harvest")
	ErrNotWithered     = errors.New("crop not withered")
	ErrInvalidSnapshot = errors.New("invalid farm snapshot")
)
