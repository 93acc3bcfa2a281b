package electro

import "errors"

// Domain errors for input validation. Evaluation itself never fails.
var (
	// ErrNonFinite indicates a charge magnitude or coordinate that is NaN or Inf.
	ErrNonFinite = errors.New("electro: non-finite charge value")

	// ErrGridSize indicates a grid side length that is not a positive finite number.
	ErrGridSize = errors.New("electro: grid size must be positive and finite")

	// ErrGridPoints indicates fewer than two samples per axis.
	ErrGridPoints = errors.New("electro: grid needs at least 2 points per axis")

	// ErrIndexOutOfRange indicates a charge index outside the set.
	ErrIndexOutOfRange = errors.New("electro: charge index out of range")
)
