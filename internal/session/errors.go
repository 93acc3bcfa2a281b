package session

import "errors"

var (
	// ErrNonFiniteControl indicates a NaN or Inf control value.
	ErrNonFiniteControl = errors.New("session: non-finite control value")

	// ErrControlRange indicates a control range with min above max or non-finite bounds.
	ErrControlRange = errors.New("session: invalid control range")
)
