package session

import (
	"fmt"
	"math"
)

// Controls bounds the two slider inputs.
type Controls struct {
	MagnitudeMin, MagnitudeMax float64 // nC
	XMin, XMax                 float64 // m
}

func DefaultControls() Controls {
	return Controls{MagnitudeMin: -5, MagnitudeMax: 5, XMin: -4, XMax: 4}
}

func (c Controls) Validate() error {
	for _, v := range []float64{c.MagnitudeMin, c.MagnitudeMax, c.XMin, c.XMax} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %+v", ErrControlRange, c)
		}
	}
	if c.MagnitudeMin > c.MagnitudeMax || c.XMin > c.XMax {
		return fmt.Errorf("%w: %+v", ErrControlRange, c)
	}
	return nil
}

// Clamp limits a control pair to the configured ranges.
func (c Controls) Clamp(magnitudeNC, x float64) (float64, float64) {
	return clamp(magnitudeNC, c.MagnitudeMin, c.MagnitudeMax), clamp(x, c.XMin, c.XMax)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
