package electro

import (
	"fmt"
	"math"
)

// Vec2 is a point or vector in the plane, in metres (or V/m for fields).
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2      { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2      { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }
func (v Vec2) Norm() float64        { return math.Sqrt(v.X*v.X + v.Y*v.Y) }

func (v Vec2) IsValid() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) && !math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}

// Charge is a point charge. It is replaced wholesale, never edited through a
// shared pointer.
type Charge struct {
	Magnitude float64 // coulombs, sign is polarity
	Position  Vec2    // metres
}

func NewCharge(q, x, y float64) Charge {
	return Charge{Magnitude: q, Position: Vec2{x, y}}
}

// Sign returns 1 for positive, -1 for negative and 0 for a neutral charge.
func (c Charge) Sign() int {
	switch {
	case c.Magnitude > 0:
		return 1
	case c.Magnitude < 0:
		return -1
	}
	return 0
}

func (c Charge) Validate() error {
	if math.IsNaN(c.Magnitude) || math.IsInf(c.Magnitude, 0) || !c.Position.IsValid() {
		return fmt.Errorf("%w: q=%v pos=(%v, %v)", ErrNonFinite, c.Magnitude, c.Position.X, c.Position.Y)
	}
	return nil
}

func (c Charge) String() string {
	return fmt.Sprintf("%+.3g C @ (%.3g, %.3g)", c.Magnitude, c.Position.X, c.Position.Y)
}

// ChargeSet is the ordered charge collection a session owns. Superposition
// does not depend on order; index 0 is the charge the controls adjust.
type ChargeSet struct {
	charges []Charge
}

func NewChargeSet(charges ...Charge) *ChargeSet {
	c := make([]Charge, len(charges))
	copy(c, charges)
	return &ChargeSet{charges: c}
}

func (s *ChargeSet) Len() int { return len(s.charges) }

func (s *ChargeSet) At(i int) (Charge, error) {
	if i < 0 || i >= len(s.charges) {
		return Charge{}, fmt.Errorf("%w: %d (len %d)", ErrIndexOutOfRange, i, len(s.charges))
	}
	return s.charges[i], nil
}

// Set replaces the charge at index i.
func (s *ChargeSet) Set(i int, c Charge) error {
	if i < 0 || i >= len(s.charges) {
		return fmt.Errorf("%w: %d (len %d)", ErrIndexOutOfRange, i, len(s.charges))
	}
	s.charges[i] = c
	return nil
}

// Snapshot returns an independent copy of the current charges.
func (s *ChargeSet) Snapshot() []Charge {
	c := make([]Charge, len(s.charges))
	copy(c, s.charges)
	return c
}

func (s *ChargeSet) Validate() error {
	for i, c := range s.charges {
		if err := c.Validate(); err != nil {
			return fmt.Errorf("charge %d: %w", i, err)
		}
	}
	return nil
}
