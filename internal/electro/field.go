package electro

import "math"

const (
	// VacuumPermittivity is ε₀ in F/m (CODATA 2018).
	VacuumPermittivity = 8.8541878128e-12

	// CoulombConstant is k = 1/(4πε₀) in N·m²/C². Evaluated as an untyped
	// constant, so it is rounded to float64 once.
	CoulombConstant = 1 / (4 * math.Pi * VacuumPermittivity)

	// MinDistance is the exclusion radius in metres. A charge closer than this
	// to the evaluation point is skipped.
	MinDistance = 0.1

	// Nano converts nanocoulombs to coulombs.
	Nano = 1e-9
)

// Field returns the electric field (V/m) at p due to charges.
func Field(charges []Charge, p Vec2) Vec2 {
	var ex, ey float64
	for _, c := range charges {
		dx, dy := p.X-c.Position.X, p.Y-c.Position.Y
		r := math.Sqrt(dx*dx + dy*dy)
		if r < MinDistance {
			continue
		}
		f := CoulombConstant * c.Magnitude / (r * r * r)
		ex += f * dx
		ey += f * dy
	}
	return Vec2{ex, ey}
}

// Potential returns the electric potential (V) at p due to charges.
func Potential(charges []Charge, p Vec2) float64 {
	v := 0.0
	for _, c := range charges {
		dx, dy := p.X-c.Position.X, p.Y-c.Position.Y
		r := math.Sqrt(dx*dx + dy*dy)
		if r < MinDistance {
			continue
		}
		v += CoulombConstant * c.Magnitude / r
	}
	return v
}

// Sample is the field and potential at one point.
type Sample struct {
	Field     Vec2
	Potential float64
}

// Evaluator computes fields from a charge set it does not own. Every call
// reads the set's current contents; nothing is cached between calls.
type Evaluator struct {
	charges *ChargeSet

	// Workers bounds the goroutines used by FieldGrid. Values below 2 run serially.
	Workers int
}

func NewEvaluator(cs *ChargeSet) *Evaluator {
	if cs == nil {
		cs = NewChargeSet()
	}
	return &Evaluator{charges: cs, Workers: 1}
}

func (e *Evaluator) Field(p Vec2) Vec2 {
	return Field(e.charges.charges, p)
}

func (e *Evaluator) Potential(p Vec2) float64 {
	return Potential(e.charges.charges, p)
}

func (e *Evaluator) Sample(p Vec2) Sample {
	return Sample{Field: e.Field(p), Potential: e.Potential(p)}
}

// FieldGrid evaluates every node of spec against a snapshot of the charge
// set taken at call time.
func (e *Evaluator) FieldGrid(spec GridSpec) *FieldGrid {
	return EvaluateGrid(e.charges.Snapshot(), spec, e.Workers)
}
