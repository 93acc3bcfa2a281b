package electro

import (
	"math"
	"testing"
)

func relErr(got, want float64) float64 {
	if want == 0 {
		return math.Abs(got)
	}
	return math.Abs(got-want) / math.Abs(want)
}

func dipole() []Charge {
	return []Charge{NewCharge(1e-9, -2, 0), NewCharge(-1e-9, 2, 0)}
}

func TestCoulombConstant(t *testing.T) {
	if relErr(CoulombConstant, 8.9875517923e9) > 1e-10 {
		t.Errorf("CoulombConstant = %.12e, want ~8.9875517923e9", CoulombConstant)
	}
}

func TestSingleCharge(t *testing.T) {
	tests := []struct {
		name string
		q    float64
		p    Vec2
	}{
		{"positive on x", 1e-9, Vec2{1, 0}},
		{"positive diagonal", 2e-9, Vec2{3, 4}},
		{"negative", -1e-9, Vec2{-0.5, 0.25}},
		{"at threshold", 1e-9, Vec2{0, MinDistance}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			charges := []Charge{NewCharge(tt.q, 0, 0)}
			r := tt.p.Norm()

			v := Potential(charges, tt.p)
			if want := CoulombConstant * tt.q / r; relErr(v, want) > 1e-12 {
				t.Errorf("potential = %v, want %v", v, want)
			}

			e := Field(charges, tt.p)
			if want := CoulombConstant * math.Abs(tt.q) / (r * r); relErr(e.Norm(), want) > 1e-12 {
				t.Errorf("|E| = %v, want %v", e.Norm(), want)
			}

			// radial: E parallel to p, outward for q > 0
			cross := e.X*tt.p.Y - e.Y*tt.p.X
			if math.Abs(cross) > 1e-9*e.Norm()*r {
				t.Errorf("field not radial: E=%v p=%v", e, tt.p)
			}
			dot := e.X*tt.p.X + e.Y*tt.p.Y
			if (tt.q > 0) != (dot > 0) {
				t.Errorf("field direction wrong for q=%v: E=%v", tt.q, e)
			}
		})
	}
}

func TestSuperposition(t *testing.T) {
	a := NewCharge(3e-9, -1, 0.5)
	b := NewCharge(-2e-9, 1.5, -1)
	points := []Vec2{{0, 0}, {2, 2}, {-3, 1}, {1.5, -0.5}}

	for _, p := range points {
		both := []Charge{a, b}
		eA, eB := Field([]Charge{a}, p), Field([]Charge{b}, p)
		e := Field(both, p)
		if relErr(e.X, eA.X+eB.X) > 1e-12 || relErr(e.Y, eA.Y+eB.Y) > 1e-12 {
			t.Errorf("field at %v: got %v, want %v", p, e, eA.Add(eB))
		}

		v := Potential(both, p)
		if want := Potential([]Charge{a}, p) + Potential([]Charge{b}, p); relErr(v, want) > 1e-12 {
			t.Errorf("potential at %v: got %v, want %v", p, v, want)
		}
	}
}

func TestExclusion(t *testing.T) {
	near := NewCharge(1e-9, 0, 0)
	far := NewCharge(-2e-9, 3, 0)
	p := Vec2{0.05, 0.02}

	if e := Field([]Charge{near}, p); e.X != 0 || e.Y != 0 {
		t.Errorf("excluded charge contributed field %v", e)
	}
	if v := Potential([]Charge{near}, p); v != 0 {
		t.Errorf("excluded charge contributed potential %v", v)
	}

	// only the far charge survives
	e := Field([]Charge{near, far}, p)
	if want := Field([]Charge{far}, p); e != want {
		t.Errorf("field = %v, want far-only %v", e, want)
	}
	if v, want := Potential([]Charge{near, far}, p), Potential([]Charge{far}, p); v != want {
		t.Errorf("potential = %v, want far-only %v", v, want)
	}

	// the charge's own position
	if e := Field([]Charge{near}, near.Position); !e.IsValid() || e.X != 0 || e.Y != 0 {
		t.Errorf("field at charge = %v", e)
	}
}

func TestEmptyChargeSet(t *testing.T) {
	if e := Field(nil, Vec2{1, 1}); e != (Vec2{}) {
		t.Errorf("expected zero field, got %v", e)
	}
	if v := Potential(nil, Vec2{1, 1}); v != 0 {
		t.Errorf("expected zero potential, got %v", v)
	}
}

func TestDipoleSymmetry(t *testing.T) {
	origin := Vec2{0, 0}

	if v := Potential(dipole(), origin); v != 0 {
		t.Errorf("potential at origin = %v, want exactly 0", v)
	}

	e := Field(dipole(), origin)
	if e.Y != 0 {
		t.Errorf("Ey at origin = %v, want 0", e.Y)
	}
	// from + at -2 toward - at +2
	if e.X <= 0 {
		t.Errorf("Ex at origin = %v, want > 0", e.X)
	}
	if want := 2 * CoulombConstant * 1e-9 / 4; relErr(e.X, want) > 1e-12 {
		t.Errorf("Ex at origin = %v, want %v", e.X, want)
	}
}

func TestOrderIndependence(t *testing.T) {
	charges := []Charge{
		NewCharge(1e-9, -2, 0),
		NewCharge(-1e-9, 2, 0),
		NewCharge(4e-9, 0, 3),
	}
	reversed := []Charge{charges[2], charges[1], charges[0]}
	p := Vec2{0.7, -1.3}

	a, b := Field(charges, p), Field(reversed, p)
	if relErr(a.X, b.X) > 1e-12 || relErr(a.Y, b.Y) > 1e-12 {
		t.Errorf("field depends on order: %v vs %v", a, b)
	}
	if relErr(Potential(charges, p), Potential(reversed, p)) > 1e-12 {
		t.Error("potential depends on order")
	}
}

func TestEvaluatorReadsCurrentCharges(t *testing.T) {
	cs := NewChargeSet(dipole()...)
	ev := NewEvaluator(cs)
	p := Vec2{0, 1}

	before := ev.Potential(p)
	if err := cs.Set(0, NewCharge(5e-9, -2, 0)); err != nil {
		t.Fatal(err)
	}
	after := ev.Potential(p)

	if before == after {
		t.Error("evaluator did not observe the mutated charge")
	}
	if want := Potential(cs.Snapshot(), p); after != want {
		t.Errorf("potential = %v, want %v", after, want)
	}

	s := ev.Sample(p)
	if s.Potential != after || s.Field != ev.Field(p) {
		t.Errorf("Sample disagrees with Field/Potential: %+v", s)
	}
}

func TestNilChargeSet(t *testing.T) {
	ev := NewEvaluator(nil)
	if v := ev.Potential(Vec2{1, 0}); v != 0 {
		t.Errorf("expected 0, got %v", v)
	}
}
