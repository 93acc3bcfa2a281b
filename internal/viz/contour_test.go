package viz

import (
	"math"
	"testing"

	"github.com/san-kum/chargefield/internal/electro"
)

// rampGrid has V = x on a 3x2 node grid.
func rampGrid() *electro.FieldGrid {
	return &electro.FieldGrid{
		X: []float64{0, 1, 2},
		Y: []float64{0, 1},
		V: [][]float64{{0, 1, 2}, {0, 1, 2}},
	}
}

func TestLevels(t *testing.T) {
	got := Levels(0, 10, 4)
	want := []float64{2, 4, 6, 8}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Errorf("level %d = %v, want %v", i, got[i], want[i])
		}
	}

	if Levels(1, 1, 3) != nil {
		t.Error("flat range should give no levels")
	}
	if Levels(0, 1, 0) != nil {
		t.Error("n = 0 should give no levels")
	}
}

func TestContours_Ramp(t *testing.T) {
	tests := []struct {
		level float64
		x     float64
		n     int
	}{
		{0.5, 0.5, 1},
		{1.5, 1.5, 1},
		{5, 0, 0},
		{-1, 0, 0},
	}
	for _, tt := range tests {
		segs := Contours(rampGrid(), []float64{tt.level})
		if len(segs) != tt.n {
			t.Errorf("level %v: %d segments, want %d", tt.level, len(segs), tt.n)
			continue
		}
		for _, s := range segs {
			if math.Abs(s.A.X-tt.x) > 1e-12 || math.Abs(s.B.X-tt.x) > 1e-12 {
				t.Errorf("level %v: segment %v not at x=%v", tt.level, s, tt.x)
			}
			if s.Level != tt.level {
				t.Errorf("segment level = %v, want %v", s.Level, tt.level)
			}
		}
	}
}

func TestContours_Saddle(t *testing.T) {
	g := &electro.FieldGrid{
		X: []float64{0, 1},
		Y: []float64{0, 1},
		V: [][]float64{{1, 0}, {0, 1}},
	}
	if segs := Contours(g, []float64{0.5}); len(segs) != 2 {
		t.Errorf("saddle cell: %d segments, want 2", len(segs))
	}
}

func TestContours_Dipole(t *testing.T) {
	g := electro.EvaluateGrid(testDipole(), electro.DefaultGridSpec(), 1)
	lo, hi := g.PotentialRange()
	segs := Contours(g, Levels(lo, hi, 20))
	if len(segs) == 0 {
		t.Fatal("expected equipotential segments")
	}
	for _, s := range segs {
		if !s.A.IsValid() || !s.B.IsValid() {
			t.Fatalf("non-finite segment %v", s)
		}
	}

	// the V = 0 line of a symmetric dipole is the y axis
	zero := Contours(g, []float64{0})
	for _, s := range zero {
		if math.Abs(s.A.X) > 0.5 || math.Abs(s.B.X) > 0.5 {
			t.Errorf("zero equipotential strays to x=%v..%v", s.A.X, s.B.X)
		}
	}
}

func testDipole() []electro.Charge {
	return []electro.Charge{
		electro.NewCharge(1e-9, -2, 0),
		electro.NewCharge(-1e-9, 2, 0),
	}
}
