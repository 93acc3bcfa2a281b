package electro

import (
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
)

const (
	DefaultGridSize   = 10.0
	DefaultGridPoints = 30
)

// GridSpec describes a square sample region centred at the origin.
type GridSpec struct {
	Size   float64 // side length in metres; the half-width is Size/2
	Points int     // samples per axis
}

func DefaultGridSpec() GridSpec {
	return GridSpec{Size: DefaultGridSize, Points: DefaultGridPoints}
}

func (g GridSpec) Extent() float64 { return g.Size / 2 }

func (g GridSpec) Validate() error {
	if math.IsNaN(g.Size) || math.IsInf(g.Size, 0) || g.Size <= 0 {
		return fmt.Errorf("%w: %v", ErrGridSize, g.Size)
	}
	if g.Points < 2 {
		return fmt.Errorf("%w: %d", ErrGridPoints, g.Points)
	}
	return nil
}

// Axis returns Points evenly spaced coordinates from -Extent to +Extent.
func (g GridSpec) Axis() []float64 {
	switch {
	case g.Points <= 0:
		return []float64{}
	case g.Points == 1:
		return []float64{-g.Extent()}
	}
	return floats.Span(make([]float64, g.Points), -g.Extent(), g.Extent())
}

// Mesh returns the coordinate matrices of the grid: X[i][j] = axis[j] and
// Y[i][j] = axis[i].
func (g GridSpec) Mesh() (x, y [][]float64) {
	axis := g.Axis()
	x = make([][]float64, len(axis))
	y = make([][]float64, len(axis))
	for i := range axis {
		x[i] = make([]float64, len(axis))
		y[i] = make([]float64, len(axis))
		copy(x[i], axis)
		for j := range axis {
			y[i][j] = axis[i]
		}
	}
	return x, y
}

// FieldGrid holds one evaluation of the field over a GridSpec. Rows follow
// the Y axis and columns the X axis.
type FieldGrid struct {
	Spec    GridSpec
	X, Y    []float64
	Ex, Ey  [][]float64
	V       [][]float64
	Charges []Charge // the charges the grid was evaluated against
}

func (g *FieldGrid) Rows() int { return len(g.Y) }
func (g *FieldGrid) Cols() int { return len(g.X) }

func (g *FieldGrid) Node(i, j int) Vec2 { return Vec2{g.X[j], g.Y[i]} }

func (g *FieldGrid) At(i, j int) Sample {
	return Sample{Field: Vec2{g.Ex[i][j], g.Ey[i][j]}, Potential: g.V[i][j]}
}

// NearCharge reports whether node (i, j) lies within MinDistance of any
// charge. The grid values at such nodes are not masked.
func (g *FieldGrid) NearCharge(i, j int) bool {
	p := g.Node(i, j)
	for _, c := range g.Charges {
		if p.Sub(c.Position).Norm() < MinDistance {
			return true
		}
	}
	return false
}

// PotentialRange returns the smallest and largest potential on the grid.
func (g *FieldGrid) PotentialRange() (lo, hi float64) {
	if g.Rows() == 0 || g.Cols() == 0 {
		return 0, 0
	}
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, row := range g.V {
		lo = math.Min(lo, floats.Min(row))
		hi = math.Max(hi, floats.Max(row))
	}
	return lo, hi
}

func (g *FieldGrid) MaxFieldMagnitude() float64 {
	m := 0.0
	for i := range g.Ex {
		for j := range g.Ex[i] {
			m = math.Max(m, math.Hypot(g.Ex[i][j], g.Ey[i][j]))
		}
	}
	return m
}

// RowNearest returns the row whose Y coordinate is closest to y, or -1 for
// an empty grid.
func (g *FieldGrid) RowNearest(y float64) int {
	best, dist := -1, math.Inf(1)
	for i, v := range g.Y {
		if d := math.Abs(v - y); d < dist {
			best, dist = i, d
		}
	}
	return best
}

// EvaluateGrid samples Field and Potential at every node of spec. Each node
// is computed by the point functions on exactly its own coordinates, so the
// result matches point-wise evaluation bit for bit. With workers > 1 rows are
// evaluated concurrently; charges must not change until it returns.
func EvaluateGrid(charges []Charge, spec GridSpec, workers int) *FieldGrid {
	axis := spec.Axis()
	n := len(axis)
	snap := make([]Charge, len(charges))
	copy(snap, charges)

	g := &FieldGrid{
		Spec:    spec,
		X:       axis,
		Y:       append([]float64(nil), axis...),
		Ex:      make([][]float64, n),
		Ey:      make([][]float64, n),
		V:       make([][]float64, n),
		Charges: snap,
	}

	row := func(i int) {
		ex, ey, v := make([]float64, n), make([]float64, n), make([]float64, n)
		for j := 0; j < n; j++ {
			p := Vec2{g.X[j], g.Y[i]}
			e := Field(snap, p)
			ex[j], ey[j] = e.X, e.Y
			v[j] = Potential(snap, p)
		}
		g.Ex[i], g.Ey[i], g.V[i] = ex, ey, v
	}

	if workers < 2 || n < 2 {
		for i := 0; i < n; i++ {
			row(i)
		}
		return g
	}

	var eg errgroup.Group
	eg.SetLimit(workers)
	for i := 0; i < n; i++ {
		eg.Go(func() error {
			row(i)
			return nil
		})
	}
	_ = eg.Wait()
	return g
}
