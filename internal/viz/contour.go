package viz

import "github.com/san-kum/chargefield/internal/electro"

// Segment is one piece of an equipotential line.
type Segment struct {
	A, B  electro.Vec2
	Level float64
}

// Levels returns n potentials evenly spaced strictly inside (lo, hi).
func Levels(lo, hi float64, n int) []float64 {
	if n <= 0 || !(hi > lo) {
		return nil
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n+1)
	for k := range out {
		out[k] = lo + step*float64(k+1)
	}
	return out
}

// Contours extracts equipotential segments from g with marching squares.
func Contours(g *electro.FieldGrid, levels []float64) []Segment {
	var segs []Segment
	for i := 0; i+1 < g.Rows(); i++ {
		for j := 0; j+1 < g.Cols(); j++ {
			for _, lv := range levels {
				segs = appendCell(segs, g, i, j, lv)
			}
		}
	}
	return segs
}

// appendCell handles the cell with lower-left node (i, j). Edges are visited
// bottom, right, top, left.
func appendCell(segs []Segment, g *electro.FieldGrid, i, j int, lv float64) []Segment {
	x0, x1 := g.X[j], g.X[j+1]
	y0, y1 := g.Y[i], g.Y[i+1]
	v00, v01 := g.V[i][j], g.V[i][j+1]
	v10, v11 := g.V[i+1][j], g.V[i+1][j+1]

	type edge struct {
		a, b   float64
		pa, pb electro.Vec2
	}
	edges := [4]edge{
		{v00, v01, electro.Vec2{X: x0, Y: y0}, electro.Vec2{X: x1, Y: y0}},
		{v01, v11, electro.Vec2{X: x1, Y: y0}, electro.Vec2{X: x1, Y: y1}},
		{v10, v11, electro.Vec2{X: x0, Y: y1}, electro.Vec2{X: x1, Y: y1}},
		{v00, v10, electro.Vec2{X: x0, Y: y0}, electro.Vec2{X: x0, Y: y1}},
	}

	var pts [4]electro.Vec2
	var hit [4]bool
	n := 0
	for k, e := range edges {
		if (e.a >= lv) == (e.b >= lv) {
			continue
		}
		t := (lv - e.a) / (e.b - e.a)
		pts[k] = e.pa.Add(e.pb.Sub(e.pa).Scale(t))
		hit[k] = true
		n++
	}

	switch n {
	case 2:
		var ends []electro.Vec2
		for k := range pts {
			if hit[k] {
				ends = append(ends, pts[k])
			}
		}
		return append(segs, Segment{ends[0], ends[1], lv})
	case 4:
		center := (v00 + v01 + v10 + v11) / 4
		if (center >= lv) == (v00 >= lv) {
			return append(segs, Segment{pts[0], pts[1], lv}, Segment{pts[2], pts[3], lv})
		}
		return append(segs, Segment{pts[0], pts[3], lv}, Segment{pts[1], pts[2], lv})
	}
	return segs
}
