package viz

import (
	"math"
	"sort"

	"github.com/san-kum/chargefield/internal/electro"
)

type Vec3 struct {
	X, Y, Z float64
}

// Vec3 methods.
func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) Length() float64      { return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z) }

// Camera manages 3D projection to a 2D plane. Points are spun about Z, then
// tilted about X, then rolled about Y.
type Camera struct {
	Position         Vec3
	Near             float64
	RotX, RotY, RotZ float64
	Zoom             float64
}

func NewCamera() *Camera {
	return &Camera{Position: Vec3{0, 0, 50}, Near: 0.1, Zoom: 1.0}
}

// NewSurfaceCamera looks down on the xy plane from an oblique angle with the
// potential axis pointing up the screen.
func NewSurfaceCamera() *Camera {
	c := NewCamera()
	c.RotX = -1.1
	c.RotZ = -0.6
	return c
}

func (c *Camera) RotateX(a float64) { c.RotX += a }
func (c *Camera) RotateY(a float64) { c.RotY += a }
func (c *Camera) RotateZ(a float64) { c.RotZ += a }
func (c *Camera) ZoomIn()           { c.Zoom = math.Min(10, c.Zoom*1.2) }
func (c *Camera) ZoomOut()          { c.Zoom = math.Max(0.1, c.Zoom/1.2) }

func (c *Camera) RotatePoint(p Vec3) Vec3 {
	cz, sz := math.Cos(c.RotZ), math.Sin(c.RotZ)
	p.X, p.Y = p.X*cz-p.Y*sz, p.X*sz+p.Y*cz
	cx, sx := math.Cos(c.RotX), math.Sin(c.RotX)
	p.Y, p.Z = p.Y*cx-p.Z*sx, p.Y*sx+p.Z*cx
	cy, sy := math.Cos(c.RotY), math.Sin(c.RotY)
	p.X, p.Z = p.X*cy+p.Z*sy, -p.X*sy+p.Z*cy
	return p
}

// Project converts 3D world coordinates to 2D screen coordinates of an
// sw x sh pixel target. Returns x, y, depth, and visibility.
func (c *Camera) Project(p Vec3, sw, sh int) (int, int, float64, bool) {
	rot := c.RotatePoint(p).Scale(c.Zoom)
	dist := c.Position.Z
	if rot.Z >= dist-c.Near {
		return 0, 0, 0, false
	}
	scale := dist / (dist - rot.Z)
	pScale := float64(min(sw, sh)) / 3.0
	sx := int(rot.X*scale*pScale) + sw/2
	sy := int(-rot.Y*scale*pScale) + sh/2
	return sx, sy, rot.Z, sx >= 0 && sx < sw && sy >= 0 && sy < sh
}

type Edge struct {
	Start, End Vec3
	Ink        Ink
}

type Wireframe struct{ Edges []Edge }

func NewWireframe() *Wireframe                  { return &Wireframe{Edges: make([]Edge, 0)} }
func (w *Wireframe) AddEdge(s, e Vec3, ink Ink) { w.Edges = append(w.Edges, Edge{s, e, ink}) }
func (w *Wireframe) Clear()                     { w.Edges = w.Edges[:0] }

type ProjectedEdge struct {
	X1, Y1, X2, Y2 int
	Depth          float64
	Ink            Ink
}

// Render3D draws the wireframe to the canvas using a simple painter's algorithm.
func Render3D(c *Canvas, w *Wireframe, cam *Camera) {
	if c == nil || w == nil || cam == nil {
		return
	}
	pw, ph := c.Pixels()
	proj := make([]ProjectedEdge, 0, len(w.Edges))
	for _, e := range w.Edges {
		x1, y1, d1, v1 := cam.Project(e.Start, pw, ph)
		x2, y2, d2, v2 := cam.Project(e.End, pw, ph)
		if v1 || v2 {
			proj = append(proj, ProjectedEdge{x1, y1, x2, y2, (d1 + d2) / 2, e.Ink})
		}
	}
	sort.SliceStable(proj, func(i, j int) bool { return proj[i].Depth < proj[j].Depth })
	for _, e := range proj {
		c.Pen = e.Ink
		c.DrawLine(e.X1, e.Y1, e.X2, e.Y2)
	}
}

type SurfaceOptions struct {
	// Height is the z extent of the largest |V| in normalised units.
	Height float64
	// Compress squashes |V| with tanh so the far field is not flattened by the
	// spikes next to the charges.
	Compress bool
}

func DefaultSurfaceOptions() SurfaceOptions {
	return SurfaceOptions{Height: 0.8, Compress: true}
}

// SurfaceMapper normalises grid coordinates to [-1, 1] and potentials to
// [-Height, Height].
type SurfaceMapper struct {
	extent, vScale float64
	opts           SurfaceOptions
}

func NewSurfaceMapper(g *electro.FieldGrid, opts SurfaceOptions) SurfaceMapper {
	m := SurfaceMapper{extent: g.Spec.Extent(), opts: opts}
	if m.extent <= 0 {
		m.extent = 1
	}
	var sum, peak float64
	n := 0
	for _, row := range g.V {
		for _, v := range row {
			sum += math.Abs(v)
			peak = math.Max(peak, math.Abs(v))
			n++
		}
	}
	switch {
	case opts.Compress && n > 0 && sum > 0:
		m.vScale = 2 * sum / float64(n)
	case peak > 0:
		m.vScale = peak
	default:
		m.vScale = 1
	}
	return m
}

func (m SurfaceMapper) Point(x, y, v float64) Vec3 {
	z := v / m.vScale
	if m.opts.Compress {
		z = math.Tanh(z)
	} else {
		z = math.Max(-1, math.Min(1, z))
	}
	return Vec3{x / m.extent, y / m.extent, z * m.opts.Height}
}

// SurfaceWireframe builds the potential surface of g as a mesh of grid lines,
// plus a vertical marker per charge rising to the potential at its position.
func SurfaceWireframe(g *electro.FieldGrid, opts SurfaceOptions) *Wireframe {
	w := NewWireframe()
	if g == nil || g.Rows() == 0 {
		return w
	}
	m := NewSurfaceMapper(g, opts)
	for i := 0; i < g.Rows(); i++ {
		for j := 0; j < g.Cols(); j++ {
			p := m.Point(g.X[j], g.Y[i], g.V[i][j])
			if j+1 < g.Cols() {
				w.AddEdge(p, m.Point(g.X[j+1], g.Y[i], g.V[i][j+1]), InkSurface)
			}
			if i+1 < g.Rows() {
				w.AddEdge(p, m.Point(g.X[j], g.Y[i+1], g.V[i+1][j]), InkSurface)
			}
		}
	}
	for _, ch := range g.Charges {
		ink := InkNegative
		if ch.Sign() > 0 {
			ink = InkPositive
		}
		top := m.Point(ch.Position.X, ch.Position.Y, electro.Potential(g.Charges, ch.Position))
		base := Vec3{top.X, top.Y, 0}
		w.AddEdge(base, top, ink)
	}
	return w
}

// DrawSurface renders the potential surface of g onto c.
func DrawSurface(c *Canvas, g *electro.FieldGrid, cam *Camera, opts SurfaceOptions) {
	Render3D(c, SurfaceWireframe(g, opts), cam)
}
