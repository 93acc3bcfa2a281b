package viz

import (
	"math"

	"github.com/san-kum/chargefield/internal/electro"
)

type FieldPlotOptions struct {
	// ContourLevels is the number of equipotentials; 0 disables them.
	ContourLevels int
	// ArrowStride draws an arrow at every n-th node; 0 picks one from the
	// canvas size.
	ArrowStride int
	// HideArrows and Axes toggle the quiver layer and the x/y axes.
	HideArrows bool
	Axes       bool
}

func DefaultFieldPlotOptions() FieldPlotOptions {
	return FieldPlotOptions{ContourLevels: 20, Axes: true}
}

// DrawField renders the quiver field, the equipotential lines and the charge
// markers of g onto c.
func DrawField(c *Canvas, g *electro.FieldGrid, opts FieldPlotOptions) {
	if c == nil || g == nil || g.Rows() == 0 {
		return
	}
	vp := GridViewport(c, g.Spec)

	if opts.Axes {
		c.Pen = InkAxis
		drawAxes(c, vp)
	}

	if opts.ContourLevels > 0 {
		c.Pen = InkContour
		lo, hi := g.PotentialRange()
		for _, s := range Contours(g, Levels(lo, hi, opts.ContourLevels)) {
			x0, y0 := vp.ToPixel(s.A)
			x1, y1 := vp.ToPixel(s.B)
			c.DrawLine(x0, y0, x1, y1)
		}
	}

	if !opts.HideArrows {
		c.Pen = InkField
		drawArrows(c, vp, g, opts.ArrowStride)
	}

	DrawCharges(c, vp, g.Charges)
}

func drawAxes(c *Canvas, vp Viewport) {
	ox, oy := vp.ToPixel(electro.Vec2{})
	c.DrawLine(0, oy, vp.PxW-1, oy)
	c.DrawLine(ox, 0, ox, vp.PxH-1)
}

// drawArrows draws one arrow per sampled node. Length grows with log|E| so
// the far field stays visible next to the charges.
func drawArrows(c *Canvas, vp Viewport, g *electro.FieldGrid, stride int) {
	sx, sy := vp.Scale()
	if stride <= 0 {
		stride = autoStride(g, sx, sy)
	}
	cell := math.Min(sx, sy) * (g.X[min(1, len(g.X)-1)] - g.X[0]) * float64(stride)
	if cell <= 0 {
		cell = 4
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for i := 0; i < g.Rows(); i += stride {
		for j := 0; j < g.Cols(); j += stride {
			if m := math.Hypot(g.Ex[i][j], g.Ey[i][j]); m > 0 {
				lo, hi = math.Min(lo, math.Log(m)), math.Max(hi, math.Log(m))
			}
		}
	}

	for i := 0; i < g.Rows(); i += stride {
		for j := 0; j < g.Cols(); j += stride {
			ex, ey := g.Ex[i][j], g.Ey[i][j]
			m := math.Hypot(ex, ey)
			if m == 0 || g.NearCharge(i, j) {
				continue
			}
			frac := 1.0
			if hi > lo {
				frac = 0.35 + 0.65*(math.Log(m)-lo)/(hi-lo)
			}
			length := 0.8 * cell * frac
			ux, uy := ex/m, -ey/m // screen y is flipped

			x0, y0 := vp.ToPixel(g.Node(i, j))
			tx := x0 + int(math.Round(ux*length))
			ty := y0 + int(math.Round(uy*length))
			c.DrawLine(x0, y0, tx, ty)

			// head: two short barbs at ±150°
			head := math.Max(1, length*0.35)
			for _, a := range []float64{2.618, -2.618} {
				bx := ux*math.Cos(a) - uy*math.Sin(a)
				by := ux*math.Sin(a) + uy*math.Cos(a)
				c.DrawLine(tx, ty, tx+int(math.Round(bx*head)), ty+int(math.Round(by*head)))
			}
		}
	}
}

// autoStride keeps arrows roughly 8 sub-pixels apart.
func autoStride(g *electro.FieldGrid, sx, sy float64) int {
	if g.Cols() < 2 {
		return 1
	}
	spacing := (g.X[1] - g.X[0]) * math.Min(sx, sy)
	if spacing <= 0 {
		return 1
	}
	return max(1, int(math.Ceil(8/spacing)))
}

// DrawCharges puts a "+" or "−" marker at each charge that falls on the canvas.
func DrawCharges(c *Canvas, vp Viewport, charges []electro.Charge) {
	for _, ch := range charges {
		x, y := vp.ToPixel(ch.Position)
		if x < 0 || y < 0 || x >= vp.PxW || y >= vp.PxH {
			continue
		}
		switch ch.Sign() {
		case 1:
			c.Label(x/2, y/4, "+", InkPositive)
		case -1:
			c.Label(x/2, y/4, "−", InkNegative)
		default:
			c.Label(x/2, y/4, "o", InkAxis)
		}
	}
}
