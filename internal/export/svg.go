package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/chargefield/internal/electro"
	"github.com/san-kum/chargefield/internal/viz"
)

const (
	svgBackground = "#0a0a0a"
	svgMargin     = 48.0
)

// CanvasToSVG converts a Braille canvas to SVG, one circle per lit dot,
// coloured by the ink each cell was drawn with.
func CanvasToSVG(canvas *viz.Canvas, scale float64, th viz.Theme) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Width) * scale * 2   // 2 sub-pixels per char
	height := float64(canvas.Height) * scale * 4 // 4 sub-pixels per char

	var sb strings.Builder
	writeHeader(&sb, width, height)

	dotRadius := scale * 0.4
	pw, ph := canvas.Pixels()
	for y := 0; y < ph; y++ {
		for x := 0; x < pw; x++ {
			if !canvas.IsSet(x, y) {
				continue
			}
			cx := float64(x)*scale + scale/2
			cy := float64(y)*scale + scale/2
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, cx, cy, dotRadius, inkColour(th, canvas.InkAt(x/2, y/4))))
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// plotArea maps world metres onto the drawable square of an SVG.
type plotArea struct {
	x0, y0, w, h float64
	extent       float64
}

func newPlotArea(width, height int, extent float64) plotArea {
	side := math.Min(float64(width), float64(height)) - 2*svgMargin
	side = math.Max(side, 1)
	return plotArea{
		x0:     (float64(width) - side) / 2,
		y0:     (float64(height) - side) / 2,
		w:      side,
		h:      side,
		extent: extent,
	}
}

func (a plotArea) point(p electro.Vec2) (float64, float64) {
	x := a.x0 + (p.X+a.extent)/(2*a.extent)*a.w
	y := a.y0 + (a.extent-p.Y)/(2*a.extent)*a.h
	return x, y
}

// FieldToSVG draws the quiver field, the equipotential lines and one marker
// per charge of g as vector SVG.
func FieldToSVG(g *electro.FieldGrid, width, height, contourLevels int, th viz.Theme) string {
	if g == nil || g.Rows() == 0 {
		return ""
	}
	extent := g.Spec.Extent()
	area := newPlotArea(width, height, extent)

	var sb strings.Builder
	writeHeader(&sb, float64(width), float64(height))
	sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" fill="%s" font-family="monospace" font-size="16" text-anchor="middle">Electrostatic Field and Equipotential Lines</text>
`, float64(width)/2, svgMargin/2, th.Text))

	// frame and axes
	sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="none" stroke="%s"/>
`, area.x0, area.y0, area.w, area.h, th.Muted))
	ox, oy := area.point(electro.Vec2{})
	sb.WriteString(fmt.Sprintf(`<path stroke="%s" stroke-dasharray="2,3" d="M%.1f,%.1f H%.1f M%.1f,%.1f V%.1f"/>
`, th.Muted, area.x0, oy, area.x0+area.w, ox, area.y0, area.y0+area.h))
	sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" fill="%s" font-family="monospace" font-size="12" text-anchor="middle">X (m)</text>
`, area.x0+area.w/2, area.y0+area.h+svgMargin/2, th.Text))
	sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" fill="%s" font-family="monospace" font-size="12" text-anchor="middle" transform="rotate(-90 %.1f %.1f)">Y (m)</text>
`, area.x0-svgMargin/2, area.y0+area.h/2, th.Text, area.x0-svgMargin/2, area.y0+area.h/2))

	if contourLevels > 0 {
		lo, hi := g.PotentialRange()
		sb.WriteString(fmt.Sprintf(`<path class="contour" fill="none" stroke="%s" stroke-width="0.8" d="`, th.Contour))
		for _, s := range viz.Contours(g, viz.Levels(lo, hi, contourLevels)) {
			x0, y0 := area.point(s.A)
			x1, y1 := area.point(s.B)
			sb.WriteString(fmt.Sprintf("M%.1f,%.1f L%.1f,%.1f ", x0, y0, x1, y1))
		}
		sb.WriteString("\"/>\n")
	}

	writeArrows(&sb, g, area, th)

	for _, ch := range g.Charges {
		x, y := area.point(ch.Position)
		colour := th.Muted
		switch ch.Sign() {
		case 1:
			colour = th.Positive
		case -1:
			colour = th.Negative
		}
		sb.WriteString(fmt.Sprintf(`<circle class="charge" cx="%.1f" cy="%.1f" r="6" fill="%s"><title>%s</title></circle>
`, x, y, colour, ch))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// writeArrows emits one arrow per grid node, scaled by log|E| like the
// terminal plot. Nodes next to a charge are left out.
func writeArrows(sb *strings.Builder, g *electro.FieldGrid, area plotArea, th viz.Theme) {
	cell := area.w / float64(max(1, g.Cols()))
	lo, hi := math.Inf(1), math.Inf(-1)
	for i := range g.Ex {
		for j := range g.Ex[i] {
			if m := math.Hypot(g.Ex[i][j], g.Ey[i][j]); m > 0 {
				lo, hi = math.Min(lo, math.Log(m)), math.Max(hi, math.Log(m))
			}
		}
	}

	sb.WriteString(fmt.Sprintf(`<path class="field" fill="none" stroke="%s" stroke-width="1" d="`, th.Field))
	for i := 0; i < g.Rows(); i++ {
		for j := 0; j < g.Cols(); j++ {
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
			ux, uy := ex/m, -ey/m
			x0, y0 := area.point(g.Node(i, j))
			tx, ty := x0+ux*length, y0+uy*length
			head := length * 0.35
			sb.WriteString(fmt.Sprintf("M%.1f,%.1f L%.1f,%.1f ", x0, y0, tx, ty))
			for _, a := range []float64{2.618, -2.618} {
				bx := ux*math.Cos(a) - uy*math.Sin(a)
				by := ux*math.Sin(a) + uy*math.Cos(a)
				sb.WriteString(fmt.Sprintf("M%.1f,%.1f l%.1f,%.1f ", tx, ty, bx*head, by*head))
			}
		}
	}
	sb.WriteString("\"/>\n")
}

// SurfaceToSVG renders the potential surface of g through cam and converts
// the result to SVG dots.
func SurfaceToSVG(g *electro.FieldGrid, cam *viz.Camera, cols, rows int, scale float64, th viz.Theme) string {
	if g == nil {
		return ""
	}
	if cam == nil {
		cam = viz.NewSurfaceCamera()
	}
	c := viz.NewCanvas(cols, rows)
	viz.DrawSurface(c, g, cam, viz.DefaultSurfaceOptions())
	return CanvasToSVG(c, scale, th)
}

func writeHeader(sb *strings.Builder, width, height float64) {
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, svgBackground))
}

func inkColour(th viz.Theme, ink viz.Ink) string {
	switch ink {
	case viz.InkField:
		return string(th.Field)
	case viz.InkContour:
		return string(th.Contour)
	case viz.InkSurface:
		return string(th.Surface)
	case viz.InkPositive:
		return string(th.Positive)
	case viz.InkNegative:
		return string(th.Negative)
	}
	return string(th.Muted)
}
