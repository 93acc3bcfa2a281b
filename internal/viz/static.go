package viz

import "github.com/san-kum/chargefield/internal/electro"

// RenderField draws the 2D field plot of g on a fresh w x h canvas. With
// colour false the output is plain Braille text.
func RenderField(g *electro.FieldGrid, w, h int, opts FieldPlotOptions, th Theme, colour bool) string {
	c := NewCanvas(w, h)
	DrawField(c, g, opts)
	if colour {
		return c.Render(th)
	}
	return c.String()
}

// RenderSurface draws the potential surface of g on a fresh w x h canvas.
func RenderSurface(g *electro.FieldGrid, cam *Camera, w, h int, opts SurfaceOptions, th Theme, colour bool) string {
	if cam == nil {
		cam = NewSurfaceCamera()
	}
	c := NewCanvas(w, h)
	DrawSurface(c, g, cam, opts)
	if colour {
		return c.Render(th)
	}
	return c.String()
}
