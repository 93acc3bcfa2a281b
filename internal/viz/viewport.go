package viz

import (
	"math"

	"github.com/san-kum/chargefield/internal/electro"
)

// Viewport maps world coordinates (m) onto canvas sub-pixels. The y axis
// points up in world space and down on screen.
type Viewport struct {
	MinX, MaxX, MinY, MaxY float64
	PxW, PxH               int
}

// GridViewport frames the whole sample region of g on c.
func GridViewport(c *Canvas, spec electro.GridSpec) Viewport {
	w, h := c.Pixels()
	e := spec.Extent()
	return Viewport{MinX: -e, MaxX: e, MinY: -e, MaxY: e, PxW: w, PxH: h}
}

func (v Viewport) ToPixel(p electro.Vec2) (int, int) {
	sx := (p.X - v.MinX) / (v.MaxX - v.MinX) * float64(v.PxW-1)
	sy := (v.MaxY - p.Y) / (v.MaxY - v.MinY) * float64(v.PxH-1)
	return int(math.Round(sx)), int(math.Round(sy))
}

// Scale returns sub-pixels per metre along x and y.
func (v Viewport) Scale() (float64, float64) {
	return float64(v.PxW-1) / (v.MaxX - v.MinX), float64(v.PxH-1) / (v.MaxY - v.MinY)
}
