package viz

import (
	"fmt"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/chargefield/internal/electro"
)

// PotentialProfile plots V along the grid row closest to y.
func PotentialProfile(g *electro.FieldGrid, y float64, width, height int) string {
	if g == nil {
		return ""
	}
	row := g.RowNearest(y)
	if row < 0 || len(g.V[row]) == 0 {
		return ""
	}
	return asciigraph.Plot(g.V[row],
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(fmt.Sprintf("V (volts) along y = %.2f m", g.Y[row])),
	)
}
