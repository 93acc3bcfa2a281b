// Package viz renders field grids in the terminal.
//
// Everything draws onto a [Canvas], a Braille sub-pixel buffer where each
// cell holds 2x4 dots and remembers the [Ink] it was drawn with so a [Theme]
// can colour it later.
//
//   - [DrawField]: quiver arrows, equipotential lines ([Contours]) and
//     charge markers in the xy plane
//   - [DrawSurface]: the potential as a wireframe surface seen through a
//     [Camera]
//   - [PotentialProfile]: V along one grid row, via asciigraph
//   - [Interactive]: the Bubble Tea view with sliders for charge 0
//
// # Key Bindings
//
//	h/l    - Adjust the selected slider (H/L coarse)
//	tab    - Switch between magnitude and position
//	r      - Reset charges
//	c / a  - Toggle contours / arrows
//	p      - Toggle the potential profile
//	s      - Save a snapshot
//	t      - Cycle color themes
//	q      - Quit
package viz
