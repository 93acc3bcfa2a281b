package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/san-kum/chargefield/internal/electro"
)

var ErrNoGrid = errors.New("export: no grid")

var csvHeader = []string{"x", "y", "ex", "ey", "v"}

// WriteCSV writes one row per grid node, row-major in the grid layout.
func WriteCSV(w io.Writer, g *electro.FieldGrid) error {
	if g == nil {
		return ErrNoGrid
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("export: write csv header: %w", err)
	}
	rec := make([]string, len(csvHeader))
	for i := 0; i < g.Rows(); i++ {
		for j := 0; j < g.Cols(); j++ {
			rec[0] = formatFloat(g.X[j])
			rec[1] = formatFloat(g.Y[i])
			rec[2] = formatFloat(g.Ex[i][j])
			rec[3] = formatFloat(g.Ey[i][j])
			rec[4] = formatFloat(g.V[i][j])
			if err := cw.Write(rec); err != nil {
				return fmt.Errorf("export: write csv row: %w", err)
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

type chargeJSON struct {
	Q float64 `json:"q"`
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type gridJSON struct {
	Size    float64      `json:"size"`
	Points  int          `json:"points"`
	Charges []chargeJSON `json:"charges"`
	X       []float64    `json:"x"`
	Y       []float64    `json:"y"`
	Ex      [][]float64  `json:"ex"`
	Ey      [][]float64  `json:"ey"`
	V       [][]float64  `json:"v"`
}

// WriteJSON writes the grid axes, the three value matrices and the charges
// the grid was evaluated for.
func WriteJSON(w io.Writer, g *electro.FieldGrid) error {
	if g == nil {
		return ErrNoGrid
	}
	out := gridJSON{
		Size:    g.Spec.Size,
		Points:  g.Spec.Points,
		Charges: make([]chargeJSON, len(g.Charges)),
		X:       g.X,
		Y:       g.Y,
		Ex:      g.Ex,
		Ey:      g.Ey,
		V:       g.V,
	}
	for i, c := range g.Charges {
		out.Charges[i] = chargeJSON{Q: c.Magnitude, X: c.Position.X, Y: c.Position.Y}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("export: encode json: %w", err)
	}
	return nil
}

// WriteFile creates path and hands it to write.
func WriteFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteString is a WriteFile adapter for pre-rendered output.
func WriteString(s string) func(io.Writer) error {
	return func(w io.Writer) error {
		_, err := io.WriteString(w, s)
		return err
	}
}
