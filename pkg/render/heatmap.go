package render

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/edp1096/toy-laplace/pkg/grid"
)

// potentialGrid adapts a solved grid to the plotter.GridXYZ interface.
// Rows are flipped so the high-voltage plate renders at the top of the image.
type potentialGrid struct {
	g *grid.Grid
}

func (pg potentialGrid) Dims() (c, r int)   { return pg.g.N, pg.g.N }
func (pg potentialGrid) X(c int) float64    { return float64(c) }
func (pg potentialGrid) Y(r int) float64    { return float64(r) }
func (pg potentialGrid) Z(c, r int) float64 { return pg.g.At(pg.g.N-1-r, c) }

// SaveHeatmap renders the potential field as a PNG heatmap.
func SaveHeatmap(g *grid.Grid, title, path string) error {
	pal := palette.Heat(12, 1)
	hm := plotter.NewHeatMap(potentialGrid{g}, pal)

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Column"
	p.Y.Label.Text = "Row (bottom plate at 0)"
	p.Add(hm)

	if err := p.Save(8*vg.Inch, 8*vg.Inch, path); err != nil {
		return fmt.Errorf("save heatmap: %w", err)
	}
	return nil
}

// SaveHistory renders the per-sweep convergence diff as a line plot.
func SaveHistory(history []float64, title, path string) error {
	if len(history) == 0 {
		return fmt.Errorf("no convergence history to plot")
	}

	pts := make(plotter.XYs, 0, len(history))
	for i, d := range history {
		pts = append(pts, plotter.XY{X: float64(i + 1), Y: d})
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	line.Width = vg.Points(1)

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Iteration"
	p.Y.Label.Text = "L2 diff"
	p.Add(line)
	p.Legend.Add("diff", line)
	p.Legend.Top = true

	if err := p.Save(14*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("save history plot: %w", err)
	}
	return nil
}
