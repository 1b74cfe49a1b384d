package render

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/edp1096/toy-laplace/pkg/grid"
)

// viridis ramp for the visual map, low potential to high.
var surfaceColors = []string{
	"#440154", "#482777", "#3e4989", "#31688e", "#26828e",
	"#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725",
}

// SaveSurface renders the potential field as an interactive HTML 3D surface.
// Rows are flipped so the high-voltage plate sits at the far edge of the mesh.
func SaveSurface(g *grid.Grid, title, path string) error {
	n := g.N
	min, max := g.MinMax()
	if max == min {
		max = min + 1
	}

	data := make([]opts.Chart3DData, 0, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			data = append(data, opts.Chart3DData{
				Value: []interface{}{j, n - 1 - i, g.At(i, j)},
			})
		}
	}

	surface := charts.NewSurface3D()
	surface.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: title,
			Width:     "900px",
			Height:    "900px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: fmt.Sprintf("nodes=%dx%d", n, n),
		}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(true),
			Calculable: opts.Bool(true),
			Min:        float32(min),
			Max:        float32(max),
			InRange:    &opts.VisualMapInRange{Color: surfaceColors},
		}),
	)
	surface.AddSeries("potential", data)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create surface file: %w", err)
	}
	defer f.Close()

	if err := surface.Render(f); err != nil {
		return fmt.Errorf("render surface chart: %w", err)
	}
	return nil
}
