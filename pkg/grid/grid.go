package grid

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrGridTooSmall     = errors.New("grid too small")
	ErrInvalidParameter = errors.New("invalid parameter")
)

// Grid is a dense N x N potential field. Values are stored row-major in a
// single backing slice so a full-grid snapshot is one copy call.
type Grid struct {
	N    int
	data []float64
}

func New(n int) (*Grid, error) {
	if n < 3 {
		return nil, fmt.Errorf("%w: need at least 3 nodes per side, got %d", ErrGridTooSmall, n)
	}
	return &Grid{
		N:    n,
		data: make([]float64, n*n),
	}, nil
}

// NewPlate builds a grid for a parallel-plate scenario. The user-facing
// resolution is divisions (intervals per side); the node count per side is
// divisions+1. Boundaries are stamped, interior stays zero.
func NewPlate(divisions int, topVoltage float64) (*Grid, error) {
	if divisions < 2 {
		return nil, fmt.Errorf("%w: need at least 2 divisions per side, got %d", ErrGridTooSmall, divisions)
	}
	if math.IsNaN(topVoltage) || math.IsInf(topVoltage, 0) {
		return nil, fmt.Errorf("%w: plate voltage must be finite, got %g", ErrInvalidParameter, topVoltage)
	}

	g, err := New(divisions + 1)
	if err != nil {
		return nil, err
	}
	g.ApplyPlateBoundary(topVoltage)
	return g, nil
}

// ApplyPlateBoundary stamps the fixed perimeter values: the top plate at
// topVoltage, the grounded bottom plate at 0, and side columns interpolated
// linearly between them. Corners belong to the plate rows; the side columns
// only touch strictly interior rows.
func (g *Grid) ApplyPlateBoundary(topVoltage float64) {
	n := g.N
	e := topVoltage / float64(n-1) // potential drop per row

	for j := 0; j < n; j++ {
		g.Set(0, j, topVoltage)
		g.Set(n-1, j, 0)
	}
	for i := 1; i <= n-2; i++ {
		v := topVoltage - float64(i)*e
		g.Set(i, 0, v)
		g.Set(i, n-1, v)
	}
}

func (g *Grid) At(i, j int) float64 {
	return g.data[i*g.N+j]
}

func (g *Grid) Set(i, j int, v float64) {
	g.data[i*g.N+j] = v
}

// IsBoundary reports whether (i, j) lies on the fixed perimeter.
func (g *Grid) IsBoundary(i, j int) bool {
	return i == 0 || j == 0 || i == g.N-1 || j == g.N-1
}

// Raw exposes the backing slice. The solver snapshots and diffs through it;
// callers must not resize it.
func (g *Grid) Raw() []float64 {
	return g.data
}

// Clone returns an independent copy of the grid.
func (g *Grid) Clone() *Grid {
	data := make([]float64, len(g.data))
	copy(data, g.data)
	return &Grid{N: g.N, data: data}
}

// Rows returns the grid as an N x N slice of rows. Renderers and exporters
// consume this shape; mutating it does not affect the grid.
func (g *Grid) Rows() [][]float64 {
	rows := make([][]float64, g.N)
	for i := 0; i < g.N; i++ {
		rows[i] = make([]float64, g.N)
		copy(rows[i], g.data[i*g.N:(i+1)*g.N])
	}
	return rows
}

// MinMax returns the smallest and largest potential on the grid.
func (g *Grid) MinMax() (min, max float64) {
	min, max = g.data[0], g.data[0]
	for _, v := range g.data[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}
