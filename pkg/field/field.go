package field

import (
	"math"

	"github.com/edp1096/toy-laplace/internal/consts"
	"github.com/edp1096/toy-laplace/pkg/grid"
)

// Field holds the electric field derived from a solved potential grid.
// Ex points along columns (increasing j), Ey along rows (increasing i),
// on the same node mesh as the potential. Spacing is one mesh unit.
type Field struct {
	N  int
	Ex [][]float64
	Ey [][]float64
}

// FromGrid computes E = -grad(V) with central differences on interior nodes
// and one-sided differences on the perimeter.
func FromGrid(g *grid.Grid) *Field {
	n := g.N
	f := &Field{
		N:  n,
		Ex: make([][]float64, n),
		Ey: make([][]float64, n),
	}

	for i := 0; i < n; i++ {
		f.Ex[i] = make([]float64, n)
		f.Ey[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			f.Ex[i][j] = -gradAlong(g, i, j, false)
			f.Ey[i][j] = -gradAlong(g, i, j, true)
		}
	}
	return f
}

func gradAlong(g *grid.Grid, i, j int, rowAxis bool) float64 {
	n := g.N
	at := func(k int) float64 {
		if rowAxis {
			return g.At(k, j)
		}
		return g.At(i, k)
	}
	k := j
	if rowAxis {
		k = i
	}

	switch {
	case k == 0:
		return at(1) - at(0)
	case k == n-1:
		return at(n-1) - at(n-2)
	default:
		return (at(k+1) - at(k-1)) / 2
	}
}

// Magnitude returns |E| per node.
func (f *Field) Magnitude() [][]float64 {
	mag := make([][]float64, f.N)
	for i := range mag {
		mag[i] = make([]float64, f.N)
		for j := range mag[i] {
			mag[i][j] = math.Hypot(f.Ex[i][j], f.Ey[i][j])
		}
	}
	return mag
}

// Energy returns the stored electrostatic energy of the cross-section,
// 0.5 * eps0 * sum(|E|^2) per unit mesh cell and unit depth.
func (f *Field) Energy() float64 {
	sum := 0.0
	for i := 0; i < f.N; i++ {
		for j := 0; j < f.N; j++ {
			sum += f.Ex[i][j]*f.Ex[i][j] + f.Ey[i][j]*f.Ey[i][j]
		}
	}
	return 0.5 * consts.EPSILON0 * sum
}
