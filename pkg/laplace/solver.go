package laplace

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/edp1096/toy-laplace/pkg/grid"
)

const (
	DefaultMaxIterations = 10000
	DefaultTolerance     = 1e-6
)

// Result is the structured outcome of one relaxation run. Non-convergence is
// not an error: the grid carries the last computed state either way and the
// caller decides what to do with it.
type Result struct {
	Grid       *grid.Grid
	Converged  bool
	Iterations int // 1-based count of sweeps performed
	FinalDiff  float64
	History    []float64 // L2 diff after each sweep
}

// Solver relaxes the interior of a plate grid toward the discrete Laplace
// solution with Gauss-Seidel sweeps.
type Solver struct {
	convergence struct {
		maxIter   int
		tolerance float64
	}
}

func NewSolver() *Solver {
	s := &Solver{}
	s.convergence.maxIter = DefaultMaxIterations
	s.convergence.tolerance = DefaultTolerance
	return s
}

func (s *Solver) SetMaxIterations(n int) error {
	if n < 1 {
		return fmt.Errorf("max iterations must be positive, got %d", n)
	}
	s.convergence.maxIter = n
	return nil
}

func (s *Solver) SetTolerance(tol float64) error {
	if tol <= 0 {
		return fmt.Errorf("tolerance must be positive, got %g", tol)
	}
	s.convergence.tolerance = tol
	return nil
}

func (s *Solver) MaxIterations() int { return s.convergence.maxIter }
func (s *Solver) Tolerance() float64 { return s.convergence.tolerance }

// Solve runs Gauss-Seidel sweeps over the interior of g until the L2 norm of
// the change between successive full grids drops below the tolerance, or the
// iteration cap is hit. The grid is mutated in place.
//
// Each sweep walks interior cells in row-major order and overwrites each cell
// with the mean of its four neighbours' current values, so cells above and to
// the left already carry this sweep's values while the rest still carry the
// previous sweep's. That in-place mixing is what makes this Gauss-Seidel
// rather than Jacobi, and the traversal order is part of the contract.
func (s *Solver) Solve(g *grid.Grid) *Result {
	n := g.N
	cur := g.Raw()
	old := make([]float64, len(cur))

	res := &Result{
		Grid:    g,
		History: make([]float64, 0, s.convergence.maxIter),
	}

	for iter := range s.convergence.maxIter {
		copy(old, cur)

		for i := 1; i <= n-2; i++ {
			for j := 1; j <= n-2; j++ {
				down := cur[(i+1)*n+j]
				up := cur[(i-1)*n+j]
				right := cur[i*n+j+1]
				left := cur[i*n+j-1]
				cur[i*n+j] = 0.25 * (down + up + right + left)
			}
		}

		diff := floats.Distance(cur, old, 2)
		res.Iterations = iter + 1
		res.FinalDiff = diff
		res.History = append(res.History, diff)

		if diff < s.convergence.tolerance {
			res.Converged = true
			break
		}
	}

	return res
}

// Residual returns the largest five-point stencil residual over the interior
// of a grid. After convergence it is expected to sit below the tolerance.
func Residual(g *grid.Grid) float64 {
	n := g.N
	worst := 0.0
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if g.IsBoundary(i, j) {
				continue
			}
			want := 0.25 * (g.At(i+1, j) + g.At(i-1, j) + g.At(i, j+1) + g.At(i, j-1))
			r := g.At(i, j) - want
			if r < 0 {
				r = -r
			}
			if r > worst {
				worst = r
			}
		}
	}
	return worst
}
