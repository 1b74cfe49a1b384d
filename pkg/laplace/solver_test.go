package laplace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edp1096/toy-laplace/pkg/grid"
)

func solvePlate(t *testing.T, divisions int, topVoltage float64, s *Solver) *Result {
	t.Helper()
	g, err := grid.NewPlate(divisions, topVoltage)
	require.NoError(t, err)
	return s.Solve(g)
}

func TestSolveConverges(t *testing.T) {
	res := solvePlate(t, 4, 500, NewSolver())

	require.True(t, res.Converged)
	assert.Less(t, res.Iterations, 1000, "5x5 grid should converge well under the cap")
	assert.Less(t, res.FinalDiff, DefaultTolerance)
	assert.Len(t, res.History, res.Iterations)
}

func TestBoundaryInvariance(t *testing.T) {
	res := solvePlate(t, 4, 500, NewSolver())
	g := res.Grid

	for j := 0; j < g.N; j++ {
		assert.Equal(t, 500.0, g.At(0, j))
		assert.Equal(t, 0.0, g.At(g.N-1, j))
	}
	e := 500.0 / float64(g.N-1)
	for i := 1; i <= g.N-2; i++ {
		assert.Equal(t, 500.0-float64(i)*e, g.At(i, 0))
		assert.Equal(t, 500.0-float64(i)*e, g.At(i, g.N-1))
	}
}

func TestSteadyStateResidual(t *testing.T) {
	res := solvePlate(t, 4, 500, NewSolver())

	require.True(t, res.Converged)
	assert.Less(t, Residual(res.Grid), DefaultTolerance)
}

func TestInteriorWithinPlateRange(t *testing.T) {
	res := solvePlate(t, 3, 100, NewSolver())
	g := res.Grid

	require.True(t, res.Converged)
	for i := 1; i <= g.N-2; i++ {
		for j := 1; j <= g.N-2; j++ {
			v := g.At(i, j)
			assert.Greater(t, v, 0.0)
			assert.Less(t, v, 100.0)
		}
	}

	// potential falls off from the top plate toward ground
	for i := 1; i < g.N-2; i++ {
		for j := 1; j <= g.N-2; j++ {
			assert.Greater(t, g.At(i, j), g.At(i+1, j))
		}
	}
}

func TestConvergedFieldIsSymmetric(t *testing.T) {
	s := NewSolver()
	require.NoError(t, s.SetTolerance(1e-10))

	res := solvePlate(t, 6, 200, s)
	require.True(t, res.Converged)

	g := res.Grid
	for i := 1; i <= g.N-2; i++ {
		for j := 1; j <= g.N-2; j++ {
			assert.InDelta(t, g.At(i, j), g.At(i, g.N-1-j), 1e-6,
				"cell (%d,%d) vs mirrored", i, j)
		}
	}
}

func TestDeterminism(t *testing.T) {
	a := solvePlate(t, 5, 500, NewSolver())
	b := solvePlate(t, 5, 500, NewSolver())

	assert.Equal(t, a.Iterations, b.Iterations)
	assert.Equal(t, a.Converged, b.Converged)
	assert.Equal(t, a.Grid.Raw(), b.Grid.Raw())
}

func TestNonConvergenceIsReportedNotFatal(t *testing.T) {
	s := NewSolver()
	require.NoError(t, s.SetMaxIterations(1))

	res := solvePlate(t, 4, 500, s)

	assert.False(t, res.Converged)
	assert.Equal(t, 1, res.Iterations)
	assert.Greater(t, res.FinalDiff, DefaultTolerance)

	// best-effort grid still intact
	g := res.Grid
	for j := 0; j < g.N; j++ {
		assert.Equal(t, 500.0, g.At(0, j))
		assert.Equal(t, 0.0, g.At(g.N-1, j))
	}
}

func TestDiffShrinks(t *testing.T) {
	res := solvePlate(t, 6, 500, NewSolver())

	require.True(t, res.Converged)
	require.Greater(t, len(res.History), 1)
	assert.Less(t, res.History[len(res.History)-1], res.History[0])
}

func TestGaussSeidelFirstSweep(t *testing.T) {
	// 3 divisions, V=100: after one sweep the in-place update order is
	// observable. E = 100/3; interior starts at zero.
	g, err := grid.NewPlate(3, 100)
	require.NoError(t, err)

	s := NewSolver()
	require.NoError(t, s.SetMaxIterations(1))
	res := s.Solve(g)
	require.Equal(t, 1, res.Iterations)

	e := 100.0 / 3.0
	// (1,1): down=0, up=100, right=0, left=100-E
	v11 := 0.25 * (100 + (100 - e))
	assert.InDelta(t, v11, g.At(1, 1), 1e-12)
	// (1,2): left already holds v11 from this sweep
	v12 := 0.25 * (100 + (100 - e) + v11)
	assert.InDelta(t, v12, g.At(1, 2), 1e-12)
	// (2,1): up already holds v11
	v21 := 0.25 * (v11 + (100 - 2*e))
	assert.InDelta(t, v21, g.At(2, 1), 1e-12)
	// (2,2): up and left hold this sweep's values
	v22 := 0.25 * (v12 + v21 + (100 - 2*e))
	assert.InDelta(t, v22, g.At(2, 2), 1e-12)
}

func TestSolverParameterValidation(t *testing.T) {
	s := NewSolver()
	assert.Error(t, s.SetMaxIterations(0))
	assert.Error(t, s.SetTolerance(0))
	assert.Error(t, s.SetTolerance(-1))
	assert.Equal(t, DefaultMaxIterations, s.MaxIterations())
	assert.Equal(t, DefaultTolerance, s.Tolerance())
}
