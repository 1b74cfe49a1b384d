package laplace

import (
	"fmt"

	"github.com/edp1096/toy-laplace/pkg/field"
	"github.com/edp1096/toy-laplace/pkg/grid"
)

// VoltageSweep solves the same plate geometry for a linear range of top-plate
// voltages. Results follow the variable-name-to-series shape the CLI printer
// expects.
type VoltageSweep struct {
	solver    *Solver
	divisions int
	startVal  float64
	stopVal   float64
	increment float64
	sweepVals []float64
	results   map[string][]float64
}

func NewVoltageSweep(solver *Solver, divisions int, start, stop, increment float64) (*VoltageSweep, error) {
	if increment <= 0 {
		return nil, fmt.Errorf("sweep increment must be positive, got %g", increment)
	}
	if stop < start {
		return nil, fmt.Errorf("sweep stop %g below start %g", stop, start)
	}

	sw := &VoltageSweep{
		solver:    solver,
		divisions: divisions,
		startVal:  start,
		stopVal:   stop,
		increment: increment,
		results:   make(map[string][]float64),
	}
	for v := start; v <= stop; v += increment {
		sw.sweepVals = append(sw.sweepVals, v)
	}
	return sw, nil
}

// Execute runs one solve per sweep value. A fresh grid is built for every
// step; solves never share state.
func (sw *VoltageSweep) Execute() error {
	for _, v := range sw.sweepVals {
		g, err := grid.NewPlate(sw.divisions, v)
		if err != nil {
			return fmt.Errorf("building grid for V=%g: %w", v, err)
		}

		res := sw.solver.Solve(g)

		converged := 0.0
		if res.Converged {
			converged = 1.0
		}

		sw.store("SWEEP", v)
		sw.store("ITERATIONS", float64(res.Iterations))
		sw.store("FINAL_DIFF", res.FinalDiff)
		sw.store("CONVERGED", converged)
		sw.store("ENERGY", field.FromGrid(g).Energy())
	}
	return nil
}

func (sw *VoltageSweep) store(name string, value float64) {
	sw.results[name] = append(sw.results[name], value)
}

func (sw *VoltageSweep) GetResults() map[string][]float64 {
	return sw.results
}
