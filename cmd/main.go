package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/edp1096/toy-laplace/pkg/deck"
	"github.com/edp1096/toy-laplace/pkg/export"
	"github.com/edp1096/toy-laplace/pkg/field"
	"github.com/edp1096/toy-laplace/pkg/grid"
	"github.com/edp1096/toy-laplace/pkg/laplace"
	"github.com/edp1096/toy-laplace/pkg/render"
	"github.com/edp1096/toy-laplace/pkg/util"
)

func printSolveResult(d *deck.Deck, res *laplace.Result) {
	fmt.Println("\nSolve Results:")
	fmt.Println("==============")

	if res.Converged {
		fmt.Printf("Converged after %d iterations (diff=%s)\n", res.Iterations, util.FormatDiff(res.FinalDiff))
	} else {
		fmt.Printf("Did not converge within %d iterations (diff=%s)\n", res.Iterations, util.FormatDiff(res.FinalDiff))
	}

	min, max := res.Grid.MinMax()
	fmt.Printf("Top plate:     %s\n", util.FormatValueFactor(d.PlateVoltage, "V"))
	fmt.Printf("Bottom plate:  %s\n", util.FormatValueFactor(0, "V"))
	fmt.Printf("Field range:   %s .. %s\n",
		util.FormatValueFactor(min, "V"), util.FormatValueFactor(max, "V"))
	fmt.Printf("Field energy:  %s\n", util.FormatValueFactor(field.FromGrid(res.Grid).Energy(), "J"))
}

func printSweepResults(results map[string][]float64) {
	sweeps := results["SWEEP"]

	fmt.Printf("\nVoltage Sweep Results (%d points):\n", len(sweeps))
	fmt.Println("Plate Voltage   Iterations   Converged   Final Diff   Energy")
	fmt.Println("--------------------------------------------------------------")

	for i, v := range sweeps {
		converged := "no"
		if results["CONVERGED"][i] != 0 {
			converged = "yes"
		}
		fmt.Printf("%-15s %-12.0f %-11s %-12s %s\n",
			util.FormatValueFactor(v, "V"),
			results["ITERATIONS"][i],
			converged,
			util.FormatDiff(results["FINAL_DIFF"][i]),
			util.FormatValueFactor(results["ENERGY"][i], "J"))
	}
}

func writeArtifacts(d *deck.Deck, res *laplace.Result) {
	for _, p := range d.Plots {
		var err error
		switch p.Kind {
		case "heatmap":
			err = render.SaveHeatmap(res.Grid, d.Title, p.Path)
		case "surface":
			err = render.SaveSurface(res.Grid, d.Title, p.Path)
		case "history":
			err = render.SaveHistory(res.History, d.Title, p.Path)
		}
		if err != nil {
			log.Fatalf("Plot %s failed: %v", p.Kind, err)
		}
		fmt.Printf("Wrote %s plot: %s\n", p.Kind, p.Path)
	}

	if d.ExportPath != "" {
		if err := export.SaveXLSX(res, d.ExportPath); err != nil {
			log.Fatalf("Export failed: %v", err)
		}
		fmt.Printf("Wrote workbook: %s\n", d.ExportPath)
	}
}

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		log.Fatal("Usage: laplace <deck_file>")
	}

	content, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		log.Fatalf("Error reading deck file: %v", err)
	}

	d, err := deck.Parse(string(content))
	if err != nil {
		log.Fatalf("Error parsing deck: %v", err)
	}

	solver := laplace.NewSolver()
	if err := solver.SetMaxIterations(d.SolveParam.MaxIterations); err != nil {
		log.Fatalf("Invalid deck: %v", err)
	}
	if err := solver.SetTolerance(d.SolveParam.Tolerance); err != nil {
		log.Fatalf("Invalid deck: %v", err)
	}

	switch d.Mode {
	case deck.ModeSolve:
		g, err := grid.NewPlate(d.Divisions, d.PlateVoltage)
		if err != nil {
			log.Fatalf("Grid setup failed: %v", err)
		}
		res := solver.Solve(g)
		printSolveResult(d, res)
		writeArtifacts(d, res)

	case deck.ModeSweep:
		sw, err := laplace.NewVoltageSweep(solver, d.Divisions, d.SweepParam.Start, d.SweepParam.Stop, d.SweepParam.Increment)
		if err != nil {
			log.Fatalf("Sweep setup failed: %v", err)
		}
		if err := sw.Execute(); err != nil {
			log.Fatalf("Sweep execution failed: %v", err)
		}
		printSweepResults(sw.GetResults())
		if len(d.Plots) > 0 || d.ExportPath != "" {
			log.Println("Plot and export directives are ignored in sweep mode")
		}

	default:
		log.Fatal("Unsupported run mode")
	}
}
