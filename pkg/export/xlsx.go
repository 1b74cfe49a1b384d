package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/edp1096/toy-laplace/pkg/field"
	"github.com/edp1096/toy-laplace/pkg/laplace"
)

// SaveXLSX writes a solve result to an xlsx workbook: a Summary sheet with
// the run outcome and a Potential sheet holding the full grid, top plate row
// first.
func SaveXLSX(res *laplace.Result, filename string) error {
	f := excelize.NewFile()

	// --------------------
	// Summary sheet
	// --------------------
	summary := "Summary"
	if err := f.SetSheetName("Sheet1", summary); err != nil {
		return err
	}

	converged := "no"
	if res.Converged {
		converged = "yes"
	}
	min, max := res.Grid.MinMax()
	ef := field.FromGrid(res.Grid)

	rows := [][]interface{}{
		{"Key", "Value"},
		{"Nodes per side", res.Grid.N},
		{"Converged", converged},
		{"Iterations", res.Iterations},
		{"Final diff", res.FinalDiff},
		{"Min potential", min},
		{"Max potential", max},
		{"Field energy", ef.Energy()},
	}
	for r, row := range rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(summary, cell, v); err != nil {
				return err
			}
		}
	}

	// --------------------
	// Potential sheet
	// --------------------
	sheet := "Potential"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	for i, row := range res.Grid.Rows() {
		for j, v := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}

	// --------------------
	// Field magnitude sheet
	// --------------------
	magSheet := "FieldMagnitude"
	if _, err := f.NewSheet(magSheet); err != nil {
		return err
	}
	for i, row := range ef.Magnitude() {
		for j, v := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(magSheet, cell, v); err != nil {
				return err
			}
		}
	}

	if err := f.SaveAs(filename); err != nil {
		return fmt.Errorf("save xlsx: %w", err)
	}
	return nil
}
