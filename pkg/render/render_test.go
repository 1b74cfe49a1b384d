package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/edp1096/toy-laplace/pkg/grid"
	"github.com/edp1096/toy-laplace/pkg/laplace"
)

func solvedGrid(t *testing.T) *laplace.Result {
	t.Helper()
	g, err := grid.NewPlate(6, 500)
	if err != nil {
		t.Fatalf("grid setup: %v", err)
	}
	return laplace.NewSolver().Solve(g)
}

func requireFile(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("expected output file: %v", err)
	}
	if info.Size() == 0 {
		t.Fatalf("output file %s is empty", path)
	}
}

func TestSaveHeatmap(t *testing.T) {
	res := solvedGrid(t)
	path := filepath.Join(t.TempDir(), "field.png")

	if err := SaveHeatmap(res.Grid, "test field", path); err != nil {
		t.Fatalf("SaveHeatmap: %v", err)
	}
	requireFile(t, path)
}

func TestSaveHistory(t *testing.T) {
	res := solvedGrid(t)
	path := filepath.Join(t.TempDir(), "history.png")

	if err := SaveHistory(res.History, "convergence", path); err != nil {
		t.Fatalf("SaveHistory: %v", err)
	}
	requireFile(t, path)
}

func TestSaveHistoryEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.png")
	if err := SaveHistory(nil, "convergence", path); err == nil {
		t.Fatal("expected error for empty history")
	}
}

func TestSaveSurface(t *testing.T) {
	res := solvedGrid(t)
	path := filepath.Join(t.TempDir(), "field.html")

	if err := SaveSurface(res.Grid, "test field", path); err != nil {
		t.Fatalf("SaveSurface: %v", err)
	}
	requireFile(t, path)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read surface html: %v", err)
	}
	if !strings.Contains(string(data), "echarts") {
		t.Error("surface output does not look like an echarts page")
	}
}
