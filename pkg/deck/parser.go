package deck

import (
	"bufio"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

type RunMode int

const (
	ModeSolve RunMode = iota
	ModeSweep
)

// Deck is a parsed scenario file: one plate geometry plus run directives.
type Deck struct {
	Title        string
	PlateVoltage float64
	Divisions    int // intervals per side; node count is Divisions+1
	SolveParam   struct {
		MaxIterations int
		Tolerance     float64
	}
	Mode       RunMode
	SweepParam struct {
		Start     float64
		Stop      float64
		Increment float64
	}
	Plots      []PlotSpec
	ExportPath string

	hasPlate bool
	hasGrid  bool
}

// PlotSpec requests one render artifact. Kind is one of "heatmap",
// "surface" or "history".
type PlotSpec struct {
	Kind string
	Path string
}

var unitMap = map[string]float64{
	"T":   1e12,  // tera
	"G":   1e9,   // giga
	"meg": 1e6,   // mega
	"K":   1e3,   // kilo
	"k":   1e3,   // kilo
	"m":   1e-3,  // milli
	"u":   1e-6,  // micro
	"n":   1e-9,  // nano
	"p":   1e-12, // pico
	"f":   1e-15, // femto
}

// Parse reads a deck from text. The first line is the title; remaining lines
// are comments ("*"), blank, or dot directives.
func Parse(input string) (*Deck, error) {
	scanner := bufio.NewScanner(strings.NewReader(input))
	d := &Deck{}
	d.SolveParam.MaxIterations = 10000
	d.SolveParam.Tolerance = 1e-6

	// Title or comment
	if scanner.Scan() {
		d.Title = strings.TrimPrefix(scanner.Text(), "*")
		d.Title = strings.TrimSpace(d.Title)
	}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if len(line) == 0 {
			continue
		}

		// Strip inline comment
		if idx := strings.Index(line, "*"); idx >= 0 {
			line = strings.TrimSpace(line[:idx])
			if len(line) == 0 {
				continue
			}
		}

		if err := parseLine(d, line); err != nil {
			return nil, err
		}
	}

	if d.Mode == ModeSolve && !d.hasPlate {
		return nil, fmt.Errorf("deck %q: missing .plate directive", d.Title)
	}
	if !d.hasGrid {
		return nil, fmt.Errorf("deck %q: missing .grid directive", d.Title)
	}

	return d, nil
}

func parseLine(d *Deck, line string) error {
	line = regexp.MustCompile(`\s+`).ReplaceAllString(line, " ")

	if !strings.HasPrefix(line, ".") {
		return fmt.Errorf("unexpected line: %s", line)
	}
	return parseDotOperator(d, line)
}

func parseDotOperator(d *Deck, line string) error {
	var err error

	fields := strings.Fields(line)
	if len(fields) < 1 {
		return fmt.Errorf("invalid directive")
	}

	switch strings.ToLower(fields[0]) {
	case ".plate":
		if len(fields) != 2 {
			return fmt.Errorf(".plate needs exactly one voltage value")
		}
		d.PlateVoltage, err = ParseValue(fields[1])
		if err != nil {
			return fmt.Errorf("invalid plate voltage: %v", err)
		}
		d.hasPlate = true

	case ".grid":
		if len(fields) != 2 {
			return fmt.Errorf(".grid needs exactly one divisions value")
		}
		d.Divisions, err = strconv.Atoi(fields[1])
		if err != nil {
			return fmt.Errorf("invalid grid divisions: %v", err)
		}
		d.hasGrid = true

	case ".solve":
		d.Mode = ModeSolve
		for _, f := range fields[1:] {
			key, val, found := strings.Cut(f, "=")
			if !found {
				return fmt.Errorf("invalid solve parameter %q, want key=value", f)
			}
			switch strings.ToLower(key) {
			case "maxiter":
				d.SolveParam.MaxIterations, err = strconv.Atoi(val)
				if err != nil {
					return fmt.Errorf("invalid maxiter: %v", err)
				}
			case "tol":
				d.SolveParam.Tolerance, err = ParseValue(val)
				if err != nil {
					return fmt.Errorf("invalid tol: %v", err)
				}
			default:
				return fmt.Errorf("unknown solve parameter %q", key)
			}
		}

	case ".sweep":
		if len(fields) != 4 {
			return fmt.Errorf(".sweep needs start, stop and increment")
		}
		d.Mode = ModeSweep
		d.SweepParam.Start, err = ParseValue(fields[1])
		if err != nil {
			return fmt.Errorf("invalid sweep start: %v", err)
		}
		d.SweepParam.Stop, err = ParseValue(fields[2])
		if err != nil {
			return fmt.Errorf("invalid sweep stop: %v", err)
		}
		d.SweepParam.Increment, err = ParseValue(fields[3])
		if err != nil {
			return fmt.Errorf("invalid sweep increment: %v", err)
		}

	case ".plot":
		if len(fields) != 3 {
			return fmt.Errorf(".plot needs a kind and an output path")
		}
		kind := strings.ToLower(fields[1])
		switch kind {
		case "heatmap", "surface", "history":
		default:
			return fmt.Errorf("unknown plot kind %q", fields[1])
		}
		d.Plots = append(d.Plots, PlotSpec{Kind: kind, Path: fields[2]})

	case ".export":
		if len(fields) != 2 {
			return fmt.Errorf(".export needs exactly one output path")
		}
		d.ExportPath = fields[1]

	case ".end":
		// nothing to do

	default:
		return fmt.Errorf("unknown directive %q", fields[0])
	}

	return nil
}

// ParseValue parses a number with an optional engineering suffix and an
// optional trailing unit letter ("500", "1.5k", "1u", "10mV").
func ParseValue(val string) (float64, error) {
	re := regexp.MustCompile(`^([-+]?\d*\.?\d+(?:[eE][-+]?\d+)?)(meg|[TGKkmunpf])?[Vv]?$`)
	matches := re.FindStringSubmatch(strings.TrimSpace(val))

	if matches == nil {
		return 0, fmt.Errorf("invalid value format: %s", val)
	}

	num, err := strconv.ParseFloat(matches[1], 64)
	if err != nil {
		return 0, err
	}

	if len(matches) > 2 && matches[2] != "" {
		if multiplier, ok := unitMap[matches[2]]; ok {
			num *= multiplier
		}
	}

	return num, nil
}
