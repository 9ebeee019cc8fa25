package generate

import "tacmapgen/internal/grid"

// Severity ranks a scanned violation. Only Critical and High force a
// rollback during placement; Medium (1-tile corridors) and Low (bare
// protrusions) are tolerated and surface in the report.
type Severity uint8

const (
	SeverityLow Severity = iota
	SeverityMedium
	SeverityHigh
	SeverityCritical
)

// String returns a short lower-case name for the severity.
func (s Severity) String() string {
	switch s {
	case SeverityCritical:
		return "critical"
	case SeverityHigh:
		return "high"
	case SeverityMedium:
		return "medium"
	}
	return "low"
}

// Violation is one cell the scanner flagged as unplayable geometry.
type Violation struct {
	Row, Col int
	Severity Severity
	Kind     string
}

// ScanGrid classifies every cell in one full sweep:
//
//   - Empty, all 4 orthogonal neighbors filled: critical (trapped gap)
//   - Empty, exactly 3 filled orthogonal neighbors and a filled
//     diagonal neighbor: high (near-trapped)
//   - Empty, flanked on opposite sides: medium (1-tile corridor)
//   - Filled, no same-category 8-neighbor but at least one
//     differently-categoried one: low (bare protrusion)
//
// The map border counts as open ground, so edge cells never trap.
func ScanGrid(g *grid.Grid) []Violation {
	var out []Violation
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			if v, ok := classifyCell(g, row, col); ok {
				out = append(out, v)
			}
		}
	}
	return out
}

// ValidateGrid is the standalone diagnostic entry point: it scans any
// grid, generated or hand-edited, and returns the violations found.
func ValidateGrid(g *grid.Grid) []Violation {
	return ScanGrid(g)
}

func classifyCell(g *grid.Grid, row, col int) (Violation, bool) {
	cat := g.At(row, col)
	if cat == grid.Empty {
		filled := 0
		for _, d := range orthoDirs {
			if g.Filled(row+d[0], col+d[1]) {
				filled++
			}
		}
		if filled == 4 {
			return Violation{Row: row, Col: col, Severity: SeverityCritical, Kind: "trapped gap"}, true
		}
		if filled == 3 {
			for _, d := range diagDirs {
				if g.Filled(row+d[0], col+d[1]) {
					return Violation{Row: row, Col: col, Severity: SeverityHigh, Kind: "near-trapped gap"}, true
				}
			}
		}
		if flankedOpposite(g, row, col) {
			return Violation{Row: row, Col: col, Severity: SeverityMedium, Kind: "1-tile corridor"}, true
		}
		return Violation{}, false
	}

	same, other := 0, 0
	for _, d := range append(orthoDirs[:], diagDirs[:]...) {
		n := g.At(row+d[0], col+d[1])
		switch {
		case n == cat:
			same++
		case n != grid.Empty:
			other++
		}
	}
	if same == 0 && other > 0 {
		return Violation{Row: row, Col: col, Severity: SeverityLow, Kind: "bare protrusion"}, true
	}
	return Violation{}, false
}

// flankedOpposite reports whether (row, col) has filled cells on both
// north and south, or both east and west.
func flankedOpposite(g *grid.Grid, row, col int) bool {
	if g.Filled(row-1, col) && g.Filled(row+1, col) {
		return true
	}
	return g.Filled(row, col-1) && g.Filled(row, col+1)
}

// hasSevere reports whether the violation list contains any entry that
// forces a rollback.
func hasSevere(vs []Violation) bool {
	for _, v := range vs {
		if v.Severity == SeverityCritical || v.Severity == SeverityHigh {
			return true
		}
	}
	return false
}
