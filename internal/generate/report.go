package generate

import (
	"fmt"
	"strings"

	"tacmapgen/internal/grid"
)

// PlacementRecord logs one successful commit. Records feed statistics
// only; the placement loop never reads them back.
type PlacementRecord struct {
	Category grid.Category
	Anchor   [2]int
	Tiles    int
}

// CategoryStats pairs the tiles actually placed with the target the
// density asked for. A shortfall is a soft outcome, not an error.
type CategoryStats struct {
	Placed, Target int
}

// ZoneStats summarizes one planning zone for the report.
type ZoneStats struct {
	Kind     ZoneKind
	Target   float64
	Coverage float64
	MinGap   int
}

// sizeBuckets are the structure-size distribution boundaries: 1-5,
// 6-10, 11-15, 16+.
var sizeBuckets = [3]int{5, 10, 15}

// Report is the generation outcome delivered alongside the grid.
type Report struct {
	Counts          [grid.NumCategories]int
	Stats           map[grid.Category]CategoryStats
	Placements      []PlacementRecord
	Structures      []Structure
	SizeDist        [4]int
	Zones           []ZoneStats
	Sections        [9]float64
	Violations      []Violation
	ViolationCounts [4]int // indexed by Severity
	SymmetryFixes   int
	RepairedCells   int
	MergedCells     int
}

// finalize fills the derived report fields from the finished grid.
func (r *Report) finalize(g *grid.Grid, planner *ZonePlanner) {
	for cat := grid.Category(0); cat < grid.NumCategories; cat++ {
		r.Counts[cat] = g.Count(cat)
	}
	for _, cat := range []grid.Category{grid.Wall, grid.Water, grid.Grass} {
		for _, s := range Components(g, cat) {
			r.Structures = append(r.Structures, s)
			r.SizeDist[bucketFor(s.Size)]++
		}
	}
	for _, z := range planner.Zones() {
		r.Zones = append(r.Zones, ZoneStats{
			Kind:     z.Kind,
			Target:   z.Target,
			Coverage: planner.Coverage(z, g),
			MinGap:   z.MinGap,
		})
	}
	for i := 0; i < 9; i++ {
		sec := sectionRect(g.Rows, g.Cols, (i/3)*g.Rows/3, (i%3)*g.Cols/3)
		r.Sections[i] = float64(g.CountIn(sec)) / float64(sec.Area())
	}
	r.Violations = ScanGrid(g)
	for _, v := range r.Violations {
		r.ViolationCounts[v.Severity]++
	}
}

func bucketFor(size int) int {
	for i, hi := range sizeBuckets {
		if size <= hi {
			return i
		}
	}
	return 3
}

// String renders a human summary for the CLI.
func (r *Report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "tiles: wall=%d water=%d grass=%d empty=%d\n",
		r.Counts[grid.Wall], r.Counts[grid.Water], r.Counts[grid.Grass], r.Counts[grid.Empty])
	for _, cat := range []grid.Category{grid.Wall, grid.Grass, grid.Water} {
		st := r.Stats[cat]
		fmt.Fprintf(&b, "%s: placed %d/%d\n", cat, st.Placed, st.Target)
	}
	fmt.Fprintf(&b, "structures: %d (sizes 1-5:%d 6-10:%d 11-15:%d 16+:%d)\n",
		len(r.Structures), r.SizeDist[0], r.SizeDist[1], r.SizeDist[2], r.SizeDist[3])
	for _, z := range r.Zones {
		fmt.Fprintf(&b, "zone %s: coverage %.0f%% (target %.0f%%)\n",
			z.Kind, z.Coverage*100, z.Target*100)
	}
	fmt.Fprintf(&b, "violations: critical=%d high=%d medium=%d low=%d\n",
		r.ViolationCounts[SeverityCritical], r.ViolationCounts[SeverityHigh],
		r.ViolationCounts[SeverityMedium], r.ViolationCounts[SeverityLow])
	fmt.Fprintf(&b, "symmetry fixes: %d, repaired cells: %d, merged cells: %d\n",
		r.SymmetryFixes, r.RepairedCells, r.MergedCells)
	return b.String()
}
