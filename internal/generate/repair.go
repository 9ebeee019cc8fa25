package generate

import "tacmapgen/internal/grid"

// repairMaxSweeps bounds the trap-relief loop. A cleared cell can in
// principle trap a different gap, so the sweep repeats until a pass
// finds nothing, capped hard in case of pathological geometry.
const repairMaxSweeps = 8

// FinalRepairPass removes tiles to free fully-trapped empty cells that
// survived placement. For each trapped cell the offending neighbor
// belonging to the smallest adjacent same-category structure is
// cleared. Returns the number of cells cleared.
func FinalRepairPass(g *grid.Grid) int {
	cleared := 0
	for sweep := 0; sweep < repairMaxSweeps; sweep++ {
		n := repairSweep(g)
		cleared += n
		if n == 0 {
			break
		}
	}
	return cleared
}

func repairSweep(g *grid.Grid) int {
	cleared := 0
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			if g.At(row, col) != grid.Empty || !trapped(g, row, col) {
				continue
			}
			if r, c, ok := weakestNeighbor(g, row, col); ok {
				g.Set(r, c, grid.Empty)
				cleared++
			}
		}
	}
	return cleared
}

func trapped(g *grid.Grid, row, col int) bool {
	for _, d := range orthoDirs {
		if !g.Filled(row+d[0], col+d[1]) {
			return false
		}
	}
	return true
}

// weakestNeighbor picks the orthogonal neighbor whose structure has
// the smallest flood-fill size.
func weakestNeighbor(g *grid.Grid, row, col int) (int, int, bool) {
	bestSize := 1 << 30
	var bestR, bestC int
	found := false
	for _, d := range orthoDirs {
		nr, nc := row+d[0], col+d[1]
		if !g.InBounds(nr, nc) || g.At(nr, nc) == grid.Empty {
			continue
		}
		cat := g.At(nr, nc)
		s := Probe(g, nr, nc, func(c grid.Category) bool { return c == cat })
		if s.Size < bestSize {
			bestSize = s.Size
			bestR, bestC = nr, nc
			found = true
		}
	}
	return bestR, bestC, found
}
