package generate

import "tacmapgen/internal/grid"

// structureCap bounds a same-category structure after a commit.
type structureCap struct {
	maxSize, maxLength, maxThickness int
}

var categoryCaps = map[grid.Category]structureCap{
	grid.Wall:  {20, 8, 3},
	grid.Grass: {25, 10, 4},
	grid.Water: {15, 8, 3},
}

// Mid-band rows, tracked separately from the backside for coverage
// balance. Both halves must stay at or below half filled.
const (
	midBandTop    = 11
	midBandBottom = 21
	halfCoverage  = 0.50
)

// sectionCoverageMax caps the filled fraction of any 3x3 coarse
// section a placement anchors in.
const sectionCoverageMax = 0.60

// isValid runs the nine placement checks for one template at one
// anchor. All checks run against a hypothetical grid with the template
// committed; a false return means the caller must resample, never
// partially apply.
func isValid(g *grid.Grid, t Template, row, col int, cat grid.Category) bool {
	// 1. Footprint in bounds.
	if row < 0 || col < 0 || row+t.Height() > g.Rows || col+t.Width() > g.Cols {
		return false
	}

	// 2. No overlap: every on cell must currently be Empty.
	for r := 0; r < t.Height(); r++ {
		for c := 0; c < t.Width(); c++ {
			if t.Cells[r][c] && g.At(row+r, col+c) != grid.Empty {
				return false
			}
		}
	}

	// 3. Hypothetical commit for the remaining checks.
	hyp := g.Clone()
	var placed [][2]int
	for r := 0; r < t.Height(); r++ {
		for c := 0; c < t.Width(); c++ {
			if t.Cells[r][c] {
				hyp.Set(row+r, col+c, cat)
				placed = append(placed, [2]int{row + r, col + c})
			}
		}
	}

	// 4. Trapped-space guard around every new cell.
	for _, p := range placed {
		if !emptyNeighborsSurvive(hyp, p[0], p[1]) {
			return false
		}
	}

	// 5. No cross-category contact.
	for _, p := range placed {
		for _, d := range append(orthoDirs[:], diagDirs[:]...) {
			n := hyp.At(p[0]+d[0], p[1]+d[1])
			if n != grid.Empty && n != cat {
				return false
			}
		}
	}

	// 6. Combined structure stays under the category cap.
	lim := categoryCaps[cat]
	visited := make([]bool, hyp.Rows*hyp.Cols)
	for _, p := range placed {
		if visited[p[0]*hyp.Cols+p[1]] {
			continue
		}
		s := fillFrom(hyp, p[0], p[1], func(c grid.Category) bool { return c == cat }, visited)
		if s.Size > lim.maxSize || s.Length > lim.maxLength || s.Thickness > lim.maxThickness {
			return false
		}
	}

	// 7. Half-map balance: mid band and backside each at most half full.
	if !halvesBalanced(hyp) {
		return false
	}

	// 8. Internal-corner guard, walls only: empty cells bordering a
	// concave template cell must keep breathing room.
	if cat == grid.Wall {
		for r := 0; r < t.Height(); r++ {
			for c := 0; c < t.Width(); c++ {
				if !t.Cells[r][c] || !concaveAt(t, r, c) {
					continue
				}
				for _, d := range orthoDirs {
					nr, nc := row+r+d[0], col+c+d[1]
					if hyp.InBounds(nr, nc) && hyp.At(nr, nc) == grid.Empty &&
						countEmptyOrtho(hyp, nr, nc) < 2 {
						return false
					}
				}
			}
		}
	}

	// 9. Macro-section balance around the anchor.
	if sectionCoverage(hyp, row, col) > sectionCoverageMax {
		return false
	}

	return true
}

// emptyNeighborsSurvive checks every Empty cell 8-adjacent to (row, col):
// each must keep at least 2 empty orthogonal neighbors and must not be
// flanked on opposite sides by filled cells.
func emptyNeighborsSurvive(g *grid.Grid, row, col int) bool {
	for _, d := range append(orthoDirs[:], diagDirs[:]...) {
		nr, nc := row+d[0], col+d[1]
		if !g.InBounds(nr, nc) || g.At(nr, nc) != grid.Empty {
			continue
		}
		if countEmptyOrtho(g, nr, nc) < 2 {
			return false
		}
		if flankedOpposite(g, nr, nc) {
			return false
		}
	}
	return true
}

// countEmptyOrtho counts open orthogonal neighbors; the map border
// counts as open.
func countEmptyOrtho(g *grid.Grid, row, col int) int {
	n := 0
	for _, d := range orthoDirs {
		if !g.Filled(row+d[0], col+d[1]) {
			n++
		}
	}
	return n
}

// concaveAt reports whether the on cell (r, c) has an off orthogonal
// neighbor inside the template bounds.
func concaveAt(t Template, r, c int) bool {
	for _, d := range orthoDirs {
		nr, nc := r+d[0], c+d[1]
		if nr < 0 || nr >= t.Height() || nc < 0 || nc >= t.Width() {
			continue
		}
		if !t.Cells[nr][nc] {
			return true
		}
	}
	return false
}

// halvesBalanced checks the mid-band and backside coverage ceilings.
// Grids too short to contain the mid band skip the check.
func halvesBalanced(g *grid.Grid) bool {
	if g.Rows <= midBandTop {
		return true
	}
	bottom := midBandBottom
	if bottom > g.Rows-1 {
		bottom = g.Rows - 1
	}
	band := grid.Rect{Top: midBandTop, Left: 0, Bottom: bottom, Right: g.Cols - 1}
	bandFilled := g.CountIn(band)
	if float64(bandFilled) > halfCoverage*float64(band.Area()) {
		return false
	}
	backArea := g.Rows*g.Cols - band.Area()
	if backArea == 0 {
		return true
	}
	backFilled := 0
	for _, c := range g.Cells {
		if c != grid.Empty {
			backFilled++
		}
	}
	backFilled -= bandFilled
	return float64(backFilled) <= halfCoverage*float64(backArea)
}

// sectionRect returns the 3x3 coarse section containing (row, col).
func sectionRect(rows, cols, row, col int) grid.Rect {
	sr := row * 3 / rows
	sc := col * 3 / cols
	top := sr * rows / 3
	bottom := (sr+1)*rows/3 - 1
	if sr == 2 {
		bottom = rows - 1
	}
	left := sc * cols / 3
	right := (sc+1)*cols/3 - 1
	if sc == 2 {
		right = cols - 1
	}
	return grid.Rect{Top: top, Left: left, Bottom: bottom, Right: right}
}

// sectionCoverage returns the filled fraction of the section holding
// (row, col).
func sectionCoverage(g *grid.Grid, row, col int) float64 {
	sec := sectionRect(g.Rows, g.Cols, row, col)
	return float64(g.CountIn(sec)) / float64(sec.Area())
}
