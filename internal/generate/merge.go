package generate

import "tacmapgen/internal/grid"

// Merged grass structures run under relaxed limits: the placement caps
// apply per commit, bridged structures may grow to these.
const (
	mergeMaxSize  = 35
	mergeMaxLong  = 12
	mergeMinShort = 2
	mergeMaxDist  = 2
)

// MergeGrassStructures bridges nearby grass structures in one pass.
// For every unordered pair within 2 Manhattan steps whose merged
// bounding box fits the relaxed limits, each Empty cell inside the box
// that touches either structure 4-connectedly is filled with grass.
// Bridged cells join the second structure for later pair checks in the
// same pass. Returns the number of cells filled.
//
// The bridge for one pair commits atomically: if filling it would
// leave a trapped or near-trapped empty cell behind, or fuse a
// component past the relaxed ceiling, the whole bridge for that pair
// is rolled back. The merger is the only pass that adds tiles after
// the placement guard, so it carries its own.
func MergeGrassStructures(g *grid.Grid) int {
	structs := Components(g, grid.Grass)
	bridged := 0

	for i := 0; i < len(structs); i++ {
		for j := i + 1; j < len(structs); j++ {
			a, b := &structs[i], &structs[j]
			if len(a.Cells) == 0 || len(b.Cells) == 0 {
				continue
			}
			if minManhattan(a.Cells, b.Cells) > mergeMaxDist {
				continue
			}
			box := boundingBox(append(append([][2]int{}, a.Cells...), b.Cells...))
			long, short := box.Height(), box.Width()
			if short > long {
				long, short = short, long
			}
			if len(a.Cells)+len(b.Cells) > mergeMaxSize || long > mergeMaxLong || short < mergeMinShort {
				continue
			}

			member := make(map[[2]int]bool, len(a.Cells)+len(b.Cells))
			for _, c := range a.Cells {
				member[c] = true
			}
			for _, c := range b.Cells {
				member[c] = true
			}

			var bridge [][2]int
			for row := box.Top; row <= box.Bottom; row++ {
				for col := box.Left; col <= box.Right; col++ {
					if g.At(row, col) == grid.Empty && touchesMember(member, row, col) {
						bridge = append(bridge, [2]int{row, col})
					}
				}
			}
			if len(bridge) == 0 {
				continue
			}

			for _, c := range bridge {
				g.Set(c[0], c[1], grid.Grass)
			}
			if bridgeLeavesTrap(g, bridge) || fusedOverCeiling(g, bridge[0]) {
				for _, c := range bridge {
					g.Set(c[0], c[1], grid.Empty)
				}
				continue
			}
			b.Cells = append(b.Cells, bridge...)
			bridged += len(bridge)
		}
	}
	return bridged
}

// fusedOverCeiling probes the component holding a freshly filled
// bridge. Pairs share members across the pass, so a later bridge can
// fuse earlier merge results into a component no single pair's
// bounding-box check bounded.
func fusedOverCeiling(g *grid.Grid, cell [2]int) bool {
	s := Probe(g, cell[0], cell[1], func(c grid.Category) bool { return c == grid.Grass })
	return s.Size > mergeMaxSize || s.Length > mergeMaxLong
}

// bridgeLeavesTrap reports whether any empty cell around the freshly
// filled bridge is now trapped or near-trapped.
func bridgeLeavesTrap(g *grid.Grid, bridge [][2]int) bool {
	for _, c := range bridge {
		for _, d := range append(orthoDirs[:], diagDirs[:]...) {
			nr, nc := c[0]+d[0], c[1]+d[1]
			if !g.InBounds(nr, nc) || g.At(nr, nc) != grid.Empty {
				continue
			}
			if v, found := classifyCell(g, nr, nc); found &&
				(v.Severity == SeverityCritical || v.Severity == SeverityHigh) {
				return true
			}
		}
	}
	return false
}

func minManhattan(a, b [][2]int) int {
	best := 1 << 30
	for _, p := range a {
		for _, q := range b {
			d := abs(p[0]-q[0]) + abs(p[1]-q[1])
			if d < best {
				best = d
			}
		}
	}
	return best
}

func boundingBox(cells [][2]int) grid.Rect {
	box := grid.Rect{Top: cells[0][0], Left: cells[0][1], Bottom: cells[0][0], Right: cells[0][1]}
	for _, c := range cells[1:] {
		if c[0] < box.Top {
			box.Top = c[0]
		}
		if c[0] > box.Bottom {
			box.Bottom = c[0]
		}
		if c[1] < box.Left {
			box.Left = c[1]
		}
		if c[1] > box.Right {
			box.Right = c[1]
		}
	}
	return box
}

func touchesMember(member map[[2]int]bool, row, col int) bool {
	for _, d := range orthoDirs {
		if member[[2]int{row + d[0], col + d[1]}] {
			return true
		}
	}
	return false
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
