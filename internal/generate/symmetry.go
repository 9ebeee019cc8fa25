package generate

import "tacmapgen/internal/grid"

// ProjectAnchors expands one template anchor into the full mirrored
// anchor set for the active flags: the original, the vertical and
// horizontal reflections, the point reflection about the grid center
// for the diagonal flag, and the combined reflection when both axis
// flags are set. The result is deduplicated in insertion order and
// filtered to anchors whose full footprint stays in bounds; a mirror
// whose footprint falls outside the grid is simply omitted.
func ProjectAnchors(rows, cols, tHeight, tWidth, row, col int, mirrorV, mirrorH, mirrorD bool) [][2]int {
	candidates := [][2]int{{row, col}}
	if mirrorV {
		candidates = append(candidates, [2]int{row, cols - col - tWidth})
	}
	if mirrorH {
		candidates = append(candidates, [2]int{rows - row - tHeight, col})
	}
	if mirrorV && mirrorH {
		candidates = append(candidates, [2]int{rows - row - tHeight, cols - col - tWidth})
	}
	if mirrorD {
		centerR := float64(rows-1) / 2
		centerC := float64(cols-1) / 2
		mr := roundToInt(2*centerR - float64(row) - float64(tHeight) + 1)
		mc := roundToInt(2*centerC - float64(col) - float64(tWidth) + 1)
		candidates = append(candidates, [2]int{mr, mc})
	}

	var out [][2]int
	for _, a := range candidates {
		if a[0] < 0 || a[1] < 0 || a[0]+tHeight > rows || a[1]+tWidth > cols {
			continue
		}
		dup := false
		for _, b := range out {
			if a == b {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, a)
		}
	}
	return out
}

// EnforceSymmetry sweeps the canonical half of the grid once per active
// flag and blanks both members of any pair that disagrees. Returns the
// number of pairs corrected. Each flag is applied over the full grid
// regardless of earlier corrections.
func EnforceSymmetry(g *grid.Grid, mirrorV, mirrorH, mirrorD bool) int {
	corrected := 0
	fix := func(r1, c1, r2, c2 int) {
		if g.At(r1, c1) == g.At(r2, c2) {
			return
		}
		g.Set(r1, c1, grid.Empty)
		g.Set(r2, c2, grid.Empty)
		corrected++
	}

	if mirrorV {
		for row := 0; row < g.Rows; row++ {
			for col := 0; col < g.Cols/2; col++ {
				fix(row, col, row, g.Cols-1-col)
			}
		}
	}
	if mirrorH {
		for row := 0; row < g.Rows/2; row++ {
			for col := 0; col < g.Cols; col++ {
				fix(row, col, g.Rows-1-row, col)
			}
		}
	}
	if mirrorD {
		total := g.Rows * g.Cols
		for idx := 0; idx < total/2; idx++ {
			row, col := idx/g.Cols, idx%g.Cols
			fix(row, col, g.Rows-1-row, g.Cols-1-col)
		}
	}
	return corrected
}

func roundToInt(f float64) int {
	if f >= 0 {
		return int(f + 0.5)
	}
	return int(f - 0.5)
}
