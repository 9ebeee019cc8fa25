package generate

import "tacmapgen/internal/grid"

// orthoDirs are the 4-connected neighbor offsets, in scan order.
var orthoDirs = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// diagDirs are the diagonal neighbor offsets.
var diagDirs = [4][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}

// Structure describes one maximal 4-connected run of same-category
// cells. Length and Thickness are the long and short bounding-box
// dimensions.
type Structure struct {
	Category  grid.Category
	Cells     [][2]int
	Size      int
	Length    int
	Thickness int
}

// Probe flood-fills the 4-connected component containing (row, col)
// over cells satisfying pred. The start cell must satisfy pred itself,
// otherwise an empty Structure is returned.
func Probe(g *grid.Grid, row, col int, pred func(grid.Category) bool) Structure {
	if !g.InBounds(row, col) || !pred(g.At(row, col)) {
		return Structure{}
	}
	visited := make([]bool, g.Rows*g.Cols)
	return fillFrom(g, row, col, pred, visited)
}

// Components returns every maximal 4-connected component of cat, in
// row-major discovery order so results are deterministic.
func Components(g *grid.Grid, cat grid.Category) []Structure {
	visited := make([]bool, g.Rows*g.Cols)
	var out []Structure
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			if visited[row*g.Cols+col] || g.At(row, col) != cat {
				continue
			}
			out = append(out, fillFrom(g, row, col, func(c grid.Category) bool { return c == cat }, visited))
		}
	}
	return out
}

// fillFrom runs one BFS flood fill and computes the structure metrics.
// visited is shared across calls so repeated fills skip known cells.
func fillFrom(g *grid.Grid, row, col int, pred func(grid.Category) bool, visited []bool) Structure {
	s := Structure{Category: g.At(row, col)}
	minR, maxR, minC, maxC := row, row, col, col

	queue := [][2]int{{row, col}}
	visited[row*g.Cols+col] = true
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		s.Cells = append(s.Cells, cur)
		if cur[0] < minR {
			minR = cur[0]
		}
		if cur[0] > maxR {
			maxR = cur[0]
		}
		if cur[1] < minC {
			minC = cur[1]
		}
		if cur[1] > maxC {
			maxC = cur[1]
		}
		for _, d := range orthoDirs {
			nr, nc := cur[0]+d[0], cur[1]+d[1]
			if !g.InBounds(nr, nc) || visited[nr*g.Cols+nc] || !pred(g.At(nr, nc)) {
				continue
			}
			visited[nr*g.Cols+nc] = true
			queue = append(queue, [2]int{nr, nc})
		}
	}

	s.Size = len(s.Cells)
	h := maxR - minR + 1
	w := maxC - minC + 1
	if h >= w {
		s.Length, s.Thickness = h, w
	} else {
		s.Length, s.Thickness = w, h
	}
	return s
}
