package grid

// Category classifies one terrain cell.
type Category uint8

const (
	Empty Category = iota
	Wall
	Water
	Grass
	// OutOfGame marks cells excluded from play by manual editing tools.
	// The generator never emits it; it exists so hand-edited grids can
	// still round-trip through validation.
	OutOfGame

	NumCategories = 5
)

// String returns a short lower-case name for the category.
func (c Category) String() string {
	switch c {
	case Empty:
		return "empty"
	case Wall:
		return "wall"
	case Water:
		return "water"
	case Grass:
		return "grass"
	case OutOfGame:
		return "out-of-game"
	}
	return "unknown"
}

// Grid is a rows x cols terrain field, row-major.
type Grid struct {
	Rows, Cols int
	Cells      []Category
}

// New creates an all-Empty grid.
func New(rows, cols int) *Grid {
	return &Grid{Rows: rows, Cols: cols, Cells: make([]Category, rows*cols)}
}

// InBounds reports whether (row, col) is within the grid.
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.Rows && col >= 0 && col < g.Cols
}

// At returns the category at (row, col). Out-of-bounds reads return Empty,
// so the map border behaves as open ground.
func (g *Grid) At(row, col int) Category {
	if !g.InBounds(row, col) {
		return Empty
	}
	return g.Cells[row*g.Cols+col]
}

// Set writes the category at (row, col). Out-of-bounds writes are ignored.
func (g *Grid) Set(row, col int, c Category) {
	if !g.InBounds(row, col) {
		return
	}
	g.Cells[row*g.Cols+col] = c
}

// Filled reports whether (row, col) holds any non-Empty category.
// Out-of-bounds cells count as open.
func (g *Grid) Filled(row, col int) bool {
	return g.At(row, col) != Empty
}

// Count returns the number of cells holding c.
func (g *Grid) Count(c Category) int {
	n := 0
	for _, cell := range g.Cells {
		if cell == c {
			n++
		}
	}
	return n
}

// CountIn returns the number of non-Empty cells inside r.
func (g *Grid) CountIn(r Rect) int {
	n := 0
	for row := r.Top; row <= r.Bottom; row++ {
		for col := r.Left; col <= r.Right; col++ {
			if g.Filled(row, col) {
				n++
			}
		}
	}
	return n
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	cells := make([]Category, len(g.Cells))
	copy(cells, g.Cells)
	return &Grid{Rows: g.Rows, Cols: g.Cols, Cells: cells}
}

// Rect is an inclusive axis-aligned cell rectangle.
type Rect struct {
	Top, Left, Bottom, Right int
}

// Height returns the number of rows the rectangle spans.
func (r Rect) Height() int { return r.Bottom - r.Top + 1 }

// Width returns the number of columns the rectangle spans.
func (r Rect) Width() int { return r.Right - r.Left + 1 }

// Area returns the number of cells inside the rectangle.
func (r Rect) Area() int { return r.Height() * r.Width() }

// Contains reports whether (row, col) lies inside the rectangle.
func (r Rect) Contains(row, col int) bool {
	return row >= r.Top && row <= r.Bottom && col >= r.Left && col <= r.Right
}
