package generate

import (
	"math/rand"

	"tacmapgen/internal/grid"
)

// Template is one fixed shape placed as an atomic unit. Cells marked
// true ("on") receive terrain; false cells are ignored.
type Template struct {
	Cells  [][]bool
	Weight int
	count  int
}

// NewTemplate builds a template from row strings, '#' marking on cells.
// Short rows are padded with off cells.
func NewTemplate(weight int, rows ...string) Template {
	width := 0
	for _, r := range rows {
		if len(r) > width {
			width = len(r)
		}
	}
	cells := make([][]bool, len(rows))
	count := 0
	for i, r := range rows {
		cells[i] = make([]bool, width)
		for j, ch := range r {
			if ch == '#' {
				cells[i][j] = true
				count++
			}
		}
	}
	return Template{Cells: cells, Weight: weight, count: count}
}

// Height returns the number of template rows.
func (t Template) Height() int { return len(t.Cells) }

// Width returns the number of template columns.
func (t Template) Width() int {
	if len(t.Cells) == 0 {
		return 0
	}
	return len(t.Cells[0])
}

// Count returns the number of on cells.
func (t Template) Count() int { return t.count }

// Catalog groups the placeable templates per terrain category.
type Catalog struct {
	Wall  []Template
	Grass []Template
	Water []Template
}

// ForCategory returns the template set for cat, or nil for categories
// the generator never places.
func (c *Catalog) ForCategory(cat grid.Category) []Template {
	switch cat {
	case grid.Wall:
		return c.Wall
	case grid.Grass:
		return c.Grass
	case grid.Water:
		return c.Water
	}
	return nil
}

// DefaultCatalog returns the stock shape set. Wall shapes stay thin
// (cover lines and corners), grass shapes are blobby, water shapes are
// large enough to satisfy the 8-cell pool minimum.
func DefaultCatalog() *Catalog {
	return &Catalog{
		Wall: []Template{
			NewTemplate(3, "##"),
			NewTemplate(3, "###"),
			NewTemplate(2, "####"),
			NewTemplate(3, "#", "#"),
			NewTemplate(3, "#", "#", "#"),
			NewTemplate(2, "#", "#", "#", "#"),
			NewTemplate(2, "##", "#."),
			NewTemplate(2, "#.", "##"),
			NewTemplate(1, "##", "##"),
		},
		Grass: []Template{
			NewTemplate(3, "##", "##"),
			NewTemplate(2, "###", "###"),
			NewTemplate(2, ".#.", "###", ".#."),
			NewTemplate(2, "###", "##."),
			NewTemplate(2, "##", "##", "#."),
			NewTemplate(1, "##"),
		},
		Water: []Template{
			NewTemplate(3, "####", "####"),
			NewTemplate(2, "###", "###", "###"),
			NewTemplate(2, "#####", "#####"),
			NewTemplate(1, ".##.", "####", ".##."),
			// Below the pool minimum; kept for manual edits, the
			// placement loop filters it out.
			NewTemplate(1, "##", "##"),
		},
	}
}

// sampleTemplate picks a template with probability proportional to its
// weight, considering only templates with at least minCells on cells.
// ok is false when no template qualifies.
func sampleTemplate(rng *rand.Rand, pool []Template, minCells int) (Template, bool) {
	total := 0
	for _, t := range pool {
		if t.Count() >= minCells {
			total += t.Weight
		}
	}
	if total <= 0 {
		return Template{}, false
	}
	pick := rng.Intn(total)
	for _, t := range pool {
		if t.Count() < minCells {
			continue
		}
		pick -= t.Weight
		if pick < 0 {
			return t, true
		}
	}
	return Template{}, false
}
