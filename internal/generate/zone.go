package generate

import (
	"math/rand"

	"tacmapgen/internal/grid"
)

// ZoneKind tags the density character of a planning region.
type ZoneKind uint8

const (
	ZoneNormal ZoneKind = iota
	ZoneOpen
	ZoneTight
)

// String returns a short lower-case name for the zone kind.
func (k ZoneKind) String() string {
	switch k {
	case ZoneOpen:
		return "open"
	case ZoneTight:
		return "tight"
	}
	return "normal"
}

// Zone is one planning region with its own coverage target. The Normal
// zone is implicit: it owns every cell not claimed by an explicit zone
// and has a zero Bounds.
type Zone struct {
	Kind   ZoneKind
	Bounds grid.Rect
	Target float64 // coverage fraction the placement loop stops at
	MinGap int     // spacing hint for structured patterns
}

// ZonePlanner carves the explicit zones once per run and answers
// point-to-zone and coverage queries afterwards.
type ZonePlanner struct {
	rows, cols int
	explicit   []*Zone // lookup order matters: first match wins
	normal     *Zone
}

// PlanZones carves 3 open and 2 tight zones at random offsets. Zones
// may overlap; lookups resolve overlap by declaration order.
func PlanZones(rows, cols int, rng *rand.Rand) *ZonePlanner {
	p := &ZonePlanner{rows: rows, cols: cols}
	for i := 0; i < 3; i++ {
		w := randBetween(rng, 5, 8)
		h := randBetween(rng, 7, 10)
		p.explicit = append(p.explicit, &Zone{
			Kind:   ZoneOpen,
			Bounds: randRect(rng, rows, cols, h, w),
			Target: 0.15 + rng.Float64()*0.10,
			MinGap: 4,
		})
	}
	for i := 0; i < 2; i++ {
		w := randBetween(rng, 4, 6)
		h := randBetween(rng, 5, 8)
		p.explicit = append(p.explicit, &Zone{
			Kind:   ZoneTight,
			Bounds: randRect(rng, rows, cols, h, w),
			Target: 0.55 + rng.Float64()*0.15,
			MinGap: 2,
		})
	}
	p.normal = &Zone{
		Kind:   ZoneNormal,
		Target: 0.35 + rng.Float64()*0.10,
		MinGap: 3,
	}
	return p
}

// ZoneAt returns the zone owning (row, col): the first explicit zone
// containing the point, otherwise the implicit Normal zone.
func (p *ZonePlanner) ZoneAt(row, col int) *Zone {
	for _, z := range p.explicit {
		if z.Bounds.Contains(row, col) {
			return z
		}
	}
	return p.normal
}

// Coverage returns the filled fraction of z on g. For the Normal zone
// only cells unclaimed by any explicit zone are counted.
func (p *ZonePlanner) Coverage(z *Zone, g *grid.Grid) float64 {
	if z.Kind != ZoneNormal {
		if z.Bounds.Area() == 0 {
			return 0
		}
		return float64(g.CountIn(z.Bounds)) / float64(z.Bounds.Area())
	}
	filled, total := 0, 0
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			if p.claimed(row, col) {
				continue
			}
			total++
			if g.Filled(row, col) {
				filled++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(filled) / float64(total)
}

// Zones returns every zone, explicit ones first, the Normal zone last.
func (p *ZonePlanner) Zones() []*Zone {
	return append(append([]*Zone{}, p.explicit...), p.normal)
}

func (p *ZonePlanner) claimed(row, col int) bool {
	for _, z := range p.explicit {
		if z.Bounds.Contains(row, col) {
			return true
		}
	}
	return false
}

// randBetween returns a uniform value in [lo, hi].
func randBetween(rng *rand.Rand, lo, hi int) int {
	return lo + rng.Intn(hi-lo+1)
}

// randRect places an h x w rectangle at a uniform in-bounds offset,
// clamping the size on grids smaller than the rectangle.
func randRect(rng *rand.Rand, rows, cols, h, w int) grid.Rect {
	if h > rows {
		h = rows
	}
	if w > cols {
		w = cols
	}
	top := rng.Intn(rows - h + 1)
	left := rng.Intn(cols - w + 1)
	return grid.Rect{Top: top, Left: left, Bottom: top + h - 1, Right: left + w - 1}
}
