package generate

import (
	"math/rand"

	"tacmapgen/internal/grid"
)

// Structured wall patterns pre-seed tactically interesting geometry
// before the density loop takes over. Each pattern is expressed as
// plain placement requests so it runs through the same mirror,
// validation, and rollback pipeline as random placement; a pattern
// that does not fit is simply skipped.

// buildPatternRequests assembles the pre-seed set: a corridor, two
// fortification corners, a chokepoint pair, and a lane wall near the
// left edge that the mirror flags double up for free.
func buildPatternRequests(rows, cols int, rng *rand.Rand) []Request {
	var reqs []Request
	reqs = append(reqs, corridorRequests(rows, cols, rng)...)
	reqs = append(reqs, fortificationRequests(rows, cols, rng)...)
	reqs = append(reqs, chokepointRequests(rows, cols, rng)...)
	reqs = append(reqs, laneRequests(rows, cols, rng)...)
	return reqs
}

// corridorRequests lays two parallel horizontal wall runs separated by
// an open lane.
func corridorRequests(rows, cols int, rng *rand.Rand) []Request {
	length := randBetween(rng, 4, 6)
	gap := randBetween(rng, 2, 3)
	if rows < gap+4 || cols < length+2 {
		return nil
	}
	run := wallRun(length, true)
	row := 1 + rng.Intn(rows-gap-3)
	col := 1 + rng.Intn(cols-length-1)
	return []Request{
		{Category: grid.Wall, Template: run, Anchor: [2]int{row, col}},
		{Category: grid.Wall, Template: run, Anchor: [2]int{row + gap + 1, col}},
	}
}

// fortificationRequests drops two L-shaped corner pieces, the shape
// infantry holds ground behind.
func fortificationRequests(rows, cols int, rng *rand.Rand) []Request {
	if rows < 4 || cols < 4 {
		return nil
	}
	corners := []Template{
		NewTemplate(1, "##", "#."),
		NewTemplate(1, "#.", "##"),
		NewTemplate(1, ".#", "##"),
	}
	var reqs []Request
	for i := 0; i < 2; i++ {
		t := corners[rng.Intn(len(corners))]
		reqs = append(reqs, Request{
			Category: grid.Wall,
			Template: t,
			Anchor:   [2]int{rng.Intn(rows - 1), rng.Intn(cols - 1)},
		})
	}
	return reqs
}

// chokepointRequests places two short vertical walls with a two-cell
// passage between them.
func chokepointRequests(rows, cols int, rng *rand.Rand) []Request {
	height := randBetween(rng, 2, 3)
	if rows < height+2 || cols < 6 {
		return nil
	}
	post := wallRun(height, false)
	row := 1 + rng.Intn(rows-height-1)
	col := 1 + rng.Intn(cols-5)
	return []Request{
		{Category: grid.Wall, Template: post, Anchor: [2]int{row, col}},
		{Category: grid.Wall, Template: post, Anchor: [2]int{row, col + 3}},
	}
}

// laneRequests places one vertical lane wall near the left edge. With
// a vertical mirror active the projector produces the opposite lane.
func laneRequests(rows, cols int, rng *rand.Rand) []Request {
	height := randBetween(rng, 3, 4)
	if rows < height+2 || cols < 4 {
		return nil
	}
	return []Request{{
		Category: grid.Wall,
		Template: wallRun(height, false),
		Anchor:   [2]int{1 + rng.Intn(rows-height-1), 1 + rng.Intn(2)},
	}}
}

// wallRun builds a straight 1-wide run of the given length.
func wallRun(length int, horizontal bool) Template {
	if horizontal {
		row := make([]byte, length)
		for i := range row {
			row[i] = '#'
		}
		return NewTemplate(1, string(row))
	}
	rows := make([]string, length)
	for i := range rows {
		rows[i] = "#"
	}
	return NewTemplate(1, rows...)
}
