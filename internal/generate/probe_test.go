package generate

import (
	"testing"

	"tacmapgen/internal/grid"
)

func TestProbeMetrics(t *testing.T) {
	g := grid.New(6, 6)
	// L-shaped wall: 3 tall, foot 2 wide.
	for _, c := range [][2]int{{1, 1}, {2, 1}, {3, 1}, {3, 2}} {
		g.Set(c[0], c[1], grid.Wall)
	}
	s := Probe(g, 1, 1, func(c grid.Category) bool { return c == grid.Wall })
	if s.Size != 4 {
		t.Errorf("Size=%d, want 4", s.Size)
	}
	if s.Length != 3 || s.Thickness != 2 {
		t.Errorf("Length=%d Thickness=%d, want 3/2", s.Length, s.Thickness)
	}
}

func TestProbeStartMustMatch(t *testing.T) {
	g := grid.New(4, 4)
	g.Set(1, 1, grid.Wall)
	s := Probe(g, 0, 0, func(c grid.Category) bool { return c == grid.Wall })
	if s.Size != 0 {
		t.Errorf("probe from non-matching start should be empty, got size %d", s.Size)
	}
}

func TestProbeDiagonalNotConnected(t *testing.T) {
	g := grid.New(4, 4)
	g.Set(1, 1, grid.Wall)
	g.Set(2, 2, grid.Wall)
	s := Probe(g, 1, 1, func(c grid.Category) bool { return c == grid.Wall })
	if s.Size != 1 {
		t.Errorf("diagonal cells must not connect, got size %d", s.Size)
	}
}

func TestComponents(t *testing.T) {
	g := grid.New(6, 6)
	g.Set(0, 0, grid.Grass)
	g.Set(0, 1, grid.Grass)
	g.Set(4, 4, grid.Grass)
	g.Set(2, 2, grid.Wall)

	comps := Components(g, grid.Grass)
	if len(comps) != 2 {
		t.Fatalf("expected 2 grass components, got %d", len(comps))
	}
	// Row-major discovery order.
	if comps[0].Size != 2 || comps[1].Size != 1 {
		t.Errorf("component sizes %d/%d, want 2/1", comps[0].Size, comps[1].Size)
	}
	if len(Components(g, grid.Water)) != 0 {
		t.Error("no water components expected")
	}
}
