package generate

import (
	"testing"

	"tacmapgen/internal/grid"
)

func placeBlock(g *grid.Grid, cat grid.Category, top, left, bottom, right int) {
	for r := top; r <= bottom; r++ {
		for c := left; c <= right; c++ {
			g.Set(r, c, cat)
		}
	}
}

func TestMergeBridgesNearbyBlobs(t *testing.T) {
	g := grid.New(8, 10)
	placeBlock(g, grid.Grass, 2, 2, 3, 3)
	placeBlock(g, grid.Grass, 2, 5, 3, 6)

	n := MergeGrassStructures(g)
	if n != 2 {
		t.Fatalf("bridged %d cells, want 2", n)
	}
	if g.At(2, 4) != grid.Grass || g.At(3, 4) != grid.Grass {
		t.Error("channel between the blobs not filled")
	}
	comps := Components(g, grid.Grass)
	if len(comps) != 1 {
		t.Fatalf("%d components after merge, want 1", len(comps))
	}
	if comps[0].Size != 10 {
		t.Errorf("merged size %d, want 10", comps[0].Size)
	}
}

func TestMergeSkipsThinResult(t *testing.T) {
	// Two 1-row strips would merge into a 1-cell-thick band.
	g := grid.New(8, 10)
	placeBlock(g, grid.Grass, 2, 2, 2, 3)
	placeBlock(g, grid.Grass, 2, 5, 2, 6)

	if n := MergeGrassStructures(g); n != 0 {
		t.Fatalf("bridged %d cells, want 0", n)
	}
	if g.At(2, 4) != grid.Empty {
		t.Error("channel filled despite thin merged box")
	}
}

func TestMergeSkipsDistantBlobs(t *testing.T) {
	g := grid.New(8, 12)
	placeBlock(g, grid.Grass, 2, 2, 3, 3)
	placeBlock(g, grid.Grass, 2, 6, 3, 7)

	if n := MergeGrassStructures(g); n != 0 {
		t.Fatalf("bridged %d cells at distance 3, want 0", n)
	}
}

func TestMergeSkipsOversizeResult(t *testing.T) {
	// 20 + 20 cells exceed the merged size ceiling.
	g := grid.New(12, 14)
	placeBlock(g, grid.Grass, 2, 2, 6, 5)
	placeBlock(g, grid.Grass, 2, 7, 6, 10)

	if n := MergeGrassStructures(g); n != 0 {
		t.Fatalf("bridged %d cells, want 0", n)
	}
	for r := 2; r <= 6; r++ {
		if g.At(r, 6) != grid.Empty {
			t.Fatalf("channel cell (%d,6) filled despite oversize merge", r)
		}
	}
}

func TestMergeSkipsOverlongResult(t *testing.T) {
	// Two 2x6 strips two apart span 13 columns, past the long-side cap.
	g := grid.New(8, 14)
	placeBlock(g, grid.Grass, 2, 0, 3, 5)
	placeBlock(g, grid.Grass, 2, 7, 3, 12)

	if n := MergeGrassStructures(g); n != 0 {
		t.Fatalf("bridged %d cells, want 0", n)
	}
}

func TestMergeChainStaysUnderCeiling(t *testing.T) {
	// Three 2x4 strips, each two columns apart. Every pair fits the
	// merged box limits, but bridging all three would fuse a 14-column
	// component; the second bridge must roll back.
	g := grid.New(8, 16)
	placeBlock(g, grid.Grass, 2, 0, 3, 3)
	placeBlock(g, grid.Grass, 2, 5, 3, 8)
	placeBlock(g, grid.Grass, 2, 10, 3, 13)

	if n := MergeGrassStructures(g); n != 2 {
		t.Fatalf("bridged %d cells, want 2", n)
	}
	if g.At(2, 4) != grid.Grass || g.At(3, 4) != grid.Grass {
		t.Error("first bridge missing")
	}
	if g.At(2, 9) != grid.Empty || g.At(3, 9) != grid.Empty {
		t.Error("second bridge kept despite overlong fused component")
	}
	comps := Components(g, grid.Grass)
	if len(comps) != 2 {
		t.Fatalf("%d components after merging, want 2", len(comps))
	}
	for _, s := range comps {
		if s.Size > mergeMaxSize || s.Length > mergeMaxLong {
			t.Errorf("component past ceiling: size=%d len=%d", s.Size, s.Length)
		}
	}
}

func TestMergeIgnoresOtherCategories(t *testing.T) {
	g := grid.New(8, 10)
	placeBlock(g, grid.Wall, 2, 2, 3, 3)
	placeBlock(g, grid.Wall, 2, 5, 3, 6)

	if n := MergeGrassStructures(g); n != 0 {
		t.Fatalf("bridged %d wall cells, want 0", n)
	}
}

func TestBridgeLeavesTrap(t *testing.T) {
	g := grid.New(6, 6)
	// Fence (2,3) on three sides, then "bridge" the fourth.
	g.Set(1, 3, grid.Wall)
	g.Set(3, 3, grid.Wall)
	g.Set(2, 4, grid.Wall)
	g.Set(2, 2, grid.Grass)
	if !bridgeLeavesTrap(g, [][2]int{{2, 2}}) {
		t.Error("bridge sealing a gap not detected")
	}

	open := grid.New(6, 6)
	open.Set(2, 2, grid.Grass)
	if bridgeLeavesTrap(open, [][2]int{{2, 2}}) {
		t.Error("harmless bridge flagged")
	}
}
