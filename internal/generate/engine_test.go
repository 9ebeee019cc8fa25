package generate

import (
	"testing"

	"tacmapgen/internal/grid"
)

func baseConfig(seed int64) Config {
	return Config{
		Rows:            33,
		Cols:            21,
		WallDensityPct:  10,
		WaterDensityPct: 5,
		GrassDensityPct: 10,
		Seed:            seed,
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a, _, err := Generate(baseConfig(42))
	if err != nil {
		t.Fatal(err)
	}
	b, _, err := Generate(baseConfig(42))
	if err != nil {
		t.Fatal(err)
	}
	for i := range a.Cells {
		if a.Cells[i] != b.Cells[i] {
			t.Fatalf("same seed diverged at cell %d: %s vs %s", i, a.Cells[i], b.Cells[i])
		}
	}
}

func TestGenerateZeroDensities(t *testing.T) {
	cfg := baseConfig(7)
	cfg.WallDensityPct = 0
	cfg.WaterDensityPct = 0
	cfg.GrassDensityPct = 0

	g, report, err := Generate(cfg)
	if err != nil {
		t.Fatal(err)
	}
	for _, cat := range []grid.Category{grid.Wall, grid.Water, grid.Grass} {
		if n := g.Count(cat); n != 0 {
			t.Errorf("%s count %d, want 0", cat, n)
		}
	}
	if report.Counts[grid.Empty] != 33*21 {
		t.Errorf("empty count %d, want %d", report.Counts[grid.Empty], 33*21)
	}
	if len(report.Structures) != 0 || len(report.Violations) != 0 {
		t.Errorf("blank run produced %d structures, %d violations",
			len(report.Structures), len(report.Violations))
	}
}

func TestGenerateHonorsCapsAndBands(t *testing.T) {
	total := 33 * 21
	for seed := int64(1); seed <= 8; seed++ {
		g, report, err := Generate(baseConfig(seed))
		if err != nil {
			t.Fatal(err)
		}

		if report.ViolationCounts[SeverityCritical] != 0 || report.ViolationCounts[SeverityHigh] != 0 {
			t.Errorf("seed %d: severe violations in final grid: %v", seed, report.Violations)
		}
		if hasSevere(ValidateGrid(g)) {
			t.Errorf("seed %d: rescan found severe violations", seed)
		}

		for _, cat := range []grid.Category{grid.Wall, grid.Water, grid.Grass} {
			st := report.Stats[cat]
			if st.Placed > st.Target {
				t.Errorf("seed %d: %s placed %d past target %d", seed, cat, st.Placed, st.Target)
			}
		}

		if n := g.Count(grid.Water); n > total*5/100 {
			t.Errorf("seed %d: water count %d past density ceiling", seed, n)
		}
		water := Components(g, grid.Water)
		if len(water) > 2 {
			t.Errorf("seed %d: %d water structures, want at most 2", seed, len(water))
		}
		for _, s := range water {
			if s.Size < 8 || s.Size > 15 || s.Length > 8 || s.Thickness > 3 {
				t.Errorf("seed %d: water structure out of caps: size=%d len=%d thick=%d",
					seed, s.Size, s.Length, s.Thickness)
			}
			for _, c := range s.Cells {
				if c[0] < 11 || c[0] > 21 {
					t.Errorf("seed %d: water cell at row %d outside the mid band", seed, c[0])
				}
			}
		}

		for _, s := range Components(g, grid.Wall) {
			if s.Size > 20 || s.Length > 8 || s.Thickness > 3 {
				t.Errorf("seed %d: wall structure out of caps: size=%d len=%d thick=%d",
					seed, s.Size, s.Length, s.Thickness)
			}
		}
		for _, s := range Components(g, grid.Grass) {
			if s.Size > 35 || s.Length > 12 {
				t.Errorf("seed %d: grass structure past merge ceiling: size=%d len=%d",
					seed, s.Size, s.Length)
			}
		}
	}
}

func TestGenerateMirroredHonorsCaps(t *testing.T) {
	flags := []struct {
		name    string
		v, h, d bool
	}{
		{"vertical", true, false, false},
		{"horizontal", false, true, false},
		{"diagonal", false, false, true},
		{"both axes", true, true, false},
	}
	for _, f := range flags {
		for seed := int64(1); seed <= 20; seed++ {
			cfg := baseConfig(seed)
			cfg.MirrorVertical = f.v
			cfg.MirrorHorizontal = f.h
			cfg.MirrorDiagonal = f.d

			g, _, err := Generate(cfg)
			if err != nil {
				t.Fatal(err)
			}
			for _, s := range Components(g, grid.Wall) {
				if s.Size > 20 || s.Length > 8 || s.Thickness > 3 {
					t.Errorf("%s seed %d: wall structure out of caps: size=%d len=%d thick=%d",
						f.name, seed, s.Size, s.Length, s.Thickness)
				}
			}
			for _, s := range Components(g, grid.Water) {
				if s.Size > 15 || s.Length > 8 || s.Thickness > 3 {
					t.Errorf("%s seed %d: water structure out of caps: size=%d len=%d thick=%d",
						f.name, seed, s.Size, s.Length, s.Thickness)
				}
			}
			for _, s := range Components(g, grid.Grass) {
				if s.Size > 35 || s.Length > 12 {
					t.Errorf("%s seed %d: grass structure past merge ceiling: size=%d len=%d",
						f.name, seed, s.Size, s.Length)
				}
			}
		}
	}
}

func TestGenerateRejectsMirrorFusedRun(t *testing.T) {
	// A 1x5 wall at (5,6) and its vertical mirror at (5,10) overlap at
	// column 10 and fuse into one 9-cell run, past the length cap. Each
	// anchor passes in isolation, so only the post-commit probe can
	// catch the fused result.
	cfg := baseConfig(5)
	cfg.WallDensityPct = 0
	cfg.WaterDensityPct = 0
	cfg.GrassDensityPct = 0
	cfg.MirrorVertical = true
	cfg.Requests = []Request{{
		Category: grid.Wall,
		Template: NewTemplate(1, "#####"),
		Anchor:   [2]int{5, 6},
	}}

	g, _, err := Generate(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if n := g.Count(grid.Wall); n != 0 {
		t.Errorf("over-cap fused run kept: %d wall tiles, want 0", n)
	}

	// One column narrower the fused run is 7 cells long and legal.
	cfg.Requests = []Request{{
		Category: grid.Wall,
		Template: NewTemplate(1, "####"),
		Anchor:   [2]int{5, 7},
	}}
	g, _, err = Generate(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if n := g.Count(grid.Wall); n != 7 {
		t.Errorf("legal fused run: %d wall tiles, want 7", n)
	}
}

func TestGenerateMirroredPlacement(t *testing.T) {
	for seed := int64(1); seed <= 4; seed++ {
		cfg := baseConfig(seed)
		cfg.GrassDensityPct = 0
		cfg.MirrorVertical = true
		cfg.Requests = []Request{{
			Category: grid.Wall,
			Template: NewTemplate(1, "#"),
			Anchor:   [2]int{5, 2},
		}}

		g, _, err := Generate(cfg)
		if err != nil {
			t.Fatal(err)
		}
		if g.At(5, 2) != grid.Wall || g.At(5, 18) != grid.Wall {
			t.Errorf("seed %d: requested wall or its mirror missing", seed)
		}
		for row := 0; row < g.Rows; row++ {
			for col := 0; col < g.Cols; col++ {
				if g.At(row, col) != g.At(row, g.Cols-1-col) {
					t.Fatalf("seed %d: asymmetry at (%d,%d)", seed, row, col)
				}
			}
		}
	}
}

func TestGenerateWaterCeilingBeatsDensity(t *testing.T) {
	cfg := baseConfig(9)
	cfg.WaterDensityPct = 60
	g, _, err := Generate(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if n := g.Count(grid.Water); n > 33*21*10/100 {
		t.Errorf("water count %d past the hard ceiling", n)
	}
	if n := len(Components(g, grid.Water)); n > 2 {
		t.Errorf("%d water structures, want at most 2", n)
	}
}

func TestGeneratePatterns(t *testing.T) {
	for seed := int64(1); seed <= 4; seed++ {
		cfg := baseConfig(seed)
		cfg.WallDensityPct = 0
		cfg.WaterDensityPct = 0
		cfg.GrassDensityPct = 0
		cfg.Patterns = true

		g, _, err := Generate(cfg)
		if err != nil {
			t.Fatal(err)
		}
		if g.Count(grid.Wall) == 0 {
			t.Errorf("seed %d: pattern phase placed nothing", seed)
		}
		if hasSevere(ValidateGrid(g)) {
			t.Errorf("seed %d: patterns left severe violations", seed)
		}
	}
}

func TestGenerateIgnoresImpossibleRequest(t *testing.T) {
	cfg := baseConfig(3)
	cfg.Requests = []Request{{
		Category: grid.Wall,
		Template: NewTemplate(1, "#"),
		Anchor:   [2]int{40, 0},
	}}
	if _, _, err := Generate(cfg); err != nil {
		t.Fatalf("off-grid request must be skipped, got error: %v", err)
	}
}

func TestGenerateConfigErrors(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero rows", func(c *Config) { c.Rows = 0 }},
		{"negative cols", func(c *Config) { c.Cols = -3 }},
		{"density over 100", func(c *Config) { c.WallDensityPct = 101 }},
		{"negative density", func(c *Config) { c.WaterDensityPct = -5 }},
		{"empty catalog", func(c *Config) { c.Catalog = &Catalog{} }},
	}
	for _, tc := range cases {
		cfg := baseConfig(1)
		tc.mutate(&cfg)
		if _, _, err := Generate(cfg); err == nil {
			t.Errorf("%s: no error", tc.name)
		}
	}
	if _, _, err := Generate(baseConfig(1)); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}
}
