package generate

import (
	"fmt"
	"math/rand"

	"tacmapgen/internal/grid"
)

// Placement budget per category. Density targets are best-effort: when
// the budget runs out the shortfall lands in the report.
const maxAttempts = 5000

// Water is confined to the mid band and capped harder than its
// density slider allows.
const (
	waterMaxFraction       = 10 // percent of total cells
	waterMinTemplateCells  = 8
	waterMaxStructureCount = 2
)

// Request is one explicit placement: a template at an anchor, fed
// through the shared mirror/validate/commit pipeline. Structured
// patterns and manual pre-seeds use it so bespoke geometry never
// bypasses invariant enforcement.
type Request struct {
	Category grid.Category
	Template Template
	Anchor   [2]int
}

// Config is the immutable input to one generation run.
type Config struct {
	Rows, Cols int

	WallDensityPct  int
	WaterDensityPct int
	GrassDensityPct int

	MirrorVertical   bool
	MirrorHorizontal bool
	MirrorDiagonal   bool

	// Patterns enables the structured wall pre-seed phase.
	Patterns bool
	// Requests are applied before any density loop runs.
	Requests []Request

	Seed int64
	// Rand overrides the seeded source; every sample draws from it so
	// identical seeds reproduce identical grids.
	Rand *rand.Rand
	// Catalog overrides DefaultCatalog.
	Catalog *Catalog
}

type engine struct {
	cfg     Config
	g       *grid.Grid
	rng     *rand.Rand
	catalog *Catalog
	planner *ZonePlanner
	report  *Report
}

// Generate runs one full generation pass: zone planning, the fixed
// Wall-Grass-Water placement order with the grass merger in between,
// then the symmetry enforcer, the repair pass, and the final scan.
// It always returns a grid once the config validates; everything that
// goes wrong mid-run is a soft outcome inside the report.
func Generate(cfg Config) (*grid.Grid, *Report, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, nil, err
	}
	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(cfg.Seed))
	}
	catalog := cfg.Catalog
	if catalog == nil {
		catalog = DefaultCatalog()
	}

	e := &engine{
		cfg:     cfg,
		g:       grid.New(cfg.Rows, cfg.Cols),
		rng:     rng,
		catalog: catalog,
		planner: PlanZones(cfg.Rows, cfg.Cols, rng),
		report:  &Report{Stats: make(map[grid.Category]CategoryStats)},
	}

	for _, req := range cfg.Requests {
		e.place(req)
	}
	if cfg.Patterns {
		for _, req := range buildPatternRequests(cfg.Rows, cfg.Cols, rng) {
			e.place(req)
		}
	}

	total := cfg.Rows * cfg.Cols
	e.fillCategory(grid.Wall, total*cfg.WallDensityPct/100)
	e.fillCategory(grid.Grass, total*cfg.GrassDensityPct/100)
	e.report.MergedCells = MergeGrassStructures(e.g)
	waterTarget := total * cfg.WaterDensityPct / 100
	if lim := total * waterMaxFraction / 100; waterTarget > lim {
		waterTarget = lim
	}
	e.fillCategory(grid.Water, waterTarget)

	e.report.SymmetryFixes = EnforceSymmetry(e.g,
		cfg.MirrorVertical, cfg.MirrorHorizontal, cfg.MirrorDiagonal)
	e.report.RepairedCells = FinalRepairPass(e.g)
	e.report.finalize(e.g, e.planner)
	return e.g, e.report, nil
}

func validateConfig(cfg Config) error {
	if cfg.Rows <= 0 || cfg.Cols <= 0 {
		return fmt.Errorf("grid dimensions must be positive, got %dx%d", cfg.Rows, cfg.Cols)
	}
	densities := map[string]int{
		"wall":  cfg.WallDensityPct,
		"water": cfg.WaterDensityPct,
		"grass": cfg.GrassDensityPct,
	}
	for _, name := range []string{"wall", "water", "grass"} {
		if d := densities[name]; d < 0 || d > 100 {
			return fmt.Errorf("%s density %d outside [0,100]", name, d)
		}
	}
	catalog := cfg.Catalog
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	for _, cat := range []grid.Category{grid.Wall, grid.Grass, grid.Water} {
		if densities[cat.String()] > 0 && len(catalog.ForCategory(cat)) == 0 {
			return fmt.Errorf("no templates for requested category %s", cat)
		}
	}
	return nil
}

// fillCategory runs the density loop for one category under the
// attempt budget.
func (e *engine) fillCategory(cat grid.Category, target int) {
	placed := e.g.Count(cat) // pre-seeded tiles count toward the target
	pool := e.catalog.ForCategory(cat)
	minCells := 0
	if cat == grid.Water {
		minCells = waterMinTemplateCells
	}

	mirrors := 1
	for _, on := range []bool{e.cfg.MirrorVertical, e.cfg.MirrorHorizontal, e.cfg.MirrorDiagonal} {
		if on {
			mirrors *= 2
		}
	}

	for attempts := 0; placed < target && attempts < maxAttempts; attempts++ {
		t, ok := sampleTemplate(e.rng, pool, minCells)
		if !ok {
			break
		}
		// Densities are ceilings: skip shapes that would overshoot the
		// target even before validation.
		if placed+t.Count()*mirrors > target {
			continue
		}
		anchor, ok := e.sampleAnchor(cat, t)
		if !ok {
			break
		}
		zone := e.planner.ZoneAt(anchor[0], anchor[1])
		if e.planner.Coverage(zone, e.g) >= zone.Target {
			continue
		}
		if n, ok := e.place(Request{Category: cat, Template: t, Anchor: anchor}); ok {
			placed += n
			if cat == grid.Water && len(Components(e.g, grid.Water)) >= waterMaxStructureCount {
				break
			}
		}
	}
	e.report.Stats[cat] = CategoryStats{Placed: placed, Target: target}
}

// sampleAnchor picks a uniform in-bounds anchor. Water anchors keep
// the whole footprint inside the mid band.
func (e *engine) sampleAnchor(cat grid.Category, t Template) ([2]int, bool) {
	maxCol := e.cfg.Cols - t.Width()
	if maxCol < 0 {
		return [2]int{}, false
	}
	if cat == grid.Water {
		hi := midBandBottom - t.Height() + 1
		if hi > e.cfg.Rows-t.Height() {
			hi = e.cfg.Rows - t.Height()
		}
		if hi < midBandTop {
			return [2]int{}, false
		}
		return [2]int{randBetween(e.rng, midBandTop, hi), e.rng.Intn(maxCol + 1)}, true
	}
	maxRow := e.cfg.Rows - t.Height()
	if maxRow < 0 {
		return [2]int{}, false
	}
	return [2]int{e.rng.Intn(maxRow + 1), e.rng.Intn(maxCol + 1)}, true
}

// place runs one request through the full pipeline: project the
// mirrored anchors, validate every one against the current grid,
// commit atomically, then verify the whole grid and roll back if the
// commit introduced severe geometry or an over-cap structure. Returns
// the tiles written.
func (e *engine) place(req Request) (int, bool) {
	t := req.Template
	anchors := ProjectAnchors(e.cfg.Rows, e.cfg.Cols, t.Height(), t.Width(),
		req.Anchor[0], req.Anchor[1],
		e.cfg.MirrorVertical, e.cfg.MirrorHorizontal, e.cfg.MirrorDiagonal)
	if len(anchors) == 0 {
		return 0, false
	}
	for _, a := range anchors {
		if !isValid(e.g, t, a[0], a[1], req.Category) {
			return 0, false
		}
	}

	// Commit. Mirrored footprints may overlap near the axes; the
	// written set is deduplicated so rollback clears exactly once.
	seen := make(map[[2]int]bool)
	var written [][2]int
	for _, a := range anchors {
		for r := 0; r < t.Height(); r++ {
			for c := 0; c < t.Width(); c++ {
				if !t.Cells[r][c] {
					continue
				}
				cell := [2]int{a[0] + r, a[1] + c}
				if seen[cell] {
					continue
				}
				seen[cell] = true
				written = append(written, cell)
				e.g.Set(cell[0], cell[1], req.Category)
			}
		}
	}

	if hasSevere(ScanGrid(e.g)) || e.overCap(req.Category, written) {
		for _, cell := range written {
			e.g.Set(cell[0], cell[1], grid.Empty)
		}
		return 0, false
	}

	e.report.Placements = append(e.report.Placements, PlacementRecord{
		Category: req.Category,
		Anchor:   req.Anchor,
		Tiles:    len(written),
	})
	return len(written), true
}

// overCap probes every structure holding a just-written cell against
// its category cap. Per-anchor validation runs each mirror against the
// pre-commit grid, so two mirrored footprints landing adjacent across
// an axis can fuse into a structure no single-anchor check saw.
func (e *engine) overCap(cat grid.Category, written [][2]int) bool {
	lim, ok := categoryCaps[cat]
	if !ok {
		return false
	}
	visited := make([]bool, e.g.Rows*e.g.Cols)
	for _, cell := range written {
		if visited[cell[0]*e.g.Cols+cell[1]] {
			continue
		}
		s := fillFrom(e.g, cell[0], cell[1], func(c grid.Category) bool { return c == cat }, visited)
		if s.Size > lim.maxSize || s.Length > lim.maxLength || s.Thickness > lim.maxThickness {
			return true
		}
	}
	return false
}
