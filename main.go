// tacmapgen generates tactical-shooter terrain maps on a fixed grid.
// By default it prints the generated map and a report to stdout; with
// -view it opens an interactive terminal viewer.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"tacmapgen/internal/generate"
	"tacmapgen/internal/grid"
	"tacmapgen/internal/render"
)

// categoryRunes are the stdout glyphs, one per category.
var categoryRunes = map[grid.Category]rune{
	grid.Empty:     '.',
	grid.Wall:      '#',
	grid.Water:     '~',
	grid.Grass:     '"',
	grid.OutOfGame: 'x',
}

func main() {
	rows := flag.Int("rows", 33, "grid rows")
	cols := flag.Int("cols", 21, "grid columns")
	wall := flag.Int("wall", 10, "wall density percent")
	water := flag.Int("water", 5, "water density percent")
	grass := flag.Int("grass", 10, "grass density percent")
	mirrorV := flag.Bool("mirror-v", false, "mirror vertically")
	mirrorH := flag.Bool("mirror-h", false, "mirror horizontally")
	mirrorD := flag.Bool("mirror-d", false, "mirror diagonally (point symmetry)")
	patterns := flag.Bool("patterns", false, "pre-seed structured wall patterns")
	seed := flag.Int64("seed", 0, "PRNG seed (0 = time-based)")
	view := flag.Bool("view", false, "open the interactive terminal viewer")
	flag.Parse()

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	cfg := generate.Config{
		Rows:             *rows,
		Cols:             *cols,
		WallDensityPct:   *wall,
		WaterDensityPct:  *water,
		GrassDensityPct:  *grass,
		MirrorVertical:   *mirrorV,
		MirrorHorizontal: *mirrorH,
		MirrorDiagonal:   *mirrorD,
		Patterns:         *patterns,
		Seed:             *seed,
	}

	if *view {
		runViewer(cfg)
		return
	}

	g, report, err := generate.Generate(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	printGrid(g)
	fmt.Printf("\nseed %d\n%s", cfg.Seed, report)
}

func printGrid(g *grid.Grid) {
	line := make([]rune, g.Cols)
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			line[col] = categoryRunes[g.At(row, col)]
		}
		fmt.Println(string(line))
	}
}

func runViewer(cfg generate.Config) {
	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("screen init: %v", err)
	}
	defer screen.Fini()

	if err := render.NewViewer(screen, cfg).Run(); err != nil {
		screen.Fini()
		log.Fatalf("viewer: %v", err)
	}
}
