package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"tacmapgen/internal/generate"
	"tacmapgen/internal/grid"
)

// Viewer is an interactive terrain-map browser: it regenerates the map
// on demand and lets the user flip mirror flags live. It only consumes
// the engine's public API, the way any downstream editor would.
type Viewer struct {
	screen tcell.Screen
	cfg    generate.Config
}

// NewViewer wraps a screen and a starting configuration.
func NewViewer(screen tcell.Screen, cfg generate.Config) *Viewer {
	return &Viewer{screen: screen, cfg: cfg}
}

// Run generates and displays maps until the user quits.
//
//	r        regenerate with the next seed
//	v/h/d    toggle vertical / horizontal / diagonal mirror
//	p        toggle the structured pattern phase
//	q / Esc  quit
func (v *Viewer) Run() error {
	renderer := NewRenderer(v.screen)
	for {
		g, report, err := generate.Generate(v.cfg)
		if err != nil {
			return err
		}
		v.draw(renderer, g, report)

		switch key := v.waitKey(); key {
		case 'q', 0:
			return nil
		case 'r':
			v.cfg.Seed++
		case 'v':
			v.cfg.MirrorVertical = !v.cfg.MirrorVertical
		case 'h':
			v.cfg.MirrorHorizontal = !v.cfg.MirrorHorizontal
		case 'd':
			v.cfg.MirrorDiagonal = !v.cfg.MirrorDiagonal
		case 'p':
			v.cfg.Patterns = !v.cfg.Patterns
		}
	}
}

func (v *Viewer) draw(renderer *Renderer, g *grid.Grid, report *generate.Report) {
	v.screen.Clear()
	renderer.DrawGrid(g, 0, 0)

	status := tcell.StyleDefault.Foreground(tcell.ColorYellow)
	dim := tcell.StyleDefault.Foreground(tcell.ColorGray)
	renderer.DrawStatus(g.Rows, fmt.Sprintf(
		"seed %d  mirrors v=%v h=%v d=%v  patterns=%v",
		v.cfg.Seed, v.cfg.MirrorVertical, v.cfg.MirrorHorizontal,
		v.cfg.MirrorDiagonal, v.cfg.Patterns), status)
	renderer.DrawStatus(g.Rows+1, fmt.Sprintf(
		"wall=%d water=%d grass=%d  violations c=%d h=%d m=%d l=%d",
		report.Counts[grid.Wall], report.Counts[grid.Water], report.Counts[grid.Grass],
		report.ViolationCounts[generate.SeverityCritical],
		report.ViolationCounts[generate.SeverityHigh],
		report.ViolationCounts[generate.SeverityMedium],
		report.ViolationCounts[generate.SeverityLow]), status)
	renderer.DrawStatus(g.Rows+2,
		"r regen · v/h/d mirrors · p patterns · q quit", dim)
	v.screen.Show()
}

// waitKey blocks for the next relevant key press; returns 0 on quit
// requests (Esc, Ctrl-C) or screen teardown.
func (v *Viewer) waitKey() rune {
	for {
		ev := v.screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyEscape, tcell.KeyCtrlC:
				return 0
			case tcell.KeyRune:
				return ev.Rune()
			}
		case *tcell.EventResize:
			v.screen.Sync()
			return ' ' // unmapped: redraw with the same config
		case nil:
			return 0
		}
	}
}
