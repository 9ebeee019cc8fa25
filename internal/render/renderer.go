package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"tacmapgen/internal/grid"
)

// categoryGlyphs maps terrain to the emoji block drawn for it. Every
// glyph is two terminal columns wide so the grid stays square-ish.
var categoryGlyphs = map[grid.Category]string{
	grid.Empty:     "⬜",
	grid.Wall:      "⬛",
	grid.Water:     "🟦",
	grid.Grass:     "🟩",
	grid.OutOfGame: "🟥",
}

// Renderer draws a terrain grid onto a tcell screen.
type Renderer struct {
	screen tcell.Screen
}

// NewRenderer creates a Renderer for the given screen.
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{screen: screen}
}

// DrawGrid renders the whole grid with its top-left corner at screen
// cell (offX, offY). Cells outside the screen are skipped.
func (r *Renderer) DrawGrid(g *grid.Grid, offX, offY int) {
	w, h := r.screen.Size()
	style := tcell.StyleDefault.Background(tcell.ColorBlack)
	for row := 0; row < g.Rows; row++ {
		sy := offY + row
		if sy < 0 || sy >= h {
			continue
		}
		for col := 0; col < g.Cols; col++ {
			sx := offX + col*2
			if sx < 0 || sx >= w {
				continue
			}
			r.putGlyph(sx, sy, categoryGlyphs[g.At(row, col)], style)
		}
	}
}

// DrawStatus renders one status line at screen row y.
func (r *Renderer) DrawStatus(y int, text string, style tcell.Style) {
	w, _ := r.screen.Size()
	x := 0
	for _, ch := range text {
		if x >= w {
			break
		}
		r.screen.SetContent(x, y, ch, nil, style)
		x += runewidth.RuneWidth(ch)
	}
}

// putGlyph draws a single glyph (ASCII or multi-rune emoji) at screen
// position (x, y), padding the second column for double-width glyphs.
func (r *Renderer) putGlyph(x, y int, glyph string, style tcell.Style) {
	runes := []rune(glyph)
	if len(runes) == 0 {
		return
	}
	var combc []rune
	if len(runes) > 1 {
		combc = runes[1:]
	}
	r.screen.SetContent(x, y, runes[0], combc, style)
	if runewidth.StringWidth(glyph) == 2 {
		r.screen.SetContent(x+1, y, ' ', nil, style)
	}
}
