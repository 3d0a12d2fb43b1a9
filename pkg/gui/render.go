package gui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/qnkhuat/blockfall/pkg/game"
	"github.com/qnkhuat/blockfall/pkg/mino"
)

// drawCell fills one board cell, which is cellW columns wide
func drawCell(s tcell.Screen, x, y, cellW int, bg tcell.Color) {
	style := tcell.StyleDefault.Background(bg)
	for i := 0; i < cellW; i++ {
		s.SetContent(x+i, y, ' ', nil, style)
	}
}

// BoardSize returns the number of columns and rows Render draws.
func BoardSize(g *game.Game, cellW int) (int, int) {
	return g.Board.W * cellW, g.Board.H
}

// Render draws the board with its top left corner at (x, y): locked cells,
// then the ghost, then the active piece, then the pause or game over
// overlay. The piece that failed to spawn stays visible under the game over
// overlay.
func Render(s tcell.Screen, g *game.Game, t Theme, x, y, cellW int) {
	b := g.Board

	for by := 0; by < b.H; by++ {
		for bx := 0; bx < b.W; bx++ {
			drawCell(s, x+bx*cellW, y+by, cellW, t.BlockColor(b.M[by][bx]))
		}
	}

	ghost := blend(t.Background, t.Ghost, GhostAlpha)
	for _, p := range g.Ghost().Blocks() {
		if b.InBounds(p.X, p.Y) {
			drawCell(s, x+p.X*cellW, y+p.Y, cellW, ghost)
		}
	}

	active := t.BlockColor(g.P.Shape.Block())
	for _, p := range g.P.Blocks() {
		if b.InBounds(p.X, p.Y) {
			drawCell(s, x+p.X*cellW, y+p.Y, cellW, active)
		}
	}

	if banner := g.Banner(); banner != "" {
		drawOverlay(s, b, t, x, y, cellW, banner)
	}
}

// drawOverlay darkens everything drawn over the board and centers the
// banner on top of it.
func drawOverlay(s tcell.Screen, b *mino.Board, t Theme, x, y, cellW int, banner string) {
	w := b.W * cellW

	for row := y; row < y+b.H; row++ {
		for col := x; col < x+w; col++ {
			r, comb, style, _ := s.GetContent(col, row)
			fg, bg, attr := style.Decompose()

			style = tcell.StyleDefault.
				Foreground(blend(fg, t.Overlay, OverlayAlpha)).
				Background(blend(bg, t.Overlay, OverlayAlpha)).
				Attributes(attr)
			s.SetContent(col, row, r, comb, style)
		}
	}

	row := y + b.H/2
	col := x + (w-len([]rune(banner)))/2
	if col < x {
		col = x
	}

	for _, r := range []rune(banner) {
		if col >= x+w {
			break
		}

		_, _, style, _ := s.GetContent(col, row)
		_, bg, _ := style.Decompose()
		s.SetContent(col, row, r, nil, tcell.StyleDefault.Foreground(t.Text).Background(bg).Bold(true))
		col++
	}
}
