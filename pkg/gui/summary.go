package gui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/qnkhuat/blockfall/pkg/game"
	"github.com/qnkhuat/blockfall/pkg/mino"
)

var summaryColors = map[mino.Block]*color.Color{
	mino.BlockSquare:  color.New(color.FgYellow),
	mino.BlockT:       color.New(color.FgMagenta),
	mino.BlockLine:    color.New(color.FgCyan),
	mino.BlockL:       color.New(color.FgHiRed),
	mino.BlockJL:      color.New(color.FgBlue),
	mino.BlockS:       color.New(color.FgRed),
	mino.BlockZ:       color.New(color.FgGreen),
	mino.BlockGarbage: color.New(color.FgWhite),
}

// PrintSummary writes the final board and score once the terminal has been
// released.
func PrintSummary(w io.Writer, g *game.Game) {
	border := "+" + strings.Repeat("-", g.Board.W*2) + "+"

	fmt.Fprintln(w, border)
	for y := 0; y < g.Board.H; y++ {
		fmt.Fprint(w, "|")
		for x := 0; x < g.Board.W; x++ {
			b := g.Board.M[y][x]
			if c, ok := summaryColors[b]; ok {
				c.Fprint(w, "██")
			} else {
				fmt.Fprint(w, "  ")
			}
		}
		fmt.Fprintln(w, "|")
	}
	fmt.Fprintln(w, border)

	if g.Over {
		color.New(color.FgRed, color.Bold).Fprintln(w, "GAME OVER!")
	}
	color.New(color.Bold).Fprintln(w, g.ScoreText())
	fmt.Fprintf(w, "Lines cleared: %d\n", g.LinesCleared)
}
