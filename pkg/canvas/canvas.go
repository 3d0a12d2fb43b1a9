// Package canvas runs the game in a window drawn with ebiten.
package canvas

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/qnkhuat/blockfall/pkg/event"
	"github.com/qnkhuat/blockfall/pkg/game"
	"github.com/qnkhuat/blockfall/pkg/mino"
	"github.com/rs/zerolog/log"
)

const (
	scoreBarHeight = 24

	// ebitenutil's debug font
	glyphWidth  = 6
	glyphHeight = 16

	bannerScale = 3
)

var (
	background = color.NRGBA{0x33, 0x33, 0x33, 0xff}
	ghost      = color.NRGBA{0xff, 0xff, 0xff, 0x33}
	overlay    = color.NRGBA{0x00, 0x00, 0x00, 0x88}
	garbage    = color.NRGBA{0x99, 0x99, 0x99, 0xff}

	blockColors = [mino.ShapeCount]color.NRGBA{
		mino.ShapeSquare: {0xff, 0xff, 0x00, 0xff},
		mino.ShapeT:      {0xff, 0x00, 0xff, 0xff},
		mino.ShapeLine:   {0x00, 0xff, 0xff, 0xff},
		mino.ShapeL:      {0xff, 0x88, 0x00, 0xff},
		mino.ShapeJL:     {0x00, 0x00, 0xff, 0xff},
		mino.ShapeS:      {0xff, 0x00, 0x00, 0xff},
		mino.ShapeZ:      {0x00, 0xff, 0x00, 0xff},
	}
)

var keybindings = []struct {
	k ebiten.Key
	a event.GameAction
}{
	{ebiten.KeyArrowLeft, event.ActionMoveLeft},
	{ebiten.KeyArrowRight, event.ActionMoveRight},
	{ebiten.KeyArrowDown, event.ActionSoftDrop},
	{ebiten.KeyArrowUp, event.ActionRotateCW},
	{ebiten.KeyZ, event.ActionRotateCCW},
	{ebiten.KeySpace, event.ActionHardDrop},
	{ebiten.KeyP, event.ActionTogglePause},
}

// Canvas implements ebiten.Game. ebiten calls Update at the configured
// tick rate, so one Update is one simulation frame.
type Canvas struct {
	Game  *game.Game
	Scale int // Pixels per cell

	banner *ebiten.Image
	text   string
}

func New(g *game.Game, scale int) *Canvas {
	return &Canvas{Game: g, Scale: scale}
}

// Size returns the window size in pixels.
func (c *Canvas) Size() (int, int) {
	return c.Game.Board.W * c.Scale, c.Game.Board.H*c.Scale + scoreBarHeight
}

func (c *Canvas) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		log.Info().Msg("quit")
		return ebiten.Termination
	}

	for _, bind := range keybindings {
		if inpututil.IsKeyJustPressed(bind.k) {
			c.Game.ProcessAction(bind.a)
		}
	}

	c.Game.Tick()
	return nil
}

func (c *Canvas) Draw(screen *ebiten.Image) {
	g := c.Game
	w, _ := c.Size()
	h := g.Board.H * c.Scale

	screen.Fill(background)

	for y := 0; y < g.Board.H; y++ {
		for x := 0; x < g.Board.W; x++ {
			if b := g.Board.M[y][x]; b != mino.BlockNone {
				c.drawCell(screen, x, y, blockColor(b))
			}
		}
	}

	for _, p := range g.Ghost().Blocks() {
		c.drawCell(screen, p.X, p.Y, ghost)
	}
	for _, p := range g.P.Blocks() {
		c.drawCell(screen, p.X, p.Y, blockColors[g.P.Shape])
	}

	if banner := g.Banner(); banner != "" {
		vector.DrawFilledRect(screen, 0, 0, float32(w), float32(h), overlay, false)
		c.drawBanner(screen, banner, w, h)
	}

	ebitenutil.DebugPrintAt(screen, g.ScoreText(), 4, h+4)
}

func (c *Canvas) Layout(outsideWidth, outsideHeight int) (int, int) {
	return c.Size()
}

func (c *Canvas) drawCell(screen *ebiten.Image, x, y int, clr color.Color) {
	s := float32(c.Scale)
	vector.DrawFilledRect(screen, float32(x)*s, float32(y)*s, s, s, clr, false)
}

// drawBanner draws text centered on the board, scaled up from the debug
// font.
func (c *Canvas) drawBanner(screen *ebiten.Image, text string, w, h int) {
	if c.banner == nil || c.text != text {
		c.banner = ebiten.NewImage(len(text)*glyphWidth, glyphHeight)
		ebitenutil.DebugPrint(c.banner, text)
		c.text = text
	}

	bw, bh := c.banner.Bounds().Dx()*bannerScale, c.banner.Bounds().Dy()*bannerScale

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(bannerScale, bannerScale)
	op.GeoM.Translate(float64(w-bw)/2, float64(h-bh)/2)
	screen.DrawImage(c.banner, op)
}

func blockColor(b mino.Block) color.NRGBA {
	if i := b.ColorIndex(); i >= 0 {
		return blockColors[i]
	}

	return garbage
}
