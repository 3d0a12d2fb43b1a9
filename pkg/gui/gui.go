// Package gui runs the game in a terminal.
package gui

import (
	"context"
	"sync/atomic"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/qnkhuat/blockfall/pkg"
	"github.com/qnkhuat/blockfall/pkg/event"
	"github.com/qnkhuat/blockfall/pkg/game"
	"github.com/rivo/tview"
	"github.com/rs/zerolog/log"
)

const helpText = "←→ move  ↓ drop  ↑ z rotate  space slam  p pause  q quit"

// App is the terminal front end. The simulation is only touched from the
// tview event goroutine: key presses arrive there directly and frame ticks
// are queued onto it.
type App struct {
	*tview.Application

	Theme Theme
	Cell  int
	FPS   int

	game  *game.Game
	board *tview.Box
	score *tview.TextView
	help  *tview.TextView
	over  atomic.Bool
}

func NewApp(t Theme, cell int, fps int) *App {
	a := &App{
		Application: tview.NewApplication(),
		Theme:       t,
		Cell:        cell,
		FPS:         fps,
	}

	a.board = tview.NewBox().
		SetBorder(true).
		SetBorderColor(t.Border).
		SetTitle(" blockfall ").
		SetTitleColor(t.Text)
	a.board.SetBackgroundColor(t.Background)
	a.board.SetDrawFunc(a.drawBoard)

	a.score = tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetTextColor(t.Score)
	a.help = tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetTextColor(t.Border).
		SetText(helpText)

	a.SetInputCapture(a.handleKeypress)

	return a
}

// HandleEvent receives simulation events. Pass it as the game listener.
func (a *App) HandleEvent(e interface{}) {
	switch e.(type) {
	case event.LockEvent:
		a.updateScore()
	case event.GameOverEvent:
		a.over.Store(true)
		a.updateScore()
	}
}

// updateScore refreshes the score line. Events raised while the game is
// still being built arrive before Run and are covered by its first refresh.
func (a *App) updateScore() {
	if a.game == nil {
		return
	}

	a.score.SetText(a.game.ScoreText())
}

// Run shows g until the player quits.
func (a *App) Run(ctx context.Context, g *game.Game) error {
	a.game = g
	a.updateScore()
	if g.Over {
		a.over.Store(true)
	}

	w, h := BoardSize(g, a.Cell)
	w, h = w+2, h+2

	column := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(nil, 0, 1, false).
		AddItem(a.board, h, 0, true).
		AddItem(a.score, 1, 0, false).
		AddItem(a.help, 1, 0, false).
		AddItem(nil, 0, 1, false)
	root := tview.NewFlex().
		AddItem(nil, 0, 1, false).
		AddItem(column, max(w, utf8.RuneCountInString(helpText)), 0, true).
		AddItem(nil, 0, 1, false)
	a.SetRoot(root, true)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		<-ctx.Done()
		a.Stop()
	}()

	clock := pkg.NewClock(a.FPS)
	go clock.Run(ctx, func() bool {
		if a.over.Load() {
			// Leave the final frame on screen.
			log.Debug().Int("frames", clock.Frames).Msg("frame loop stopped")
			return false
		}

		a.QueueUpdateDraw(func() {
			a.game.Tick()
		})
		return true
	})

	return a.Application.Run()
}

func (a *App) handleKeypress(ev *tcell.EventKey) *tcell.EventKey {
	if IsQuit(ev) {
		a.Stop()
		return nil
	}

	action := ActionFor(ev)
	if action == event.ActionUnknown || a.game == nil {
		return ev
	}

	a.game.ProcessAction(action)
	return nil
}

func (a *App) drawBoard(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	if a.game == nil {
		return x + 1, y + 1, width - 2, height - 2
	}

	w, _ := BoardSize(a.game, a.Cell)
	Render(screen, a.game, a.Theme, x+1+(width-2-w)/2, y+1, a.Cell)

	return x + 1, y + 1, width - 2, height - 2
}
