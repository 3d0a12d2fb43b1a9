package main

import (
	"fmt"
	"io"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/qnkhuat/blockfall/pkg"
	"github.com/qnkhuat/blockfall/pkg/canvas"
	"github.com/qnkhuat/blockfall/pkg/config"
	"github.com/rs/zerolog/log"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run returns the process exit code. Failures go to stderr as well as the
// log.
func run(args []string, stdout io.Writer, stderr io.Writer) int {
	cfg, err := config.Load("blockfall-canvas", config.DefaultEnv, args)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	closer, err := pkg.InitLog(cfg.Log, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(stderr, "failed to open log: %s\n", err)
		return 1
	}
	defer closer.Close()

	fail := func(err error, msg string) int {
		log.Error().Err(err).Msg(msg)
		fmt.Fprintf(stderr, "%s: %s\n", msg, err)
		return 1
	}

	session, err := pkg.NewSession(cfg, nil)
	if err != nil {
		return fail(err, "failed to start game")
	}
	defer session.Close()

	c := canvas.New(session.Game, cfg.Scale)

	ebiten.SetWindowSize(c.Size())
	ebiten.SetWindowTitle("blockfall")
	ebiten.SetTPS(cfg.FPS)

	if err := ebiten.RunGame(c); err != nil {
		return fail(err, "failed to run game")
	}

	fmt.Fprintln(stdout, session.Game.ScoreText())
	return 0
}
