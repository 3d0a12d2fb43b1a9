package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/qnkhuat/blockfall/pkg"
	"github.com/qnkhuat/blockfall/pkg/config"
	"github.com/qnkhuat/blockfall/pkg/gui"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"
)

var errNotTerminal = errors.New("non-interactive terminals are not supported")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run returns the process exit code. Startup failures go to stderr as well
// as the log, since the log file is not where the player is looking.
func run(args []string, stdout *os.File, stderr io.Writer) int {
	cfg, err := config.Load("blockfall", config.DefaultEnv, args)
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

	theme, err := gui.LoadTheme(cfg.Theme, cfg.ThemeFile)
	if err != nil {
		return fail(err, fmt.Sprintf("failed to load theme %q", cfg.Theme))
	}

	if !term.IsTerminal(int(stdout.Fd())) {
		return fail(errNotTerminal, "failed to start blockfall")
	}

	app := gui.NewApp(theme, cfg.Cell, cfg.FPS)

	session, err := pkg.NewSession(cfg, app.HandleEvent)
	if err != nil {
		return fail(err, "failed to start game")
	}
	defer session.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, session.Game); err != nil {
		return fail(err, "failed to run application")
	}

	gui.PrintSummary(stdout, session.Game)
	return 0
}
