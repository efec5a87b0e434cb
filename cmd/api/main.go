package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"
)

const version = "1.0.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &cli.Command{
		Name:    "soundwave",
		Usage:   "Music catalog API",
		Version: version,
		Commands: []*cli.Command{
			serveCommand(),
			migrateCommand(),
			configCommand(),
		},
	}

	if err := app.Run(ctx, os.Args); err != nil {
		log.Fatal("application error", "err", err)
	}
}
