package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/andrebq/bolulista/cmd/bolulista/secret"
	"github.com/andrebq/bolulista/cmd/bolulista/serve"
	"github.com/andrebq/bolulista/cmd/bolulista/users"
	"github.com/andrebq/bolulista/internal/cmdflags"
	"github.com/andrebq/bolulista/internal/logutil"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func main() {
	var logLevel string
	var prettyLog bool
	app := &cli.App{
		Name:  "bolulista",
		Usage: "Keep your shopping lists to yourself",
		Flags: []cli.Flag{
			cmdflags.LogLevel(&logLevel),
			cmdflags.PrettyLog(&prettyLog),
		},
		Before: func(*cli.Context) error {
			return logutil.Setup(logLevel, prettyLog)
		},
		Commands: []*cli.Command{
			serve.Cmd(),
			users.Cmd(),
			secret.Cmd(),
		},
	}
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	err := app.RunContext(ctx, os.Args)
	if err != nil {
		log.Error().Err(err).Msg("Application failed")
		os.Exit(1)
	}
}
