package secret

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"github.com/urfave/cli/v2"
)

func Cmd() *cli.Command {
	return &cli.Command{
		Name:  "secret",
		Usage: "Helpers to manage the session secret",
		Subcommands: []*cli.Command{
			generateCmd(),
		},
	}
}

func generateCmd() *cli.Command {
	size := 32
	return &cli.Command{
		Name:  "generate",
		Usage: "Print a random secret, suitable for the SESSION_SECRET variable",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:        "size",
				Usage:       "Number of random bytes (before encoding)",
				Value:       size,
				Destination: &size,
			},
		},
		Action: func(ctx *cli.Context) error {
			if size < 16 {
				return fmt.Errorf("secret: size must be at least 16 bytes, got %v", size)
			}
			buf := make([]byte, size)
			if _, err := rand.Read(buf); err != nil {
				return fmt.Errorf("secret: unable to read random bytes, cause %w", err)
			}
			_, err := fmt.Fprintln(ctx.App.Writer, base64.StdEncoding.EncodeToString(buf))
			return err
		},
	}
}
