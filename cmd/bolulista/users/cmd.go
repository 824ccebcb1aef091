package users

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/andrebq/bolulista/auth"
	"github.com/andrebq/bolulista/internal/cmdflags"
	"github.com/andrebq/bolulista/password"
	"github.com/andrebq/bolulista/store"
	"github.com/urfave/cli/v2"
)

func Cmd() *cli.Command {
	var provider *store.Provider
	var dbFile string
	return &cli.Command{
		Name:  "users",
		Usage: "Manage user accounts directly on the database",
		Flags: []cli.Flag{
			cmdflags.Database(&dbFile),
		},
		Before: func(ctx *cli.Context) error {
			provider = store.NewProvider(dbFile)
			return nil
		},
		After: func(ctx *cli.Context) error {
			if provider == nil {
				return nil
			}
			return provider.Close()
		},
		Subcommands: []*cli.Command{
			registerCmd(&provider),
			countCmd(&provider),
		},
	}
}

func registerCmd(provider **store.Provider) *cli.Command {
	var email string
	return &cli.Command{
		Name:  "register",
		Usage: "Register a new user (password is read from stdin)",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "email",
				Aliases:     []string{"e"},
				Usage:       "Email of the user to register",
				Destination: &email,
				Required:    true,
			},
		},
		Action: func(ctx *cli.Context) error {
			plain, err := readPassword(ctx.App.Reader)
			if err != nil {
				return err
			}
			st, err := (*provider).Get(ctx.Context)
			if err != nil {
				return err
			}
			svc := auth.NewService(st, password.New(), nil, nil)
			user, err := svc.CreateAccount(ctx.Context, auth.Credentials{Email: email, Password: plain})
			if err != nil {
				return err
			}
			enc := json.NewEncoder(ctx.App.Writer)
			enc.SetIndent("", "  ")
			return enc.Encode(user)
		},
	}
}

func countCmd(provider **store.Provider) *cli.Command {
	return &cli.Command{
		Name:  "count",
		Usage: "Print how many users are registered",
		Action: func(ctx *cli.Context) error {
			st, err := (*provider).Get(ctx.Context)
			if err != nil {
				return err
			}
			n, err := st.CountUsers(ctx.Context)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(ctx.App.Writer, n)
			return err
		},
	}
}

func readPassword(in io.Reader) (string, error) {
	sc := bufio.NewScanner(in)
	if !sc.Scan() {
		if sc.Err() != nil {
			return "", sc.Err()
		}
		return "", errors.New("missing password from stdin")
	}
	plain := strings.TrimRight(sc.Text(), "\r\n")
	if len(plain) == 0 {
		return "", errors.New("missing password from stdin")
	}
	return plain, nil
}
