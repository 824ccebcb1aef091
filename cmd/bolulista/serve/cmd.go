package serve

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/andrebq/bolulista/auth"
	"github.com/andrebq/bolulista/internal/cmdflags"
	"github.com/andrebq/bolulista/internal/httpserver"
	"github.com/andrebq/bolulista/internal/logutil"
	"github.com/andrebq/bolulista/internal/webapp"
	"github.com/andrebq/bolulista/lista"
	"github.com/andrebq/bolulista/password"
	"github.com/andrebq/bolulista/session"
	"github.com/andrebq/bolulista/store"
	"github.com/urfave/cli/v2"
)

type (
	options struct {
		bind             string
		db               string
		production       bool
		secretEnvVar     string
		loginMaxFailures int
		loginLockout     time.Duration
	}
)

func Cmd() *cli.Command {
	opts := options{bind: "localhost:7011"}
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the bolulista http api",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "bind",
				Usage:       "Address to bind the http api",
				EnvVars:     []string{"BOLULISTA_BIND"},
				Value:       opts.bind,
				Destination: &opts.bind,
			},
			cmdflags.Database(&opts.db),
			cmdflags.Production(&opts.production),
			cmdflags.SecretEnvVar(&opts.secretEnvVar),
			cmdflags.LoginMaxFailures(&opts.loginMaxFailures),
			cmdflags.LoginLockout(&opts.loginLockout),
		},
		Action: func(ctx *cli.Context) error {
			handler, cleanup, err := newHandler(ctx.Context, opts, os.Getenv, os.Setenv)
			if err != nil {
				return err
			}
			defer cleanup()
			return httpserver.Serve(ctx.Context, opts.bind, handler)
		},
	}
}

func newHandler(ctx context.Context, opts options, getenv func(string) string, setenv func(string, string) error) (http.Handler, func(), error) {
	log := logutil.GetOrDefault(ctx)
	secret, err := session.SecretFromEnv(opts.secretEnvVar, opts.production, getenv, setenv)
	if err != nil {
		return nil, nil, err
	}
	if !opts.production {
		log.Warn().Msg("Running outside production mode, cookies are not marked as secure")
	}
	codec, err := session.NewCodec(secret)
	if err != nil {
		return nil, nil, err
	}
	cookies := session.NewCookies(codec, opts.production)

	provider := store.NewProvider(opts.db)
	st, err := provider.Get(ctx)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := provider.Close(); err != nil {
			log.Error().Err(err).Msg("Unable to close database")
		}
	}

	var throttle auth.Throttle
	if opts.loginMaxFailures > 0 {
		lt, err := auth.NewLoginThrottle(opts.loginMaxFailures, opts.loginLockout)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		throttle = lt
		closeStore := cleanup
		cleanup = func() {
			lt.Close()
			closeStore()
		}
	}
	log.Info().Str("db", opts.db).Bool("production", opts.production).
		Int("login.maxFailures", opts.loginMaxFailures).Msg("Services ready")

	return webapp.AsHandler(ctx, webapp.Deps{
		Health:   st,
		Auth:     auth.NewService(st, password.New(), cookies, throttle),
		Lista:    lista.NewService(st),
		Sessions: cookies,
	}), cleanup, nil
}
