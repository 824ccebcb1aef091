package cmdflags

import (
	"time"

	"github.com/andrebq/bolulista/session"
	"github.com/urfave/cli/v2"
)

func Database(out *string) cli.Flag {
	if len(*out) == 0 {
		*out = "data/bolulista.db"
	}
	return &cli.StringFlag{
		Name:        "db",
		Aliases:     []string{"database"},
		Usage:       "Path to the sqlite database (created if missing)",
		EnvVars:     []string{"BOLULISTA_DB"},
		Destination: out,
		Value:       *out,
	}
}

func Production(out *bool) cli.Flag {
	return &cli.BoolFlag{
		Name:        "production",
		Usage:       "Require a session secret and mark cookies as secure",
		EnvVars:     []string{"BOLULISTA_PRODUCTION"},
		Destination: out,
		Value:       *out,
	}
}

func SecretEnvVar(out *string) cli.Flag {
	if len(*out) == 0 {
		*out = session.SecretEnvVar
	}
	return &cli.StringFlag{
		Name:        "secret-envvar-name",
		Usage:       "Name of the environment variable that holds the session secret. The secret itself should not be passed as an argument",
		Value:       *out,
		Destination: out,
		Hidden:      true,
	}
}

func LogLevel(out *string) cli.Flag {
	if len(*out) == 0 {
		*out = "info"
	}
	return &cli.StringFlag{
		Name:        "log-level",
		Usage:       "Minimum level of log messages (trace, debug, info, warn, error)",
		EnvVars:     []string{"BOLULISTA_LOG_LEVEL"},
		Value:       *out,
		Destination: out,
	}
}

func PrettyLog(out *bool) cli.Flag {
	return &cli.BoolFlag{
		Name:        "pretty-log",
		Usage:       "Human friendly logs instead of json",
		EnvVars:     []string{"BOLULISTA_PRETTY_LOG"},
		Value:       *out,
		Destination: out,
	}
}

func LoginMaxFailures(out *int) cli.Flag {
	if *out == 0 {
		*out = 5
	}
	return &cli.IntFlag{
		Name:        "login-max-failures",
		Usage:       "Failed logins allowed for an email before it is locked out, 0 or less disables throttling",
		Value:       *out,
		Destination: out,
	}
}

func LoginLockout(out *time.Duration) cli.Flag {
	if *out == 0 {
		*out = 15 * time.Minute
	}
	return &cli.DurationFlag{
		Name:        "login-lockout",
		Usage:       "How long failed logins are remembered",
		Value:       *out,
		Destination: out,
	}
}
