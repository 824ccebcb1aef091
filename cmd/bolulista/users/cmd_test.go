package users

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/andrebq/bolulista/auth"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	var out bytes.Buffer
	app := &cli.App{
		Name:     "bolulista",
		Reader:   strings.NewReader(stdin),
		Writer:   &out,
		Commands: []*cli.Command{Cmd()},
	}
	err := app.RunContext(context.Background(), append([]string{"bolulista", "users"}, args...))
	return out.String(), err
}

func TestRegister(t *testing.T) {
	db := filepath.Join(t.TempDir(), "bolulista.db")

	out, err := run(t, "secret1\n", "--db", db, "register", "--email", "Admin@X.com")
	require.NoError(t, err)
	require.Contains(t, out, `"email": "admin@x.com"`)
	require.NotContains(t, out, "secret1")

	out, err = run(t, "", "--db", db, "count")
	require.NoError(t, err)
	require.Equal(t, "1\n", out)

	_, err = run(t, "other-secret\n", "--db", db, "register", "--email", "admin@x.com")
	var taken auth.AlreadyRegistered
	require.True(t, errors.As(err, &taken), "unexpected error %v", err)
}

func TestRegisterWithoutPassword(t *testing.T) {
	db := filepath.Join(t.TempDir(), "bolulista.db")
	_, err := run(t, "", "--db", db, "register", "--email", "a@x.com")
	require.EqualError(t, err, "missing password from stdin")
}
