package session

import (
	"fmt"
	"os"
)

const (
	SecretEnvVar = "SESSION_SECRET"

	// devSecret is only accepted outside production
	devSecret = "dev-session-secret"
)

type (
	MissingSecret struct {
		EnvVar string
	}
)

func (m MissingSecret) Error() string {
	return fmt.Sprintf("session: %v is required in production", m.EnvVar)
}

// SecretFromEnv reads the signing secret from varname and clears the
// variable afterwards, so child processes do not inherit it.
//
// When production is true a missing secret is an error, otherwise a fixed
// development secret is returned.
func SecretFromEnv(varname string, production bool, getfn func(string) string, setfn func(string, string) error) ([]byte, error) {
	if getfn == nil {
		getfn = os.Getenv
	}
	if setfn == nil {
		setfn = os.Setenv
	}
	val := getfn(varname)
	setfn(varname, "")
	if len(val) > 0 {
		return []byte(val), nil
	}
	if production {
		return nil, MissingSecret{EnvVar: varname}
	}
	return []byte(devSecret), nil
}
