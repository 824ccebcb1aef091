package testutil

import (
	"context"
	"os"
	"path/filepath"

	"github.com/andrebq/bolulista/password"
	"github.com/andrebq/bolulista/session"
	"github.com/andrebq/bolulista/store"
)

type (
	TestLog interface {
		Fatal(...interface{})
		Log(...interface{})
	}
)

// FastHasher returns a password hasher with a small work factor, never use
// it outside tests.
func FastHasher() *password.Hasher {
	return password.NewWithParams(password.Params{N: 1024, R: 8, P: 1}, nil)
}

// Cookies returns a session adapter signed with a fixed test secret
func Cookies(t TestLog) *session.Cookies {
	codec, err := session.NewCodec([]byte("test-session-secret"))
	if err != nil {
		t.Fatal(err)
	}
	return session.NewCookies(codec, false)
}

func AcquireStore(ctx context.Context, t TestLog) (*store.Store, func()) {
	dir, err := os.MkdirTemp("", "bolulista-tests")
	if err != nil {
		t.Fatal(err)
	}
	s, err := store.Open(ctx, filepath.Join(dir, "bolulista.db"))
	if err != nil {
		t.Fatal(err)
	}
	return s, func() {
		err := s.Close()
		if err != nil {
			t.Log("unable to close store", err)
		}
		err = os.RemoveAll(dir)
		if err != nil {
			t.Log("unable to cleanup temp dir", dir)
		}
	}
}
