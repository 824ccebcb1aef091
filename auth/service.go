package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/andrebq/bolulista/internal/validate"
	"github.com/andrebq/bolulista/session"
	"github.com/andrebq/bolulista/store"
)

const (
	MinPasswordLength = 6

	// fallbackDecoy is a well formed verifier that matches no password,
	// used when a fresh decoy cannot be computed.
	fallbackDecoy = "8f3b2a61c4d5e6f708192a3b4c5d6e7f:" +
		"3a7c1e9f5b2d4a6c8e0f1a3b5c7d9e1f2a4c6e8f0b1d3f5a7c9e1b3d5f7a9c1e" +
		"4b6d8f0a2c4e6a8c0e2b4d6f8a0c2e4b6d8f0a2c4e6b8d0f2a4c6e8b0d2f4a6c"
)

type (
	Users interface {
		FindUserByEmail(ctx context.Context, email string) (store.User, error)
		FindUser(ctx context.Context, id string) (store.User, error)
		CreateUser(ctx context.Context, u store.User) (store.User, error)
	}

	Hasher interface {
		Hash(plain string) (string, error)
		Verify(plain, verifier string) bool
	}

	Sessions interface {
		Issue(w http.ResponseWriter, userID string) error
		Clear(w http.ResponseWriter)
		RequireIdentity(r *http.Request) (session.Identity, error)
	}

	Credentials struct {
		Email    string
		Password string
		// ClientAddr identifies where the attempt came from, it is only
		// used to throttle failed logins.
		ClientAddr string
	}

	Service struct {
		users    Users
		hasher   Hasher
		sessions Sessions
		throttle Throttle

		decoyOnce sync.Once
		decoy     string
	}
)

// NewService wires the auth service, throttle can be nil to disable login
// throttling.
func NewService(users Users, hasher Hasher, sessions Sessions, throttle Throttle) *Service {
	if throttle == nil {
		throttle = noThrottle{}
	}
	return &Service{
		users:    users,
		hasher:   hasher,
		sessions: sessions,
		throttle: throttle,
	}
}

func (c Credentials) normalize() Credentials {
	c.Email = strings.ToLower(strings.TrimSpace(c.Email))
	return c
}

func (c Credentials) throttleKey() string {
	return c.Email + "|" + c.ClientAddr
}

func (c Credentials) validate() error {
	return validate.First(
		validate.Email("email", c.Email, msgInvalidEmail),
		validate.MinLength("password", c.Password, MinPasswordLength, msgPasswordTooShort),
	)
}

// Register creates a new user and signs it in.
func (s *Service) Register(ctx context.Context, w http.ResponseWriter, cred Credentials) (store.User, error) {
	user, err := s.CreateAccount(ctx, cred)
	if err != nil {
		return store.User{}, err
	}
	if err := s.sessions.Issue(w, user.ID); err != nil {
		return store.User{}, fmt.Errorf("auth: unable to issue session, cause %w", err)
	}
	return user, nil
}

// CreateAccount creates a new user without starting a session, used by
// Register and by the command line.
func (s *Service) CreateAccount(ctx context.Context, cred Credentials) (store.User, error) {
	cred = cred.normalize()
	if err := cred.validate(); err != nil {
		return store.User{}, err
	}
	_, err := s.users.FindUserByEmail(ctx, cred.Email)
	if err == nil {
		return store.User{}, AlreadyRegistered{Email: cred.Email}
	} else if !store.IsNotFound(err) {
		return store.User{}, fmt.Errorf("auth: unable to check if %v is registered, cause %w", cred.Email, err)
	}
	verifier, err := s.hasher.Hash(cred.Password)
	if err != nil {
		return store.User{}, err
	}
	user, err := s.users.CreateUser(ctx, store.User{Email: cred.Email, PasswordHash: verifier})
	if store.IsEmailTaken(err) {
		// lost a race against a concurrent registration
		return store.User{}, AlreadyRegistered{Email: cred.Email}
	} else if err != nil {
		return store.User{}, err
	}
	return user, nil
}

// Login checks the credentials and issues a new session.
func (s *Service) Login(ctx context.Context, w http.ResponseWriter, cred Credentials) (store.User, error) {
	cred = cred.normalize()
	if err := cred.validate(); err != nil {
		return store.User{}, err
	}
	key := cred.throttleKey()
	if wait, blocked := s.throttle.Check(key); blocked {
		return store.User{}, TooManyAttempts{Wait: wait}
	}
	user, err := s.users.FindUserByEmail(ctx, cred.Email)
	if store.IsNotFound(err) {
		s.hasher.Verify(cred.Password, s.decoyVerifier())
		s.throttle.Fail(key)
		return store.User{}, ErrInvalidCredentials
	} else if err != nil {
		return store.User{}, fmt.Errorf("auth: unable to lookup user, cause %w", err)
	}
	if !s.hasher.Verify(cred.Password, user.PasswordHash) {
		s.throttle.Fail(key)
		return store.User{}, ErrInvalidCredentials
	}
	s.throttle.Reset(key)
	if err := s.sessions.Issue(w, user.ID); err != nil {
		return store.User{}, fmt.Errorf("auth: unable to issue session, cause %w", err)
	}
	return user, nil
}

// Logout always succeeds, even if there is no session.
func (s *Service) Logout(w http.ResponseWriter) {
	s.sessions.Clear(w)
}

// CurrentUser returns the user that owns the session in r
func (s *Service) CurrentUser(ctx context.Context, r *http.Request) (store.User, error) {
	id, err := s.sessions.RequireIdentity(r)
	if err != nil {
		return store.User{}, err
	}
	user, err := s.users.FindUser(ctx, id.UserID)
	if store.IsNotFound(err) {
		return store.User{}, session.ErrAuthenticationRequired
	}
	return user, err
}

// decoyVerifier is checked when the email is unknown, so both failure
// paths take roughly the same time.
func (s *Service) decoyVerifier() string {
	s.decoyOnce.Do(func() {
		s.decoy = fallbackDecoy
		var buf [16]byte
		if _, err := rand.Read(buf[:]); err != nil {
			return
		}
		verifier, err := s.hasher.Hash(hex.EncodeToString(buf[:]))
		if err != nil || len(verifier) == 0 {
			return
		}
		s.decoy = verifier
	})
	return s.decoy
}
