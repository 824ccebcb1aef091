package auth

import (
	"fmt"
	"net/http"
	"time"
)

const (
	msgInvalidEmail       = "invalid email"
	msgPasswordTooShort   = "password must be at least 6 characters"
	msgAlreadyRegistered  = "email already registered"
	msgInvalidCredentials = "invalid credentials"
	msgTooManyAttempts    = "too many login attempts, try again later"
)

type (
	AlreadyRegistered struct {
		Email string
	}

	InvalidCredentials struct{}

	TooManyAttempts struct {
		Wait time.Duration
	}
)

var ErrInvalidCredentials = InvalidCredentials{}

func (a AlreadyRegistered) Error() string {
	return fmt.Sprintf("auth: %v already registered", a.Email)
}
func (AlreadyRegistered) UserMessage() string { return msgAlreadyRegistered }
func (AlreadyRegistered) HTTPStatus() int     { return http.StatusConflict }

func (InvalidCredentials) Error() string       { return "auth: invalid credentials" }
func (InvalidCredentials) UserMessage() string { return msgInvalidCredentials }
func (InvalidCredentials) HTTPStatus() int     { return http.StatusUnauthorized }

func (t TooManyAttempts) Error() string {
	return fmt.Sprintf("auth: too many login attempts, retry in %v", t.Wait)
}
func (TooManyAttempts) UserMessage() string         { return msgTooManyAttempts }
func (TooManyAttempts) HTTPStatus() int             { return http.StatusTooManyRequests }
func (t TooManyAttempts) RetryAfter() time.Duration { return t.Wait }
