package session

import (
	"net/http"
	"strings"
	"time"
)

const (
	CookieName = "bolulista_session"
	TTL        = 7 * 24 * time.Hour
)

type (
	// Cookies moves session tokens in and out of the http cookie jar.
	Cookies struct {
		codec  *Codec
		secure bool
	}

	AuthenticationRequired struct{}
)

// ErrAuthenticationRequired is returned whenever an operation needs a
// session and the request has none (or has an invalid one).
var ErrAuthenticationRequired = AuthenticationRequired{}

func (AuthenticationRequired) Error() string       { return "session: authentication required" }
func (AuthenticationRequired) UserMessage() string { return "must sign in" }
func (AuthenticationRequired) HTTPStatus() int     { return http.StatusUnauthorized }

// NewCookies returns the cookie adapter, secure should be true
// whenever the service is exposed over https (ie.: production).
func NewCookies(codec *Codec, secure bool) *Cookies {
	return &Cookies{codec: codec, secure: secure}
}

func (c *Cookies) Issue(w http.ResponseWriter, userID string) error {
	token, err := c.codec.Encode(userID, TTL)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(TTL / time.Second),
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (c *Cookies) Read(r *http.Request) (Identity, bool) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return Identity{}, false
	}
	token := strings.TrimSpace(cookie.Value)
	if len(token) == 0 {
		return Identity{}, false
	}
	return c.codec.Decode(token)
}

func (c *Cookies) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0).UTC(),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (c *Cookies) RequireIdentity(r *http.Request) (Identity, error) {
	id, ok := c.Read(r)
	if !ok {
		return Identity{}, ErrAuthenticationRequired
	}
	return id, nil
}
