// Package session keeps the identity of a user inside a signed cookie.
//
// Nothing is stored on the server: a token carries the user id and an
// expiration timestamp, signed with HMAC-SHA256 using a process wide secret.
// A token is only accepted if the signature matches and it did not expire,
// so the only ways to end a session are deleting the cookie or waiting.
package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

type (
	// Identity is what a valid session proves about the caller.
	Identity struct {
		UserID string
	}

	Codec struct {
		secret []byte
		now    func() time.Time
	}

	payload struct {
		UserID string `json:"userId"`
		// Exp is in milliseconds since unix epoch
		Exp int64 `json:"exp"`
	}
)

var (
	encoding = base64.RawURLEncoding

	errEmptySecret = errors.New("session: secret cannot be empty")
)

func NewCodec(secret []byte) (*Codec, error) {
	return NewCodecWithClock(secret, time.Now)
}

func NewCodecWithClock(secret []byte, now func() time.Time) (*Codec, error) {
	if len(secret) == 0 {
		return nil, errEmptySecret
	}
	if now == nil {
		now = time.Now
	}
	key := make([]byte, len(secret))
	copy(key, secret)
	return &Codec{secret: key, now: now}, nil
}

// IsZero returns true when the identity does not point to any user
func (i Identity) IsZero() bool {
	return len(i.UserID) == 0
}

// Encode returns a token for userID valid for ttl starting now.
func (c *Codec) Encode(userID string, ttl time.Duration) (string, error) {
	buf, err := json.Marshal(payload{
		UserID: userID,
		Exp:    c.now().Add(ttl).UnixMilli(),
	})
	if err != nil {
		return "", fmt.Errorf("session: unable to encode payload, cause %w", err)
	}
	encoded := encoding.EncodeToString(buf)
	return encoded + "." + c.sign(encoded), nil
}

// Decode validates token and returns the identity it carries.
//
// Malformed tokens, bad signatures and expired tokens are all reported
// the same way.
func (c *Codec) Decode(token string) (Identity, bool) {
	parts := strings.Split(token, ".")
	if len(parts) != 2 || len(parts[0]) == 0 || len(parts[1]) == 0 {
		return Identity{}, false
	}
	encoded, signature := parts[0], parts[1]
	if !hmac.Equal([]byte(signature), []byte(c.sign(encoded))) {
		return Identity{}, false
	}
	buf, err := encoding.DecodeString(encoded)
	if err != nil {
		return Identity{}, false
	}
	var p payload
	if err := json.Unmarshal(buf, &p); err != nil {
		return Identity{}, false
	}
	if p.Exp <= c.now().UnixMilli() || len(p.UserID) == 0 {
		return Identity{}, false
	}
	return Identity{UserID: p.UserID}, true
}

func (c *Codec) sign(encoded string) string {
	mac := hmac.New(sha256.New, c.secret)
	mac.Write([]byte(encoded))
	return encoding.EncodeToString(mac.Sum(nil))
}
