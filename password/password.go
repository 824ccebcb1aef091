// Package password turns plain text passwords into verifiers and checks
// candidates against them.
//
// A verifier is `saltHex:keyHex` where key is derived with scrypt, so it is
// compatible with verifiers produced by the previous node based deployment.
package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/scrypt"
)

const (
	SaltLength = 16
	KeyLength  = 64
)

type (
	// Params controls the cost of the scrypt derivation.
	Params struct {
		N int
		R int
		P int
	}

	Hasher struct {
		params Params
		random io.Reader
	}
)

// DefaultParams mirrors the scrypt defaults used by node's crypto.scryptSync
var DefaultParams = Params{N: 16384, R: 8, P: 1}

func New() *Hasher {
	return NewWithParams(DefaultParams, rand.Reader)
}

// NewWithParams is mostly useful for tests, where a low N keeps things fast.
func NewWithParams(p Params, random io.Reader) *Hasher {
	if random == nil {
		random = rand.Reader
	}
	return &Hasher{params: p, random: random}
}

func (h *Hasher) Hash(plain string) (string, error) {
	salt := make([]byte, SaltLength)
	if _, err := io.ReadFull(h.random, salt); err != nil {
		return "", fmt.Errorf("password: unable to generate salt, cause %w", err)
	}
	key, err := h.derive(plain, salt)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%v:%v", hex.EncodeToString(salt), hex.EncodeToString(key)), nil
}

// Verify reports whether plain matches the given verifier. Malformed
// verifiers never match.
func (h *Hasher) Verify(plain string, verifier string) bool {
	saltHex, keyHex, found := strings.Cut(verifier, ":")
	if !found || len(saltHex) == 0 || len(keyHex) == 0 {
		return false
	}
	salt, err := hex.DecodeString(saltHex)
	if err != nil {
		return false
	}
	stored, err := hex.DecodeString(keyHex)
	if err != nil || len(stored) != KeyLength {
		return false
	}
	key, err := h.derive(plain, salt)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare(stored, key) == 1
}

func (h *Hasher) derive(plain string, salt []byte) ([]byte, error) {
	key, err := scrypt.Key([]byte(plain), salt, h.params.N, h.params.R, h.params.P, KeyLength)
	if err != nil {
		return nil, fmt.Errorf("password: unable to derive key, cause %w", err)
	}
	return key, nil
}
