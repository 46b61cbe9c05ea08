// Package cryptox derives and checks password verifiers for stored accounts.
package cryptox

import (
	"crypto/sha256"
	"crypto/subtle"

	"github.com/dmitrijs2005/climatetracker/internal/common"
	"golang.org/x/crypto/argon2"
)

// SaltSize is the length of per-account random salts.
const SaltSize = 32

// DeriveKey stretches password with argon2id using salt.
func DeriveKey(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, 32)
}

// MakeVerifier returns the value persisted for an account: the SHA-256 of the
// argon2id-derived key. The derived key itself is wiped.
func MakeVerifier(password []byte, salt []byte) []byte {
	key := DeriveKey(password, salt)
	defer common.WipeByteArray(key)
	hash := sha256.Sum256(key)
	return hash[:]
}

// NewSalt returns a fresh random salt.
func NewSalt() []byte {
	return common.GenerateRandByteArray(SaltSize)
}

// CheckPassword reports whether password matches verifier under salt.
// The comparison is constant time.
func CheckPassword(password, salt, verifier []byte) bool {
	candidate := MakeVerifier(password, salt)
	return subtle.ConstantTimeCompare(verifier, candidate) == 1
}
