// Package cryptox holds the credential digest used for account rows.
package cryptox

import (
	"crypto/sha256"
	"encoding/hex"
)

// PasswordDigest returns the hex-encoded SHA-256 of the password.
//
// This is a plain unsalted digest, kept for behavioral parity with the
// deployed store contents. It is not suitable as a production password
// hashing scheme.
func PasswordDigest(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}
