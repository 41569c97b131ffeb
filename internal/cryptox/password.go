// Package cryptox contains the password digest sent to the API.
package cryptox

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashPassword returns the lowercase hex SHA-256 digest of password's UTF-8
// bytes. The API stores and compares this value as password_hash, so the
// plain password never leaves the client.
func HashPassword(password []byte) string {
	sum := sha256.Sum256(password)
	return hex.EncodeToString(sum[:])
}
