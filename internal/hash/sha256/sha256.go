// Package sha256 provides content digests for duplicate-page detection.
package sha256

import (
	"crypto/sha256"
	"encoding/hex"
)

// Digest returns the hex SHA-256 digest of data. Pages whose normalized
// text digests collide are treated as the same document.
func Digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// DigestString is Digest over a string, avoiding a copy at call sites that
// already hold text.
func DigestString(text string) string {
	return Digest([]byte(text))
}
