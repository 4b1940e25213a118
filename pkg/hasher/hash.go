package hasher

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Hash returns the hex SHA-256 of s.
func Hash(s string) string {
	h := sha256.Sum256([]byte(s))
	return hex.EncodeToString(h[:])
}

func SumBytes(b []byte) string {
	h := sha256.Sum256(b)
	return hex.EncodeToString(h[:])
}

// Key derives a stable identifier from its parts. Parts are joined with a
// separator so that ("ab", "c") and ("a", "bc") differ.
func Key(parts ...string) string {
	return Hash(strings.Join(parts, "\x1f"))
}
