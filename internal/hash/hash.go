package hash

import (
	"crypto/sha256"
	"encoding/hex"
)

// Password returns the hex-encoded SHA-256 digest of password. The digest is
// deterministic so it can be compared against digests the original storefront
// already persisted; it is only ever checked, never reversed.
func Password(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

func Check(digest, password string) bool {
	return digest == Password(password)
}
