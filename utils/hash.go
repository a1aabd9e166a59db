// Package utils holds the small encoding and hashing helpers shared by the
// share codecs.
package utils

import (
	"encoding/hex"

	"golang.org/x/crypto/sha3"
)

// Fingerprint returns the hex SHA3-256 digest of the given parts.
// Each part is length-prefixed so that ("ab", "c") and ("a", "bc") differ.
func Fingerprint(parts ...[]byte) string {
	h := sha3.New256()
	for _, p := range parts {
		// hash.Hash writes never fail
		_ = WriteVarBytes(h, p)
	}
	return hex.EncodeToString(h.Sum(nil))
}
