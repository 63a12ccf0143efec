package cryptox

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"

	"github.com/dmitrijs2005/timevault/internal/common"
)

// tokenBytes is the entropy of a raw bearer token (256 bits).
const tokenBytes = 32

// GenerateToken returns a fresh raw bearer token: 32 random bytes encoded
// as 64 hex characters. The raw token is handed to the link owner exactly
// once and only its keyed hash is ever persisted.
func GenerateToken() (string, error) {
	return common.MakeRandHexString(tokenBytes)
}

// TokenHasher computes keyed HMAC-SHA256 digests of raw bearer tokens.
// The digest is the only form stored or compared; the transform is never
// reversed. Safe for concurrent use.
type TokenHasher struct {
	key []byte
}

// NewTokenHasher builds a hasher over the process-wide HMAC key.
func NewTokenHasher(key []byte) *TokenHasher {
	k := make([]byte, len(key))
	copy(k, key)
	return &TokenHasher{key: k}
}

// Hash returns the hex-encoded HMAC-SHA256 digest of rawToken.
func (h *TokenHasher) Hash(rawToken string) string {
	mac := hmac.New(sha256.New, h.key)
	mac.Write([]byte(rawToken))
	return hex.EncodeToString(mac.Sum(nil))
}
