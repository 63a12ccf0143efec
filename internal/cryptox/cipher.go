// Package cryptox implements the two cryptographic primitives the vault
// depends on: authenticated encryption of payloads at rest (AES-256-GCM)
// and keyed one-way hashing of bearer tokens (HMAC-SHA256).
//
// Keys are injected at construction time rather than read from ambient
// globals, so tests can run with their own key material.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/timevault/internal/common"
)

const (
	// KeySize is the only accepted key length. AES-256 is pinned; a key of
	// any other size is a configuration error, not something to work around.
	KeySize = 32

	nonceSize = 12
	tagSize   = 16
)

var (
	// ErrInvalidKeySize is returned by NewCipher for keys != 32 bytes.
	ErrInvalidKeySize = errors.New("encryption key must be exactly 32 bytes")

	// ErrDecryptFailed is returned when ciphertext, nonce or tag fail
	// authentication. The underlying cipher error is never exposed.
	ErrDecryptFailed = errors.New("decryption failed")
)

// Cipher performs AES-256-GCM encryption and decryption with a fixed,
// process-wide key. It is stateless after construction and safe for
// concurrent use.
type Cipher struct {
	aead cipher.AEAD
}

// NewCipher builds a Cipher from a 32-byte key.
func NewCipher(key []byte) (*Cipher, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w (got %d)", ErrInvalidKeySize, len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	return &Cipher{aead: aead}, nil
}

// Encrypt seals plaintext with a fresh random 12-byte nonce. The GCM
// authentication tag is returned separately from the ciphertext because the
// store keeps the three parts in distinct columns.
func (c *Cipher) Encrypt(plaintext []byte) (ciphertext, nonce, tag []byte, err error) {
	nonce = common.GenerateRandByteArray(nonceSize)

	sealed := c.aead.Seal(nil, nonce, plaintext, nil)

	// Seal appends the tag to the ciphertext.
	ciphertext = sealed[:len(sealed)-tagSize]
	tag = sealed[len(sealed)-tagSize:]
	return ciphertext, nonce, tag, nil
}

// Decrypt opens ciphertext sealed by Encrypt. Any modification to the
// ciphertext, nonce or tag results in ErrDecryptFailed; corrupt plaintext is
// never returned.
func (c *Cipher) Decrypt(ciphertext, nonce, tag []byte) ([]byte, error) {
	if len(nonce) != nonceSize || len(tag) != tagSize {
		return nil, ErrDecryptFailed
	}

	sealed := make([]byte, 0, len(ciphertext)+len(tag))
	sealed = append(sealed, ciphertext...)
	sealed = append(sealed, tag...)

	plaintext, err := c.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, ErrDecryptFailed
	}

	// Open returns nil for zero-length plaintext; callers get an empty
	// slice so a successful decrypt is always non-nil.
	if plaintext == nil {
		plaintext = []byte{}
	}

	return plaintext, nil
}
