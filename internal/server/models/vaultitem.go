package models

import "time"

// VaultItem is an owner's secret, stored only in encrypted form.
// Ciphertext, nonce and GCM tag are kept as separate columns; the plaintext
// never touches the store or the logs. The item outlives any access link
// pointing at it.
type VaultItem struct {
	ID         string
	OwnerID    string
	Title      string
	Ciphertext []byte
	Nonce      []byte
	Tag        []byte
	CreatedAt  time.Time
}
