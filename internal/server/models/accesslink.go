package models

import "time"

// AccessLink is one issued bearer credential over a vault item.
//
// TokenHash is the keyed HMAC digest of the raw token; the raw token itself
// is returned to the owner once at issuance and never stored. CurrentViews
// only moves forward and only through the repository's conditional consume,
// so CurrentViews <= MaxViews holds under any interleaving. Revoked is
// monotonic: once set it is never cleared.
type AccessLink struct {
	ID           string
	VaultItemID  string
	TokenHash    string
	ExpiresAt    time.Time
	MaxViews     int
	CurrentViews int
	Revoked      bool
	PasswordHash string // empty means no password gate
	CreatedAt    time.Time
}

// RemainingViews is what the redeemer is told after a successful consume.
func (l *AccessLink) RemainingViews() int {
	if r := l.MaxViews - l.CurrentViews; r > 0 {
		return r
	}
	return 0
}
