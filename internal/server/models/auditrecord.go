package models

import "time"

// AuditRecord is one redemption attempt. Records are append-only: the
// repository contract exposes no update or delete, which is what makes the
// trail tamper-evident.
//
// LinkID and VaultItemID are nil when the presented token matched no link.
type AuditRecord struct {
	ID          string
	LinkID      *string
	VaultItemID *string
	AccessedAt  time.Time
	Success     bool
	Outcome     Outcome
	IPAddress   string
	UserAgent   string
}
