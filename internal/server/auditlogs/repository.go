// Package auditlogs persists redemption attempts. The Repository interface
// is intentionally append-only: no update or delete exists, so the trail is
// tamper-evident by construction.
package auditlogs

import (
	"context"

	"github.com/dmitrijs2005/timevault/internal/server/models"
)

type Repository interface {
	Append(ctx context.Context, rec *models.AuditRecord) error

	// ListByVaultItem returns the attempts against a vault item's links,
	// newest first.
	ListByVaultItem(ctx context.Context, vaultItemID string) ([]*models.AuditRecord, error)
}
