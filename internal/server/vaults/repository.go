// Package vaults implements owner-side storage of protected payloads.
// Content is encrypted before it reaches the repository and is only ever
// decrypted by the redemption engine; the owner-facing API serves metadata.
package vaults

import (
	"context"

	"github.com/dmitrijs2005/timevault/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, item *models.VaultItem) (*models.VaultItem, error)
	FindByID(ctx context.Context, id string) (*models.VaultItem, error)

	// ListByOwner returns the owner's items newest first, without the
	// encrypted columns.
	ListByOwner(ctx context.Context, ownerID string) ([]*models.VaultItem, error)
}
