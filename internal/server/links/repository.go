// Package links implements access-link issuance and redemption: the token
// issuer, the ordered deny checks, the atomic consume-one-view primitive and
// the audit write on every exit path.
package links

import (
	"context"
	"time"

	"github.com/dmitrijs2005/timevault/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, link *models.AccessLink) (*models.AccessLink, error)
	FindByTokenHash(ctx context.Context, tokenHash string) (*models.AccessLink, error)
	FindByID(ctx context.Context, id string) (*models.AccessLink, error)

	// SetRevoked marks the link revoked. Idempotent: revoking a revoked
	// link is a no-op that still succeeds.
	SetRevoked(ctx context.Context, id string) error

	// ConsumeView atomically increments the view counter, but only if the
	// link is unrevoked, unexpired at now, and has views left, all checked
	// at the instant of the update. It returns the post-update link, or
	// common.ErrorNotFound when any condition failed. The caller cannot and
	// need not distinguish revocation, expiry or a lost race: this is the
	// single authoritative gate preventing the check-then-act race.
	ConsumeView(ctx context.Context, id string, now time.Time) (*models.AccessLink, error)
}
