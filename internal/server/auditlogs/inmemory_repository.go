package auditlogs

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/timevault/internal/server/models"
)

// InMemoryRepository keeps records in an append-only slice. Used in tests.
type InMemoryRepository struct {
	mu   sync.Mutex
	recs []*models.AuditRecord
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{}
}

func (r *InMemoryRepository) Append(ctx context.Context, rec *models.AuditRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *rec
	if stored.AccessedAt.IsZero() {
		stored.AccessedAt = time.Now()
	}
	r.recs = append(r.recs, &stored)
	return nil
}

func (r *InMemoryRepository) ListByVaultItem(ctx context.Context, vaultItemID string) ([]*models.AuditRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []*models.AuditRecord
	// iterate backwards: newest first
	for i := len(r.recs) - 1; i >= 0; i-- {
		rec := r.recs[i]
		if rec.VaultItemID != nil && *rec.VaultItemID == vaultItemID {
			out := *rec
			result = append(result, &out)
		}
	}
	return result, nil
}

// All returns every record in append order. Test helper.
func (r *InMemoryRepository) All() []*models.AuditRecord {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*models.AuditRecord, len(r.recs))
	copy(out, r.recs)
	return out
}
