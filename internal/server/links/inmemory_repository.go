package links

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/timevault/internal/common"
	"github.com/dmitrijs2005/timevault/internal/server/models"
)

// InMemoryRepository is a map-backed Repository used in tests. ConsumeView
// checks and increments under one lock, mirroring the single-statement
// conditional UPDATE of the Postgres implementation.
type InMemoryRepository struct {
	mu    sync.Mutex
	links map[string]*models.AccessLink
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{links: make(map[string]*models.AccessLink)}
}

func (r *InMemoryRepository) Create(ctx context.Context, link *models.AccessLink) (*models.AccessLink, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *link
	stored.CreatedAt = time.Now()
	r.links[stored.ID] = &stored

	out := stored
	return &out, nil
}

func (r *InMemoryRepository) FindByTokenHash(ctx context.Context, tokenHash string) (*models.AccessLink, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, l := range r.links {
		if l.TokenHash == tokenHash {
			out := *l
			return &out, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *InMemoryRepository) FindByID(ctx context.Context, id string) (*models.AccessLink, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.links[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	out := *l
	return &out, nil
}

func (r *InMemoryRepository) SetRevoked(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.links[id]
	if !ok {
		return common.ErrorNotFound
	}
	l.Revoked = true
	return nil
}

// SetExpiresAt rewrites the stored expiry. Test helper for forcing a link
// into the expired state without waiting on the wall clock.
func (r *InMemoryRepository) SetExpiresAt(id string, at time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if l, ok := r.links[id]; ok {
		l.ExpiresAt = at
	}
}

func (r *InMemoryRepository) ConsumeView(ctx context.Context, id string, now time.Time) (*models.AccessLink, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.links[id]
	if !ok || l.Revoked || !l.ExpiresAt.After(now) || l.CurrentViews >= l.MaxViews {
		return nil, common.ErrorNotFound
	}

	l.CurrentViews++
	out := *l
	return &out, nil
}
