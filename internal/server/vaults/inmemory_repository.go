package vaults

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/timevault/internal/common"
	"github.com/dmitrijs2005/timevault/internal/server/models"
)

// InMemoryRepository is a map-backed Repository used in tests.
type InMemoryRepository struct {
	mu    sync.RWMutex
	items map[string]*models.VaultItem
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{items: make(map[string]*models.VaultItem)}
}

func (r *InMemoryRepository) Create(ctx context.Context, item *models.VaultItem) (*models.VaultItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *item
	stored.CreatedAt = time.Now()
	r.items[stored.ID] = &stored

	out := stored
	return &out, nil
}

func (r *InMemoryRepository) FindByID(ctx context.Context, id string) (*models.VaultItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	out := *item
	return &out, nil
}

func (r *InMemoryRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.VaultItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*models.VaultItem
	for _, item := range r.items {
		if item.OwnerID != ownerID {
			continue
		}
		out := models.VaultItem{
			ID:        item.ID,
			OwnerID:   item.OwnerID,
			Title:     item.Title,
			CreatedAt: item.CreatedAt,
		}
		result = append(result, &out)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

// Delete removes an item. Only tests use this, to simulate a payload that
// disappeared underneath a live link.
func (r *InMemoryRepository) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
}
