package vaults

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/timevault/internal/common"
	"github.com/dmitrijs2005/timevault/internal/cryptox"
	"github.com/dmitrijs2005/timevault/internal/server/auditlogs"
	"github.com/dmitrijs2005/timevault/internal/server/models"
	"github.com/google/uuid"
)

type Service struct {
	repo   Repository
	audit  auditlogs.Repository
	cipher *cryptox.Cipher
}

func NewService(repo Repository, audit auditlogs.Repository, cipher *cryptox.Cipher) *Service {
	return &Service{repo: repo, audit: audit, cipher: cipher}
}

// ItemMeta is what the owner-facing API sees. Content is only ever served
// through access links.
type ItemMeta struct {
	ID        string
	Title     string
	OwnerID   string
	CreatedAt string
}

func metaOf(item *models.VaultItem) *ItemMeta {
	return &ItemMeta{
		ID:        item.ID,
		Title:     item.Title,
		OwnerID:   item.OwnerID,
		CreatedAt: item.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// Create encrypts content and stores the item. The plaintext is wiped from
// this function's reach as soon as the cipher is done with it.
func (s *Service) Create(ctx context.Context, ownerID, title, content string) (*ItemMeta, error) {
	if title == "" || content == "" {
		return nil, fmt.Errorf("%w: title and content are required", common.ErrorValidation)
	}

	plaintext := []byte(content)
	ciphertext, nonce, tag, err := s.cipher.Encrypt(plaintext)
	common.WipeByteArray(plaintext)
	if err != nil {
		return nil, fmt.Errorf("encrypting content: %w", err)
	}

	item := &models.VaultItem{
		ID:         uuid.NewString(),
		OwnerID:    ownerID,
		Title:      title,
		Ciphertext: ciphertext,
		Nonce:      nonce,
		Tag:        tag,
	}

	item, err = s.repo.Create(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("error creating vault item: %w", err)
	}

	return metaOf(item), nil
}

// Get returns item metadata to its owner.
func (s *Service) Get(ctx context.Context, id, ownerID string) (*ItemMeta, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item.OwnerID != ownerID {
		return nil, common.ErrorForbidden
	}
	return metaOf(item), nil
}

// List returns the owner's items, newest first.
func (s *Service) List(ctx context.Context, ownerID string) ([]*ItemMeta, error) {
	items, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	result := make([]*ItemMeta, 0, len(items))
	for _, item := range items {
		result = append(result, metaOf(item))
	}
	return result, nil
}

// Logs returns the redemption attempts against the item's links, newest
// first. Owner-gated: a non-owner gets the same error as a missing item.
func (s *Service) Logs(ctx context.Context, id, ownerID string) ([]*models.AuditRecord, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, err
	}
	if item.OwnerID != ownerID {
		return nil, common.ErrorNotFound
	}

	return s.audit.ListByVaultItem(ctx, id)
}
