package links

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/timevault/internal/common"
	"github.com/dmitrijs2005/timevault/internal/cryptox"
	"github.com/dmitrijs2005/timevault/internal/logging"
	"github.com/dmitrijs2005/timevault/internal/server/auditlogs"
	"github.com/dmitrijs2005/timevault/internal/server/models"
	"github.com/dmitrijs2005/timevault/internal/server/vaults"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost for link redemption passwords.
const bcryptCost = 12

type Service struct {
	links   Repository
	vaults  vaults.Repository
	audit   auditlogs.Repository
	hasher  *cryptox.TokenHasher
	cipher  *cryptox.Cipher
	baseURL string
	logger  logging.Logger
}

func NewService(links Repository, vaults vaults.Repository, audit auditlogs.Repository,
	hasher *cryptox.TokenHasher, cipher *cryptox.Cipher, baseURL string, logger logging.Logger) *Service {
	return &Service{
		links:   links,
		vaults:  vaults,
		audit:   audit,
		hasher:  hasher,
		cipher:  cipher,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger.With("module", "links"),
	}
}

// IssueParams is the owner's request to mint a link.
type IssueParams struct {
	VaultItemID string
	OwnerID     string
	ExpiresAt   time.Time
	MaxViews    int
	Password    string // optional; "" means no password gate
}

// IssuedLink carries the raw token back to the owner. This is the only time
// the token exists outside the owner's hands: only its digest is stored, so
// a lost token means reissuing the link.
type IssuedLink struct {
	LinkID   string
	RawToken string
	URL      string
}

// Issue validates owner input, generates the bearer token and persists the
// link with the token's digest. MaxViews must be >= 1; there is no unlimited
// sentinel.
func (s *Service) Issue(ctx context.Context, p IssueParams) (*IssuedLink, error) {
	if p.ExpiresAt.IsZero() {
		return nil, fmt.Errorf("%w: expires_at is required", common.ErrorValidation)
	}
	if !p.ExpiresAt.After(time.Now()) {
		return nil, fmt.Errorf("%w: expires_at must be in the future", common.ErrorValidation)
	}
	if p.MaxViews < 1 {
		return nil, fmt.Errorf("%w: max_views must be a positive integer", common.ErrorValidation)
	}

	item, err := s.vaults.FindByID(ctx, p.VaultItemID)
	if err != nil {
		return nil, err
	}
	if item.OwnerID != p.OwnerID {
		return nil, common.ErrorForbidden
	}

	rawToken, err := cryptox.GenerateToken()
	if err != nil {
		return nil, fmt.Errorf("generating token: %w", err)
	}

	passwordHash := ""
	if p.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(p.Password), bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hashing link password: %w", err)
		}
		passwordHash = string(hash)
	}

	link := &models.AccessLink{
		ID:           uuid.NewString(),
		VaultItemID:  item.ID,
		TokenHash:    s.hasher.Hash(rawToken),
		ExpiresAt:    p.ExpiresAt,
		MaxViews:     p.MaxViews,
		PasswordHash: passwordHash,
	}

	link, err = s.links.Create(ctx, link)
	if err != nil {
		return nil, fmt.Errorf("error creating link: %w", err)
	}

	s.logger.Info(ctx, "issued link",
		"link_id", link.ID, "vault_item_id", item.ID, "max_views", link.MaxViews)

	return &IssuedLink{
		LinkID:   link.ID,
		RawToken: rawToken,
		URL:      fmt.Sprintf("%s/api/access/%s", s.baseURL, rawToken),
	}, nil
}

// RequestMeta is the best-effort caller identity recorded in the audit trail.
type RequestMeta struct {
	IPAddress string
	UserAgent string
}

// RedeemResult is the decision for one redemption attempt. Content is set
// only when Outcome is allowed.
type RedeemResult struct {
	Outcome        models.Outcome
	Content        string
	RemainingViews int
	ExpiresAt      time.Time
}

// Redeem runs the redemption state machine. Checks run strictly in order
// and short-circuit on the first failure; every exit path, success
// included, writes exactly one audit record. The read-only checks before
// the consume give the caller a precise reason; the conditional consume is
// the only authoritative gate, so a state change between the pre-checks and
// the update surfaces as denied_race_or_limit.
//
// Denials and internal faults are results, not errors; a non-nil error means
// the store failed before any decision was reached.
func (s *Service) Redeem(ctx context.Context, rawToken, password string, meta RequestMeta) (*RedeemResult, error) {
	link, err := s.links.FindByTokenHash(ctx, s.hasher.Hash(rawToken))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.writeAudit(ctx, nil, nil, models.OutcomeDeniedInvalidToken, meta)
			return &RedeemResult{Outcome: models.OutcomeDeniedInvalidToken}, nil
		}
		return nil, err
	}

	now := time.Now()

	switch {
	case link.Revoked:
		return s.deny(ctx, link, models.OutcomeDeniedRevoked, meta), nil
	case !link.ExpiresAt.After(now):
		return s.deny(ctx, link, models.OutcomeDeniedExpired, meta), nil
	case link.CurrentViews >= link.MaxViews:
		return s.deny(ctx, link, models.OutcomeDeniedViewsExhausted, meta), nil
	}

	if link.PasswordHash != "" {
		if strings.TrimSpace(password) == "" {
			return s.deny(ctx, link, models.OutcomeDeniedPasswordRequired, meta), nil
		}
		if bcrypt.CompareHashAndPassword([]byte(link.PasswordHash), []byte(password)) != nil {
			return s.deny(ctx, link, models.OutcomeDeniedWrongPassword, meta), nil
		}
	}

	updated, err := s.links.ConsumeView(ctx, link.ID, now)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return s.deny(ctx, link, models.OutcomeDeniedRaceOrLimit, meta), nil
		}
		return nil, err
	}

	// The view is consumed from here on; there is no compensating rollback.
	item, err := s.vaults.FindByID(ctx, link.VaultItemID)
	if err != nil {
		s.logger.Error(ctx, "payload missing for consumed view", "link_id", link.ID, "error", err)
		s.writeAudit(ctx, &link.ID, nil, models.OutcomeErrorPayloadMissing, meta)
		return &RedeemResult{Outcome: models.OutcomeErrorPayloadMissing}, nil
	}

	plaintext, err := s.cipher.Decrypt(item.Ciphertext, item.Nonce, item.Tag)
	if err != nil {
		s.logger.Error(ctx, "decrypt failed for consumed view", "link_id", link.ID)
		s.writeAudit(ctx, &link.ID, &link.VaultItemID, models.OutcomeErrorDecryptFailed, meta)
		return &RedeemResult{Outcome: models.OutcomeErrorDecryptFailed}, nil
	}

	s.writeAudit(ctx, &link.ID, &link.VaultItemID, models.OutcomeAllowed, meta)

	return &RedeemResult{
		Outcome:        models.OutcomeAllowed,
		Content:        string(plaintext),
		RemainingViews: updated.RemainingViews(),
		ExpiresAt:      updated.ExpiresAt,
	}, nil
}

func (s *Service) deny(ctx context.Context, link *models.AccessLink, outcome models.Outcome, meta RequestMeta) *RedeemResult {
	s.writeAudit(ctx, &link.ID, &link.VaultItemID, outcome, meta)
	return &RedeemResult{Outcome: outcome}
}

// writeAudit records the decision. A failed append never changes the
// decision already made: the audit write is a side effect, not a gate.
func (s *Service) writeAudit(ctx context.Context, linkID, vaultItemID *string, outcome models.Outcome, meta RequestMeta) {
	rec := &models.AuditRecord{
		ID:          uuid.NewString(),
		LinkID:      linkID,
		VaultItemID: vaultItemID,
		AccessedAt:  time.Now(),
		Success:     outcome.Success(),
		Outcome:     outcome,
		IPAddress:   meta.IPAddress,
		UserAgent:   meta.UserAgent,
	}

	if err := s.audit.Append(ctx, rec); err != nil {
		s.logger.Error(ctx, "audit append failed", "outcome", string(outcome), "error", err)
	}
}

// LinkStatus is the owner-facing view of a link's lifecycle.
type LinkStatus struct {
	ID           string
	Expired      bool
	Exhausted    bool
	Revoked      bool
	CurrentViews int
	MaxViews     int
	ExpiresAt    time.Time
}

func (s *Service) ownedLink(ctx context.Context, linkID, ownerID string) (*models.AccessLink, error) {
	link, err := s.links.FindByID(ctx, linkID)
	if err != nil {
		return nil, err
	}

	item, err := s.vaults.FindByID(ctx, link.VaultItemID)
	if err != nil {
		return nil, err
	}
	if item.OwnerID != ownerID {
		return nil, common.ErrorForbidden
	}

	return link, nil
}

// Revoke marks the link dead. One-way and idempotent: revoking again keeps
// revoked=true and still succeeds.
func (s *Service) Revoke(ctx context.Context, linkID, ownerID string) error {
	link, err := s.ownedLink(ctx, linkID, ownerID)
	if err != nil {
		return err
	}

	if err := s.links.SetRevoked(ctx, link.ID); err != nil {
		return err
	}

	s.logger.Info(ctx, "revoked link", "link_id", link.ID)
	return nil
}

// Status reports the link's lifecycle to its owner.
func (s *Service) Status(ctx context.Context, linkID, ownerID string) (*LinkStatus, error) {
	link, err := s.ownedLink(ctx, linkID, ownerID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &LinkStatus{
		ID:           link.ID,
		Expired:      !link.ExpiresAt.After(now),
		Exhausted:    link.CurrentViews >= link.MaxViews,
		Revoked:      link.Revoked,
		CurrentViews: link.CurrentViews,
		MaxViews:     link.MaxViews,
		ExpiresAt:    link.ExpiresAt,
	}, nil
}
