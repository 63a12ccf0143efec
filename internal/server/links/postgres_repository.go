package links

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/timevault/internal/common"
	"github.com/dmitrijs2005/timevault/internal/dbx"
	"github.com/dmitrijs2005/timevault/internal/server/models"
)

// PostgresRepository implements link storage over a dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const linkColumns = `id, vault_item_id, token_hash, expires_at, max_views, current_views, revoked, COALESCE(password_hash, ''), created_at`

func scanLink(row *sql.Row) (*models.AccessLink, error) {
	link := &models.AccessLink{}
	err := row.Scan(
		&link.ID, &link.VaultItemID, &link.TokenHash, &link.ExpiresAt,
		&link.MaxViews, &link.CurrentViews, &link.Revoked, &link.PasswordHash, &link.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return link, nil
}

func (r *PostgresRepository) Create(ctx context.Context, link *models.AccessLink) (*models.AccessLink, error) {
	query := `
		INSERT INTO access_links (id, vault_item_id, token_hash, expires_at, max_views, password_hash)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''))
		RETURNING created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		link.ID, link.VaultItemID, link.TokenHash, link.ExpiresAt, link.MaxViews, link.PasswordHash).
		Scan(&link.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return link, nil
}

func (r *PostgresRepository) FindByTokenHash(ctx context.Context, tokenHash string) (*models.AccessLink, error) {
	query := `SELECT ` + linkColumns + ` FROM access_links WHERE token_hash = $1`
	return scanLink(r.db.QueryRowContext(ctx, query, tokenHash))
}

func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*models.AccessLink, error) {
	query := `SELECT ` + linkColumns + ` FROM access_links WHERE id = $1`
	return scanLink(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) SetRevoked(ctx context.Context, id string) error {
	query := `UPDATE access_links SET revoked = true WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

// ConsumeView is the atomicity boundary of the whole engine: one conditional
// UPDATE that re-checks every revocation predicate at the moment of the
// increment. A read-modify-write pair of calls here would reintroduce the
// race the design exists to prevent.
func (r *PostgresRepository) ConsumeView(ctx context.Context, id string, now time.Time) (*models.AccessLink, error) {
	query := `
		UPDATE access_links
		SET current_views = current_views + 1
		WHERE id = $1
		  AND revoked = false
		  AND expires_at > $2
		  AND current_views < max_views
		RETURNING ` + linkColumns

	return scanLink(r.db.QueryRowContext(ctx, query, id, now))
}
