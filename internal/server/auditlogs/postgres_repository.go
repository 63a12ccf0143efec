package auditlogs

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/timevault/internal/dbx"
	"github.com/dmitrijs2005/timevault/internal/server/models"
)

// PostgresRepository implements audit storage over a dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Append(ctx context.Context, rec *models.AuditRecord) error {
	query := `
		INSERT INTO access_logs (id, link_id, vault_item_id, accessed_at, success, outcome, ip_address, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(ctx, query,
		rec.ID, rec.LinkID, rec.VaultItemID, rec.AccessedAt, rec.Success, string(rec.Outcome), rec.IPAddress, rec.UserAgent)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) ListByVaultItem(ctx context.Context, vaultItemID string) ([]*models.AuditRecord, error) {
	query := `
		SELECT id, link_id, vault_item_id, accessed_at, success, outcome, ip_address, user_agent
		FROM access_logs
		WHERE vault_item_id = $1
		ORDER BY accessed_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, vaultItemID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.AuditRecord
	for rows.Next() {
		var rec models.AuditRecord
		var outcome string
		if err := rows.Scan(
			&rec.ID, &rec.LinkID, &rec.VaultItemID, &rec.AccessedAt,
			&rec.Success, &outcome, &rec.IPAddress, &rec.UserAgent,
		); err != nil {
			return nil, err
		}
		rec.Outcome = models.Outcome(outcome)
		result = append(result, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
