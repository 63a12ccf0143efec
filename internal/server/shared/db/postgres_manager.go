package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/timevault/internal/server/auditlogs"
	"github.com/dmitrijs2005/timevault/internal/server/links"
	"github.com/dmitrijs2005/timevault/internal/server/migrations"
	"github.com/dmitrijs2005/timevault/internal/server/users"
	"github.com/dmitrijs2005/timevault/internal/server/vaults"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

type PostgresRepositoryManager struct {
	db        *sql.DB
	users     users.Repository
	vaults    vaults.Repository
	links     links.Repository
	auditLogs auditlogs.Repository
}

func (m *PostgresRepositoryManager) Conn() *sql.DB {
	return m.db
}

func (m *PostgresRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *PostgresRepositoryManager) Vaults() vaults.Repository {
	return m.vaults
}

func (m *PostgresRepositoryManager) Links() links.Repository {
	return m.links
}

func (m *PostgresRepositoryManager) AuditLogs() auditlogs.Repository {
	return m.auditLogs
}

func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetDialect("pgx")

	if err := goose.UpContext(ctx, m.db, "."); err != nil {
		return err
	}

	return nil
}

func NewPostgresRepositoryManager(dsn string) (RepositoryManager, error) {

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	m := &PostgresRepositoryManager{
		db:        db,
		users:     users.NewPostgresRepository(db),
		vaults:    vaults.NewPostgresRepository(db),
		links:     links.NewPostgresRepository(db),
		auditLogs: auditlogs.NewPostgresRepository(db),
	}

	if err := m.RunMigrations(context.Background()); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return m, nil
}
