package db

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/timevault/internal/server/auditlogs"
	"github.com/dmitrijs2005/timevault/internal/server/links"
	"github.com/dmitrijs2005/timevault/internal/server/users"
	"github.com/dmitrijs2005/timevault/internal/server/vaults"
)

// InMemoryRepositoryManager backs the repositories with maps. Tests only.
type InMemoryRepositoryManager struct {
	users     users.Repository
	vaults    vaults.Repository
	links     links.Repository
	auditLogs auditlogs.Repository
}

func (m *InMemoryRepositoryManager) Conn() *sql.DB {
	return nil
}

func (m *InMemoryRepositoryManager) RunMigrations(ctx context.Context) error {
	return nil
}

func (m *InMemoryRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *InMemoryRepositoryManager) Vaults() vaults.Repository {
	return m.vaults
}

func (m *InMemoryRepositoryManager) Links() links.Repository {
	return m.links
}

func (m *InMemoryRepositoryManager) AuditLogs() auditlogs.Repository {
	return m.auditLogs
}

func NewInMemoryRepositoryManager() RepositoryManager {
	return &InMemoryRepositoryManager{
		users:     users.NewInMemoryRepository(),
		vaults:    vaults.NewInMemoryRepository(),
		links:     links.NewInMemoryRepository(),
		auditLogs: auditlogs.NewInMemoryRepository(),
	}
}
