// Package db wires the per-aggregate repositories to a concrete store.
package db

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/timevault/internal/server/auditlogs"
	"github.com/dmitrijs2005/timevault/internal/server/links"
	"github.com/dmitrijs2005/timevault/internal/server/users"
	"github.com/dmitrijs2005/timevault/internal/server/vaults"
)

type RepositoryManager interface {
	RunMigrations(context.Context) error
	Conn() *sql.DB
	Users() users.Repository
	Vaults() vaults.Repository
	Links() links.Repository
	AuditLogs() auditlogs.Repository
}
