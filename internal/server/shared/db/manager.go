// Package db wires the SQL connection, migrations, and repositories into a
// single manager with explicit init and shutdown.
package db

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/authd/internal/server/repositories/users"
)

type RepositoryManager interface {
	Conn() *sql.DB
	Users() users.Repository
	RunMigrations(ctx context.Context) error
	Close() error
}
