// Package managers wires the long-lived service collaborators: the database
// pool, the cookie session signer and the outbound mail transport.
package managers

import (
	log "github.com/sirupsen/logrus"

	"github.com/cwngan/cu2m-backend/internal/interfaces"
)

// DatabaseMgr defines the interface for database management.
// It provides access to the shared database connection pool.
type DatabaseMgr interface {
	GetPool() interfaces.PgxPoolIface
}

// DatabaseManager holds the process-wide connection pool. It is constructed
// once at startup and injected everywhere a query runs.
type DatabaseManager struct {
	Pool interfaces.PgxPoolIface
}

// GetPool returns the database connection pool managed by the DatabaseManager.
func (dbMgr *DatabaseManager) GetPool() interfaces.PgxPoolIface {
	return dbMgr.Pool
}

// NewDatabaseManager creates a new DatabaseManager around an already-opened
// pool.
func NewDatabaseManager(pool interfaces.PgxPoolIface) DatabaseMgr {
	log.Info("Initializing database manager")
	return &DatabaseManager{Pool: pool}
}
