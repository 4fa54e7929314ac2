package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"github.com/cwngan/cu2m-backend/internal/interfaces"
	"github.com/cwngan/cu2m-backend/internal/schemas"
)

// BeginTransaction begins a new database transaction for the request.
// If the transaction fails to begin, it logs and sends an error response and
// returns nil.
func BeginTransaction(c *gin.Context, pool interfaces.PgxPoolIface) pgx.Tx {
	LogMessageWithFields(c, "debug", "Beginning transaction...")

	tx, err := pool.Begin(c.Request.Context())
	if err != nil {
		WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return nil
	}

	return tx
}

// RollbackTransaction rolls the transaction back unless it was already
// committed. Safe to defer unconditionally.
func RollbackTransaction(c *gin.Context, tx pgx.Tx) {
	if err := tx.Rollback(c.Request.Context()); err != nil {
		if errors.Is(err, pgx.ErrTxClosed) {
			return
		}
		LogMessageWithFieldsAndError(c, "error", "Error rolling back transaction", err)
	}
}

// CommitTransaction attempts to commit the transaction, reporting a database
// error to the client on failure.
func CommitTransaction(c *gin.Context, tx pgx.Tx) error {
	LogMessageWithFields(c, "debug", "Committing transaction...")

	if err := tx.Commit(c.Request.Context()); err != nil {
		WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return err
	}

	return nil
}
