// Package repositories contains the data access layer. Every repository
// operates on an interfaces.Querier so the same code runs against the pool,
// a transaction or a mock.
package repositories

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound is returned when no row matches, including rows that
	// exist but belong to another user.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateKey is returned when an insert or update violates a
	// unique constraint.
	ErrDuplicateKey = errors.New("duplicate key")
)

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
