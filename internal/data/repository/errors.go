package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrConflict marks a write that lost a race and may be retried as a whole.
var ErrConflict = errors.New("write conflict")

// ErrNotFound is returned by writes that reference a row which no longer exists.
var ErrNotFound = errors.New("not found")

// Postgres SQLSTATE codes treated as retryable conflicts.
const (
	pgUniqueViolation      = "23505"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
	pgForeignKeyViolation  = "23503"
)

func isConflict(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	switch pgErr.Code {
	case pgUniqueViolation, pgSerializationFailure, pgDeadlockDetected:
		return true
	}
	return false
}

// isMissingReference reports a write that pointed at a row deleted meanwhile.
func isMissingReference(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation
}
