package repository

import (
	"errors"

	"github.com/lib/pq"
)

var (
	ErrRecordNotFound  = errors.New("record not found")
	ErrEditConflict    = errors.New("edit conflict")
	ErrDuplicateRecord = errors.New("duplicate record")
	// ErrInvalidState is returned when a conditional status transition
	// matched no row because the record is no longer in the expected state.
	ErrInvalidState = errors.New("invalid state")
)

// isUniqueViolation reports whether err is a unique constraint violation on
// the named constraint.
func isUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == "23505" && pqErr.Constraint == constraint
}

// isForeignKeyViolation reports whether err is a foreign key violation, e.g.
// a child row inserted for a parent deleted concurrently.
func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23503"
}
