package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Unique-violation SQLSTATE, the code postgres reports when an insert loses a
// race against a unique index.
const pgUniqueViolation = "23505"

// IsDuplicateKey reports whether err is a unique-constraint violation from
// any of the supported drivers. Pre-insert existence checks are advisory
// only; the unique index is the authority, so services classify the insert
// error itself.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	// modernc sqlite reports constraint failures as plain text.
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
