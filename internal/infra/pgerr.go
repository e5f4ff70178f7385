package infra

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation    = "23505"
	pgForeignKeyViolated = "23503"
	pgExclusionViolation = "23P01"
)

// ClassifyPgErr maps low-level Postgres failures onto repository error kinds.
// Exclusion violations surface as conflicts: the bookings table carries an
// exclusion constraint on (room_id, slot) for confirmed rows.
func ClassifyPgErr(err error) RepositoryErrorKind {
	if errors.Is(err, pgx.ErrNoRows) {
		return KindNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return KindDuplicateKey
		case pgForeignKeyViolated:
			return KindForeignKeyViolated
		case pgExclusionViolation:
			return KindConflict
		}
	}
	return KindDBFailure
}
