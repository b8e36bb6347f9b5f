// Package pgutil maps Postgres driver errors onto domain errors.
package pgutil

import (
	"errors"

	"teapos/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
	invalidTextRep      = "22P02"
)

// MapError converts no-rows and constraint errors to domain sentinels and
// passes everything else through.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolation:
			return domain.ErrAlreadyExists
		case foreignKeyViolation, invalidTextRep:
			// missing parent row or an id that is not a uuid
			return domain.ErrNotFound
		}
	}
	return err
}
