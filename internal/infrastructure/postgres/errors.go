package postgres

import (
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"

	"github.com/oksasatya/go-talent-marketplace/internal/domain/repository"
)

const (
	codeUniqueViolation     = "23505"
	codeInvalidTextRepr     = "22P02" // e.g. malformed uuid in a lookup
	codeForeignKeyViolation = "23503"
)

// mapError translates driver errors into repository sentinels and wraps the rest.
func mapError(err error, op string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return errors.Wrapf(repository.ErrDuplicate, "%s: %s", op, pgErr.ConstraintName)
		case codeInvalidTextRepr, codeForeignKeyViolation:
			return errors.Wrap(repository.ErrNotFound, op)
		}
	}
	return errors.Wrap(err, op)
}
