package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/travelinfo/travel-api/internal/store"
)

// PostgreSQL error codes
const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
	checkViolationCode      = "23514"
	notNullViolationCode    = "23502"
)

var constraintKinds = map[string]store.ConstraintKind{
	uniqueViolationCode:     store.ConstraintUnique,
	foreignKeyViolationCode: store.ConstraintForeignKey,
	checkViolationCode:      store.ConstraintCheck,
	notNullViolationCode:    store.ConstraintNotNull,
}

// MapError maps a database error to an appropriate store error.
// sql.ErrNoRows becomes store.ErrNotFound and integrity violations become a
// *store.ConstraintError carrying the reported constraint, table and column.
// Other errors are returned unchanged.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", store.ErrNotFound, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if kind, ok := constraintKinds[pgErr.Code]; ok {
			return &store.ConstraintError{
				Kind:       kind,
				Constraint: pgErr.ConstraintName,
				Table:      pgErr.TableName,
				Column:     pgErr.ColumnName,
				Err:        err,
			}
		}
	}

	return err
}

// mapEntityError is MapError with sql.ErrNoRows reported as notFound.
func mapEntityError(err error, notFound error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return notFound
	}
	return MapError(err)
}

// IsUniqueViolation checks if the given error is a PostgreSQL unique constraint violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

// IsForeignKeyViolation checks if the given error is a PostgreSQL foreign key constraint violation.
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolationCode
}

// CheckRowsAffected returns notFound when an UPDATE or DELETE touched no rows.
func CheckRowsAffected(result sql.Result, notFound error) error {
	if result == nil {
		return fmt.Errorf("nil result provided to CheckRowsAffected")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return notFound
	}
	return nil
}
