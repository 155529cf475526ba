package postgres

import (
	"context"
	"database/sql"
	"strings"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // registers the postgres dialect
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/travelinfo/travel-api/internal/store"
)

var dialect = goqu.Dialect("postgres")

// sqlBuilder is implemented by every goqu dataset.
type sqlBuilder interface {
	ToSQL() (string, []interface{}, error)
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an ILIKE pattern matching q anywhere, with LIKE
// metacharacters in q taken literally.
func containsPattern(q string) string {
	return "%" + likeEscaper.Replace(q) + "%"
}

// anyColumnContains matches q case-insensitively in any of cols.
func anyColumnContains(q string, cols ...string) exp.Expression {
	pattern := containsPattern(q)
	conds := make([]exp.Expression, 0, len(cols))
	for _, c := range cols {
		conds = append(conds, goqu.C(c).ILike(pattern))
	}
	return goqu.Or(conds...)
}

// qualify prefixes each column with a table alias.
func qualify(alias string, cols []any) []any {
	out := make([]any, 0, len(cols))
	for _, c := range cols {
		out = append(out, goqu.T(alias).Col(c))
	}
	return out
}

// queryRows runs ds and scans every row with scan.
func queryRows[T any](
	ctx context.Context,
	db store.DBTX,
	ds sqlBuilder,
	scan func(rowScanner) (T, error),
) ([]T, error) {
	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	out := []T{}
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return out, nil
}

// queryRow runs ds and scans its single row. A missing row is reported as notFound.
func queryRow[T any](
	ctx context.Context,
	db store.DBTX,
	ds sqlBuilder,
	scan func(rowScanner) (T, error),
	notFound error,
) (T, error) {
	var zero T
	query, args, err := ds.ToSQL()
	if err != nil {
		return zero, err
	}

	item, err := scan(db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return zero, mapEntityError(err, notFound)
	}
	return item, nil
}

// execDelete runs ds and reports notFound when it removed nothing.
func execDelete(ctx context.Context, db store.DBTX, ds sqlBuilder, notFound error) error {
	query, args, err := ds.ToSQL()
	if err != nil {
		return err
	}

	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return MapError(err)
	}
	return CheckRowsAffected(result, notFound)
}

var _ store.DBTX = (*sql.Tx)(nil)
