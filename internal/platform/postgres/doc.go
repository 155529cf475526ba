// Package postgres provides PostgreSQL implementations of the store
// interfaces. Queries are built with goqu in prepared mode and run over a
// database/sql pool backed by the pgx driver; driver errors are classified by
// MapError. The schema lives in the embedded migrations directory.
package postgres
