// Package testdb opens a migrated PostgreSQL database for integration tests.
// Tests using it carry the "integration" build tag and are skipped unless
// TRAVEL_TEST_DATABASE_URL or DATABASE_URL is set.
package testdb
