// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying data storage mechanism from
// the application's core logic, allowing business rules to remain
// independent of specific database technologies or persistence details.
//
// All implementations report absent rows with the entity-specific
// ErrXxxNotFound values and database constraint failures as *ConstraintError.
package store
