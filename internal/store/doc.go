// Package store defines interfaces for user persistence.
// These interfaces abstract the storage backend (in-memory, PostgreSQL,
// SQLite) from the service and HTTP layers so that the identifier and
// ordering rules are expressed once, as a contract, and implemented by
// every backend.
package store
