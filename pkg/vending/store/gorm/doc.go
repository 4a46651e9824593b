// Package gorm provides Postgres-backed implementations of the store
// interfaces. Status transitions are compare-and-set updates keyed on the
// expected prior status, which is the entire concurrency story: the database
// row is the serialization point, not process memory.
package gorm
