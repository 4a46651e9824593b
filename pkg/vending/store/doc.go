// Package store defines the persistence interfaces the lifecycle manager
// depends on, together with their sentinel errors. Implementations live in
// the gorm and s3 subpackages; tests substitute in-memory mocks.
package store
